package dashboard

import (
	"html/template"
	"strings"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
)

// Style is a small set of CSS properties for table presets.
type Style struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty"`
	Color           string `json:"color,omitempty"`
}

// CSS renders the style as an inline declaration list. Presets are static,
// so the result is trusted.
func (s Style) CSS() template.CSS {
	var b strings.Builder
	for _, d := range [][2]string{
		{"background-color", s.BackgroundColor},
		{"font-weight", s.FontWeight},
		{"color", s.Color},
	} {
		if d[1] == "" {
			continue
		}
		b.WriteString(d[0] + ": " + d[1] + "; ")
	}
	return template.CSS(strings.TrimSpace(b.String()))
}

// Table presets.
var (
	HeaderStyle = Style{BackgroundColor: "rgb(30, 30, 30)", FontWeight: "bold", Color: "white"}
	CellStyle   = Style{BackgroundColor: "rgb(50, 50, 50)", Color: "white"}
)

// Column is one display column; ID is the source column name.
type Column struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// TableWidget is the row-level display of the raw dataset.
type TableWidget struct {
	Columns     []Column   `json:"columns"`
	Rows        [][]string `json:"rows"`
	HeaderStyle Style      `json:"headerStyle"`
	CellStyle   Style      `json:"cellStyle"`
}

// BuildTable maps every source column and row onto a TableWidget.
func BuildTable(t *domain.Table) TableWidget {
	cols := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = Column{Name: c, ID: c}
	}
	return TableWidget{
		Columns:     cols,
		Rows:        t.Rows,
		HeaderStyle: HeaderStyle,
		CellStyle:   CellStyle,
	}
}
