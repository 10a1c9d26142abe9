// Package dashboard lays out the table and charts as a single HTML page.
package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/couchcryptid/city-conditions-dashboard/internal/chart"
)

// Default asset locations. Both can be overridden through config.
const (
	DefaultPlotlyURL     = "https://cdn.plot.ly/plotly-2.35.2.min.js"
	DefaultStylesheetURL = "https://cdn.jsdelivr.net/npm/bootswatch@5.3.3/dist/darkly/bootstrap.min.css"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Heading is a page heading with its inline style.
type Heading struct {
	Text  string
	Style template.CSS
}

// Panel is one chart slot on the page.
type Panel struct {
	ID     string
	Figure chart.Figure
}

// Page is the composed dashboard, top to bottom.
type Page struct {
	Title       Heading
	Subtitle    Heading
	Caption     Heading
	Table       TableWidget
	Charts      []Panel
	GeneratedAt time.Time

	PlotlyURL     string
	StylesheetURL string
}

// Assets are the external script and stylesheet the page links to.
type Assets struct {
	PlotlyURL     string
	StylesheetURL string
}

// Compose arranges the headings, the table and the figures in the given order.
func Compose(table TableWidget, figures []chart.Figure, generatedAt time.Time, assets Assets) Page {
	if assets.PlotlyURL == "" {
		assets.PlotlyURL = DefaultPlotlyURL
	}
	if assets.StylesheetURL == "" {
		assets.StylesheetURL = DefaultStylesheetURL
	}

	panels := make([]Panel, len(figures))
	for i, f := range figures {
		panels[i] = Panel{ID: fmt.Sprintf("chart-%d", i+1), Figure: f}
	}

	return Page{
		Title:         Heading{Text: "Number Of Rainy Days For Each City", Style: "text-align: center; color: coral;"},
		Subtitle:      Heading{Text: "Rainy Days", Style: "padding-left: 30px;"},
		Caption:       Heading{Text: "Graphs Below"},
		Table:         table,
		Charts:        panels,
		GeneratedAt:   generatedAt,
		PlotlyURL:     assets.PlotlyURL,
		StylesheetURL: assets.StylesheetURL,
	}
}

// Render writes the page as HTML.
func Render(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}

// RenderBytes renders the page into memory.
func RenderBytes(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, p); err != nil {
		return nil, fmt.Errorf("render dashboard: %w", err)
	}
	return buf.Bytes(), nil
}
