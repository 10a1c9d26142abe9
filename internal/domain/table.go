package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column names of the conditions mart the dashboard depends on.
const (
	ColCountry  = "country"
	ColCity     = "city"
	ColYear     = "year"
	ColAvgTempC = "avg_temp_c"
	ColRainDays = "will_it_rain_days"
	ColSnowDays = "will_it_snow_days"
)

// RequiredColumns lists every column the pipeline reads.
var RequiredColumns = []string{ColCountry, ColCity, ColYear, ColAvgTempC, ColRainDays, ColSnowDays}

// Table is the in-memory dataset: the header taken verbatim from the file and
// every row as raw cell text. It is never mutated after loading.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table from a header and rows. The loader rejects ragged
// rows; for rows built elsewhere, cells past the end of a short row read as
// empty.
func NewTable(columns []string, rows [][]string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; !dup {
			idx[c] = i
		}
	}
	return &Table{Columns: columns, Rows: rows, index: idx}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a column in the header.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Require returns ErrMissingColumn naming every absent column.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the raw cell at row i for the named column.
func (t *Table) Value(i int, column string) string {
	c, ok := t.index[column]
	if !ok {
		return ""
	}
	return t.cell(i, c)
}

// cell returns the cell at row i, column c. Short rows read as empty.
func (t *Table) cell(i, c int) string {
	if c >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][c]
}

// Observation is the typed view of one mart row. Measures that are missing
// in the source are NaN.
type Observation struct {
	Country  string
	City     string
	Year     int
	AvgTempC float64
	RainDays float64
	SnowDays float64
}

// Observation decodes row i into its typed form.
func (t *Table) Observation(i int) (Observation, error) {
	year, err := strconv.Atoi(strings.TrimSpace(t.Value(i, ColYear)))
	if err != nil {
		return Observation{}, fmt.Errorf("%w: row %d: year %q", ErrParse, i+1, t.Value(i, ColYear))
	}
	obs := Observation{
		Country: t.Value(i, ColCountry),
		City:    t.Value(i, ColCity),
		Year:    year,
	}
	for _, m := range []struct {
		col string
		dst *float64
	}{
		{ColAvgTempC, &obs.AvgTempC},
		{ColRainDays, &obs.RainDays},
		{ColSnowDays, &obs.SnowDays},
	} {
		v, present, err := ParseMeasure(t.Value(i, m.col))
		if err != nil {
			return Observation{}, fmt.Errorf("row %d column %s: %w", i+1, m.col, err)
		}
		if !present {
			v = math.NaN()
		}
		*m.dst = v
	}
	return obs, nil
}

// ParseMeasure parses a numeric cell. present is false for missing-value
// markers; a non-numeric or infinite cell is an ErrParse.
func ParseMeasure(s string) (v float64, present bool, err error) {
	s = strings.TrimSpace(s)
	if isMissing(s) {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %q is not a number", ErrParse, s)
	}
	return v, true, nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return true
	}
	return false
}
