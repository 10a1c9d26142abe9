package chart

import (
	"math"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
)

const countryNames = "country names"

// RainYearMap is a static choropleth coloring each country by year. Each year
// is its own trace painted a single color, so a country present in several
// years shows the last year drawn on top.
func RainYearMap(rain domain.AggregateTable) Figure {
	years := rain.Distinct(domain.ColYear)
	data := make([]Trace, 0, len(years))
	for i, year := range years {
		rows := rain.Filter(domain.ColYear, year)
		ones := make([]*float64, len(rows))
		for j := range ones {
			ones[j] = floatPtr(1)
		}
		data = append(data, Trace{
			Type:         "choropleth",
			Name:         year,
			LegendGroup:  year,
			ShowLegend:   boolPtr(true),
			Locations:    keyValues(rows, domain.ColCountry),
			LocationMode: countryNames,
			Z:            ones,
			ColorScale:   solid(ColorFor(CityColors, year, i)),
			ShowScale:    boolPtr(false),
			Hover:        "country=%{location}<br>year=" + year + "<extra></extra>",
		})
	}

	fig := Figure{
		Data: data,
		Layout: Layout{
			Title:  &Title{Text: "City Choropleth Map"},
			Geo:    &Geo{},
			Legend: &Legend{Title: &Title{Text: domain.ColYear}},
		},
	}
	ApplyDarkTheme(&fig.Layout)
	return fig
}

// RainAnimatedMap is a choropleth of mean rain days on the ice scale with one
// animation frame per year.
func RainAnimatedMap(rain domain.AggregateTable) Figure {
	fig := Figure{
		Layout: Layout{
			Title:  &Title{Text: "Country Will It Rain Map"},
			Height: 400,
			Width:  800,
			Geo:    &Geo{},
			Legend: &Legend{Title: &Title{Text: "City"}},
		},
	}
	animateByYear(&fig, rain, ScaleIce)
	ApplyDarkTheme(&fig.Layout)
	return fig
}

// TemperatureAnimatedMap is a world choropleth of mean temperature on the
// Viridis scale with one animation frame per year and a year slider.
func TemperatureAnimatedMap(temp domain.AggregateTable) Figure {
	fig := Figure{
		Layout: Layout{
			Title:  &Title{Text: "Average Temperature by Country with Animation"},
			Height: 400,
			Width:  1000,
			Geo: &Geo{
				Scope:      "world",
				Projection: &Projection{Type: "natural earth"},
			},
		},
	}
	animateByYear(&fig, temp, ScaleViridis)
	ApplyDarkTheme(&fig.Layout)
	return fig
}

// yearTrace is the choropleth for one year's rows. The color range is shared
// across all years so frames stay comparable.
func yearTrace(t domain.AggregateTable, year string, scale any, zmin, zmax *float64) Trace {
	rows := t.Filter(domain.ColYear, year)
	return Trace{
		Type:         "choropleth",
		Name:         year,
		Locations:    keyValues(rows, domain.ColCountry),
		LocationMode: countryNames,
		Z:            means(rows),
		ZMin:         zmin,
		ZMax:         zmax,
		ColorScale:   scale,
		ColorBar:     &ColorBar{Title: &Title{Text: t.Measure}},
		Hover:        "country=%{location}<br>year=" + year + "<br>" + t.Measure + "=%{z}<extra></extra>",
	}
}

// valueRange returns the min and max valid mean, or nils when there is none.
func valueRange(t domain.AggregateTable) (lo, hi *float64) {
	low, high := math.Inf(1), math.Inf(-1)
	for _, r := range t.Rows {
		if !r.Valid {
			continue
		}
		low = math.Min(low, r.Mean)
		high = math.Max(high, r.Mean)
	}
	if math.IsInf(low, 1) {
		return nil, nil
	}
	return floatPtr(low), floatPtr(high)
}
