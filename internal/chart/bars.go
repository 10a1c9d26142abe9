package chart

import (
	"strconv"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
)

// RainByCountry is a grouped bar chart of mean rain days per country with one
// series per year. Series colors are looked up in CityColors by series name;
// the series are years, so every lookup falls through to the palette.
func RainByCountry(rain domain.AggregateTable) Figure {
	years := rain.Distinct(domain.ColYear)
	data := make([]Trace, 0, len(years))
	for i, year := range years {
		rows := rain.Filter(domain.ColYear, year)
		data = append(data, Trace{
			Type:        "bar",
			Name:        year,
			LegendGroup: year,
			X:           keyValues(rows, domain.ColCountry),
			Y:           means(rows),
			Marker:      &Marker{Color: ColorFor(CityColors, year, i)},
			Hover:       "country=%{x}<br>year=" + year + "<br>" + domain.ColRainDays + "=%{y}<extra></extra>",
		})
	}

	fig := Figure{
		Data: data,
		Layout: Layout{
			Title:   &Title{Text: "Yaounde vs Dublin, Berlin & Madrid"},
			Height:  300,
			BarMode: "group",
			XAxis:   &Axis{Title: &Title{Text: domain.ColCountry}},
			YAxis:   &Axis{Title: &Title{Text: domain.ColRainDays}},
			Legend:  &Legend{Title: &Title{Text: domain.ColYear}},
		},
	}
	ApplyDarkTheme(&fig.Layout)
	return fig
}

// SnowByCountry is a bar chart of mean snow days per country, bars shaded by
// year on a continuous Blues scale.
func SnowByCountry(snow domain.AggregateTable) Figure {
	years := make([]float64, len(snow.Rows))
	for i, r := range snow.Rows {
		// Non-numeric years shade as the scale minimum.
		years[i], _ = strconv.ParseFloat(r.Keys[domain.ColYear], 64)
	}

	fig := Figure{
		Data: []Trace{{
			Type: "bar",
			X:    keyValues(snow.Rows, domain.ColCountry),
			Y:    means(snow.Rows),
			Marker: &Marker{
				Color:      years,
				ColorScale: ScaleBlues,
				ShowScale:  boolPtr(true),
				ColorBar:   &ColorBar{Title: &Title{Text: domain.ColYear}},
			},
			Hover: "City=%{x}<br>year=%{marker.color}<br>Number of Snowy Days=%{y}<extra></extra>",
		}},
		Layout: Layout{
			Title: &Title{Text: "Number of Snowy Days by City"},
			XAxis: &Axis{Title: &Title{Text: "City"}},
			YAxis: &Axis{Title: &Title{Text: "Number of Snowy Days"}},
		},
	}
	ApplyDarkTheme(&fig.Layout)
	return fig
}

func keyValues(rows []domain.Aggregate, key string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Keys[key]
	}
	return out
}

// means returns each row's mean, nil where the mean is missing.
func means(rows []domain.Aggregate) []*float64 {
	out := make([]*float64, len(rows))
	for i, r := range rows {
		if r.Valid {
			out[i] = floatPtr(r.Mean)
		}
	}
	return out
}
