package chart_test

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/city-conditions-dashboard/internal/chart"
	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{"country", "city", "year", "avg_temp_c", "will_it_rain_days", "will_it_snow_days"}

func aggregate(t *testing.T, rows [][]string, measure string) domain.AggregateTable {
	t.Helper()
	agg, err := domain.AggregateMean(domain.NewTable(columns, rows), []string{"country", "year"}, measure, domain.MissingSkip)
	require.NoError(t, err)
	return agg
}

func sampleRows() [][]string {
	return [][]string{
		{"Germany", "Berlin", "2023", "1", "4", "2"},
		{"Germany", "Berlin", "2023", "3", "6", "0"},
		{"Germany", "Berlin", "2024", "5", "3", "1"},
		{"Cameroon", "Yaounde", "2023", "24", "2", "0"},
		{"Ireland", "Dublin", "2024", "7", "5", ""},
		{"Spain", "Madrid", "2024", "12", "1", "0"},
	}
}

func TestRainByCountry_OneSeriesPerYear(t *testing.T) {
	fig := chart.RainByCountry(aggregate(t, sampleRows(), "will_it_rain_days"))

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "group", fig.Layout.BarMode)
	assert.Equal(t, 300, fig.Layout.Height)

	y2023 := fig.Data[0]
	assert.Equal(t, "bar", y2023.Type)
	assert.Equal(t, "2023", y2023.Name)
	assert.Equal(t, []string{"Cameroon", "Germany"}, y2023.X)
	require.Len(t, y2023.Y, 2)
	assert.InDelta(t, 2.0, *y2023.Y[0], 1e-9)
	assert.InDelta(t, 5.0, *y2023.Y[1], 1e-9)

	// Years are not in the city color map, so colors come from the palette.
	assert.Equal(t, chart.DefaultPalette[0], fig.Data[0].Marker.Color)
	assert.Equal(t, chart.DefaultPalette[1], fig.Data[1].Marker.Color)
}

func TestSnowByCountry_AxisLabelsAndScale(t *testing.T) {
	fig := chart.SnowByCountry(aggregate(t, sampleRows(), "will_it_snow_days"))

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "City", fig.Layout.XAxis.Title.Text)
	assert.Equal(t, "Number of Snowy Days", fig.Layout.YAxis.Title.Text)
	assert.Equal(t, chart.ScaleBlues, fig.Data[0].Marker.ColorScale)
	assert.Equal(t, []float64{2023, 2023, 2024, 2024, 2024}, fig.Data[0].Marker.Color)

	// Ireland's only snow value is missing: the bar is null, not zero.
	assert.Equal(t, "Ireland", fig.Data[0].X[3])
	assert.Nil(t, fig.Data[0].Y[3])
}

func TestRainYearMap_StaticCategoricalTraces(t *testing.T) {
	fig := chart.RainYearMap(aggregate(t, sampleRows(), "will_it_rain_days"))

	assert.Empty(t, fig.Frames)
	assert.Empty(t, fig.Layout.Sliders)
	require.Len(t, fig.Data, 2)
	for _, tr := range fig.Data {
		assert.Equal(t, "choropleth", tr.Type)
		assert.Equal(t, "country names", tr.LocationMode)
		require.NotNil(t, tr.ShowScale)
		assert.False(t, *tr.ShowScale)
	}
	assert.Equal(t, []string{"Germany", "Ireland", "Spain"}, fig.Data[1].Locations)
}

func TestAnimatedMap_OneFramePerYear(t *testing.T) {
	rows := [][]string{
		{"Germany", "Berlin", "2023", "1", "4", "0"},
		{"Germany", "Berlin", "2024", "3", "6", "0"},
	}
	fig := chart.TemperatureAnimatedMap(aggregate(t, rows, "avg_temp_c"))

	require.Len(t, fig.Frames, 2)
	assert.Equal(t, "2023", fig.Frames[0].Name)
	assert.Equal(t, "2024", fig.Frames[1].Name)
	for i, want := range []float64{1, 3} {
		require.Len(t, fig.Frames[i].Data, 1)
		tr := fig.Frames[i].Data[0]
		assert.Equal(t, []string{"Germany"}, tr.Locations)
		require.Len(t, tr.Z, 1)
		assert.InDelta(t, want, *tr.Z[0], 1e-9)
		assert.InDelta(t, 1.0, *tr.ZMin, 1e-9)
		assert.InDelta(t, 3.0, *tr.ZMax, 1e-9)
	}
	assert.Equal(t, fig.Frames[0].Data, fig.Data)

	require.Len(t, fig.Layout.Sliders, 1)
	steps := fig.Layout.Sliders[0].Steps
	require.Len(t, steps, 2)
	assert.Equal(t, "2023", steps[0].Label)
	assert.Equal(t, "animate", steps[0].Method)
	assert.Equal(t, []any{[]string{"2024"}, chart.Animation()}, steps[1].Args)

	assert.Equal(t, "natural earth", fig.Layout.Geo.Projection.Type)
	assert.Equal(t, "world", fig.Layout.Geo.Scope)
	assert.Equal(t, 1000, fig.Layout.Width)
	assert.Equal(t, 400, fig.Layout.Height)
}

func TestRainAnimatedMap_IceScaleAndTiming(t *testing.T) {
	fig := chart.RainAnimatedMap(aggregate(t, sampleRows(), "will_it_rain_days"))

	require.Len(t, fig.Frames, 2)
	assert.Equal(t, chart.ScaleIce, fig.Data[0].ColorScale)
	assert.Equal(t, "City", fig.Layout.Legend.Title.Text)
	assert.Equal(t, 800, fig.Layout.Width)

	raw, err := json.Marshal(chart.Animation())
	require.NoError(t, err)
	assert.JSONEq(t, `{"frame":{"duration":1000,"redraw":true},"mode":"immediate","transition":{"duration":0,"easing":"linear"}}`, string(raw))
}

func TestDarkThemeOnEveryFigure(t *testing.T) {
	rain := aggregate(t, sampleRows(), "will_it_rain_days")
	for name, fig := range map[string]chart.Figure{
		"rain bar":  chart.RainByCountry(rain),
		"snow bar":  chart.SnowByCountry(aggregate(t, sampleRows(), "will_it_snow_days")),
		"year map":  chart.RainYearMap(rain),
		"rain anim": chart.RainAnimatedMap(rain),
		"temp anim": chart.TemperatureAnimatedMap(aggregate(t, sampleRows(), "avg_temp_c")),
	} {
		assert.Equal(t, "#222222", fig.Layout.PlotBgColor, name)
		assert.Equal(t, "#222222", fig.Layout.PaperBgColor, name)
		assert.Equal(t, "white", fig.Layout.Font.Color, name)
		if fig.Layout.Geo != nil {
			assert.Equal(t, "#222222", fig.Layout.Geo.BgColor, name)
		}
	}
}

func TestColorFor_Fallback(t *testing.T) {
	assert.Equal(t, "green", chart.ColorFor(chart.CityColors, "Yaounde", 7))
	assert.Equal(t, chart.DefaultPalette[2], chart.ColorFor(chart.CityColors, "Lagos", 2))
	assert.Equal(t, chart.DefaultPalette[1], chart.ColorFor(chart.CityColors, "Oslo", 11))
	assert.Equal(t, chart.DefaultPalette[0], chart.ColorFor(nil, "Berlin", 0))
}

func TestFigures_Deterministic(t *testing.T) {
	build := func() chart.Figure {
		return chart.TemperatureAnimatedMap(aggregate(t, sampleRows(), "avg_temp_c"))
	}
	if diff := cmp.Diff(build(), build()); diff != "" {
		t.Fatalf("figure not reproducible (-first +second):\n%s", diff)
	}
}

func TestFigure_MissingMeanSerializesAsNull(t *testing.T) {
	rows := [][]string{{"Germany", "Berlin", "2023", "NA", "1", "0"}}
	fig := chart.TemperatureAnimatedMap(aggregate(t, rows, "avg_temp_c"))

	raw, err := json.Marshal(fig.Data[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"z":[null]`)
	assert.NotContains(t, string(raw), "zmin")
}
