package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Require(t *testing.T) {
	tbl := domain.NewTable([]string{"country", "city", "year"}, nil)

	require.NoError(t, tbl.Require("country", "year"))

	err := tbl.Require(domain.RequiredColumns...)
	require.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "avg_temp_c")
	assert.Contains(t, err.Error(), "will_it_snow_days")
	assert.NotContains(t, err.Error(), "city")
}

func TestTable_Observation(t *testing.T) {
	tbl := domain.NewTable(testColumns, [][]string{
		row("Cameroon", "Yaounde", "2024", "24.5", "3", ""),
		row("Cameroon", "Yaounde", "twenty", "24.5", "3", "0"),
	})

	obs, err := tbl.Observation(0)
	require.NoError(t, err)
	assert.Equal(t, "Cameroon", obs.Country)
	assert.Equal(t, "Yaounde", obs.City)
	assert.Equal(t, 2024, obs.Year)
	assert.InDelta(t, 24.5, obs.AvgTempC, 1e-9)
	assert.InDelta(t, 3.0, obs.RainDays, 1e-9)
	assert.True(t, math.IsNaN(obs.SnowDays))

	_, err = tbl.Observation(1)
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestParseMeasure(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		present bool
		wantErr bool
	}{
		{in: "1.5", want: 1.5, present: true},
		{in: " 7 ", want: 7, present: true},
		{in: "", present: false},
		{in: "NaN", present: false},
		{in: "null", present: false},
		{in: "n/a", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "+Inf", wantErr: true},
		{in: "-infinity", wantErr: true},
		{in: "1e400", wantErr: true},
	}
	for _, tc := range cases {
		v, present, err := domain.ParseMeasure(tc.in)
		if tc.wantErr {
			assert.ErrorIs(t, err, domain.ErrParse, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.present, present, tc.in)
		assert.InDelta(t, tc.want, v, 1e-9, tc.in)
	}
}

func TestNow_UsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, time.June, 3, 9, 30, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { domain.SetClock(nil) })

	assert.Equal(t, fixed, domain.Now())
}
