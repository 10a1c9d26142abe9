package csvfile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoader_Load(t *testing.T) {
	table, err := NewLoader(filepath.Join("testdata", "conditions.csv"), 0, discardLogger()).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"country", "city", "year", "week", "avg_temp_c", "will_it_rain_days", "will_it_snow_days"}, table.Columns)
	assert.Equal(t, 5, table.Len())
	assert.Equal(t, "Yaounde", table.Value(2, domain.ColCity))
	assert.Equal(t, "", table.Value(4, domain.ColSnowDays))
	require.NoError(t, table.Require(domain.RequiredColumns...))
}

func TestLoader_FileNotFound(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), 0, discardLogger()).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Contains(t, err.Error(), "nope.csv")
}

func TestLoader_ArityMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("country,city,year\nGermany,Berlin,2023\nIreland,Dublin\n"), 0o600))

	_, err := NewLoader(path, 0, discardLogger()).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "line 3")
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""), ',')
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestRead_EmptyHeaderColumn(t *testing.T) {
	_, err := Read(strings.NewReader("country,,year\nDE,x,2023\n"), ',')
	assert.ErrorIs(t, err, domain.ErrParse)
}

func TestRead_SemicolonAndBOM(t *testing.T) {
	table, err := Read(strings.NewReader("\ufeffcountry; city ;year\nGermany;Berlin;2023\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "city", "year"}, table.Columns)
	assert.Equal(t, "Berlin", table.Value(0, "city"))
}

func TestRead_QuotedFieldsPassThrough(t *testing.T) {
	table, err := Read(strings.NewReader("country,city,note\n\"Korea, Republic of\",Seoul,\"a \"\"quoted\"\" note\"\n"), ',')
	require.NoError(t, err)
	assert.Equal(t, "Korea, Republic of", table.Value(0, "country"))
	assert.Equal(t, `a "quoted" note`, table.Value(0, "note"))
}
