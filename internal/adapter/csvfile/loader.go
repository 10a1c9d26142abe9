// Package csvfile loads the conditions mart from a delimited text file.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/city-conditions-dashboard/internal/domain"
)

// Loader reads a delimited file with a header row into a domain.Table.
type Loader struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

// NewLoader creates a Loader for path. A zero delimiter means comma.
func NewLoader(path string, delimiter rune, logger *slog.Logger) *Loader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Loader{path: path, delimiter: delimiter, logger: logger}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string { return l.path }

// Load opens the file and parses it. A missing file is domain.ErrFileNotFound;
// a malformed header or row is domain.ErrParse.
func (l *Loader) Load() (*domain.Table, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, l.path)
		}
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	table, err := Read(f, l.delimiter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.path, err)
	}

	l.logger.Info("dataset loaded", "path", l.path, "rows", table.Len(), "columns", len(table.Columns))
	return table, nil
}

// Read parses delimited text from r. The first record is the header; column
// names are kept verbatim apart from surrounding whitespace and a UTF-8 BOM.
func Read(r io.Reader, delimiter rune) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	// Arity is checked below so the error names the offending line.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file, no header row", domain.ErrParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrParse, err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			return nil, fmt.Errorf("%w: header column %d is empty", domain.ErrParse, i+1)
		}
		columns[i] = h
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
		}
		if len(rec) != len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				domain.ErrParse, line, len(rec), len(columns))
		}
		rows = append(rows, rec)
	}

	return domain.NewTable(columns, rows), nil
}
