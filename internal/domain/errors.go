package domain

import "errors"

var (
	// ErrFileNotFound is returned when the dataset path does not exist.
	ErrFileNotFound = errors.New("dataset file not found")

	// ErrParse is returned for a malformed header, a row whose arity differs
	// from the header, or a measure cell that is not a number.
	ErrParse = errors.New("dataset parse error")

	// ErrMissingColumn is returned when a grouping key or measure column is
	// absent from the table header.
	ErrMissingColumn = errors.New("missing column")
)
