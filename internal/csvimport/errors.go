package csvimport

import "errors"

var (
	// ErrEmptyCSV is returned when the upload has no header row
	ErrEmptyCSV = errors.New("csv file is empty")
	// ErrInvalidCSV is returned when the header row cannot be read
	ErrInvalidCSV = errors.New("invalid csv file")
	// ErrMissingColumns is returned when the header has no name or website column
	ErrMissingColumns = errors.New("csv must have name and website URL columns")
)
