// Package csvimport turns uploaded lead spreadsheets into validated rows.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxRows caps how many data rows one import may carry
const DefaultMaxRows = 1000

// Column keys after header canonicalization
const (
	ColName       = "name"
	ColWebsiteURL = "websiteUrl"
	ColPhone      = "phone"
	ColEmail      = "email"
	ColCity       = "city"
	ColAddress    = "address"
)

// headerAliases maps a squashed header (lowercase, no spaces, dashes or
// underscores) to its column key.
var headerAliases = map[string]string{
	"name":         ColName,
	"businessname": ColName,
	"company":      ColName,
	"companyname":  ColName,
	"websiteurl":   ColWebsiteURL,
	"website":      ColWebsiteURL,
	"url":          ColWebsiteURL,
	"site":         ColWebsiteURL,
	"phone":        ColPhone,
	"phonenumber":  ColPhone,
	"telephone":    ColPhone,
	"tel":          ColPhone,
	"email":        ColEmail,
	"emailaddress": ColEmail,
	"city":         ColCity,
	"address":      ColAddress,
}

// Row is one shape-valid lead row. Number is the 1-based data row, header excluded.
type Row struct {
	Number     int    `json:"row"`
	Name       string `json:"name"`
	WebsiteURL string `json:"websiteUrl"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	City       string `json:"city,omitempty"`
	Address    string `json:"address,omitempty"`
}

// RowError reports a row that was dropped before deduplication
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// Batch is the result of validating one submission. Rows keep file order.
type Batch struct {
	Rows   []Row      `json:"rows"`
	Errors []RowError `json:"errors"`
}

type options struct {
	maxRows int
}

// Option configures parsing
type Option func(*options)

// WithMaxRows overrides DefaultMaxRows. Rows past the limit are reported as errors.
func WithMaxRows(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxRows = n
		}
	}
}

func newOptions(opts []Option) options {
	o := options{maxRows: DefaultMaxRows}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Parse reads a CSV document with a header row and validates every data row.
// Only an unreadable header is returned as an error; problems with single rows
// end up in Batch.Errors.
func Parse(r io.Reader, opts ...Option) (*Batch, error) {
	o := newOptions(opts)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCSV
		}

		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	columns := mapHeader(header)
	if !hasColumn(columns, ColName) || !hasColumn(columns, ColWebsiteURL) {
		return nil, ErrMissingColumns
	}

	batch := &Batch{}
	number := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		number++

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				batch.Errors = append(batch.Errors, RowError{Row: number, Message: "malformed CSV row"})
				continue
			}

			return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
		}

		if isBlank(record) {
			number--
			continue
		}

		batch.add(number, recordToFields(columns, record), o)
	}

	return batch, nil
}

// Validate applies the row rules to rows submitted as JSON objects. Keys are
// matched with the same aliases as CSV headers.
func Validate(rows []map[string]string, opts ...Option) *Batch {
	o := newOptions(opts)
	batch := &Batch{}

	for i, raw := range rows {
		fields := make(map[string]string, len(raw))

		for k, v := range raw {
			if col, ok := headerAliases[squash(k)]; ok {
				fields[col] = v
			}
		}

		batch.add(i+1, fields, o)
	}

	return batch
}

func (b *Batch) add(number int, fields map[string]string, o options) {
	if number > o.maxRows {
		b.Errors = append(b.Errors, RowError{Row: number, Message: fmt.Sprintf("row limit of %d exceeded", o.maxRows)})
		return
	}

	row := Row{
		Number:     number,
		Name:       strings.TrimSpace(fields[ColName]),
		WebsiteURL: strings.TrimSpace(fields[ColWebsiteURL]),
		Phone:      strings.TrimSpace(fields[ColPhone]),
		Email:      strings.TrimSpace(fields[ColEmail]),
		City:       strings.TrimSpace(fields[ColCity]),
		Address:    strings.TrimSpace(fields[ColAddress]),
	}

	switch {
	case row.Name == "" && row.WebsiteURL == "":
		b.Errors = append(b.Errors, RowError{Row: number, Message: "name and website URL are required"})
	case row.Name == "":
		b.Errors = append(b.Errors, RowError{Row: number, Message: "name is required"})
	case row.WebsiteURL == "":
		b.Errors = append(b.Errors, RowError{Row: number, Message: "website URL is required"})
	default:
		b.Rows = append(b.Rows, row)
	}
}

// mapHeader returns column key -> record index. The first matching header wins.
func mapHeader(header []string) map[string]int {
	columns := make(map[string]int, len(header))

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}

		col, ok := headerAliases[squash(h)]
		if !ok {
			continue
		}

		if _, dup := columns[col]; !dup {
			columns[col] = i
		}
	}

	return columns
}

func hasColumn(columns map[string]int, col string) bool {
	_, ok := columns[col]
	return ok
}

func recordToFields(columns map[string]int, record []string) map[string]string {
	fields := make(map[string]string, len(columns))

	for col, idx := range columns {
		if idx < len(record) {
			fields[col] = record[idx]
		}
	}

	return fields
}

func squash(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))

	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
