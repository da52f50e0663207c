package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"strconv"
	"strings"

	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
)

var (
	ErrUnsupportedContentType = errors.New("only CSV files are allowed")
	ErrEmptyFile              = errors.New("CSV file is empty")
	ErrMalformedCSV           = errors.New("malformed CSV")
	ErrMissingColumn          = errors.New("missing required column")
	ErrInvalidRow             = errors.New("invalid row")
	ErrNoRows                 = shared.ErrNothingToSave
)

var acceptedContentTypes = map[string]bool{
	"text/csv":                 true,
	"text/plain":               true,
	"application/vnd.ms-excel": true,
}

// Field identifies one of the three song columns.
type Field string

const (
	FieldName Field = "name"
	FieldBand Field = "band"
	FieldYear Field = "year"
)

var requiredFields = []Field{FieldName, FieldBand, FieldYear}

// headerAliases maps a normalized header cell to the field it names.
var headerAliases = map[string]Field{
	"name":         FieldName,
	"song":         FieldName,
	"song name":    FieldName,
	"title":        FieldName,
	"song title":   FieldName,
	"band":         FieldBand,
	"band name":    FieldBand,
	"artist":       FieldBand,
	"year":         FieldYear,
	"release year": FieldYear,
}

// Result is the outcome of a successful [Parse].
type Result struct {
	Songs     []models.SongInput // unique triples in file order
	Total     int                // data rows processed, duplicates included
	Delimiter rune
}

// HeaderError reports a header row without one of the required columns.
type HeaderError struct {
	Field  Field
	Header []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%v %q (header: %s)", ErrMissingColumn, e.Field, strings.Join(e.Header, ", "))
}

func (e *HeaderError) Unwrap() error { return ErrMissingColumn }

// RowError identifies the data row that made a batch invalid.
//
// Index is 1-based and excludes the header row.
type RowError struct {
	Index  int
	Raw    string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v %d (%q): %s", ErrInvalidRow, e.Index, e.Raw, e.Reason)
}

func (e *RowError) Unwrap() error { return ErrInvalidRow }

// ParseError wraps a failure of the CSV reader itself.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedCSV, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformedCSV, e.Err} }

// CheckContentType rejects anything but the CSV-like media types browsers send for .csv files.
func CheckContentType(contentType string) error {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !acceptedContentTypes[strings.ToLower(mediaType)] {
		return fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}
	return nil
}

// DetectDelimiter inspects the first line of data: ';' wins over tab, and ',' is the default.
func DetectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		line = data[:i]
	}

	switch {
	case bytes.ContainsRune(line, ';'):
		return ';'
	case bytes.ContainsRune(line, '\t'):
		return '\t'
	default:
		return ','
	}
}

// Parse validates contentType, then reads data as a headed CSV file of songs.
func Parse(data []byte, contentType string) (*Result, error) {
	if err := CheckContentType(contentType); err != nil {
		return nil, err
	}
	return ParseCSV(data)
}

// ParseCSV reads data as a headed CSV file of songs without checking a content type.
func ParseCSV(data []byte) (*Result, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	delimiter := DetectDelimiter(data)
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	// Skipping leading space would swallow empty tab-separated cells.
	reader.TrimLeadingSpace = delimiter != '\t'
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	columns, err := resolveHeader(header)
	if err != nil {
		return nil, err
	}

	result := &Result{Delimiter: delimiter}
	seen := make(map[string]bool)

	for index := 1; ; index++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}

		in, err := normalizeRow(record, columns)
		if err != nil {
			return nil, &RowError{
				Index:  index,
				Raw:    strings.Join(record, string(delimiter)),
				Reason: err.Error(),
			}
		}

		result.Total++
		if key := in.Key(); !seen[key] {
			seen[key] = true
			result.Songs = append(result.Songs, in)
		}
	}

	if result.Total == 0 {
		return nil, ErrNoRows
	}

	return result, nil
}

// NormalizeHeader lowercases a header cell and collapses runs of whitespace.
func NormalizeHeader(cell string) string {
	return strings.Join(strings.Fields(strings.ToLower(cell)), " ")
}

// resolveHeader maps each required field to its column index. The first matching column wins.
func resolveHeader(header []string) (map[Field]int, error) {
	columns := make(map[Field]int, len(requiredFields))
	for i, cell := range header {
		field, ok := headerAliases[NormalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, dup := columns[field]; !dup {
			columns[field] = i
		}
	}

	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			return nil, &HeaderError{Field: field, Header: header}
		}
	}

	return columns, nil
}

func normalizeRow(record []string, columns map[Field]int) (models.SongInput, error) {
	cell := func(f Field) string {
		if i := columns[f]; i < len(record) {
			return record[i]
		}
		return ""
	}

	in := models.SongInput{
		Name: shared.NormalizeText(cell(FieldName)),
		Band: shared.NormalizeText(cell(FieldBand)),
	}

	rawYear := strings.TrimSpace(cell(FieldYear))
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		if err := in.Validate(); err != nil {
			return in, err
		}
		return in, fmt.Errorf("year %q is not an integer", rawYear)
	}
	in.Year = year

	return in, in.Validate()
}
