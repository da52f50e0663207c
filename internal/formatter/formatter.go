// package formatter provides functions to export song lists to various formats (CSV, JSON, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists every supported export format.
var Formats = []Format{FormatCSV, FormatJSON, FormatMarkdown, FormatText}

// ParseFormat accepts a format name or a common alias ("md", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Ext returns the file extension, without a dot, used for f.
func (f Format) Ext() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// ExportToCSV converts songs to CSV with the columns name, band, year.
//
// The output is accepted as an upload as-is.
func ExportToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"name", "band", "year"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, s := range songs {
		if err := writer.Write([]string{s.Name(), s.Band(), strconv.Itoa(s.Year())}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts songs to an indented JSON array.
func ExportToJSON(songs []*models.Song) ([]byte, error) {
	if songs == nil {
		songs = []*models.Song{}
	}
	return shared.MarshalJSON(songs, true)
}

// ExportToMarkdown converts songs to a Markdown table under a title heading
func ExportToMarkdown(songs []*models.Song, title string) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Songs"
	}
	fmt.Fprintf(&buf, "# %s\n\n", title)
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(songs))

	if len(songs) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| Band | Song | Year |\n")
	buf.WriteString("| --- | --- | --- |\n")
	for _, s := range songs {
		fmt.Fprintf(&buf, "| %s | %s | %d |\n", escapeCell(s.Band()), escapeCell(s.Name()), s.Year())
	}

	return buf.Bytes(), nil
}

// ExportToText converts songs to numbered "band - name (year)" lines
func ExportToText(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Songs: %d\n\n", len(songs))
	for i, s := range songs {
		fmt.Fprintf(&buf, "%d. %s - %s (%d)\n", i+1, s.Band(), s.Name(), s.Year())
	}

	return buf.Bytes(), nil
}

// Export renders songs in the given format.
func Export(songs []*models.Song, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(songs)
	case FormatJSON:
		return ExportToJSON(songs)
	case FormatMarkdown:
		return ExportToMarkdown(songs, "")
	case FormatText:
		return ExportToText(songs)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders songs and writes them to path, creating parent directories.
//
// Defaults to songs.{ext} in the working directory. Returns the path written.
func WriteExport(songs []*models.Song, format Format, path string) (string, error) {
	if path == "" {
		path = "songs." + format.Ext()
	}

	data, err := Export(songs, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
