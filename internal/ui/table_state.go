package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/songtable/internal/models"
)

// DefaultPageSize is the page size of a new [TableState].
const DefaultPageSize = 10

// PageSizes lists the page sizes a table may use, in cycling order.
var PageSizes = []int{10, 25, 50}

var ErrInvalidPageSize = errors.New("page size must be 10, 25 or 50")

// Column identifies a sortable table column.
type Column int

const (
	ColumnNone Column = iota
	ColumnBand
	ColumnName
	ColumnYear
)

// Columns lists the displayed columns in order.
var Columns = []Column{ColumnBand, ColumnName, ColumnYear}

func (c Column) String() string {
	switch c {
	case ColumnBand:
		return "band"
	case ColumnName:
		return "name"
	case ColumnYear:
		return "year"
	default:
		return ""
	}
}

// Title is the column header shown to users.
func (c Column) Title() string {
	switch c {
	case ColumnBand:
		return "Band"
	case ColumnName:
		return "Song"
	case ColumnYear:
		return "Year"
	default:
		return ""
	}
}

// Value returns the string form of the column's field, which is also the sort key.
func (c Column) Value(s *models.Song) string {
	switch c {
	case ColumnBand:
		return s.Band()
	case ColumnName:
		return s.Name()
	case ColumnYear:
		return strconv.Itoa(s.Year())
	default:
		return ""
	}
}

// ParseColumn maps "band", "name" (or "song") and "year" to a [Column].
func ParseColumn(s string) (Column, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "band":
		return ColumnBand, true
	case "name", "song":
		return ColumnName, true
	case "year":
		return ColumnYear, true
	default:
		return ColumnNone, false
	}
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortDirection maps "desc" to [Descending]; anything else is [Ascending].
func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Descending
	}
	return Ascending
}

// TableState filters, sorts and paginates a set of songs entirely in memory.
//
// Records keep the order they were given in until a sort column is chosen.
// Sorting compares the string form of each field, so years sort lexically.
type TableState struct {
	records  []*models.Song
	query    string
	sortCol  Column
	sortDir  SortDirection
	page     int
	pageSize int
}

// NewTableState creates an empty table on page 1 with [DefaultPageSize] rows per page.
func NewTableState() *TableState {
	return &TableState{page: 1, pageSize: DefaultPageSize}
}

// SetRecords replaces the record set and clamps the current page.
func (t *TableState) SetRecords(songs []*models.Song) {
	t.records = slices.Clone(songs)
	t.clampPage()
}

// Records returns the full, unfiltered record set.
func (t *TableState) Records() []*models.Song { return t.records }

// Len is the number of records before filtering.
func (t *TableState) Len() int { return len(t.records) }

// SetSearch sets the global filter and returns to page 1.
func (t *TableState) SetSearch(q string) {
	t.query = q
	t.page = 1
}

// Search returns the current global filter.
func (t *TableState) Search() string { return t.query }

// ToggleSort sorts ascending by a new column, or flips the direction of the current one.
func (t *TableState) ToggleSort(col Column) {
	if col == ColumnNone {
		return
	}
	if t.sortCol == col {
		if t.sortDir == Ascending {
			t.sortDir = Descending
		} else {
			t.sortDir = Ascending
		}
		return
	}
	t.sortCol = col
	t.sortDir = Ascending
}

// SetSort sets the sort column and direction directly. [ColumnNone] restores record order.
func (t *TableState) SetSort(col Column, dir SortDirection) {
	t.sortCol = col
	t.sortDir = dir
}

// Sort returns the sort column and direction. The column is [ColumnNone] when unsorted.
func (t *TableState) Sort() (Column, SortDirection) { return t.sortCol, t.sortDir }

// SetPageSize changes the page size and returns to page 1.
func (t *TableState) SetPageSize(n int) error {
	if !slices.Contains(PageSizes, n) {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, n)
	}
	t.pageSize = n
	t.page = 1
	return nil
}

// PageSize returns the number of rows per page.
func (t *TableState) PageSize() int { return t.pageSize }

// CyclePageSize moves to the next entry of [PageSizes], wrapping around.
func (t *TableState) CyclePageSize() {
	i := slices.Index(PageSizes, t.pageSize)
	_ = t.SetPageSize(PageSizes[(i+1)%len(PageSizes)])
}

// SetPage moves to page p, clamped to the available pages.
func (t *TableState) SetPage(p int) {
	t.page = p
	t.clampPage()
}

// Page returns the current 1-based page.
func (t *TableState) Page() int { return t.page }

// NextPage advances one page unless already on the last.
func (t *TableState) NextPage() { t.SetPage(t.page + 1) }

// PrevPage goes back one page unless already on the first.
func (t *TableState) PrevPage() { t.SetPage(t.page - 1) }

// PageCount is the number of pages of filtered rows, at least 1.
func (t *TableState) PageCount() int {
	return pageCount(len(t.filtered()), t.pageSize)
}

// Filtered is the number of records matching the search.
func (t *TableState) Filtered() int { return len(t.filtered()) }

// Rows returns the current page of filtered, sorted records.
func (t *TableState) Rows() []*models.Song {
	rows := t.sorted(t.filtered())
	t.page = clamp(t.page, 1, pageCount(len(rows), t.pageSize))

	start := (t.page - 1) * t.pageSize
	if start >= len(rows) {
		return []*models.Song{}
	}
	end := min(start+t.pageSize, len(rows))
	return rows[start:end]
}

// Matches reports whether s matches the search query q: a case-insensitive substring of name, band or year.
func Matches(s *models.Song, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, col := range Columns {
		if strings.Contains(strings.ToLower(col.Value(s)), q) {
			return true
		}
	}
	return false
}

func (t *TableState) filtered() []*models.Song {
	out := make([]*models.Song, 0, len(t.records))
	for _, s := range t.records {
		if Matches(s, t.query) {
			out = append(out, s)
		}
	}
	return out
}

func (t *TableState) sorted(rows []*models.Song) []*models.Song {
	if t.sortCol == ColumnNone {
		return rows
	}
	col, desc := t.sortCol, t.sortDir == Descending
	slices.SortStableFunc(rows, func(a, b *models.Song) int {
		c := strings.Compare(col.Value(a), col.Value(b))
		if desc {
			return -c
		}
		return c
	})
	return rows
}

func (t *TableState) clampPage() {
	t.page = clamp(t.page, 1, t.PageCount())
}

func pageCount(n, size int) int {
	if size <= 0 {
		return 1
	}
	return max(1, (n+size-1)/size)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
