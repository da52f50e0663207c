package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/desertthunder/songtable/internal/models"
)

// tableColumns builds the header row, marking the sorted column with an arrow.
//
// Extra width beyond the minimums goes to the Band and Song columns.
func tableColumns(sortCol Column, dir SortDirection, width int) []table.Column {
	widths := append([]int(nil), columnWidths...)
	if extra := width - sum(widths) - 8; extra > 0 {
		widths[0] += extra / 2
		widths[1] += extra - extra/2
	}

	cols := make([]table.Column, len(Columns))
	for i, c := range Columns {
		title := c.Title()
		if c == sortCol {
			if dir == Descending {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

// tableRows converts songs to table rows in [Columns] order.
func tableRows(songs []*models.Song) []table.Row {
	rows := make([]table.Row, len(songs))
	for i, s := range songs {
		row := make(table.Row, len(Columns))
		for j, c := range Columns {
			row[j] = c.Value(s)
		}
		rows[i] = row
	}
	return rows
}

// tableWidth is the rendered width of cols, counting one cell of padding on each side.
func tableWidth(cols []table.Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width + 2
	}
	return w
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
