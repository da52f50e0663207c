package web

import (
	"strconv"

	"github.com/desertthunder/songtable/internal/ui"
)

type columnHeader struct {
	Title     string
	SortURL   string
	Indicator string
}

type pageSizeOption struct {
	Size     int
	URL      string
	Selected bool
}

// pageData is the view model of templates/index.html.
type pageData struct {
	Params    Params
	Columns   []columnHeader
	Rows      [][]string
	Page      int
	PageCount int
	Filtered  int
	Total     int
	PrevURL   string
	NextURL   string
	PageSizes []pageSizeOption
}

func newPageData(p Params, state *ui.TableState) pageData {
	rows := state.Rows()
	// Rows clamps the page; links are built from the clamped value.
	p.Page = state.Page()

	data := pageData{
		Params:    p,
		Page:      p.Page,
		PageCount: state.PageCount(),
		Filtered:  state.Filtered(),
		Total:     state.Len(),
	}

	for _, col := range ui.Columns {
		link := p
		link.Page = 1
		if p.Sort == col && p.Dir == ui.Ascending {
			link.Dir = ui.Descending
		} else {
			link.Dir = ui.Ascending
		}
		link.Sort = col

		header := columnHeader{Title: col.Title(), SortURL: link.URL()}
		if p.Sort == col {
			header.Indicator = "▲"
			if p.Dir == ui.Descending {
				header.Indicator = "▼"
			}
		}
		data.Columns = append(data.Columns, header)
	}

	for _, s := range rows {
		row := make([]string, len(ui.Columns))
		for i, col := range ui.Columns {
			row[i] = col.Value(s)
		}
		data.Rows = append(data.Rows, row)
	}

	if p.Page > 1 {
		prev := p
		prev.Page--
		data.PrevURL = prev.URL()
	}
	if p.Page < data.PageCount {
		next := p
		next.Page++
		data.NextURL = next.URL()
	}

	for _, n := range ui.PageSizes {
		link := p
		link.Page = 1
		link.PageSize = n
		data.PageSizes = append(data.PageSizes, pageSizeOption{Size: n, URL: link.URL(), Selected: n == p.PageSize})
	}

	return data
}

// Summary is the "x of y songs" line under the table.
func (d pageData) Summary() string {
	if d.Filtered == d.Total {
		return strconv.Itoa(d.Total) + " songs"
	}
	return strconv.Itoa(d.Filtered) + " of " + strconv.Itoa(d.Total) + " songs"
}
