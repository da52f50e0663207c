package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/server"
	"github.com/desertthunder/songtable/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler renders the song table page and accepts upload and clear form posts.
type Handler struct {
	library server.Library
	logger  *log.Logger
	tmpl    *template.Template
}

// NewHandler parses the embedded templates and returns a [Handler] backed by library.
func NewHandler(library server.Library, logger *log.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{library: library, logger: logger, tmpl: tmpl}, nil
}

// Routes returns the HTTP routes this handler serves.
func (h *Handler) Routes() []string {
	return []string{"/{$}", "/upload", "/clear"}
}

// ServeHTTP dispatches on path and enforces each route's method.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/":
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			server.MethodNotAllowed(w, http.MethodGet)
			return
		}
		h.index(w, r)
	case "/upload":
		if r.Method != http.MethodPost {
			server.MethodNotAllowed(w, http.MethodPost)
			return
		}
		h.upload(w, r)
	case "/clear":
		if r.Method != http.MethodPost {
			server.MethodNotAllowed(w, http.MethodPost)
			return
		}
		h.clear(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	params := ParseParams(r.URL.Query())

	songs, err := h.library.List(r.Context(), "")
	if err != nil {
		h.logger.Error("failed to list songs", "error", err)
		params.Error = server.MessageFor(err)
	}

	state := params.Apply(songs)
	page := newPageData(params, state)

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "index.html", page); err != nil {
		h.logger.Error("failed to render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := server.ReadUpload(r, "file")
	if err != nil {
		h.redirect(w, r, "", server.MessageFor(err))
		return
	}

	res, err := h.library.Import(r.Context(), data, contentType, nil)
	if err != nil {
		h.redirect(w, r, "", server.MessageFor(err))
		return
	}
	h.redirect(w, r, fmt.Sprintf("Uploaded %d rows.", res.Total), "")
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	n, err := h.library.Clear(r.Context())
	if err != nil {
		h.redirect(w, r, "", server.MessageFor(err))
		return
	}
	h.redirect(w, r, fmt.Sprintf("Cleared %d songs.", n), "")
}

// redirect sends the browser back to the table with a flash message.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, msg, errMsg string) {
	q := url.Values{}
	if msg != "" {
		q.Set("msg", msg)
	}
	if errMsg != "" {
		q.Set("err", errMsg)
	}

	target := "/"
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Params is the table state carried in the page URL.
type Params struct {
	Query    string
	Sort     ui.Column
	Dir      ui.SortDirection
	Page     int
	PageSize int
	Message  string
	Error    string
}

// ParseParams reads q, sort, dir, page, size, msg and err. Invalid values fall back to defaults.
func ParseParams(v url.Values) Params {
	p := Params{
		Query:    v.Get("q"),
		Dir:      ui.ParseSortDirection(v.Get("dir")),
		Page:     1,
		PageSize: ui.DefaultPageSize,
		Message:  v.Get("msg"),
		Error:    v.Get("err"),
	}
	if col, ok := ui.ParseColumn(v.Get("sort")); ok {
		p.Sort = col
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil {
		p.Page = n
	}
	if n, err := strconv.Atoi(v.Get("size")); err == nil && slices.Contains(ui.PageSizes, n) {
		p.PageSize = n
	}
	return p
}

// Apply builds a [ui.TableState] over songs from p. The page is clamped to the filtered rows.
func (p Params) Apply(songs []*models.Song) *ui.TableState {
	state := ui.NewTableState()
	state.SetRecords(songs)
	_ = state.SetPageSize(p.PageSize)
	state.SetSearch(p.Query)
	state.SetSort(p.Sort, p.Dir)
	state.SetPage(p.Page)
	return state
}

// Values encodes p as URL query values, omitting defaults and flash messages.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.Sort != ui.ColumnNone {
		v.Set("sort", p.Sort.String())
		v.Set("dir", p.Dir.String())
	}
	if p.Page > 1 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize != ui.DefaultPageSize {
		v.Set("size", strconv.Itoa(p.PageSize))
	}
	return v
}

// URL returns the page link for p.
func (p Params) URL() string {
	if q := p.Values().Encode(); q != "" {
		return "/?" + q
	}
	return "/"
}
