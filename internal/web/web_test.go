package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/repositories"
	"github.com/desertthunder/songtable/internal/shared"
	"github.com/desertthunder/songtable/internal/tasks"
	tu "github.com/desertthunder/songtable/internal/testing"
	"github.com/desertthunder/songtable/internal/ui"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := shared.NewLogger(io.Discard)
	h, err := NewHandler(tasks.NewLibraryEngine(repositories.NewSongRepository(db), logger), logger)
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return h
}

func postCSV(t *testing.T, h http.Handler, content string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="songs.csv"`)
	header.Set("Content-Type", "text/csv")
	part, _ := mw.CreatePart(header)
	io.WriteString(part, content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, h http.Handler, target string) string {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s returned %d", target, rec.Code)
	}
	return rec.Body.String()
}

func flash(t *testing.T, rec *httptest.ResponseRecorder) url.Values {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad Location header: %v", err)
	}
	if loc.Path != "/" {
		t.Errorf("expected redirect to /, got %s", loc.Path)
	}
	return loc.Query()
}

func TestHandler(t *testing.T) {
	t.Run("empty page", func(t *testing.T) {
		body := get(t, newTestHandler(t), "/")
		if !strings.Contains(body, "No songs") {
			t.Error("expected empty-state message")
		}
		if !strings.Contains(body, `action="/upload"`) {
			t.Error("expected upload form")
		}
	})

	t.Run("upload then list", func(t *testing.T) {
		h := newTestHandler(t)

		q := flash(t, postCSV(t, h, tu.SongsCSV))
		if q.Get("msg") != "Uploaded 4 rows." {
			t.Errorf("unexpected flash %q", q.Get("msg"))
		}

		body := get(t, h, "/?msg="+url.QueryEscape(q.Get("msg")))
		for _, want := range []string{"Uploaded 4 rows.", "bohemian rhapsody", "radiohead", "1977", "4 songs"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected page to contain %q", want)
			}
		}
	})

	t.Run("invalid upload", func(t *testing.T) {
		h := newTestHandler(t)

		q := flash(t, postCSV(t, h, "name,band,year\nSong A,Band X,abc\n"))
		if !strings.Contains(q.Get("err"), `invalid row 1`) {
			t.Errorf("unexpected error flash %q", q.Get("err"))
		}
		if body := get(t, h, "/"); !strings.Contains(body, "No songs") {
			t.Error("expected nothing stored")
		}
	})

	t.Run("clear", func(t *testing.T) {
		h := newTestHandler(t)
		postCSV(t, h, tu.SongsCSV)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear", nil))
		if q := flash(t, rec); q.Get("msg") != "Cleared 4 songs." {
			t.Errorf("unexpected flash %q", q.Get("msg"))
		}
		if body := get(t, h, "/"); strings.Contains(body, "radiohead") {
			t.Error("expected songs to be gone")
		}
	})

	t.Run("search sort page", func(t *testing.T) {
		h := newTestHandler(t)

		var csv strings.Builder
		csv.WriteString("name,band,year\n")
		for i := 1; i <= 30; i++ {
			fmt.Fprintf(&csv, "song %02d,band %d,%d\n", i, i%3, 1990+i)
		}
		csv.WriteString("needle,haystack,1980\n")
		postCSV(t, h, csv.String())

		body := get(t, h, "/?q=haystack")
		if !strings.Contains(body, "needle") || !strings.Contains(body, "1 of 31 songs") {
			t.Error("expected search to narrow to the haystack row")
		}

		body = get(t, h, "/?sort=name&dir=desc&size=25&page=2")
		if !strings.Contains(body, "Page 2 of 2") {
			t.Error("expected second of two pages")
		}
		if !strings.Contains(body, "song 05") || strings.Contains(body, "song 06") {
			t.Error("expected descending name order on page 2")
		}

		body = get(t, h, "/?page=99")
		if !strings.Contains(body, "Page 4 of 4") {
			t.Error("expected page to clamp to the last page")
		}
	})

	t.Run("methods", func(t *testing.T) {
		h := newTestHandler(t)
		tests := []struct {
			method, path string
		}{
			{http.MethodPost, "/"},
			{http.MethodGet, "/upload"},
			{http.MethodGet, "/clear"},
		}
		for _, tt := range tests {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("%s %s: expected 405, got %d", tt.method, tt.path, rec.Code)
			}
		}
	})
}

func TestParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := ParseParams(url.Values{"size": {"7"}, "page": {"x"}, "sort": {"id"}})
		if p.PageSize != ui.DefaultPageSize || p.Page != 1 || p.Sort != ui.ColumnNone {
			t.Errorf("expected defaults for invalid values, got %+v", p)
		}
		if p.URL() != "/" {
			t.Errorf("expected bare URL, got %s", p.URL())
		}
	})

	t.Run("round trip", func(t *testing.T) {
		in := url.Values{"q": {"queen"}, "sort": {"year"}, "dir": {"desc"}, "page": {"2"}, "size": {"25"}}
		p := ParseParams(in)

		got, err := url.Parse(p.URL())
		if err != nil {
			t.Fatalf("bad URL: %v", err)
		}
		if got.Query().Encode() != in.Encode() {
			t.Errorf("URL() = %s, want query %s", p.URL(), in.Encode())
		}
	})

	t.Run("sort links toggle", func(t *testing.T) {
		p := ParseParams(url.Values{"sort": {"band"}})
		state := p.Apply(tu.Songs())
		data := newPageData(p, state)

		if data.Columns[0].Indicator != "▲" {
			t.Errorf("expected band ascending indicator, got %q", data.Columns[0].Indicator)
		}
		if !strings.Contains(data.Columns[0].SortURL, "dir=desc") {
			t.Errorf("expected band link to flip to desc, got %s", data.Columns[0].SortURL)
		}
		if !strings.Contains(data.Columns[1].SortURL, "sort=name") || !strings.Contains(data.Columns[1].SortURL, "dir=asc") {
			t.Errorf("expected song link to sort name asc, got %s", data.Columns[1].SortURL)
		}
	})
}

type failingLibrary struct{}

func (failingLibrary) List(context.Context, string) ([]*models.Song, error) {
	return nil, shared.ErrPersistence
}
func (failingLibrary) Import(context.Context, []byte, string, chan<- tasks.ProgressUpdate) (*models.UploadResult, error) {
	return nil, shared.ErrPersistence
}
func (failingLibrary) Clear(context.Context) (int64, error) { return 0, shared.ErrPersistence }
func (failingLibrary) Count(context.Context) (int, error)   { return 0, shared.ErrPersistence }

func TestHandler_StoreFailure(t *testing.T) {
	h, err := NewHandler(failingLibrary{}, shared.NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}

	body := get(t, h, "/")
	if !strings.Contains(body, "failed to save songs to the database") {
		t.Error("expected store error on the page")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear", nil))
	if q := flash(t, rec); q.Get("err") != "failed to save songs to the database" {
		t.Errorf("unexpected error flash %q", q.Get("err"))
	}
}
