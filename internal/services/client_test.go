package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/songtable/internal/shared"
	tu "github.com/desertthunder/songtable/internal/testing"
)

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("ListSongs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/songs" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("order"); got != "year" {
				t.Errorf("expected order=year, got %q", got)
			}
			w.Write([]byte(`[{"id":"1","name":"song a","band":"band x","year":1999,"created_at":"2025-01-01T00:00:00Z","updated_at":"2025-01-01T00:00:00Z"}]`))
		}))
		defer server.Close()

		songs, err := NewClient(server.URL, nil).ListSongs(ctx, "year")
		if err != nil {
			t.Fatalf("ListSongs() error = %v", err)
		}
		if len(songs) != 1 {
			t.Fatalf("expected 1 song, got %d", len(songs))
		}
		if songs[0].ID() != "1" || songs[0].Name() != "song a" || songs[0].Year() != 1999 {
			t.Errorf("unexpected song: %+v", songs[0])
		}
	})

	t.Run("ListSongs Without Order", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				t.Errorf("expected no query, got %q", r.URL.RawQuery)
			}
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		songs, err := NewClient(server.URL, nil).ListSongs(ctx, "")
		if err != nil {
			t.Fatalf("ListSongs() error = %v", err)
		}
		if songs == nil || len(songs) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", songs)
		}
	})

	t.Run("ListSongs Bad JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"not":"a list"}`))
		}))
		defer server.Close()

		if _, err := NewClient(server.URL, nil).ListSongs(ctx, ""); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("UploadCSV", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/api/songs/upload" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}

			file, header, err := r.FormFile("file")
			if err != nil {
				t.Errorf("expected file field: %v", err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			defer file.Close()

			if ct := header.Header.Get("Content-Type"); ct != "text/csv" {
				t.Errorf("expected part type text/csv, got %q", ct)
			}
			if header.Filename != "songs.csv" {
				t.Errorf("expected base filename, got %q", header.Filename)
			}
			data, _ := io.ReadAll(file)
			if string(data) != tu.SongsCSV {
				t.Errorf("unexpected file content %q", data)
			}

			w.Write([]byte(`{"ok":true,"total":4}`))
		}))
		defer server.Close()

		res, err := NewClient(server.URL, nil).UploadCSV(ctx, "/tmp/data/songs.csv", strings.NewReader(tu.SongsCSV))
		if err != nil {
			t.Fatalf("UploadCSV() error = %v", err)
		}
		if !res.OK || res.Total != 4 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("UploadCSV Rejected", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"ok":false,"error":"invalid row 2 (\"b,c,abc\"): year \"abc\" is not an integer"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.URL, nil).UploadCSV(ctx, "bad.csv", strings.NewReader("name,band,year\n"))

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.StatusCode != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", apiErr.StatusCode)
		}
		if !strings.HasPrefix(apiErr.Message, "invalid row 2") {
			t.Errorf("expected server message, got %q", apiErr.Message)
		}
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Error("expected APIError to wrap ErrAPIRequest")
		}
	})

	t.Run("UploadCSV Nil Reader", func(t *testing.T) {
		if _, err := NewClient("http://example.com", nil).UploadCSV(ctx, "x.csv", nil); !errors.Is(err, shared.ErrMissingFile) {
			t.Errorf("expected ErrMissingFile, got %v", err)
		}
	})

	t.Run("UploadCSV Read Failure", func(t *testing.T) {
		_, err := NewClient("http://example.com", nil).UploadCSV(ctx, "x.csv", &tu.FCloser{})
		if err == nil || !strings.Contains(err.Error(), "failed to read CSV") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("ClearSongs", func(t *testing.T) {
		var called bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = r.Method == http.MethodDelete && r.URL.Path == "/api/songs/clear"
			w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		if err := NewClient(server.URL, nil).ClearSongs(ctx); err != nil {
			t.Fatalf("ClearSongs() error = %v", err)
		}
		if !called {
			t.Error("expected DELETE /api/songs/clear")
		}
	})

	t.Run("ClearSongs Server Error Without Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := NewClient(server.URL, nil).ClearSongs(ctx)

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected *APIError, got %v", err)
		}
		if apiErr.Message != "Internal Server Error" {
			t.Errorf("expected status text, got %q", apiErr.Message)
		}
	})

	t.Run("Health", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status":"ok","songs":12}`))
		}))
		defer server.Close()

		status, err := NewClient(server.URL, nil).Health(ctx)
		if err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if status.Status != "ok" || status.Songs != 12 {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("Health Unreachable", func(t *testing.T) {
		client := &http.Client{Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused"))}
		_, err := NewClient("http://example.com", client).Health(ctx)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}
