package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
	"github.com/desertthunder/songtable/internal/tasks"
)

// maxMemory is the part of a multipart upload kept in memory before spilling to disk.
const maxMemory = 8 << 20

// Library is the song library behind the HTTP API. Implemented by [tasks.LibraryEngine].
type Library interface {
	List(ctx context.Context, order string) ([]*models.Song, error)
	Import(ctx context.Context, data []byte, contentType string, progress chan<- tasks.ProgressUpdate) (*models.UploadResult, error)
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

type route struct {
	method string
	fn     http.HandlerFunc
}

// SongsHandler serves the JSON song endpoints and the health check.
type SongsHandler struct {
	library Library
	logger  *log.Logger
	routes  map[string]route
}

// NewSongsHandler creates a [SongsHandler] backed by library.
func NewSongsHandler(library Library, logger *log.Logger) *SongsHandler {
	h := &SongsHandler{library: library, logger: logger}
	h.routes = map[string]route{
		"/api/songs":        {http.MethodGet, h.list},
		"/api/songs/upload": {http.MethodPost, h.upload},
		"/api/songs/clear":  {http.MethodDelete, h.clear},
		"/health":           {http.MethodGet, h.health},
	}
	return h
}

// Routes returns the HTTP routes this handler serves.
func (h *SongsHandler) Routes() []string {
	return []string{"/api/songs", "/api/songs/upload", "/api/songs/clear", "/health"}
}

// ServeHTTP dispatches on path and enforces each route's method.
func (h *SongsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt, ok := h.routes[r.URL.Path]
	switch {
	case !ok:
		WriteJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case r.Method != rt.method:
		MethodNotAllowed(w, rt.method)
	default:
		rt.fn(w, r)
	}
}

func (h *SongsHandler) list(w http.ResponseWriter, r *http.Request) {
	songs, err := h.library.List(r.Context(), r.URL.Query().Get("order"))
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, songs)
}

func (h *SongsHandler) upload(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := ReadUpload(r, "file")
	if err != nil {
		h.logger.Warn("bad upload", "error", err)
		WriteError(w, err)
		return
	}

	res, err := h.library.Import(r.Context(), data, contentType, nil)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

func (h *SongsHandler) clear(w http.ResponseWriter, r *http.Request) {
	if _, err := h.library.Clear(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, models.ClearResult{OK: true})
}

func (h *SongsHandler) health(w http.ResponseWriter, r *http.Request) {
	n, err := h.library.Count(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Songs: n})
}

// ReadUpload reads the multipart file in field and returns its bytes and declared content type.
//
// A request without the field reports [shared.ErrMissingFile]; a body over the size cap reports [http.MaxBytesError].
func ReadUpload(r *http.Request, field string) ([]byte, string, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("%w: %v", shared.ErrMissingFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", shared.ErrMissingFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read upload: %w", err)
	}

	return data, header.Header.Get("Content-Type"), nil
}
