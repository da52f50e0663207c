package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/songtable/internal/ingest"
	"github.com/desertthunder/songtable/internal/shared"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Songs  int    `json:"songs"`
}

var clientErrors = []error{
	shared.ErrMissingFile,
	shared.ErrInvalidSong,
	shared.ErrNothingToSave,
	shared.ErrInvalidInput,
	shared.ErrInvalidArgument,
	ingest.ErrUnsupportedContentType,
	ingest.ErrEmptyFile,
	ingest.ErrMalformedCSV,
	ingest.ErrMissingColumn,
	ingest.ErrInvalidRow,
}

// StatusFor maps an error to the HTTP status reported to clients.
func StatusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &maxBytes), errors.Is(err, shared.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, shared.ErrRateLimited):
		return http.StatusTooManyRequests
	}

	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// MessageFor returns the client-facing message for err.
//
// Unclassified errors are reported generically so internals never reach the response.
func MessageFor(err error) string {
	switch StatusFor(err) {
	case http.StatusRequestEntityTooLarge:
		return shared.ErrFileTooLarge.Error()
	case http.StatusInternalServerError:
		if errors.Is(err, shared.ErrPersistence) {
			return shared.ErrPersistence.Error()
		}
		return http.StatusText(http.StatusInternalServerError)
	default:
		return err.Error()
	}
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorResponse] with the status from [StatusFor].
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorResponse{OK: false, Error: MessageFor(err)})
}

// MethodNotAllowed writes a 405 naming the allowed method.
func MethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	WriteJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
}
