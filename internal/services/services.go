package services

import (
	"context"
	"io"

	"github.com/desertthunder/songtable/internal/models"
)

// SongService defines the operations a presentation layer needs from the song server.
type SongService interface {
	// ListSongs fetches every song ordered by the given key (name, band or year).
	ListSongs(ctx context.Context, order string) ([]*models.Song, error)

	// UploadCSV posts the CSV read from r as a multipart upload named filename.
	UploadCSV(ctx context.Context, filename string, r io.Reader) (*models.UploadResult, error)

	// ClearSongs deletes every song on the server.
	ClearSongs(ctx context.Context) error

	// Health reports the server status and song count.
	Health(ctx context.Context) (*HealthStatus, error)
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status string `json:"status"`
	Songs  int    `json:"songs"`
}
