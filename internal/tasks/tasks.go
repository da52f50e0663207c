package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/ingest"
	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
)

// SongStore is the persistence the engine needs.
//
// Satisfied by repositories.SongRepository.
type SongStore interface {
	UpsertMany(ctx context.Context, songs []models.SongInput) (int, error)
	List(ctx context.Context, order models.OrderKey) ([]*models.Song, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) (int64, error)
}

// LibraryEngine implements the list, import and clear operations over a [SongStore].
type LibraryEngine struct {
	store  SongStore
	logger *log.Logger
}

// NewLibraryEngine creates a new LibraryEngine. A nil logger falls back to [log.Default].
func NewLibraryEngine(store SongStore, logger *log.Logger) *LibraryEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &LibraryEngine{store: store, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// List returns every stored song ordered by the given key. Unknown keys order by band.
func (e *LibraryEngine) List(ctx context.Context, order string) ([]*models.Song, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}

	songs, err := e.store.List(ctx, models.ParseOrderKey(order))
	if err != nil {
		e.logger.Error("failed to list songs", "order", order, "error", err)
		return nil, fmt.Errorf("%w: failed to list songs", shared.ErrPersistence)
	}
	if songs == nil {
		songs = []*models.Song{}
	}
	return songs, nil
}

// Import parses data as a CSV upload and upserts every row in a single transaction.
//
// Nothing is written unless every row is valid.
func (e *LibraryEngine) Import(ctx context.Context, data []byte, contentType string, progress chan<- ProgressUpdate) (*models.UploadResult, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, parsingUpdate(len(data)))

	res, err := ingest.Parse(data, contentType)
	if err != nil {
		e.logger.Warn("rejected upload", "content_type", contentType, "error", err)
		return nil, err
	}

	e.sendProgress(progress, savingUpdate(res))

	if _, err := e.store.UpsertMany(ctx, res.Songs); err != nil {
		if errors.Is(err, shared.ErrInvalidSong) || errors.Is(err, shared.ErrNothingToSave) {
			return nil, err
		}
		e.logger.Error("failed to upsert songs", "rows", res.Total, "error", err)
		return nil, shared.ErrPersistence
	}

	e.logger.Info("imported songs", "rows", res.Total, "unique", len(res.Songs))
	e.sendProgress(progress, doneUpdate(res.Total))

	return &models.UploadResult{OK: true, Total: res.Total}, nil
}

// Clear deletes every stored song and reports how many were removed.
func (e *LibraryEngine) Clear(ctx context.Context) (int64, error) {
	if e.store == nil {
		return 0, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}

	n, err := e.store.Clear(ctx)
	if err != nil {
		e.logger.Error("failed to clear songs", "error", err)
		return 0, fmt.Errorf("%w: failed to clear songs", shared.ErrPersistence)
	}

	e.logger.Info("cleared songs", "deleted", n)
	return n, nil
}

// Count returns the number of stored songs.
func (e *LibraryEngine) Count(ctx context.Context) (int, error) {
	if e.store == nil {
		return 0, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}

	n, err := e.store.Count(ctx)
	if err != nil {
		e.logger.Error("failed to count songs", "error", err)
		return 0, fmt.Errorf("%w: failed to count songs", shared.ErrPersistence)
	}
	return n, nil
}
