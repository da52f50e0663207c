package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/shared"
)

const songColumns = "id, sequence, name, band, year, created_at, updated_at"

// SongRepository persists [models.Song] rows.
//
// The (name, band, year) triple is unique; writing an existing triple refreshes updated_at and keeps the
// original id and sequence.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// UpsertMany stores every input in a single transaction and returns the number of rows written.
//
// Either every row is stored or none is.
func (r *SongRepository) UpsertMany(ctx context.Context, inputs []models.SongInput) (int, error) {
	if len(inputs) == 0 {
		return 0, shared.ErrNothingToSave
	}

	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			return 0, fmt.Errorf("%w: row %d: %v", shared.ErrInvalidSong, i+1, err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, sequence, name, band, year, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name, band, year) DO UPDATE SET updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, in := range inputs {
		sequence, err := NextSequence(ctx, tx, "songs")
		if err != nil {
			return 0, fmt.Errorf("failed to generate sequence: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, shared.GenerateID(), sequence, in.Name, in.Band, in.Year, now, now); err != nil {
			return 0, fmt.Errorf("failed to upsert song %q by %q: %w", in.Name, in.Band, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit upsert: %w", err)
	}

	return len(inputs), nil
}

// Get retrieves a song by ID
func (r *SongRepository) Get(ctx context.Context, id string) (*models.Song, error) {
	query := "SELECT " + songColumns + " FROM songs WHERE id = ?"

	song, err := scanSong(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}
	return song, nil
}

// List returns every song sorted ascending by order, then by sequence.
//
// Unknown order keys fall back to [models.DefaultOrder]. The result is never nil.
func (r *SongRepository) List(ctx context.Context, order models.OrderKey) ([]*models.Song, error) {
	// Column() only ever returns one of the fixed column names.
	query := fmt.Sprintf("SELECT %s FROM songs ORDER BY %s ASC, sequence ASC", songColumns, order.Column())

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	songs := []*models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// Count returns the number of stored songs.
func (r *SongRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// Clear deletes every song and returns how many rows were removed.
func (r *SongRepository) Clear(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM songs")
	if err != nil {
		return 0, fmt.Errorf("failed to clear songs: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSong scans a single row into a [models.Song]
func scanSong(row rowScanner) (*models.Song, error) {
	var (
		id        string
		sequence  int
		name      string
		band      string
		year      int
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(&id, &sequence, &name, &band, &year, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	song := models.NewSong(sequence, models.SongInput{Name: name, Band: band, Year: year})
	song.SetID(id)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)

	return song, nil
}
