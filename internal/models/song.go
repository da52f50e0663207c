package models

import (
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength = 300
	MaxBandLength = 200
)

var _ Model = (*Song)(nil)

// SongInput is a normalized (name, band, year) triple ready to be stored.
type SongInput struct {
	Name string
	Band string
	Year int
}

// Validate checks the triple against the column constraints of the songs table.
func (in SongInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("name is empty")
	}
	if in.Band == "" {
		return fmt.Errorf("band is empty")
	}
	if n := utf8.RuneCountInString(in.Name); n > MaxNameLength {
		return fmt.Errorf("name is %d characters, max %d", n, MaxNameLength)
	}
	if n := utf8.RuneCountInString(in.Band); n > MaxBandLength {
		return fmt.Errorf("band is %d characters, max %d", n, MaxBandLength)
	}
	return nil
}

// Key returns a comparable form of the natural key.
func (in SongInput) Key() string {
	return fmt.Sprintf("%s\x00%s\x00%d", in.Name, in.Band, in.Year)
}

// Song is a persisted song row.
type Song struct {
	id        string
	sequence  int
	name      string
	band      string
	year      int
	createdAt time.Time
	updatedAt time.Time
}

// NewSong creates an unsaved [Song] from a validated input.
func NewSong(sequence int, in SongInput) *Song {
	now := time.Now().UTC()
	return &Song{
		sequence:  sequence,
		name:      in.Name,
		band:      in.Band,
		year:      in.Year,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Song) ID() string           { return s.id }
func (s *Song) Sequence() int        { return s.sequence }
func (s *Song) Name() string         { return s.name }
func (s *Song) Band() string         { return s.band }
func (s *Song) Year() int            { return s.year }
func (s *Song) CreatedAt() time.Time { return s.createdAt }
func (s *Song) UpdatedAt() time.Time { return s.updatedAt }

func (s *Song) SetID(id string)          { s.id = id }
func (s *Song) SetSequence(seq int)      { s.sequence = seq }
func (s *Song) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Song) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// Input returns the natural key of s.
func (s *Song) Input() SongInput {
	return SongInput{Name: s.name, Band: s.band, Year: s.year}
}

// Validate checks that the song has an ID and satisfies [SongInput.Validate].
func (s *Song) Validate() error {
	if s.id == "" {
		return fmt.Errorf("id is required")
	}
	return s.Input().Validate()
}

// songJSON is the wire representation of [Song].
type songJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Band      string    `json:"band"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MarshalJSON implements [json.Marshaler].
func (s *Song) MarshalJSON() ([]byte, error) {
	return json.Marshal(songJSON{
		ID:        s.id,
		Name:      s.name,
		Band:      s.band,
		Year:      s.year,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	})
}

// UnmarshalJSON implements [json.Unmarshaler].
func (s *Song) UnmarshalJSON(data []byte) error {
	var v songJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Song{
		id:        v.ID,
		name:      v.Name,
		band:      v.Band,
		year:      v.Year,
		createdAt: v.CreatedAt,
		updatedAt: v.UpdatedAt,
	}
	return nil
}
