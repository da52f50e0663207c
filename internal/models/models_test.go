package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseOrderKey(t *testing.T) {
	tc := []struct {
		input string
		want  OrderKey
	}{
		{"name", OrderByName},
		{"band", OrderByBand},
		{"year", OrderByYear},
		{"", OrderByBand},
		{"id", OrderByBand},
		{"Year", OrderByBand},
		{"band; DROP TABLE songs", OrderByBand},
	}

	for _, tt := range tc {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseOrderKey(tt.input); got != tt.want {
				t.Errorf("ParseOrderKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	if got := OrderKey("created_at").Column(); got != "band" {
		t.Errorf("Column() for unknown key = %q, want band", got)
	}
}

func TestSongInputValidate(t *testing.T) {
	tc := []struct {
		name    string
		input   SongInput
		wantErr string
	}{
		{name: "valid", input: SongInput{Name: "song a", Band: "band x", Year: 1999}},
		{name: "empty name", input: SongInput{Band: "band x", Year: 1999}, wantErr: "name is empty"},
		{name: "empty band", input: SongInput{Name: "song a", Year: 1999}, wantErr: "band is empty"},
		{name: "long name", input: SongInput{Name: strings.Repeat("a", MaxNameLength+1), Band: "b"}, wantErr: "name is 301 characters"},
		{name: "long band", input: SongInput{Name: "a", Band: strings.Repeat("b", MaxBandLength+1)}, wantErr: "band is 201 characters"},
		{name: "multibyte at limit", input: SongInput{Name: strings.Repeat("é", MaxNameLength), Band: "b"}},
		{name: "zero year is allowed", input: SongInput{Name: "a", Band: "b", Year: 0}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSong(t *testing.T) {
	t.Run("NewSong", func(t *testing.T) {
		song := NewSong(7, SongInput{Name: "song a", Band: "band x", Year: 1999})

		if song.Sequence() != 7 {
			t.Errorf("expected sequence 7, got %d", song.Sequence())
		}
		if song.CreatedAt().IsZero() || !song.CreatedAt().Equal(song.UpdatedAt()) {
			t.Error("expected created and updated timestamps to be set and equal")
		}
		if err := song.Validate(); err == nil {
			t.Error("expected validation error before an ID is assigned")
		}

		song.SetID("abc")
		if err := song.Validate(); err != nil {
			t.Errorf("expected valid song, got %v", err)
		}
	})

	t.Run("JSON", func(t *testing.T) {
		song := NewSong(1, SongInput{Name: "song a", Band: "band x", Year: 1999})
		song.SetID("id-1")
		stamp := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		song.SetCreatedAt(stamp)
		song.SetUpdatedAt(stamp)

		data, err := json.Marshal(song)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}

		want := `{"id":"id-1","name":"song a","band":"band x","year":1999,"created_at":"2024-01-02T03:04:05Z","updated_at":"2024-01-02T03:04:05Z"}`
		if string(data) != want {
			t.Errorf("Marshal() = %s, want %s", data, want)
		}

		var decoded []*Song
		if err := json.Unmarshal([]byte("["+want+"]"), &decoded); err != nil {
			t.Fatalf("Unmarshal() error = %v", err)
		}
		if len(decoded) != 1 || decoded[0].Input() != song.Input() || decoded[0].ID() != "id-1" {
			t.Errorf("Unmarshal() = %+v", decoded)
		}
	})
}
