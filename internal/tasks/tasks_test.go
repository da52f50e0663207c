package tasks

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songtable/internal/ingest"
	"github.com/desertthunder/songtable/internal/models"
	"github.com/desertthunder/songtable/internal/repositories"
	"github.com/desertthunder/songtable/internal/shared"
)

type mockStore struct {
	upserted  []models.SongInput
	songs     []*models.Song
	count     int
	upsertErr error
	listErr   error
	countErr  error
	clearErr  error
	cleared   int64
}

func (m *mockStore) UpsertMany(ctx context.Context, songs []models.SongInput) (int, error) {
	if m.upsertErr != nil {
		return 0, m.upsertErr
	}
	m.upserted = append(m.upserted, songs...)
	return len(songs), nil
}

func (m *mockStore) List(ctx context.Context, order models.OrderKey) ([]*models.Song, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.songs, nil
}

func (m *mockStore) Count(ctx context.Context) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockStore) Clear(ctx context.Context) (int64, error) {
	if m.clearErr != nil {
		return 0, m.clearErr
	}
	return m.cleared, nil
}

func newTestEngine(store SongStore) (*LibraryEngine, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLibraryEngine(store, shared.NewLogger(&buf)), &buf
}

func TestLibraryEngine_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("stores normalized rows", func(t *testing.T) {
		store := &mockStore{}
		engine, _ := newTestEngine(store)

		res, err := engine.Import(ctx, []byte("name,band,year\nSong A,Band X,1999\n"), "text/csv", nil)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if !res.OK || res.Total != 1 {
			t.Errorf("Import() = %+v, want ok with total 1", res)
		}
		if len(store.upserted) != 1 {
			t.Fatalf("expected 1 upserted song, got %d", len(store.upserted))
		}
		if got := store.upserted[0]; got != (models.SongInput{Name: "song a", Band: "band x", Year: 1999}) {
			t.Errorf("unexpected upserted song: %+v", got)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{})
		progress := make(chan ProgressUpdate, 10)

		if _, err := engine.Import(ctx, []byte("name;band;year\na;b;1\nc;d;2\n"), "text/csv", progress); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		close(progress)

		var phases []Phase
		for update := range progress {
			phases = append(phases, update.Phase)
		}
		want := []Phase{ParseFile, SaveSongs, Done}
		if len(phases) != len(want) {
			t.Fatalf("expected phases %v, got %v", want, phases)
		}
		for i := range want {
			if phases[i] != want[i] {
				t.Errorf("phase %d = %s, want %s", i, phases[i], want[i])
			}
		}
	})

	t.Run("full progress channel does not block", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{})
		progress := make(chan ProgressUpdate)

		if _, err := engine.Import(ctx, []byte("name,band,year\na,b,1\n"), "text/csv", progress); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
	})

	t.Run("invalid row writes nothing", func(t *testing.T) {
		store := &mockStore{}
		engine, _ := newTestEngine(store)

		_, err := engine.Import(ctx, []byte("name,band,year\nSong A,Band X,1999\nSong B,Band Y,abc\n"), "text/csv", nil)
		if !errors.Is(err, ingest.ErrInvalidRow) {
			t.Fatalf("expected ErrInvalidRow, got %v", err)
		}
		if len(store.upserted) != 0 {
			t.Errorf("expected no writes, got %d", len(store.upserted))
		}
	})

	t.Run("wrong content type", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{})
		_, err := engine.Import(ctx, []byte("name,band,year\na,b,1\n"), "image/png", nil)
		if !errors.Is(err, ingest.ErrUnsupportedContentType) {
			t.Errorf("expected ErrUnsupportedContentType, got %v", err)
		}
	})

	t.Run("store failure hides cause", func(t *testing.T) {
		engine, logs := newTestEngine(&mockStore{upsertErr: errors.New("disk I/O error")})

		_, err := engine.Import(ctx, []byte("name,band,year\na,b,1\n"), "text/csv", nil)
		if !errors.Is(err, shared.ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
		if strings.Contains(err.Error(), "disk I/O") {
			t.Errorf("expected cause to stay out of the returned error, got %q", err)
		}
		if !strings.Contains(logs.String(), "disk I/O error") {
			t.Errorf("expected cause to be logged, got %q", logs.String())
		}
	})

	t.Run("validation failure from store passes through", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{upsertErr: shared.ErrInvalidSong})
		_, err := engine.Import(ctx, []byte("name,band,year\na,b,1\n"), "text/csv", nil)
		if !errors.Is(err, shared.ErrInvalidSong) {
			t.Errorf("expected ErrInvalidSong, got %v", err)
		}
	})

	t.Run("nil store", func(t *testing.T) {
		engine := NewLibraryEngine(nil, log.New(&bytes.Buffer{}))
		if _, err := engine.Import(ctx, nil, "text/csv", nil); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestLibraryEngine_List(t *testing.T) {
	ctx := context.Background()

	t.Run("never returns nil", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{})
		songs, err := engine.List(ctx, "band")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if songs == nil {
			t.Error("expected empty slice, got nil")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		engine, _ := newTestEngine(&mockStore{listErr: errors.New("boom")})
		if _, err := engine.List(ctx, "name"); !errors.Is(err, shared.ErrPersistence) {
			t.Errorf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestLibraryEngine_ClearAndCount(t *testing.T) {
	ctx := context.Background()

	engine, _ := newTestEngine(&mockStore{cleared: 4, count: 7})
	if n, err := engine.Clear(ctx); err != nil || n != 4 {
		t.Errorf("Clear() = %d, %v; want 4, nil", n, err)
	}
	if n, err := engine.Count(ctx); err != nil || n != 7 {
		t.Errorf("Count() = %d, %v; want 7, nil", n, err)
	}

	failing, _ := newTestEngine(&mockStore{clearErr: errors.New("locked"), countErr: errors.New("locked")})
	if _, err := failing.Clear(ctx); !errors.Is(err, shared.ErrPersistence) {
		t.Errorf("expected ErrPersistence from Clear, got %v", err)
	}
	if _, err := failing.Count(ctx); !errors.Is(err, shared.ErrPersistence) {
		t.Errorf("expected ErrPersistence from Count, got %v", err)
	}
}

// TestLibraryEngine_SQLite runs the engine against a migrated in-memory database.
func TestLibraryEngine_SQLite(t *testing.T) {
	ctx := context.Background()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	engine, _ := newTestEngine(repositories.NewSongRepository(db))

	upload := "name,band,year\nZebra,Band B,2001\nAlpha,Band C,1999\nMiddle,Band A,2005\n"
	if _, err := engine.Import(ctx, []byte(upload), "text/csv", nil); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	t.Run("re-upload updates in place", func(t *testing.T) {
		if _, err := engine.Import(ctx, []byte("name,band,year\nzebra,band b,2001\n"), "text/csv", nil); err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if n, _ := engine.Count(ctx); n != 3 {
			t.Errorf("expected 3 songs after re-upload, got %d", n)
		}
	})

	t.Run("bad row leaves store untouched", func(t *testing.T) {
		_, err := engine.Import(ctx, []byte("name,band,year\nNew,Band Z,2010\nBad,Band Z,abc\n"), "text/csv", nil)
		if err == nil {
			t.Fatal("expected error for non-numeric year")
		}
		if n, _ := engine.Count(ctx); n != 3 {
			t.Errorf("expected 3 songs after failed upload, got %d", n)
		}
	})

	t.Run("orders", func(t *testing.T) {
		tests := []struct {
			order string
			want  []string
		}{
			{"year", []string{"alpha", "zebra", "middle"}},
			{"name", []string{"alpha", "middle", "zebra"}},
			{"band", []string{"middle", "zebra", "alpha"}},
			{"bogus", []string{"middle", "zebra", "alpha"}},
			{"", []string{"middle", "zebra", "alpha"}},
		}

		for _, tt := range tests {
			t.Run(tt.order, func(t *testing.T) {
				songs, err := engine.List(ctx, tt.order)
				if err != nil {
					t.Fatalf("List() error = %v", err)
				}
				var got []string
				for _, s := range songs {
					got = append(got, s.Name())
				}
				if strings.Join(got, ",") != strings.Join(tt.want, ",") {
					t.Errorf("List(%q) = %v, want %v", tt.order, got, tt.want)
				}
			})
		}
	})

	t.Run("clear then list", func(t *testing.T) {
		n, err := engine.Clear(ctx)
		if err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 deleted, got %d", n)
		}
		songs, err := engine.List(ctx, "band")
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected empty list, got %d", len(songs))
		}
	})
}
