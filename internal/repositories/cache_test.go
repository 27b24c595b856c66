package repositories

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestCacheRepository(t *testing.T) {
	t.Run("ReplaceListing", func(t *testing.T) {
		t.Run("stores entries and returns them in name order", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			err := repo.ReplaceListing("chords", []services.Entry{
				{ID: 2, Name: "Em", Summary: "0 2 2 0 0 0"},
				{ID: 1, Name: "am", Summary: "x 0 2 2 1 0"},
				{ID: 3, Name: "C"},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			entries, err := repo.Listing("chords")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 3 {
				t.Fatalf("expected 3 entries, got %d", len(entries))
			}
			// Case-insensitive name order.
			if entries[0].Name != "am" || entries[1].Name != "C" || entries[2].Name != "Em" {
				t.Errorf("unexpected order: %+v", entries)
			}
			if entries[0].ID != 1 || entries[0].Summary != "x 0 2 2 1 0" {
				t.Errorf("unexpected entry fields: %+v", entries[0])
			}
		})

		t.Run("replaces the previous listing for the kind", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			if err := repo.ReplaceListing("chords", []services.Entry{{ID: 1, Name: "Am"}}); err != nil {
				t.Fatal(err)
			}
			if err := repo.ReplaceListing("chords", []services.Entry{{ID: 2, Name: "G"}}); err != nil {
				t.Fatal(err)
			}

			entries, err := repo.Listing("chords")
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 1 || entries[0].ID != 2 {
				t.Errorf("expected replaced listing, got %+v", entries)
			}
		})

		t.Run("kinds are independent", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			if err := repo.ReplaceListing("chords", []services.Entry{{ID: 1, Name: "Am"}}); err != nil {
				t.Fatal(err)
			}
			if err := repo.ReplaceListing("songs", []services.Entry{{ID: 1, Name: "Wonderwall"}}); err != nil {
				t.Fatal(err)
			}

			chords, _ := repo.Listing("chords")
			songs, _ := repo.Listing("songs")
			if len(chords) != 1 || len(songs) != 1 {
				t.Errorf("expected one entry per kind, got %d chords, %d songs", len(chords), len(songs))
			}
			if chords[0].Name != "Am" || songs[0].Name != "Wonderwall" {
				t.Errorf("kinds bled into each other: %+v %+v", chords, songs)
			}
		})
	})

	t.Run("LastFetched", func(t *testing.T) {
		t.Run("zero when never cached", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			fetched, err := repo.LastFetched("chords")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !fetched.IsZero() {
				t.Errorf("expected zero time, got %v", fetched)
			}
		})

		t.Run("set after caching", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))
			if err := repo.ReplaceListing("chords", []services.Entry{{ID: 1, Name: "Am"}}); err != nil {
				t.Fatal(err)
			}

			fetched, err := repo.LastFetched("chords")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if fetched.IsZero() {
				t.Error("expected non-zero fetch time")
			}
		})
	})

	t.Run("saved set", func(t *testing.T) {
		t.Run("round-trips ids", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			if err := repo.ReplaceSaved("songs", []int{5, 1, 9}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			ids, err := repo.SavedIDs("songs")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(ids) != 3 || ids[0] != 1 || ids[1] != 5 || ids[2] != 9 {
				t.Errorf("unexpected ids: %v", ids)
			}
		})

		t.Run("replacing with empty clears the set", func(t *testing.T) {
			repo := NewCacheRepository(testDB(t))

			if err := repo.ReplaceSaved("songs", []int{1, 2}); err != nil {
				t.Fatal(err)
			}
			if err := repo.ReplaceSaved("songs", nil); err != nil {
				t.Fatal(err)
			}

			ids, err := repo.SavedIDs("songs")
			if err != nil {
				t.Fatal(err)
			}
			if len(ids) != 0 {
				t.Errorf("expected empty set, got %v", ids)
			}
		})
	})
}
