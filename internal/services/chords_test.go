package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guitarkit/strum/internal/models"
	"github.com/guitarkit/strum/internal/shared"
)

func TestChordAPI(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		t.Run("passes the search filter as a query param", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chords" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				if got := r.URL.Query().Get("search"); got != "am" {
					t.Errorf("expected search=am, got %q", got)
				}
				json.NewEncoder(w).Encode([]models.Chord{
					{ID: 1, Name: "Am", Strings: []int{-1, 0, 2, 2, 1, 0}},
				})
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			entries, err := api.List(context.Background(), Filter{Search: "am"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 1 || entries[0].Name != "Am" {
				t.Errorf("unexpected entries: %+v", entries)
			}
		})

		t.Run("summarizes with the fingering when no description", func(t *testing.T) {
			entry := chordEntry(models.Chord{ID: 1, Name: "Am", Strings: []int{-1, 0, 2, 2, 1, 0}})
			if entry.Summary != "x 0 2 2 1 0" {
				t.Errorf("expected fingering summary, got %q", entry.Summary)
			}
		})

		t.Run("prefers the description as summary", func(t *testing.T) {
			entry := chordEntry(models.Chord{ID: 1, Name: "Am", Description: "A minor", Strings: []int{-1, 0, 2, 2, 1, 0}})
			if entry.Summary != "A minor" {
				t.Errorf("expected description summary, got %q", entry.Summary)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("builds detail fields with absolute media links", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chords/7" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode(models.Chord{
					ID: 7, Name: "Em", Strings: []int{0, 2, 2, 0, 0, 0},
					ImageURL: "/static/em.png",
				})
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			detail, err := api.Get(context.Background(), 7)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			fields := map[string]string{}
			for _, f := range detail.Fields {
				fields[f.Label] = f.Value
			}
			if fields["Fingering"] != "0 2 2 0 0 0" {
				t.Errorf("unexpected fingering: %q", fields["Fingering"])
			}
			if fields["Image"] != server.URL+"/static/em.png" {
				t.Errorf("expected absolute image link, got %q", fields["Image"])
			}
			if _, ok := fields["Audio"]; ok {
				t.Error("expected no audio field for a chord without audio")
			}
		})

		t.Run("missing chord maps to ErrNotFound", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"detail": "Chord not found"}`))
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			if _, err := api.Get(context.Background(), 99); !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("submits a multipart form with JSON strings", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("expected multipart form: %v", err)
				}
				if got := r.FormValue("name"); got != "Am" {
					t.Errorf("expected name Am, got %q", got)
				}
				if got := r.FormValue("strings"); got != "[-1,0,2,2,1,0]" {
					t.Errorf("expected JSON strings, got %q", got)
				}
				json.NewEncoder(w).Encode(models.Chord{ID: 3, Name: "Am"})
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			chord, err := api.Create(context.Background(), models.ChordDraft{
				Name:    "Am",
				Strings: []int{-1, 0, 2, 2, 1, 0},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if chord.ID != 3 {
				t.Errorf("expected created chord, got %+v", chord)
			}
		})

		t.Run("invalid draft fails without a request", func(t *testing.T) {
			requested := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requested = true
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			_, err := api.Create(context.Background(), models.ChordDraft{Name: "Am", Strings: []int{1, 2}})
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			if requested {
				t.Error("expected no request for an invalid draft")
			}
		})
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("already saved is success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/chords/5/save" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"detail": "Chord already saved"}`))
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			if err := api.Save(context.Background(), 5); err != nil {
				t.Errorf("expected idempotent save, got %v", err)
			}
		})

		t.Run("auth failure still surfaces", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			if err := api.Save(context.Background(), 5); !errors.Is(err, shared.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	})

	t.Run("Unsave", func(t *testing.T) {
		t.Run("not saved is success", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/chords/5/save" {
					t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"detail": "Chord not saved"}`))
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			if err := api.Unsave(context.Background(), 5); err != nil {
				t.Errorf("expected idempotent unsave, got %v", err)
			}
		})
	})

	t.Run("ListSaved", func(t *testing.T) {
		t.Run("requires a token before any request", func(t *testing.T) {
			requested := false
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requested = true
			}))
			defer server.Close()

			api := NewChordAPI(NewClient(server.URL, nil))
			_, err := api.ListSaved(context.Background())
			if !errors.Is(err, shared.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
			if requested {
				t.Error("expected no request without a token")
			}
		})

		t.Run("fetches the saved listing", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chords/me/saved" {
					t.Errorf("unexpected path: %s", r.URL.Path)
				}
				json.NewEncoder(w).Encode([]models.Chord{{ID: 2, Name: "C"}})
			}))
			defer server.Close()

			client := NewClient(server.URL, nil)
			client.SetToken("tok")
			api := NewChordAPI(client)

			entries, err := api.ListSaved(context.Background())
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 1 || entries[0].ID != 2 {
				t.Errorf("unexpected entries: %+v", entries)
			}
		})
	})
}
