package models

import (
	"errors"
	"testing"

	"github.com/guitarkit/strum/internal/shared"
)

func TestCredentials(t *testing.T) {
	t.Run("Validate", func(t *testing.T) {
		t.Run("accepts valid credentials", func(t *testing.T) {
			creds := Credentials{Username: "alice", Password: "longenough"}
			if err := creds.Validate(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("rejects blank username", func(t *testing.T) {
			creds := Credentials{Username: "   ", Password: "longenough"}
			if err := creds.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("rejects short password", func(t *testing.T) {
			creds := Credentials{Username: "alice", Password: "short"}
			if err := creds.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})

	t.Run("ValidateForRegister", func(t *testing.T) {
		t.Run("accepts mixed-case password with digit", func(t *testing.T) {
			creds := Credentials{Username: "alice", Password: "Secret123"}
			if err := creds.ValidateForRegister(); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("rejects password without uppercase", func(t *testing.T) {
			creds := Credentials{Username: "alice", Password: "secret123"}
			if err := creds.ValidateForRegister(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("rejects password without digit", func(t *testing.T) {
			creds := Credentials{Username: "alice", Password: "SecretWord"}
			if err := creds.ValidateForRegister(); !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	})
}

func TestChordDraft(t *testing.T) {
	valid := ChordDraft{Name: "Am", Strings: []int{-1, 0, 2, 2, 1, 0}}

	t.Run("accepts a valid draft", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects blank name", func(t *testing.T) {
		draft := valid
		draft.Name = ""
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects wrong string count", func(t *testing.T) {
		draft := valid
		draft.Strings = []int{0, 2, 2}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects fret below muted marker", func(t *testing.T) {
		draft := valid
		draft.Strings = []int{-2, 0, 2, 2, 1, 0}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects fret above range", func(t *testing.T) {
		draft := valid
		draft.Strings = []int{25, 0, 2, 2, 1, 0}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestParseStrings(t *testing.T) {
	t.Run("parses numeric frets", func(t *testing.T) {
		frets, err := ParseStrings("-1,0,2,2,1,0")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := []int{-1, 0, 2, 2, 1, 0}
		for i := range want {
			if frets[i] != want[i] {
				t.Errorf("fret %d: expected %d, got %d", i, want[i], frets[i])
			}
		}
	})

	t.Run("parses x as muted", func(t *testing.T) {
		frets, err := ParseStrings("x, 3, 2, 0, 1, 0")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if frets[0] != -1 {
			t.Errorf("expected first fret -1, got %d", frets[0])
		}
		if frets[1] != 3 {
			t.Errorf("expected second fret 3, got %d", frets[1])
		}
	})

	t.Run("rejects non-numeric fret", func(t *testing.T) {
		if _, err := ParseStrings("a,0,2,2,1,0"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects empty value", func(t *testing.T) {
		if _, err := ParseStrings("1,,2,2,1,0"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestFormatStrings(t *testing.T) {
	got := FormatStrings([]int{-1, 3, 2, 0, 1, 0})
	if got != "x 3 2 0 1 0" {
		t.Errorf("expected %q, got %q", "x 3 2 0 1 0", got)
	}
}

func TestSongDraft(t *testing.T) {
	valid := SongDraft{Title: "Wonderwall", Genre: "rock", ChordIDs: []int{1, 2}}

	t.Run("accepts a valid draft", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("accepts empty genre", func(t *testing.T) {
		draft := valid
		draft.Genre = ""
		if err := draft.Validate(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects unknown genre", func(t *testing.T) {
		draft := valid
		draft.Genre = "polka"
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects missing chord ids", func(t *testing.T) {
		draft := valid
		draft.ChordIDs = nil
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects non-positive chord id", func(t *testing.T) {
		draft := valid
		draft.ChordIDs = []int{1, 0}
		if err := draft.Validate(); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestValidGenre(t *testing.T) {
	for _, genre := range Genres {
		if !ValidGenre(genre) {
			t.Errorf("expected %q to be valid", genre)
		}
	}
	if ValidGenre("metal") {
		t.Error("expected metal to be invalid")
	}
}
