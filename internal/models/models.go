package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guitarkit/strum/internal/shared"
)

// Chord represents a guitar chord as returned by the catalog backend.
type Chord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Strings     []int  `json:"strings"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	AudioURL    string `json:"audio_url,omitempty"`
}

// ChordRef is the abbreviated chord reference embedded in song responses.
type ChordRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Song represents a song as returned by the catalog backend.
type Song struct {
	ID       int        `json:"id"`
	Title    string     `json:"title"`
	Genre    string     `json:"genre,omitempty"`
	Lyrics   string     `json:"lyrics,omitempty"`
	SheetURL string     `json:"sheet_url,omitempty"`
	AudioURL string     `json:"audio_url,omitempty"`
	Chords   []ChordRef `json:"chords,omitempty"`
}

// TokenResponse is the login response payload.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Credentials is the transient login/register request payload.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks credentials locally before any network call.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if len(c.Username) < 3 || len(c.Username) > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", shared.ErrInvalidInput)
	}
	if len(c.Password) < 8 || len(c.Password) > 128 {
		return fmt.Errorf("%w: password must be 8-128 characters", shared.ErrInvalidInput)
	}
	return nil
}

// ValidateForRegister additionally enforces the backend's password
// composition rule so rejections happen before the network call.
func (c Credentials) ValidateForRegister() error {
	if err := c.Validate(); err != nil {
		return err
	}
	var lower, upper, digit bool
	for _, r := range c.Password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return fmt.Errorf("%w: password must contain upper and lower case letters and a digit", shared.ErrInvalidInput)
	}
	return nil
}

// Genres lists the genres the backend accepts for songs.
var Genres = []string{"rock", "pop", "jazz", "classic", "other"}

// ValidGenre reports whether g is an accepted genre. Empty means unset.
func ValidGenre(g string) bool {
	if g == "" {
		return true
	}
	for _, known := range Genres {
		if g == known {
			return true
		}
	}
	return false
}

const (
	// ChordStringCount is the number of strings a fingering must describe.
	ChordStringCount = 6
	// FretMin marks a muted string; FretMax is the highest playable fret.
	FretMin = -1
	FretMax = 24
)

// ChordDraft is an admin chord submission. Media paths are optional local files
// sent as multipart form fields.
type ChordDraft struct {
	Name        string
	Strings     []int
	Description string
	ImagePath   string
	AudioPath   string
}

// Validate enforces the backend's chord input rules locally.
func (d ChordDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: chord name is required", shared.ErrInvalidInput)
	}
	if len(d.Strings) != ChordStringCount {
		return fmt.Errorf("%w: strings must contain exactly %d values, got %d", shared.ErrInvalidInput, ChordStringCount, len(d.Strings))
	}
	for i, fret := range d.Strings {
		if fret < FretMin || fret > FretMax {
			return fmt.Errorf("%w: string %d fret %d out of range %d..%d", shared.ErrInvalidInput, i+1, fret, FretMin, FretMax)
		}
	}
	return nil
}

// ParseStrings parses a comma-separated fingering ("x,3,2,0,1,0" style)
// into a strings array. "x" and "-1" both mean a muted string.
func ParseStrings(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	frets := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("%w: empty fret value", shared.ErrInvalidInput)
		}
		if strings.EqualFold(part, "x") {
			frets = append(frets, FretMin)
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%w: fret %q is not a number", shared.ErrInvalidInput, part)
		}
		frets = append(frets, n)
	}
	return frets, nil
}

// FormatStrings renders a fingering for display, with muted strings shown as "x".
func FormatStrings(frets []int) string {
	parts := make([]string, len(frets))
	for i, fret := range frets {
		if fret < 0 {
			parts[i] = "x"
		} else {
			parts[i] = strconv.Itoa(fret)
		}
	}
	return strings.Join(parts, " ")
}

// SongDraft is an admin song submission.
type SongDraft struct {
	Title    string
	Genre    string
	Lyrics   string
	ChordIDs []int
}

// Validate enforces the backend's song input rules locally.
func (d SongDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}
	if !ValidGenre(d.Genre) {
		return fmt.Errorf("%w: unknown genre %q (expected one of %s)", shared.ErrInvalidInput, d.Genre, strings.Join(Genres, ", "))
	}
	if len(d.ChordIDs) == 0 {
		return fmt.Errorf("%w: at least one chord id is required", shared.ErrInvalidInput)
	}
	for _, id := range d.ChordIDs {
		if id <= 0 {
			return fmt.Errorf("%w: chord id %d must be positive", shared.ErrInvalidInput, id)
		}
	}
	return nil
}
