package services

import (
	"context"
	"net/url"
	"strconv"
)

// Filter narrows a listing request. Zero value returns the unfiltered collection.
type Filter struct {
	Search  string // substring match on display name
	Genre   string // songs only
	ChordID int    // songs only: songs using this chord
}

// Values encodes the filter as query parameters, omitting unset fields.
func (f Filter) Values() url.Values {
	v := url.Values{}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.Genre != "" {
		v.Set("genre", f.Genre)
	}
	if f.ChordID > 0 {
		v.Set("chord_id", strconv.Itoa(f.ChordID))
	}
	return v
}

// Entry is the kind-neutral listing projection used by list views and the cache.
type Entry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary,omitempty"`
}

// Field is an ordered label/value pair for detail rendering.
type Field struct {
	Label string
	Value string
}

// Detail is the full fetched-by-id projection of a resource.
type Detail struct {
	Entry
	Fields []Field
}

// Catalog defines the uniform contract shared by both resource kinds.
type Catalog interface {
	// Kind returns the resource kind ("chords" or "songs").
	Kind() string

	// List retrieves entries matching the filter.
	List(ctx context.Context, filter Filter) ([]Entry, error)

	// Get retrieves a single resource by id.
	Get(ctx context.Context, id int) (*Detail, error)

	// Delete removes a resource. Admin-only per backend policy.
	Delete(ctx context.Context, id int) error

	// Save bookmarks a resource for the current session.
	// Saving an already-saved resource is not an error.
	Save(ctx context.Context, id int) error

	// Unsave removes a bookmark. Unsaving a not-saved resource is not an error.
	Unsave(ctx context.Context, id int) error

	// ListSaved retrieves the current session's bookmarked entries.
	ListSaved(ctx context.Context) ([]Entry, error)
}
