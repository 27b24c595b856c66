package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/guitarkit/strum/internal/services"
	"github.com/guitarkit/strum/internal/shared"
)

// CacheRepository stores fetched listings and saved-set ids in SQLite.
type CacheRepository struct {
	db *sql.DB
}

// NewCacheRepository creates a CacheRepository with the given database connection.
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// ReplaceListing replaces the cached listing for a kind with the given entries.
func (r *CacheRepository) ReplaceListing(kind string, entries []services.Entry) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM listings WHERE kind = ?", kind); err != nil {
		return fmt.Errorf("failed to clear listing cache: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		_, err := tx.Exec(
			"INSERT INTO listings (id, kind, resource_id, name, summary, fetched_at) VALUES (?, ?, ?, ?, ?, ?)",
			shared.GenerateID(), kind, entry.ID, entry.Name, entry.Summary, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert listing row: %w", err)
		}
	}

	return tx.Commit()
}

// Listing returns the cached entries for a kind in name order.
func (r *CacheRepository) Listing(kind string) ([]services.Entry, error) {
	rows, err := r.db.Query(
		"SELECT resource_id, name, summary FROM listings WHERE kind = ? ORDER BY name COLLATE NOCASE ASC",
		kind,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query listing cache: %w", err)
	}
	defer rows.Close()

	var entries []services.Entry
	for rows.Next() {
		var entry services.Entry
		var summary sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Name, &summary); err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		entry.Summary = summary.String
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// LastFetched returns when the listing for a kind was cached, zero when never.
func (r *CacheRepository) LastFetched(kind string) (time.Time, error) {
	var fetched sql.NullTime
	err := r.db.QueryRow("SELECT MAX(fetched_at) FROM listings WHERE kind = ?", kind).Scan(&fetched)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query cache age: %w", err)
	}
	if !fetched.Valid {
		return time.Time{}, nil
	}
	return fetched.Time, nil
}

// ReplaceSaved replaces the cached saved-set for a kind.
func (r *CacheRepository) ReplaceSaved(kind string, ids []int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM saved_items WHERE kind = ?", kind); err != nil {
		return fmt.Errorf("failed to clear saved cache: %w", err)
	}

	now := time.Now()
	for _, id := range ids {
		if _, err := tx.Exec("INSERT INTO saved_items (kind, resource_id, fetched_at) VALUES (?, ?, ?)", kind, id, now); err != nil {
			return fmt.Errorf("failed to insert saved row: %w", err)
		}
	}

	return tx.Commit()
}

// SavedIDs returns the cached saved-set ids for a kind.
func (r *CacheRepository) SavedIDs(kind string) ([]int, error) {
	rows, err := r.db.Query("SELECT resource_id FROM saved_items WHERE kind = ? ORDER BY resource_id ASC", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved cache: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return ids, nil
}
