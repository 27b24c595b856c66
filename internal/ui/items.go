package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guitarkit/strum/internal/services"
)

// entryItem adapts a catalog entry to the bubbles list.
type entryItem struct {
	entry services.Entry
	saved bool
}

func (i entryItem) Title() string {
	if i.saved {
		return fmt.Sprintf("%s %s", styles.saved.Render("★"), i.entry.Name)
	}

	return i.entry.Name
}

func (i entryItem) Description() string {
	if i.entry.Summary == "" {
		return "—"
	}

	return i.entry.Summary
}

func (i entryItem) FilterValue() string {
	return i.entry.Name
}

// sortEntries orders entries by name, case-insensitively, ascending
// or descending. Ties keep server order.
func sortEntries(entries []services.Entry, descending bool) {
	sort.SliceStable(entries, func(a, b int) bool {
		less := strings.ToLower(entries[a].Name) < strings.ToLower(entries[b].Name)
		if descending {
			return !less && strings.ToLower(entries[a].Name) != strings.ToLower(entries[b].Name)
		}

		return less
	})
}
