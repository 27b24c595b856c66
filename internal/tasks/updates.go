package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	FetchSavedChords Phase = iota
	FetchSavedSongs
	WriteDump
	ReadDump
	CreateChords
)

func (p Phase) String() string {
	switch p {
	case FetchSavedChords:
		return "fetch_saved_chords"
	case FetchSavedSongs:
		return "fetch_saved_songs"
	case WriteDump:
		return "write_dump"
	case ReadDump:
		return "read_dump"
	case CreateChords:
		return "create_chords"
	default:
		return ""
	}
}

func fetchSavedUpdate(phase Phase, kind string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   phase,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching saved %s...", kind),
	}
}

func writeDumpUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteDump,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing library dump to %s...", path),
	}
}

func readDumpUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadDump,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reading chord dump from %s...", path),
	}
}

func createChordUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateChords,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Creating chord %q (%d/%d)", name, step, total),
	}
}
