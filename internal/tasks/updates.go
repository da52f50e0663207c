package tasks

import (
	"fmt"

	"github.com/desertthunder/songtable/internal/ingest"
)

// ProgressUpdate represents a progress event during an import.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ParseFile Phase = iota
	SaveSongs
	Done
)

func (p Phase) String() string {
	switch p {
	case ParseFile:
		return "parse_file"
	case SaveSongs:
		return "save_songs"
	case Done:
		return "done"
	default:
		return ""
	}
}

func parsingUpdate(size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ParseFile,
		Step:    1,
		Total:   3,
		Message: fmt.Sprintf("Parsing CSV (%d bytes)...", size),
	}
}

func savingUpdate(res *ingest.Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveSongs,
		Step:    2,
		Total:   3,
		Message: fmt.Sprintf("Saving %d songs (%d rows, delimiter %q)...", len(res.Songs), res.Total, res.Delimiter),
		Data:    res,
	}
}

func doneUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    3,
		Total:   3,
		Message: fmt.Sprintf("✓ Imported %d rows", total),
	}
}
