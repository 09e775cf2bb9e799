package tasks

import (
	"fmt"

	"github.com/desertthunder/moviebox/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
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
	PrepareCheck Phase = iota
	CheckMovie
	CheckComplete
)

func (p Phase) String() string {
	switch p {
	case PrepareCheck:
		return "prepare_check"
	case CheckMovie:
		return "check_movie"
	case CheckComplete:
		return "check_complete"
	default:
		return ""
	}
}

func prepareCheckUpdate(total, duplicates int) ProgressUpdate {
	msg := fmt.Sprintf("Checking %d favorites against the Movie API...", total)
	if duplicates > 0 {
		msg = fmt.Sprintf("Checking %d favorites (%d duplicate entries skipped)...", total, duplicates)
	}
	return ProgressUpdate{
		Phase:   PrepareCheck,
		Step:    0,
		Total:   total,
		Message: msg,
	}
}

func checkedMovieUpdate(step, total int, res CheckResult) ProgressUpdate {
	var mark string
	switch res.Status {
	case StatusUnchanged:
		mark = "✓"
	case StatusUpdated:
		mark = "~"
	case StatusMissing:
		mark = "?"
	default:
		mark = "✗"
	}
	return ProgressUpdate{
		Phase:   CheckMovie,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, mark, movieLabel(res.Favorite)),
		Data:    res,
	}
}

func checkCompleteUpdate(report *CheckReport) ProgressUpdate {
	return ProgressUpdate{
		Phase: CheckComplete,
		Step:  report.Total,
		Total: report.Total,
		Message: fmt.Sprintf("Done: %d unchanged, %d updated upstream, %d missing, %d failed",
			report.Unchanged, report.Updated, report.Missing, report.Failed),
		Data: report,
	}
}

func movieLabel(m models.Movie) string {
	if y := m.Year(); y != "" {
		return fmt.Sprintf("%s (%s)", m.Title, y)
	}
	return m.Title
}
