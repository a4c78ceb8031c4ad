// Package period computes the validity window printed on the report
// headers and the quarter label used in output file names.
package period

import (
	"fmt"
	"time"

	"relatorios/internal/config"
)

// Window is the date range a published table is valid for. Used only for
// header text and output naming.
type Window struct {
	Start time.Time
	End   time.Time
}

// String renders the window the way the documents print it.
func (w Window) String() string {
	return fmt.Sprintf("%s a %s", w.Start.Format("02/01/2006"), w.End.Format("02/01/2006"))
}

// Compute selects the validity window for today under the configured policy.
func Compute(policy string, today time.Time) (Window, error) {
	switch policy {
	case config.PolicyRolling14:
		return rolling14(today), nil
	case config.PolicyHalfMonth:
		return halfMonth(today), nil
	default:
		return Window{}, fmt.Errorf("unsupported validity policy: %s", policy)
	}
}

func rolling14(today time.Time) Window {
	return Window{Start: today, End: today.AddDate(0, 0, 14)}
}

// halfMonth picks the half-month block following today: on or before the
// 15th the window is the 16th through the end of the current month,
// otherwise the 1st through the 15th of the next month (December rolls
// over into January).
func halfMonth(today time.Time) Window {
	year, month, _ := today.Date()
	loc := today.Location()

	if today.Day() <= 15 {
		start := time.Date(year, month, 16, 0, 0, 0, 0, loc)
		end := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
		return Window{Start: start, End: end}
	}

	start := time.Date(year, month+1, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, month+1, 15, 0, 0, 0, 0, loc)
	return Window{Start: start, End: end}
}

// Label is the reporting-period tag, always the calendar quarter of today
// regardless of which validity window was chosen.
func Label(today time.Time) string {
	quarter := (int(today.Month())-1)/3 + 1
	return fmt.Sprintf("%dQ%d", today.Year(), quarter)
}
