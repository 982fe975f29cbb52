/*
slot.go - Scheduling slot computation

PURPOSE:
  Finds the next free scheduling slot for a worker. The rule is intentionally
  simple: missions are chained back to back inside a working-day window, and
  anything that would start outside the window rolls forward to the next
  day's opening.

KNOWN SIMPLIFICATION:
  A single daily window per organization. No breaks, weekends, or per-worker
  calendars. The window is behind the WorkingHours interface so a per-worker
  calendar can replace it without touching the assignment algorithm.
*/
package workforce

import (
	"context"
	"time"
)

// =============================================================================
// WORKING HOURS - Swappable scheduling window
// =============================================================================

// WorkingHours answers whether a moment is schedulable and, if not, when the
// next schedulable moment is.
type WorkingHours interface {
	IsWithinWorkingHours(t time.Time) bool
	NextWorkingMoment(t time.Time) time.Time
}

// DayWindow is a fixed daily window [StartHour, EndHour) applied every
// calendar day.
type DayWindow struct {
	StartHour int
	EndHour   int
}

// DefaultWorkingHours is the standard 08:00-18:00 working day.
var DefaultWorkingHours = DayWindow{StartHour: 8, EndHour: 18}

func (d DayWindow) IsWithinWorkingHours(t time.Time) bool {
	h := t.Hour()
	return h >= d.StartHour && h < d.EndHour
}

// NextWorkingMoment returns t if it is within the window, the same day's
// opening if t is before it, or the next day's opening if t is at or past
// the closing hour.
func (d DayWindow) NextWorkingMoment(t time.Time) time.Time {
	if d.IsWithinWorkingHours(t) {
		return t
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), d.StartHour, 0, 0, 0, t.Location())
	if t.Hour() < d.StartHour {
		return day
	}
	return day.AddDate(0, 0, 1)
}

// =============================================================================
// SLOT FINDER
// =============================================================================

// SlotFinder computes the next free scheduling slot for a worker from their
// existing active-mission commitments.
type SlotFinder struct {
	Store Store
	Hours WorkingHours
}

// NextAvailableSlot returns the start time for the worker's next mission.
//
// Rule: take the latest scheduled end among the worker's active missions and
// start there; if that falls outside working hours, roll forward to the next
// opening. A worker with no active commitments starts at the next day's
// opening relative to now.
func (f *SlotFinder) NextAvailableSlot(ctx context.Context, workerID WorkerID, now time.Time) (time.Time, error) {
	missions, err := f.Store.MissionsByWorker(ctx, workerID, ActiveStatuses)
	if err != nil {
		return time.Time{}, err
	}

	var latestEnd time.Time
	for _, m := range missions {
		if m.ScheduledEnd.After(latestEnd) {
			latestEnd = m.ScheduledEnd
		}
	}

	if latestEnd.IsZero() {
		nextDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		return f.Hours.NextWorkingMoment(nextDay), nil
	}

	return f.Hours.NextWorkingMoment(latestEnd), nil
}
