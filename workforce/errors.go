/*
errors.go - Centralized error types for the workforce engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The API layer maps these onto HTTP status codes.

ERROR CATEGORIES:
  1. Precondition errors - rejected before any state change
  2. Not-found errors    - referenced rows that do not exist
  3. Conflict errors     - invariant violations surfaced by the store

SEE ALSO:
  - engine.go:       Returns these from the public operations
  - api/handlers.go: Translates them into HTTP responses
*/
package workforce

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoWorkerAvailable is returned by assignment when the worker set is empty.
	ErrNoWorkerAvailable = errors.New("no worker available for assignment")

	// ErrWorkerNotFound is returned when a referenced worker doesn't exist.
	ErrWorkerNotFound = errors.New("worker not found")

	// ErrMissionNotFound is returned when a referenced mission doesn't exist,
	// or isn't assigned to the punching worker.
	ErrMissionNotFound = errors.New("mission not found")

	// ErrTimeLogNotFound is returned when a referenced time log doesn't exist.
	ErrTimeLogNotFound = errors.New("time log not found")

	// ErrPayrollNotFound is returned when a referenced payroll doesn't exist.
	ErrPayrollNotFound = errors.New("payroll not found")

	// ErrInvalidTransition is returned when a punch or cancel event is not
	// legal from the mission's current status.
	ErrInvalidTransition = errors.New("invalid mission transition")

	// ErrDuplicateOpenTimeLog is returned when opening a time log for a
	// mission that already has one open. At most one time log per mission
	// may be open at any time.
	ErrDuplicateOpenTimeLog = errors.New("mission already has an open time log")

	// ErrNoOpenTimeLog is returned when closing a time log for a mission
	// that has none open.
	ErrNoOpenTimeLog = errors.New("mission has no open time log")

	// ErrTimeLogStillOpen is returned when correcting earnings on a time log
	// that hasn't been closed yet.
	ErrTimeLogStillOpen = errors.New("time log is still open")

	// ErrInvalidAmount is returned for non-positive payment amounts and
	// negative earnings corrections.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidPeriod is returned when a payroll period is malformed
	// (missing bounds or end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrAlreadyClaimed is returned when a claiming update touches fewer rows
	// than selected, meaning a concurrent generation claimed them first.
	// The caller should retry the whole operation once.
	ErrAlreadyClaimed = errors.New("rows already claimed by another payroll")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidTransitionError reports the status that rejected an event.
type InvalidTransitionError struct {
	MissionID MissionID
	From      MissionStatus
	Event     LifecycleEvent
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s mission %s in status %s",
		e.Event, e.MissionID, e.From)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNoWorkerAvailable) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrDuplicateOpenTimeLog) ||
		errors.Is(err, ErrNoOpenTimeLog) ||
		errors.Is(err, ErrTimeLogStillOpen) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrMissionNotFound) ||
		errors.Is(err, ErrTimeLogNotFound) ||
		errors.Is(err, ErrPayrollNotFound)
}

// IsConflict returns true if the error is a concurrency conflict worth
// retrying once.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAlreadyClaimed)
}
