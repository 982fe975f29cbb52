/*
lifecycle.go - Mission status state machine

PURPOSE:
  All mission status changes go through one transition table. Handlers never
  compare statuses inline, so adding a status cannot silently bypass the
  invariant checks.

LIFECYCLE:
  pending -> in_progress -> approbation -> {completed, validated}
  cancelled is reachable from pending and in_progress as an escape hatch.

  The punch flow drives pending -> in_progress -> approbation. Approval and
  validation belong to an external administrative workflow; the table still
  owns those transitions so that workflow cannot invent illegal ones.
*/
package workforce

// LifecycleEvent is something that happens to a mission.
type LifecycleEvent string

const (
	EventPunch    LifecycleEvent = "punch"
	EventCancel   LifecycleEvent = "cancel"
	EventComplete LifecycleEvent = "complete"
	EventValidate LifecycleEvent = "validate"
)

// transitions is the closed (status, event) -> status table.
var transitions = map[MissionStatus]map[LifecycleEvent]MissionStatus{
	MissionPending: {
		EventPunch:  MissionInProgress,
		EventCancel: MissionCancelled,
	},
	MissionInProgress: {
		EventPunch:  MissionApprobation,
		EventCancel: MissionCancelled,
	},
	MissionApprobation: {
		EventComplete: MissionCompleted,
		EventValidate: MissionValidated,
	},
}

// NextStatus resolves an event against the transition table.
// Returns InvalidTransitionError if the event is not legal from the
// mission's current status.
func NextStatus(m *Mission, event LifecycleEvent) (MissionStatus, error) {
	if next, ok := transitions[m.Status][event]; ok {
		return next, nil
	}
	return "", &InvalidTransitionError{MissionID: m.ID, From: m.Status, Event: event}
}
