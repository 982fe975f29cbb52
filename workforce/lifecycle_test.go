package workforce_test

import (
	"errors"
	"testing"

	"github.com/fieldops/workforce-engine/workforce"
)

func TestNextStatus_LegalTransitions(t *testing.T) {
	cases := []struct {
		from  workforce.MissionStatus
		event workforce.LifecycleEvent
		want  workforce.MissionStatus
	}{
		{workforce.MissionPending, workforce.EventPunch, workforce.MissionInProgress},
		{workforce.MissionPending, workforce.EventCancel, workforce.MissionCancelled},
		{workforce.MissionInProgress, workforce.EventPunch, workforce.MissionApprobation},
		{workforce.MissionInProgress, workforce.EventCancel, workforce.MissionCancelled},
		{workforce.MissionApprobation, workforce.EventComplete, workforce.MissionCompleted},
		{workforce.MissionApprobation, workforce.EventValidate, workforce.MissionValidated},
	}

	for _, c := range cases {
		m := &workforce.Mission{ID: "m-1", Status: c.from}
		got, err := workforce.NextStatus(m, c.event)
		if err != nil {
			t.Errorf("%s + %s: unexpected error: %v", c.from, c.event, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s + %s: expected %s, got %s", c.from, c.event, c.want, got)
		}
	}
}

func TestNextStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from  workforce.MissionStatus
		event workforce.LifecycleEvent
	}{
		// A third punch is rejected: approbation is not punchable.
		{workforce.MissionApprobation, workforce.EventPunch},
		// Terminal statuses accept nothing.
		{workforce.MissionCompleted, workforce.EventPunch},
		{workforce.MissionValidated, workforce.EventPunch},
		{workforce.MissionCancelled, workforce.EventPunch},
		{workforce.MissionCompleted, workforce.EventCancel},
		{workforce.MissionCancelled, workforce.EventCancel},
		// Approbation cannot be cancelled, only completed or validated.
		{workforce.MissionApprobation, workforce.EventCancel},
		// Approval events only apply from approbation.
		{workforce.MissionPending, workforce.EventComplete},
		{workforce.MissionInProgress, workforce.EventValidate},
	}

	for _, c := range cases {
		m := &workforce.Mission{ID: "m-1", Status: c.from}
		_, err := workforce.NextStatus(m, c.event)
		if err == nil {
			t.Errorf("%s + %s: expected rejection", c.from, c.event)
			continue
		}
		if !errors.Is(err, workforce.ErrInvalidTransition) {
			t.Errorf("%s + %s: expected ErrInvalidTransition, got %v", c.from, c.event, err)
		}

		var ite *workforce.InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Errorf("%s + %s: expected InvalidTransitionError", c.from, c.event)
			continue
		}
		if ite.From != c.from || ite.Event != c.event {
			t.Errorf("error context mismatch: got from=%s event=%s", ite.From, ite.Event)
		}
	}
}

func TestMissionStatus_Classification(t *testing.T) {
	active := []workforce.MissionStatus{workforce.MissionPending, workforce.MissionInProgress}
	terminal := []workforce.MissionStatus{
		workforce.MissionCompleted, workforce.MissionValidated, workforce.MissionCancelled,
	}

	for _, s := range active {
		if !s.IsActive() || s.IsTerminal() {
			t.Errorf("%s: expected active, non-terminal", s)
		}
	}
	for _, s := range terminal {
		if s.IsActive() || !s.IsTerminal() {
			t.Errorf("%s: expected terminal, non-active", s)
		}
	}
	// Approbation is neither: it no longer blocks the schedule but the
	// mission is not finished either.
	if workforce.MissionApprobation.IsActive() || workforce.MissionApprobation.IsTerminal() {
		t.Error("approbation should be neither active nor terminal")
	}
}
