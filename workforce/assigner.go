/*
assigner.go - Least-loaded mission assignment

PURPOSE:
  Picks the worker with the fewest active missions, computes their next free
  slot, and materializes a new pending mission in that slot.

HEURISTIC, NOT ADMISSION CONTROL:
  The ranking read and the mission insert are deliberately not wrapped in
  one transaction, mirroring the behavior this engine replaces. Two
  concurrent assignments can both pick the same least-loaded worker and both
  append a mission to them. That skews the split but never double-books a
  mission object, since each call creates a distinct row.
*/
package workforce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultSlotDuration is the fixed length of a scheduled mission slot.
const DefaultSlotDuration = 2 * time.Hour

// Assigner creates missions for the least-loaded available worker.
type Assigner struct {
	Store        Store
	Workload     *WorkloadIndex
	Slots        *SlotFinder
	SlotDuration time.Duration
}

// NewAssigner wires an Assigner over a store with the default slot duration
// and working hours.
func NewAssigner(store Store, hours WorkingHours) *Assigner {
	return &Assigner{
		Store:        store,
		Workload:     &WorkloadIndex{Store: store},
		Slots:        &SlotFinder{Store: store, Hours: hours},
		SlotDuration: DefaultSlotDuration,
	}
}

// Assign enumerates all workers, selects the one with the strictly smallest
// active-mission count (first encountered wins on ties), and creates a
// pending mission at their next available slot.
// Fails with ErrNoWorkerAvailable if no workers exist.
func (a *Assigner) Assign(ctx context.Context, orderRef, notes string, now time.Time) (*Mission, *Worker, error) {
	workers, err := a.Store.ListWorkers(ctx)
	if err != nil {
		return nil, nil, err
	}
	if len(workers) == 0 {
		return nil, nil, ErrNoWorkerAvailable
	}

	var chosen *Worker
	best := -1
	for i := range workers {
		count, err := a.Workload.ActiveMissionCount(ctx, workers[i].ID)
		if err != nil {
			return nil, nil, err
		}
		if best < 0 || count < best {
			best = count
			chosen = &workers[i]
		}
	}

	start, err := a.Slots.NextAvailableSlot(ctx, chosen.ID, now)
	if err != nil {
		return nil, nil, err
	}

	duration := a.SlotDuration
	if duration <= 0 {
		duration = DefaultSlotDuration
	}

	mission := Mission{
		ID:             MissionID(uuid.NewString()),
		WorkerID:       chosen.ID,
		OrderRef:       orderRef,
		ScheduledStart: start,
		ScheduledEnd:   start.Add(duration),
		Status:         MissionPending,
		Notes:          notes,
		CreatedAt:      now,
	}

	if err := a.Store.SaveMission(ctx, mission); err != nil {
		return nil, nil, err
	}
	return &mission, chosen, nil
}
