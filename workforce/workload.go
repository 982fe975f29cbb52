package workforce

import "context"

// =============================================================================
// WORKLOAD INDEX - Active-mission count per worker
// =============================================================================

// WorkloadIndex computes each worker's count of active (non-terminal)
// missions. Read-only: it ranks candidates for assignment but does not lock
// or reserve capacity (see assigner.go for the consequences).
type WorkloadIndex struct {
	Store Store
}

// ActiveMissionCount returns the number of missions in the non-terminal set
// {pending, in_progress} assigned to the worker.
func (w *WorkloadIndex) ActiveMissionCount(ctx context.Context, workerID WorkerID) (int, error) {
	return w.Store.CountMissions(ctx, workerID, ActiveStatuses)
}
