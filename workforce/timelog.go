package workforce

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TIME LOG RECORDER - Opens and closes work intervals
// =============================================================================

// TimeLogRecorder binds time logs to a (Mission, Worker) pair.
//
// INVARIANT: at most one time log per mission is open at any time. The
// recorder checks before opening; the SQLite store additionally enforces it
// with a partial unique index, so a race between two punch-ins surfaces as a
// store-level conflict rather than two open rows.
type TimeLogRecorder struct {
	Store Store
}

// Open creates a time log with startTime=now and no end time.
// Fails with ErrDuplicateOpenTimeLog if the mission already has one open.
func (r *TimeLogRecorder) Open(ctx context.Context, missionID MissionID, workerID WorkerID, now time.Time) (*TimeLog, error) {
	existing, err := r.Store.OpenTimeLog(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateOpenTimeLog
	}

	tl := TimeLog{
		ID:        TimeLogID(uuid.NewString()),
		MissionID: missionID,
		WorkerID:  workerID,
		StartTime: now,
	}
	if err := r.Store.SaveTimeLog(ctx, tl); err != nil {
		return nil, err
	}
	return &tl, nil
}

// Close locates the mission's open time log, sets its end time, derives the
// duration in whole minutes, and computes earnings from the given pay rate.
// Fails with ErrNoOpenTimeLog if none is open.
func (r *TimeLogRecorder) Close(ctx context.Context, missionID MissionID, rate PayRate, now time.Time) (*TimeLog, error) {
	tl, err := r.Store.OpenTimeLog(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if tl == nil {
		return nil, ErrNoOpenTimeLog
	}

	end := now
	tl.EndTime = &end
	tl.DurationMinutes = int(math.Round(now.Sub(tl.StartTime).Minutes()))

	earned := ComputeEarnings(rate, tl.DurationMinutes)
	tl.Earnings = earned.Amount
	tl.NoRateConfigured = earned.NoRateConfigured

	if err := r.Store.SaveTimeLog(ctx, *tl); err != nil {
		return nil, err
	}
	return tl, nil
}
