/*
store.go - Persistence interfaces for the workforce engine

PURPOSE:
  Defines the interface between domain logic and the database. Different
  implementations can use SQLite or in-memory storage; the engine never
  touches SQL directly.

KEY INTERFACES:
  Store:   Row-level create/read/update operations plus the "unclaimed"
           filter predicates the payroll aggregation depends on
  TxStore: Store plus WithTx for atomic multi-row operations

ATOMICITY CONTRACT:
  Punch handling and payroll generation run inside WithTx. The
  select-then-claim sequence in payroll.go relies on WithTx providing at
  least read-committed isolation with a single writer: a second generation
  re-selecting with a nil payroll_id inside its own transaction must observe
  the first one's claims.

IMPLEMENTATIONS:
  - store/sqlite:          production SQLite store
  - workforce/store:       in-memory store for tests
*/
package workforce

import (
	"context"
	"time"
)

// Store handles persistence for all domain records.
//
// Save* methods are upserts keyed by ID. Get* methods return (nil, nil) when
// the row does not exist; the engine translates that into the *NotFound
// sentinels so store implementations stay error-taxonomy agnostic.
type Store interface {
	// Workers
	SaveWorker(ctx context.Context, w Worker) error
	GetWorker(ctx context.Context, id WorkerID) (*Worker, error)
	// ListWorkers returns workers in insertion order. Assignment tie-breaks
	// depend on this order being stable.
	ListWorkers(ctx context.Context) ([]Worker, error)

	// Missions
	SaveMission(ctx context.Context, m Mission) error
	GetMission(ctx context.Context, id MissionID) (*Mission, error)
	// MissionsByWorker returns the worker's missions, optionally filtered to
	// the given statuses (nil means all), ordered by scheduled start.
	MissionsByWorker(ctx context.Context, workerID WorkerID, statuses []MissionStatus) ([]Mission, error)
	// CountMissions counts the worker's missions in the given statuses.
	CountMissions(ctx context.Context, workerID WorkerID, statuses []MissionStatus) (int, error)

	// Time logs
	SaveTimeLog(ctx context.Context, tl TimeLog) error
	GetTimeLog(ctx context.Context, id TimeLogID) (*TimeLog, error)
	// OpenTimeLog returns the mission's open time log (end_time IS NULL),
	// most recent by start time, or nil if none.
	OpenTimeLog(ctx context.Context, missionID MissionID) (*TimeLog, error)
	TimeLogsByWorker(ctx context.Context, workerID WorkerID) ([]TimeLog, error)
	// UnclaimedTimeLogs returns the worker's time logs with no payroll and
	// start time within [from, to].
	UnclaimedTimeLogs(ctx context.Context, workerID WorkerID, from, to time.Time) ([]TimeLog, error)
	// ClaimTimeLogs sets payroll_id on the given rows, guarded by the rows
	// still being unclaimed. Returns ErrAlreadyClaimed if any row was
	// claimed concurrently.
	ClaimTimeLogs(ctx context.Context, ids []TimeLogID, payrollID PayrollID) error

	// Payments
	SavePayment(ctx context.Context, p Payment) error
	PaymentsByWorker(ctx context.Context, workerID WorkerID) ([]Payment, error)
	UnclaimedPayments(ctx context.Context, workerID WorkerID, from, to time.Time) ([]Payment, error)
	ClaimPayments(ctx context.Context, ids []PaymentID, payrollID PayrollID) error

	// Payrolls
	SavePayroll(ctx context.Context, p Payroll) error
	GetPayroll(ctx context.Context, id PayrollID) (*Payroll, error)
	PayrollsByWorker(ctx context.Context, workerID WorkerID) ([]Payroll, error)
	// MaxPayrollSeq returns the highest statement sequence allocated for the
	// calendar year, 0 if none. Numbering is monotonic per year.
	MaxPayrollSeq(ctx context.Context, year int) (int, error)
}

// TxStore wraps Store with transaction support.
type TxStore interface {
	Store

	// WithTx executes fn within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTx(ctx context.Context, fn func(Store) error) error
}
