/*
engine.go - Public operations of the workforce engine

PURPOSE:
  The Engine is the facade the transport layer talks to. It owns the store,
  the notifier, the working-hours calendar and the logger, and exposes the
  operations:

    AssignMission     order confirmed -> new pending mission
    Punch             worker punch-in / punch-out on a mission
    CancelMission     escape hatch for pending / in-progress missions
    CorrectEarnings   administrative correction on a closed time log
    RecordPayment     manual disbursement entry
    GeneratePayroll   period roll-up into an immutable statement

TRANSACTIONS:
  Punch handling runs inside WithTx so the status change and the time-log
  write commit together or not at all. Payroll generation is transactional
  inside PayrollAggregator. Assignment's ranking read is deliberately outside
  the mission insert's transaction (see assigner.go).

NOTIFICATIONS:
  Dispatched after the owning transaction commits, never inside it. A failed
  notification is logged and dropped.
*/
package workforce

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine wires the components together behind the public operations.
type Engine struct {
	Store    TxStore
	Notifier Notifier
	Hours    WorkingHours
	Log      *logrus.Logger

	// ApproverIDs receive a notification when a mission reaches approbation.
	ApproverIDs []string

	assigner *Assigner
	payrolls *PayrollAggregator
}

// NewEngine creates an engine with the default working-hours window.
func NewEngine(store TxStore, notifier Notifier, log *logrus.Logger) *Engine {
	e := &Engine{
		Store:    store,
		Notifier: notifier,
		Hours:    DefaultWorkingHours,
		Log:      log,
	}
	e.assigner = NewAssigner(store, e.Hours)
	e.payrolls = &PayrollAggregator{Store: store}
	return e
}

// =============================================================================
// ASSIGNMENT
// =============================================================================

// AssignMission picks the least-loaded worker and schedules a new pending
// mission for the given order at their next free slot.
func (e *Engine) AssignMission(ctx context.Context, orderRef, notes string, now time.Time) (*Mission, error) {
	mission, worker, err := e.assigner.Assign(ctx, orderRef, notes, now)
	if err != nil {
		return nil, err
	}

	e.notify(ctx, string(worker.ID),
		fmt.Sprintf("New mission scheduled %s for order %s",
			mission.ScheduledStart.Format("2006-01-02 15:04"), orderRef),
		"/missions/"+string(mission.ID))

	return mission, nil
}

// =============================================================================
// PUNCH - Drives the mission lifecycle and time-log recording together
// =============================================================================

// Punch records a worker punch on a mission.
//
// On a pending mission it starts work: status moves to in_progress, the
// actual start is stamped, and a time log opens. On an in-progress mission
// it ends work: the open time log closes with duration and earnings, the
// actual end is stamped, and status moves to approbation. Any other status
// rejects the punch with InvalidTransitionError.
func (e *Engine) Punch(ctx context.Context, workerID WorkerID, missionID MissionID, now time.Time) (MissionStatus, error) {
	var newStatus MissionStatus
	var noRate bool

	err := e.Store.WithTx(ctx, func(s Store) error {
		mission, err := s.GetMission(ctx, missionID)
		if err != nil {
			return err
		}
		if mission == nil || mission.WorkerID != workerID {
			return ErrMissionNotFound
		}

		next, err := NextStatus(mission, EventPunch)
		if err != nil {
			return err
		}

		recorder := &TimeLogRecorder{Store: s}
		switch next {
		case MissionInProgress:
			if _, err := recorder.Open(ctx, mission.ID, workerID, now); err != nil {
				return err
			}
			start := now
			mission.ActualStart = &start

		case MissionApprobation:
			worker, err := s.GetWorker(ctx, workerID)
			if err != nil {
				return err
			}
			if worker == nil {
				return ErrWorkerNotFound
			}
			tl, err := recorder.Close(ctx, mission.ID, worker.PayRate, now)
			if err != nil {
				return err
			}
			noRate = tl.NoRateConfigured
			end := now
			mission.ActualEnd = &end
		}

		mission.Status = next
		newStatus = next
		return s.SaveMission(ctx, *mission)
	})
	if err != nil {
		return "", err
	}

	if noRate {
		e.Log.WithFields(logrus.Fields{
			"worker":  workerID,
			"mission": missionID,
		}).Warn("no pay rate configured, time log closed with zero earnings")
	}

	if newStatus == MissionApprobation {
		for _, approver := range e.ApproverIDs {
			e.notify(ctx, approver,
				fmt.Sprintf("Mission %s awaits approval", missionID),
				"/missions/"+string(missionID))
		}
	}

	return newStatus, nil
}

// CancelMission moves a pending or in-progress mission to cancelled.
func (e *Engine) CancelMission(ctx context.Context, missionID MissionID) error {
	return e.Store.WithTx(ctx, func(s Store) error {
		mission, err := s.GetMission(ctx, missionID)
		if err != nil {
			return err
		}
		if mission == nil {
			return ErrMissionNotFound
		}

		next, err := NextStatus(mission, EventCancel)
		if err != nil {
			return err
		}
		mission.Status = next
		return s.SaveMission(ctx, *mission)
	})
}

// =============================================================================
// CORRECTIONS AND PAYMENTS
// =============================================================================

// CorrectEarnings overrides the earnings of an already-closed time log.
// The log is not reopened and its duration is untouched. Negative amounts
// are rejected; zero is a legal correction.
func (e *Engine) CorrectEarnings(ctx context.Context, timeLogID TimeLogID, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	return e.Store.WithTx(ctx, func(s Store) error {
		tl, err := s.GetTimeLog(ctx, timeLogID)
		if err != nil {
			return err
		}
		if tl == nil {
			return ErrTimeLogNotFound
		}
		if tl.IsOpen() {
			return ErrTimeLogStillOpen
		}

		tl.Earnings = amount.Round(2)
		tl.NoRateConfigured = false
		return s.SaveTimeLog(ctx, *tl)
	})
}

// RecordPayment records a disbursement to a worker (advance, wage payment,
// reimbursement). The amount must be strictly positive.
func (e *Engine) RecordPayment(ctx context.Context, workerID WorkerID, amount decimal.Decimal, date time.Time, kind PaymentType, notes string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	worker, err := e.Store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}

	payment := Payment{
		ID:       PaymentID(uuid.NewString()),
		WorkerID: workerID,
		Amount:   amount.Round(2),
		Date:     date,
		Type:     kind,
		Notes:    notes,
	}
	if err := e.Store.SavePayment(ctx, payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// =============================================================================
// PAYROLL
// =============================================================================

// GeneratePayroll rolls the worker's unclaimed time logs and payments in
// [periodStart, periodEnd] into a new immutable statement.
func (e *Engine) GeneratePayroll(ctx context.Context, workerID WorkerID, periodStart, periodEnd time.Time) (*Payroll, error) {
	worker, err := e.Store.GetWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker == nil {
		return nil, ErrWorkerNotFound
	}
	return e.payrolls.Generate(ctx, workerID, periodStart, periodEnd)
}

// =============================================================================
// HELPERS
// =============================================================================

func (e *Engine) notify(ctx context.Context, recipientID, message, link string) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.Notify(ctx, recipientID, message, link); err != nil {
		e.Log.WithError(err).WithField("recipient", recipientID).
			Warn("notification delivery failed")
	}
}
