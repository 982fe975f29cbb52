/*
Package workforce implements the field-mission assignment and payroll engine.

PURPOSE:
  This package contains the domain types and algorithms for assigning field
  missions to workers, tracking worked time through punch events, computing
  earnings under configurable pay rates, and rolling unclaimed time logs and
  payments into immutable payroll statements.

KEY CONCEPTS IN THIS FILE (types.go):
  - Worker: a field employee with a configured PayRate
  - Mission: one scheduled/executed field assignment
  - TimeLog: one observed work interval for a (Mission, Worker) pair
  - Payment: a monetary disbursement recorded outside the payroll roll-up
  - Payroll: an immutable statement claiming time logs and payments

DESIGN PRINCIPLES:
  1. Precision: all money uses decimal.Decimal, never float64
  2. Type Safety: strong typing for IDs prevents mixing worker/mission IDs
  3. Closed status sets: mission statuses are a closed enum validated by a
     central transition table (see lifecycle.go)
  4. Claiming: a TimeLog or Payment belongs to at most one Payroll, marked
     by its PayrollID; payrolls are never mutated after creation

SEE ALSO:
  - lifecycle.go: Mission status transition table
  - earnings.go:  Pay-rate policies
  - payroll.go:   Statement generation and claiming
*/
package workforce

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type WorkerID string
type MissionID string
type TimeLogID string
type PaymentID string
type PayrollID string

// =============================================================================
// PAY RATE - How a worker's earnings are computed
// =============================================================================

type PayRateType string

const (
	PayPerHour    PayRateType = "per_hour"
	PayPerDay     PayRateType = "per_day"
	PayPerMission PayRateType = "per_mission"
)

// PayRate is a worker's configured pay policy. A zero PayRate (empty Type)
// means no rate is configured; earnings resolve to zero (see earnings.go).
type PayRate struct {
	Type   PayRateType
	Amount decimal.Decimal
}

func (r PayRate) IsConfigured() bool {
	switch r.Type {
	case PayPerHour, PayPerDay, PayPerMission:
		return true
	}
	return false
}

// =============================================================================
// WORKER
// =============================================================================

type Worker struct {
	ID        WorkerID
	Name      string
	Email     string
	PayRate   PayRate
	CreatedAt time.Time
}

// =============================================================================
// MISSION - One field assignment
// =============================================================================

type MissionStatus string

const (
	MissionPending     MissionStatus = "pending"
	MissionInProgress  MissionStatus = "in_progress"
	MissionApprobation MissionStatus = "approbation"
	MissionCompleted   MissionStatus = "completed"
	MissionValidated   MissionStatus = "validated"
	MissionCancelled   MissionStatus = "cancelled"
)

// ActiveStatuses are the non-terminal statuses that count toward a worker's
// load and block their schedule.
var ActiveStatuses = []MissionStatus{MissionPending, MissionInProgress}

func (s MissionStatus) IsActive() bool {
	return s == MissionPending || s == MissionInProgress
}

func (s MissionStatus) IsTerminal() bool {
	return s == MissionCompleted || s == MissionValidated || s == MissionCancelled
}

type Mission struct {
	ID       MissionID
	WorkerID WorkerID // empty until assigned
	OrderRef string   // opaque reference to the originating order

	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time

	Status MissionStatus
	Notes  string

	CreatedAt time.Time
}

// =============================================================================
// TIME LOG - One observed work interval
// =============================================================================

type TimeLog struct {
	ID        TimeLogID
	MissionID MissionID
	WorkerID  WorkerID

	StartTime       time.Time
	EndTime         *time.Time // nil while open
	DurationMinutes int        // derived at close

	// Earnings computed at close from the worker's PayRate; manually
	// correctable afterward without reopening the log.
	Earnings         decimal.Decimal
	NoRateConfigured bool

	PayrollID *PayrollID // set exactly once by the claiming payroll
}

func (tl TimeLog) IsOpen() bool    { return tl.EndTime == nil }
func (tl TimeLog) IsClaimed() bool { return tl.PayrollID != nil }

// =============================================================================
// PAYMENT - A disbursement outside the automatic roll-up
// =============================================================================

type PaymentType string

const (
	PaymentAdvance       PaymentType = "advance"
	PaymentWage          PaymentType = "wage"
	PaymentReimbursement PaymentType = "reimbursement"
)

type Payment struct {
	ID       PaymentID
	WorkerID WorkerID
	Amount   decimal.Decimal
	Date     time.Time
	Type     PaymentType
	Notes    string

	PayrollID *PayrollID
}

func (p Payment) IsClaimed() bool { return p.PayrollID != nil }

// =============================================================================
// PAYROLL - Immutable statement over one period
// =============================================================================

type PayrollStatus string

const (
	PayrollGenerated PayrollStatus = "generated"
)

// Payroll aggregates the time logs and payments it claimed for one worker
// over [PeriodStart, PeriodEnd]. Append-only: once created it is never
// mutated, and claimed rows are never reclaimed by a later statement.
type Payroll struct {
	ID       PayrollID
	WorkerID WorkerID

	// Human-readable number, sequential per calendar year: PR-2026-003.
	Number string
	Year   int
	Seq    int

	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalDue  decimal.Decimal // sum of claimed time-log earnings
	TotalPaid decimal.Decimal // sum of claimed payment amounts
	Balance   decimal.Decimal // TotalDue - TotalPaid

	Status    PayrollStatus
	CreatedAt time.Time

	// Claimed rows, populated on generation for statement rendering.
	TimeLogs []TimeLog
	Payments []Payment
}
