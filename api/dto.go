/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run the
  validator before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/fieldops/workforce-engine/workforce"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateWorkerRequest registers a worker with their pay-rate configuration.
type CreateWorkerRequest struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Email         string  `json:"email" validate:"omitempty,email"`
	PayRateType   string  `json:"pay_rate_type" validate:"omitempty,oneof=per_hour per_day per_mission"`
	PayRateAmount float64 `json:"pay_rate_amount" validate:"gte=0"`
}

// AssignMissionRequest asks for a mission to be assigned for an order.
type AssignMissionRequest struct {
	OrderRef string `json:"order_ref" validate:"required"`
	Notes    string `json:"notes"`
}

// PunchRequest records a punch event. At defaults to the current time.
type PunchRequest struct {
	WorkerID string `json:"worker_id" validate:"required"`
	At       string `json:"at" validate:"omitempty"` // RFC3339
}

// CorrectEarningsRequest overrides a closed time log's earnings.
type CorrectEarningsRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

// RecordPaymentRequest records a disbursement to a worker.
type RecordPaymentRequest struct {
	WorkerID string  `json:"worker_id" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required"` // YYYY-MM-DD
	Type     string  `json:"type" validate:"required,oneof=advance wage reimbursement"`
	Notes    string  `json:"notes"`
}

// GeneratePayrollRequest rolls up a worker's period into a statement.
type GeneratePayrollRequest struct {
	WorkerID    string `json:"worker_id" validate:"required"`
	PeriodStart string `json:"period_start" validate:"required"` // YYYY-MM-DD
	PeriodEnd   string `json:"period_end" validate:"required"`   // YYYY-MM-DD
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type WorkerDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	PayRateType   string  `json:"pay_rate_type,omitempty"`
	PayRateAmount float64 `json:"pay_rate_amount"`
	CreatedAt     string  `json:"created_at,omitempty"`
}

type MissionDTO struct {
	ID             string  `json:"id"`
	WorkerID       string  `json:"worker_id,omitempty"`
	OrderRef       string  `json:"order_ref,omitempty"`
	ScheduledStart string  `json:"scheduled_start"`
	ScheduledEnd   string  `json:"scheduled_end"`
	ActualStart    *string `json:"actual_start,omitempty"`
	ActualEnd      *string `json:"actual_end,omitempty"`
	Status         string  `json:"status"`
	Notes          string  `json:"notes,omitempty"`
}

type PunchResponseDTO struct {
	MissionID string `json:"mission_id"`
	NewStatus string `json:"new_status"`
}

type TimeLogDTO struct {
	ID               string  `json:"id"`
	MissionID        string  `json:"mission_id"`
	WorkerID         string  `json:"worker_id"`
	StartTime        string  `json:"start_time"`
	EndTime          *string `json:"end_time,omitempty"`
	DurationMinutes  int     `json:"duration_minutes"`
	Earnings         float64 `json:"earnings"`
	NoRateConfigured bool    `json:"no_rate_configured,omitempty"`
	PayrollID        *string `json:"payroll_id,omitempty"`
}

type PaymentDTO struct {
	ID        string  `json:"id"`
	WorkerID  string  `json:"worker_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	Notes     string  `json:"notes,omitempty"`
	PayrollID *string `json:"payroll_id,omitempty"`
}

type PayrollDTO struct {
	ID          string       `json:"id"`
	WorkerID    string       `json:"worker_id"`
	Number      string       `json:"number"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	TotalDue    float64      `json:"total_due"`
	TotalPaid   float64      `json:"total_paid"`
	Balance     float64      `json:"balance"`
	Status      string       `json:"status"`
	CreatedAt   string       `json:"created_at"`
	TimeLogs    []TimeLogDTO `json:"time_logs,omitempty"`
	Payments    []PaymentDTO `json:"payments,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toWorkerDTO(w workforce.Worker) WorkerDTO {
	amount, _ := w.PayRate.Amount.Float64()
	return WorkerDTO{
		ID:            string(w.ID),
		Name:          w.Name,
		Email:         w.Email,
		PayRateType:   string(w.PayRate.Type),
		PayRateAmount: amount,
		CreatedAt:     w.CreatedAt.Format(time.RFC3339),
	}
}

func toMissionDTO(m workforce.Mission) MissionDTO {
	return MissionDTO{
		ID:             string(m.ID),
		WorkerID:       string(m.WorkerID),
		OrderRef:       m.OrderRef,
		ScheduledStart: m.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:   m.ScheduledEnd.Format(time.RFC3339),
		ActualStart:    formatTimePtr(m.ActualStart),
		ActualEnd:      formatTimePtr(m.ActualEnd),
		Status:         string(m.Status),
		Notes:          m.Notes,
	}
}

func toTimeLogDTO(tl workforce.TimeLog) TimeLogDTO {
	earnings, _ := tl.Earnings.Float64()
	return TimeLogDTO{
		ID:               string(tl.ID),
		MissionID:        string(tl.MissionID),
		WorkerID:         string(tl.WorkerID),
		StartTime:        tl.StartTime.Format(time.RFC3339),
		EndTime:          formatTimePtr(tl.EndTime),
		DurationMinutes:  tl.DurationMinutes,
		Earnings:         earnings,
		NoRateConfigured: tl.NoRateConfigured,
		PayrollID:        payrollIDPtr(tl.PayrollID),
	}
}

func toPaymentDTO(p workforce.Payment) PaymentDTO {
	amount, _ := p.Amount.Float64()
	return PaymentDTO{
		ID:        string(p.ID),
		WorkerID:  string(p.WorkerID),
		Amount:    amount,
		Date:      p.Date.Format("2006-01-02"),
		Type:      string(p.Type),
		Notes:     p.Notes,
		PayrollID: payrollIDPtr(p.PayrollID),
	}
}

func toPayrollDTO(p workforce.Payroll) PayrollDTO {
	totalDue, _ := p.TotalDue.Float64()
	totalPaid, _ := p.TotalPaid.Float64()
	balance, _ := p.Balance.Float64()

	dto := PayrollDTO{
		ID:          string(p.ID),
		WorkerID:    string(p.WorkerID),
		Number:      p.Number,
		PeriodStart: p.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   p.PeriodEnd.Format("2006-01-02"),
		TotalDue:    totalDue,
		TotalPaid:   totalPaid,
		Balance:     balance,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	for _, tl := range p.TimeLogs {
		dto.TimeLogs = append(dto.TimeLogs, toTimeLogDTO(tl))
	}
	for _, payment := range p.Payments {
		dto.Payments = append(dto.Payments, toPaymentDTO(payment))
	}
	return dto
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func payrollIDPtr(id *workforce.PayrollID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}
