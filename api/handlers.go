/*
handlers.go - HTTP API handlers for the workforce engine

PURPOSE:
  Exposes the engine via REST. Handles HTTP request/response, JSON
  serialization and validation, and delegates to the domain logic.

ENDPOINTS:
  Workers:
    GET    /api/workers                 List workers
    POST   /api/workers                 Register worker with pay rate
    GET    /api/workers/{id}            Worker details
    GET    /api/workers/{id}/missions   Worker's missions
    GET    /api/workers/{id}/timelogs   Worker's time logs
    GET    /api/workers/{id}/payments   Worker's payments
    GET    /api/workers/{id}/payrolls   Worker's payroll statements

  Missions:
    POST   /api/missions                Assign a mission for an order
    GET    /api/missions/{id}           Mission details
    POST   /api/missions/{id}/punch     Punch in / punch out
    POST   /api/missions/{id}/cancel    Cancel a pending/in-progress mission

  Time logs:
    POST   /api/timelogs/{id}/earnings  Correct earnings on a closed log

  Payments / payrolls:
    POST   /api/payments                Record a disbursement
    POST   /api/payrolls                Generate a payroll statement
    GET    /api/payrolls/{id}           Statement with claimed rows

ERROR HANDLING:
  Domain errors map onto HTTP status via the workforce error helpers:
  - 400: IsClientError (invalid transition, invalid amount, bad period, ...)
  - 404: IsNotFound
  - 409: IsConflict (concurrent claim; retry the call once)
  - 500: everything else

SECURITY NOTE:
  No authentication or authorization here. The engine assumes the caller
  was authorized upstream.

SEE ALSO:
  - dto.go:     Request/response data structures
  - server.go:  Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/fieldops/workforce-engine/workforce"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine   *workforce.Engine
	Store    workforce.TxStore
	Validate *validator.Validate
	Log      *logrus.Logger
}

// NewHandler creates a handler around an engine.
func NewHandler(engine *workforce.Engine, log *logrus.Logger) *Handler {
	return &Handler{
		Engine:   engine,
		Store:    engine.Store,
		Validate: validator.New(),
		Log:      log,
	}
}

// =============================================================================
// WORKER HANDLERS
// =============================================================================

// ListWorkers returns all workers in registration order.
func (h *Handler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Store.ListWorkers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list workers", err)
		return
	}

	dtos := make([]WorkerDTO, len(workers))
	for i, worker := range workers {
		dtos[i] = toWorkerDTO(worker)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateWorker registers a worker and their pay-rate configuration.
func (h *Handler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkerRequest
	if !h.decode(w, r, &req) {
		return
	}

	worker := workforce.Worker{
		ID:    workforce.WorkerID(req.ID),
		Name:  req.Name,
		Email: req.Email,
		PayRate: workforce.PayRate{
			Type:   workforce.PayRateType(req.PayRateType),
			Amount: decimal.NewFromFloat(req.PayRateAmount),
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.SaveWorker(r.Context(), worker); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create worker", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerDTO(worker))
}

// GetWorker returns a single worker.
func (h *Handler) GetWorker(w http.ResponseWriter, r *http.Request) {
	worker, err := h.Store.GetWorker(r.Context(), workforce.WorkerID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get worker", err)
		return
	}
	if worker == nil {
		writeError(w, http.StatusNotFound, "Worker not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(*worker))
}

// GetWorkerMissions returns the worker's missions.
func (h *Handler) GetWorkerMissions(w http.ResponseWriter, r *http.Request) {
	workerID := workforce.WorkerID(chi.URLParam(r, "id"))
	missions, err := h.Store.MissionsByWorker(r.Context(), workerID, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list missions", err)
		return
	}

	dtos := make([]MissionDTO, len(missions))
	for i, m := range missions {
		dtos[i] = toMissionDTO(m)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkerTimeLogs returns the worker's time logs.
func (h *Handler) GetWorkerTimeLogs(w http.ResponseWriter, r *http.Request) {
	workerID := workforce.WorkerID(chi.URLParam(r, "id"))
	logs, err := h.Store.TimeLogsByWorker(r.Context(), workerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list time logs", err)
		return
	}

	dtos := make([]TimeLogDTO, len(logs))
	for i, tl := range logs {
		dtos[i] = toTimeLogDTO(tl)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkerPayments returns the worker's payments.
func (h *Handler) GetWorkerPayments(w http.ResponseWriter, r *http.Request) {
	workerID := workforce.WorkerID(chi.URLParam(r, "id"))
	payments, err := h.Store.PaymentsByWorker(r.Context(), workerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payments", err)
		return
	}

	dtos := make([]PaymentDTO, len(payments))
	for i, p := range payments {
		dtos[i] = toPaymentDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetWorkerPayrolls returns the worker's payroll statements.
func (h *Handler) GetWorkerPayrolls(w http.ResponseWriter, r *http.Request) {
	workerID := workforce.WorkerID(chi.URLParam(r, "id"))
	payrolls, err := h.Store.PayrollsByWorker(r.Context(), workerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payrolls", err)
		return
	}

	dtos := make([]PayrollDTO, len(payrolls))
	for i, p := range payrolls {
		dtos[i] = toPayrollDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// MISSION HANDLERS
// =============================================================================

// AssignMission creates a pending mission for the least-loaded worker.
func (h *Handler) AssignMission(w http.ResponseWriter, r *http.Request) {
	var req AssignMissionRequest
	if !h.decode(w, r, &req) {
		return
	}

	mission, err := h.Engine.AssignMission(r.Context(), req.OrderRef, req.Notes, time.Now().UTC())
	if err != nil {
		h.writeDomainError(w, "Failed to assign mission", err)
		return
	}
	writeJSON(w, http.StatusCreated, toMissionDTO(*mission))
}

// GetMission returns a single mission.
func (h *Handler) GetMission(w http.ResponseWriter, r *http.Request) {
	mission, err := h.Store.GetMission(r.Context(), workforce.MissionID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get mission", err)
		return
	}
	if mission == nil {
		writeError(w, http.StatusNotFound, "Mission not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toMissionDTO(*mission))
}

// Punch records a worker punch on a mission.
func (h *Handler) Punch(w http.ResponseWriter, r *http.Request) {
	missionID := workforce.MissionID(chi.URLParam(r, "id"))

	var req PunchRequest
	if !h.decode(w, r, &req) {
		return
	}

	at := time.Now().UTC()
	if req.At != "" {
		parsed, err := time.Parse(time.RFC3339, req.At)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid at timestamp (use RFC3339)", err)
			return
		}
		at = parsed
	}

	status, err := h.Engine.Punch(r.Context(), workforce.WorkerID(req.WorkerID), missionID, at)
	if err != nil {
		h.writeDomainError(w, "Punch rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, PunchResponseDTO{
		MissionID: string(missionID),
		NewStatus: string(status),
	})
}

// CancelMission cancels a pending or in-progress mission.
func (h *Handler) CancelMission(w http.ResponseWriter, r *http.Request) {
	missionID := workforce.MissionID(chi.URLParam(r, "id"))
	if err := h.Engine.CancelMission(r.Context(), missionID); err != nil {
		h.writeDomainError(w, "Cancel rejected", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"mission_id": string(missionID),
		"status":     string(workforce.MissionCancelled),
	})
}

// =============================================================================
// TIME LOG HANDLERS
// =============================================================================

// CorrectEarnings overrides the earnings of a closed time log.
func (h *Handler) CorrectEarnings(w http.ResponseWriter, r *http.Request) {
	timeLogID := workforce.TimeLogID(chi.URLParam(r, "id"))

	var req CorrectEarningsRequest
	if !h.decode(w, r, &req) {
		return
	}

	err := h.Engine.CorrectEarnings(r.Context(), timeLogID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		h.writeDomainError(w, "Correction rejected", err)
		return
	}

	tl, err := h.Store.GetTimeLog(r.Context(), timeLogID)
	if err != nil || tl == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload time log", err)
		return
	}
	writeJSON(w, http.StatusOK, toTimeLogDTO(*tl))
}

// =============================================================================
// PAYMENT AND PAYROLL HANDLERS
// =============================================================================

// RecordPayment records a disbursement to a worker.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if !h.decode(w, r, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	payment, err := h.Engine.RecordPayment(r.Context(),
		workforce.WorkerID(req.WorkerID),
		decimal.NewFromFloat(req.Amount),
		date,
		workforce.PaymentType(req.Type),
		req.Notes,
	)
	if err != nil {
		h.writeDomainError(w, "Failed to record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(*payment))
}

// GeneratePayroll rolls up a worker's period into an immutable statement.
func (h *Handler) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req GeneratePayrollRequest
	if !h.decode(w, r, &req) {
		return
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period_start (use YYYY-MM-DD)", err)
		return
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period_end (use YYYY-MM-DD)", err)
		return
	}
	// The end date is inclusive: cover the whole day.
	periodEnd = periodEnd.Add(24*time.Hour - time.Second)

	payroll, err := h.Engine.GeneratePayroll(r.Context(),
		workforce.WorkerID(req.WorkerID), periodStart, periodEnd)
	if err != nil {
		h.writeDomainError(w, "Failed to generate payroll", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPayrollDTO(*payroll))
}

// GetPayroll returns a statement with its claimed rows.
func (h *Handler) GetPayroll(w http.ResponseWriter, r *http.Request) {
	payroll, err := h.Store.GetPayroll(r.Context(), workforce.PayrollID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payroll", err)
		return
	}
	if payroll == nil {
		writeError(w, http.StatusNotFound, "Payroll not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toPayrollDTO(*payroll))
}

// =============================================================================
// HELPERS
// =============================================================================

// decode parses and validates a JSON request body. Writes the error response
// itself and returns false when the body is rejected.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case workforce.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case workforce.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	case workforce.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	default:
		h.Log.WithError(err).Error(message)
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
