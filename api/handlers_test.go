/*
handlers_test.go - HTTP-level tests for the workforce API

Tests drive the full stack: router -> handlers -> engine -> SQLite (:memory:).
*/
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fieldops/workforce-engine/store/sqlite"
	"github.com/fieldops/workforce-engine/workforce"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	engine := workforce.NewEngine(store, workforce.NopNotifier{}, log)
	return NewRouter(NewHandler(engine, log))
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func createHourlyWorker(t *testing.T, router http.Handler, id string, hourly float64) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/workers", CreateWorkerRequest{
		ID: id, Name: "Worker " + id, PayRateType: "per_hour", PayRateAmount: hourly,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create worker: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func assignMission(t *testing.T, router http.Handler, orderRef string) MissionDTO {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/missions", AssignMissionRequest{OrderRef: orderRef})
	if rec.Code != http.StatusCreated {
		t.Fatalf("assign: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	return decode[MissionDTO](t, rec)
}

func punch(t *testing.T, router http.Handler, missionID, workerID string, at time.Time) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/missions/%s/punch", missionID),
		PunchRequest{WorkerID: workerID, At: at.Format(time.RFC3339)})
}

// =============================================================================
// END-TO-END FLOW
// =============================================================================

func TestMissionFlow_AssignPunchPayroll(t *testing.T) {
	// GIVEN: One hourly worker at 100/hour
	// WHEN: A mission is assigned, punched in at 09:00, punched out at 10:30,
	//       and a 50.00 advance is recorded
	// THEN: The March payroll shows totalDue=150, totalPaid=50, balance=100

	router := newTestRouter(t)
	createHourlyWorker(t, router, "w-1", 100)

	mission := assignMission(t, router, "ord-1")
	if mission.WorkerID != "w-1" {
		t.Fatalf("expected assignment to w-1, got %s", mission.WorkerID)
	}
	if mission.Status != string(workforce.MissionPending) {
		t.Errorf("expected pending, got %s", mission.Status)
	}

	punchIn := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	rec := punch(t, router, mission.ID, "w-1", punchIn)
	if rec.Code != http.StatusOK {
		t.Fatalf("punch in: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[PunchResponseDTO](t, rec); got.NewStatus != string(workforce.MissionInProgress) {
		t.Errorf("expected in_progress, got %s", got.NewStatus)
	}

	rec = punch(t, router, mission.ID, "w-1", punchIn.Add(90*time.Minute))
	if rec.Code != http.StatusOK {
		t.Fatalf("punch out: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[PunchResponseDTO](t, rec); got.NewStatus != string(workforce.MissionApprobation) {
		t.Errorf("expected approbation, got %s", got.NewStatus)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/workers/w-1/timelogs", nil)
	logs := decode[[]TimeLogDTO](t, rec)
	if len(logs) != 1 {
		t.Fatalf("expected 1 time log, got %d", len(logs))
	}
	if logs[0].DurationMinutes != 90 || logs[0].Earnings != 150.00 {
		t.Errorf("expected 90min / 150.00, got %dmin / %v", logs[0].DurationMinutes, logs[0].Earnings)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/payments", RecordPaymentRequest{
		WorkerID: "w-1", Amount: 50, Date: "2026-03-03", Type: "advance",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("payment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/payrolls", GeneratePayrollRequest{
		WorkerID: "w-1", PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("payroll: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	payroll := decode[PayrollDTO](t, rec)
	if payroll.Number != "PR-2026-001" {
		t.Errorf("expected PR-2026-001, got %s", payroll.Number)
	}
	if payroll.TotalDue != 150 || payroll.TotalPaid != 50 || payroll.Balance != 100 {
		t.Errorf("totals mismatch: due=%v paid=%v balance=%v",
			payroll.TotalDue, payroll.TotalPaid, payroll.Balance)
	}
	if len(payroll.TimeLogs) != 1 || len(payroll.Payments) != 1 {
		t.Errorf("expected 1 claimed log and 1 claimed payment, got %d/%d",
			len(payroll.TimeLogs), len(payroll.Payments))
	}

	// Statement is retrievable and a repeat generation claims nothing.
	rec = doJSON(t, router, http.MethodGet, "/api/payrolls/"+payroll.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get payroll: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/payrolls", GeneratePayrollRequest{
		WorkerID: "w-1", PeriodStart: "2026-03-01", PeriodEnd: "2026-03-31",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second payroll: expected 201, got %d", rec.Code)
	}
	if second := decode[PayrollDTO](t, rec); second.TotalDue != 0 || second.Balance != 0 {
		t.Errorf("second statement should be empty: %+v", second)
	}
}

func TestPunch_InvalidAndNotFound(t *testing.T) {
	router := newTestRouter(t)
	createHourlyWorker(t, router, "w-1", 100)
	createHourlyWorker(t, router, "w-2", 100)

	mission := assignMission(t, router, "ord-1")
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	// Punching someone else's mission reads as not-found.
	if rec := punch(t, router, mission.ID, "w-2", now); rec.Code != http.StatusNotFound {
		t.Errorf("wrong worker: expected 404, got %d", rec.Code)
	}
	if rec := punch(t, router, "m-missing", "w-1", now); rec.Code != http.StatusNotFound {
		t.Errorf("unknown mission: expected 404, got %d", rec.Code)
	}

	// Walk to approbation, then a third punch is a client error.
	punch(t, router, mission.ID, "w-1", now)
	punch(t, router, mission.ID, "w-1", now.Add(time.Hour))
	if rec := punch(t, router, mission.ID, "w-1", now.Add(2*time.Hour)); rec.Code != http.StatusBadRequest {
		t.Errorf("third punch: expected 400, got %d", rec.Code)
	}

	// Malformed timestamp.
	rec := doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/missions/%s/punch", mission.ID),
		PunchRequest{WorkerID: "w-1", At: "yesterday"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad timestamp: expected 400, got %d", rec.Code)
	}
}

func TestAssignMission_NoWorkers(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/missions", AssignMissionRequest{OrderRef: "ord-1"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 with no workers, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateWorker_ValidationFailures(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		name string
		req  CreateWorkerRequest
	}{
		{"missing id", CreateWorkerRequest{Name: "No ID"}},
		{"missing name", CreateWorkerRequest{ID: "w-1"}},
		{"bad rate type", CreateWorkerRequest{ID: "w-1", Name: "X", PayRateType: "per_minute"}},
		{"bad email", CreateWorkerRequest{ID: "w-1", Name: "X", Email: "not-an-email"}},
	}
	for _, c := range cases {
		rec := doJSON(t, router, http.MethodPost, "/api/workers", c.req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", c.name, rec.Code)
		}
	}
}

func TestRecordPayment_Validation(t *testing.T) {
	router := newTestRouter(t)
	createHourlyWorker(t, router, "w-1", 100)

	// Amount must be strictly positive (validator rejects before the engine).
	rec := doJSON(t, router, http.MethodPost, "/api/payments", RecordPaymentRequest{
		WorkerID: "w-1", Amount: 0, Date: "2026-03-03", Type: "advance",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero amount: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/payments", RecordPaymentRequest{
		WorkerID: "w-missing", Amount: 10, Date: "2026-03-03", Type: "advance",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown worker: expected 404, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/payments", RecordPaymentRequest{
		WorkerID: "w-1", Amount: 10, Date: "03/03/2026", Type: "advance",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad date: expected 400, got %d", rec.Code)
	}
}

func TestCorrectEarnings_Endpoint(t *testing.T) {
	router := newTestRouter(t)
	createHourlyWorker(t, router, "w-1", 100)
	mission := assignMission(t, router, "ord-1")

	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	punch(t, router, mission.ID, "w-1", now)
	punch(t, router, mission.ID, "w-1", now.Add(time.Hour))

	rec := doJSON(t, router, http.MethodGet, "/api/workers/w-1/timelogs", nil)
	logs := decode[[]TimeLogDTO](t, rec)
	if len(logs) != 1 {
		t.Fatalf("expected 1 time log, got %d", len(logs))
	}

	rec = doJSON(t, router, http.MethodPost,
		"/api/timelogs/"+logs[0].ID+"/earnings",
		CorrectEarningsRequest{Amount: 75.25})
	if rec.Code != http.StatusOK {
		t.Fatalf("correction: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := decode[TimeLogDTO](t, rec); got.Earnings != 75.25 {
		t.Errorf("expected 75.25, got %v", got.Earnings)
	}

	rec = doJSON(t, router, http.MethodPost,
		"/api/timelogs/tl-missing/earnings", CorrectEarningsRequest{Amount: 10})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown log: expected 404, got %d", rec.Code)
	}
}

func TestCancelMission_Endpoint(t *testing.T) {
	router := newTestRouter(t)
	createHourlyWorker(t, router, "w-1", 100)
	mission := assignMission(t, router, "ord-1")

	rec := doJSON(t, router, http.MethodPost, "/api/missions/"+mission.ID+"/cancel", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/missions/"+mission.ID, nil)
	if got := decode[MissionDTO](t, rec); got.Status != string(workforce.MissionCancelled) {
		t.Errorf("expected cancelled, got %s", got.Status)
	}

	// Cancelled is terminal; a second cancel is rejected.
	rec = doJSON(t, router, http.MethodPost, "/api/missions/"+mission.ID+"/cancel", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("double cancel: expected 400, got %d", rec.Code)
	}
}
