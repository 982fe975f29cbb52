// Package store provides workforce.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fieldops/workforce-engine/workforce"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps all records in maps guarded by a mutex. WithTx serializes
// transactions and restores a snapshot on error, so rollback semantics match
// the SQLite store closely enough for domain tests.
type Memory struct {
	mu   sync.Mutex
	txMu sync.Mutex

	workers  []workforce.Worker // slice: ListWorkers order is insertion order
	missions map[workforce.MissionID]workforce.Mission
	timeLogs map[workforce.TimeLogID]workforce.TimeLog
	payments map[workforce.PaymentID]workforce.Payment
	payrolls map[workforce.PayrollID]workforce.Payroll
}

func NewMemory() *Memory {
	return &Memory{
		missions: make(map[workforce.MissionID]workforce.Mission),
		timeLogs: make(map[workforce.TimeLogID]workforce.TimeLog),
		payments: make(map[workforce.PaymentID]workforce.Payment),
		payrolls: make(map[workforce.PayrollID]workforce.Payroll),
	}
}

// =============================================================================
// WORKERS
// =============================================================================

func (m *Memory) SaveWorker(_ context.Context, w workforce.Worker) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.workers {
		if m.workers[i].ID == w.ID {
			m.workers[i] = w
			return nil
		}
	}
	m.workers = append(m.workers, w)
	return nil
}

func (m *Memory) GetWorker(_ context.Context, id workforce.WorkerID) (*workforce.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.workers {
		if m.workers[i].ID == id {
			w := m.workers[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListWorkers(_ context.Context) ([]workforce.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]workforce.Worker, len(m.workers))
	copy(out, m.workers)
	return out, nil
}

// =============================================================================
// MISSIONS
// =============================================================================

func (m *Memory) SaveMission(_ context.Context, mission workforce.Mission) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.missions[mission.ID] = mission
	return nil
}

func (m *Memory) GetMission(_ context.Context, id workforce.MissionID) (*workforce.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mission, ok := m.missions[id]; ok {
		return &mission, nil
	}
	return nil, nil
}

func (m *Memory) MissionsByWorker(_ context.Context, workerID workforce.WorkerID, statuses []workforce.MissionStatus) ([]workforce.Mission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.Mission
	for _, mission := range m.missions {
		if mission.WorkerID != workerID {
			continue
		}
		if len(statuses) > 0 && !statusIn(mission.Status, statuses) {
			continue
		}
		out = append(out, mission)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledStart.Before(out[j].ScheduledStart)
	})
	return out, nil
}

func (m *Memory) CountMissions(ctx context.Context, workerID workforce.WorkerID, statuses []workforce.MissionStatus) (int, error) {
	missions, err := m.MissionsByWorker(ctx, workerID, statuses)
	if err != nil {
		return 0, err
	}
	return len(missions), nil
}

// =============================================================================
// TIME LOGS
// =============================================================================

func (m *Memory) SaveTimeLog(_ context.Context, tl workforce.TimeLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tl.IsOpen() {
		for _, other := range m.timeLogs {
			if other.MissionID == tl.MissionID && other.IsOpen() && other.ID != tl.ID {
				return workforce.ErrDuplicateOpenTimeLog
			}
		}
	}
	m.timeLogs[tl.ID] = tl
	return nil
}

func (m *Memory) GetTimeLog(_ context.Context, id workforce.TimeLogID) (*workforce.TimeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tl, ok := m.timeLogs[id]; ok {
		return &tl, nil
	}
	return nil, nil
}

func (m *Memory) OpenTimeLog(_ context.Context, missionID workforce.MissionID) (*workforce.TimeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *workforce.TimeLog
	for _, tl := range m.timeLogs {
		if tl.MissionID != missionID || !tl.IsOpen() {
			continue
		}
		tl := tl
		if latest == nil || tl.StartTime.After(latest.StartTime) {
			latest = &tl
		}
	}
	return latest, nil
}

func (m *Memory) TimeLogsByWorker(_ context.Context, workerID workforce.WorkerID) ([]workforce.TimeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.TimeLog
	for _, tl := range m.timeLogs {
		if tl.WorkerID == workerID {
			out = append(out, tl)
		}
	}
	sortTimeLogs(out)
	return out, nil
}

func (m *Memory) UnclaimedTimeLogs(_ context.Context, workerID workforce.WorkerID, from, to time.Time) ([]workforce.TimeLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.TimeLog
	for _, tl := range m.timeLogs {
		if tl.WorkerID != workerID || tl.IsClaimed() {
			continue
		}
		if tl.StartTime.Before(from) || tl.StartTime.After(to) {
			continue
		}
		out = append(out, tl)
	}
	sortTimeLogs(out)
	return out, nil
}

func (m *Memory) ClaimTimeLogs(_ context.Context, ids []workforce.TimeLogID, payrollID workforce.PayrollID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		tl, ok := m.timeLogs[id]
		if !ok || tl.IsClaimed() {
			return workforce.ErrAlreadyClaimed
		}
	}
	for _, id := range ids {
		tl := m.timeLogs[id]
		pid := payrollID
		tl.PayrollID = &pid
		m.timeLogs[id] = tl
	}
	return nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (m *Memory) SavePayment(_ context.Context, p workforce.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments[p.ID] = p
	return nil
}

func (m *Memory) PaymentsByWorker(_ context.Context, workerID workforce.WorkerID) ([]workforce.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.Payment
	for _, p := range m.payments {
		if p.WorkerID == workerID {
			out = append(out, p)
		}
	}
	sortPayments(out)
	return out, nil
}

func (m *Memory) UnclaimedPayments(_ context.Context, workerID workforce.WorkerID, from, to time.Time) ([]workforce.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.Payment
	for _, p := range m.payments {
		if p.WorkerID != workerID || p.IsClaimed() {
			continue
		}
		if p.Date.Before(from) || p.Date.After(to) {
			continue
		}
		out = append(out, p)
	}
	sortPayments(out)
	return out, nil
}

func (m *Memory) ClaimPayments(_ context.Context, ids []workforce.PaymentID, payrollID workforce.PayrollID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		p, ok := m.payments[id]
		if !ok || p.IsClaimed() {
			return workforce.ErrAlreadyClaimed
		}
	}
	for _, id := range ids {
		p := m.payments[id]
		pid := payrollID
		p.PayrollID = &pid
		m.payments[id] = p
	}
	return nil
}

// =============================================================================
// PAYROLLS
// =============================================================================

func (m *Memory) SavePayroll(_ context.Context, p workforce.Payroll) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payrolls[p.ID] = p
	return nil
}

func (m *Memory) GetPayroll(_ context.Context, id workforce.PayrollID) (*workforce.Payroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.payrolls[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *Memory) PayrollsByWorker(_ context.Context, workerID workforce.WorkerID) ([]workforce.Payroll, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []workforce.Payroll
	for _, p := range m.payrolls {
		if p.WorkerID == workerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (m *Memory) MaxPayrollSeq(_ context.Context, year int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	max := 0
	for _, p := range m.payrolls {
		if p.Year == year && p.Seq > max {
			max = p.Seq
		}
	}
	return max, nil
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx serializes transactions and restores a pre-transaction snapshot
// when fn fails.
func (m *Memory) WithTx(_ context.Context, fn func(workforce.Store) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	snapshot := m.clone()
	if err := fn(m); err != nil {
		m.restore(snapshot)
		return err
	}
	return nil
}

type memorySnapshot struct {
	workers  []workforce.Worker
	missions map[workforce.MissionID]workforce.Mission
	timeLogs map[workforce.TimeLogID]workforce.TimeLog
	payments map[workforce.PaymentID]workforce.Payment
	payrolls map[workforce.PayrollID]workforce.Payroll
}

func (m *Memory) clone() memorySnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := memorySnapshot{
		workers:  make([]workforce.Worker, len(m.workers)),
		missions: make(map[workforce.MissionID]workforce.Mission, len(m.missions)),
		timeLogs: make(map[workforce.TimeLogID]workforce.TimeLog, len(m.timeLogs)),
		payments: make(map[workforce.PaymentID]workforce.Payment, len(m.payments)),
		payrolls: make(map[workforce.PayrollID]workforce.Payroll, len(m.payrolls)),
	}
	copy(snap.workers, m.workers)
	for k, v := range m.missions {
		snap.missions[k] = v
	}
	for k, v := range m.timeLogs {
		snap.timeLogs[k] = v
	}
	for k, v := range m.payments {
		snap.payments[k] = v
	}
	for k, v := range m.payrolls {
		snap.payrolls[k] = v
	}
	return snap
}

func (m *Memory) restore(snap memorySnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = snap.workers
	m.missions = snap.missions
	m.timeLogs = snap.timeLogs
	m.payments = snap.payments
	m.payrolls = snap.payrolls
}

// =============================================================================
// HELPERS
// =============================================================================

func statusIn(s workforce.MissionStatus, set []workforce.MissionStatus) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func sortTimeLogs(logs []workforce.TimeLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].StartTime.Before(logs[j].StartTime)
	})
}

func sortPayments(payments []workforce.Payment) {
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})
}
