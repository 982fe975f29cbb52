/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements workforce.TxStore using SQLite. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  workers:    worker identity and pay-rate configuration
  missions:   assignments with scheduled/actual windows and status
  time_logs:  observed work intervals, claimed by payrolls
  payments:   disbursements, claimed by payrolls
  payrolls:   immutable statements with per-year sequential numbers

INVARIANT ENFORCEMENT:
  idx_open_timelog is a partial unique index on time_logs(mission_id) WHERE
  end_time IS NULL: the database rejects a second open time log for the same
  mission even if two punch-ins race past the application-level check.

  Claiming updates are guarded with payroll_id IS NULL, so a row can never
  be tagged by two statements; a short update count surfaces as
  workforce.ErrAlreadyClaimed.

CONCURRENCY:
  Opened in WAL mode. WithTx serializes writers with a mutex on top of
  SQLite's single-writer model; reads inside the transaction go through the
  same *sql.Tx and therefore observe its own writes.

MIGRATION:
  Schema is auto-migrated on New(). For production use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - workforce/store.go:        interface definitions
  - workforce/store/memory.go: in-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fieldops/workforce-engine/workforce"
)

// Store implements workforce.TxStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex // serializes WithTx writers
	session
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// An in-memory database exists per connection; cap the pool so every
	// query sees the same one.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, session: session{db: db}}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		pay_rate_type TEXT,
		pay_rate_amount TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS missions (
		id TEXT PRIMARY KEY,
		worker_id TEXT,
		order_ref TEXT,
		scheduled_start TEXT NOT NULL,
		scheduled_end TEXT NOT NULL,
		actual_start TEXT,
		actual_end TEXT,
		status TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_missions_worker_status
		ON missions(worker_id, status);
	CREATE INDEX IF NOT EXISTS idx_missions_worker_sched
		ON missions(worker_id, scheduled_start);

	CREATE TABLE IF NOT EXISTS time_logs (
		id TEXT PRIMARY KEY,
		mission_id TEXT NOT NULL,
		worker_id TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		earnings TEXT NOT NULL DEFAULT '0',
		no_rate INTEGER NOT NULL DEFAULT 0,
		payroll_id TEXT
	);

	-- CRITICAL: at most one open time log per mission, even under
	-- racing punch-in requests.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_open_timelog
		ON time_logs(mission_id) WHERE end_time IS NULL;

	CREATE INDEX IF NOT EXISTS idx_timelogs_worker_unclaimed
		ON time_logs(worker_id, start_time) WHERE payroll_id IS NULL;
	CREATE INDEX IF NOT EXISTS idx_timelogs_payroll
		ON time_logs(payroll_id) WHERE payroll_id IS NOT NULL;

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		paid_at TEXT NOT NULL,
		type TEXT NOT NULL,
		notes TEXT,
		payroll_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_payments_worker_unclaimed
		ON payments(worker_id, paid_at) WHERE payroll_id IS NULL;

	CREATE TABLE IF NOT EXISTS payrolls (
		id TEXT PRIMARY KEY,
		worker_id TEXT NOT NULL,
		number TEXT NOT NULL UNIQUE,
		year INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		total_due TEXT NOT NULL,
		total_paid TEXT NOT NULL,
		balance TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(year, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_payrolls_worker
		ON payrolls(worker_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// WithTx executes fn within a database transaction.
func (s *Store) WithTx(ctx context.Context, fn func(workforce.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&session{db: sqlTx}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// =============================================================================
// SESSION - Store methods over either *sql.DB or *sql.Tx
// =============================================================================

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type session struct {
	db dbtx
}

type rowScanner interface {
	Scan(dest ...any) error
}

// =============================================================================
// WORKERS
// =============================================================================

func (s *session) SaveWorker(ctx context.Context, w workforce.Worker) error {
	createdAt := w.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO workers (id, name, email, pay_rate_type, pay_rate_amount, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			pay_rate_type = excluded.pay_rate_type,
			pay_rate_amount = excluded.pay_rate_amount
	`
	_, err := s.db.ExecContext(ctx, query,
		w.ID, w.Name, w.Email,
		string(w.PayRate.Type), w.PayRate.Amount.String(),
		formatTime(createdAt),
	)
	return err
}

func (s *session) GetWorker(ctx context.Context, id workforce.WorkerID) (*workforce.Worker, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, pay_rate_type, pay_rate_amount, created_at
		 FROM workers WHERE id = ?`, id)

	w, err := scanWorker(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *session) ListWorkers(ctx context.Context) ([]workforce.Worker, error) {
	// rowid preserves insertion order; assignment tie-breaks depend on it.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, pay_rate_type, pay_rate_amount, created_at
		 FROM workers ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []workforce.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, *w)
	}
	return workers, rows.Err()
}

func scanWorker(row rowScanner) (*workforce.Worker, error) {
	var (
		w          workforce.Worker
		email      sql.NullString
		rateType   sql.NullString
		rateAmount sql.NullString
		createdAt  string
	)
	if err := row.Scan(&w.ID, &w.Name, &email, &rateType, &rateAmount, &createdAt); err != nil {
		return nil, err
	}
	w.Email = email.String
	w.PayRate = workforce.PayRate{
		Type:   workforce.PayRateType(rateType.String),
		Amount: parseDecimal(rateAmount.String),
	}
	w.CreatedAt = parseTime(createdAt)
	return &w, nil
}

// =============================================================================
// MISSIONS
// =============================================================================

func (s *session) SaveMission(ctx context.Context, m workforce.Mission) error {
	query := `
		INSERT INTO missions
		(id, worker_id, order_ref, scheduled_start, scheduled_end, actual_start, actual_end, status, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			worker_id = excluded.worker_id,
			scheduled_start = excluded.scheduled_start,
			scheduled_end = excluded.scheduled_end,
			actual_start = excluded.actual_start,
			actual_end = excluded.actual_end,
			status = excluded.status,
			notes = excluded.notes
	`
	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.WorkerID, m.OrderRef,
		formatTime(m.ScheduledStart), formatTime(m.ScheduledEnd),
		nullTime(m.ActualStart), nullTime(m.ActualEnd),
		m.Status, m.Notes, formatTime(m.CreatedAt),
	)
	return err
}

func (s *session) GetMission(ctx context.Context, id workforce.MissionID) (*workforce.Mission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, worker_id, order_ref, scheduled_start, scheduled_end,
		        actual_start, actual_end, status, notes, created_at
		 FROM missions WHERE id = ?`, id)

	m, err := scanMission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *session) MissionsByWorker(ctx context.Context, workerID workforce.WorkerID, statuses []workforce.MissionStatus) ([]workforce.Mission, error) {
	query := `
		SELECT id, worker_id, order_ref, scheduled_start, scheduled_end,
		       actual_start, actual_end, status, notes, created_at
		FROM missions
		WHERE worker_id = ?`
	args := []any{workerID}

	if len(statuses) > 0 {
		query += " AND status IN (" + placeholders(len(statuses)) + ")"
		for _, st := range statuses {
			args = append(args, st)
		}
	}
	query += " ORDER BY scheduled_start ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var missions []workforce.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, rows.Err()
}

func (s *session) CountMissions(ctx context.Context, workerID workforce.WorkerID, statuses []workforce.MissionStatus) (int, error) {
	query := `SELECT COUNT(*) FROM missions WHERE worker_id = ?`
	args := []any{workerID}

	if len(statuses) > 0 {
		query += " AND status IN (" + placeholders(len(statuses)) + ")"
		for _, st := range statuses {
			args = append(args, st)
		}
	}

	var count int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

func scanMission(row rowScanner) (*workforce.Mission, error) {
	var (
		m           workforce.Mission
		workerID    sql.NullString
		orderRef    sql.NullString
		schedStart  string
		schedEnd    string
		actualStart sql.NullString
		actualEnd   sql.NullString
		notes       sql.NullString
		createdAt   string
	)
	if err := row.Scan(&m.ID, &workerID, &orderRef, &schedStart, &schedEnd,
		&actualStart, &actualEnd, &m.Status, &notes, &createdAt); err != nil {
		return nil, err
	}
	m.WorkerID = workforce.WorkerID(workerID.String)
	m.OrderRef = orderRef.String
	m.ScheduledStart = parseTime(schedStart)
	m.ScheduledEnd = parseTime(schedEnd)
	m.ActualStart = parseNullTime(actualStart)
	m.ActualEnd = parseNullTime(actualEnd)
	m.Notes = notes.String
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

// =============================================================================
// TIME LOGS
// =============================================================================

func (s *session) SaveTimeLog(ctx context.Context, tl workforce.TimeLog) error {
	query := `
		INSERT INTO time_logs
		(id, mission_id, worker_id, start_time, end_time, duration_minutes, earnings, no_rate, payroll_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			end_time = excluded.end_time,
			duration_minutes = excluded.duration_minutes,
			earnings = excluded.earnings,
			no_rate = excluded.no_rate,
			payroll_id = excluded.payroll_id
	`
	_, err := s.db.ExecContext(ctx, query,
		tl.ID, tl.MissionID, tl.WorkerID,
		formatTime(tl.StartTime), nullTime(tl.EndTime),
		tl.DurationMinutes, tl.Earnings.String(), tl.NoRateConfigured,
		nullPayrollID(tl.PayrollID),
	)
	if err != nil && strings.Contains(err.Error(), "idx_open_timelog") {
		return workforce.ErrDuplicateOpenTimeLog
	}
	return err
}

func (s *session) GetTimeLog(ctx context.Context, id workforce.TimeLogID) (*workforce.TimeLog, error) {
	row := s.db.QueryRowContext(ctx, selectTimeLog+` WHERE id = ?`, id)

	tl, err := scanTimeLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tl, nil
}

func (s *session) OpenTimeLog(ctx context.Context, missionID workforce.MissionID) (*workforce.TimeLog, error) {
	row := s.db.QueryRowContext(ctx,
		selectTimeLog+` WHERE mission_id = ? AND end_time IS NULL
		 ORDER BY start_time DESC LIMIT 1`, missionID)

	tl, err := scanTimeLog(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tl, nil
}

func (s *session) TimeLogsByWorker(ctx context.Context, workerID workforce.WorkerID) ([]workforce.TimeLog, error) {
	return s.queryTimeLogs(ctx,
		selectTimeLog+` WHERE worker_id = ? ORDER BY start_time ASC`, workerID)
}

func (s *session) UnclaimedTimeLogs(ctx context.Context, workerID workforce.WorkerID, from, to time.Time) ([]workforce.TimeLog, error) {
	return s.queryTimeLogs(ctx,
		selectTimeLog+` WHERE worker_id = ? AND payroll_id IS NULL
		 AND start_time >= ? AND start_time <= ?
		 ORDER BY start_time ASC`,
		workerID, formatTime(from), formatTime(to))
}

func (s *session) ClaimTimeLogs(ctx context.Context, ids []workforce.TimeLogID, payrollID workforce.PayrollID) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{payrollID}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE time_logs SET payroll_id = ?
		 WHERE id IN (`+placeholders(len(ids))+`) AND payroll_id IS NULL`,
		args...)
	if err != nil {
		return err
	}
	return checkClaimCount(res, len(ids))
}

const selectTimeLog = `
	SELECT id, mission_id, worker_id, start_time, end_time,
	       duration_minutes, earnings, no_rate, payroll_id
	FROM time_logs`

func (s *session) queryTimeLogs(ctx context.Context, query string, args ...any) ([]workforce.TimeLog, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []workforce.TimeLog
	for rows.Next() {
		tl, err := scanTimeLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *tl)
	}
	return logs, rows.Err()
}

func scanTimeLog(row rowScanner) (*workforce.TimeLog, error) {
	var (
		tl        workforce.TimeLog
		startTime string
		endTime   sql.NullString
		earnings  string
		payrollID sql.NullString
	)
	if err := row.Scan(&tl.ID, &tl.MissionID, &tl.WorkerID, &startTime, &endTime,
		&tl.DurationMinutes, &earnings, &tl.NoRateConfigured, &payrollID); err != nil {
		return nil, err
	}
	tl.StartTime = parseTime(startTime)
	tl.EndTime = parseNullTime(endTime)
	tl.Earnings = parseDecimal(earnings)
	if payrollID.Valid {
		id := workforce.PayrollID(payrollID.String)
		tl.PayrollID = &id
	}
	return &tl, nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *session) SavePayment(ctx context.Context, p workforce.Payment) error {
	query := `
		INSERT INTO payments (id, worker_id, amount, paid_at, type, notes, payroll_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			amount = excluded.amount,
			paid_at = excluded.paid_at,
			type = excluded.type,
			notes = excluded.notes,
			payroll_id = excluded.payroll_id
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.WorkerID, p.Amount.String(), formatTime(p.Date),
		p.Type, p.Notes, nullPayrollID(p.PayrollID),
	)
	return err
}

func (s *session) PaymentsByWorker(ctx context.Context, workerID workforce.WorkerID) ([]workforce.Payment, error) {
	return s.queryPayments(ctx,
		selectPayment+` WHERE worker_id = ? ORDER BY paid_at ASC`, workerID)
}

func (s *session) UnclaimedPayments(ctx context.Context, workerID workforce.WorkerID, from, to time.Time) ([]workforce.Payment, error) {
	return s.queryPayments(ctx,
		selectPayment+` WHERE worker_id = ? AND payroll_id IS NULL
		 AND paid_at >= ? AND paid_at <= ?
		 ORDER BY paid_at ASC`,
		workerID, formatTime(from), formatTime(to))
}

func (s *session) ClaimPayments(ctx context.Context, ids []workforce.PaymentID, payrollID workforce.PayrollID) error {
	if len(ids) == 0 {
		return nil
	}

	args := []any{payrollID}
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE payments SET payroll_id = ?
		 WHERE id IN (`+placeholders(len(ids))+`) AND payroll_id IS NULL`,
		args...)
	if err != nil {
		return err
	}
	return checkClaimCount(res, len(ids))
}

const selectPayment = `
	SELECT id, worker_id, amount, paid_at, type, notes, payroll_id
	FROM payments`

func (s *session) queryPayments(ctx context.Context, query string, args ...any) ([]workforce.Payment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []workforce.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*workforce.Payment, error) {
	var (
		p         workforce.Payment
		amount    string
		paidAt    string
		notes     sql.NullString
		payrollID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.WorkerID, &amount, &paidAt, &p.Type, &notes, &payrollID); err != nil {
		return nil, err
	}
	p.Amount = parseDecimal(amount)
	p.Date = parseTime(paidAt)
	p.Notes = notes.String
	if payrollID.Valid {
		id := workforce.PayrollID(payrollID.String)
		p.PayrollID = &id
	}
	return &p, nil
}

// =============================================================================
// PAYROLLS
// =============================================================================

func (s *session) SavePayroll(ctx context.Context, p workforce.Payroll) error {
	query := `
		INSERT INTO payrolls
		(id, worker_id, number, year, seq, period_start, period_end,
		 total_due, total_paid, balance, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.WorkerID, p.Number, p.Year, p.Seq,
		formatTime(p.PeriodStart), formatTime(p.PeriodEnd),
		p.TotalDue.String(), p.TotalPaid.String(), p.Balance.String(),
		p.Status, formatTime(p.CreatedAt),
	)
	return err
}

func (s *session) GetPayroll(ctx context.Context, id workforce.PayrollID) (*workforce.Payroll, error) {
	row := s.db.QueryRowContext(ctx, selectPayroll+` WHERE id = ?`, id)

	p, err := scanPayroll(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Attach the claimed rows for statement rendering.
	p.TimeLogs, err = s.queryTimeLogs(ctx,
		selectTimeLog+` WHERE payroll_id = ? ORDER BY start_time ASC`, id)
	if err != nil {
		return nil, err
	}
	p.Payments, err = s.queryPayments(ctx,
		selectPayment+` WHERE payroll_id = ? ORDER BY paid_at ASC`, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *session) PayrollsByWorker(ctx context.Context, workerID workforce.WorkerID) ([]workforce.Payroll, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPayroll+` WHERE worker_id = ? ORDER BY year ASC, seq ASC`, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payrolls []workforce.Payroll
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		payrolls = append(payrolls, *p)
	}
	return payrolls, rows.Err()
}

func (s *session) MaxPayrollSeq(ctx context.Context, year int) (int, error) {
	var max int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM payrolls WHERE year = ?`, year).Scan(&max)
	return max, err
}

const selectPayroll = `
	SELECT id, worker_id, number, year, seq, period_start, period_end,
	       total_due, total_paid, balance, status, created_at
	FROM payrolls`

func scanPayroll(row rowScanner) (*workforce.Payroll, error) {
	var (
		p           workforce.Payroll
		periodStart string
		periodEnd   string
		totalDue    string
		totalPaid   string
		balance     string
		createdAt   string
	)
	if err := row.Scan(&p.ID, &p.WorkerID, &p.Number, &p.Year, &p.Seq,
		&periodStart, &periodEnd, &totalDue, &totalPaid, &balance,
		&p.Status, &createdAt); err != nil {
		return nil, err
	}
	p.PeriodStart = parseTime(periodStart)
	p.PeriodEnd = parseTime(periodEnd)
	p.TotalDue = parseDecimal(totalDue)
	p.TotalPaid = parseDecimal(totalPaid)
	p.Balance = parseDecimal(balance)
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func checkClaimCount(res sql.Result, want int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if int(affected) != want {
		return workforce.ErrAlreadyClaimed
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func nullPayrollID(id *workforce.PayrollID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*id), Valid: true}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
