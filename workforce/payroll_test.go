package workforce_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldops/workforce-engine/workforce"
	"github.com/fieldops/workforce-engine/workforce/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func march(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func seedClosedLog(t *testing.T, s workforce.Store, id string, workerID string, day int, earnings float64) {
	t.Helper()
	start := march(day).Add(9 * time.Hour)
	end := start.Add(2 * time.Hour)
	err := s.SaveTimeLog(context.Background(), workforce.TimeLog{
		ID:              workforce.TimeLogID(id),
		MissionID:       workforce.MissionID("m-" + id),
		WorkerID:        workforce.WorkerID(workerID),
		StartTime:       start,
		EndTime:         &end,
		DurationMinutes: 120,
		Earnings:        decimal.NewFromFloat(earnings),
	})
	require.NoError(t, err)
}

func seedPayment(t *testing.T, s workforce.Store, id string, workerID string, day int, amount float64) {
	t.Helper()
	err := s.SavePayment(context.Background(), workforce.Payment{
		ID:       workforce.PaymentID(id),
		WorkerID: workforce.WorkerID(workerID),
		Amount:   decimal.NewFromFloat(amount),
		Date:     march(day),
		Type:     workforce.PaymentAdvance,
	})
	require.NoError(t, err)
}

// =============================================================================
// GENERATION
// =============================================================================

func TestGeneratePayroll_TotalsAndBalance(t *testing.T) {
	// GIVEN: Two closed time logs (150 + 240 due) and one advance (100 paid)
	// WHEN: Generating a payroll over March
	// THEN: totalDue=390, totalPaid=100, balance=290, and every counted row
	//       carries the new statement's id

	ctx := context.Background()
	mem := store.NewMemory()
	seedClosedLog(t, mem, "tl-1", "w-1", 2, 150)
	seedClosedLog(t, mem, "tl-2", "w-1", 3, 240)
	seedPayment(t, mem, "p-1", "w-1", 5, 100)

	agg := &workforce.PayrollAggregator{Store: mem}
	payroll, err := agg.Generate(ctx, "w-1", march(1), march(31))
	require.NoError(t, err)

	assert.True(t, payroll.TotalDue.Equal(decimal.NewFromInt(390)), "totalDue: %v", payroll.TotalDue)
	assert.True(t, payroll.TotalPaid.Equal(decimal.NewFromInt(100)), "totalPaid: %v", payroll.TotalPaid)
	assert.True(t, payroll.Balance.Equal(decimal.NewFromInt(290)), "balance: %v", payroll.Balance)
	assert.Equal(t, workforce.PayrollGenerated, payroll.Status)
	assert.Len(t, payroll.TimeLogs, 2)
	assert.Len(t, payroll.Payments, 1)

	for _, tl := range payroll.TimeLogs {
		require.NotNil(t, tl.PayrollID)
		assert.Equal(t, payroll.ID, *tl.PayrollID)
	}
	for _, p := range payroll.Payments {
		require.NotNil(t, p.PayrollID)
		assert.Equal(t, payroll.ID, *p.PayrollID)
	}

	// The claims are persisted, not just decorated on the response.
	tl, err := mem.GetTimeLog(ctx, "tl-1")
	require.NoError(t, err)
	require.NotNil(t, tl.PayrollID)
	assert.Equal(t, payroll.ID, *tl.PayrollID)
}

func TestGeneratePayroll_ClaimedRowsNeverRecounted(t *testing.T) {
	// GIVEN: A payroll already claimed the period's rows
	// WHEN: Generating again over the exact same period
	// THEN: The second statement is empty, so no row is ever counted twice

	ctx := context.Background()
	mem := store.NewMemory()
	seedClosedLog(t, mem, "tl-1", "w-1", 2, 150)
	seedPayment(t, mem, "p-1", "w-1", 5, 100)

	agg := &workforce.PayrollAggregator{Store: mem}
	first, err := agg.Generate(ctx, "w-1", march(1), march(31))
	require.NoError(t, err)
	require.True(t, first.TotalDue.Equal(decimal.NewFromInt(150)))

	second, err := agg.Generate(ctx, "w-1", march(1), march(31))
	require.NoError(t, err)
	assert.True(t, second.TotalDue.IsZero(), "second totalDue: %v", second.TotalDue)
	assert.True(t, second.TotalPaid.IsZero(), "second totalPaid: %v", second.TotalPaid)
	assert.Empty(t, second.TimeLogs)
	assert.Empty(t, second.Payments)
}

func TestGeneratePayroll_DisjointPeriods_ConserveTotals(t *testing.T) {
	// Rows split across two disjoint periods land on exactly one statement
	// each, and the statements' totals sum to the grand total.

	ctx := context.Background()
	mem := store.NewMemory()
	seedClosedLog(t, mem, "tl-1", "w-1", 2, 100)
	seedClosedLog(t, mem, "tl-2", "w-1", 20, 250)

	agg := &workforce.PayrollAggregator{Store: mem}
	early, err := agg.Generate(ctx, "w-1", march(1), march(15))
	require.NoError(t, err)
	late, err := agg.Generate(ctx, "w-1", march(16), march(31))
	require.NoError(t, err)

	assert.True(t, early.TotalDue.Equal(decimal.NewFromInt(100)))
	assert.True(t, late.TotalDue.Equal(decimal.NewFromInt(250)))
	assert.True(t, early.TotalDue.Add(late.TotalDue).Equal(decimal.NewFromInt(350)))
}

func TestGeneratePayroll_EmptyPeriod_ZeroStatement(t *testing.T) {
	// A period with nothing to claim still yields a statement: zero totals
	// are a valid outcome, not an error.

	ctx := context.Background()
	mem := store.NewMemory()

	agg := &workforce.PayrollAggregator{Store: mem}
	payroll, err := agg.Generate(ctx, "w-1", march(1), march(31))
	require.NoError(t, err)

	assert.True(t, payroll.TotalDue.IsZero())
	assert.True(t, payroll.TotalPaid.IsZero())
	assert.True(t, payroll.Balance.IsZero())
}

func TestGeneratePayroll_NegativeBalance(t *testing.T) {
	// Advances exceeding earnings produce a negative balance: the worker
	// owes the difference. The statement records it as-is.

	ctx := context.Background()
	mem := store.NewMemory()
	seedClosedLog(t, mem, "tl-1", "w-1", 2, 100)
	seedPayment(t, mem, "p-1", "w-1", 3, 300)

	agg := &workforce.PayrollAggregator{Store: mem}
	payroll, err := agg.Generate(ctx, "w-1", march(1), march(31))
	require.NoError(t, err)

	assert.True(t, payroll.Balance.Equal(decimal.NewFromInt(-200)), "balance: %v", payroll.Balance)
}

func TestGeneratePayroll_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	agg := &workforce.PayrollAggregator{Store: store.NewMemory()}

	_, err := agg.Generate(ctx, "w-1", march(31), march(1))
	assert.ErrorIs(t, err, workforce.ErrInvalidPeriod)

	_, err = agg.Generate(ctx, "w-1", time.Time{}, march(31))
	assert.ErrorIs(t, err, workforce.ErrInvalidPeriod)

	_, err = agg.Generate(ctx, "w-1", march(1), time.Time{})
	assert.ErrorIs(t, err, workforce.ErrInvalidPeriod)
}

// =============================================================================
// NUMBERING
// =============================================================================

func TestGeneratePayroll_SequentialNumbersPerYear(t *testing.T) {
	// Statement numbers increment per calendar year of the period end,
	// regardless of which worker they belong to.

	ctx := context.Background()
	mem := store.NewMemory()
	agg := &workforce.PayrollAggregator{Store: mem}

	for i, workerID := range []workforce.WorkerID{"w-1", "w-2", "w-1"} {
		payroll, err := agg.Generate(ctx, workerID, march(1), march(31))
		require.NoError(t, err)
		want := fmt.Sprintf("PR-2026-%03d", i+1)
		assert.Equal(t, want, payroll.Number)
		assert.Equal(t, 2026, payroll.Year)
		assert.Equal(t, i+1, payroll.Seq)
	}

	// A different year restarts the sequence.
	next, err := agg.Generate(ctx, "w-1",
		time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, time.January, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "PR-2027-001", next.Number)
}

// =============================================================================
// CLAIM GUARD
// =============================================================================

func TestClaim_AlreadyClaimed_Conflict(t *testing.T) {
	// Claiming a row twice surfaces as a conflict rather than silently
	// re-tagging it.

	ctx := context.Background()
	mem := store.NewMemory()
	seedClosedLog(t, mem, "tl-1", "w-1", 2, 150)

	require.NoError(t, mem.ClaimTimeLogs(ctx, []workforce.TimeLogID{"tl-1"}, "pr-a"))

	err := mem.ClaimTimeLogs(ctx, []workforce.TimeLogID{"tl-1"}, "pr-b")
	assert.ErrorIs(t, err, workforce.ErrAlreadyClaimed)
	assert.True(t, workforce.IsConflict(err))

	// The original claim is untouched.
	tl, err := mem.GetTimeLog(ctx, "tl-1")
	require.NoError(t, err)
	require.NotNil(t, tl.PayrollID)
	assert.Equal(t, workforce.PayrollID("pr-a"), *tl.PayrollID)
}
