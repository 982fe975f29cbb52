/*
payroll.go - Payroll statement generation and claiming

PURPOSE:
  Rolls a worker's unclaimed time logs and payments within a period into one
  immutable payroll statement, tagging every counted row with the new
  statement's id so it can never be counted twice.

ATOMICITY:
  Selection, totals, numbering and claiming all run inside one store
  transaction. A concurrent generation for an overlapping period re-selects
  with payroll_id IS NULL inside its own transaction and therefore observes
  this one's claims; the claiming update is additionally guarded so a lost
  race surfaces as ErrAlreadyClaimed instead of a double-count.
*/
package workforce

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayrollAggregator generates payroll statements.
type PayrollAggregator struct {
	Store TxStore
}

// Generate creates a payroll for the worker over [periodStart, periodEnd].
// A period with no eligible rows still yields a statement with zero totals.
func (g *PayrollAggregator) Generate(ctx context.Context, workerID WorkerID, periodStart, periodEnd time.Time) (*Payroll, error) {
	if periodStart.IsZero() || periodEnd.IsZero() || periodEnd.Before(periodStart) {
		return nil, ErrInvalidPeriod
	}

	var payroll *Payroll
	err := g.Store.WithTx(ctx, func(s Store) error {
		logs, err := s.UnclaimedTimeLogs(ctx, workerID, periodStart, periodEnd)
		if err != nil {
			return err
		}
		payments, err := s.UnclaimedPayments(ctx, workerID, periodStart, periodEnd)
		if err != nil {
			return err
		}

		totalDue := decimal.Zero
		logIDs := make([]TimeLogID, 0, len(logs))
		for _, tl := range logs {
			totalDue = totalDue.Add(tl.Earnings)
			logIDs = append(logIDs, tl.ID)
		}

		totalPaid := decimal.Zero
		paymentIDs := make([]PaymentID, 0, len(payments))
		for _, p := range payments {
			totalPaid = totalPaid.Add(p.Amount)
			paymentIDs = append(paymentIDs, p.ID)
		}

		year := periodEnd.Year()
		maxSeq, err := s.MaxPayrollSeq(ctx, year)
		if err != nil {
			return err
		}
		seq := maxSeq + 1

		p := Payroll{
			ID:          PayrollID(uuid.NewString()),
			WorkerID:    workerID,
			Number:      fmt.Sprintf("PR-%d-%03d", year, seq),
			Year:        year,
			Seq:         seq,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			TotalDue:    totalDue,
			TotalPaid:   totalPaid,
			Balance:     totalDue.Sub(totalPaid),
			Status:      PayrollGenerated,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.SavePayroll(ctx, p); err != nil {
			return err
		}

		if err := s.ClaimTimeLogs(ctx, logIDs, p.ID); err != nil {
			return err
		}
		if err := s.ClaimPayments(ctx, paymentIDs, p.ID); err != nil {
			return err
		}

		for i := range logs {
			id := p.ID
			logs[i].PayrollID = &id
		}
		for i := range payments {
			id := p.ID
			payments[i].PayrollID = &id
		}
		p.TimeLogs = logs
		p.Payments = payments

		payroll = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payroll, nil
}
