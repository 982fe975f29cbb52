/*
earnings.go - Earnings computation from pay-rate policies

PURPOSE:
  Computes a time log's earnings from the worker's configured pay rate and
  the logged duration. All amounts are rounded to 2 decimal places.

POLICIES:
  per_hour:    rate x (minutes / 60)
  per_day:     full daily rate at or above 4 hours; below that, pro-rated as
               a fraction of an 8-hour day (rate x hours / 8). The jump at
               the 4-hour boundary is the half-day-minimum business rule,
               not a bug.
  per_mission: flat rate regardless of duration

  A missing or unknown pay-rate type yields zero earnings with the
  NoRateConfigured flag set, so callers can tell "legitimately free" apart
  from "misconfigured". The engine logs a warning but never fails the
  punch-out over it.
*/
package workforce

import "github.com/shopspring/decimal"

var (
	sixty        = decimal.NewFromInt(60)
	eight        = decimal.NewFromInt(8)
	halfDayHours = decimal.NewFromInt(4)
)

// Earnings is the tagged result of a pay computation.
type Earnings struct {
	Amount           decimal.Decimal
	NoRateConfigured bool
}

// ComputeEarnings applies the pay-rate policy to a worked duration.
func ComputeEarnings(rate PayRate, durationMinutes int) Earnings {
	hours := decimal.NewFromInt(int64(durationMinutes)).Div(sixty)

	switch rate.Type {
	case PayPerHour:
		return Earnings{Amount: rate.Amount.Mul(hours).Round(2)}
	case PayPerDay:
		if hours.GreaterThanOrEqual(halfDayHours) {
			return Earnings{Amount: rate.Amount.Round(2)}
		}
		return Earnings{Amount: rate.Amount.Mul(hours).Div(eight).Round(2)}
	case PayPerMission:
		return Earnings{Amount: rate.Amount.Round(2)}
	default:
		return Earnings{Amount: decimal.Zero, NoRateConfigured: true}
	}
}
