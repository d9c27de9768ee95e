package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statistics holds sum rollups over the full, unfiltered ledger.
// All sums are zero over an empty ledger.
type Statistics struct {
	Total     decimal.Decimal
	ThisMonth decimal.Decimal
	Last7Days decimal.Decimal
	Today     decimal.Decimal
}

// ComputeStatistics aggregates amounts over every record, independent of
// any active filter selection.
func ComputeStatistics(records []ExpenseRecord, now time.Time) Statistics {
	s := Statistics{
		Total:     decimal.Zero,
		ThisMonth: decimal.Zero,
		Last7Days: decimal.Zero,
		Today:     decimal.Zero,
	}
	weekCutoff := now.Add(-7 * 24 * time.Hour)
	for _, r := range records {
		s.Total = s.Total.Add(r.Amount)
		if r.Date.SameMonth(now) {
			s.ThisMonth = s.ThisMonth.Add(r.Amount)
		}
		if !r.Date.Before(weekCutoff) {
			s.Last7Days = s.Last7Days.Add(r.Amount)
		}
		if r.Date.SameDay(now) {
			s.Today = s.Today.Add(r.Amount)
		}
	}
	return s
}
