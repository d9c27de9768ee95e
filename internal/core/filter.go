package core

import (
	"sort"
	"time"
)

// Period is a time-window criterion applied to records.
type Period string

const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodLast7Days Period = "last7days"
	PeriodThisMonth Period = "thisMonth"
)

// ParsePeriod maps a user-supplied period value to a Period.
// Unknown or empty values fall back to PeriodAll.
func ParsePeriod(s string) Period {
	switch s {
	case "today":
		return PeriodToday
	case "week", "last7days":
		return PeriodLast7Days
	case "month", "thisMonth":
		return PeriodThisMonth
	default:
		return PeriodAll
	}
}

// Filter selects a subset of ledger records. A zero Filter matches everything.
type Filter struct {
	Category string // exact match; empty means no category filter
	Period   Period // empty is treated as PeriodAll
}

// Apply returns the records matching the filter, sorted by date descending.
// The sort is stable: records sharing a date keep their insertion order.
// The input slice is never mutated; the result is a fresh slice and may be
// empty, which is a valid outcome rather than an error.
func (f Filter) Apply(records []ExpenseRecord, now time.Time) []ExpenseRecord {
	out := make([]ExpenseRecord, 0, len(records))
	for _, r := range records {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if !inPeriod(r.Date, f.Period, now) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// inPeriod applies the period predicate. The week window is an exact 168
// hour rolling window with an inclusive lower bound, not calendar days.
func inPeriod(d Date, p Period, now time.Time) bool {
	switch p {
	case PeriodToday:
		return d.SameDay(now)
	case PeriodLast7Days:
		cutoff := now.Add(-7 * 24 * time.Hour)
		return !d.Before(cutoff)
	case PeriodThisMonth:
		return d.SameMonth(now)
	default:
		return true
	}
}
