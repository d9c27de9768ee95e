package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestComputeStatisticsEmpty(t *testing.T) {
	s := ComputeStatistics(nil, time.Now())
	for name, v := range map[string]decimal.Decimal{
		"total": s.Total, "thisMonth": s.ThisMonth, "last7Days": s.Last7Days, "today": s.Today,
	} {
		if !v.IsZero() {
			t.Fatalf("%s should be zero over an empty ledger, got %s", name, v)
		}
	}
}

func TestComputeStatisticsTotalEqualsSum(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	amounts := []string{"1.10", "2.25", "0.65", "100.00"}
	var records []ExpenseRecord
	want := decimal.Zero
	for _, a := range amounts {
		d := decimal.RequireFromString(a)
		want = want.Add(d)
		r, err := NewRecord("x", "Food", d, NewDate(2023, 1, 1), "")
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		records = append(records, r)
	}

	s := ComputeStatistics(records, now)
	if !s.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", s.Total, want)
	}
	// All records predate every window.
	if !s.ThisMonth.IsZero() || !s.Last7Days.IsZero() || !s.Today.IsZero() {
		t.Fatalf("window sums should be zero for old records: %+v", s)
	}
}

func TestComputeStatisticsWindows(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	mk := func(amount string, d Date) ExpenseRecord {
		r, err := NewRecord("x", "Food", decimal.RequireFromString(amount), d, "")
		if err != nil {
			t.Fatalf("record: %v", err)
		}
		return r
	}
	records := []ExpenseRecord{
		mk("10.00", NewDate(2024, 3, 15)), // today + week + month
		mk("5.00", NewDate(2024, 3, 12)),  // week + month
		mk("3.00", NewDate(2024, 3, 1)),   // month only
		mk("7.00", NewDate(2024, 1, 1)),   // total only
	}

	s := ComputeStatistics(records, now)
	check := func(name string, got decimal.Decimal, want string) {
		if FormatAmount(got) != want {
			t.Fatalf("%s = %s, want %s", name, FormatAmount(got), want)
		}
	}
	check("total", s.Total, "25.00")
	check("thisMonth", s.ThisMonth, "18.00")
	check("last7Days", s.Last7Days, "15.00")
	check("today", s.Today, "10.00")
}
