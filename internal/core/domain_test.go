package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 15)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2024-01-15"` {
		t.Fatalf("unexpected encoding %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestNewRecord(t *testing.T) {
	amount := decimal.RequireFromString("12.50")
	r, err := NewRecord("Coffee", "Food", amount, NewDate(2024, 1, 15), "")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if r.ID == "" {
		t.Fatalf("expected generated id")
	}
	if r.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}

	// IDs must be unique and creation-ordered.
	r2, err := NewRecord("Tea", "Food", amount, NewDate(2024, 1, 15), "")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if r.ID == r2.ID {
		t.Fatalf("expected unique ids")
	}
	if r2.ID < r.ID {
		t.Fatalf("expected creation-ordered ids, got %s before %s", r2.ID, r.ID)
	}
}

func TestRecordValidate(t *testing.T) {
	one := decimal.NewFromInt(1)
	good := ExpenseRecord{
		Name:     "ok",
		Amount:   one,
		Category: "Food",
		Date:     NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount is allowed; negative is not.
	zero := good
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}

	bads := []ExpenseRecord{
		{Name: "a", Amount: one, Category: "c"},                                             // zero date
		{Name: "", Amount: one, Category: "c", Date: NewDate(2025, 1, 1)},                   // empty name
		{Name: "a", Amount: decimal.NewFromInt(-1), Category: "c", Date: NewDate(2025, 1, 1)}, // negative amount
		{Name: "a", Amount: one, Category: "", Date: NewDate(2025, 1, 1)},                   // empty category
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
