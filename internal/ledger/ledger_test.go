package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"noura/internal/core"
	"noura/internal/storage"
)

func newTestLedger(t *testing.T) (*Ledger, storage.KV) {
	t.Helper()
	kv := storage.NewMemoryStore()
	return New(NewRepository(kv), "amara"), kv
}

func record(t *testing.T, name, amount string, d core.Date) core.ExpenseRecord {
	t.Helper()
	r, err := core.NewRecord(name, "Food", decimal.RequireFromString(amount), d, "")
	if err != nil {
		t.Fatalf("record %s: %v", name, err)
	}
	return r
}

func TestAddPersistsSynchronously(t *testing.T) {
	ctx := context.Background()
	l, kv := newTestLedger(t)

	r := record(t, "Coffee", "12.50", core.NewDate(2024, 1, 15))
	if err := l.Add(ctx, r); err != nil {
		t.Fatalf("add: %v", err)
	}

	// Persisted copy must already match when Add returns.
	raw, err := kv.Get(ctx, storage.ExpensesKey("amara"))
	if err != nil {
		t.Fatalf("expenses key not written: %v", err)
	}
	reloaded := Load(ctx, NewRepository(kv), "amara")
	if reloaded.Size() != 1 || reloaded.Records()[0].ID != r.ID {
		t.Fatalf("persisted state mismatch, raw=%s", raw)
	}
}

func TestAddDuplicateID(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	r := record(t, "Coffee", "12.50", core.NewDate(2024, 1, 15))
	if err := l.Add(ctx, r); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.Add(ctx, r); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if l.Size() != 1 {
		t.Fatalf("duplicate add must not grow the ledger, size=%d", l.Size())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	r1 := record(t, "Coffee", "12.50", core.NewDate(2024, 1, 15))
	r2 := record(t, "Lunch", "30.00", core.NewDate(2024, 1, 16))
	for _, r := range []core.ExpenseRecord{r1, r2} {
		if err := l.Add(ctx, r); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	if err := l.Remove(ctx, r1.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if l.Size() != 1 {
		t.Fatalf("expected size 1, got %d", l.Size())
	}
	// Removing again is a no-op, not an error.
	if err := l.Remove(ctx, r1.ID); err != nil {
		t.Fatalf("repeat remove: %v", err)
	}
	if l.Size() != 1 {
		t.Fatalf("repeat remove changed size to %d", l.Size())
	}
	if err := l.Remove(ctx, "never-existed"); err != nil {
		t.Fatalf("absent remove: %v", err)
	}
}

// failingKV wraps a memory store and fails every write.
type failingKV struct {
	*storage.MemoryStore
}

var errDiskFull = errors.New("capacity exceeded")

func (f failingKV) Set(ctx context.Context, key, value string) error {
	return errDiskFull
}

func TestSaveFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	l := New(NewRepository(failingKV{storage.NewMemoryStore()}), "amara")

	r := record(t, "Coffee", "12.50", core.NewDate(2024, 1, 15))
	err := l.Add(ctx, r)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	// The mutation already applied in memory stands.
	if l.Size() != 1 {
		t.Fatalf("in-memory state was rolled back, size=%d", l.Size())
	}

	if err := l.SetBudget(ctx, decimal.NewFromInt(100)); !errors.Is(err, errDiskFull) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if !l.Budget().Equal(decimal.NewFromInt(100)) {
		t.Fatalf("budget was rolled back: %s", l.Budget())
	}
}

func TestLoadFailureFallsBackToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	// Corrupt payload forces a decode failure on load.
	if err := kv.Set(ctx, storage.ExpensesKey("amara"), "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	l := Load(ctx, NewRepository(kv), "amara")
	if l.Size() != 0 {
		t.Fatalf("expected empty fallback ledger, size=%d", l.Size())
	}
	if !l.Budget().IsZero() {
		t.Fatalf("expected unset budget, got %s", l.Budget())
	}
}

func TestSetBudgetRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	repo := NewRepository(kv)
	l := New(repo, "amara")

	if err := l.SetBudget(ctx, decimal.RequireFromString("1500.50")); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if err := l.SetBudget(ctx, decimal.NewFromInt(-1)); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative budget must be rejected, got %v", err)
	}

	reloaded := Load(ctx, repo, "amara")
	if !reloaded.Budget().Equal(decimal.RequireFromString("1500.50")) {
		t.Fatalf("budget round trip failed: %s", reloaded.Budget())
	}
}

func TestReplaceAllCopiesInput(t *testing.T) {
	l, _ := newTestLedger(t)
	in := []core.ExpenseRecord{
		record(t, "Coffee", "1.00", core.NewDate(2024, 1, 1)),
		record(t, "Lunch", "2.00", core.NewDate(2024, 1, 2)),
	}
	l.ReplaceAll(in)
	in[0].Name = "mutated"
	if l.Records()[0].Name != "Coffee" {
		t.Fatalf("ReplaceAll must copy the input slice")
	}
}

func TestDerivedViews(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	now := time.Now()
	today := core.Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)}

	if err := l.Add(ctx, record(t, "Coffee", "10.00", today)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.SetBudget(ctx, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("set budget: %v", err)
	}

	stats := l.Statistics(now)
	if core.FormatAmount(stats.Today) != "10.00" {
		t.Fatalf("today = %s", core.FormatAmount(stats.Today))
	}
	report := l.BudgetReport(now)
	if report.Status != core.BudgetSafe {
		t.Fatalf("status = %s", report.Status)
	}
	filtered := l.Filtered(core.Filter{Category: "Food"}, now)
	if len(filtered) != 1 {
		t.Fatalf("filtered size = %d", len(filtered))
	}
}
