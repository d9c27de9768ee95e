package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"noura/internal/core"
	"noura/internal/log"
)

// ErrDuplicateID is returned by Add when a record's ID is already present.
// With creation-time ID generation this should not happen in practice.
var ErrDuplicateID = errors.New("duplicate record id")

// Ledger is the in-memory expense list for one user. Every mutation is
// followed by a synchronous full-state write through the repository; when
// that write fails the in-memory change stands and the error is reported,
// never rolled back or retried.
type Ledger struct {
	mu      sync.Mutex
	userID  string
	records []core.ExpenseRecord
	budget  decimal.Decimal
	repo    *Repository
}

// New returns an empty ledger for the user.
func New(repo *Repository, userID string) *Ledger {
	return &Ledger{
		userID: userID,
		budget: decimal.Zero,
		repo:   repo,
	}
}

// Load builds the user's ledger from the record store. A load failure
// falls back to an empty ledger (logged); a save failure later never
// truncates state this way.
func Load(ctx context.Context, repo *Repository, userID string) *Ledger {
	l := New(repo, userID)
	state, err := repo.Load(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Ledger load failed, starting empty",
			log.FieldComponent, log.ComponentLedger,
			log.FieldOperation, log.OpLoad,
			log.FieldUser, userID,
			log.FieldError, err)
		return l
	}
	l.records = state.Records
	l.budget = state.MonthlyBudget
	return l
}

// Add appends the record and persists the new sequence.
func (l *Ledger) Add(ctx context.Context, rec core.ExpenseRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, existing := range l.records {
		if existing.ID == rec.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
	}
	l.records = append(l.records, rec)
	return l.persistRecords(ctx)
}

// Remove deletes the record with the given ID and persists. Removing an
// absent ID is a no-op, not an error: a user-initiated delete may race
// with a prior removal.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := -1
	for i, r := range l.records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	l.records = append(l.records[:idx], l.records[idx+1:]...)
	return l.persistRecords(ctx)
}

// ReplaceAll swaps the entire record sequence in memory. Used on the load
// path; no validation beyond well-formedness of the individual records.
func (l *Ledger) ReplaceAll(records []core.ExpenseRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]core.ExpenseRecord(nil), records...)
}

// SetBudget stores the monthly budget and persists it. Zero clears the
// budget back to the "unset" state.
func (l *Ledger) SetBudget(ctx context.Context, budget decimal.Decimal) error {
	if budget.IsNegative() {
		return core.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.budget = budget
	if err := l.repo.SaveBudget(ctx, l.userID, budget); err != nil {
		slog.ErrorContext(ctx, "Budget save failed, in-memory value kept",
			log.FieldComponent, log.ComponentLedger,
			log.FieldOperation, log.OpSave,
			log.FieldUser, l.userID,
			log.FieldError, err)
		return err
	}
	return nil
}

// persistRecords writes the current sequence. Callers hold l.mu.
func (l *Ledger) persistRecords(ctx context.Context) error {
	if err := l.repo.SaveRecords(ctx, l.userID, l.records); err != nil {
		slog.ErrorContext(ctx, "Ledger save failed, in-memory state kept",
			log.FieldComponent, log.ComponentLedger,
			log.FieldOperation, log.OpSave,
			log.FieldUser, l.userID,
			log.FieldLedgerSize, len(l.records),
			log.FieldError, err)
		return err
	}
	return nil
}

// UserID returns the owner of this ledger.
func (l *Ledger) UserID() string { return l.userID }

// Records returns a copy of the full insertion-ordered sequence.
func (l *Ledger) Records() []core.ExpenseRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.ExpenseRecord(nil), l.records...)
}

// Budget returns the configured monthly budget, zero when unset.
func (l *Ledger) Budget() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.budget
}

// Size returns the number of records.
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Filtered returns the filter engine's view of the ledger.
func (l *Ledger) Filtered(f core.Filter, now time.Time) []core.ExpenseRecord {
	return f.Apply(l.Records(), now)
}

// Statistics aggregates over the unfiltered ledger.
func (l *Ledger) Statistics(now time.Time) core.Statistics {
	return core.ComputeStatistics(l.Records(), now)
}

// BudgetReport evaluates this month's spend against the budget.
func (l *Ledger) BudgetReport(now time.Time) core.BudgetReport {
	stats := l.Statistics(now)
	return core.EvaluateBudget(l.Budget(), stats.ThisMonth)
}
