// Package ledger maintains the authoritative expense list for the active
// user and persists it through the record-store collaborator.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"noura/internal/core"
	"noura/internal/storage"
)

// State is the full persisted snapshot for one user: the insertion-ordered
// record sequence and the monthly budget, where zero budget means "unset".
type State struct {
	UserID        string
	Records       []core.ExpenseRecord
	MonthlyBudget decimal.Decimal
}

// Repository loads and saves ledger state under the per-user keys
// expenses:<username> and budget:<username>.
type Repository struct {
	kv storage.KV
}

func NewRepository(kv storage.KV) *Repository {
	return &Repository{kv: kv}
}

// Load reads the user's state. Missing keys are normal (first login) and
// produce an empty ledger with an unset budget.
func (r *Repository) Load(ctx context.Context, userID string) (State, error) {
	state := State{UserID: userID, MonthlyBudget: decimal.Zero}

	raw, err := r.kv.Get(ctx, storage.ExpensesKey(userID))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// nothing recorded yet
	case err != nil:
		return state, fmt.Errorf("load expenses: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &state.Records); err != nil {
			return state, fmt.Errorf("decode expenses: %w", err)
		}
	}

	rawBudget, err := r.kv.Get(ctx, storage.BudgetKey(userID))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		// no budget configured
	case err != nil:
		return state, fmt.Errorf("load budget: %w", err)
	default:
		budget, err := decimal.NewFromString(rawBudget)
		if err != nil {
			return state, fmt.Errorf("decode budget: %w", err)
		}
		state.MonthlyBudget = budget
	}

	return state, nil
}

// SaveRecords writes the full record sequence for the user.
func (r *Repository) SaveRecords(ctx context.Context, userID string, records []core.ExpenseRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := r.kv.Set(ctx, storage.ExpensesKey(userID), string(data)); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// SaveBudget writes the user's monthly budget as a serialized decimal.
func (r *Repository) SaveBudget(ctx context.Context, userID string, budget decimal.Decimal) error {
	if err := r.kv.Set(ctx, storage.BudgetKey(userID), budget.String()); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}
