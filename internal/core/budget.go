package core

import "github.com/shopspring/decimal"

// BudgetStatus classifies current-month spend against the configured budget.
type BudgetStatus string

const (
	BudgetUnset    BudgetStatus = "UNSET"
	BudgetSafe     BudgetStatus = "SAFE"
	BudgetWarning  BudgetStatus = "WARNING"
	BudgetExceeded BudgetStatus = "EXCEEDED"
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = decimal.NewFromInt(100)
)

// BudgetReport is the outcome of a budget evaluation.
type BudgetReport struct {
	Status     BudgetStatus
	Percentage decimal.Decimal // true spend-to-budget percentage, unclamped
	Remaining  decimal.Decimal // budget minus spend; negative when exceeded
	Spent      decimal.Decimal
	Budget     decimal.Decimal
}

// EvaluateBudget classifies spend against budget. It is a pure function
// evaluated fresh on every call, not a persisted state machine.
//
// A zero budget is the sentinel for "no budget configured" and always
// yields BudgetUnset. Otherwise the true percentage decides the status:
// >= 100 is EXCEEDED (a spend exactly equal to the budget exceeds it),
// [80, 100) is WARNING, below 80 is SAFE.
func EvaluateBudget(budget, spent decimal.Decimal) BudgetReport {
	if budget.IsZero() {
		return BudgetReport{
			Status:     BudgetUnset,
			Percentage: decimal.Zero,
			Remaining:  decimal.Zero,
			Spent:      spent,
			Budget:     budget,
		}
	}

	percentage := spent.Div(budget).Mul(exceededThreshold)
	report := BudgetReport{
		Percentage: percentage,
		Remaining:  budget.Sub(spent),
		Spent:      spent,
		Budget:     budget,
	}

	switch {
	case percentage.GreaterThanOrEqual(exceededThreshold):
		report.Status = BudgetExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		report.Status = BudgetWarning
	default:
		report.Status = BudgetSafe
	}
	return report
}

// Progress returns the percentage clamped to [0, 100] for progress bar
// width. Classification always uses the unclamped value.
func (r BudgetReport) Progress() float64 {
	p, _ := r.Percentage.Float64()
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// OverBy returns the absolute overspend for the "over by" display when the
// budget is exceeded.
func (r BudgetReport) OverBy() decimal.Decimal {
	return r.Remaining.Abs()
}
