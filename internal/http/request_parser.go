// This file implements utilities for parsing and validating HTTP request
// data: expense and budget form payloads and the filter query parameters.

package http

import (
	"errors"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"noura/internal/core"
)

var (
	errMissingName     = errors.New("expense name is required")
	errMissingCategory = errors.New("category is required")
	errBadAmount       = errors.New("amount must be a non-negative number")
	errBadDate         = errors.New("date must be in YYYY-MM-DD format")
	errBadBudget       = errors.New("budget must be a positive number")

	errPasswordMismatch = errors.New("passwords do not match")
)

// ExpenseForm holds the validated fields of an add-expense submission.
type ExpenseForm struct {
	Name     string
	Amount   decimal.Decimal
	Category string
	Date     core.Date
	Notes    string
}

// ParseExpenseForm validates the add-expense form. A missing date falls
// back to today, mirroring the date field's default in the UI.
func ParseExpenseForm(form url.Values) (ExpenseForm, error) {
	out := ExpenseForm{
		Name:     sanitizeInput(form.Get("name")),
		Category: sanitizeInput(form.Get("category")),
		Notes:    sanitizeInput(form.Get("notes")),
	}
	if out.Name == "" {
		return ExpenseForm{}, errMissingName
	}
	if out.Category == "" {
		return ExpenseForm{}, errMissingCategory
	}

	amount, err := core.ParseAmount(form.Get("amount"))
	if err != nil {
		return ExpenseForm{}, errBadAmount
	}
	out.Amount = amount

	if raw := sanitizeInput(form.Get("date")); raw != "" {
		date, err := core.ParseDate(raw)
		if err != nil {
			return ExpenseForm{}, errBadDate
		}
		out.Date = date
	} else {
		now := time.Now()
		out.Date = core.NewDate(now.Year(), int(now.Month()), now.Day())
	}

	return out, nil
}

// ParseFilterParams maps the category/period query parameters onto a
// core.Filter. Absent or unknown values mean "no filter".
func ParseFilterParams(query url.Values) core.Filter {
	return core.Filter{
		Category: sanitizeInput(query.Get("category")),
		Period:   core.ParsePeriod(sanitizeInput(query.Get("period"))),
	}
}

// ParseBudgetForm validates the set-budget form. Only strictly positive
// budgets are accepted from the UI; zero stays reserved as the internal
// "unset" sentinel.
func ParseBudgetForm(form url.Values) (decimal.Decimal, error) {
	budget, err := core.ParseAmount(form.Get("budget"))
	if err != nil || !budget.IsPositive() {
		return decimal.Zero, errBadBudget
	}
	return budget, nil
}
