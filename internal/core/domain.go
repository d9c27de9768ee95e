// Package core holds the expense ledger domain: records, filtering,
// aggregate statistics and budget evaluation. Everything in this package
// is pure computation over in-memory state; persistence and rendering
// live elsewhere.
package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("empty expense name")
	ErrNameTooLong   = errors.New("expense name too long (max 200 characters)")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
)

// Date is a calendar date with no time component. The wall-clock part of
// the embedded time is always midnight in the location it was created in.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.Local)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// SameDay reports whether the date falls on the same calendar day as t.
func (d Date) SameDay(t time.Time) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SameMonth reports whether the date falls in the same calendar month and year as t.
func (d Date) SameMonth(t time.Time) bool {
	return d.Year() == t.Year() && d.Month() == t.Month()
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ExpenseRecord is a single expense entry. Records are immutable once
// created; the only way to change one is to delete it.
type ExpenseRecord struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      Date            `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewRecord validates the inputs and builds a record with a fresh
// creation-ordered ID (UUIDv7) and CreatedAt timestamp.
func NewRecord(name, category string, amount decimal.Decimal, date Date, notes string) (ExpenseRecord, error) {
	r := ExpenseRecord{
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		Category:  strings.TrimSpace(category),
		Date:      date,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: time.Now(),
	}
	if err := r.Validate(); err != nil {
		return ExpenseRecord{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return ExpenseRecord{}, err
	}
	r.ID = id.String()
	return r, nil
}

func (r ExpenseRecord) Validate() error {
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyName
	}
	if len(r.Name) > 200 {
		return ErrNameTooLong
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
