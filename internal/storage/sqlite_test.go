package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "noura.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Set(ctx, ExpensesKey("amara"), `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.Get(ctx, ExpensesKey("amara"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `[]` {
		t.Fatalf("got %q", got)
	}

	// Upsert path
	if err := s.Set(ctx, ExpensesKey("amara"), `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ = s.Get(ctx, ExpensesKey("amara")); got != `[{"id":"1"}]` {
		t.Fatalf("upsert failed, got %q", got)
	}

	if err := s.Delete(ctx, ExpensesKey("amara")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, ExpensesKey("amara")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "noura.db")

	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := s.Set(ctx, BudgetKey("amara"), "1500"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Values survive process restarts.
	s2, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s2.Close()
	got, err := s2.Get(ctx, BudgetKey("amara"))
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got != "1500" {
		t.Fatalf("got %q", got)
	}
}
