package memory

import (
	"context"
	"testing"

	"moneta/internal/core"
)

func TestStoreAppend(t *testing.T) {
	s := New()

	tx := core.Transaction{
		Date:        core.NewDate(2026, 2, 10),
		Description: "groceries",
		Amount:      core.Money{Cents: 4200},
		Type:        core.Expense,
		Status:      core.Paid,
	}

	ref, err := s.Append(context.Background(), tx)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	ref, err = s.Append(context.Background(), tx)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if ref != "mem:2" {
		t.Errorf("ref = %q, want mem:2", ref)
	}

	if got := s.Items(); len(got) != 2 {
		t.Errorf("len(Items()) = %d, want 2", len(got))
	}
}

func TestStoreAppendRejectsInvalid(t *testing.T) {
	s := New()

	bad := core.Transaction{
		Date:   core.NewDate(2026, 2, 10),
		Amount: core.Money{Cents: 100},
		Type:   core.Expense,
		Status: core.Paid,
	}
	if _, err := s.Append(context.Background(), bad); err == nil {
		t.Error("transaction without description should be rejected")
	}
	if len(s.Items()) != 0 {
		t.Error("rejected transaction must not be stored")
	}
}
