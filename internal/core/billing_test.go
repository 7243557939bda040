package core

import (
	"testing"
	"time"
)

func TestActiveCycle(t *testing.T) {
	tests := []struct {
		name       string
		closingDay int
		now        time.Time
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:       "before closing day closes this month",
			closingDay: 10,
			now:        NewDate(2026, 3, 5),
			wantStart:  NewDate(2026, 2, 11),
			wantEnd:    NewDate(2026, 3, 10),
		},
		{
			name:       "on closing day still closes this month",
			closingDay: 10,
			now:        NewDate(2026, 3, 10),
			wantStart:  NewDate(2026, 2, 11),
			wantEnd:    NewDate(2026, 3, 10),
		},
		{
			name:       "after closing day closes next month",
			closingDay: 10,
			now:        NewDate(2026, 3, 15),
			wantStart:  NewDate(2026, 3, 11),
			wantEnd:    NewDate(2026, 4, 10),
		},
		{
			name:       "year boundary rolls",
			closingDay: 20,
			now:        NewDate(2025, 12, 28),
			wantStart:  NewDate(2025, 12, 21),
			wantEnd:    NewDate(2026, 1, 20),
		},
		{
			name:       "closing day 31 clamps to february's last day",
			closingDay: 31,
			now:        NewDate(2026, 2, 10),
			wantStart:  NewDate(2026, 2, 1), // Jan 31 close + 1 day
			wantEnd:    NewDate(2026, 2, 28),
		},
		{
			name:       "closing day 31 clamps to leap february",
			closingDay: 31,
			now:        NewDate(2024, 2, 10),
			wantStart:  NewDate(2024, 2, 1),
			wantEnd:    NewDate(2024, 2, 29),
		},
		{
			name:       "cycle after clamped february starts march 1",
			closingDay: 31,
			now:        NewDate(2026, 3, 5),
			wantStart:  NewDate(2026, 3, 1), // Feb 28 close + 1 day
			wantEnd:    NewDate(2026, 3, 31),
		},
		{
			name:       "cycle after clamped thirty-day month starts may 1",
			closingDay: 31,
			now:        NewDate(2026, 5, 5),
			wantStart:  NewDate(2026, 5, 1), // Apr 30 close + 1 day
			wantEnd:    NewDate(2026, 5, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActiveCycle(tt.closingDay, tt.now)
			if err != nil {
				t.Fatalf("ActiveCycle() error = %v", err)
			}
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("ActiveCycle() = [%v, %v], want [%v, %v]",
					got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestActiveCycleRejectsBadClosingDay(t *testing.T) {
	for _, day := range []int{0, -1, 32} {
		if _, err := ActiveCycle(day, NewDate(2026, 1, 1)); err == nil {
			t.Errorf("closingDay %d should be rejected", day)
		}
	}
}

// Consecutive cycles must tile: the day after one cycle's end is the next
// cycle's start, across every month of the year including short ones.
func TestCyclesNeverOverlapOrGap(t *testing.T) {
	for _, closingDay := range []int{1, 15, 28, 30, 31} {
		now := NewDate(2026, 1, 5)
		prev, err := ActiveCycle(closingDay, now)
		if err != nil {
			t.Fatalf("ActiveCycle: %v", err)
		}
		for i := 0; i < 14; i++ {
			nextRef := prev.End.AddDate(0, 0, 1)
			next, err := ActiveCycle(closingDay, nextRef.AddDate(0, 0, 1))
			if err != nil {
				t.Fatalf("ActiveCycle: %v", err)
			}
			if !next.Start.Equal(prev.End.AddDate(0, 0, 1)) {
				t.Fatalf("closingDay %d: cycle ending %v followed by cycle starting %v",
					closingDay, prev.End, next.Start)
			}
			prev = next
		}
	}
}

func TestCardCycleInfo(t *testing.T) {
	card := CreditCard{ID: 7, Name: "visa", Limit: Money{Cents: 100000}, ClosingDay: 10, DueDay: 17}
	now := NewDate(2026, 3, 15) // day 15 > closing day 10

	txs := []Transaction{
		{ID: 1, Date: NewDate(2026, 3, 12), Description: "in cycle", Amount: Money{Cents: 70000}, Type: Expense, Status: Paid, CreditCardID: 7},
		{ID: 2, Date: NewDate(2026, 4, 10), Description: "cycle end day", Amount: Money{Cents: 50000}, Type: Expense, Status: Pending, CreditCardID: 7},
		{ID: 3, Date: NewDate(2026, 3, 9), Description: "previous cycle", Amount: Money{Cents: 999}, Type: Expense, Status: Paid, CreditCardID: 7},
		{ID: 4, Date: NewDate(2026, 3, 13), Description: "other card", Amount: Money{Cents: 999}, Type: Expense, Status: Paid, CreditCardID: 8},
		{ID: 5, Date: NewDate(2026, 3, 14), Description: "income ignored", Amount: Money{Cents: 999}, Type: Income, Status: Paid, CreditCardID: 7},
	}

	info, err := CardCycleInfo(card, txs, now)
	if err != nil {
		t.Fatalf("CardCycleInfo() error = %v", err)
	}
	if !info.CycleStart.Equal(NewDate(2026, 3, 11)) || !info.CycleEnd.Equal(NewDate(2026, 4, 10)) {
		t.Errorf("cycle = [%v, %v], want [2026-03-11, 2026-04-10]", info.CycleStart, info.CycleEnd)
	}
	if info.CurrentInvoice.Cents != 120000 {
		t.Errorf("invoice = %d, want 120000", info.CurrentInvoice.Cents)
	}
	// Over-limit spend is representable in the invoice but the percentage
	// caps at 100.
	if info.UsagePercent != 100 {
		t.Errorf("usage = %d, want 100", info.UsagePercent)
	}
}

func TestCardCycleInfoUsageBounds(t *testing.T) {
	now := NewDate(2026, 3, 15)
	tx := []Transaction{
		{ID: 1, Date: NewDate(2026, 3, 12), Amount: Money{Cents: 25000}, Type: Expense, Status: Paid, CreditCardID: 1},
	}

	card := CreditCard{ID: 1, Name: "c", Limit: Money{Cents: 100000}, ClosingDay: 10, DueDay: 17}
	info, err := CardCycleInfo(card, tx, now)
	if err != nil {
		t.Fatalf("CardCycleInfo() error = %v", err)
	}
	if info.UsagePercent != 25 {
		t.Errorf("usage = %d, want 25", info.UsagePercent)
	}

	// Zero limit yields zero percent, not a division by zero.
	card.Limit = Money{}
	info, err = CardCycleInfo(card, tx, now)
	if err != nil {
		t.Fatalf("CardCycleInfo() error = %v", err)
	}
	if info.UsagePercent != 0 {
		t.Errorf("usage with zero limit = %d, want 0", info.UsagePercent)
	}
}
