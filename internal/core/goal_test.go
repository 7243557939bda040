package core

import (
	"errors"
	"testing"
)

func sampleGoal() Goal {
	return Goal{
		ID:         1,
		Name:       "vacation",
		Target:     Money{Cents: 100000},
		Current:    Money{Cents: 0},
		TargetDate: NewDate(2026, 7, 1),
		Status:     GoalActive,
	}
}

func TestGoalDepositCompletesExactlyOnce(t *testing.T) {
	g := sampleGoal()

	completed, err := g.Deposit(Money{Cents: 60000})
	if err != nil || completed {
		t.Fatalf("first deposit: completed = %v, err = %v", completed, err)
	}
	if g.Status != GoalActive {
		t.Fatalf("status = %q, want active", g.Status)
	}

	completed, err = g.Deposit(Money{Cents: 40000})
	if err != nil {
		t.Fatalf("completing deposit: %v", err)
	}
	if !completed {
		t.Errorf("deposit reaching the target must report completion")
	}
	if g.Status != GoalCompleted {
		t.Errorf("status = %q, want completed", g.Status)
	}

	// Further deposits keep growing the balance but never re-fire
	// completion, and never revert the status.
	completed, err = g.Deposit(Money{Cents: 5000})
	if err != nil {
		t.Fatalf("post-completion deposit: %v", err)
	}
	if completed {
		t.Errorf("completion fired twice")
	}
	if g.Current.Cents != 105000 {
		t.Errorf("current = %d, want 105000", g.Current.Cents)
	}
	if g.Status != GoalCompleted {
		t.Errorf("completion reverted to %q", g.Status)
	}
}

func TestGoalDepositRejectsNonPositive(t *testing.T) {
	g := sampleGoal()
	for _, cents := range []int64{0, -100} {
		if _, err := g.Deposit(Money{Cents: cents}); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%d) error = %v, want ErrInvalidAmount", cents, err)
		}
	}
	if g.Current.Cents != 0 {
		t.Errorf("rejected deposit changed balance to %d", g.Current.Cents)
	}
}

func TestGoalDepositWhilePaused(t *testing.T) {
	g := sampleGoal()
	if err := g.Pause(); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	completed, err := g.Deposit(Money{Cents: 100000})
	if err != nil {
		t.Fatalf("deposit while paused: %v", err)
	}
	if !completed || g.Status != GoalCompleted {
		t.Errorf("paused goal reaching target: completed = %v, status = %q", completed, g.Status)
	}
}

func TestGoalPauseResume(t *testing.T) {
	g := sampleGoal()

	if err := g.Pause(); err != nil || g.Status != GoalPaused {
		t.Fatalf("Pause: err = %v, status = %q", err, g.Status)
	}
	if err := g.Pause(); err != nil {
		t.Errorf("pausing a paused goal should be a no-op, got %v", err)
	}
	if err := g.Resume(); err != nil || g.Status != GoalActive {
		t.Fatalf("Resume: err = %v, status = %q", err, g.Status)
	}
	if err := g.Resume(); err != nil {
		t.Errorf("resuming an active goal should be a no-op, got %v", err)
	}

	g.Status = GoalCompleted
	if err := g.Pause(); !errors.Is(err, ErrGoalCompleted) {
		t.Errorf("Pause on completed goal: %v, want ErrGoalCompleted", err)
	}
	if err := g.Resume(); !errors.Is(err, ErrGoalCompleted) {
		t.Errorf("Resume on completed goal: %v, want ErrGoalCompleted", err)
	}
	if g.Status != GoalCompleted {
		t.Errorf("rejected transition changed status to %q", g.Status)
	}
}

func TestGoalProgressPercent(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		target  int64
		want    float64
	}{
		{"empty goal", 0, 100000, 0},
		{"quarter", 25000, 100000, 25},
		{"two decimals", 33333, 100000, 33.33},
		{"at target caps at 100", 100000, 100000, 100},
		{"over target caps at 100", 150000, 100000, 100},
		{"zero target", 5000, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Goal{Current: Money{Cents: tt.current}, Target: Money{Cents: tt.target}}
			if got := g.ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGoalPacing(t *testing.T) {
	now := NewDate(2026, 3, 20)

	g := sampleGoal() // target 100000, due 2026-07-01: four whole months out
	p := g.Pacing(now)
	if p.MonthsLeft != 4 {
		t.Fatalf("MonthsLeft = %d, want 4", p.MonthsLeft)
	}
	if p.Remaining.Cents != 100000 {
		t.Errorf("Remaining = %d, want 100000", p.Remaining.Cents)
	}
	if p.Suggestion.Cents != 25000 {
		t.Errorf("Suggestion = %d, want 25000", p.Suggestion.Cents)
	}

	// Deadline this month: suggest the whole remaining amount at once.
	g.TargetDate = NewDate(2026, 3, 31)
	p = g.Pacing(now)
	if p.MonthsLeft != 0 || p.Suggestion.Cents != 100000 {
		t.Errorf("same-month pacing = %+v, want lump sum 100000", p)
	}

	// Past deadline behaves the same as a same-month one.
	g.TargetDate = NewDate(2025, 12, 1)
	p = g.Pacing(now)
	if p.MonthsLeft != 0 || p.Suggestion.Cents != 100000 {
		t.Errorf("past-deadline pacing = %+v, want lump sum 100000", p)
	}

	// Saved beyond the target: nothing left, nothing suggested.
	g = sampleGoal()
	g.Current = Money{Cents: 120000}
	p = g.Pacing(now)
	if p.Remaining.Cents != 0 || p.Suggestion.Cents != 0 {
		t.Errorf("overfunded pacing = %+v, want zero remaining and suggestion", p)
	}
	if p.Pct != 100 {
		t.Errorf("overfunded pct = %v, want 100", p.Pct)
	}
}

func TestGoalPacingRoundsHalfUp(t *testing.T) {
	g := Goal{
		Target:     Money{Cents: 100},
		Current:    Money{Cents: 0},
		TargetDate: NewDate(2026, 6, 20),
	}
	// 100 cents over 3 months: 33.33 rounds to 33.
	p := g.Pacing(NewDate(2026, 3, 1))
	if p.MonthsLeft != 3 || p.Suggestion.Cents != 33 {
		t.Errorf("pacing = %+v, want 33 over 3 months", p)
	}
}
