package core

import "time"

// GoalProgress is the derived pacing view for one goal. Suggestion is the
// monthly contribution needed to reach the target by the target date, or
// the full remaining amount when the deadline is this month or already
// past.
type GoalProgress struct {
	Pct        float64
	Remaining  Money
	MonthsLeft int
	Suggestion Money
}

// Deposit adds a positive amount to the goal and reports whether this
// deposit completed it. Deposits are accepted while active, paused and
// even after completion (the balance keeps growing); completion itself
// fires at most once. Completion is one-way: no later mutation reverts it.
func (g *Goal) Deposit(amount Money) (completed bool, err error) {
	if err := amount.Validate(); err != nil {
		return false, err
	}
	g.Current.Cents += amount.Cents
	if g.Status != GoalCompleted && g.Current.Cents >= g.Target.Cents {
		g.Status = GoalCompleted
		return true, nil
	}
	return false, nil
}

// Pause moves an active goal to paused. Pausing an already paused goal is
// a no-op; a completed goal rejects the transition with ErrGoalCompleted.
func (g *Goal) Pause() error {
	if g.Status == GoalCompleted {
		return ErrGoalCompleted
	}
	g.Status = GoalPaused
	return nil
}

// Resume moves a paused goal back to active. Resuming an active goal is a
// no-op; a completed goal rejects the transition with ErrGoalCompleted.
func (g *Goal) Resume() error {
	if g.Status == GoalCompleted {
		return ErrGoalCompleted
	}
	g.Status = GoalActive
	return nil
}

// ProgressPercent returns how much of the target has been saved, capped
// at 100. A non-positive target yields 0.
func (g Goal) ProgressPercent() float64 {
	if g.Target.Cents <= 0 {
		return 0
	}
	if g.Current.Cents >= g.Target.Cents {
		return 100
	}
	return percentOf(g.Current.Cents, g.Target.Cents)
}

// Pacing computes the remaining amount and the suggested monthly
// contribution given the reference date. With no whole months left the
// suggestion is the remaining lump sum; there is never a division by
// zero.
func (g Goal) Pacing(now time.Time) GoalProgress {
	remaining := g.Target.Cents - g.Current.Cents
	if remaining < 0 {
		remaining = 0
	}

	monthsLeft := MonthsBetween(now, g.TargetDate)
	suggestion := remaining
	if monthsLeft > 0 {
		// Half-up division keeps the suggestion within a cent of even
		// pacing.
		suggestion = (remaining + int64(monthsLeft)/2) / int64(monthsLeft)
	}

	return GoalProgress{
		Pct:        g.ProgressPercent(),
		Remaining:  Money{Cents: remaining},
		MonthsLeft: monthsLeft,
		Suggestion: Money{Cents: suggestion},
	}
}
