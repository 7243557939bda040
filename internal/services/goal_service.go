package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"moneta/internal/core"
)

// GoalStore is the storage surface the goal service needs. MutateGoal
// must apply fn and persist the result atomically.
type GoalStore interface {
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	GetGoal(ctx context.Context, id int64) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	MutateGoal(ctx context.Context, id int64, fn func(*core.Goal) error) (core.Goal, error)
}

// GoalEventPublisher announces goal completions. A nil publisher
// disables the notifications.
type GoalEventPublisher interface {
	PublishGoalCompleted(ctx context.Context, goalID int64, name string) error
}

// GoalService orchestrates savings goal operations.
type GoalService struct {
	store     GoalStore
	publisher GoalEventPublisher
}

func NewGoalService(store GoalStore, publisher GoalEventPublisher) *GoalService {
	return &GoalService{
		store:     store,
		publisher: publisher,
	}
}

// CreateGoal validates and persists a new goal.
func (s *GoalService) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	if g.Status == "" {
		g.Status = core.GoalActive
	}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	saved, err := s.store.CreateGoal(ctx, g)
	if err != nil {
		return core.Goal{}, fmt.Errorf("save goal: %w", err)
	}

	slog.InfoContext(ctx, "Goal created",
		"id", saved.ID, "name", saved.Name, "target_cents", saved.Target.Cents)
	return saved, nil
}

// Deposit adds an amount to a goal atomically and reports whether the
// deposit completed it. Completion events are published best-effort: the
// deposit stands even when the notification fails.
func (s *GoalService) Deposit(ctx context.Context, id int64, amount core.Money) (core.Goal, bool, error) {
	var completed bool
	goal, err := s.store.MutateGoal(ctx, id, func(g *core.Goal) error {
		var err error
		completed, err = g.Deposit(amount)
		return err
	})
	if err != nil {
		return core.Goal{}, false, err
	}

	slog.InfoContext(ctx, "Goal deposit applied",
		"id", goal.ID,
		"amount_cents", amount.Cents,
		"current_cents", goal.Current.Cents,
		"completed", completed)

	if completed {
		if err := s.publishCompletion(ctx, goal); err != nil {
			slog.ErrorContext(ctx, "Failed to publish goal completed message",
				"id", goal.ID, "error", err)
		}
	}

	return goal, completed, nil
}

// Pause suspends an active goal.
func (s *GoalService) Pause(ctx context.Context, id int64) (core.Goal, error) {
	return s.store.MutateGoal(ctx, id, func(g *core.Goal) error {
		return g.Pause()
	})
}

// Resume reactivates a paused goal.
func (s *GoalService) Resume(ctx context.Context, id int64) (core.Goal, error) {
	return s.store.MutateGoal(ctx, id, func(g *core.Goal) error {
		return g.Resume()
	})
}

// Progress returns a goal together with its pacing view at the given
// reference date.
func (s *GoalService) Progress(ctx context.Context, id int64, now time.Time) (core.Goal, core.GoalProgress, error) {
	goal, err := s.store.GetGoal(ctx, id)
	if err != nil {
		return core.Goal{}, core.GoalProgress{}, err
	}
	return goal, goal.Pacing(now), nil
}

// ListGoals returns every goal.
func (s *GoalService) ListGoals(ctx context.Context) ([]core.Goal, error) {
	return s.store.ListGoals(ctx)
}

func (s *GoalService) publishCompletion(ctx context.Context, g core.Goal) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Goal event publisher not available, skipping completion message")
		return nil
	}
	return s.publisher.PublishGoalCompleted(ctx, g.ID, g.Name)
}
