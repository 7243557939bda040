package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income   TransactionType = "income"
	Expense  TransactionType = "expense"
	Transfer TransactionType = "transfer"

	Paid    TransactionStatus = "paid"
	Pending TransactionStatus = "pending"

	GoalActive    GoalStatus = "active"
	GoalPaused    GoalStatus = "paused"
	GoalCompleted GoalStatus = "completed"

	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// Uncategorized is the sentinel category key for transactions without a
// category. Grouping always folds them into this single bucket instead of
// dropping them.
const Uncategorized int64 = 0

type (
	TransactionType   string
	TransactionStatus string
	GoalStatus        string
	CategoryType      string

	// Transaction is a single financial event. Amount is always positive;
	// direction is implied by Type and applied only when composing
	// summaries. Zero CategoryID, AccountID or CreditCardID mean "not set".
	Transaction struct {
		ID           int64
		Date         time.Time // calendar date of the economic event, UTC midnight
		Description  string
		Amount       Money
		Type         TransactionType
		Status       TransactionStatus
		CategoryID   int64
		AccountID    int64
		CreditCardID int64
		CreatedAt    time.Time
	}

	// Category is a grouping key plus display metadata. It has no
	// computational behavior of its own.
	Category struct {
		ID            int64
		Name          string
		Icon          string
		ColorHex      string
		Type          CategoryType
		MonthlyBudget Money // zero means no budget set
	}

	// Account carries a balance snapshot maintained by the storage layer.
	// The engine never recomputes historical balances.
	Account struct {
		ID      int64
		Name    string
		Color   string
		Balance Money // may be negative
	}

	CreditCard struct {
		ID         int64
		Name       string
		Limit      Money
		ClosingDay int // 1-31, clamped to shorter months at cycle time
		DueDay     int // 1-31
	}

	Goal struct {
		ID         int64
		Name       string
		Target     Money
		Current    Money
		TargetDate time.Time
		Status     GoalStatus
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidStatus    = errors.New("invalid transaction status")
	ErrInvalidDay       = errors.New("invalid calendar day")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyName        = errors.New("empty name")
	ErrGoalCompleted    = errors.New("goal already completed")
)

// NewDate builds a calendar date at UTC midnight.
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	switch t.Type {
	case Income, Expense, Transfer:
	default:
		return ErrInvalidType
	}
	switch t.Status {
	case Paid, Pending:
	default:
		return ErrInvalidStatus
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	switch c.Type {
	case CategoryIncome, CategoryExpense:
	default:
		return errors.New("invalid category type")
	}
	return nil
}

func (c CreditCard) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if err := c.Limit.Validate(); err != nil {
		return err
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

func (g Goal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Current.Cents < 0 {
		return ErrInvalidAmount
	}
	if g.TargetDate.IsZero() {
		return ErrInvalidDate
	}
	switch g.Status {
	case GoalActive, GoalPaused, GoalCompleted:
	default:
		return errors.New("invalid goal status")
	}
	return nil
}
