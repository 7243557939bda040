package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"moneta/internal/core"

	_ "modernc.org/sqlite"
)

// dateFormat is the canonical on-disk date layout. Dates are stored as
// text so range scans on the date index stay lexicographic.
const dateFormat = "2006-01-02"

var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Run migrations
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction persists a validated transaction and returns it with
// its assigned ID.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	row, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Date:         t.Date.Format(dateFormat),
		Description:  t.Description,
		AmountCents:  t.Amount.Cents,
		Type:         string(t.Type),
		Status:       string(t.Status),
		CategoryID:   t.CategoryID,
		AccountID:    t.AccountID,
		CreditCardID: t.CreditCardID,
	})
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", row.ID,
		"description", row.Description,
		"amount_cents", row.AmountCents,
		"type", row.Type,
		"date", row.Date)

	return toCoreTransaction(row)
}

// GetTransaction retrieves a single transaction by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row, err := r.queries.GetTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return toCoreTransaction(row)
}

// ListTransactions returns every stored transaction, oldest first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return toCoreTransactions(rows)
}

// ListTransactionsSince returns the transactions dated on or after the
// given day. The report service uses this to bound its snapshot to the
// trend horizon.
func (r *SQLiteRepository) ListTransactionsSince(ctx context.Context, since time.Time) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactionsSince(ctx, since.Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("list transactions since %s: %w", since.Format(dateFormat), err)
	}
	return toCoreTransactions(rows)
}

// SetTransactionStatus flips a transaction between paid and pending.
func (r *SQLiteRepository) SetTransactionStatus(ctx context.Context, id int64, status core.TransactionStatus) (core.Transaction, error) {
	if err := r.queries.SetTransactionStatus(ctx, string(status), id); err != nil {
		return core.Transaction{}, fmt.Errorf("set transaction status: %w", err)
	}
	return r.GetTransaction(ctx, id)
}

// DeleteTransaction removes a transaction by ID.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	if err := r.queries.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListCategories returns all categories keyed by ID, ready for the
// report builder's lookup.
func (r *SQLiteRepository) ListCategories(ctx context.Context) (map[int64]core.Category, error) {
	rows, err := r.queries.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make(map[int64]core.Category, len(rows))
	for _, c := range rows {
		categories[c.ID] = core.Category{
			ID:            c.ID,
			Name:          c.Name,
			Icon:          c.Icon,
			ColorHex:      c.ColorHex,
			Type:          core.CategoryType(c.Type),
			MonthlyBudget: core.Money{Cents: c.MonthlyBudgetCents},
		}
	}
	return categories, nil
}

// ListAccounts returns all accounts.
func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.queries.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	accounts := make([]core.Account, len(rows))
	for i, a := range rows {
		accounts[i] = core.Account{
			ID:      a.ID,
			Name:    a.Name,
			Color:   a.Color,
			Balance: core.Money{Cents: a.BalanceCents},
		}
	}
	return accounts, nil
}

// GetCreditCard retrieves a single credit card by ID.
func (r *SQLiteRepository) GetCreditCard(ctx context.Context, id int64) (core.CreditCard, error) {
	row, err := r.queries.GetCreditCard(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CreditCard{}, fmt.Errorf("get credit card %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("get credit card: %w", err)
	}
	return toCoreCreditCard(row), nil
}

// ListCreditCards returns all credit cards.
func (r *SQLiteRepository) ListCreditCards(ctx context.Context) ([]core.CreditCard, error) {
	rows, err := r.queries.ListCreditCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list credit cards: %w", err)
	}
	cards := make([]core.CreditCard, len(rows))
	for i, c := range rows {
		cards[i] = toCoreCreditCard(c)
	}
	return cards, nil
}

// CreateCreditCard persists a validated credit card.
func (r *SQLiteRepository) CreateCreditCard(ctx context.Context, c core.CreditCard) (core.CreditCard, error) {
	row, err := r.queries.CreateCreditCard(ctx, CreateCreditCardParams{
		Name:       c.Name,
		LimitCents: c.Limit.Cents,
		ClosingDay: int64(c.ClosingDay),
		DueDay:     int64(c.DueDay),
	})
	if err != nil {
		return core.CreditCard{}, fmt.Errorf("create credit card: %w", err)
	}
	return toCoreCreditCard(row), nil
}

// CreateGoal persists a validated goal.
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error) {
	row, err := r.queries.CreateGoal(ctx, CreateGoalParams{
		Name:         g.Name,
		TargetCents:  g.Target.Cents,
		CurrentCents: g.Current.Cents,
		TargetDate:   g.TargetDate.Format(dateFormat),
		Status:       string(g.Status),
	})
	if err != nil {
		return core.Goal{}, fmt.Errorf("create goal: %w", err)
	}
	return toCoreGoal(row)
}

// GetGoal retrieves a single goal by ID.
func (r *SQLiteRepository) GetGoal(ctx context.Context, id int64) (core.Goal, error) {
	row, err := r.queries.GetGoal(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, fmt.Errorf("get goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return toCoreGoal(row)
}

// ListGoals returns all goals.
func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.queries.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	goals := make([]core.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := toCoreGoal(row)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// MutateGoal loads a goal, applies fn to it and writes the result back,
// all inside one database transaction so concurrent deposits never lose
// an update.
func (r *SQLiteRepository) MutateGoal(ctx context.Context, id int64, fn func(*core.Goal) error) (core.Goal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Goal{}, fmt.Errorf("begin goal mutation: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	row, err := qtx.GetGoal(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, fmt.Errorf("get goal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}

	goal, err := toCoreGoal(row)
	if err != nil {
		return core.Goal{}, err
	}

	if err := fn(&goal); err != nil {
		return core.Goal{}, err
	}

	if err := qtx.UpdateGoalState(ctx, goal.Current.Cents, string(goal.Status), id); err != nil {
		return core.Goal{}, fmt.Errorf("update goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.Goal{}, fmt.Errorf("commit goal mutation: %w", err)
	}
	return goal, nil
}

// PendingExportTransaction is the minimal data carried in export queue
// messages.
type PendingExportTransaction struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// GetPendingExportTransactions returns transactions that still need to be
// exported to the spreadsheet.
func (r *SQLiteRepository) GetPendingExportTransactions(ctx context.Context, limit int) ([]PendingExportTransaction, error) {
	rows, err := r.queries.GetPendingExportTransactions(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("get pending export transactions: %w", err)
	}

	pending := make([]PendingExportTransaction, len(rows))
	for i, t := range rows {
		pending[i] = PendingExportTransaction{
			ID:        t.ID,
			Version:   t.Version,
			CreatedAt: t.CreatedAt.Time,
		}
	}
	return pending, nil
}

// MarkExported marks a transaction as successfully exported.
func (r *SQLiteRepository) MarkExported(ctx context.Context, id int64) error {
	if err := r.queries.MarkTransactionExported(ctx, id); err != nil {
		return fmt.Errorf("mark transaction exported: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as exported", "id", id)
	return nil
}

// MarkExportError marks a transaction as having export errors.
func (r *SQLiteRepository) MarkExportError(ctx context.Context, id int64) error {
	if err := r.queries.MarkTransactionExportError(ctx, id); err != nil {
		return fmt.Errorf("mark transaction export error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with export error", "id", id)
	return nil
}

func toCoreTransaction(row Transaction) (core.Transaction, error) {
	date, err := time.Parse(dateFormat, row.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse transaction date %q: %w", row.Date, err)
	}
	return core.Transaction{
		ID:           row.ID,
		Date:         date,
		Description:  row.Description,
		Amount:       core.Money{Cents: row.AmountCents},
		Type:         core.TransactionType(row.Type),
		Status:       core.TransactionStatus(row.Status),
		CategoryID:   row.CategoryID,
		AccountID:    row.AccountID,
		CreditCardID: row.CreditCardID,
		CreatedAt:    row.CreatedAt.Time,
	}, nil
}

func toCoreTransactions(rows []Transaction) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0, len(rows))
	for _, row := range rows {
		t, err := toCoreTransaction(row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, nil
}

func toCoreCreditCard(row CreditCard) core.CreditCard {
	return core.CreditCard{
		ID:         row.ID,
		Name:       row.Name,
		Limit:      core.Money{Cents: row.LimitCents},
		ClosingDay: int(row.ClosingDay),
		DueDay:     int(row.DueDay),
	}
}

func toCoreGoal(row Goal) (core.Goal, error) {
	targetDate, err := time.Parse(dateFormat, row.TargetDate)
	if err != nil {
		return core.Goal{}, fmt.Errorf("parse goal target date %q: %w", row.TargetDate, err)
	}
	return core.Goal{
		ID:         row.ID,
		Name:       row.Name,
		Target:     core.Money{Cents: row.TargetCents},
		Current:    core.Money{Cents: row.CurrentCents},
		TargetDate: targetDate,
		Status:     core.GoalStatus(row.Status),
	}, nil
}
