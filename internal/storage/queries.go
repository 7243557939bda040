package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query can run
// standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Transaction is the transactions table row.
type Transaction struct {
	ID           int64
	Date         string
	Description  string
	AmountCents  int64
	Type         string
	Status       string
	CategoryID   int64
	AccountID    int64
	CreditCardID int64
	ExportStatus string
	Version      int64
	CreatedAt    sql.NullTime
}

// Category is the categories table row.
type Category struct {
	ID                 int64
	Name               string
	Icon               string
	ColorHex           string
	Type               string
	MonthlyBudgetCents int64
}

// Account is the accounts table row.
type Account struct {
	ID           int64
	Name         string
	Color        string
	BalanceCents int64
}

// CreditCard is the credit_cards table row.
type CreditCard struct {
	ID         int64
	Name       string
	LimitCents int64
	ClosingDay int64
	DueDay     int64
}

// Goal is the goals table row.
type Goal struct {
	ID           int64
	Name         string
	TargetCents  int64
	CurrentCents int64
	TargetDate   string
	Status       string
	CreatedAt    sql.NullTime
}

const createTransaction = `
INSERT INTO transactions (date, description, amount_cents, type, status, category_id, account_id, credit_card_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, date, description, amount_cents, type, status, category_id, account_id, credit_card_id, export_status, version, created_at
`

type CreateTransactionParams struct {
	Date         string
	Description  string
	AmountCents  int64
	Type         string
	Status       string
	CategoryID   int64
	AccountID    int64
	CreditCardID int64
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, createTransaction,
		arg.Date, arg.Description, arg.AmountCents, arg.Type, arg.Status,
		arg.CategoryID, arg.AccountID, arg.CreditCardID)
	var t Transaction
	err := row.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Type, &t.Status,
		&t.CategoryID, &t.AccountID, &t.CreditCardID, &t.ExportStatus, &t.Version, &t.CreatedAt)
	return t, err
}

const getTransaction = `
SELECT id, date, description, amount_cents, type, status, category_id, account_id, credit_card_id, export_status, version, created_at
FROM transactions WHERE id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id int64) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id)
	var t Transaction
	err := row.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Type, &t.Status,
		&t.CategoryID, &t.AccountID, &t.CreditCardID, &t.ExportStatus, &t.Version, &t.CreatedAt)
	return t, err
}

const listTransactions = `
SELECT id, date, description, amount_cents, type, status, category_id, account_id, credit_card_id, export_status, version, created_at
FROM transactions ORDER BY date, id
`

func (q *Queries) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Type, &t.Status,
			&t.CategoryID, &t.AccountID, &t.CreditCardID, &t.ExportStatus, &t.Version, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const listTransactionsSince = `
SELECT id, date, description, amount_cents, type, status, category_id, account_id, credit_card_id, export_status, version, created_at
FROM transactions WHERE date >= ? ORDER BY date, id
`

func (q *Queries) ListTransactionsSince(ctx context.Context, date string) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactionsSince, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Type, &t.Status,
			&t.CategoryID, &t.AccountID, &t.CreditCardID, &t.ExportStatus, &t.Version, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const setTransactionStatus = `
UPDATE transactions SET status = ?, version = version + 1 WHERE id = ?
`

func (q *Queries) SetTransactionStatus(ctx context.Context, status string, id int64) error {
	_, err := q.db.ExecContext(ctx, setTransactionStatus, status, id)
	return err
}

const deleteTransaction = `
DELETE FROM transactions WHERE id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteTransaction, id)
	return err
}

const getPendingExportTransactions = `
SELECT id, date, description, amount_cents, type, status, category_id, account_id, credit_card_id, export_status, version, created_at
FROM transactions WHERE export_status = 'pending' ORDER BY created_at, id LIMIT ?
`

func (q *Queries) GetPendingExportTransactions(ctx context.Context, limit int64) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, getPendingExportTransactions, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Description, &t.AmountCents, &t.Type, &t.Status,
			&t.CategoryID, &t.AccountID, &t.CreditCardID, &t.ExportStatus, &t.Version, &t.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const markTransactionExported = `
UPDATE transactions SET export_status = 'exported' WHERE id = ?
`

func (q *Queries) MarkTransactionExported(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markTransactionExported, id)
	return err
}

const markTransactionExportError = `
UPDATE transactions SET export_status = 'error' WHERE id = ?
`

func (q *Queries) MarkTransactionExportError(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, markTransactionExportError, id)
	return err
}

const listCategories = `
SELECT id, name, icon, color_hex, type, monthly_budget_cents FROM categories ORDER BY name
`

func (q *Queries) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := q.db.QueryContext(ctx, listCategories)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.ColorHex, &c.Type, &c.MonthlyBudgetCents); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const listAccounts = `
SELECT id, name, color, balance_cents FROM accounts ORDER BY name
`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Color, &a.BalanceCents); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

const getCreditCard = `
SELECT id, name, limit_cents, closing_day, due_day FROM credit_cards WHERE id = ?
`

func (q *Queries) GetCreditCard(ctx context.Context, id int64) (CreditCard, error) {
	row := q.db.QueryRowContext(ctx, getCreditCard, id)
	var c CreditCard
	err := row.Scan(&c.ID, &c.Name, &c.LimitCents, &c.ClosingDay, &c.DueDay)
	return c, err
}

const listCreditCards = `
SELECT id, name, limit_cents, closing_day, due_day FROM credit_cards ORDER BY name
`

func (q *Queries) ListCreditCards(ctx context.Context) ([]CreditCard, error) {
	rows, err := q.db.QueryContext(ctx, listCreditCards)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CreditCard
	for rows.Next() {
		var c CreditCard
		if err := rows.Scan(&c.ID, &c.Name, &c.LimitCents, &c.ClosingDay, &c.DueDay); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const createCreditCard = `
INSERT INTO credit_cards (name, limit_cents, closing_day, due_day)
VALUES (?, ?, ?, ?)
RETURNING id, name, limit_cents, closing_day, due_day
`

type CreateCreditCardParams struct {
	Name       string
	LimitCents int64
	ClosingDay int64
	DueDay     int64
}

func (q *Queries) CreateCreditCard(ctx context.Context, arg CreateCreditCardParams) (CreditCard, error) {
	row := q.db.QueryRowContext(ctx, createCreditCard, arg.Name, arg.LimitCents, arg.ClosingDay, arg.DueDay)
	var c CreditCard
	err := row.Scan(&c.ID, &c.Name, &c.LimitCents, &c.ClosingDay, &c.DueDay)
	return c, err
}

const createGoal = `
INSERT INTO goals (name, target_cents, current_cents, target_date, status)
VALUES (?, ?, ?, ?, ?)
RETURNING id, name, target_cents, current_cents, target_date, status, created_at
`

type CreateGoalParams struct {
	Name         string
	TargetCents  int64
	CurrentCents int64
	TargetDate   string
	Status       string
}

func (q *Queries) CreateGoal(ctx context.Context, arg CreateGoalParams) (Goal, error) {
	row := q.db.QueryRowContext(ctx, createGoal,
		arg.Name, arg.TargetCents, arg.CurrentCents, arg.TargetDate, arg.Status)
	var g Goal
	err := row.Scan(&g.ID, &g.Name, &g.TargetCents, &g.CurrentCents, &g.TargetDate, &g.Status, &g.CreatedAt)
	return g, err
}

const getGoal = `
SELECT id, name, target_cents, current_cents, target_date, status, created_at
FROM goals WHERE id = ?
`

func (q *Queries) GetGoal(ctx context.Context, id int64) (Goal, error) {
	row := q.db.QueryRowContext(ctx, getGoal, id)
	var g Goal
	err := row.Scan(&g.ID, &g.Name, &g.TargetCents, &g.CurrentCents, &g.TargetDate, &g.Status, &g.CreatedAt)
	return g, err
}

const listGoals = `
SELECT id, name, target_cents, current_cents, target_date, status, created_at
FROM goals ORDER BY id
`

func (q *Queries) ListGoals(ctx context.Context) ([]Goal, error) {
	rows, err := q.db.QueryContext(ctx, listGoals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetCents, &g.CurrentCents, &g.TargetDate, &g.Status, &g.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

const updateGoalState = `
UPDATE goals SET current_cents = ?, status = ? WHERE id = ?
`

func (q *Queries) UpdateGoalState(ctx context.Context, currentCents int64, status string, id int64) error {
	_, err := q.db.ExecContext(ctx, updateGoalState, currentCents, status, id)
	return err
}
