package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"moneta/internal/core"
)

type fakeReportStore struct {
	txs        []core.Transaction
	categories map[int64]core.Category
	cards      map[int64]core.CreditCard
	failTxs    bool
}

func (f *fakeReportStore) ListTransactions(_ context.Context) ([]core.Transaction, error) {
	if f.failTxs {
		return nil, errors.New("db gone")
	}
	return f.txs, nil
}

func (f *fakeReportStore) ListTransactionsSince(_ context.Context, since time.Time) ([]core.Transaction, error) {
	if f.failTxs {
		return nil, errors.New("db gone")
	}
	var out []core.Transaction
	for _, t := range f.txs {
		if !t.Date.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeReportStore) ListCategories(_ context.Context) (map[int64]core.Category, error) {
	return f.categories, nil
}

func (f *fakeReportStore) GetCreditCard(_ context.Context, id int64) (core.CreditCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return core.CreditCard{}, errors.New("not found")
	}
	return card, nil
}

func TestReportService_BuildReport(t *testing.T) {
	store := &fakeReportStore{
		txs: []core.Transaction{
			{ID: 1, Date: core.NewDate(2026, 1, 2), Description: "salary", Amount: core.Money{Cents: 500000}, Type: core.Income, Status: core.Paid, CategoryID: 10},
			{ID: 2, Date: core.NewDate(2026, 1, 5), Description: "rent", Amount: core.Money{Cents: 150000}, Type: core.Expense, Status: core.Paid, CategoryID: 20},
			{ID: 3, Date: core.NewDate(2026, 1, 9), Description: "pending bill", Amount: core.Money{Cents: 90000}, Type: core.Expense, Status: core.Pending, CategoryID: 20},
		},
		categories: map[int64]core.Category{
			20: {ID: 20, Name: "Housing", Type: core.CategoryExpense},
		},
	}
	svc := NewReportService(store, 3, 5)

	report, err := svc.BuildReport(context.Background(), core.NewDate(2026, 1, 25))
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}

	if len(report.Trend) != 3 {
		t.Fatalf("len(trend) = %d, want 3", len(report.Trend))
	}
	jan := report.Trend[2]
	if jan.Income.Cents != 500000 || jan.Expense.Cents != 150000 || jan.Balance.Cents != 350000 {
		t.Errorf("january = %+v, want 500000/150000/350000", jan)
	}
	if len(report.Breakdown) != 1 || report.Breakdown[0].Name != "Housing" {
		t.Errorf("breakdown = %+v, want single Housing entry", report.Breakdown)
	}
	if report.TransactionCount != 3 {
		t.Errorf("transaction count = %d, want 3", report.TransactionCount)
	}
}

func TestReportService_BuildReportEmptyStore(t *testing.T) {
	svc := NewReportService(&fakeReportStore{}, 6, 10)

	report, err := svc.BuildReport(context.Background(), core.NewDate(2026, 1, 25))
	if err != nil {
		t.Fatalf("no data must not be an error, got %v", err)
	}
	if len(report.Trend) != 6 {
		t.Errorf("len(trend) = %d, want 6 zero months", len(report.Trend))
	}
	if report.NetBalance.Cents != 0 {
		t.Errorf("net balance = %d, want 0", report.NetBalance.Cents)
	}
}

func TestReportService_BuildReportStoreError(t *testing.T) {
	svc := NewReportService(&fakeReportStore{failTxs: true}, 6, 10)
	if _, err := svc.BuildReport(context.Background(), core.NewDate(2026, 1, 25)); err == nil {
		t.Error("storage failure should surface as an error")
	}
}

func TestReportService_CardCycle(t *testing.T) {
	store := &fakeReportStore{
		txs: []core.Transaction{
			{ID: 1, Date: core.NewDate(2026, 3, 12), Description: "laptop", Amount: core.Money{Cents: 120000}, Type: core.Expense, Status: core.Paid, CreditCardID: 7},
			{ID: 2, Date: core.NewDate(2026, 3, 9), Description: "previous cycle", Amount: core.Money{Cents: 5000}, Type: core.Expense, Status: core.Paid, CreditCardID: 7},
		},
		cards: map[int64]core.CreditCard{
			7: {ID: 7, Name: "visa", Limit: core.Money{Cents: 100000}, ClosingDay: 10, DueDay: 17},
		},
	}
	svc := NewReportService(store, 6, 10)

	info, err := svc.CardCycle(context.Background(), 7, core.NewDate(2026, 3, 15))
	if err != nil {
		t.Fatalf("CardCycle() error = %v", err)
	}
	if info.CurrentInvoice.Cents != 120000 {
		t.Errorf("invoice = %d, want 120000", info.CurrentInvoice.Cents)
	}
	if info.UsagePercent != 100 {
		t.Errorf("usage = %d, want capped 100", info.UsagePercent)
	}
	if !info.CycleStart.Equal(core.NewDate(2026, 3, 11)) {
		t.Errorf("cycle start = %v, want 2026-03-11", info.CycleStart)
	}
}

func TestReportService_CardCycleMissingCard(t *testing.T) {
	svc := NewReportService(&fakeReportStore{cards: map[int64]core.CreditCard{}}, 6, 10)
	if _, err := svc.CardCycle(context.Background(), 42, core.NewDate(2026, 3, 15)); err == nil {
		t.Error("missing card should surface as an error")
	}
}
