package core

import (
	"testing"
)

func reportTxs() []Transaction {
	return []Transaction{
		{ID: 1, Date: NewDate(2026, 1, 2), Description: "salary", Amount: Money{Cents: 500000}, Type: Income, Status: Paid, CategoryID: 10},
		{ID: 2, Date: NewDate(2026, 1, 5), Description: "rent", Amount: Money{Cents: 150000}, Type: Expense, Status: Paid, CategoryID: 20},
		{ID: 3, Date: NewDate(2026, 1, 9), Description: "groceries", Amount: Money{Cents: 50000}, Type: Expense, Status: Paid, CategoryID: 30},
		{ID: 4, Date: NewDate(2026, 1, 20), Description: "dentist", Amount: Money{Cents: 50000}, Type: Expense, Status: Pending, CategoryID: 40},
		{ID: 5, Date: NewDate(2025, 12, 3), Description: "salary", Amount: Money{Cents: 480000}, Type: Income, Status: Paid, CategoryID: 10},
		{ID: 6, Date: NewDate(2025, 12, 18), Description: "gifts", Amount: Money{Cents: 220000}, Type: Expense, Status: Paid, CategoryID: 30},
	}
}

func TestBuildTrend(t *testing.T) {
	now := NewDate(2026, 1, 25)
	trend := BuildTrend(reportTxs(), now, 2)
	if len(trend) != 2 {
		t.Fatalf("len(trend) = %d, want 2", len(trend))
	}

	dec, jan := trend[0], trend[1]
	if dec.Label != "Dec 2025" || jan.Label != "Jan 2026" {
		t.Fatalf("labels = %q, %q; want oldest first", dec.Label, jan.Label)
	}
	if dec.Income.Cents != 480000 || dec.Expense.Cents != 220000 || dec.Balance.Cents != 260000 {
		t.Errorf("december = %+v, want 480000/220000/260000", dec)
	}
	// The pending 50000 expense stays out of the paid trend.
	if jan.Income.Cents != 500000 || jan.Expense.Cents != 200000 || jan.Balance.Cents != 300000 {
		t.Errorf("january = %+v, want 500000/200000/300000", jan)
	}
}

func TestBuildTrendNoData(t *testing.T) {
	trend := BuildTrend(nil, NewDate(2026, 1, 25), 3)
	if len(trend) != 3 {
		t.Fatalf("len(trend) = %d, want 3", len(trend))
	}
	for _, m := range trend {
		if m.Income.Cents != 0 || m.Expense.Cents != 0 || m.Balance.Cents != 0 {
			t.Errorf("empty month %q carries non-zero sums: %+v", m.Label, m)
		}
	}
}

func TestTopExpenses(t *testing.T) {
	now := NewDate(2026, 1, 25)
	jan := MonthWindow(now, 0)

	top := TopExpenses(reportTxs(), jan, 2)
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	if top[0].Description != "rent" || top[1].Description != "groceries" {
		t.Errorf("ranking = %q, %q; want rent then groceries", top[0].Description, top[1].Description)
	}

	// Pending never ranks even when it would win on amount.
	top = TopExpenses(reportTxs(), jan, 10)
	for _, tx := range top {
		if tx.Status != Paid {
			t.Errorf("pending transaction %q ranked", tx.Description)
		}
	}
}

func TestTopExpensesStableTies(t *testing.T) {
	w := MonthWindow(NewDate(2026, 1, 25), 0)
	txs := []Transaction{
		{ID: 1, Date: NewDate(2026, 1, 3), Description: "a", Amount: Money{Cents: 1000}, Type: Expense, Status: Paid},
		{ID: 2, Date: NewDate(2026, 1, 4), Description: "b", Amount: Money{Cents: 1000}, Type: Expense, Status: Paid},
		{ID: 3, Date: NewDate(2026, 1, 5), Description: "c", Amount: Money{Cents: 2000}, Type: Expense, Status: Paid},
	}
	top := TopExpenses(txs, w, 0)
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Description != "c" || top[1].Description != "a" || top[2].Description != "b" {
		t.Errorf("tie order broken: %q, %q, %q", top[0].Description, top[1].Description, top[2].Description)
	}
}

func TestHighlights(t *testing.T) {
	trend := []MonthSummary{
		{Label: "Nov 2025", Income: Money{Cents: 300}, Expense: Money{Cents: 900}},
		{Label: "Dec 2025", Income: Money{Cents: 700}, Expense: Money{Cents: 900}},
		{Label: "Jan 2026", Income: Money{Cents: 700}, Expense: Money{Cents: 100}},
	}
	best, worst := Highlights(trend)
	// Ties keep the first occurrence.
	if best.Label != "Dec 2025" {
		t.Errorf("best income month = %q, want Dec 2025", best.Label)
	}
	if worst.Label != "Nov 2025" {
		t.Errorf("worst expense month = %q, want Nov 2025", worst.Label)
	}

	best, worst = Highlights(nil)
	if best != (MonthSummary{}) || worst != (MonthSummary{}) {
		t.Errorf("empty trend should yield zero summaries, got %+v / %+v", best, worst)
	}
}

func TestBuildReport(t *testing.T) {
	now := NewDate(2026, 1, 25)
	categories := map[int64]Category{
		20: {ID: 20, Name: "Housing", Icon: "home", ColorHex: "#e11", Type: CategoryExpense},
		30: {ID: 30, Name: "Food", Icon: "cart", ColorHex: "#1e1", Type: CategoryExpense},
	}
	fallback := CategoryDisplay{Name: "Other", Icon: "tag", Color: "#999"}

	r := BuildReport(reportTxs(), categories, now, 2, 5, fallback)

	if len(r.Trend) != 2 {
		t.Fatalf("len(trend) = %d, want 2", len(r.Trend))
	}
	if r.BestIncomeMonth.Label != "Jan 2026" {
		t.Errorf("best income month = %q, want Jan 2026", r.BestIncomeMonth.Label)
	}
	if r.WorstExpenseMonth.Label != "Dec 2025" {
		t.Errorf("worst expense month = %q, want Dec 2025", r.WorstExpenseMonth.Label)
	}

	// Breakdown covers the current month's paid expenses only.
	if len(r.Breakdown) != 2 {
		t.Fatalf("len(breakdown) = %d, want 2", len(r.Breakdown))
	}
	if r.Breakdown[0].Name != "Housing" || r.Breakdown[0].Total.Cents != 150000 {
		t.Errorf("breakdown[0] = %+v, want Housing 150000", r.Breakdown[0])
	}
	var pctSum float64
	for _, e := range r.Breakdown {
		pctSum += e.Pct
	}
	if pctSum < 99.95 || pctSum > 100.05 {
		t.Errorf("breakdown percentages sum to %v, want ~100", pctSum)
	}

	if len(r.TopExpenses) != 2 || r.TopExpenses[0].Description != "rent" {
		t.Errorf("top expenses = %+v, want rent first of 2", r.TopExpenses)
	}

	if r.TotalIncome.Cents != 980000 || r.TotalExpense.Cents != 420000 {
		t.Errorf("totals = %d/%d, want 980000/420000", r.TotalIncome.Cents, r.TotalExpense.Cents)
	}
	if r.NetBalance.Cents != 560000 {
		t.Errorf("net balance = %d, want 560000", r.NetBalance.Cents)
	}
	if r.TransactionCount != 6 {
		t.Errorf("transaction count = %d, want 6", r.TransactionCount)
	}
}

func TestBuildReportNoData(t *testing.T) {
	r := BuildReport(nil, nil, NewDate(2026, 1, 25), 6, 0, CategoryDisplay{})
	if len(r.Trend) != 6 {
		t.Errorf("len(trend) = %d, want 6", len(r.Trend))
	}
	if len(r.Breakdown) != 0 || len(r.TopExpenses) != 0 {
		t.Errorf("empty data produced breakdown %v / top %v", r.Breakdown, r.TopExpenses)
	}
	if r.NetBalance.Cents != 0 || r.TransactionCount != 0 {
		t.Errorf("empty data produced totals: %+v", r)
	}
}
