package core

import (
	"sort"
	"time"
)

// MonthSummary is the income/expense/balance roll-up for one calendar
// month. Balance is income minus expense over that window only, not
// cumulative.
type MonthSummary struct {
	Label   string
	Income  Money
	Expense Money
	Balance Money
}

// Report is the composed dashboard view: a paid-only month trend, the
// current-month expense breakdown, the top expenses, best/worst month
// highlights and lifetime totals.
type Report struct {
	Trend             []MonthSummary
	Breakdown         []BreakdownEntry
	TopExpenses       []Transaction
	BestIncomeMonth   MonthSummary
	WorstExpenseMonth MonthSummary
	TotalIncome       Money
	TotalExpense      Money
	NetBalance        Money
	TransactionCount  int
}

// DefaultTopN is the ranking size used when the caller does not ask for a
// specific one.
const DefaultTopN = 10

// BuildTrend aggregates paid income and expense per calendar month for
// the monthsBack months ending at now, oldest first.
func BuildTrend(txs []Transaction, now time.Time, monthsBack int) []MonthSummary {
	windows := MonthSeries(now, monthsBack)
	trend := make([]MonthSummary, 0, len(windows))
	for i := range windows {
		w := windows[i]
		income := AggregateOf(txs, Match{Window: &w, Type: Income, Status: Paid}).Sum
		expense := AggregateOf(txs, Match{Window: &w, Type: Expense, Status: Paid}).Sum
		trend = append(trend, MonthSummary{
			Label:   w.Label,
			Income:  income,
			Expense: expense,
			Balance: income.Sub(expense),
		})
	}
	return trend
}

// TopExpenses ranks the paid expenses inside the window descending by
// amount and truncates to n (DefaultTopN when n is not positive). Equal
// amounts keep their original order.
func TopExpenses(txs []Transaction, w Window, n int) []Transaction {
	if n <= 0 {
		n = DefaultTopN
	}
	ranked := Filter(txs, Match{Window: &w, Type: Expense, Status: Paid})
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount.Cents > ranked[j].Amount.Cents
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Highlights picks the month with the highest income and the month with
// the highest expense out of the trend, first occurrence winning ties.
// An empty trend yields zero-valued summaries, not an error.
func Highlights(trend []MonthSummary) (bestIncome, worstExpense MonthSummary) {
	for i, m := range trend {
		if i == 0 || m.Income.Cents > bestIncome.Income.Cents {
			bestIncome = m
		}
	}
	for i, m := range trend {
		if i == 0 || m.Expense.Cents > worstExpense.Expense.Cents {
			worstExpense = m
		}
	}
	return bestIncome, worstExpense
}

// BuildReport composes the full dashboard report from a transaction
// snapshot and a reference date. It is pure: the same inputs always
// produce the same report, and the inputs are never mutated.
func BuildReport(txs []Transaction, categories map[int64]Category, now time.Time, monthsBack, topN int, fallback CategoryDisplay) Report {
	trend := BuildTrend(txs, now, monthsBack)
	best, worst := Highlights(trend)

	current := MonthWindow(now, 0)
	groups := GroupByCategory(txs, Match{Window: &current, Type: Expense, Status: Paid})

	totalIncome := AggregateOf(txs, Match{Type: Income, Status: Paid}).Sum
	totalExpense := AggregateOf(txs, Match{Type: Expense, Status: Paid}).Sum

	return Report{
		Trend:             trend,
		Breakdown:         BuildBreakdown(groups, categories, fallback),
		TopExpenses:       TopExpenses(txs, current, topN),
		BestIncomeMonth:   best,
		WorstExpenseMonth: worst,
		TotalIncome:       totalIncome,
		TotalExpense:      totalExpense,
		NetBalance:        totalIncome.Sub(totalExpense),
		TransactionCount:  len(txs),
	}
}
