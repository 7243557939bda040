package core

// Match is an optional filter over transactions. Zero-valued fields match
// everything; pointer fields distinguish "any" (nil) from "exactly zero",
// which matters because the zero CategoryID is the uncategorized sentinel.
type Match struct {
	Window       *Window
	Type         TransactionType   // empty matches any type
	Status       TransactionStatus // empty matches any status
	CategoryID   *int64
	CreditCardID *int64
	AccountID    *int64
}

// Keep reports whether the transaction satisfies every set filter.
func (m Match) Keep(t Transaction) bool {
	if m.Window != nil && !m.Window.Contains(t.Date) {
		return false
	}
	if m.Type != "" && t.Type != m.Type {
		return false
	}
	if m.Status != "" && t.Status != m.Status {
		return false
	}
	if m.CategoryID != nil && t.CategoryID != *m.CategoryID {
		return false
	}
	if m.CreditCardID != nil && t.CreditCardID != *m.CreditCardID {
		return false
	}
	if m.AccountID != nil && t.AccountID != *m.AccountID {
		return false
	}
	return true
}

// Aggregate is the sum and count of a set of matching transactions.
// Sums always use the absolute Amount; direction (income adds, expense
// subtracts) is applied by the report composer, never here.
type Aggregate struct {
	Sum   Money
	Count int
}

// Filter returns the transactions matching m, preserving input order.
// The input slice is never mutated.
func Filter(txs []Transaction, m Match) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if m.Keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// AggregateOf sums and counts the transactions matching m. No matches
// yield a zero aggregate, never an error.
func AggregateOf(txs []Transaction, m Match) Aggregate {
	var agg Aggregate
	for _, t := range txs {
		if m.Keep(t) {
			agg.Sum.Cents += t.Amount.Cents
			agg.Count++
		}
	}
	return agg
}

// CategoryGroup is the aggregate for one category bucket. CategoryID is
// Uncategorized for transactions without a category.
type CategoryGroup struct {
	CategoryID int64
	Aggregate
}

// GroupByCategory buckets the matching transactions per category, in
// first-seen order. Transactions without a category land in the single
// Uncategorized bucket.
func GroupByCategory(txs []Transaction, m Match) []CategoryGroup {
	index := make(map[int64]int)
	var groups []CategoryGroup
	for _, t := range txs {
		if !m.Keep(t) {
			continue
		}
		key := t.CategoryID // zero is already the Uncategorized sentinel
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, CategoryGroup{CategoryID: key})
		}
		groups[i].Sum.Cents += t.Amount.Cents
		groups[i].Count++
	}
	return groups
}
