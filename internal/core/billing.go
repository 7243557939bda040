package core

import "time"

// Cycle is the window a credit card is currently accumulating charges
// into, bounded by two consecutive closing dates. Start and End are
// calendar dates at UTC midnight, both inclusive.
type Cycle struct {
	Start time.Time
	End   time.Time
}

// CycleInfo is what the presentation layer needs for one card: the active
// cycle, the invoice accumulated so far and the share of the limit it
// consumes.
type CycleInfo struct {
	CycleStart     time.Time
	CycleEnd       time.Time
	CurrentInvoice Money
	UsagePercent   int
}

// ActiveCycle computes the cycle the card is currently accumulating into:
// the day after the previous closing date through the current closing
// date. When now.Day() is on or before the closing day the cycle closes
// this month, otherwise next month.
//
// A closing day beyond the length of a month (closingDay=31 in February)
// is clamped to that month's last valid day instead of rolling over;
// plain time.Date arithmetic would silently shift the cycle by a month.
func ActiveCycle(closingDay int, now time.Time) (Cycle, error) {
	if closingDay < 1 || closingDay > 31 {
		return Cycle{}, ErrInvalidDay
	}

	year, month := now.Year(), now.Month()
	var end time.Time
	if now.Day() <= closingDay {
		end = ClampToMonth(year, month, closingDay)
	} else {
		next := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		end = ClampToMonth(next.Year(), next.Month(), closingDay)
	}

	// Previous closing date, clamped in its own month, then one day
	// forward. Deriving the start from the previous end is what keeps
	// consecutive cycles gap-free and overlap-free across short months.
	// Step back on the first of the month: AddDate on the end date itself
	// would normalize (Mar 31 − 1 month = "Feb 31" = Mar 3) and land in
	// the wrong month.
	prevMonth := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	prevEnd := ClampToMonth(prevMonth.Year(), prevMonth.Month(), closingDay)
	start := prevEnd.AddDate(0, 0, 1)

	return Cycle{Start: start, End: end}, nil
}

// Window converts the cycle into a filterable window covering the whole
// last day.
func (c Cycle) Window() Window {
	return Window{
		Start: c.Start,
		End:   c.End.AddDate(0, 0, 1).Add(-time.Nanosecond),
		Label: c.End.Format("Jan 2006"),
	}
}

// CardCycleInfo computes the active cycle for the card at now, the invoice
// total (paid and pending expenses charged to the card inside the cycle)
// and the utilization percentage. Utilization is capped at 100 even when
// spend exceeds the limit; a non-positive limit yields 0.
func CardCycleInfo(card CreditCard, txs []Transaction, now time.Time) (CycleInfo, error) {
	cycle, err := ActiveCycle(card.ClosingDay, now)
	if err != nil {
		return CycleInfo{}, err
	}

	w := cycle.Window()
	cardID := card.ID
	invoice := AggregateOf(txs, Match{
		Window:       &w,
		Type:         Expense,
		CreditCardID: &cardID,
	}).Sum

	usage := 0
	if card.Limit.Cents > 0 {
		ratio := float64(invoice.Cents) / float64(card.Limit.Cents)
		if ratio > 1 {
			ratio = 1
		}
		usage = int(ratio*100 + 0.5)
	}

	return CycleInfo{
		CycleStart:     cycle.Start,
		CycleEnd:       cycle.End,
		CurrentInvoice: invoice,
		UsagePercent:   usage,
	}, nil
}
