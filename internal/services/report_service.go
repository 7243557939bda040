package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"moneta/internal/core"
)

// ReportStore is the read surface the report service needs.
type ReportStore interface {
	ListTransactions(ctx context.Context) ([]core.Transaction, error)
	ListTransactionsSince(ctx context.Context, since time.Time) ([]core.Transaction, error)
	ListCategories(ctx context.Context) (map[int64]core.Category, error)
	GetCreditCard(ctx context.Context, id int64) (core.CreditCard, error)
}

// uncategorizedDisplay is the display bucket for transactions without a
// category.
var uncategorizedDisplay = core.CategoryDisplay{
	Name:  "Uncategorized",
	Icon:  "tag",
	Color: "#9e9e9e",
}

// ReportService loads snapshots from storage and runs the aggregation
// engine over them.
type ReportService struct {
	store  ReportStore
	months int
	topN   int
}

func NewReportService(store ReportStore, months, topN int) *ReportService {
	if months < 1 {
		months = 6
	}
	if topN < 1 {
		topN = core.DefaultTopN
	}
	return &ReportService{
		store:  store,
		months: months,
		topN:   topN,
	}
}

// BuildReport assembles the dashboard report for the given reference
// date. The full snapshot is needed because the report carries lifetime
// totals; it loads concurrently with the category lookup.
func (s *ReportService) BuildReport(ctx context.Context, now time.Time) (core.Report, error) {
	var (
		txs        []core.Transaction
		categories map[int64]core.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.store.ListTransactions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.store.ListCategories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Report{}, fmt.Errorf("load report snapshot: %w", err)
	}

	return core.BuildReport(txs, categories, now, s.months, s.topN, uncategorizedDisplay), nil
}

// CardCycle returns the active billing cycle view for one credit card.
// A cycle spans at most one month and a day, so loading from the
// previous month's start always covers it.
func (s *ReportService) CardCycle(ctx context.Context, cardID int64, now time.Time) (core.CycleInfo, error) {
	horizon := core.MonthWindow(now, 1).Start

	var (
		card core.CreditCard
		txs  []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		card, err = s.store.GetCreditCard(gctx, cardID)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.store.ListTransactionsSince(gctx, horizon)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.CycleInfo{}, err
	}

	info, err := core.CardCycleInfo(card, txs, now)
	if err != nil {
		return core.CycleInfo{}, fmt.Errorf("compute cycle for card %d: %w", cardID, err)
	}
	return info, nil
}
