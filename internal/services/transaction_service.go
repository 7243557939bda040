package services

import (
	"context"
	"fmt"
	"log/slog"

	"moneta/internal/core"
)

// TransactionStore is the storage surface the transaction service needs.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (core.Transaction, error)
	SetTransactionStatus(ctx context.Context, id int64, status core.TransactionStatus) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// ExportPublisher queues a transaction for the spreadsheet export. A nil
// publisher disables exporting without changing the write path.
type ExportPublisher interface {
	PublishTransactionExport(ctx context.Context, id, version int64) error
}

// TransactionService orchestrates transaction writes across SQLite and AMQP
type TransactionService struct {
	store     TransactionStore
	publisher ExportPublisher
}

func NewTransactionService(store TransactionStore, publisher ExportPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// CreateTransaction saves a transaction locally and publishes an export message.
// Local writes win: a failed publish is logged and the worker's backlog
// sweep picks the transaction up later.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	saved, err := s.store.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishExportMessage(ctx, saved.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish export message",
			"id", saved.ID, "error", err)
		// Don't fail the request - transaction is saved locally
	}

	return saved, nil
}

// ToggleStatus flips a transaction between paid and pending. The export
// is append-only so a status flip does not queue a new export.
func (s *TransactionService) ToggleStatus(ctx context.Context, id int64) (core.Transaction, error) {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	next := core.Paid
	if t.Status == core.Paid {
		next = core.Pending
	}

	updated, err := s.store.SetTransactionStatus(ctx, id, next)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("toggle transaction status: %w", err)
	}

	slog.InfoContext(ctx, "Transaction status toggled",
		"id", id, "from", t.Status, "to", next)
	return updated, nil
}

// DeleteTransaction removes a transaction locally.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) publishExportMessage(ctx context.Context, id, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Export publisher not available, skipping export message")
		return nil
	}
	return s.publisher.PublishTransactionExport(ctx, id, version)
}
