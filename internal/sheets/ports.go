package sheets

import (
	"context"

	"moneta/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionWriter appends one transaction to the export target and
	// returns an adapter-specific row reference.
	TransactionWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}
)
