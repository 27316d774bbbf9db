package port

import (
	"context"

	"gstitc/internal/domain"
)

// ReferenceLedgerRepository defines the contract for GSTR-2B snapshot
// persistence. Snapshots are replaced wholesale per (owner, period); rows
// are never mutated individually.
type ReferenceLedgerRepository interface {
	ReplacePeriod(ctx context.Context, ownerGSTIN, periodKey string, entries []domain.ReferenceLedgerEntry) error
	ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.ReferenceLedgerEntry, error)
}
