package port

import (
	"context"

	"gstitc/internal/domain"
)

// RegisterRepository defines the contract for register row persistence.
// Mutate serializes concurrent updates to the same (owner, period) row:
// the implementation loads the row under an exclusive lock, runs fn, and
// persists the result, so lost updates cannot occur.
type RegisterRepository interface {
	Create(ctx context.Context, row *domain.RegisterPeriod) error
	Get(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error)
	ListByRange(ctx context.Context, ownerGSTIN, fromKey, toKey string) ([]domain.RegisterPeriod, error)
	Mutate(ctx context.Context, ownerGSTIN, periodKey string, fn func(*domain.RegisterPeriod) error) (*domain.RegisterPeriod, error)
}
