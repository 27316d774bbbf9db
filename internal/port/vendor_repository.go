package port

import (
	"context"

	"gstitc/internal/domain"
)

// VendorRepository defines the contract for vendor persistence.
type VendorRepository interface {
	Create(ctx context.Context, vendor *domain.Vendor) error
	GetByGSTIN(ctx context.Context, gstin string) (*domain.Vendor, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) error
}
