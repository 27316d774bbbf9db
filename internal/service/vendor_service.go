package service

import (
	"context"

	"gstitc/internal/domain"
	"gstitc/internal/port"
)

// VendorService defines the supplier master-data contract.
type VendorService interface {
	Create(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error)
	GetByGSTIN(ctx context.Context, gstin string) (*domain.Vendor, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error)
}

type vendorService struct {
	vendorRepo port.VendorRepository
}

// NewVendorService creates a new VendorService implementation.
func NewVendorService(vendorRepo port.VendorRepository) VendorService {
	return &vendorService{vendorRepo: vendorRepo}
}

func (s *vendorService) Create(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	if err := validateVendor(vendor); err != nil {
		return nil, err
	}
	if vendor.Type == "" {
		vendor.Type = domain.VendorRegular
	}
	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) GetByGSTIN(ctx context.Context, gstin string) (*domain.Vendor, error) {
	return s.vendorRepo.GetByGSTIN(ctx, gstin)
}

func (s *vendorService) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.vendorRepo.List(ctx, offset, limit)
}

func (s *vendorService) Update(ctx context.Context, vendor *domain.Vendor) (*domain.Vendor, error) {
	if err := validateVendor(vendor); err != nil {
		return nil, err
	}
	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func validateVendor(v *domain.Vendor) error {
	if v.GSTIN == "" {
		return domain.NewValidationError("gstin", "missing_field", "vendor GSTIN is required")
	}
	if v.Name == "" {
		return domain.NewValidationError("name", "missing_field", "vendor name is required")
	}
	if v.Type != "" {
		switch v.Type {
		case domain.VendorRegular, domain.VendorComposition, domain.VendorUnregistered:
		default:
			return domain.NewValidationError("vendor_type", "invalid_vendor_type",
				"vendor type must be regular, composition, or unregistered")
		}
	}
	return nil
}
