package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
	"gstitc/mocks"
)

func TestVendorServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults_to_a_regular_vendor", func(t *testing.T) {
		repo := new(mocks.MockVendorRepo)
		svc := NewVendorService(repo)

		vendor := &domain.Vendor{GSTIN: testVendor, Name: "Acme Supplies"}
		repo.On("Create", ctx, vendor).Return(nil)

		out, err := svc.Create(ctx, vendor)
		require.NoError(t, err)
		assert.Equal(t, domain.VendorRegular, out.Type)
	})

	t.Run("missing_fields_are_rejected", func(t *testing.T) {
		svc := NewVendorService(new(mocks.MockVendorRepo))

		_, err := svc.Create(ctx, &domain.Vendor{Name: "No GSTIN"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "gstin", ve.Field)

		_, err = svc.Create(ctx, &domain.Vendor{GSTIN: testVendor})
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "name", ve.Field)
	})

	t.Run("unknown_scheme_is_rejected", func(t *testing.T) {
		svc := NewVendorService(new(mocks.MockVendorRepo))

		_, err := svc.Create(ctx, &domain.Vendor{GSTIN: testVendor, Name: "Acme", Type: "franchise"})
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "vendor_type", ve.Field)
	})

	t.Run("duplicate_gstin_propagates", func(t *testing.T) {
		repo := new(mocks.MockVendorRepo)
		svc := NewVendorService(repo)
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrDuplicateVendor)

		_, err := svc.Create(ctx, &domain.Vendor{GSTIN: testVendor, Name: "Acme"})
		assert.ErrorIs(t, err, domain.ErrDuplicateVendor)
	})
}

func TestVendorServiceList(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockVendorRepo)
	svc := NewVendorService(repo)

	repo.On("List", ctx, 0, 50).Return([]domain.Vendor{}, 0, nil)

	// Out-of-range paging collapses to the defaults.
	_, _, err := svc.List(ctx, -3, 1000)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
