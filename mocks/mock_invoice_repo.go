package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstitc/internal/domain"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.PurchaseInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, ownerGSTIN string, id uuid.UUID) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, ownerGSTIN, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) GetByNumber(ctx context.Context, ownerGSTIN, vendorGSTIN, invoiceNumber string) (*domain.PurchaseInvoice, error) {
	args := m.Called(ctx, ownerGSTIN, vendorGSTIN, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByOwner(ctx context.Context, ownerGSTIN string, offset, limit int) ([]domain.PurchaseInvoice, int, error) {
	args := m.Called(ctx, ownerGSTIN, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, ownerGSTIN, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListByDateRange(ctx context.Context, ownerGSTIN string, from, to time.Time) ([]domain.PurchaseInvoice, error) {
	args := m.Called(ctx, ownerGSTIN, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseInvoice), args.Error(1)
}

func (m *MockInvoiceRepo) Update(ctx context.Context, inv *domain.PurchaseInvoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdateMatching(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.MatchingStatus, confidence *int) error {
	args := m.Called(ctx, ownerGSTIN, id, status, confidence)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdatePayment(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error {
	args := m.Called(ctx, ownerGSTIN, id, status, paymentDate)
	return args.Error(0)
}

func (m *MockInvoiceRepo) Delete(ctx context.Context, ownerGSTIN string, id uuid.UUID) error {
	args := m.Called(ctx, ownerGSTIN, id)
	return args.Error(0)
}
