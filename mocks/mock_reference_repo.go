package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstitc/internal/domain"
)

// MockReferenceLedgerRepo is a mock implementation of port.ReferenceLedgerRepository.
type MockReferenceLedgerRepo struct {
	mock.Mock
}

func (m *MockReferenceLedgerRepo) ReplacePeriod(ctx context.Context, ownerGSTIN, periodKey string, entries []domain.ReferenceLedgerEntry) error {
	args := m.Called(ctx, ownerGSTIN, periodKey, entries)
	return args.Error(0)
}

func (m *MockReferenceLedgerRepo) ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.ReferenceLedgerEntry, error) {
	args := m.Called(ctx, ownerGSTIN, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReferenceLedgerEntry), args.Error(1)
}
