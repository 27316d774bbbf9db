package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstitc/internal/domain"
)

// MockRegisterRepo is a mock implementation of port.RegisterRepository.
// Mutate runs the supplied callback against the row configured via
// MutateRow so callers exercise their real mutation logic.
type MockRegisterRepo struct {
	mock.Mock

	// MutateRow, when set, is passed to the Mutate callback.
	MutateRow *domain.RegisterPeriod
}

func (m *MockRegisterRepo) Create(ctx context.Context, row *domain.RegisterPeriod) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockRegisterRepo) Get(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error) {
	args := m.Called(ctx, ownerGSTIN, periodKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegisterPeriod), args.Error(1)
}

func (m *MockRegisterRepo) ListByRange(ctx context.Context, ownerGSTIN, fromKey, toKey string) ([]domain.RegisterPeriod, error) {
	args := m.Called(ctx, ownerGSTIN, fromKey, toKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RegisterPeriod), args.Error(1)
}

func (m *MockRegisterRepo) Mutate(ctx context.Context, ownerGSTIN, periodKey string, fn func(*domain.RegisterPeriod) error) (*domain.RegisterPeriod, error) {
	args := m.Called(ctx, ownerGSTIN, periodKey)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	row := m.MutateRow
	if row == nil {
		row = args.Get(0).(*domain.RegisterPeriod)
	}
	if err := fn(row); err != nil {
		return nil, err
	}
	return row, nil
}
