package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
	"gstitc/internal/register"
	"gstitc/mocks"
)

func TestRegisterServiceInitialize(t *testing.T) {
	ctx := context.Background()

	t.Run("returns_the_existing_row_untouched", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		existing := &domain.RegisterPeriod{OwnerGSTIN: testOwner, PeriodKey: "06-2024"}
		repo.On("Get", ctx, testOwner, "06-2024").Return(existing, nil)

		row, err := svc.Initialize(ctx, testOwner, "06-2024", "", domain.Rupees("9999"))
		require.NoError(t, err)
		assert.Same(t, existing, row)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("creates_when_absent", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		repo.On("Get", ctx, testOwner, "06-2024").Return(nil, domain.ErrRegisterNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.RegisterPeriod")).Return(nil)

		row, err := svc.Initialize(ctx, testOwner, "06-2024", "", domain.Rupees("5000"))
		require.NoError(t, err)
		assert.True(t, row.OpeningBalance.Equal(domain.Rupees("5000")))
		assert.True(t, row.ClosingBalance.Equal(domain.Rupees("5000")))
		repo.AssertExpectations(t)
	})

	t.Run("lost_creation_race_rereads_the_winner", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		winner := &domain.RegisterPeriod{OwnerGSTIN: testOwner, PeriodKey: "06-2024"}
		repo.On("Get", ctx, testOwner, "06-2024").Return(nil, domain.ErrRegisterNotFound).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.RegisterPeriod")).Return(domain.ErrDuplicatePeriod)
		repo.On("Get", ctx, testOwner, "06-2024").Return(winner, nil).Once()

		row, err := svc.Initialize(ctx, testOwner, "06-2024", "", domain.MoneyZero)
		require.NoError(t, err)
		assert.Same(t, winner, row)
	})

	t.Run("invalid_period_key_is_rejected", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		repo.On("Get", ctx, testOwner, "2024-06").Return(nil, domain.ErrRegisterNotFound)

		_, err := svc.Initialize(ctx, testOwner, "2024-06", "", domain.MoneyZero)
		assert.ErrorIs(t, err, domain.ErrInvalidPeriodKey)
	})
}

func TestRegisterServiceApplyTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("folds_into_the_existing_row", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		row, err := register.NewPeriod(testOwner, "06-2024", "", domain.MoneyZero)
		require.NoError(t, err)
		repo.MutateRow = row
		repo.On("Mutate", ctx, testOwner, "06-2024").Return(row, nil)

		out, err := svc.ApplyTransactions(ctx, testOwner, "06-2024", []domain.RegisterTransaction{{
			Category: domain.CategoryInputs,
			Eligible: domain.Rupees("1800"),
			Claimed:  domain.Rupees("1800"),
		}})
		require.NoError(t, err)

		assert.True(t, out.EligibleITC.Equal(domain.Rupees("1800")))
		assert.True(t, out.ClosingBalance.Equal(domain.Rupees("1800")))
	})

	t.Run("missing_row_is_a_conflict_not_an_implicit_creation", func(t *testing.T) {
		repo := new(mocks.MockRegisterRepo)
		svc := NewRegisterService(repo)

		repo.On("Mutate", ctx, testOwner, "06-2024").Return(nil, domain.ErrRegisterNotFound)

		_, err := svc.ApplyTransactions(ctx, testOwner, "06-2024", []domain.RegisterTransaction{{
			Category: domain.CategoryInputs,
			Eligible: domain.Rupees("1800"),
			Claimed:  domain.Rupees("1800"),
		}})
		assert.ErrorIs(t, err, domain.ErrRegisterNotFound)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

		// The true opening can still land later; nothing shadowed it.
		repo.On("Get", ctx, testOwner, "06-2024").Return(nil, domain.ErrRegisterNotFound).Once()
		repo.On("Create", ctx, mock.AnythingOfType("*domain.RegisterPeriod")).Return(nil)

		row, err := svc.Initialize(ctx, testOwner, "06-2024", "", domain.Rupees("5000"))
		require.NoError(t, err)
		assert.True(t, row.OpeningBalance.Equal(domain.Rupees("5000")))
	})
}

func TestRegisterServiceUtilize(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRegisterRepo)
	svc := NewRegisterService(repo)

	row, err := register.NewPeriod(testOwner, "06-2024", "", domain.Rupees("100"))
	require.NoError(t, err)
	repo.On("Get", ctx, testOwner, "06-2024").Return(row, nil)

	remaining, err := svc.Utilize(ctx, testOwner, "06-2024", domain.Rupees("40"))
	require.NoError(t, err)
	assert.True(t, remaining.Equal(domain.Rupees("60")))

	_, err = svc.Utilize(ctx, testOwner, "06-2024", domain.Rupees("200"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	// Utilize is compute-only; the stored balance never moves.
	assert.True(t, row.ClosingBalance.Equal(domain.Rupees("100")))
}

func TestRegisterServiceMarkReconciled(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockRegisterRepo)
	svc := NewRegisterService(repo)

	row, err := register.NewPeriod(testOwner, "06-2024", "", domain.MoneyZero)
	require.NoError(t, err)
	repo.MutateRow = row
	repo.On("Mutate", ctx, testOwner, "06-2024").Return(row, nil)

	out, err := svc.MarkReconciled(ctx, testOwner, "06-2024")
	require.NoError(t, err)
	assert.True(t, out.Reconciled)
	require.NotNil(t, out.ReconciledAt)
}
