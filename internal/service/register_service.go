package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"gstitc/internal/domain"
	"gstitc/internal/port"
	"gstitc/internal/register"
)

// RegisterService defines the period ledger contract.
type RegisterService interface {
	Initialize(ctx context.Context, ownerGSTIN, periodKey, financialYear string, opening domain.Money) (*domain.RegisterPeriod, error)
	Get(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error)
	ApplyTransactions(ctx context.Context, ownerGSTIN, periodKey string, txns []domain.RegisterTransaction) (*domain.RegisterPeriod, error)
	ApplyReversal(ctx context.Context, ownerGSTIN, periodKey string, amount domain.Money) (*domain.RegisterPeriod, error)
	Utilize(ctx context.Context, ownerGSTIN, periodKey string, amount domain.Money) (domain.Money, error)
	MarkReconciled(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error)
}

type registerService struct {
	registerRepo port.RegisterRepository
}

// NewRegisterService creates a new RegisterService implementation.
func NewRegisterService(registerRepo port.RegisterRepository) RegisterService {
	return &registerService{registerRepo: registerRepo}
}

// Initialize creates the period row if absent and returns the existing row
// unchanged otherwise. Safe to call repeatedly and from concurrent
// ingestion paths; the unique (owner, period) constraint arbitrates races.
func (s *registerService) Initialize(ctx context.Context, ownerGSTIN, periodKey, financialYear string, opening domain.Money) (*domain.RegisterPeriod, error) {
	if existing, err := s.registerRepo.Get(ctx, ownerGSTIN, periodKey); err == nil {
		return existing, nil
	} else if !errors.Is(err, domain.ErrRegisterNotFound) {
		return nil, err
	}

	row, err := register.NewPeriod(ownerGSTIN, periodKey, financialYear, opening)
	if err != nil {
		return nil, err
	}
	if err := s.registerRepo.Create(ctx, row); err != nil {
		if errors.Is(err, domain.ErrDuplicatePeriod) {
			return s.registerRepo.Get(ctx, ownerGSTIN, periodKey)
		}
		return nil, err
	}
	log.Info().
		Str("owner_gstin", ownerGSTIN).
		Str("period", periodKey).
		Str("opening", opening.String()).
		Msg("register period initialized")
	return row, nil
}

func (s *registerService) Get(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error) {
	return s.registerRepo.Get(ctx, ownerGSTIN, periodKey)
}

// ApplyTransactions folds the transactions into an existing period row
// under the repository's row lock. The row must have been initialized
// first; a missing row is a conflict (ErrRegisterNotFound), never an
// implicit zero-opening creation that would shadow the taxpayer's real
// opening balance.
func (s *registerService) ApplyTransactions(ctx context.Context, ownerGSTIN, periodKey string, txns []domain.RegisterTransaction) (*domain.RegisterPeriod, error) {
	return s.registerRepo.Mutate(ctx, ownerGSTIN, periodKey, func(row *domain.RegisterPeriod) error {
		register.Apply(row, txns)
		return nil
	})
}

// ApplyReversal adds a reversal amount to the period and recomputes the
// closing balance.
func (s *registerService) ApplyReversal(ctx context.Context, ownerGSTIN, periodKey string, amount domain.Money) (*domain.RegisterPeriod, error) {
	return s.registerRepo.Mutate(ctx, ownerGSTIN, periodKey, func(row *domain.RegisterPeriod) error {
		row.ReversedITC = row.ReversedITC.Add(amount)
		register.Recompute(row)
		return nil
	})
}

// Utilize computes the balance remaining after a proposed utilization. It
// never mutates the row; offsetting utilized credit against output tax is
// the filing system's job.
func (s *registerService) Utilize(ctx context.Context, ownerGSTIN, periodKey string, amount domain.Money) (domain.Money, error) {
	row, err := s.registerRepo.Get(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return domain.MoneyZero, err
	}
	return register.Available(row, amount)
}

func (s *registerService) MarkReconciled(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error) {
	return s.registerRepo.Mutate(ctx, ownerGSTIN, periodKey, func(row *domain.RegisterPeriod) error {
		now := time.Now().UTC()
		row.Reconciled = true
		row.ReconciledAt = &now
		return nil
	})
}
