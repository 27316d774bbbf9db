// Package register owns the per-period input tax credit ledger: one row
// per (owner, period) accumulating eligible, claimed, reversed, and
// blocked totals, plus the derived reports built on top of it. All
// arithmetic here is pure; persistence and serialization live behind the
// repository port.
package register

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// NewPeriod builds a zeroed register row for an owner and period. The
// period key must be well formed and the opening balance non-negative.
func NewPeriod(ownerGSTIN, periodKey, financialYear string, opening domain.Money) (*domain.RegisterPeriod, error) {
	if !domain.ValidPeriodKey(periodKey) {
		return nil, fmt.Errorf("register.NewPeriod: %w: %q", domain.ErrInvalidPeriodKey, periodKey)
	}
	if opening.IsNegative() {
		return nil, fmt.Errorf("register.NewPeriod: %w", domain.ErrNegativeOpening)
	}
	if financialYear == "" {
		start, err := domain.PeriodStart(periodKey)
		if err != nil {
			return nil, fmt.Errorf("register.NewPeriod: %w", err)
		}
		financialYear = domain.FinancialYearFor(start)
	}
	now := time.Now().UTC()
	return &domain.RegisterPeriod{
		ID:               uuid.New(),
		OwnerGSTIN:       ownerGSTIN,
		PeriodKey:        periodKey,
		FinancialYear:    financialYear,
		OpeningBalance:   opening,
		EligibleITC:      domain.MoneyZero,
		ClaimedITC:       domain.MoneyZero,
		ReversedITC:      domain.MoneyZero,
		BlockedITC:       domain.MoneyZero,
		InputsITC:        domain.MoneyZero,
		CapitalGoodsITC:  domain.MoneyZero,
		InputServicesITC: domain.MoneyZero,
		ClosingBalance:   opening,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Apply folds transactions into the row's running totals and recomputes
// the closing balance from scratch. Recomputing rather than patching
// keeps the closing balance drift-free no matter how the row got here.
func Apply(row *domain.RegisterPeriod, txns []domain.RegisterTransaction) {
	for _, tx := range txns {
		row.EligibleITC = row.EligibleITC.Add(tx.Eligible)
		row.ClaimedITC = row.ClaimedITC.Add(tx.Claimed)
		row.ReversedITC = row.ReversedITC.Add(tx.Reversed)
		row.BlockedITC = row.BlockedITC.Add(tx.Blocked)

		switch tx.Category {
		case domain.CategoryInputs:
			row.InputsITC = row.InputsITC.Add(tx.Eligible)
		case domain.CategoryCapitalGoods:
			row.CapitalGoodsITC = row.CapitalGoodsITC.Add(tx.Eligible)
		case domain.CategoryInputServices:
			row.InputServicesITC = row.InputServicesITC.Add(tx.Eligible)
		}
	}
	Recompute(row)
	row.UpdatedAt = time.Now().UTC()
}

// Recompute restores the closing-balance invariant:
// closing = opening + claimed - reversed.
func Recompute(row *domain.RegisterPeriod) {
	row.ClosingBalance = row.OpeningBalance.Add(row.ClaimedITC).Sub(row.ReversedITC)
}

// Available returns the balance remaining after a proposed utilization.
// Credit cannot be utilized beyond what the row holds.
func Available(row *domain.RegisterPeriod, utilization domain.Money) (domain.Money, error) {
	if utilization.IsNegative() {
		return domain.MoneyZero, fmt.Errorf("register.Available: utilization must not be negative")
	}
	remaining := row.ClosingBalance.Sub(utilization)
	if remaining.IsNegative() {
		return domain.MoneyZero, fmt.Errorf("register.Available: %w: balance %s, requested %s",
			domain.ErrInsufficientBalance, row.ClosingBalance.String(), utilization.String())
	}
	return remaining, nil
}
