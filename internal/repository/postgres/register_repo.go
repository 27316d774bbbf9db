package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstitc/internal/domain"
	"gstitc/internal/port"
)

type registerRepo struct {
	db *sqlx.DB
}

// NewRegisterRepo creates a new PostgreSQL-backed RegisterRepository.
func NewRegisterRepo(db *sqlx.DB) port.RegisterRepository {
	return &registerRepo{db: db}
}

func (r *registerRepo) Create(ctx context.Context, row *domain.RegisterPeriod) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	query := `INSERT INTO itc_register_periods
		(id, owner_gstin, period_key, financial_year, opening_balance,
		 eligible_itc, claimed_itc, reversed_itc, blocked_itc,
		 inputs_itc, capital_goods_itc, input_services_itc, closing_balance,
		 reconciled, reconciled_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.OwnerGSTIN, row.PeriodKey, row.FinancialYear, row.OpeningBalance,
		row.EligibleITC, row.ClaimedITC, row.ReversedITC, row.BlockedITC,
		row.InputsITC, row.CapitalGoodsITC, row.InputServicesITC, row.ClosingBalance,
		row.Reconciled, row.ReconciledAt, row.CreatedAt, row.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicatePeriod
		}
		return fmt.Errorf("registerRepo.Create: %w", err)
	}
	return nil
}

func (r *registerRepo) Get(ctx context.Context, ownerGSTIN, periodKey string) (*domain.RegisterPeriod, error) {
	var row domain.RegisterPeriod
	err := r.db.GetContext(ctx, &row,
		"SELECT * FROM itc_register_periods WHERE owner_gstin = $1 AND period_key = $2",
		ownerGSTIN, periodKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegisterNotFound
		}
		return nil, fmt.Errorf("registerRepo.Get: %w", err)
	}
	return &row, nil
}

// ListByRange returns register rows between two MM-YYYY keys inclusive,
// ordered chronologically. Period keys sort by year first, so the query
// rewrites them to YYYY-MM before comparing.
func (r *registerRepo) ListByRange(ctx context.Context, ownerGSTIN, fromKey, toKey string) ([]domain.RegisterPeriod, error) {
	var rows []domain.RegisterPeriod
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM itc_register_periods
		 WHERE owner_gstin = $1
		   AND substring(period_key, 4, 4) || '-' || substring(period_key, 1, 2)
		       BETWEEN substring($2::text, 4, 4) || '-' || substring($2::text, 1, 2)
		           AND substring($3::text, 4, 4) || '-' || substring($3::text, 1, 2)
		 ORDER BY substring(period_key, 4, 4), substring(period_key, 1, 2)`,
		ownerGSTIN, fromKey, toKey)
	if err != nil {
		return nil, fmt.Errorf("registerRepo.ListByRange: %w", err)
	}
	return rows, nil
}

// Mutate loads the row under FOR UPDATE, applies fn, and writes the result
// back inside the same transaction. Concurrent mutations of one row
// serialize on the row lock, so additive updates never lose writes.
func (r *registerRepo) Mutate(ctx context.Context, ownerGSTIN, periodKey string, fn func(*domain.RegisterPeriod) error) (*domain.RegisterPeriod, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("registerRepo.Mutate begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var row domain.RegisterPeriod
	err = tx.GetContext(ctx, &row,
		"SELECT * FROM itc_register_periods WHERE owner_gstin = $1 AND period_key = $2 FOR UPDATE",
		ownerGSTIN, periodKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegisterNotFound
		}
		return nil, fmt.Errorf("registerRepo.Mutate select: %w", err)
	}

	if err := fn(&row); err != nil {
		return nil, err
	}
	row.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx,
		`UPDATE itc_register_periods SET
			opening_balance = $1, eligible_itc = $2, claimed_itc = $3, reversed_itc = $4,
			blocked_itc = $5, inputs_itc = $6, capital_goods_itc = $7, input_services_itc = $8,
			closing_balance = $9, reconciled = $10, reconciled_at = $11, updated_at = $12
		 WHERE id = $13`,
		row.OpeningBalance, row.EligibleITC, row.ClaimedITC, row.ReversedITC,
		row.BlockedITC, row.InputsITC, row.CapitalGoodsITC, row.InputServicesITC,
		row.ClosingBalance, row.Reconciled, row.ReconciledAt, row.UpdatedAt, row.ID)
	if err != nil {
		return nil, fmt.Errorf("registerRepo.Mutate update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("registerRepo.Mutate commit: %w", err)
	}
	return &row, nil
}
