package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstitc/internal/domain"
	"gstitc/internal/port"
)

type referenceRepo struct {
	db *sqlx.DB
}

// NewReferenceLedgerRepo creates a new PostgreSQL-backed ReferenceLedgerRepository.
func NewReferenceLedgerRepo(db *sqlx.DB) port.ReferenceLedgerRepository {
	return &referenceRepo{db: db}
}

// ReplacePeriod swaps the snapshot for one (owner, period) atomically:
// delete then bulk insert inside one transaction.
func (r *referenceRepo) ReplacePeriod(ctx context.Context, ownerGSTIN, periodKey string, entries []domain.ReferenceLedgerEntry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("referenceRepo.ReplacePeriod begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		"DELETE FROM reference_ledger_entries WHERE owner_gstin = $1 AND period_key = $2",
		ownerGSTIN, periodKey)
	if err != nil {
		return fmt.Errorf("referenceRepo.ReplacePeriod delete: %w", err)
	}

	now := time.Now().UTC()
	for i := range entries {
		e := &entries[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.OwnerGSTIN = ownerGSTIN
		e.PeriodKey = periodKey
		e.ImportedAt = now

		_, err = tx.ExecContext(ctx,
			`INSERT INTO reference_ledger_entries
				(id, owner_gstin, period_key, vendor_gstin, invoice_number, invoice_date,
				 taxable_value, cgst, sgst, igst, imported_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			e.ID, e.OwnerGSTIN, e.PeriodKey, e.VendorGSTIN, e.InvoiceNumber, e.InvoiceDate,
			e.TaxableValue, e.CGST, e.SGST, e.IGST, e.ImportedAt)
		if err != nil {
			return fmt.Errorf("referenceRepo.ReplacePeriod insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("referenceRepo.ReplacePeriod commit: %w", err)
	}
	return nil
}

func (r *referenceRepo) ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.ReferenceLedgerEntry, error) {
	var entries []domain.ReferenceLedgerEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM reference_ledger_entries
		 WHERE owner_gstin = $1 AND period_key = $2
		 ORDER BY invoice_date, invoice_number`,
		ownerGSTIN, periodKey)
	if err != nil {
		return nil, fmt.Errorf("referenceRepo.ListByPeriod: %w", err)
	}
	return entries, nil
}
