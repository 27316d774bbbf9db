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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, owner_gstin, vendor_gstin, invoice_number, invoice_date, period_key,
	origin_state, destination_state, reverse_charge, reverse_charge_pct, line_items,
	taxable_amount, cgst, sgst, igst, cess, total,
	eligible_itc, blocked_itc, claimed_itc, reversals,
	payment_status, payment_date, matching_status, match_confidence, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.PurchaseInvoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO purchase_invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.OwnerGSTIN, inv.VendorGSTIN, inv.InvoiceNumber, inv.InvoiceDate, inv.PeriodKey,
		inv.OriginState, inv.DestinationState, inv.ReverseCharge, inv.ReverseChargePct, inv.LineItems,
		inv.TaxableAmount, inv.CGST, inv.SGST, inv.IGST, inv.Cess, inv.Total,
		inv.EligibleITC, inv.BlockedITC, inv.ClaimedITC, inv.Reversals,
		inv.PaymentStatus, inv.PaymentDate, inv.MatchingStatus, inv.MatchConfidence,
		inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, ownerGSTIN string, id uuid.UUID) (*domain.PurchaseInvoice, error) {
	var inv domain.PurchaseInvoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM purchase_invoices WHERE id = $1 AND owner_gstin = $2", id, ownerGSTIN)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, ownerGSTIN, vendorGSTIN, invoiceNumber string) (*domain.PurchaseInvoice, error) {
	var inv domain.PurchaseInvoice
	err := r.db.GetContext(ctx, &inv,
		`SELECT * FROM purchase_invoices
		 WHERE owner_gstin = $1 AND vendor_gstin = $2 AND invoice_number = $3`,
		ownerGSTIN, vendorGSTIN, invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) ListByOwner(ctx context.Context, ownerGSTIN string, offset, limit int) ([]domain.PurchaseInvoice, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM purchase_invoices WHERE owner_gstin = $1", ownerGSTIN)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner count: %w", err)
	}

	var invoices []domain.PurchaseInvoice
	err = r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM purchase_invoices WHERE owner_gstin = $1
		 ORDER BY invoice_date DESC, invoice_number LIMIT $2 OFFSET $3`,
		ownerGSTIN, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.PurchaseInvoice, error) {
	var invoices []domain.PurchaseInvoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM purchase_invoices WHERE owner_gstin = $1 AND period_key = $2
		 ORDER BY invoice_date, invoice_number`,
		ownerGSTIN, periodKey)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByPeriod: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListByDateRange(ctx context.Context, ownerGSTIN string, from, to time.Time) ([]domain.PurchaseInvoice, error) {
	var invoices []domain.PurchaseInvoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM purchase_invoices
		 WHERE owner_gstin = $1 AND invoice_date >= $2 AND invoice_date <= $3
		 ORDER BY invoice_date, invoice_number`,
		ownerGSTIN, from, to)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByDateRange: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Update(ctx context.Context, inv *domain.PurchaseInvoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE purchase_invoices SET
			vendor_gstin = $1, invoice_number = $2, invoice_date = $3, period_key = $4,
			origin_state = $5, destination_state = $6, reverse_charge = $7, reverse_charge_pct = $8,
			line_items = $9, taxable_amount = $10, cgst = $11, sgst = $12, igst = $13, cess = $14,
			total = $15, eligible_itc = $16, blocked_itc = $17, claimed_itc = $18, reversals = $19,
			payment_status = $20, payment_date = $21, matching_status = $22, match_confidence = $23,
			updated_at = $24
		 WHERE id = $25 AND owner_gstin = $26`,
		inv.VendorGSTIN, inv.InvoiceNumber, inv.InvoiceDate, inv.PeriodKey,
		inv.OriginState, inv.DestinationState, inv.ReverseCharge, inv.ReverseChargePct,
		inv.LineItems, inv.TaxableAmount, inv.CGST, inv.SGST, inv.IGST, inv.Cess,
		inv.Total, inv.EligibleITC, inv.BlockedITC, inv.ClaimedITC, inv.Reversals,
		inv.PaymentStatus, inv.PaymentDate, inv.MatchingStatus, inv.MatchConfidence,
		inv.UpdatedAt, inv.ID, inv.OwnerGSTIN)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("invoiceRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdateMatching(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.MatchingStatus, confidence *int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE purchase_invoices SET matching_status = $1, match_confidence = $2, updated_at = $3
		 WHERE id = $4 AND owner_gstin = $5`,
		status, confidence, time.Now().UTC(), id, ownerGSTIN)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateMatching: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) UpdatePayment(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE purchase_invoices SET payment_status = $1, payment_date = $2, updated_at = $3
		 WHERE id = $4 AND owner_gstin = $5`,
		status, paymentDate, time.Now().UTC(), id, ownerGSTIN)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdatePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, ownerGSTIN string, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM purchase_invoices WHERE id = $1 AND owner_gstin = $2", id, ownerGSTIN)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
