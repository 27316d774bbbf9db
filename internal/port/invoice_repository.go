package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstitc/internal/domain"
)

// InvoiceRepository defines the contract for purchase invoice persistence.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.PurchaseInvoice) error
	GetByID(ctx context.Context, ownerGSTIN string, id uuid.UUID) (*domain.PurchaseInvoice, error)
	GetByNumber(ctx context.Context, ownerGSTIN, vendorGSTIN, invoiceNumber string) (*domain.PurchaseInvoice, error)
	ListByOwner(ctx context.Context, ownerGSTIN string, offset, limit int) ([]domain.PurchaseInvoice, int, error)
	ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.PurchaseInvoice, error)
	ListByDateRange(ctx context.Context, ownerGSTIN string, from, to time.Time) ([]domain.PurchaseInvoice, error)
	Update(ctx context.Context, inv *domain.PurchaseInvoice) error
	UpdateMatching(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.MatchingStatus, confidence *int) error
	UpdatePayment(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error
	Delete(ctx context.Context, ownerGSTIN string, id uuid.UUID) error
}
