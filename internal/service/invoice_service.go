package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"gstitc/internal/domain"
	"gstitc/internal/eligibility"
	"gstitc/internal/gst"
	"gstitc/internal/port"
)

// LineItemInput is the DTO for one purchase line item.
type LineItemInput struct {
	Description    string                         `json:"description"`
	HSNSACCode     string                         `json:"hsn_sac_code"`
	Quantity       domain.Money                   `json:"quantity"`
	UnitRate       domain.Money                   `json:"unit_rate"`
	TaxRatePct     domain.Money                   `json:"tax_rate_pct"`
	CessRatePct    domain.Money                   `json:"cess_rate_pct"`
	Category       domain.ITCCategory             `json:"category"`
	BlockedFacts   *domain.Facts                  `json:"blocked_facts,omitempty"`
	BusinessUsePct *domain.Money                  `json:"business_use_pct,omitempty"`
	Import         *eligibility.ImportFacts       `json:"import,omitempty"`
	CapitalGoods   *eligibility.CapitalGoodsFacts `json:"capital_goods,omitempty"`
}

// CreateInvoiceInput is the DTO for recording a purchase invoice.
type CreateInvoiceInput struct {
	OwnerGSTIN       string                  `json:"owner_gstin"`
	VendorGSTIN      string                  `json:"vendor_gstin"`
	InvoiceNumber    string                  `json:"invoice_number"`
	InvoiceDate      time.Time               `json:"invoice_date"`
	OriginState      string                  `json:"origin_state"`
	DestinationState string                  `json:"destination_state"`
	ReverseCharge    bool                    `json:"reverse_charge"`
	ExemptSupplyPct  domain.Money            `json:"exempt_supply_pct"`
	PaymentStatus    domain.PaymentStatus    `json:"payment_status"`
	PaymentDate      *time.Time              `json:"payment_date,omitempty"`
	Conditions       *eligibility.Conditions `json:"conditions,omitempty"`
	LineItems        []LineItemInput         `json:"line_items"`
}

// UpdateInvoiceInput replaces an invoice wholesale; every derived field is
// recomputed from this payload.
type UpdateInvoiceInput struct {
	ID uuid.UUID `json:"id"`
	CreateInvoiceInput
}

// InvoiceService defines the purchase invoice ingestion contract.
type InvoiceService interface {
	Create(ctx context.Context, input *CreateInvoiceInput) (*domain.PurchaseInvoice, error)
	GetByID(ctx context.Context, ownerGSTIN string, id uuid.UUID) (*domain.PurchaseInvoice, error)
	List(ctx context.Context, ownerGSTIN string, offset, limit int) ([]domain.PurchaseInvoice, int, error)
	ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.PurchaseInvoice, error)
	Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.PurchaseInvoice, error)
	MarkPayment(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error
	Delete(ctx context.Context, ownerGSTIN string, id uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo port.InvoiceRepository
	vendorRepo  port.VendorRepository
	registerSvc RegisterService
	engine      *eligibility.Engine
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	vendorRepo port.VendorRepository,
	registerSvc RegisterService,
	engine *eligibility.Engine,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		vendorRepo:  vendorRepo,
		registerSvc: registerSvc,
		engine:      engine,
	}
}

func (s *invoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*domain.PurchaseInvoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.GetByNumber(ctx, input.OwnerGSTIN, input.VendorGSTIN, input.InvoiceNumber)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrDuplicateInvoice
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	vendor, err := s.vendorRepo.GetByGSTIN(ctx, input.VendorGSTIN)
	if err != nil {
		return nil, err
	}

	inv, err := s.derive(input, vendor)
	if err != nil {
		return nil, err
	}
	inv.ID = uuid.New()

	// The period ledger row must exist before the invoice can post to it.
	if _, err := s.registerSvc.Get(ctx, inv.OwnerGSTIN, inv.PeriodKey); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	if err := s.applyToRegister(ctx, inv); err != nil {
		return nil, err
	}

	log.Info().
		Str("invoice_id", inv.ID.String()).
		Str("owner_gstin", inv.OwnerGSTIN).
		Str("period", inv.PeriodKey).
		Str("eligible_itc", inv.EligibleITC.String()).
		Str("blocked_itc", inv.BlockedITC.String()).
		Msg("invoice recorded")
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, ownerGSTIN string, id uuid.UUID) (*domain.PurchaseInvoice, error) {
	return s.invoiceRepo.GetByID(ctx, ownerGSTIN, id)
}

func (s *invoiceService) List(ctx context.Context, ownerGSTIN string, offset, limit int) ([]domain.PurchaseInvoice, int, error) {
	return s.invoiceRepo.ListByOwner(ctx, ownerGSTIN, offset, limit)
}

func (s *invoiceService) ListByPeriod(ctx context.Context, ownerGSTIN, periodKey string) ([]domain.PurchaseInvoice, error) {
	if !domain.ValidPeriodKey(periodKey) {
		return nil, domain.ErrInvalidPeriodKey
	}
	return s.invoiceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
}

// Update re-derives the whole invoice from the new payload. The register is
// compensated with the delta between old and new amounts so period totals
// stay consistent without replaying history.
func (s *invoiceService) Update(ctx context.Context, input *UpdateInvoiceInput) (*domain.PurchaseInvoice, error) {
	if err := validateInvoiceInput(&input.CreateInvoiceInput); err != nil {
		return nil, err
	}

	old, err := s.invoiceRepo.GetByID(ctx, input.OwnerGSTIN, input.ID)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendorRepo.GetByGSTIN(ctx, input.VendorGSTIN)
	if err != nil {
		return nil, err
	}

	inv, err := s.derive(&input.CreateInvoiceInput, vendor)
	if err != nil {
		return nil, err
	}
	inv.ID = old.ID
	inv.CreatedAt = old.CreatedAt
	inv.MatchingStatus = domain.MatchingPending

	// A period move needs the destination ledger row in place before
	// anything is persisted.
	if inv.PeriodKey != old.PeriodKey {
		if _, err := s.registerSvc.Get(ctx, inv.OwnerGSTIN, inv.PeriodKey); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	// Reverse the old contribution and apply the new one.
	if inv.PeriodKey == old.PeriodKey {
		txns := append(negateTransactions(registerTransactions(old)), registerTransactions(inv)...)
		if _, err := s.registerSvc.ApplyTransactions(ctx, inv.OwnerGSTIN, inv.PeriodKey, txns); err != nil {
			return nil, err
		}
	} else {
		if _, err := s.registerSvc.ApplyTransactions(ctx, old.OwnerGSTIN, old.PeriodKey, negateTransactions(registerTransactions(old))); err != nil {
			return nil, err
		}
		if err := s.applyToRegister(ctx, inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (s *invoiceService) MarkPayment(ctx context.Context, ownerGSTIN string, id uuid.UUID, status domain.PaymentStatus, paymentDate *time.Time) error {
	if !domain.ValidPaymentStatuses[status] {
		return domain.NewValidationError("payment_status", "invalid_payment_status",
			fmt.Sprintf("unknown payment status %q", status))
	}
	return s.invoiceRepo.UpdatePayment(ctx, ownerGSTIN, id, status, paymentDate)
}

func (s *invoiceService) Delete(ctx context.Context, ownerGSTIN string, id uuid.UUID) error {
	old, err := s.invoiceRepo.GetByID(ctx, ownerGSTIN, id)
	if err != nil {
		return err
	}
	if err := s.invoiceRepo.Delete(ctx, ownerGSTIN, id); err != nil {
		return err
	}
	_, err = s.registerSvc.ApplyTransactions(ctx, ownerGSTIN, old.PeriodKey, negateTransactions(registerTransactions(old)))
	return err
}

// derive computes every derived field on the invoice: per-line tax split,
// per-line eligibility, and the invoice aggregates. Any line failure aborts
// the whole invoice.
func (s *invoiceService) derive(input *CreateInvoiceInput, vendor *domain.Vendor) (*domain.PurchaseInvoice, error) {
	inv := &domain.PurchaseInvoice{
		OwnerGSTIN:       input.OwnerGSTIN,
		VendorGSTIN:      input.VendorGSTIN,
		InvoiceNumber:    input.InvoiceNumber,
		InvoiceDate:      input.InvoiceDate,
		PeriodKey:        domain.PeriodKeyFor(input.InvoiceDate),
		OriginState:      input.OriginState,
		DestinationState: input.DestinationState,
		ReverseCharge:    input.ReverseCharge,
		ReverseChargePct: domain.MoneyZero,
		PaymentStatus:    input.PaymentStatus,
		PaymentDate:      input.PaymentDate,
		MatchingStatus:   domain.MatchingPending,
		TaxableAmount:    domain.MoneyZero,
		CGST:             domain.MoneyZero,
		SGST:             domain.MoneyZero,
		IGST:             domain.MoneyZero,
		Cess:             domain.MoneyZero,
		Total:            domain.MoneyZero,
		EligibleITC:      domain.MoneyZero,
		BlockedITC:       domain.MoneyZero,
		ClaimedITC:       domain.MoneyZero,
	}
	if inv.PaymentStatus == "" {
		inv.PaymentStatus = domain.PaymentUnpaid
	}

	vendorBlock := vendorBlockReason(vendor, input.ReverseCharge)
	interstate := input.OriginState != input.DestinationState

	for i, li := range input.LineItems {
		taxable := li.Quantity.Mul(li.UnitRate)
		breakup := gst.Compute(taxable, li.TaxRatePct, interstate, li.CessRatePct)

		line := domain.PurchaseLineItem{
			Description:    li.Description,
			HSNSACCode:     li.HSNSACCode,
			Quantity:       li.Quantity,
			UnitRate:       li.UnitRate,
			TaxRatePct:     li.TaxRatePct,
			CessRatePct:    li.CessRatePct,
			Category:       li.Category,
			BlockedFacts:   li.BlockedFacts,
			BusinessUsePct: businessUse(li.BusinessUsePct),
			TaxableAmount:  taxable,
			CGST:           breakup.CGST,
			SGST:           breakup.SGST,
			IGST:           breakup.IGST,
			Cess:           breakup.Cess,
		}

		var result eligibility.Result
		if vendorBlock != "" {
			result = eligibility.BlockAll(li.Category, line.TotalTax(), vendorBlock)
		} else {
			lineIn := eligibility.LineInput{
				TaxAmount:       line.TotalTax(),
				Category:        li.Category,
				BusinessUsePct:  line.BusinessUsePct,
				ExemptSupplyPct: input.ExemptSupplyPct,
				InvoiceDate:     input.InvoiceDate,
				Conditions:      input.Conditions,
				Import:          li.Import,
				CapitalGoods:    li.CapitalGoods,
			}
			if li.BlockedFacts != nil {
				lineIn.Blocked = li.BlockedFacts.BlockedFacts
			}
			var err error
			result, err = s.engine.EvaluateLine(lineIn)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
		}

		line.Eligibility = &domain.LineEligibility{
			IsEligible:    result.IsEligible,
			EligibleITC:   result.EligibleAmount,
			BlockedITC:    result.BlockedAmount,
			BlockedReason: result.BlockedReason,
		}

		inv.LineItems = append(inv.LineItems, line)
		inv.TaxableAmount = inv.TaxableAmount.Add(taxable)
		inv.CGST = inv.CGST.Add(breakup.CGST)
		inv.SGST = inv.SGST.Add(breakup.SGST)
		inv.IGST = inv.IGST.Add(breakup.IGST)
		inv.Cess = inv.Cess.Add(breakup.Cess)
		inv.EligibleITC = inv.EligibleITC.Add(result.EligibleAmount)
		inv.BlockedITC = inv.BlockedITC.Add(result.BlockedAmount)
		inv.Reversals = append(inv.Reversals, result.Reversals...)
	}

	inv.Total = inv.TaxableAmount.Add(inv.CGST).Add(inv.SGST).Add(inv.IGST).Add(inv.Cess)
	inv.ClaimedITC = inv.EligibleITC
	return inv, nil
}

// applyToRegister folds the invoice's eligibility summary into its period
// row. The row must already be initialized; claimed tracks eligible at
// ingestion, and reversals are applied by their own workflow, not here.
func (s *invoiceService) applyToRegister(ctx context.Context, inv *domain.PurchaseInvoice) error {
	_, err := s.registerSvc.ApplyTransactions(ctx, inv.OwnerGSTIN, inv.PeriodKey, registerTransactions(inv))
	return err
}

// registerTransactions derives one transaction per line category present
// on the invoice.
func registerTransactions(inv *domain.PurchaseInvoice) []domain.RegisterTransaction {
	byCat := map[domain.ITCCategory]*domain.RegisterTransaction{}
	order := []domain.ITCCategory{}
	for _, li := range inv.LineItems {
		if li.Eligibility == nil {
			continue
		}
		tx, ok := byCat[li.Category]
		if !ok {
			tx = &domain.RegisterTransaction{
				InvoiceID: inv.ID,
				Category:  li.Category,
				Eligible:  domain.MoneyZero,
				Claimed:   domain.MoneyZero,
				Reversed:  domain.MoneyZero,
				Blocked:   domain.MoneyZero,
			}
			byCat[li.Category] = tx
			order = append(order, li.Category)
		}
		tx.Eligible = tx.Eligible.Add(li.Eligibility.EligibleITC)
		tx.Claimed = tx.Claimed.Add(li.Eligibility.EligibleITC)
		tx.Blocked = tx.Blocked.Add(li.Eligibility.BlockedITC)
	}
	txns := make([]domain.RegisterTransaction, 0, len(order))
	for _, cat := range order {
		txns = append(txns, *byCat[cat])
	}
	return txns
}

func negateTransactions(txns []domain.RegisterTransaction) []domain.RegisterTransaction {
	out := make([]domain.RegisterTransaction, len(txns))
	for i, tx := range txns {
		out[i] = domain.RegisterTransaction{
			InvoiceID: tx.InvoiceID,
			Category:  tx.Category,
			Eligible:  tx.Eligible.Neg(),
			Claimed:   tx.Claimed.Neg(),
			Reversed:  tx.Reversed.Neg(),
			Blocked:   tx.Blocked.Neg(),
		}
	}
	return out
}

// vendorBlockReason gates credit on the supplier's registration scheme.
func vendorBlockReason(vendor *domain.Vendor, reverseCharge bool) string {
	switch {
	case vendor.Type == domain.VendorComposition:
		return eligibility.ReasonCompositionVendor
	case vendor.Type == domain.VendorUnregistered && !reverseCharge:
		return eligibility.ReasonUnregisteredVendor
	case !vendor.IsActive || !vendor.RegistrationValid:
		return eligibility.ReasonVendorInactive
	default:
		return ""
	}
}

func businessUse(pct *domain.Money) domain.Money {
	if pct == nil {
		return hundredPct
	}
	return *pct
}
