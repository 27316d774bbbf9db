package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"gstitc/internal/domain"
	"gstitc/internal/matching"
	"gstitc/internal/port"
)

// ReconciliationService defines the GSTR-2B reconciliation contract.
type ReconciliationService interface {
	// Reconcile runs the matching for one (owner, period), persists each
	// invoice's matching status, and marks the register row reconciled.
	// Re-running with the same inputs reproduces the same partitioning; it
	// never re-applies amounts to the register.
	Reconcile(ctx context.Context, ownerGSTIN, periodKey string) (*matching.ReconciliationResult, error)
	// PotentialMatches ranks local candidates for one unmatched reference
	// entry. Advisory only.
	PotentialMatches(ctx context.Context, ownerGSTIN, periodKey, vendorGSTIN, invoiceNumber string, limit int) ([]matching.PotentialMatch, error)
	ImportReference(ctx context.Context, ownerGSTIN, periodKey string, entries []domain.ReferenceLedgerEntry) error
}

type reconciliationService struct {
	invoiceRepo   port.InvoiceRepository
	referenceRepo port.ReferenceLedgerRepository
	registerSvc   RegisterService
	cfg           matching.Config
}

// NewReconciliationService creates a new ReconciliationService implementation.
func NewReconciliationService(
	invoiceRepo port.InvoiceRepository,
	referenceRepo port.ReferenceLedgerRepository,
	registerSvc RegisterService,
	cfg matching.Config,
) ReconciliationService {
	return &reconciliationService{
		invoiceRepo:   invoiceRepo,
		referenceRepo: referenceRepo,
		registerSvc:   registerSvc,
		cfg:           cfg,
	}
}

func (s *reconciliationService) Reconcile(ctx context.Context, ownerGSTIN, periodKey string) (*matching.ReconciliationResult, error) {
	if !domain.ValidPeriodKey(periodKey) {
		return nil, domain.ErrInvalidPeriodKey
	}

	invoices, err := s.invoiceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	entries, err := s.referenceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}

	locals := make([]*domain.PurchaseInvoice, len(invoices))
	for i := range invoices {
		locals[i] = &invoices[i]
	}
	refs := make([]*domain.ReferenceLedgerEntry, len(entries))
	for i := range entries {
		refs[i] = &entries[i]
	}

	result := matching.Reconcile(locals, refs, s.cfg)

	for _, pair := range result.Matched {
		conf := pair.Result.Confidence
		if err := s.invoiceRepo.UpdateMatching(ctx, ownerGSTIN, pair.Local.ID, domain.MatchingMatched, &conf); err != nil {
			return nil, err
		}
	}
	for _, pair := range result.Mismatched {
		conf := pair.Result.Confidence
		if err := s.invoiceRepo.UpdateMatching(ctx, ownerGSTIN, pair.Local.ID, domain.MatchingMismatch, &conf); err != nil {
			return nil, err
		}
	}
	for _, inv := range result.LocalOnly {
		if err := s.invoiceRepo.UpdateMatching(ctx, ownerGSTIN, inv.ID, domain.MatchingNotFound, nil); err != nil {
			return nil, err
		}
	}

	if _, err := s.registerSvc.MarkReconciled(ctx, ownerGSTIN, periodKey); err != nil {
		return nil, err
	}

	log.Info().
		Str("owner_gstin", ownerGSTIN).
		Str("period", periodKey).
		Int("matched", result.Summary.Matched.Count).
		Int("mismatched", result.Summary.Mismatched.Count).
		Int("local_only", result.Summary.LocalOnly.Count).
		Int("reference_only", result.Summary.ReferenceOnly.Count).
		Msg("reconciliation run complete")
	return result, nil
}

func (s *reconciliationService) PotentialMatches(ctx context.Context, ownerGSTIN, periodKey, vendorGSTIN, invoiceNumber string, limit int) ([]matching.PotentialMatch, error) {
	entries, err := s.referenceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	var ref *domain.ReferenceLedgerEntry
	for i := range entries {
		if matching.NormalizeGSTIN(entries[i].VendorGSTIN) == matching.NormalizeGSTIN(vendorGSTIN) &&
			matching.NormalizeInvoiceNumber(entries[i].InvoiceNumber) == matching.NormalizeInvoiceNumber(invoiceNumber) {
			ref = &entries[i]
			break
		}
	}
	if ref == nil {
		return nil, domain.ErrNotFound
	}

	invoices, err := s.invoiceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	candidates := make([]*domain.PurchaseInvoice, len(invoices))
	for i := range invoices {
		candidates[i] = &invoices[i]
	}
	return matching.FindPotentialMatches(ref, candidates, limit), nil
}

func (s *reconciliationService) ImportReference(ctx context.Context, ownerGSTIN, periodKey string, entries []domain.ReferenceLedgerEntry) error {
	if !domain.ValidPeriodKey(periodKey) {
		return domain.ErrInvalidPeriodKey
	}
	return s.referenceRepo.ReplacePeriod(ctx, ownerGSTIN, periodKey, entries)
}
