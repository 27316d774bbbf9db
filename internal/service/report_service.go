package service

import (
	"context"
	"time"

	"gstitc/internal/domain"
	"gstitc/internal/port"
	"gstitc/internal/register"
)

// ReportService defines the derived read-only register reports.
type ReportService interface {
	MonthlySummary(ctx context.Context, ownerGSTIN, periodKey string) (*register.MonthlySummary, error)
	VendorBreakdown(ctx context.Context, ownerGSTIN, periodKey string) ([]register.BreakdownRow, error)
	HSNBreakdown(ctx context.Context, ownerGSTIN, periodKey string) ([]register.BreakdownRow, error)
	UtilizationMetrics(ctx context.Context, ownerGSTIN, fromKey, toKey string) (*register.UtilizationMetrics, error)
	Aging(ctx context.Context, ownerGSTIN string, asOf time.Time) (*register.AgingReport, error)
	Compliance(ctx context.Context, ownerGSTIN, periodKey string, asOf time.Time) (*register.ComplianceStatus, error)
}

type reportService struct {
	invoiceRepo   port.InvoiceRepository
	registerRepo  port.RegisterRepository
	thresholdDays int
}

// NewReportService creates a new ReportService implementation.
// thresholdDays is the unpaid-invoice age past which credit must reverse.
func NewReportService(invoiceRepo port.InvoiceRepository, registerRepo port.RegisterRepository, thresholdDays int) ReportService {
	return &reportService{
		invoiceRepo:   invoiceRepo,
		registerRepo:  registerRepo,
		thresholdDays: thresholdDays,
	}
}

func (s *reportService) MonthlySummary(ctx context.Context, ownerGSTIN, periodKey string) (*register.MonthlySummary, error) {
	row, err := s.registerRepo.Get(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	summary := register.Summarize(row)
	return &summary, nil
}

func (s *reportService) VendorBreakdown(ctx context.Context, ownerGSTIN, periodKey string) ([]register.BreakdownRow, error) {
	invoices, err := s.periodInvoices(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	return register.VendorBreakdown(invoices), nil
}

func (s *reportService) HSNBreakdown(ctx context.Context, ownerGSTIN, periodKey string) ([]register.BreakdownRow, error) {
	invoices, err := s.periodInvoices(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	return register.HSNBreakdown(invoices), nil
}

func (s *reportService) UtilizationMetrics(ctx context.Context, ownerGSTIN, fromKey, toKey string) (*register.UtilizationMetrics, error) {
	if !domain.ValidPeriodKey(fromKey) || !domain.ValidPeriodKey(toKey) {
		return nil, domain.ErrInvalidPeriodKey
	}
	rows, err := s.registerRepo.ListByRange(ctx, ownerGSTIN, fromKey, toKey)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*domain.RegisterPeriod, len(rows))
	for i := range rows {
		ptrs[i] = &rows[i]
	}
	metrics := register.UtilizationReport(ptrs)
	return &metrics, nil
}

func (s *reportService) Aging(ctx context.Context, ownerGSTIN string, asOf time.Time) (*register.AgingReport, error) {
	// Open lower bound: the top aging bucket is unbounded, and the oldest
	// unpaid invoices are exactly the ones the report must surface.
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, ownerGSTIN, time.Time{}, asOf)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*domain.PurchaseInvoice, len(invoices))
	for i := range invoices {
		ptrs[i] = &invoices[i]
	}
	report := register.Age(ptrs, asOf, s.thresholdDays)
	return &report, nil
}

func (s *reportService) Compliance(ctx context.Context, ownerGSTIN, periodKey string, asOf time.Time) (*register.ComplianceStatus, error) {
	row, err := s.registerRepo.Get(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	invoices, err := s.periodInvoices(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	status := register.Compliance(row, invoices, asOf, s.thresholdDays)
	return &status, nil
}

func (s *reportService) periodInvoices(ctx context.Context, ownerGSTIN, periodKey string) ([]*domain.PurchaseInvoice, error) {
	if !domain.ValidPeriodKey(periodKey) {
		return nil, domain.ErrInvalidPeriodKey
	}
	invoices, err := s.invoiceRepo.ListByPeriod(ctx, ownerGSTIN, periodKey)
	if err != nil {
		return nil, err
	}
	ptrs := make([]*domain.PurchaseInvoice, len(invoices))
	for i := range invoices {
		ptrs[i] = &invoices[i]
	}
	return ptrs, nil
}
