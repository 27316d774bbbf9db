package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
	"gstitc/internal/register"
	"gstitc/mocks"
)

func TestReportServiceAging(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	invoiceRepo := new(mocks.MockInvoiceRepo)
	registerRepo := new(mocks.MockRegisterRepo)
	svc := NewReportService(invoiceRepo, registerRepo, 180)

	ancient := domain.PurchaseInvoice{
		ID:            uuid.New(),
		OwnerGSTIN:    testOwner,
		VendorGSTIN:   testVendor,
		InvoiceNumber: "INV-OLD",
		InvoiceDate:   asOf.AddDate(-4, 0, 0),
		EligibleITC:   domain.Rupees("9000"),
		PaymentStatus: domain.PaymentUnpaid,
	}
	recent := domain.PurchaseInvoice{
		ID:            uuid.New(),
		OwnerGSTIN:    testOwner,
		VendorGSTIN:   testVendor,
		InvoiceNumber: "INV-NEW",
		InvoiceDate:   asOf.AddDate(0, 0, -10),
		EligibleITC:   domain.Rupees("1800"),
		PaymentStatus: domain.PaymentPaid,
	}

	// The query window has no lower bound; a four-year-old unpaid invoice
	// must still reach the report.
	invoiceRepo.On("ListByDateRange", ctx, testOwner, time.Time{}, asOf).
		Return([]domain.PurchaseInvoice{ancient, recent}, nil)

	report, err := svc.Aging(ctx, testOwner, asOf)
	require.NoError(t, err)

	require.Len(t, report.Buckets, 6)
	oldest := report.Buckets[5]
	assert.Equal(t, ">365", oldest.Label)
	assert.Equal(t, 1, oldest.InvoiceCount)
	assert.True(t, oldest.EligibleITC.Equal(domain.Rupees("9000")))

	require.Len(t, report.Alerts, 1)
	assert.Equal(t, register.AlertReversalRequired, report.Alerts[0].Type)
	assert.Equal(t, ancient.ID, report.Alerts[0].InvoiceID)

	invoiceRepo.AssertExpectations(t)
}
