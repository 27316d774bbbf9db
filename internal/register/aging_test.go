package register

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func agedInvoice(number string, ageDays int, asOf time.Time, eligible string, status domain.PaymentStatus) *domain.PurchaseInvoice {
	return &domain.PurchaseInvoice{
		ID:            uuid.New(),
		InvoiceNumber: number,
		VendorGSTIN:   testOwner,
		InvoiceDate:   asOf.AddDate(0, 0, -ageDays),
		EligibleITC:   domain.Rupees(eligible),
		PaymentStatus: status,
	}
}

func TestAge(t *testing.T) {
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	const threshold = 180

	t.Run("buckets_by_invoice_age", func(t *testing.T) {
		report := Age([]*domain.PurchaseInvoice{
			agedInvoice("A", 10, asOf, "1000", domain.PaymentPaid),
			agedInvoice("B", 30, asOf, "2000", domain.PaymentPaid),
			agedInvoice("C", 45, asOf, "3000", domain.PaymentPaid),
			agedInvoice("D", 90, asOf, "4000", domain.PaymentPaid),
			agedInvoice("E", 120, asOf, "5000", domain.PaymentPaid),
			agedInvoice("F", 200, asOf, "6000", domain.PaymentPaid),
			agedInvoice("G", 400, asOf, "7000", domain.PaymentPaid),
		}, asOf, threshold)

		require.Len(t, report.Buckets, 6)
		assert.Equal(t, "0-30", report.Buckets[0].Label)
		assert.Equal(t, 2, report.Buckets[0].InvoiceCount)
		assert.True(t, report.Buckets[0].EligibleITC.Equal(domain.Rupees("3000")))
		assert.Equal(t, 1, report.Buckets[1].InvoiceCount)
		assert.Equal(t, 1, report.Buckets[2].InvoiceCount)
		assert.Equal(t, 1, report.Buckets[3].InvoiceCount)
		assert.Equal(t, 1, report.Buckets[4].InvoiceCount)
		assert.Equal(t, ">365", report.Buckets[5].Label)
		assert.Equal(t, 1, report.Buckets[5].InvoiceCount)
		assert.Empty(t, report.Alerts, "paid invoices never alert")
	})

	t.Run("aged_unpaid_invoice_alerts_once", func(t *testing.T) {
		inv := agedInvoice("INV-9", 200, asOf, "6000", domain.PaymentUnpaid)
		report := Age([]*domain.PurchaseInvoice{inv}, asOf, threshold)

		require.Len(t, report.Alerts, 1)
		alert := report.Alerts[0]
		assert.Equal(t, AlertReversalRequired, alert.Type)
		assert.Equal(t, inv.ID, alert.InvoiceID)
		assert.Equal(t, 200, alert.AgeDays)
		assert.True(t, alert.EligibleITC.Equal(domain.Rupees("6000")))

		assert.Equal(t, 1, report.Buckets[4].InvoiceCount, "alerting invoice still lands in its bucket")
	})

	t.Run("unpaid_inside_the_threshold_does_not_alert", func(t *testing.T) {
		report := Age([]*domain.PurchaseInvoice{
			agedInvoice("INV-10", 180, asOf, "6000", domain.PaymentUnpaid),
		}, asOf, threshold)
		assert.Empty(t, report.Alerts)
	})

	t.Run("partial_payment_does_not_alert", func(t *testing.T) {
		report := Age([]*domain.PurchaseInvoice{
			agedInvoice("INV-11", 300, asOf, "6000", domain.PaymentPartial),
		}, asOf, threshold)
		assert.Empty(t, report.Alerts)
	})

	t.Run("invoices_without_eligible_credit_are_skipped", func(t *testing.T) {
		report := Age([]*domain.PurchaseInvoice{
			agedInvoice("INV-12", 300, asOf, "0", domain.PaymentUnpaid),
		}, asOf, threshold)
		for _, b := range report.Buckets {
			assert.Zero(t, b.InvoiceCount)
		}
		assert.Empty(t, report.Alerts)
	})

	t.Run("future_dated_invoice_counts_as_age_zero", func(t *testing.T) {
		report := Age([]*domain.PurchaseInvoice{
			agedInvoice("INV-13", -5, asOf, "1000", domain.PaymentUnpaid),
		}, asOf, threshold)
		assert.Equal(t, 1, report.Buckets[0].InvoiceCount)
	})
}
