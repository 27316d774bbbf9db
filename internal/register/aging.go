package register

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"gstitc/internal/domain"
)

// AlertReversalRequired flags an unpaid invoice whose age crossed the
// statutory non-payment threshold.
const AlertReversalRequired = "REVERSAL_REQUIRED"

// agingBuckets are the day boundaries, inclusive upper bound per bucket.
var agingBuckets = []struct {
	label string
	max   int
}{
	{"0-30", 30},
	{"31-60", 60},
	{"61-90", 90},
	{"91-180", 180},
	{"181-365", 365},
	{">365", 1<<31 - 1},
}

// AgingBucket holds the outstanding eligible credit whose invoices fall in
// one age band.
type AgingBucket struct {
	Label        string       `json:"label"`
	InvoiceCount int          `json:"invoice_count"`
	EligibleITC  domain.Money `json:"eligible_itc"`
}

// AgingAlert names one invoice that demands action.
type AgingAlert struct {
	Type          string       `json:"type"`
	InvoiceID     uuid.UUID    `json:"invoice_id"`
	InvoiceNumber string       `json:"invoice_number"`
	VendorGSTIN   string       `json:"vendor_gstin"`
	AgeDays       int          `json:"age_days"`
	EligibleITC   domain.Money `json:"eligible_itc"`
	Message       string       `json:"message"`
}

// AgingReport buckets outstanding eligible credit by invoice age.
type AgingReport struct {
	AsOf    time.Time     `json:"as_of"`
	Buckets []AgingBucket `json:"buckets"`
	Alerts  []AgingAlert  `json:"alerts"`
}

// Age buckets invoices with eligible credit by days elapsed since their
// invoice date. Unpaid invoices older than thresholdDays each produce one
// reversal-required alert; partial and fully paid invoices never alert.
func Age(invoices []*domain.PurchaseInvoice, asOf time.Time, thresholdDays int) AgingReport {
	report := AgingReport{AsOf: asOf}
	report.Buckets = make([]AgingBucket, len(agingBuckets))
	for i, b := range agingBuckets {
		report.Buckets[i] = AgingBucket{Label: b.label, EligibleITC: domain.MoneyZero}
	}

	for _, inv := range invoices {
		if !inv.EligibleITC.IsPositive() {
			continue
		}
		days := int(asOf.Sub(inv.InvoiceDate).Hours() / 24)
		if days < 0 {
			days = 0
		}
		for i, b := range agingBuckets {
			if days <= b.max {
				report.Buckets[i].InvoiceCount++
				report.Buckets[i].EligibleITC = report.Buckets[i].EligibleITC.Add(inv.EligibleITC)
				break
			}
		}
		if inv.PaymentStatus == domain.PaymentUnpaid && days > thresholdDays {
			report.Alerts = append(report.Alerts, AgingAlert{
				Type:          AlertReversalRequired,
				InvoiceID:     inv.ID,
				InvoiceNumber: inv.InvoiceNumber,
				VendorGSTIN:   inv.VendorGSTIN,
				AgeDays:       days,
				EligibleITC:   inv.EligibleITC,
				Message: fmt.Sprintf("invoice %s unpaid for %d days, beyond the %d-day limit; reverse claimed credit with interest",
					inv.InvoiceNumber, days, thresholdDays),
			})
		}
	}
	return report
}
