package register

import (
	"time"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

// Compliance pillar weights. The three pillars are scored independently
// and combined into a weighted overall score out of 100.
var (
	weightReconciled   = decimal.NewFromInt(35)
	weightAgingClean   = decimal.NewFromInt(35)
	weightClaimBounded = decimal.NewFromInt(30)
)

// ComplianceStatus grades one register period across its three pillars.
type ComplianceStatus struct {
	PeriodKey          string       `json:"period_key"`
	Reconciled         bool         `json:"reconciled"`
	NoAgedUnpaid       bool         `json:"no_aged_unpaid"`
	ClaimWithinLimit   bool         `json:"claim_within_limit"`
	AgedUnpaidInvoices int          `json:"aged_unpaid_invoices"`
	Score              domain.Money `json:"score"`
	Grade              string       `json:"grade"`
}

// Compliance scores a period: reconciliation done, no unpaid invoices aged
// past thresholdDays, and claimed credit within the eligible amount.
func Compliance(row *domain.RegisterPeriod, invoices []*domain.PurchaseInvoice, asOf time.Time, thresholdDays int) ComplianceStatus {
	status := ComplianceStatus{
		PeriodKey:        row.PeriodKey,
		Reconciled:       row.Reconciled,
		ClaimWithinLimit: row.ClaimedITC.LessThanOrEqual(row.EligibleITC),
	}

	for _, inv := range invoices {
		if inv.PaymentStatus != domain.PaymentUnpaid {
			continue
		}
		days := int(asOf.Sub(inv.InvoiceDate).Hours() / 24)
		if days > thresholdDays {
			status.AgedUnpaidInvoices++
		}
	}
	status.NoAgedUnpaid = status.AgedUnpaidInvoices == 0

	score := domain.MoneyZero
	if status.Reconciled {
		score = score.Add(weightReconciled)
	}
	if status.NoAgedUnpaid {
		score = score.Add(weightAgingClean)
	}
	if status.ClaimWithinLimit {
		score = score.Add(weightClaimBounded)
	}
	status.Score = score
	status.Grade = grade(score)
	return status
}

func grade(score domain.Money) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return "compliant"
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return "needs_attention"
	default:
		return "at_risk"
	}
}
