package register

import (
	"sort"

	"gstitc/internal/domain"
)

// MonthlySummary is the register row plus its derived rates. Each rate is
// claimed, reversed, or blocked over eligible, expressed as a percentage,
// and 0 when eligible is 0.
type MonthlySummary struct {
	OwnerGSTIN       string       `json:"owner_gstin"`
	PeriodKey        string       `json:"period_key"`
	FinancialYear    string       `json:"financial_year"`
	OpeningBalance   domain.Money `json:"opening_balance"`
	EligibleITC      domain.Money `json:"eligible_itc"`
	ClaimedITC       domain.Money `json:"claimed_itc"`
	ReversedITC      domain.Money `json:"reversed_itc"`
	BlockedITC       domain.Money `json:"blocked_itc"`
	InputsITC        domain.Money `json:"inputs_itc"`
	CapitalGoodsITC  domain.Money `json:"capital_goods_itc"`
	InputServicesITC domain.Money `json:"input_services_itc"`
	ClosingBalance   domain.Money `json:"closing_balance"`
	Reconciled       bool         `json:"reconciled"`
	UtilizationRate  domain.Money `json:"utilization_rate"`
	ReversalRate     domain.Money `json:"reversal_rate"`
	BlockageRate     domain.Money `json:"blockage_rate"`
}

// Summarize derives the monthly summary for one register row.
func Summarize(row *domain.RegisterPeriod) MonthlySummary {
	return MonthlySummary{
		OwnerGSTIN:       row.OwnerGSTIN,
		PeriodKey:        row.PeriodKey,
		FinancialYear:    row.FinancialYear,
		OpeningBalance:   row.OpeningBalance,
		EligibleITC:      row.EligibleITC,
		ClaimedITC:       row.ClaimedITC,
		ReversedITC:      row.ReversedITC,
		BlockedITC:       row.BlockedITC,
		InputsITC:        row.InputsITC,
		CapitalGoodsITC:  row.CapitalGoodsITC,
		InputServicesITC: row.InputServicesITC,
		ClosingBalance:   row.ClosingBalance,
		Reconciled:       row.Reconciled,
		UtilizationRate:  rate(row.ClaimedITC, row.EligibleITC),
		ReversalRate:     rate(row.ReversedITC, row.EligibleITC),
		BlockageRate:     rate(row.BlockedITC, row.EligibleITC),
	}
}

// BreakdownRow is one group in a vendor-wise or tariff-code-wise breakdown.
type BreakdownRow struct {
	Key             string       `json:"key"`
	InvoiceCount    int          `json:"invoice_count"`
	TaxableAmount   domain.Money `json:"taxable_amount"`
	TotalITC        domain.Money `json:"total_itc"`
	EligibleITC     domain.Money `json:"eligible_itc"`
	ClaimedITC      domain.Money `json:"claimed_itc"`
	BlockedITC      domain.Money `json:"blocked_itc"`
	UtilizationRate domain.Money `json:"utilization_rate"`
}

// VendorBreakdown groups invoices by supplier GSTIN, with a per-group
// utilization rate (claimed over eligible). Rows come back sorted by
// eligible ITC descending, ties by key.
func VendorBreakdown(invoices []*domain.PurchaseInvoice) []BreakdownRow {
	return breakdown(invoices, func(inv *domain.PurchaseInvoice, add func(key string, taxable, itc, eligible, claimed, blocked domain.Money)) {
		add(inv.VendorGSTIN, inv.TaxableAmount, inv.TotalITC(), inv.EligibleITC, inv.ClaimedITC, inv.BlockedITC)
	})
}

// HSNBreakdown groups invoice line items by tariff code. Line-level claimed
// credit is not tracked, so claimed is attributed pro-rata by the line's
// share of the invoice's eligible credit.
func HSNBreakdown(invoices []*domain.PurchaseInvoice) []BreakdownRow {
	return breakdown(invoices, func(inv *domain.PurchaseInvoice, add func(key string, taxable, itc, eligible, claimed, blocked domain.Money)) {
		for _, li := range inv.LineItems {
			eligible, blocked := domain.MoneyZero, domain.MoneyZero
			if li.Eligibility != nil {
				eligible = li.Eligibility.EligibleITC
				blocked = li.Eligibility.BlockedITC
			}
			claimed := domain.MoneyZero
			if inv.EligibleITC.IsPositive() {
				claimed = inv.ClaimedITC.Mul(eligible).Div(inv.EligibleITC)
			}
			add(li.HSNSACCode, li.TaxableAmount, li.TotalTax(), eligible, claimed, blocked)
		}
	})
}

func breakdown(invoices []*domain.PurchaseInvoice, visit func(*domain.PurchaseInvoice, func(string, domain.Money, domain.Money, domain.Money, domain.Money, domain.Money))) []BreakdownRow {
	groups := map[string]*BreakdownRow{}
	counted := map[string]bool{}

	for _, inv := range invoices {
		for k := range counted {
			delete(counted, k)
		}
		visit(inv, func(key string, taxable, itc, eligible, claimed, blocked domain.Money) {
			row, ok := groups[key]
			if !ok {
				row = &BreakdownRow{
					Key:           key,
					TaxableAmount: domain.MoneyZero,
					TotalITC:      domain.MoneyZero,
					EligibleITC:   domain.MoneyZero,
					ClaimedITC:    domain.MoneyZero,
					BlockedITC:    domain.MoneyZero,
				}
				groups[key] = row
			}
			if !counted[key] {
				row.InvoiceCount++
				counted[key] = true
			}
			row.TaxableAmount = row.TaxableAmount.Add(taxable)
			row.TotalITC = row.TotalITC.Add(itc)
			row.EligibleITC = row.EligibleITC.Add(eligible)
			row.ClaimedITC = row.ClaimedITC.Add(claimed)
			row.BlockedITC = row.BlockedITC.Add(blocked)
		})
	}

	rows := make([]BreakdownRow, 0, len(groups))
	for _, row := range groups {
		row.UtilizationRate = rate(row.ClaimedITC, row.EligibleITC)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].EligibleITC.Equal(rows[j].EligibleITC) {
			return rows[i].EligibleITC.GreaterThan(rows[j].EligibleITC)
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// Trend classifies the recent direction of utilization.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// UtilizationPoint is one period's utilization rate within a metrics run.
type UtilizationPoint struct {
	PeriodKey       string       `json:"period_key"`
	EligibleITC     domain.Money `json:"eligible_itc"`
	ClaimedITC      domain.Money `json:"claimed_itc"`
	UtilizationRate domain.Money `json:"utilization_rate"`
}

// UtilizationMetrics is the rolling utilization report across a period range.
type UtilizationMetrics struct {
	Points             []UtilizationPoint `json:"points"`
	TotalEligible      domain.Money       `json:"total_eligible"`
	TotalClaimed       domain.Money       `json:"total_claimed"`
	AverageUtilization domain.Money       `json:"average_utilization"`
	Trend              Trend              `json:"trend"`
}

// UtilizationReport computes the rolling metrics over register rows already
// ordered by period. The trend compares the last up to three points
// pairwise; the majority direction wins and ties come back stable.
func UtilizationReport(rows []*domain.RegisterPeriod) UtilizationMetrics {
	m := UtilizationMetrics{
		TotalEligible: domain.MoneyZero,
		TotalClaimed:  domain.MoneyZero,
		Trend:         TrendStable,
	}
	for _, row := range rows {
		m.Points = append(m.Points, UtilizationPoint{
			PeriodKey:       row.PeriodKey,
			EligibleITC:     row.EligibleITC,
			ClaimedITC:      row.ClaimedITC,
			UtilizationRate: rate(row.ClaimedITC, row.EligibleITC),
		})
		m.TotalEligible = m.TotalEligible.Add(row.EligibleITC)
		m.TotalClaimed = m.TotalClaimed.Add(row.ClaimedITC)
	}
	m.AverageUtilization = rate(m.TotalClaimed, m.TotalEligible)
	m.Trend = classifyTrend(m.Points)
	return m
}

func classifyTrend(points []UtilizationPoint) Trend {
	window := points
	if len(window) > 3 {
		window = window[len(window)-3:]
	}
	if len(window) < 2 {
		return TrendStable
	}
	ups, downs := 0, 0
	for i := 1; i < len(window); i++ {
		switch {
		case window[i].UtilizationRate.GreaterThan(window[i-1].UtilizationRate):
			ups++
		case window[i].UtilizationRate.LessThan(window[i-1].UtilizationRate):
			downs++
		}
	}
	switch {
	case ups > downs:
		return TrendIncreasing
	case downs > ups:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// rate returns numerator/denominator as a percentage, 0 when the
// denominator is 0.
func rate(num, den domain.Money) domain.Money {
	if den.IsZero() {
		return domain.MoneyZero
	}
	return num.Div(den).Mul(hundred)
}
