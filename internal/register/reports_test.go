package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func TestSummarize(t *testing.T) {
	t.Run("rates_are_zero_when_nothing_is_eligible", func(t *testing.T) {
		row, err := NewPeriod(testOwner, "06-2024", "", domain.MoneyZero)
		require.NoError(t, err)

		s := Summarize(row)
		assert.True(t, s.UtilizationRate.IsZero())
		assert.True(t, s.ReversalRate.IsZero())
		assert.True(t, s.BlockageRate.IsZero())
	})

	t.Run("rates_are_percentages_of_eligible", func(t *testing.T) {
		row, err := NewPeriod(testOwner, "06-2024", "", domain.MoneyZero)
		require.NoError(t, err)
		Apply(row, []domain.RegisterTransaction{{
			Category: domain.CategoryInputs,
			Eligible: domain.Rupees("20000"),
			Claimed:  domain.Rupees("15000"),
			Reversed: domain.Rupees("2000"),
			Blocked:  domain.Rupees("5000"),
		}})

		s := Summarize(row)
		assert.True(t, s.UtilizationRate.Equal(domain.Rupees("75")), "utilization = %s", s.UtilizationRate)
		assert.True(t, s.ReversalRate.Equal(domain.Rupees("10")))
		assert.True(t, s.BlockageRate.Equal(domain.Rupees("25")))
	})
}

func breakdownInvoice(vendor, hsn string, taxable, cgst, sgst, igst, eligible, claimed, blocked string) *domain.PurchaseInvoice {
	inv := &domain.PurchaseInvoice{
		VendorGSTIN:   vendor,
		TaxableAmount: domain.Rupees(taxable),
		CGST:          domain.Rupees(cgst),
		SGST:          domain.Rupees(sgst),
		IGST:          domain.Rupees(igst),
		EligibleITC:   domain.Rupees(eligible),
		ClaimedITC:    domain.Rupees(claimed),
		BlockedITC:    domain.Rupees(blocked),
	}
	inv.LineItems = domain.LineItems{{
		HSNSACCode:    hsn,
		TaxableAmount: domain.Rupees(taxable),
		CGST:          domain.Rupees(cgst),
		SGST:          domain.Rupees(sgst),
		IGST:          domain.Rupees(igst),
		Eligibility: &domain.LineEligibility{
			EligibleITC: domain.Rupees(eligible),
			BlockedITC:  domain.Rupees(blocked),
		},
	}}
	return inv
}

func TestVendorBreakdown(t *testing.T) {
	invoices := []*domain.PurchaseInvoice{
		breakdownInvoice("06AAAAA1111A1Z1", "8471", "100000", "9000", "9000", "0", "18000", "18000", "0"),
		breakdownInvoice("06AAAAA1111A1Z1", "8471", "50000", "4500", "4500", "0", "9000", "4500", "0"),
		breakdownInvoice("29BBBBB2222B2Z2", "9983", "20000", "0", "0", "3600", "3600", "3600", "0"),
	}

	rows := VendorBreakdown(invoices)
	require.Len(t, rows, 2)

	// Sorted by eligible descending.
	assert.Equal(t, "06AAAAA1111A1Z1", rows[0].Key)
	assert.Equal(t, 2, rows[0].InvoiceCount)
	assert.True(t, rows[0].TaxableAmount.Equal(domain.Rupees("150000")))
	assert.True(t, rows[0].EligibleITC.Equal(domain.Rupees("27000")))
	assert.True(t, rows[0].ClaimedITC.Equal(domain.Rupees("22500")))
	assert.True(t, rows[0].UtilizationRate.Round(4).Equal(domain.Rupees("83.3333")), "utilization = %s", rows[0].UtilizationRate)

	assert.Equal(t, "29BBBBB2222B2Z2", rows[1].Key)
	assert.Equal(t, 1, rows[1].InvoiceCount)
}

func TestHSNBreakdown(t *testing.T) {
	inv := breakdownInvoice("06AAAAA1111A1Z1", "8471", "100000", "9000", "9000", "0", "18000", "12000", "0")
	// A second line under a different tariff code on the same invoice.
	inv.LineItems = append(inv.LineItems, domain.PurchaseLineItem{
		HSNSACCode:    "9983",
		TaxableAmount: domain.Rupees("10000"),
		CGST:          domain.Rupees("900"),
		SGST:          domain.Rupees("900"),
		Eligibility: &domain.LineEligibility{
			EligibleITC: domain.Rupees("1800"),
			BlockedITC:  domain.MoneyZero,
		},
	})
	inv.EligibleITC = domain.Rupees("19800")
	inv.ClaimedITC = domain.Rupees("9900")

	rows := HSNBreakdown([]*domain.PurchaseInvoice{inv})
	require.Len(t, rows, 2)

	assert.Equal(t, "8471", rows[0].Key)
	assert.True(t, rows[0].EligibleITC.Equal(domain.Rupees("18000")))
	// Claimed attributed pro-rata: 9900 * 18000/19800 = 9000.
	assert.True(t, rows[0].ClaimedITC.Equal(domain.Rupees("9000")), "claimed = %s", rows[0].ClaimedITC)

	assert.Equal(t, "9983", rows[1].Key)
	assert.True(t, rows[1].ClaimedITC.Equal(domain.Rupees("900")))
}

func utilizationRow(t *testing.T, period, eligible, claimed string) *domain.RegisterPeriod {
	t.Helper()
	row, err := NewPeriod(testOwner, period, "", domain.MoneyZero)
	require.NoError(t, err)
	row.EligibleITC = domain.Rupees(eligible)
	row.ClaimedITC = domain.Rupees(claimed)
	Recompute(row)
	return row
}

func TestUtilizationReport(t *testing.T) {
	t.Run("totals_and_average", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "04-2024", "10000", "5000"),
			utilizationRow(t, "05-2024", "10000", "10000"),
		})

		require.Len(t, m.Points, 2)
		assert.True(t, m.TotalEligible.Equal(domain.Rupees("20000")))
		assert.True(t, m.TotalClaimed.Equal(domain.Rupees("15000")))
		assert.True(t, m.AverageUtilization.Equal(domain.Rupees("75")))
	})

	t.Run("trend_increasing", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "04-2024", "10000", "5000"),
			utilizationRow(t, "05-2024", "10000", "7000"),
			utilizationRow(t, "06-2024", "10000", "9000"),
		})
		assert.Equal(t, TrendIncreasing, m.Trend)
	})

	t.Run("trend_decreasing", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "04-2024", "10000", "9000"),
			utilizationRow(t, "05-2024", "10000", "7000"),
			utilizationRow(t, "06-2024", "10000", "5000"),
		})
		assert.Equal(t, TrendDecreasing, m.Trend)
	})

	t.Run("trend_tie_is_stable", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "04-2024", "10000", "5000"),
			utilizationRow(t, "05-2024", "10000", "9000"),
			utilizationRow(t, "06-2024", "10000", "7000"),
		})
		assert.Equal(t, TrendStable, m.Trend)
	})

	t.Run("trend_looks_at_the_last_three_points_only", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "03-2024", "10000", "10000"),
			utilizationRow(t, "04-2024", "10000", "1000"),
			utilizationRow(t, "05-2024", "10000", "2000"),
			utilizationRow(t, "06-2024", "10000", "3000"),
		})
		assert.Equal(t, TrendIncreasing, m.Trend)
	})

	t.Run("single_point_is_stable", func(t *testing.T) {
		m := UtilizationReport([]*domain.RegisterPeriod{
			utilizationRow(t, "04-2024", "10000", "5000"),
		})
		assert.Equal(t, TrendStable, m.Trend)
	})
}
