package register

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func TestCompliance(t *testing.T) {
	asOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	const threshold = 180

	newRow := func(t *testing.T) *domain.RegisterPeriod {
		t.Helper()
		row, err := NewPeriod(testOwner, "06-2024", "", domain.MoneyZero)
		require.NoError(t, err)
		row.EligibleITC = domain.Rupees("10000")
		row.ClaimedITC = domain.Rupees("10000")
		return row
	}

	t.Run("all_pillars_pass", func(t *testing.T) {
		row := newRow(t)
		row.Reconciled = true

		status := Compliance(row, nil, asOf, threshold)
		assert.True(t, status.Score.Equal(domain.Rupees("100")))
		assert.Equal(t, "compliant", status.Grade)
	})

	t.Run("unreconciled_period_loses_35", func(t *testing.T) {
		row := newRow(t)

		status := Compliance(row, nil, asOf, threshold)
		assert.False(t, status.Reconciled)
		assert.True(t, status.Score.Equal(domain.Rupees("65")))
		assert.Equal(t, "needs_attention", status.Grade)
	})

	t.Run("aged_unpaid_invoices_lose_35", func(t *testing.T) {
		row := newRow(t)
		row.Reconciled = true
		invoices := []*domain.PurchaseInvoice{
			agedInvoice("A", 200, asOf, "1000", domain.PaymentUnpaid),
			agedInvoice("B", 250, asOf, "1000", domain.PaymentUnpaid),
			agedInvoice("C", 250, asOf, "1000", domain.PaymentPaid),
		}

		status := Compliance(row, invoices, asOf, threshold)
		assert.Equal(t, 2, status.AgedUnpaidInvoices)
		assert.False(t, status.NoAgedUnpaid)
		assert.True(t, status.Score.Equal(domain.Rupees("65")))
	})

	t.Run("overclaimed_period_loses_30", func(t *testing.T) {
		row := newRow(t)
		row.Reconciled = true
		row.ClaimedITC = domain.Rupees("10000.01")

		status := Compliance(row, nil, asOf, threshold)
		assert.False(t, status.ClaimWithinLimit)
		assert.True(t, status.Score.Equal(domain.Rupees("70")))
		assert.Equal(t, "needs_attention", status.Grade)
	})

	t.Run("everything_failing_is_at_risk", func(t *testing.T) {
		row := newRow(t)
		row.ClaimedITC = domain.Rupees("20000")
		invoices := []*domain.PurchaseInvoice{
			agedInvoice("A", 200, asOf, "1000", domain.PaymentUnpaid),
		}

		status := Compliance(row, invoices, asOf, threshold)
		assert.True(t, status.Score.IsZero())
		assert.Equal(t, "at_risk", status.Grade)
	})
}
