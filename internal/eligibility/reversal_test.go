package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func TestCalculateReversal(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("non_payment_accrues_simple_interest_past_grace", func(t *testing.T) {
		// Invoice 2024-01-10, grace ends 2024-07-08; as of 2024-10-08 three
		// whole months have elapsed. 10000 * 18% * 3/12 = 450.
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount: domain.Rupees("10000"),
			Reason:         domain.ReversalNonPayment,
			InvoiceDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			AsOf:           time.Date(2024, 10, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.True(t, rev.Amount.Equal(domain.Rupees("10000")))
		assert.True(t, rev.Interest.Equal(domain.Rupees("450")), "interest = %s", rev.Interest)
		assert.True(t, rev.Total.Equal(domain.Rupees("10450")))
	})

	t.Run("non_payment_within_grace_has_no_interest", func(t *testing.T) {
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount: domain.Rupees("10000"),
			Reason:         domain.ReversalNonPayment,
			InvoiceDate:    time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			AsOf:           time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		assert.True(t, rev.Amount.Equal(domain.Rupees("10000")))
		assert.True(t, rev.Interest.IsZero())
	})

	t.Run("goods_lost_reverses_the_lost_share", func(t *testing.T) {
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount: domain.Rupees("10000"),
			Reason:         domain.ReversalGoodsLost,
			LossPct:        domain.Rupees("40"),
		})
		require.NoError(t, err)
		assert.True(t, rev.Amount.Equal(domain.Rupees("4000")))
	})

	t.Run("personal_use_reverses_the_personal_share", func(t *testing.T) {
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount: domain.Rupees("10000"),
			Reason:         domain.ReversalPersonalUse,
			PersonalUsePct: domain.Rupees("25"),
		})
		require.NoError(t, err)
		assert.True(t, rev.Amount.Equal(domain.Rupees("2500")))
	})

	t.Run("credit_note_is_capped_at_the_original_claim", func(t *testing.T) {
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount:   domain.Rupees("10000"),
			Reason:           domain.ReversalCreditNote,
			CreditNoteAmount: domain.Rupees("12000"),
		})
		require.NoError(t, err)
		assert.True(t, rev.Amount.Equal(domain.Rupees("10000")))

		rev, err = engine.CalculateReversal(ReversalInput{
			OriginalAmount:   domain.Rupees("10000"),
			Reason:           domain.ReversalCreditNote,
			CreditNoteAmount: domain.Rupees("3000"),
		})
		require.NoError(t, err)
		assert.True(t, rev.Amount.Equal(domain.Rupees("3000")))
	})

	t.Run("exempt_supply_increase_reverses_proportionally", func(t *testing.T) {
		rev, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount:    domain.Rupees("10000"),
			Reason:            domain.ReversalExemptSupply,
			ExemptIncreasePct: domain.Rupees("10"),
		})
		require.NoError(t, err)
		assert.True(t, rev.Amount.Equal(domain.Rupees("1000")))
	})

	t.Run("unknown_reason_errors", func(t *testing.T) {
		_, err := engine.CalculateReversal(ReversalInput{
			OriginalAmount: domain.Rupees("10000"),
			Reason:         "made_up",
		})
		assert.Error(t, err)
	})
}
