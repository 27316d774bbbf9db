package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func TestFindPotentialMatches(t *testing.T) {
	gstin := "06AAAAA1111A1Z1"
	ref := refEntry(gstin, "INV-100", testDate(10), "100000", "9000", "9000", "0")

	t.Run("ranks_by_similarity", func(t *testing.T) {
		exact := localInvoice(gstin, "INV-100", testDate(10), "100000", "9000", "9000", "0")
		closeNumber := localInvoice(gstin, "INV-100-A", testDate(20), "50000", "4500", "4500", "0")
		sameState := localInvoice("06ZZZZZ9999Z9Z9", "OTHER-77", testDate(20), "50000", "0", "0", "9000")
		unrelated := localInvoice("29XXXXX8888X8X8", "OTHER-78", testDate(25), "123", "11", "11", "0")

		out := FindPotentialMatches(ref, []*domain.PurchaseInvoice{unrelated, sameState, closeNumber, exact}, 0)

		require.Len(t, out, 3, "no overlapping signal drops the candidate")
		// 50+30+10+10 beats 50+15 beats 10.
		assert.Same(t, exact, out[0].Invoice)
		assert.Equal(t, 100, out[0].Score)
		assert.Same(t, closeNumber, out[1].Invoice)
		assert.Equal(t, 65, out[1].Score)
		assert.Same(t, sameState, out[2].Invoice)
		assert.Equal(t, 10, out[2].Score)
	})

	t.Run("near_date_and_amount_score_higher_than_far", func(t *testing.T) {
		near := localInvoice(gstin, "X-1", testDate(12), "100500", "0", "0", "0")
		far := localInvoice(gstin, "X-2", testDate(16), "104000", "0", "0", "0")

		out := FindPotentialMatches(ref, []*domain.PurchaseInvoice{far, near}, 0)
		require.Len(t, out, 2)
		assert.Same(t, near, out[0].Invoice)
		assert.Equal(t, scoreGSTINExact+scoreDateNear+scoreAmountNear, out[0].Score)
		assert.Same(t, far, out[1].Invoice)
		assert.Equal(t, scoreGSTINExact+scoreDateFar+scoreAmountFar, out[1].Score)
	})

	t.Run("ties_keep_input_order", func(t *testing.T) {
		first := localInvoice(gstin, "X-1", testDate(10), "1", "0", "0", "0")
		second := localInvoice(gstin, "X-2", testDate(10), "1", "0", "0", "0")

		out := FindPotentialMatches(ref, []*domain.PurchaseInvoice{first, second}, 0)
		require.Len(t, out, 2)
		assert.Same(t, first, out[0].Invoice)
		assert.Same(t, second, out[1].Invoice)
	})

	t.Run("limit_truncates", func(t *testing.T) {
		candidates := []*domain.PurchaseInvoice{
			localInvoice(gstin, "INV-100", testDate(10), "100000", "9000", "9000", "0"),
			localInvoice(gstin, "X-1", testDate(10), "100000", "0", "0", "0"),
			localInvoice(gstin, "X-2", testDate(10), "100000", "0", "0", "0"),
		}
		out := FindPotentialMatches(ref, candidates, 2)
		assert.Len(t, out, 2)
	})
}
