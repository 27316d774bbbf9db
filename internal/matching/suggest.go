package matching

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

// Similarity weights for advisory candidate ranking.
const (
	scoreGSTINExact       = 50
	scoreGSTINStatePrefix = 10
	scoreNumberExact      = 30
	scoreNumberSubstring  = 15
	scoreDateNear         = 10
	scoreDateFar          = 5
	scoreAmountNear       = 10
	scoreAmountFar        = 5

	dateNearDays = 3
	dateFarDays  = 7
)

var (
	amountNearPct = domain.Rupees("1")
	amountFarPct  = domain.Rupees("5")
)

// PotentialMatch is one ranked candidate for manual matching.
type PotentialMatch struct {
	Invoice *domain.PurchaseInvoice `json:"invoice"`
	Score   int                     `json:"score"`
}

// FindPotentialMatches ranks candidate invoices by similarity to a
// reference entry for human-assisted matching. The ranking is advisory
// only; it never feeds the automatic partitioning. Ties keep input order.
func FindPotentialMatches(ref *domain.ReferenceLedgerEntry, candidates []*domain.PurchaseInvoice, limit int) []PotentialMatch {
	refGSTIN := NormalizeGSTIN(ref.VendorGSTIN)
	refNumber := NormalizeInvoiceNumber(ref.InvoiceNumber)

	scored := make([]PotentialMatch, 0, len(candidates))
	for _, inv := range candidates {
		score := similarity(inv, ref, refGSTIN, refNumber)
		if score == 0 {
			continue
		}
		scored = append(scored, PotentialMatch{Invoice: inv, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func similarity(inv *domain.PurchaseInvoice, ref *domain.ReferenceLedgerEntry, refGSTIN, refNumber string) int {
	score := 0

	gstin := NormalizeGSTIN(inv.VendorGSTIN)
	switch {
	case gstin == refGSTIN:
		score += scoreGSTINExact
	case sameStatePrefix(gstin, refGSTIN):
		score += scoreGSTINStatePrefix
	}

	number := NormalizeInvoiceNumber(inv.InvoiceNumber)
	switch {
	case number == refNumber:
		score += scoreNumberExact
	case number != "" && refNumber != "" &&
		(strings.Contains(number, refNumber) || strings.Contains(refNumber, number)):
		score += scoreNumberSubstring
	}

	switch days := daysApart(inv.InvoiceDate, ref.InvoiceDate); {
	case days <= dateNearDays:
		score += scoreDateNear
	case days <= dateFarDays:
		score += scoreDateFar
	}

	switch pct := amountDiffPct(inv.TaxableAmount, ref.TaxableValue); {
	case pct.LessThanOrEqual(amountNearPct):
		score += scoreAmountNear
	case pct.LessThanOrEqual(amountFarPct):
		score += scoreAmountFar
	}

	return score
}

// sameStatePrefix compares the two-digit state code prefix of two GSTINs.
func sameStatePrefix(a, b string) bool {
	return len(a) >= 2 && len(b) >= 2 && a[:2] == b[:2]
}

func amountDiffPct(a, b domain.Money) domain.Money {
	base := a.Abs()
	if base.LessThan(decimal.NewFromInt(1)) {
		base = decimal.NewFromInt(1)
	}
	return a.Sub(b).Abs().Div(base).Mul(decimal.NewFromInt(100))
}
