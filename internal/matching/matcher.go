package matching

import (
	"time"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

// Config carries the comparison tolerances. An amount difference is within
// tolerance when it does not exceed the absolute floor OR its share of the
// base does not exceed the percentage.
type Config struct {
	DateToleranceDays  int
	AmountTolerancePct domain.Money
	AmountToleranceAbs domain.Money
}

// DefaultConfig is 3 days, 1%, and one rupee.
func DefaultConfig() Config {
	return Config{
		DateToleranceDays:  3,
		AmountTolerancePct: domain.Rupees("1"),
		AmountToleranceAbs: domain.Rupees("1.00"),
	}
}

// Status is the outcome of a pairwise match test.
type Status string

const (
	StatusMatched        Status = "matched"
	StatusAmountMismatch Status = "amount_mismatch"
	StatusNoMatch        Status = "no_match"
)

// Confidence scoring constants.
const (
	confidenceFull      = 100
	confidenceFloor     = 50
	datePenaltyPerDay   = 2
	toleratedDiffDeduct = 2
	mismatchPenalty     = 20
)

// MismatchDetail holds the signed differences (reference minus local) for
// each compared amount.
type MismatchDetail struct {
	TaxableDiff domain.Money `json:"taxable_diff"`
	CGSTDiff    domain.Money `json:"cgst_diff"`
	SGSTDiff    domain.Money `json:"sgst_diff"`
	IGSTDiff    domain.Money `json:"igst_diff"`
}

// MatchResult is the outcome of comparing one local invoice against one
// reference entry.
type MatchResult struct {
	Status     Status          `json:"status"`
	Confidence int             `json:"confidence"`
	Detail     *MismatchDetail `json:"detail,omitempty"`
}

// MatchedPair couples a local invoice with the reference entry it consumed.
type MatchedPair struct {
	Local     *domain.PurchaseInvoice      `json:"local"`
	Reference *domain.ReferenceLedgerEntry `json:"reference"`
	Result    MatchResult                  `json:"result"`
}

// PartitionTotals summarizes one partition: how many records landed there
// and how much ITC (summed tax components) they carry.
type PartitionTotals struct {
	Count int          `json:"count"`
	ITC   domain.Money `json:"itc"`
}

// Summary aggregates all four partitions.
type Summary struct {
	Matched       PartitionTotals `json:"matched"`
	Mismatched    PartitionTotals `json:"mismatched"`
	LocalOnly     PartitionTotals `json:"local_only"`
	ReferenceOnly PartitionTotals `json:"reference_only"`
}

// ReconciliationResult partitions every input into exactly one bucket:
// matched pair, mismatched pair, local-only, or reference-only.
type ReconciliationResult struct {
	Matched       []MatchedPair                  `json:"matched"`
	Mismatched    []MatchedPair                  `json:"mismatched"`
	LocalOnly     []*domain.PurchaseInvoice      `json:"local_only"`
	ReferenceOnly []*domain.ReferenceLedgerEntry `json:"reference_only"`
	Summary       Summary                        `json:"summary"`
}

// MatchOne compares one local invoice against one reference entry. Identity
// (GSTIN, then invoice number) gates the comparison: a mismatched identity
// is NoMatch at confidence 0 regardless of the other fields. Within
// identity, the date tolerance gates next, then each amount is tested under
// the tolerance rule.
func MatchOne(local *domain.PurchaseInvoice, ref *domain.ReferenceLedgerEntry, cfg Config) MatchResult {
	if NormalizeGSTIN(local.VendorGSTIN) != NormalizeGSTIN(ref.VendorGSTIN) {
		return MatchResult{Status: StatusNoMatch}
	}
	if NormalizeInvoiceNumber(local.InvoiceNumber) != NormalizeInvoiceNumber(ref.InvoiceNumber) {
		return MatchResult{Status: StatusNoMatch}
	}

	days := daysApart(local.InvoiceDate, ref.InvoiceDate)
	if days > cfg.DateToleranceDays {
		return MatchResult{Status: StatusNoMatch}
	}
	confidence := confidenceFull - days*datePenaltyPerDay

	detail := MismatchDetail{
		TaxableDiff: ref.TaxableValue.Sub(local.TaxableAmount),
		CGSTDiff:    ref.CGST.Sub(local.CGST),
		SGSTDiff:    ref.SGST.Sub(local.SGST),
		IGSTDiff:    ref.IGST.Sub(local.IGST),
	}

	outside := false
	for _, cmp := range []struct {
		base domain.Money
		diff domain.Money
	}{
		{local.TaxableAmount, detail.TaxableDiff},
		{local.CGST, detail.CGSTDiff},
		{local.SGST, detail.SGSTDiff},
		{local.IGST, detail.IGSTDiff},
	} {
		switch {
		case cmp.diff.IsZero():
		case withinTolerance(cmp.base, cmp.diff, cfg):
			confidence -= toleratedDiffDeduct
		default:
			outside = true
		}
	}

	if outside {
		confidence -= mismatchPenalty
		return MatchResult{
			Status:     StatusAmountMismatch,
			Confidence: clampConfidence(confidence),
			Detail:     &detail,
		}
	}

	res := MatchResult{Status: StatusMatched, Confidence: clampConfidence(confidence)}
	if !detail.TaxableDiff.IsZero() || !detail.CGSTDiff.IsZero() ||
		!detail.SGSTDiff.IsZero() || !detail.IGSTDiff.IsZero() {
		res.Detail = &detail
	}
	return res
}

// Reconcile pairs local invoices against reference entries using a greedy
// one-to-one assignment: for each local invoice, in input order, the
// highest-confidence candidate among the not-yet-consumed reference entries
// wins, with ties going to the earliest reference entry. Greedy assignment
// is deliberate; near-unique invoice numbers per vendor make a globally
// optimal matching unnecessary, and switching to one would change
// observable output.
func Reconcile(locals []*domain.PurchaseInvoice, refs []*domain.ReferenceLedgerEntry, cfg Config) *ReconciliationResult {
	result := &ReconciliationResult{}
	consumed := make([]bool, len(refs))

	for _, local := range locals {
		bestIdx := -1
		var best MatchResult
		for i, ref := range refs {
			if consumed[i] {
				continue
			}
			mr := MatchOne(local, ref, cfg)
			if mr.Status == StatusNoMatch {
				continue
			}
			if bestIdx == -1 || mr.Confidence > best.Confidence {
				bestIdx = i
				best = mr
			}
		}

		if bestIdx == -1 {
			result.LocalOnly = append(result.LocalOnly, local)
			continue
		}

		consumed[bestIdx] = true
		pair := MatchedPair{Local: local, Reference: refs[bestIdx], Result: best}
		if best.Status == StatusMatched {
			result.Matched = append(result.Matched, pair)
		} else {
			result.Mismatched = append(result.Mismatched, pair)
		}
	}

	for i, ref := range refs {
		if !consumed[i] {
			result.ReferenceOnly = append(result.ReferenceOnly, ref)
		}
	}

	result.Summary = summarize(result)
	return result
}

func summarize(r *ReconciliationResult) Summary {
	var s Summary
	s.Matched.Count = len(r.Matched)
	s.Matched.ITC = domain.MoneyZero
	for _, p := range r.Matched {
		s.Matched.ITC = s.Matched.ITC.Add(p.Local.TotalITC())
	}
	s.Mismatched.Count = len(r.Mismatched)
	s.Mismatched.ITC = domain.MoneyZero
	for _, p := range r.Mismatched {
		s.Mismatched.ITC = s.Mismatched.ITC.Add(p.Local.TotalITC())
	}
	s.LocalOnly.Count = len(r.LocalOnly)
	s.LocalOnly.ITC = domain.MoneyZero
	for _, inv := range r.LocalOnly {
		s.LocalOnly.ITC = s.LocalOnly.ITC.Add(inv.TotalITC())
	}
	s.ReferenceOnly.Count = len(r.ReferenceOnly)
	s.ReferenceOnly.ITC = domain.MoneyZero
	for _, ref := range r.ReferenceOnly {
		s.ReferenceOnly.ITC = s.ReferenceOnly.ITC.Add(ref.TotalITC())
	}
	return s
}

// withinTolerance applies the two-sided rule: inside the absolute floor, or
// inside the percentage of the base (base floored at 1 to avoid dividing by
// a zero-valued field).
func withinTolerance(base, diff domain.Money, cfg Config) bool {
	abs := diff.Abs()
	if abs.LessThanOrEqual(cfg.AmountToleranceAbs) {
		return true
	}
	floor := base.Abs()
	if floor.LessThan(decimal.NewFromInt(1)) {
		floor = decimal.NewFromInt(1)
	}
	share := abs.Div(floor).Mul(decimal.NewFromInt(100))
	return share.LessThanOrEqual(cfg.AmountTolerancePct)
}

func clampConfidence(c int) int {
	if c < confidenceFloor {
		return confidenceFloor
	}
	if c > confidenceFull {
		return confidenceFull
	}
	return c
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
