// Package gst splits a taxable amount into its GST components. The split is
// pure arithmetic: interstate supplies carry the full rate as IGST, intrastate
// supplies split the rate in half between CGST and SGST. No rounding happens
// here; callers round at presentation boundaries only so aggregation never
// compounds rounding error.
package gst

import (
	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

var two = decimal.NewFromInt(2)

// Breakup holds the computed tax components for one taxable amount.
// Total is the taxable amount plus every levy.
type Breakup struct {
	CGST  domain.Money `json:"cgst"`
	SGST  domain.Money `json:"sgst"`
	IGST  domain.Money `json:"igst"`
	Cess  domain.Money `json:"cess"`
	Total domain.Money `json:"total"`
}

// TaxTotal is the sum of the three GST components, excluding cess.
func (b Breakup) TaxTotal() domain.Money {
	return b.CGST.Add(b.SGST).Add(b.IGST)
}

// Compute splits taxableAmount at ratePct into components. A zero rate
// yields an all-zero breakup (zero-rated and exempt-adjacent lines). Cess,
// when levied, is computed independently and is always additive.
func Compute(taxableAmount, ratePct domain.Money, interstate bool, cessRatePct domain.Money) Breakup {
	b := Breakup{
		CGST: domain.MoneyZero,
		SGST: domain.MoneyZero,
		IGST: domain.MoneyZero,
		Cess: domain.MoneyZero,
	}

	if ratePct.IsPositive() {
		tax := taxableAmount.Mul(domain.Percent(ratePct))
		if interstate {
			b.IGST = tax
		} else {
			half := tax.Div(two)
			b.CGST = half
			b.SGST = half
		}
	}

	if cessRatePct.IsPositive() {
		b.Cess = taxableAmount.Mul(domain.Percent(cessRatePct))
	}

	b.Total = taxableAmount.Add(b.CGST).Add(b.SGST).Add(b.IGST).Add(b.Cess)
	return b
}
