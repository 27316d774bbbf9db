package domain

import "github.com/shopspring/decimal"

// Money is an exact decimal amount. All monetary arithmetic in this module
// runs on exact decimals; rounding happens only at presentation boundaries.
type Money = decimal.Decimal

// MoneyZero is the zero amount.
var MoneyZero = decimal.Zero

// Rupees parses a decimal literal. It panics on a malformed literal, so it
// is for constants, fixtures, and configuration values only.
func Rupees(s string) Money {
	return decimal.RequireFromString(s)
}

// Round2 rounds to two decimal places, half away from zero. Presentation
// boundaries only; never feed the result back into aggregation.
func Round2(m Money) Money {
	return m.Round(2)
}

// Percent converts a percentage (e.g. 18) to its fraction (0.18).
func Percent(p Money) Money {
	return p.Div(decimal.NewFromInt(100))
}
