// Package matching reconciles locally recorded purchase invoices against
// the GSTR-2B reference ledger. Identity comparison is always performed on
// normalized values; amounts and dates are compared under configurable
// tolerances; assignment is greedy one-to-one in input order.
package matching

import "strings"

// invoiceNumberSeparators are stripped before invoice numbers compare.
const invoiceNumberSeparators = "-/_. "

// NormalizeGSTIN upper-cases and strips all whitespace from a counterparty
// identifier. Two GSTINs are equal only after normalization.
func NormalizeGSTIN(gstin string) string {
	return strings.ToUpper(strings.Join(strings.Fields(gstin), ""))
}

// NormalizeInvoiceNumber case-folds and removes separator characters so
// "INV-001", "inv/001", and "INV 001" compare equal.
func NormalizeInvoiceNumber(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range strings.ToUpper(strings.TrimSpace(number)) {
		if strings.ContainsRune(invoiceNumberSeparators, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
