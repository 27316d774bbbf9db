package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

var hundredPct = decimal.NewFromInt(100)

// notifiedTaxRates are the rate slabs a line item may carry.
var notifiedTaxRates = []domain.Money{
	decimal.NewFromInt(0),
	decimal.RequireFromString("0.25"),
	decimal.NewFromInt(3),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

func notifiedRate(rate domain.Money) bool {
	for _, r := range notifiedTaxRates {
		if rate.Equal(r) {
			return true
		}
	}
	return false
}

// validStateCode accepts the two-digit GST state codes: 01-38 for states
// and union territories, 97 for other territory.
func validStateCode(code string) bool {
	if len(code) != 2 {
		return false
	}
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return (n >= 1 && n <= 38) || n == 97
}

// validateInvoiceInput applies the fatal pre-computation checks. The first
// failure rejects the whole invoice; nothing partial is ever persisted.
func validateInvoiceInput(input *CreateInvoiceInput) error {
	switch {
	case input.OwnerGSTIN == "":
		return domain.NewValidationError("owner_gstin", "missing_field", "owner GSTIN is required")
	case input.VendorGSTIN == "":
		return domain.NewValidationError("vendor_gstin", "missing_field", "vendor GSTIN is required")
	case input.InvoiceNumber == "":
		return domain.NewValidationError("invoice_number", "missing_field", "invoice number is required")
	case input.InvoiceDate.IsZero():
		return domain.NewValidationError("invoice_date", "missing_field", "invoice date is required")
	case input.InvoiceDate.After(time.Now().UTC()):
		return domain.NewValidationError("invoice_date", "future_date", "invoice date cannot be in the future")
	case !validStateCode(input.OriginState):
		return domain.NewValidationError("origin_state", "invalid_state_code",
			fmt.Sprintf("unknown state code %q", input.OriginState))
	case !validStateCode(input.DestinationState):
		return domain.NewValidationError("destination_state", "invalid_state_code",
			fmt.Sprintf("unknown state code %q", input.DestinationState))
	case len(input.LineItems) == 0:
		return domain.NewValidationError("line_items", "missing_field", "at least one line item is required")
	case input.ExemptSupplyPct.IsNegative() || input.ExemptSupplyPct.GreaterThan(hundredPct):
		return domain.NewValidationError("exempt_supply_pct", "out_of_range", "exempt supply percentage must be between 0 and 100")
	}
	if input.PaymentStatus != "" && !domain.ValidPaymentStatuses[input.PaymentStatus] {
		return domain.NewValidationError("payment_status", "invalid_payment_status",
			fmt.Sprintf("unknown payment status %q", input.PaymentStatus))
	}

	for i, li := range input.LineItems {
		field := func(name string) string { return fmt.Sprintf("line_items[%d].%s", i, name) }
		switch {
		case li.Description == "":
			return domain.NewValidationError(field("description"), "missing_field", "description is required")
		case !li.Quantity.IsPositive():
			return domain.NewValidationError(field("quantity"), "non_positive_quantity", "quantity must be positive")
		case li.UnitRate.IsNegative():
			return domain.NewValidationError(field("unit_rate"), "negative_rate", "unit rate cannot be negative")
		case !notifiedRate(li.TaxRatePct):
			return domain.NewValidationError(field("tax_rate_pct"), "invalid_tax_rate",
				fmt.Sprintf("tax rate %s%% is not a notified slab", li.TaxRatePct.String()))
		case li.CessRatePct.IsNegative():
			return domain.NewValidationError(field("cess_rate_pct"), "negative_rate", "cess rate cannot be negative")
		case !domain.ValidITCCategories[li.Category]:
			return domain.NewValidationError(field("category"), "invalid_category",
				fmt.Sprintf("unknown credit category %q", li.Category))
		}
		if li.BusinessUsePct != nil &&
			(li.BusinessUsePct.IsNegative() || li.BusinessUsePct.GreaterThan(hundredPct)) {
			return domain.NewValidationError(field("business_use_pct"), "out_of_range",
				"business use percentage must be between 0 and 100")
		}
	}
	return nil
}
