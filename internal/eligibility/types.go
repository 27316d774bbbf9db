// Package eligibility decides, per purchase line item, whether its tax may
// be claimed as input tax credit. Every outcome is data: blocked categories,
// failed conditions, and reversal obligations come back as structured
// results, never as errors. The only error an evaluation can return is a
// configuration fault (an unknown blocked-credit category).
package eligibility

import (
	"time"

	"gstitc/internal/domain"
)

// Config carries the statutory constants the engine consumes. These are
// versioned configuration, not business logic the engine re-derives.
type Config struct {
	// TimeLimitMonths is the claim window measured from the end of the
	// financial year the invoice falls in.
	TimeLimitMonths int
	// AnnualInterestRatePct is the simple-interest rate charged on
	// non-payment reversals.
	AnnualInterestRatePct domain.Money
	// NonPaymentGraceDays is the settlement window before a non-payment
	// reversal (and interest) kicks in.
	NonPaymentGraceDays int
	// DefaultUsefulLifeMonths applies to capital goods with no declared
	// useful life.
	DefaultUsefulLifeMonths int
}

// DefaultConfig mirrors the current statutory values.
func DefaultConfig() Config {
	return Config{
		TimeLimitMonths:         8,
		AnnualInterestRatePct:   domain.Rupees("18"),
		NonPaymentGraceDays:     180,
		DefaultUsefulLifeMonths: 60,
	}
}

// Conditions are the invoice-level claim conditions. They are only
// evaluated when the caller has invoice-level data to supply.
type Conditions struct {
	HasTaxInvoice       bool
	GoodsReceived       bool
	SupplierTaxRemitted bool
	ReturnFiled         bool
	// ClaimDate is when the credit is being claimed, checked against the
	// statutory window.
	ClaimDate time.Time
}

// ImportFacts qualify an import line.
type ImportFacts struct {
	IsService bool
	// DutyPaid confirms customs duty and import IGST settlement (goods).
	DutyPaid bool
	// RCMComplied confirms reverse-charge self-invoicing and payment
	// (services).
	RCMComplied bool
}

// CapitalGoodsFacts describe a capital asset's life for the reversal
// schedule.
type CapitalGoodsFacts struct {
	UsefulLifeMonths int
	CommissionedOn   time.Time
	DisposedOn       *time.Time
}

// LineInput is everything the engine needs to judge one line item.
type LineInput struct {
	TaxAmount       domain.Money
	Category        domain.ITCCategory
	Blocked         domain.BlockedFacts
	BusinessUsePct  domain.Money
	ExemptSupplyPct domain.Money
	InvoiceDate     time.Time
	Conditions      *Conditions
	Import          *ImportFacts
	CapitalGoods    *CapitalGoodsFacts
}

// Result is the complete credit decision for one line item.
// EligibleAmount + BlockedAmount always equals the input tax amount.
type Result struct {
	IsEligible     bool                        `json:"is_eligible"`
	Category       domain.ITCCategory          `json:"category"`
	EligibleAmount domain.Money                `json:"eligible_amount"`
	BlockedAmount  domain.Money                `json:"blocked_amount"`
	BlockedReason  string                      `json:"blocked_reason,omitempty"`
	BlockedDetail  string                      `json:"blocked_detail,omitempty"`
	ReviewFlags    []string                    `json:"review_flags,omitempty"`
	Reversals      []domain.ReversalObligation `json:"reversals,omitempty"`
}

// Blocked reason codes. Stable, machine-readable; the Detail strings on
// reversal obligations carry the human-readable explanation.
const (
	ReasonMotorVehicleSeating  = "motor_vehicle_seating_capacity"
	ReasonFoodBeverage         = "food_beverage_no_statutory_obligation"
	ReasonMembership           = "club_membership"
	ReasonInsurance            = "insurance_no_statutory_obligation"
	ReasonConstruction         = "construction_immovable_property"
	ReasonPersonalUse          = "personal_consumption"
	ReasonGoodsLost            = "goods_lost_stolen_destroyed"
	ReasonBlockedCategory      = "blocked_category"
	ReasonTimeLimitExpired     = "time_limit_expired"
	ReasonMissingTaxInvoice    = "missing_tax_invoice"
	ReasonImportDutyUnpaid     = "import_duty_unpaid"
	ReasonImportRCMNonComplied = "import_rcm_non_compliant"
	ReasonCompositionVendor    = "composition_scheme_vendor"
	ReasonUnregisteredVendor   = "unregistered_vendor_no_rcm"
	ReasonVendorInactive       = "vendor_registration_inactive"
)

// Review flag codes for non-fatal condition failures.
const (
	FlagGoodsReceiptPending = "goods_receipt_pending"
	FlagSupplierTaxUnpaid   = "supplier_tax_unpaid"
	FlagReturnNotFiled      = "return_not_filed"
)

// BlockAll builds a fully blocked result with the given reason. Used by
// callers that gate credit before line evaluation (e.g. vendor scheme
// checks during ingestion).
func BlockAll(category domain.ITCCategory, tax domain.Money, reason string) Result {
	return Result{
		IsEligible:     false,
		Category:       category,
		EligibleAmount: domain.MoneyZero,
		BlockedAmount:  tax,
		BlockedReason:  reason,
	}
}
