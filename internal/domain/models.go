package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vendor is a supplier looked up during ingestion to gate eligibility.
type Vendor struct {
	GSTIN             string     `db:"gstin" json:"gstin"`
	Name              string     `db:"name" json:"name"`
	Type              VendorType `db:"vendor_type" json:"vendor_type"`
	RegistrationValid bool       `db:"registration_valid" json:"registration_valid"`
	IsActive          bool       `db:"is_active" json:"is_active"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`
}

// LineEligibility is the per-line credit decision embedded in the stored
// line item. EligibleITC + BlockedITC always equals the line's total tax.
type LineEligibility struct {
	IsEligible    bool   `json:"is_eligible"`
	EligibleITC   Money  `json:"eligible_itc"`
	BlockedITC    Money  `json:"blocked_itc"`
	BlockedReason string `json:"blocked_reason,omitempty"`
}

// PurchaseLineItem is a single line on a purchase invoice. Quantity, rate,
// and category are supplied; taxable amount, tax split, and eligibility are
// derived during ingestion and re-derived in full on update.
type PurchaseLineItem struct {
	Description    string      `json:"description"`
	HSNSACCode     string      `json:"hsn_sac_code"`
	Quantity       Money       `json:"quantity"`
	UnitRate       Money       `json:"unit_rate"`
	TaxRatePct     Money       `json:"tax_rate_pct"`
	CessRatePct    Money       `json:"cess_rate_pct"`
	Category       ITCCategory `json:"category"`
	BlockedFacts   *Facts      `json:"blocked_facts,omitempty"`
	BusinessUsePct Money       `json:"business_use_pct"`

	TaxableAmount Money            `json:"taxable_amount"`
	CGST          Money            `json:"cgst"`
	SGST          Money            `json:"sgst"`
	IGST          Money            `json:"igst"`
	Cess          Money            `json:"cess"`
	Eligibility   *LineEligibility `json:"eligibility,omitempty"`
}

// TotalTax is the line's CGST + SGST + IGST (cess excluded; cess credit is
// tracked separately and never offsets output tax other than cess).
func (li *PurchaseLineItem) TotalTax() Money {
	return li.CGST.Add(li.SGST).Add(li.IGST)
}

// LineItems is a JSONB-persisted ordered list of line items.
type LineItems []PurchaseLineItem

// Value implements driver.Valuer for JSONB storage.
func (l LineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (l *LineItems) Scan(src any) error {
	return scanJSON(src, l)
}

// ReversalObligation records credit that must be paid back, with the reason
// and an optional statutory due date.
type ReversalObligation struct {
	Amount  Money          `json:"amount"`
	Reason  ReversalReason `json:"reason"`
	DueDate *time.Time     `json:"due_date,omitempty"`
	Detail  string         `json:"detail,omitempty"`
}

// ReversalList is a JSONB-persisted list of reversal obligations.
type ReversalList []ReversalObligation

// Value implements driver.Valuer for JSONB storage.
func (r ReversalList) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (r *ReversalList) Scan(src any) error {
	return scanJSON(src, r)
}

// PurchaseInvoice is a locally recorded inward supply. It is created once on
// ingestion and recomputed wholesale on update; nothing mutates it piecemeal.
type PurchaseInvoice struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	OwnerGSTIN       string         `db:"owner_gstin" json:"owner_gstin"`
	VendorGSTIN      string         `db:"vendor_gstin" json:"vendor_gstin"`
	InvoiceNumber    string         `db:"invoice_number" json:"invoice_number"`
	InvoiceDate      time.Time      `db:"invoice_date" json:"invoice_date"`
	PeriodKey        string         `db:"period_key" json:"period_key"`
	OriginState      string         `db:"origin_state" json:"origin_state"`
	DestinationState string         `db:"destination_state" json:"destination_state"`
	ReverseCharge    bool           `db:"reverse_charge" json:"reverse_charge"`
	ReverseChargePct Money          `db:"reverse_charge_pct" json:"reverse_charge_pct"`
	LineItems        LineItems      `db:"line_items" json:"line_items"`
	TaxableAmount    Money          `db:"taxable_amount" json:"taxable_amount"`
	CGST             Money          `db:"cgst" json:"cgst"`
	SGST             Money          `db:"sgst" json:"sgst"`
	IGST             Money          `db:"igst" json:"igst"`
	Cess             Money          `db:"cess" json:"cess"`
	Total            Money          `db:"total" json:"total"`
	EligibleITC      Money          `db:"eligible_itc" json:"eligible_itc"`
	BlockedITC       Money          `db:"blocked_itc" json:"blocked_itc"`
	ClaimedITC       Money          `db:"claimed_itc" json:"claimed_itc"`
	Reversals        ReversalList   `db:"reversals" json:"reversals"`
	PaymentStatus    PaymentStatus  `db:"payment_status" json:"payment_status"`
	PaymentDate      *time.Time     `db:"payment_date" json:"payment_date"`
	MatchingStatus   MatchingStatus `db:"matching_status" json:"matching_status"`
	MatchConfidence  *int           `db:"match_confidence" json:"match_confidence"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// TotalITC is the invoice's summed tax components (CGST + SGST + IGST).
func (inv *PurchaseInvoice) TotalITC() Money {
	return inv.CGST.Add(inv.SGST).Add(inv.IGST)
}

// Interstate reports whether the supply crossed state lines.
func (inv *PurchaseInvoice) Interstate() bool {
	return inv.OriginState != inv.DestinationState
}

// ReferenceLedgerEntry is one row of the tax authority's GSTR-2B statement
// for a period. It is a read-only snapshot; this system never mutates it.
type ReferenceLedgerEntry struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OwnerGSTIN    string    `db:"owner_gstin" json:"owner_gstin"`
	PeriodKey     string    `db:"period_key" json:"period_key"`
	VendorGSTIN   string    `db:"vendor_gstin" json:"vendor_gstin"`
	InvoiceNumber string    `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoice_date"`
	TaxableValue  Money     `db:"taxable_value" json:"taxable_value"`
	CGST          Money     `db:"cgst" json:"cgst"`
	SGST          Money     `db:"sgst" json:"sgst"`
	IGST          Money     `db:"igst" json:"igst"`
	ImportedAt    time.Time `db:"imported_at" json:"imported_at"`
}

// TotalITC is the entry's summed tax components.
func (e *ReferenceLedgerEntry) TotalITC() Money {
	return e.CGST.Add(e.SGST).Add(e.IGST)
}

// RegisterPeriod is the per-(owner, period) running ITC balance.
// ClosingBalance is always recomputed as opening + claimed - reversed.
type RegisterPeriod struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	OwnerGSTIN       string     `db:"owner_gstin" json:"owner_gstin"`
	PeriodKey        string     `db:"period_key" json:"period_key"`
	FinancialYear    string     `db:"financial_year" json:"financial_year"`
	OpeningBalance   Money      `db:"opening_balance" json:"opening_balance"`
	EligibleITC      Money      `db:"eligible_itc" json:"eligible_itc"`
	ClaimedITC       Money      `db:"claimed_itc" json:"claimed_itc"`
	ReversedITC      Money      `db:"reversed_itc" json:"reversed_itc"`
	BlockedITC       Money      `db:"blocked_itc" json:"blocked_itc"`
	InputsITC        Money      `db:"inputs_itc" json:"inputs_itc"`
	CapitalGoodsITC  Money      `db:"capital_goods_itc" json:"capital_goods_itc"`
	InputServicesITC Money      `db:"input_services_itc" json:"input_services_itc"`
	ClosingBalance   Money      `db:"closing_balance" json:"closing_balance"`
	Reconciled       bool       `db:"reconciled" json:"reconciled"`
	ReconciledAt     *time.Time `db:"reconciled_at" json:"reconciled_at"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// RegisterTransaction is one additive delta applied to a register row,
// derived from an ingested invoice's eligibility summary.
type RegisterTransaction struct {
	InvoiceID uuid.UUID   `json:"invoice_id"`
	Category  ITCCategory `json:"category"`
	Eligible  Money       `json:"eligible"`
	Claimed   Money       `json:"claimed"`
	Reversed  Money       `json:"reversed"`
	Blocked   Money       `json:"blocked"`
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported scan type %T", src)
	}
}
