package domain

// ITCCategory classifies a purchase line item for credit purposes.
type ITCCategory string

const (
	CategoryInputs        ITCCategory = "inputs"
	CategoryCapitalGoods  ITCCategory = "capital_goods"
	CategoryInputServices ITCCategory = "input_services"
	CategoryBlocked       ITCCategory = "blocked"
)

// ValidITCCategories is the set of accepted line item categories.
var ValidITCCategories = map[ITCCategory]bool{
	CategoryInputs:        true,
	CategoryCapitalGoods:  true,
	CategoryInputServices: true,
	CategoryBlocked:       true,
}

// BlockedCategory identifies one statutory blocked-credit clause. Each
// category has its own facts variant carrying only the fields its predicate
// needs.
type BlockedCategory string

const (
	BlockedMotorVehicle BlockedCategory = "motor_vehicle"
	BlockedFoodBeverage BlockedCategory = "food_beverage"
	BlockedMembership   BlockedCategory = "membership"
	BlockedInsurance    BlockedCategory = "insurance"
	BlockedConstruction BlockedCategory = "construction"
	BlockedPersonalUse  BlockedCategory = "personal_use"
	BlockedGoodsLost    BlockedCategory = "goods_lost"
)

// VehicleUsage is the declared business usage of a motor vehicle.
type VehicleUsage string

const (
	UsagePassengerTransport VehicleUsage = "passenger_transport"
	UsageGoodsTransport     VehicleUsage = "goods_transport"
	UsageDriverTraining     VehicleUsage = "driver_training"
	UsageFurtherSupply      VehicleUsage = "further_supply"
	UsageOther              VehicleUsage = "other"
)

// EligibleVehicleUsages lists usages that unblock motor vehicle credit
// regardless of seating capacity.
var EligibleVehicleUsages = map[VehicleUsage]bool{
	UsagePassengerTransport: true,
	UsageGoodsTransport:     true,
	UsageDriverTraining:     true,
	UsageFurtherSupply:      true,
}

// InsuranceKind distinguishes insurance subtypes under the blocked table.
type InsuranceKind string

const (
	InsuranceLife     InsuranceKind = "life"
	InsuranceHealth   InsuranceKind = "health"
	InsuranceRentACab InsuranceKind = "rent_a_cab"
)

// ConstructionType distinguishes construction subtypes.
type ConstructionType string

const (
	ConstructionBuilding       ConstructionType = "building"
	ConstructionWorksContract  ConstructionType = "works_contract"
	ConstructionPlantMachinery ConstructionType = "plant_machinery"
)

// LossCause records why goods left the business without a supply.
type LossCause string

const (
	LossStolen     LossCause = "stolen"
	LossDestroyed  LossCause = "destroyed"
	LossWrittenOff LossCause = "written_off"
	LossFreeSample LossCause = "free_sample"
	LossGift       LossCause = "gift"
)

// VendorType is the supplier's GST registration scheme.
type VendorType string

const (
	VendorRegular      VendorType = "regular"
	VendorComposition  VendorType = "composition"
	VendorUnregistered VendorType = "unregistered"
)

// PaymentStatus is the settlement state of a purchase invoice.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// ValidPaymentStatuses is the set of accepted payment statuses.
var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentUnpaid:  true,
	PaymentPartial: true,
	PaymentPaid:    true,
}

// MatchingStatus is the reconciliation outcome recorded on an invoice.
// Stays pending until a reconciliation run has covered the invoice's period.
type MatchingStatus string

const (
	MatchingPending  MatchingStatus = "pending"
	MatchingMatched  MatchingStatus = "matched"
	MatchingMismatch MatchingStatus = "amount_mismatch"
	MatchingNotFound MatchingStatus = "not_in_gstr2b"
)

// ReversalReason identifies why previously claimed credit must be paid back.
type ReversalReason string

const (
	ReversalNonPayment      ReversalReason = "non_payment_180_days"
	ReversalGoodsLost       ReversalReason = "goods_lost"
	ReversalPersonalUse     ReversalReason = "usage_changed_personal"
	ReversalCreditNote      ReversalReason = "credit_note_received"
	ReversalExemptSupply    ReversalReason = "exempt_supply_increased"
	ReversalApportionment   ReversalReason = "apportionment"
	ReversalCapitalDisposal ReversalReason = "capital_goods_disposal"
)
