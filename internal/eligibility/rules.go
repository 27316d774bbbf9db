package eligibility

import (
	"fmt"

	"gstitc/internal/domain"
)

// seatingCapacityThreshold is the seating above which a motor vehicle is
// outside the blocked clause (13 including the driver).
const seatingCapacityThreshold = 13

// blockedRule is one row of the blocked-credit table: a statutory clause
// reference and a predicate over that category's fact variant. A rule either
// blocks with a reason or lets evaluation continue.
type blockedRule struct {
	Clause   string
	Evaluate func(facts domain.BlockedFacts) (blocked bool, reason, detail string)
}

// blockedTable maps each blocked-credit category to its exception clause.
// The predicates receive the category's own fact variant only; a type
// mismatch means the envelope decoding is broken and blocks conservatively.
var blockedTable = map[domain.BlockedCategory]blockedRule{
	domain.BlockedMotorVehicle: {
		Clause: "17(5)(a)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			f, ok := facts.(domain.MotorVehicleFacts)
			if !ok {
				return true, ReasonBlockedCategory, "malformed motor vehicle facts"
			}
			if f.SeatingCapacity > seatingCapacityThreshold {
				return false, "", ""
			}
			if domain.EligibleVehicleUsages[f.Usage] {
				return false, "", ""
			}
			return true, ReasonMotorVehicleSeating, fmt.Sprintf(
				"seating capacity %d is %d or less and usage %q is not an eligible use",
				f.SeatingCapacity, seatingCapacityThreshold, f.Usage)
		},
	},
	domain.BlockedFoodBeverage: {
		Clause: "17(5)(b)(i)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			f, ok := facts.(domain.FoodBeverageFacts)
			if !ok {
				return true, ReasonBlockedCategory, "malformed food/beverage facts"
			}
			if f.StatutoryObligation {
				return false, "", ""
			}
			return true, ReasonFoodBeverage, "food and beverage without a statutory obligation to provide"
		},
	},
	domain.BlockedMembership: {
		Clause: "17(5)(b)(ii)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			return true, ReasonMembership, "club and fitness centre memberships are never creditable"
		},
	},
	domain.BlockedInsurance: {
		Clause: "17(5)(b)(iii)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			f, ok := facts.(domain.InsuranceFacts)
			if !ok {
				return true, ReasonBlockedCategory, "malformed insurance facts"
			}
			if f.StatutoryObligation {
				return false, "", ""
			}
			return true, ReasonInsurance, fmt.Sprintf(
				"%s cover without a statutory obligation to provide", f.Kind)
		},
	},
	domain.BlockedConstruction: {
		Clause: "17(5)(c)/(d)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			f, ok := facts.(domain.ConstructionFacts)
			if !ok {
				return true, ReasonBlockedCategory, "malformed construction facts"
			}
			if f.Type == domain.ConstructionPlantMachinery {
				return false, "", ""
			}
			if f.ForResale {
				return false, "", ""
			}
			return true, ReasonConstruction, "construction of immovable property on own account"
		},
	},
	domain.BlockedPersonalUse: {
		Clause: "17(5)(g)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			return true, ReasonPersonalUse, "goods or services used for personal consumption"
		},
	},
	domain.BlockedGoodsLost: {
		Clause: "17(5)(h)",
		Evaluate: func(facts domain.BlockedFacts) (bool, string, string) {
			f, ok := facts.(domain.GoodsLostFacts)
			if !ok {
				return true, ReasonBlockedCategory, "malformed goods-lost facts"
			}
			return true, ReasonGoodsLost, fmt.Sprintf("goods disposed without supply: %s", f.Cause)
		},
	},
}

// Clause returns the statutory clause reference for a blocked category,
// or "" when the category is unknown.
func Clause(cat domain.BlockedCategory) string {
	return blockedTable[cat].Clause
}
