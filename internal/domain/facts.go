package domain

import (
	"encoding/json"
	"fmt"
)

// BlockedFacts carries the attributes one blocked-credit predicate needs.
// Keeping a variant per category (instead of one record with every optional
// field) makes a "wrong field for this category" state unrepresentable.
type BlockedFacts interface {
	BlockedCategory() BlockedCategory
}

// MotorVehicleFacts are the attributes of a motor vehicle purchase.
type MotorVehicleFacts struct {
	SeatingCapacity int          `json:"seating_capacity"`
	Usage           VehicleUsage `json:"usage"`
}

func (MotorVehicleFacts) BlockedCategory() BlockedCategory { return BlockedMotorVehicle }

// FoodBeverageFacts cover food, beverage, and outdoor catering supplies.
type FoodBeverageFacts struct {
	StatutoryObligation bool `json:"statutory_obligation"`
}

func (FoodBeverageFacts) BlockedCategory() BlockedCategory { return BlockedFoodBeverage }

// MembershipFacts cover club and health/fitness centre memberships.
type MembershipFacts struct {
	Description string `json:"description,omitempty"`
}

func (MembershipFacts) BlockedCategory() BlockedCategory { return BlockedMembership }

// InsuranceFacts cover life/health insurance and rent-a-cab services.
type InsuranceFacts struct {
	Kind                InsuranceKind `json:"kind"`
	StatutoryObligation bool          `json:"statutory_obligation"`
}

func (InsuranceFacts) BlockedCategory() BlockedCategory { return BlockedInsurance }

// ConstructionFacts cover works contracts and immovable property construction.
type ConstructionFacts struct {
	Type      ConstructionType `json:"type"`
	ForResale bool             `json:"for_resale"`
}

func (ConstructionFacts) BlockedCategory() BlockedCategory { return BlockedConstruction }

// PersonalUseFacts cover goods or services consumed personally.
type PersonalUseFacts struct{}

func (PersonalUseFacts) BlockedCategory() BlockedCategory { return BlockedPersonalUse }

// GoodsLostFacts cover goods lost, stolen, destroyed, written off, or given
// away as free samples or gifts.
type GoodsLostFacts struct {
	Cause LossCause `json:"cause"`
}

func (GoodsLostFacts) BlockedCategory() BlockedCategory { return BlockedGoodsLost }

// Facts is the JSON envelope for a BlockedFacts variant. It serializes as
// {"category": "...", "attrs": {...}} so line items persist cleanly in JSONB.
type Facts struct {
	BlockedFacts
}

// NewFacts wraps a variant in its envelope.
func NewFacts(f BlockedFacts) *Facts {
	return &Facts{BlockedFacts: f}
}

type factsEnvelope struct {
	Category BlockedCategory `json:"category"`
	Attrs    json.RawMessage `json:"attrs,omitempty"`
}

// MarshalJSON encodes the variant with its category discriminator.
func (f Facts) MarshalJSON() ([]byte, error) {
	if f.BlockedFacts == nil {
		return []byte("null"), nil
	}
	attrs, err := json.Marshal(f.BlockedFacts)
	if err != nil {
		return nil, err
	}
	return json.Marshal(factsEnvelope{Category: f.BlockedFacts.BlockedCategory(), Attrs: attrs})
}

// UnmarshalJSON decodes the envelope back into the typed variant.
func (f *Facts) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		f.BlockedFacts = nil
		return nil
	}
	var env factsEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	var (
		facts BlockedFacts
		err   error
	)
	switch env.Category {
	case BlockedMotorVehicle:
		var v MotorVehicleFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	case BlockedFoodBeverage:
		var v FoodBeverageFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	case BlockedMembership:
		var v MembershipFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	case BlockedInsurance:
		var v InsuranceFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	case BlockedConstruction:
		var v ConstructionFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	case BlockedPersonalUse:
		facts = PersonalUseFacts{}
	case BlockedGoodsLost:
		var v GoodsLostFacts
		err = unmarshalAttrs(env.Attrs, &v)
		facts = v
	default:
		return fmt.Errorf("unknown blocked category %q", env.Category)
	}
	if err != nil {
		return err
	}
	f.BlockedFacts = facts
	return nil
}

func unmarshalAttrs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
