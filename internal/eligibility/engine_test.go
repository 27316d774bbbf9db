package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstitc/internal/domain"
)

func fullUseLine(tax string) LineInput {
	return LineInput{
		TaxAmount:      domain.Rupees(tax),
		Category:       domain.CategoryInputs,
		BusinessUsePct: domain.Rupees("100"),
		InvoiceDate:    time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

// unknownFacts is a fact variant with no row in the blocked table.
type unknownFacts struct{}

func (unknownFacts) BlockedCategory() domain.BlockedCategory { return "not_a_category" }

func TestEvaluateLineBlockedTable(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("motor_vehicle_low_seating_other_usage_is_blocked", func(t *testing.T) {
		in := fullUseLine("18000")
		in.Blocked = domain.MotorVehicleFacts{SeatingCapacity: 5, Usage: domain.UsageOther}

		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)

		assert.False(t, res.IsEligible)
		assert.True(t, res.EligibleAmount.IsZero())
		assert.True(t, res.BlockedAmount.Equal(domain.Rupees("18000")))
		assert.Equal(t, ReasonMotorVehicleSeating, res.BlockedReason)
		assert.Contains(t, res.BlockedDetail, "seating capacity 5")
	})

	t.Run("motor_vehicle_high_seating_is_eligible", func(t *testing.T) {
		in := fullUseLine("18000")
		in.Blocked = domain.MotorVehicleFacts{SeatingCapacity: 14, Usage: domain.UsageOther}

		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)

		assert.True(t, res.IsEligible)
		assert.True(t, res.EligibleAmount.Equal(domain.Rupees("18000")))
	})

	t.Run("motor_vehicle_eligible_usage_unblocks", func(t *testing.T) {
		in := fullUseLine("18000")
		in.Blocked = domain.MotorVehicleFacts{SeatingCapacity: 5, Usage: domain.UsageGoodsTransport}

		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.True(t, res.IsEligible)
	})

	t.Run("food_beverage_needs_statutory_obligation", func(t *testing.T) {
		in := fullUseLine("900")
		in.Blocked = domain.FoodBeverageFacts{StatutoryObligation: false}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonFoodBeverage, res.BlockedReason)

		in.Blocked = domain.FoodBeverageFacts{StatutoryObligation: true}
		res, err = engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.True(t, res.IsEligible)
	})

	t.Run("membership_is_always_blocked", func(t *testing.T) {
		in := fullUseLine("1200")
		in.Blocked = domain.MembershipFacts{Description: "gym"}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonMembership, res.BlockedReason)
	})

	t.Run("plant_machinery_construction_is_eligible", func(t *testing.T) {
		in := fullUseLine("50000")
		in.Blocked = domain.ConstructionFacts{Type: domain.ConstructionPlantMachinery}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.True(t, res.IsEligible)

		in.Blocked = domain.ConstructionFacts{Type: domain.ConstructionBuilding}
		res, err = engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonConstruction, res.BlockedReason)
	})

	t.Run("blocked_category_without_facts_blocks_fully", func(t *testing.T) {
		in := fullUseLine("1000")
		in.Category = domain.CategoryBlocked
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonBlockedCategory, res.BlockedReason)
		assert.True(t, res.BlockedAmount.Equal(domain.Rupees("1000")))
	})

	t.Run("unknown_category_is_a_configuration_error", func(t *testing.T) {
		in := fullUseLine("1000")
		in.Blocked = unknownFacts{}
		_, err := engine.EvaluateLine(in)
		assert.ErrorIs(t, err, domain.ErrUnknownCategory)
	})
}

func TestEvaluateLineConditions(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("claim_window_boundary", func(t *testing.T) {
		// FY 2024-25 ends 2025-03-31; eight months later is 2025-11-30.
		in := fullUseLine("5000")
		in.Conditions = &Conditions{
			HasTaxInvoice:       true,
			GoodsReceived:       true,
			SupplierTaxRemitted: true,
			ReturnFiled:         true,
			ClaimDate:           time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
		}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.True(t, res.IsEligible, "claim on the deadline day stays open")

		in.Conditions.ClaimDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
		res, err = engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonTimeLimitExpired, res.BlockedReason)
	})

	t.Run("missing_tax_invoice_is_fatal", func(t *testing.T) {
		in := fullUseLine("5000")
		in.Conditions = &Conditions{
			HasTaxInvoice: false,
			GoodsReceived: true,
		}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonMissingTaxInvoice, res.BlockedReason)
		assert.True(t, res.BlockedAmount.Equal(domain.Rupees("5000")))
	})

	t.Run("soft_conditions_only_flag_for_review", func(t *testing.T) {
		in := fullUseLine("5000")
		in.Conditions = &Conditions{HasTaxInvoice: true}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)

		assert.True(t, res.IsEligible)
		assert.ElementsMatch(t, []string{
			FlagGoodsReceiptPending,
			FlagSupplierTaxUnpaid,
			FlagReturnNotFiled,
		}, res.ReviewFlags)
	})
}

func TestEvaluateLineImports(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	t.Run("goods_import_needs_duty_paid", func(t *testing.T) {
		in := fullUseLine("7000")
		in.Import = &ImportFacts{IsService: false, DutyPaid: false}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonImportDutyUnpaid, res.BlockedReason)

		in.Import.DutyPaid = true
		res, err = engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.True(t, res.IsEligible)
	})

	t.Run("service_import_needs_rcm_compliance", func(t *testing.T) {
		in := fullUseLine("7000")
		in.Import = &ImportFacts{IsService: true, RCMComplied: false}
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Equal(t, ReasonImportRCMNonComplied, res.BlockedReason)
	})
}

func TestEvaluateLineApportionment(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	in := fullUseLine("10000")
	in.BusinessUsePct = domain.Rupees("60")
	in.ExemptSupplyPct = domain.Rupees("20")

	res, err := engine.EvaluateLine(in)
	require.NoError(t, err)

	// 10000 * 60% * 80% = 4800 eligible, 5200 blocked.
	assert.True(t, res.EligibleAmount.Equal(domain.Rupees("4800")), "eligible = %s", res.EligibleAmount)
	assert.True(t, res.BlockedAmount.Equal(domain.Rupees("5200")), "blocked = %s", res.BlockedAmount)
	assert.True(t, res.IsEligible)

	require.Len(t, res.Reversals, 1)
	assert.Equal(t, domain.ReversalApportionment, res.Reversals[0].Reason)
	assert.True(t, res.Reversals[0].Amount.Equal(domain.Rupees("5200")))
	assert.Contains(t, res.Reversals[0].Detail, "business use 60%")
	assert.Contains(t, res.Reversals[0].Detail, "exempt supplies 20%")
}

func TestEvaluateLineSplitInvariant(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	inputs := []LineInput{
		fullUseLine("18000"),
		func() LineInput {
			in := fullUseLine("18000")
			in.Blocked = domain.MotorVehicleFacts{SeatingCapacity: 5, Usage: domain.UsageOther}
			return in
		}(),
		func() LineInput {
			in := fullUseLine("10000")
			in.BusinessUsePct = domain.Rupees("37.5")
			in.ExemptSupplyPct = domain.Rupees("12.5")
			return in
		}(),
		func() LineInput {
			in := fullUseLine("999.99")
			in.Conditions = &Conditions{HasTaxInvoice: false}
			return in
		}(),
	}

	for i, in := range inputs {
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		sum := res.EligibleAmount.Add(res.BlockedAmount)
		assert.True(t, sum.Equal(in.TaxAmount), "case %d: eligible+blocked = %s, tax = %s", i, sum, in.TaxAmount)
	}
}

func TestEvaluateLineCapitalDisposal(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	disposed := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	in := fullUseLine("9000")
	in.Category = domain.CategoryCapitalGoods
	in.CapitalGoods = &CapitalGoodsFacts{
		UsefulLifeMonths: 60,
		CommissionedOn:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DisposedOn:       &disposed,
	}

	res, err := engine.EvaluateLine(in)
	require.NoError(t, err)

	// 6 of 60 months used; 54/60 of the credit reverses.
	require.Len(t, res.Reversals, 1)
	rev := res.Reversals[0]
	assert.Equal(t, domain.ReversalCapitalDisposal, rev.Reason)
	assert.True(t, rev.Amount.Equal(domain.Rupees("8100")), "reversal = %s", rev.Amount)
	require.NotNil(t, rev.DueDate)
	assert.Equal(t, disposed.AddDate(0, 1, 0), *rev.DueDate)

	t.Run("disposal_after_useful_life_reverses_nothing", func(t *testing.T) {
		late := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		in.CapitalGoods.DisposedOn = &late
		res, err := engine.EvaluateLine(in)
		require.NoError(t, err)
		assert.Empty(t, res.Reversals)
	})
}
