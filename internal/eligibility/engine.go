package eligibility

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Engine evaluates line items against the blocked-credit table, the claim
// conditions, and the apportionment rules. It is stateless and safe for
// concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine creates an Engine with the supplied statutory constants.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// EvaluateLine runs the ordered rule chain for one line item. The only
// error returned is a configuration fault (unknown blocked category);
// every business outcome is encoded in the Result.
func (e *Engine) EvaluateLine(in LineInput) (Result, error) {
	res := Result{
		Category:       in.Category,
		EligibleAmount: in.TaxAmount,
		BlockedAmount:  domain.MoneyZero,
	}

	// 1. Blocked-category table, first match wins.
	if in.Blocked != nil {
		rule, ok := blockedTable[in.Blocked.BlockedCategory()]
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", domain.ErrUnknownCategory, in.Blocked.BlockedCategory())
		}
		if blocked, reason, detail := rule.Evaluate(in.Blocked); blocked {
			r := BlockAll(in.Category, in.TaxAmount, reason)
			r.BlockedDetail = detail
			return r, nil
		}
	} else if in.Category == domain.CategoryBlocked {
		return BlockAll(in.Category, in.TaxAmount, ReasonBlockedCategory), nil
	}

	// 2. Invoice-level claim conditions, when supplied. Time limit and the
	// source document are fatal; the remaining conditions only flag the
	// claim for review.
	if in.Conditions != nil {
		if expired := e.claimWindowExpired(in.InvoiceDate, in.Conditions.ClaimDate); expired {
			return BlockAll(in.Category, in.TaxAmount, ReasonTimeLimitExpired), nil
		}
		if !in.Conditions.HasTaxInvoice {
			return BlockAll(in.Category, in.TaxAmount, ReasonMissingTaxInvoice), nil
		}
		if !in.Conditions.GoodsReceived {
			res.ReviewFlags = append(res.ReviewFlags, FlagGoodsReceiptPending)
		}
		if !in.Conditions.SupplierTaxRemitted {
			res.ReviewFlags = append(res.ReviewFlags, FlagSupplierTaxUnpaid)
		}
		if !in.Conditions.ReturnFiled {
			res.ReviewFlags = append(res.ReviewFlags, FlagReturnNotFiled)
		}
	}

	// 3. Imports.
	if in.Import != nil {
		if in.Import.IsService {
			if !in.Import.RCMComplied {
				return BlockAll(in.Category, in.TaxAmount, ReasonImportRCMNonComplied), nil
			}
		} else if !in.Import.DutyPaid {
			return BlockAll(in.Category, in.TaxAmount, ReasonImportDutyUnpaid), nil
		}
	}

	// 4. Apportionment by business use and exempt supply share.
	eligible, detail := apportion(in.TaxAmount, in.BusinessUsePct, in.ExemptSupplyPct)
	if eligible.LessThan(in.TaxAmount) {
		res.EligibleAmount = eligible
		res.BlockedAmount = in.TaxAmount.Sub(eligible)
		res.Reversals = append(res.Reversals, domain.ReversalObligation{
			Amount: res.BlockedAmount,
			Reason: domain.ReversalApportionment,
			Detail: detail,
		})
	}

	// 5. Capital goods disposal schedule.
	if in.Category == domain.CategoryCapitalGoods && in.CapitalGoods != nil {
		if ob, ok := e.disposalReversal(res.EligibleAmount, in.CapitalGoods); ok {
			res.Reversals = append(res.Reversals, ob)
		}
	}

	res.IsEligible = res.EligibleAmount.IsPositive()
	return res, nil
}

// claimWindowExpired checks the statutory months-from-FY-end time limit.
func (e *Engine) claimWindowExpired(invoiceDate, claimDate time.Time) bool {
	if claimDate.IsZero() {
		return false
	}
	deadline := domain.FinancialYearEnd(invoiceDate).AddDate(0, e.cfg.TimeLimitMonths, 0)
	return claimDate.After(deadline)
}

// apportion reduces the creditable tax by the non-business and exempt
// shares: eligible = tax * businessUse% * (1 - exemptSupply%).
func apportion(tax, businessUsePct, exemptSupplyPct domain.Money) (domain.Money, string) {
	eligible := tax
	var reasons []string

	if businessUsePct.LessThan(hundred) {
		eligible = eligible.Mul(businessUsePct).Div(hundred)
		reasons = append(reasons, fmt.Sprintf("business use %s%%", businessUsePct.String()))
	}
	if exemptSupplyPct.IsPositive() {
		eligible = eligible.Mul(hundred.Sub(exemptSupplyPct)).Div(hundred)
		reasons = append(reasons, fmt.Sprintf("exempt supplies %s%%", exemptSupplyPct.String()))
	}

	detail := ""
	if len(reasons) == 1 {
		detail = "apportioned for " + reasons[0]
	} else if len(reasons) == 2 {
		detail = "apportioned for " + reasons[0] + " and " + reasons[1]
	}
	return eligible, detail
}

// disposalReversal computes the pro-rata reversal when a capital good is
// disposed within its useful life: the remaining life fraction of the
// credit comes back.
func (e *Engine) disposalReversal(eligible domain.Money, cg *CapitalGoodsFacts) (domain.ReversalObligation, bool) {
	if cg.DisposedOn == nil {
		return domain.ReversalObligation{}, false
	}
	life := cg.UsefulLifeMonths
	if life <= 0 {
		life = e.cfg.DefaultUsefulLifeMonths
	}
	used := wholeMonths(cg.CommissionedOn, *cg.DisposedOn)
	if used >= life {
		return domain.ReversalObligation{}, false
	}
	remaining := life - used
	amount := eligible.Mul(decimal.NewFromInt(int64(remaining))).Div(decimal.NewFromInt(int64(life)))
	due := cg.DisposedOn.AddDate(0, 1, 0)
	return domain.ReversalObligation{
		Amount:  amount,
		Reason:  domain.ReversalCapitalDisposal,
		DueDate: &due,
		Detail: fmt.Sprintf("disposed with %d of %d useful-life months remaining",
			remaining, life),
	}, true
}

// wholeMonths counts complete calendar months elapsed from a to b.
func wholeMonths(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
