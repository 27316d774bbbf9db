package eligibility

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"gstitc/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// ReversalInput describes a reversal trigger against previously claimed
// credit. Only the fields relevant to the reason are consulted.
type ReversalInput struct {
	OriginalAmount domain.Money
	Reason         domain.ReversalReason

	// LossPct applies to goods_lost: the share of goods lost or destroyed.
	LossPct domain.Money
	// PersonalUsePct applies to usage_changed_personal.
	PersonalUsePct domain.Money
	// CreditNoteAmount applies to credit_note_received.
	CreditNoteAmount domain.Money
	// ExemptIncreasePct applies to exempt_supply_increased.
	ExemptIncreasePct domain.Money

	// InvoiceDate and AsOf bound the interest computation for non-payment.
	InvoiceDate time.Time
	AsOf        time.Time
}

// Reversal is the computed obligation: the credit to reverse plus any
// interest accrued on it.
type Reversal struct {
	Amount   domain.Money          `json:"amount"`
	Interest domain.Money          `json:"interest"`
	Total    domain.Money          `json:"total"`
	Reason   domain.ReversalReason `json:"reason"`
	Detail   string                `json:"detail"`
}

// CalculateReversal computes how much credit comes back for a given reason.
// Non-payment reverses the full amount and accrues simple interest for each
// whole month beyond the grace window; the proportional reasons scale the
// original amount; a credit note reverses its own value, capped at the
// original claim.
func (e *Engine) CalculateReversal(in ReversalInput) (Reversal, error) {
	rev := Reversal{Reason: in.Reason}

	switch in.Reason {
	case domain.ReversalNonPayment:
		rev.Amount = in.OriginalAmount
		months := e.overdueMonths(in.InvoiceDate, in.AsOf)
		if months > 0 {
			rev.Interest = in.OriginalAmount.
				Mul(domain.Percent(e.cfg.AnnualInterestRatePct)).
				Mul(decimal.NewFromInt(int64(months))).
				Div(twelve)
		}
		rev.Detail = fmt.Sprintf("consideration unpaid beyond %d days; %d overdue months at %s%% p.a.",
			e.cfg.NonPaymentGraceDays, months, e.cfg.AnnualInterestRatePct.String())

	case domain.ReversalGoodsLost:
		rev.Amount = in.OriginalAmount.Mul(in.LossPct).Div(hundred)
		rev.Detail = fmt.Sprintf("%s%% of goods lost, stolen, or destroyed", in.LossPct.String())

	case domain.ReversalPersonalUse:
		rev.Amount = in.OriginalAmount.Mul(in.PersonalUsePct).Div(hundred)
		rev.Detail = fmt.Sprintf("usage changed to %s%% personal consumption", in.PersonalUsePct.String())

	case domain.ReversalCreditNote:
		rev.Amount = in.CreditNoteAmount
		if rev.Amount.GreaterThan(in.OriginalAmount) {
			rev.Amount = in.OriginalAmount
		}
		rev.Detail = "credit note received from supplier"

	case domain.ReversalExemptSupply:
		rev.Amount = in.OriginalAmount.Mul(in.ExemptIncreasePct).Div(hundred)
		rev.Detail = fmt.Sprintf("exempt supply share increased by %s%%", in.ExemptIncreasePct.String())

	default:
		return Reversal{}, fmt.Errorf("unknown reversal reason %q", in.Reason)
	}

	rev.Total = rev.Amount.Add(rev.Interest)
	return rev, nil
}

// overdueMonths counts whole months elapsed beyond the grace window.
func (e *Engine) overdueMonths(invoiceDate, asOf time.Time) int {
	graceEnd := invoiceDate.AddDate(0, 0, e.cfg.NonPaymentGraceDays)
	if !asOf.After(graceEnd) {
		return 0
	}
	return wholeMonths(graceEnd, asOf)
}
