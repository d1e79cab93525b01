package workorder

import (
	"time"

	"github.com/carpentry/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentTerms is what the client agreed to pay and what has been collected.
// Derived amounts are computed from these fields on every read.
type PaymentTerms struct {
	DiscountPercent  decimal.Decimal   `json:"discount_percent"`
	Deposit          valueobject.Money `json:"deposit"`
	DepositDate      *time.Time        `json:"deposit_date,omitempty"`
	FinalPaid        bool              `json:"final_paid"`
	FinalPaymentDate *time.Time        `json:"final_payment_date,omitempty"`
}

var maxPercent = decimal.NewFromInt(100)

// ValidPercent reports whether p lies in [0, 100]
func ValidPercent(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(maxPercent)
}

// EffectiveTotal is base × (1 − discount/100)
func (p PaymentTerms) EffectiveTotal(base valueobject.Money) valueobject.Money {
	return base.ApplyDiscount(p.DiscountPercent)
}

// BalanceBeforeFinalPayment is what remains after the deposit, floored at zero
func (p PaymentTerms) BalanceBeforeFinalPayment(base valueobject.Money) valueobject.Money {
	return p.EffectiveTotal(base).Subtract(p.Deposit).NonNegative()
}

// Balance is what the client still owes; zero once the final payment is in
func (p PaymentTerms) Balance(base valueobject.Money) valueobject.Money {
	if p.FinalPaid {
		return valueobject.Zero()
	}
	return p.BalanceBeforeFinalPayment(base)
}

// Collected is the money actually received: the deposit, plus the
// remaining balance once the final payment flag is set.
func (p PaymentTerms) Collected(base valueobject.Money) valueobject.Money {
	if !p.FinalPaid {
		return p.Deposit
	}
	return p.Deposit.Add(p.BalanceBeforeFinalPayment(base))
}

// Collected returns the money received for this order so far
func (o *WorkOrder) Collected() valueobject.Money {
	return o.Payment.Collected(o.BaseTotal)
}
