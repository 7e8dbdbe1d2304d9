package types

import "github.com/shopspring/decimal"

var centsPerUnit = decimal.NewFromInt(100)

// Breakdown is the per-order charge composition in decimal currency units.
// Persistence and provider amounts use integer minor units; decimals exist
// only at this boundary.
type Breakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	ServiceFee  decimal.Decimal `json:"service_fee"`
	Tax         decimal.Decimal `json:"tax"`
}

// Total sums all four components.
func (b Breakdown) Total() decimal.Decimal {
	return b.Subtotal.Add(b.DeliveryFee).Add(b.ServiceFee).Add(b.Tax)
}

// NonNegative reports whether every component is >= 0.
func (b Breakdown) NonNegative() bool {
	return !b.Subtotal.IsNegative() &&
		!b.DeliveryFee.IsNegative() &&
		!b.ServiceFee.IsNegative() &&
		!b.Tax.IsNegative()
}

// Cents converts a decimal currency amount to integer minor units,
// rounding half away from zero.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(centsPerUnit).Round(0).IntPart()
}
