package payments

import (
	"github.com/shopspring/decimal"

	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// houseDeliveryRate is the platform's fixed cut of the delivery fee. The
// remaining 80% belongs to the runner. There is deliberately no configuration
// path for these ratios.
var houseDeliveryRate = decimal.New(2, -1) // 0.2

// PlatformFeeCents computes the application fee declared on the intent:
// the full service fee plus the house share of the delivery fee, in integer
// minor units.
func PlatformFeeCents(breakdown types.Breakdown) int64 {
	fee := breakdown.ServiceFee.Add(breakdown.DeliveryFee.Mul(houseDeliveryRate))
	return types.Cents(fee)
}
