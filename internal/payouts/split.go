package payouts

import (
	"github.com/shopspring/decimal"

	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// The delivery fee splits 80/20 between the runner and the house. Fixed
// constants, same as the application-fee math on the gateway side.
var (
	driverDeliveryRate = decimal.New(8, -1) // 0.8
	houseDeliveryRate  = decimal.New(2, -1) // 0.2
)

// Split is the three-way allocation of a settled charge, in integer minor
// units.
type Split struct {
	MerchantCents int64
	DriverCents   int64
	HouseCents    int64
}

// ComputeSplit allocates a breakdown: the merchant gets subtotal + tax
// (already transferred by the provider at charge time; recorded here), the
// runner gets 80% of the delivery fee, the house keeps the remaining 20%
// plus the full service fee.
func ComputeSplit(breakdown types.Breakdown) Split {
	driver := breakdown.DeliveryFee.Mul(driverDeliveryRate)
	house := breakdown.DeliveryFee.Mul(houseDeliveryRate).Add(breakdown.ServiceFee)

	return Split{
		MerchantCents: types.Cents(breakdown.Subtotal.Add(breakdown.Tax)),
		DriverCents:   types.Cents(driver),
		HouseCents:    types.Cents(house),
	}
}
