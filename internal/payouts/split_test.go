package payouts

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

func breakdown(subtotal, deliveryFee, serviceFee, tax string) types.Breakdown {
	return types.Breakdown{
		Subtotal:    decimal.RequireFromString(subtotal),
		DeliveryFee: decimal.RequireFromString(deliveryFee),
		ServiceFee:  decimal.RequireFromString(serviceFee),
		Tax:         decimal.RequireFromString(tax),
	}
}

func TestComputeSplitScenario(t *testing.T) {
	split := ComputeSplit(breakdown("50.00", "10.00", "5.00", "4.00"))

	assert.Equal(t, int64(5400), split.MerchantCents)
	assert.Equal(t, int64(800), split.DriverCents)
	assert.Equal(t, int64(700), split.HouseCents)
}

func TestComputeSplitMerchantIgnoresFees(t *testing.T) {
	a := ComputeSplit(breakdown("20.00", "0.00", "0.00", "1.50"))
	b := ComputeSplit(breakdown("20.00", "99.00", "42.00", "1.50"))

	assert.Equal(t, int64(2150), a.MerchantCents)
	assert.Equal(t, a.MerchantCents, b.MerchantCents)
}

func TestComputeSplitDeliveryFeeConserved(t *testing.T) {
	// driver share + house delivery share must always sum to the delivery
	// fee exactly, for any 2-decimal amount.
	fees := []string{"0.00", "0.01", "0.03", "0.07", "3.33", "9.99", "10.00", "12.34", "100.01"}
	for _, fee := range fees {
		t.Run(fee, func(t *testing.T) {
			b := breakdown("0.00", fee, "0.00", "0.00")
			split := ComputeSplit(b)
			feeCents := types.Cents(b.DeliveryFee)
			assert.Equal(t, feeCents, split.DriverCents+split.HouseCents,
				fmt.Sprintf("delivery fee %s not conserved", fee))
		})
	}
}

func TestComputeSplitServiceFeeGoesToHouse(t *testing.T) {
	split := ComputeSplit(breakdown("0.00", "0.00", "7.25", "0.00"))
	assert.Equal(t, int64(725), split.HouseCents)
	assert.Zero(t, split.DriverCents)
	assert.Zero(t, split.MerchantCents)
}
