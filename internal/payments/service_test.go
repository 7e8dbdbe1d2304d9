package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/internal/merchants"
	"github.com/mypartsrunner/delivery-backend/internal/orders"
	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

type fakeIntentClient struct {
	params  *stripe.PaymentIntentParams
	created int
	err     error
}

func (f *fakeIntentClient) CreateIntent(_ context.Context, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created++
	f.params = params
	return &stripe.PaymentIntent{
		ID:           "pi_fake_1",
		ClientSecret: "pi_fake_1_secret",
		Status:       stripe.PaymentIntentStatusRequiresPaymentMethod,
		Metadata:     params.Metadata,
	}, nil
}

func (f *fakeIntentClient) GetIntent(_ context.Context, _ string) (*stripe.PaymentIntent, error) {
	return nil, errors.New("not implemented")
}

type fakeMerchantsRepo struct {
	merchants.Repository
	byID map[uuid.UUID]*models.Merchant
}

func (f *fakeMerchantsRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Merchant, error) {
	merchant, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return merchant, nil
}

type fakePaymentsOrdersRepo struct {
	orders.Repository
	created []*models.Order
	err     error
}

func (f *fakePaymentsOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, order)
	return order, nil
}

func testBreakdown() types.Breakdown {
	return types.Breakdown{
		Subtotal:    decimal.RequireFromString("50.00"),
		DeliveryFee: decimal.RequireFromString("10.00"),
		ServiceFee:  decimal.RequireFromString("5.00"),
		Tax:         decimal.RequireFromString("4.00"),
	}
}

func provisionedMerchant() (*fakeMerchantsRepo, uuid.UUID) {
	merchantID := uuid.New()
	accountID := "acct_merchant_1"
	return &fakeMerchantsRepo{byID: map[uuid.UUID]*models.Merchant{
		merchantID: {ID: merchantID, Name: "Provisioned", StripeAccountID: &accountID},
	}}, merchantID
}

func TestPlatformFeeCents(t *testing.T) {
	// serviceFee 5.00 + deliveryFee 10.00 * 0.2 = 7.00 -> 700 cents
	assert.Equal(t, int64(700), PlatformFeeCents(testBreakdown()))

	odd := types.Breakdown{
		Subtotal:    decimal.RequireFromString("10.00"),
		DeliveryFee: decimal.RequireFromString("3.33"),
		ServiceFee:  decimal.RequireFromString("1.99"),
		Tax:         decimal.Zero,
	}
	// 1.99 + 0.666 = 2.656 -> 266 cents after rounding
	assert.Equal(t, int64(266), PlatformFeeCents(odd))

	assert.Zero(t, PlatformFeeCents(types.Breakdown{}))
}

func TestCreateIntentSuccess(t *testing.T) {
	client := &fakeIntentClient{}
	merchantRepo, merchantID := provisionedMerchant()
	orderRepo := &fakePaymentsOrdersRepo{}

	svc, err := NewService(client, merchantRepo, orderRepo, "usd", nil)
	require.NoError(t, err)

	result, err := svc.CreateIntent(context.Background(), CreateIntentInput{
		AmountCents: 6900,
		OrderDetails: OrderDetails{
			CustomerID: uuid.New(),
			MerchantID: merchantID,
			Breakdown:  testBreakdown(),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_fake_1", result.PaymentIntentID)
	assert.Equal(t, "pi_fake_1_secret", result.ClientSecret)
	assert.Equal(t, int64(6900), result.AmountCents)
	assert.Equal(t, int64(700), result.PlatformFeeCents)
	assert.Equal(t, int64(6200), result.MerchantReceivesCents)

	require.NotNil(t, client.params)
	assert.Equal(t, int64(6900), *client.params.Amount)
	assert.Equal(t, int64(700), *client.params.ApplicationFeeAmount)
	require.NotNil(t, client.params.TransferData)
	assert.Equal(t, "acct_merchant_1", *client.params.TransferData.Destination)

	require.Len(t, orderRepo.created, 1)
	order := orderRepo.created[0]
	assert.Equal(t, result.OrderID, order.ID)
	require.NotNil(t, order.PaymentIntentID)
	assert.Equal(t, "pi_fake_1", *order.PaymentIntentID)
	assert.Equal(t, int64(5000), order.SubtotalCents)
	assert.Equal(t, int64(1000), order.DeliveryFeeCents)
	assert.Equal(t, int64(700), order.PlatformFeeCents)
}

func TestCreateIntentMerchantWithoutAccountFailsFast(t *testing.T) {
	client := &fakeIntentClient{}
	merchantID := uuid.New()
	merchantRepo := &fakeMerchantsRepo{byID: map[uuid.UUID]*models.Merchant{
		merchantID: {ID: merchantID, Name: "Unprovisioned"},
	}}
	orderRepo := &fakePaymentsOrdersRepo{}

	svc, err := NewService(client, merchantRepo, orderRepo, "usd", nil)
	require.NoError(t, err)

	_, err = svc.CreateIntent(context.Background(), CreateIntentInput{
		AmountCents: 6900,
		OrderDetails: OrderDetails{
			CustomerID: uuid.New(),
			MerchantID: merchantID,
			Breakdown:  testBreakdown(),
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConfig, pkgerrors.As(err).Code())

	assert.Zero(t, client.created, "no intent may be created")
	assert.Empty(t, orderRepo.created, "no order row may be written")
}

func TestCreateIntentValidation(t *testing.T) {
	client := &fakeIntentClient{}
	merchantRepo, merchantID := provisionedMerchant()
	svc, err := NewService(client, merchantRepo, &fakePaymentsOrdersRepo{}, "usd", nil)
	require.NoError(t, err)

	cases := []struct {
		name  string
		input CreateIntentInput
	}{
		{"zero amount", CreateIntentInput{
			OrderDetails: OrderDetails{CustomerID: uuid.New(), MerchantID: merchantID, Breakdown: testBreakdown()},
		}},
		{"missing customer", CreateIntentInput{
			AmountCents:  6900,
			OrderDetails: OrderDetails{MerchantID: merchantID, Breakdown: testBreakdown()},
		}},
		{"amount breakdown mismatch", CreateIntentInput{
			AmountCents:  7000,
			OrderDetails: OrderDetails{CustomerID: uuid.New(), MerchantID: merchantID, Breakdown: testBreakdown()},
		}},
		{"negative component", CreateIntentInput{
			AmountCents: 6900,
			OrderDetails: OrderDetails{
				CustomerID: uuid.New(),
				MerchantID: merchantID,
				Breakdown: types.Breakdown{
					Subtotal:    decimal.RequireFromString("70.00"),
					DeliveryFee: decimal.RequireFromString("-1.00"),
				},
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateIntent(context.Background(), tc.input)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
			assert.Zero(t, client.created)
		})
	}
}

func TestCreateIntentSurvivesOrderInsertFailure(t *testing.T) {
	client := &fakeIntentClient{}
	merchantRepo, merchantID := provisionedMerchant()
	orderRepo := &fakePaymentsOrdersRepo{err: errors.New("datastore down")}

	svc, err := NewService(client, merchantRepo, orderRepo, "usd", nil)
	require.NoError(t, err)

	result, err := svc.CreateIntent(context.Background(), CreateIntentInput{
		AmountCents: 6900,
		OrderDetails: OrderDetails{
			CustomerID: uuid.New(),
			MerchantID: merchantID,
			Breakdown:  testBreakdown(),
		},
	})
	require.NoError(t, err, "intent creation must not be blocked by a bookkeeping write failure")
	assert.Equal(t, "pi_fake_1", result.PaymentIntentID)
}

func TestCreateIntentStripeFailurePropagates(t *testing.T) {
	client := &fakeIntentClient{err: errors.New("stripe unavailable")}
	merchantRepo, merchantID := provisionedMerchant()
	orderRepo := &fakePaymentsOrdersRepo{}

	svc, err := NewService(client, merchantRepo, orderRepo, "usd", nil)
	require.NoError(t, err)

	_, err = svc.CreateIntent(context.Background(), CreateIntentInput{
		AmountCents: 6900,
		OrderDetails: OrderDetails{
			CustomerID: uuid.New(),
			MerchantID: merchantID,
			Breakdown:  testBreakdown(),
		},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
	assert.Empty(t, orderRepo.created)
}

func TestMetadataRoundTrip(t *testing.T) {
	storeID := uuid.New()
	meta := IntentMetadata{
		OrderID:    uuid.New(),
		CustomerID: uuid.New(),
		MerchantID: uuid.New(),
		StoreID:    &storeID,
		Breakdown:  testBreakdown(),
		Customer: CustomerMetadata{
			CustomerName:  "Pat Doe",
			CustomerEmail: "pat@example.com",
			OrderType:     "delivery",
		},
	}

	encoded := EncodeMetadata(meta)
	decoded, err := DecodeMetadata(encoded)
	require.NoError(t, err)

	assert.Equal(t, meta.OrderID, decoded.OrderID)
	assert.Equal(t, meta.CustomerID, decoded.CustomerID)
	assert.Equal(t, meta.MerchantID, decoded.MerchantID)
	require.NotNil(t, decoded.StoreID)
	assert.Equal(t, storeID, *decoded.StoreID)
	assert.True(t, decoded.Breakdown.Subtotal.Equal(meta.Breakdown.Subtotal))
	assert.True(t, decoded.Breakdown.DeliveryFee.Equal(meta.Breakdown.DeliveryFee))
	assert.Equal(t, "Pat Doe", decoded.Customer.CustomerName)
}

func TestDecodeMetadataRejectsBadInput(t *testing.T) {
	_, err := DecodeMetadata(nil)
	require.Error(t, err)

	_, err = DecodeMetadata(map[string]string{"schema_version": "99"})
	require.Error(t, err)

	encoded := EncodeMetadata(IntentMetadata{
		OrderID:    uuid.New(),
		CustomerID: uuid.New(),
		MerchantID: uuid.New(),
		Breakdown:  testBreakdown(),
	})
	encoded["subtotal"] = "fifty"
	_, err = DecodeMetadata(encoded)
	require.Error(t, err)
}
