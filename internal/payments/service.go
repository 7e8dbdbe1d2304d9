package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/internal/merchants"
	"github.com/mypartsrunner/delivery-backend/internal/orders"
	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// Service is the payment intent gateway: it creates provider intents carrying
// the merchant destination, the platform's application fee and the typed
// order metadata.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error)
}

type service struct {
	intents   IntentClient
	merchants merchants.Repository
	orders    orders.Repository
	currency  string
	logg      *logger.Logger
}

// NewService builds the payment gateway service.
func NewService(intents IntentClient, merchantRepo merchants.Repository, orderRepo orders.Repository, currency string, logg *logger.Logger) (Service, error) {
	if intents == nil {
		return nil, errors.New("intent client is required")
	}
	if merchantRepo == nil {
		return nil, errors.New("merchants repository is required")
	}
	if orderRepo == nil {
		return nil, errors.New("orders repository is required")
	}
	if currency == "" {
		currency = "usd"
	}
	return &service{
		intents:   intents,
		merchants: merchantRepo,
		orders:    orderRepo,
		currency:  currency,
		logg:      logg,
	}, nil
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*CreateIntentResult, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	merchant, err := s.merchants.FindByID(ctx, input.OrderDetails.MerchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading merchant")
	}
	if merchant.StripeAccountID == nil || *merchant.StripeAccountID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeConfig, "merchant payment setup not complete")
	}

	orderID := uuid.New()
	platformFee := PlatformFeeCents(input.OrderDetails.Breakdown)
	merchantReceives := input.AmountCents - platformFee

	currency := input.Currency
	if currency == "" {
		currency = s.currency
	}

	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(input.AmountCents),
		Currency:             stripe.String(currency),
		ApplicationFeeAmount: stripe.Int64(platformFee),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(*merchant.StripeAccountID),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Metadata = EncodeMetadata(IntentMetadata{
		OrderID:    orderID,
		CustomerID: input.OrderDetails.CustomerID,
		MerchantID: input.OrderDetails.MerchantID,
		StoreID:    input.OrderDetails.StoreID,
		Breakdown:  input.OrderDetails.Breakdown,
		Customer:   input.Metadata,
	})

	intent, err := s.intents.CreateIntent(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating payment intent")
	}

	// The order row is bookkeeping; its failure must never undo a created
	// intent, so the insert is best-effort.
	s.recordOrder(ctx, orderID, intent.ID, currency, platformFee, input)

	return &CreateIntentResult{
		ClientSecret:          intent.ClientSecret,
		PaymentIntentID:       intent.ID,
		OrderID:               orderID,
		AmountCents:           input.AmountCents,
		PlatformFeeCents:      platformFee,
		MerchantReceivesCents: merchantReceives,
	}, nil
}

func (s *service) validate(input CreateIntentInput) error {
	if input.AmountCents <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if input.OrderDetails.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if input.OrderDetails.MerchantID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if !input.OrderDetails.Breakdown.NonNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "breakdown amounts must be non-negative")
	}
	if types.Cents(input.OrderDetails.Breakdown.Total()) != input.AmountCents {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount does not match breakdown total")
	}
	return nil
}

func (s *service) recordOrder(ctx context.Context, orderID uuid.UUID, intentID, currency string, platformFee int64, input CreateIntentInput) {
	breakdown := input.OrderDetails.Breakdown
	order := &models.Order{
		ID:                   orderID,
		PaymentIntentID:      &intentID,
		CustomerID:           input.OrderDetails.CustomerID,
		MerchantID:           input.OrderDetails.MerchantID,
		StoreID:              input.OrderDetails.StoreID,
		Status:               enums.OrderStatusPendingPayment,
		PaymentStatus:        enums.PaymentStatusPending,
		MerchantPayoutStatus: enums.PayoutStatusUnallocated,
		DeliveryPayoutStatus: enums.PayoutStatusUnallocated,
		Currency:             currency,
		SubtotalCents:        types.Cents(breakdown.Subtotal),
		DeliveryFeeCents:     types.Cents(breakdown.DeliveryFee),
		ServiceFeeCents:      types.Cents(breakdown.ServiceFee),
		TaxCents:             types.Cents(breakdown.Tax),
		TotalCents:           input.AmountCents,
		PlatformFeeCents:     platformFee,
		DeliveryAddress:      input.OrderDetails.DeliveryAddress,
		Items:                input.OrderDetails.Items,
	}

	if _, err := s.orders.Create(ctx, order); err != nil && s.logg != nil {
		logCtx := s.logg.WithPaymentIntentID(s.logg.WithOrderID(ctx, orderID.String()), intentID)
		s.logg.Error(logCtx, "order record insert failed after intent creation", err)
	}
}
