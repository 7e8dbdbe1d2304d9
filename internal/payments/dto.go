package payments

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// OrderDetails describes the order a payment intent is charged for.
type OrderDetails struct {
	CustomerID      uuid.UUID
	MerchantID      uuid.UUID
	StoreID         *uuid.UUID
	Breakdown       types.Breakdown
	DeliveryAddress *types.Address
	Items           json.RawMessage
}

// CustomerMetadata is the free-form contact context attached to the intent.
type CustomerMetadata struct {
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	DeliveryAddress string
	OrderType       string
}

// CreateIntentInput is the contract of the intent gateway.
type CreateIntentInput struct {
	AmountCents  int64
	Currency     string
	OrderDetails OrderDetails
	Metadata     CustomerMetadata
}

// CreateIntentResult is returned to the checkout client.
type CreateIntentResult struct {
	ClientSecret          string    `json:"client_secret"`
	PaymentIntentID       string    `json:"payment_intent_id"`
	OrderID               uuid.UUID `json:"order_id"`
	AmountCents           int64     `json:"amount_cents"`
	PlatformFeeCents      int64     `json:"platform_fee_cents"`
	MerchantReceivesCents int64     `json:"merchant_receives_cents"`
}
