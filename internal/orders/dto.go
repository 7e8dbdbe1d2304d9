package orders

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// CreateOrderInput carries the fields accepted by the create-order operation.
// Amounts are integer minor units.
type CreateOrderInput struct {
	CustomerID       uuid.UUID
	MerchantID       uuid.UUID
	StoreID          *uuid.UUID
	Currency         string
	SubtotalCents    int64
	DeliveryFeeCents int64
	ServiceFeeCents  int64
	TaxCents         int64
	DeliveryAddress  *types.Address
	Items            json.RawMessage
}

// ListFilters restricts the order list to one party's orders. Exactly one of
// the three ids must be set.
type ListFilters struct {
	CustomerID *uuid.UUID
	RunnerID   *uuid.UUID
	MerchantID *uuid.UUID
}

// OrderSummary is the per-row shape returned by the order list.
type OrderSummary struct {
	ID                   uuid.UUID           `json:"id"`
	PaymentIntentID      *string             `json:"payment_intent_id,omitempty"`
	CustomerID           uuid.UUID           `json:"customer_id"`
	MerchantID           uuid.UUID           `json:"merchant_id"`
	RunnerID             *uuid.UUID          `json:"runner_id,omitempty"`
	Status               enums.OrderStatus   `json:"status"`
	PaymentStatus        enums.PaymentStatus `json:"payment_status"`
	MerchantPayoutStatus enums.PayoutStatus  `json:"merchant_payout_status"`
	DeliveryPayoutStatus enums.PayoutStatus  `json:"delivery_payout_status"`
	TotalCents           int64               `json:"total_cents"`
	Currency             string              `json:"currency"`
	CreatedAt            time.Time           `json:"created_at"`
}

// OrderList wraps the paginated orders plus the next page cursor.
type OrderList struct {
	Orders     []OrderSummary `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}
