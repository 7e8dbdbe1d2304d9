package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// Order mirrors one payment intent. PaymentIntentID is unique so a
// re-delivered webhook matches exactly one row.
type Order struct {
	ID                   uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentIntentID      *string            `gorm:"column:payment_intent_id;uniqueIndex"`
	CustomerID           uuid.UUID          `gorm:"column:customer_id;type:uuid;not null"`
	MerchantID           uuid.UUID          `gorm:"column:merchant_id;type:uuid;not null"`
	StoreID              *uuid.UUID         `gorm:"column:store_id;type:uuid"`
	RunnerID             *uuid.UUID         `gorm:"column:runner_id;type:uuid"`
	Status               enums.OrderStatus  `gorm:"column:status;type:order_status;not null;default:'pending_payment'"`
	PaymentStatus        enums.PaymentStatus `gorm:"column:payment_status;type:payment_status;not null;default:'pending'"`
	MerchantPayoutStatus enums.PayoutStatus `gorm:"column:merchant_payout_status;type:payout_status;not null;default:'unallocated'"`
	DeliveryPayoutStatus enums.PayoutStatus `gorm:"column:delivery_payout_status;type:payout_status;not null;default:'unallocated'"`
	Currency             string             `gorm:"column:currency;not null;default:'usd'"`
	SubtotalCents        int64              `gorm:"column:subtotal_cents;not null"`
	DeliveryFeeCents     int64              `gorm:"column:delivery_fee_cents;not null"`
	ServiceFeeCents      int64              `gorm:"column:service_fee_cents;not null"`
	TaxCents             int64              `gorm:"column:tax_cents;not null"`
	TotalCents           int64              `gorm:"column:total_cents;not null"`
	PlatformFeeCents     int64              `gorm:"column:platform_fee_cents;not null;default:0"`
	DeliveryAddress      *types.Address     `gorm:"column:delivery_address;type:jsonb"`
	Items                json.RawMessage    `gorm:"column:items;type:jsonb"`
	CreatedAt            time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
