package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/enums"
)

// Transaction is an append-only ledger row recording one share of a settled
// charge. The (payment_intent_id, type) unique index is what keeps payout
// allocation idempotent under at-least-once webhook delivery.
type Transaction struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PaymentIntentID string                  `gorm:"column:payment_intent_id;not null;uniqueIndex:ux_transactions_intent_type"`
	OrderID         uuid.UUID               `gorm:"column:order_id;type:uuid;not null"`
	RecipientType   enums.RecipientType     `gorm:"column:recipient_type;type:recipient_type;not null"`
	RecipientID     *uuid.UUID              `gorm:"column:recipient_id;type:uuid"`
	Type            enums.TransactionType   `gorm:"column:type;type:transaction_type;not null;uniqueIndex:ux_transactions_intent_type"`
	Status          enums.TransactionStatus `gorm:"column:status;type:transaction_status;not null"`
	AmountCents     int64                   `gorm:"column:amount_cents;not null"`
	Description     string                  `gorm:"column:description"`
	Metadata        json.RawMessage         `gorm:"column:metadata;type:jsonb"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
}
