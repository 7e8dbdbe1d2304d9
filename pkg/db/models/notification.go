package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/pkg/enums"
)

// Notification is a queued message for a customer, merchant or runner.
// Delivery (email/SMS) happens downstream of the outbox publisher.
type Notification struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RecipientID uuid.UUID              `gorm:"column:recipient_id;type:uuid;not null"`
	Kind        enums.NotificationKind `gorm:"column:kind;type:notification_kind;not null"`
	Title       string                 `gorm:"column:title;not null"`
	Body        string                 `gorm:"column:body"`
	Metadata    json.RawMessage        `gorm:"column:metadata;type:jsonb"`
	ReadAt      *time.Time             `gorm:"column:read_at"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}
