package models

import (
	"time"

	"github.com/google/uuid"
)

// Merchant is a seller whose payouts flow through a Stripe Connect
// sub-account. StripeAccountID is nil until onboarding completes; creating a
// payment intent for such a merchant fails fast.
type Merchant struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string    `gorm:"column:name;not null"`
	Email           *string   `gorm:"column:email"`
	StripeAccountID *string   `gorm:"column:stripe_account_id;uniqueIndex"`
	ChargesEnabled  bool      `gorm:"column:charges_enabled;not null;default:false"`
	PayoutsEnabled  bool      `gorm:"column:payouts_enabled;not null;default:false"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
