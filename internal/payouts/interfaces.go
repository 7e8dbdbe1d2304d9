package payouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
)

// LedgerRepository persists the append-only transactions ledger.
type LedgerRepository interface {
	WithTx(tx *gorm.DB) LedgerRepository
	Insert(ctx context.Context, transaction *models.Transaction) error
	ListByPaymentIntentID(ctx context.Context, paymentIntentID string) ([]models.Transaction, error)
}

// Notifier receives the fire-and-forget hooks after a successful allocation.
type Notifier interface {
	PaymentReceived(ctx context.Context, merchantID, orderID uuid.UUID, amountCents int64) error
	OrderConfirmed(ctx context.Context, customerID, orderID uuid.UUID) error
}
