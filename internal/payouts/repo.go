package payouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
)

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository builds a transactions repository bound to the provided DB.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithTx(tx *gorm.DB) LedgerRepository {
	if tx == nil {
		return r
	}
	return &ledgerRepository{db: tx}
}

func (r *ledgerRepository) Insert(ctx context.Context, transaction *models.Transaction) error {
	if transaction.ID == uuid.Nil {
		transaction.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *ledgerRepository) ListByPaymentIntentID(ctx context.Context, paymentIntentID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", paymentIntentID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
