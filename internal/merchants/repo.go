package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a merchants repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *repository) FindByStripeAccountID(ctx context.Context, accountID string) (*models.Merchant, error) {
	var merchant models.Merchant
	err := r.db.WithContext(ctx).
		Where("stripe_account_id = ?", accountID).
		First(&merchant).Error
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

func (r *repository) UpdateByStripeAccountID(ctx context.Context, accountID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Merchant{}).
		Where("stripe_account_id = ?", accountID).
		Updates(updates).Error
}
