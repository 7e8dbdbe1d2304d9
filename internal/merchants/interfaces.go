package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
)

// Repository defines persistence operations for the merchants table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	FindByStripeAccountID(ctx context.Context, accountID string) (*models.Merchant, error)
	UpdateByStripeAccountID(ctx context.Context, accountID string, updates map[string]any) error
}
