package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  payment_intent_id TEXT UNIQUE,
  customer_id TEXT NOT NULL,
  merchant_id TEXT NOT NULL,
  store_id TEXT,
  runner_id TEXT,
  status TEXT NOT NULL DEFAULT 'pending_payment',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  merchant_payout_status TEXT NOT NULL DEFAULT 'unallocated',
  delivery_payout_status TEXT NOT NULL DEFAULT 'unallocated',
  currency TEXT NOT NULL DEFAULT 'usd',
  subtotal_cents INTEGER NOT NULL DEFAULT 0,
  delivery_fee_cents INTEGER NOT NULL DEFAULT 0,
  service_fee_cents INTEGER NOT NULL DEFAULT 0,
  tax_cents INTEGER NOT NULL DEFAULT 0,
  total_cents INTEGER NOT NULL DEFAULT 0,
  platform_fee_cents INTEGER NOT NULL DEFAULT 0,
  delivery_address TEXT,
  items TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM orders").Error
	})

	return db
}

func seedOrder(t *testing.T, db *gorm.DB, mutate func(*models.Order)) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:                   uuid.New(),
		CustomerID:           uuid.New(),
		MerchantID:           uuid.New(),
		Status:               enums.OrderStatusPendingPayment,
		PaymentStatus:        enums.PaymentStatusPending,
		MerchantPayoutStatus: enums.PayoutStatusUnallocated,
		DeliveryPayoutStatus: enums.PayoutStatusUnallocated,
		Currency:             "usd",
		TotalCents:           6900,
	}
	if mutate != nil {
		mutate(order)
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepoCreateAssignsID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order, err := repo.Create(context.Background(), &models.Order{
		CustomerID: uuid.New(),
		MerchantID: uuid.New(),
		Status:     enums.OrderStatusPendingPayment,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)

	found, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
}

func TestRepoFindByPaymentIntentID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	intentID := "pi_repo_find"
	seeded := seedOrder(t, db, func(o *models.Order) { o.PaymentIntentID = &intentID })

	found, err := repo.FindByPaymentIntentID(context.Background(), intentID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindByPaymentIntentID(context.Background(), "pi_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepoListFiltersByCustomer(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customerID := uuid.New()
	mine := seedOrder(t, db, func(o *models.Order) { o.CustomerID = customerID })
	seedOrder(t, db, nil)

	list, err := repo.List(context.Background(), ListFilters{CustomerID: &customerID}, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, mine.ID, list.Orders[0].ID)
	assert.Empty(t, list.NextCursor)
}

func TestRepoListPaginates(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	customerID := uuid.New()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		created := base.Add(time.Duration(i) * time.Minute)
		seedOrder(t, db, func(o *models.Order) {
			o.CustomerID = customerID
			o.CreatedAt = created
		})
	}

	first, err := repo.List(context.Background(), ListFilters{CustomerID: &customerID}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.List(context.Background(), ListFilters{CustomerID: &customerID}, pagination.Params{
		Limit:  2,
		Cursor: first.NextCursor,
	})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Empty(t, second.NextCursor)

	assert.True(t, first.Orders[0].CreatedAt.After(first.Orders[1].CreatedAt) ||
		first.Orders[0].CreatedAt.Equal(first.Orders[1].CreatedAt))
}

func TestRepoUpdateByPaymentIntentID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	intentID := "pi_update_target"
	seedOrder(t, db, func(o *models.Order) { o.PaymentIntentID = &intentID })

	affected, err := repo.UpdateByPaymentIntentID(context.Background(), intentID, map[string]any{
		"status":         enums.OrderStatusConfirmed,
		"payment_status": enums.PaymentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateByPaymentIntentID(context.Background(), "pi_nope", map[string]any{
		"status": enums.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.Zero(t, affected)
}
