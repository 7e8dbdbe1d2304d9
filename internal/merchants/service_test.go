package merchants

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
)

func setupMerchantsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS merchants (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  stripe_account_id TEXT UNIQUE,
  charges_enabled INTEGER NOT NULL DEFAULT 0,
  payouts_enabled INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)

	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM merchants").Error
	})

	return db
}

func seedMerchant(t *testing.T, db *gorm.DB, merchant *models.Merchant) *models.Merchant {
	t.Helper()

	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	require.NoError(t, db.Create(merchant).Error)
	return merchant
}

func TestPayoutAccountProvisioned(t *testing.T) {
	db := setupMerchantsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	accountID := "acct_test_123"
	merchant := seedMerchant(t, db, &models.Merchant{
		Name:            "Westside Auto Parts",
		StripeAccountID: &accountID,
		ChargesEnabled:  true,
		PayoutsEnabled:  true,
	})

	status, err := svc.PayoutAccount(context.Background(), merchant.ID)
	require.NoError(t, err)
	assert.True(t, status.Provisioned)
	assert.True(t, status.ChargesEnabled)
	assert.True(t, status.PayoutsEnabled)
	require.NotNil(t, status.StripeAccountID)
	assert.Equal(t, accountID, *status.StripeAccountID)
}

func TestPayoutAccountNotProvisioned(t *testing.T) {
	db := setupMerchantsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	merchant := seedMerchant(t, db, &models.Merchant{Name: "No Stripe Yet"})

	status, err := svc.PayoutAccount(context.Background(), merchant.ID)
	require.NoError(t, err)
	assert.False(t, status.Provisioned)
	assert.Nil(t, status.StripeAccountID)
}

func TestPayoutAccountNotFound(t *testing.T) {
	db := setupMerchantsTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	require.NoError(t, err)

	_, err = svc.PayoutAccount(context.Background(), uuid.New())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestSyncAccountUpdatesFlags(t *testing.T) {
	db := setupMerchantsTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, nil)
	require.NoError(t, err)

	accountID := "acct_sync_1"
	seedMerchant(t, db, &models.Merchant{
		Name:            "Sync Target",
		StripeAccountID: &accountID,
	})

	require.NoError(t, svc.SyncAccount(context.Background(), accountID, true, true))

	updated, err := repo.FindByStripeAccountID(context.Background(), accountID)
	require.NoError(t, err)
	assert.True(t, updated.ChargesEnabled)
	assert.True(t, updated.PayoutsEnabled)
}

func TestSyncAccountUnknownAccountIsIgnored(t *testing.T) {
	db := setupMerchantsTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	require.NoError(t, err)

	assert.NoError(t, svc.SyncAccount(context.Background(), "acct_never_seen", true, false))
}

func TestSyncAccountRequiresAccountID(t *testing.T) {
	db := setupMerchantsTestDB(t)
	svc, err := NewService(NewRepository(db), nil)
	require.NoError(t, err)

	err = svc.SyncAccount(context.Background(), "", true, true)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
