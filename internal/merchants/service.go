package merchants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

// PayoutAccountStatus reports whether a merchant can receive Connect payouts.
type PayoutAccountStatus struct {
	MerchantID      uuid.UUID `json:"merchant_id"`
	StripeAccountID *string   `json:"stripe_account_id,omitempty"`
	Provisioned     bool      `json:"provisioned"`
	ChargesEnabled  bool      `json:"charges_enabled"`
	PayoutsEnabled  bool      `json:"payouts_enabled"`
}

// Service exposes merchant payout-account lookups and webhook-driven syncs.
type Service interface {
	PayoutAccount(ctx context.Context, merchantID uuid.UUID) (*PayoutAccountStatus, error)
	SyncAccount(ctx context.Context, accountID string, chargesEnabled, payoutsEnabled bool) error
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the merchants service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) PayoutAccount(ctx context.Context, merchantID uuid.UUID) (*PayoutAccountStatus, error) {
	merchant, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading merchant")
	}

	return &PayoutAccountStatus{
		MerchantID:      merchant.ID,
		StripeAccountID: merchant.StripeAccountID,
		Provisioned:     merchant.StripeAccountID != nil && *merchant.StripeAccountID != "",
		ChargesEnabled:  merchant.ChargesEnabled,
		PayoutsEnabled:  merchant.PayoutsEnabled,
	}, nil
}

// SyncAccount mirrors Connect capability flags pushed by account.updated
// events. A capability change for an unknown account is logged and ignored;
// the merchant may not have finished onboarding on our side yet.
func (s *service) SyncAccount(ctx context.Context, accountID string, chargesEnabled, payoutsEnabled bool) error {
	if accountID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "account id is required")
	}

	if _, err := s.repo.FindByStripeAccountID(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "stripe_account_id", accountID),
					"account.updated for unknown merchant account")
			}
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading merchant by account")
	}

	err := s.repo.UpdateByStripeAccountID(ctx, accountID, map[string]any{
		"charges_enabled": chargesEnabled,
		"payouts_enabled": payoutsEnabled,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "syncing merchant account flags")
	}
	return nil
}
