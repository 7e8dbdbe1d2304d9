package payouts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/internal/orders"
	"github.com/mypartsrunner/delivery-backend/pkg/db"
	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

// ledgerUniqueIndex guards one ledger row per (payment_intent_id, type).
// Re-delivered webhooks trip it instead of double-crediting anyone.
const ledgerUniqueIndex = "ux_transactions_intent_type"

var errAlreadyAllocated = errors.New("payout already allocated")

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type intentGetter interface {
	GetIntent(ctx context.Context, id string) (*stripe.PaymentIntent, error)
}

// Service is the payout allocator: given a succeeded payment intent it
// records the merchant/driver/house split as ledger rows and confirms the
// order, exactly once per intent.
type Service interface {
	Allocate(ctx context.Context, input AllocateInput) (*AllocateResult, error)
}

type service struct {
	intents  intentGetter
	orders   orders.Repository
	ledger   LedgerRepository
	tx       txRunner
	notifier Notifier
	logg     *logger.Logger
}

// NewService builds the payout allocator.
func NewService(intents intentGetter, orderRepo orders.Repository, ledger LedgerRepository, tx txRunner, notifier Notifier, logg *logger.Logger) (Service, error) {
	if intents == nil {
		return nil, errors.New("intent client is required")
	}
	if orderRepo == nil {
		return nil, errors.New("orders repository is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger repository is required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	return &service{
		intents:  intents,
		orders:   orderRepo,
		ledger:   ledger,
		tx:       tx,
		notifier: notifier,
		logg:     logg,
	}, nil
}

func (s *service) Allocate(ctx context.Context, input AllocateInput) (*AllocateResult, error) {
	if input.PaymentIntentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent id is required")
	}
	if !input.Breakdown.NonNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "breakdown amounts must be non-negative")
	}

	intent, err := s.intents.GetIntent(ctx, input.PaymentIntentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieving payment intent")
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("payment not successful (status %s)", intent.Status))
	}

	split := ComputeSplit(input.Breakdown)

	var order *models.Order
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.orders.WithTx(tx)
		txLedger := s.ledger.WithTx(tx)

		found, err := txOrders.FindByPaymentIntentID(ctx, input.PaymentIntentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "no order for payment intent")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
		}
		order = found

		affected, err := txOrders.UpdateByPaymentIntentID(ctx, input.PaymentIntentID, map[string]any{
			"status":                 enums.OrderStatusConfirmed,
			"payment_status":         enums.PaymentStatusCompleted,
			"merchant_payout_status": enums.PayoutStatusCompleted,
			"delivery_payout_status": enums.PayoutStatusPending,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "confirming order")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no order for payment intent")
		}

		for _, row := range s.ledgerRows(input, order, split) {
			if err := txLedger.Insert(ctx, row); err != nil {
				if db.IsUniqueViolation(err, ledgerUniqueIndex) {
					return errAlreadyAllocated
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting ledger row")
			}
		}
		return nil
	})

	result := &AllocateResult{
		Merchant: PayoutShare{AmountCents: split.MerchantCents, Status: enums.TransactionStatusCompleted},
		Driver:   PayoutShare{AmountCents: split.DriverCents, Status: enums.TransactionStatusPendingDelivery},
		House:    PayoutShare{AmountCents: split.HouseCents, Status: enums.TransactionStatusPendingDelivery},
	}
	if order != nil {
		result.OrderID = order.ID
	}

	switch {
	case txErr == nil:
	case errors.Is(txErr, errAlreadyAllocated):
		// At-least-once webhook delivery: the first run wrote the ledger,
		// this one acknowledges without changing state.
		result.AlreadyAllocated = true
		if s.logg != nil {
			s.logg.Info(s.logg.WithPaymentIntentID(ctx, input.PaymentIntentID),
				"payout already allocated, skipping")
		}
		return result, nil
	default:
		return nil, txErr
	}

	s.notify(ctx, input, order, split)
	return result, nil
}

func (s *service) ledgerRows(input AllocateInput, order *models.Order, split Split) []*models.Transaction {
	merchantID := input.MerchantID
	if merchantID == uuid.Nil {
		merchantID = order.MerchantID
	}

	merchant := &models.Transaction{
		PaymentIntentID: input.PaymentIntentID,
		OrderID:         order.ID,
		RecipientType:   enums.RecipientTypeMerchant,
		RecipientID:     &merchantID,
		Type:            enums.TransactionTypeOrderPayment,
		Status:          enums.TransactionStatusCompleted,
		AmountCents:     split.MerchantCents,
		Description:     "Order payment (subtotal + tax), transferred at charge time",
	}
	driver := &models.Transaction{
		PaymentIntentID: input.PaymentIntentID,
		OrderID:         order.ID,
		RecipientType:   enums.RecipientTypeDriver,
		RecipientID:     order.RunnerID,
		Type:            enums.TransactionTypeDeliveryFee,
		Status:          enums.TransactionStatusPendingDelivery,
		AmountCents:     split.DriverCents,
		Description:     "Driver delivery fee share (80%), held until delivery completes",
	}
	house := &models.Transaction{
		PaymentIntentID: input.PaymentIntentID,
		OrderID:         order.ID,
		RecipientType:   enums.RecipientTypeHouse,
		Type:            enums.TransactionTypeServiceFee,
		Status:          enums.TransactionStatusPendingDelivery,
		AmountCents:     split.HouseCents,
		Description:     "House share: service fee plus 20% of delivery fee",
	}
	return []*models.Transaction{merchant, driver, house}
}

// notify fires the post-allocation hooks. Notification failure must never
// fail the payout, so errors are logged and dropped.
func (s *service) notify(ctx context.Context, input AllocateInput, order *models.Order, split Split) {
	if s.notifier == nil || order == nil {
		return
	}

	merchantID := input.MerchantID
	if merchantID == uuid.Nil {
		merchantID = order.MerchantID
	}

	if err := s.notifier.PaymentReceived(ctx, merchantID, order.ID, split.MerchantCents); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "merchant payment notification failed", err)
	}
	if err := s.notifier.OrderConfirmed(ctx, order.CustomerID, order.ID); err != nil && s.logg != nil {
		s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "customer confirmation notification failed", err)
	}
}
