package stripewebhook

import (
	"context"
	"encoding/json"

	"github.com/stripe/stripe-go/v84"

	"github.com/mypartsrunner/delivery-backend/internal/payments"
	"github.com/mypartsrunner/delivery-backend/internal/payouts"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

type allocator interface {
	Allocate(ctx context.Context, input payouts.AllocateInput) (*payouts.AllocateResult, error)
}

type merchantSyncer interface {
	SyncAccount(ctx context.Context, accountID string, chargesEnabled, payoutsEnabled bool) error
}

type ServiceParams struct {
	Allocator allocator
	Merchants merchantSyncer
	Logger    *logger.Logger
}

// Service routes verified Stripe events to their handlers. Dispatch is
// stateless; idempotency lives in the guard at the controller edge and the
// ledger's unique index underneath.
type Service struct {
	allocator allocator
	merchants merchantSyncer
	logg      *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Allocator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "allocator required")
	}
	if params.Merchants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "merchants service required")
	}
	return &Service{
		allocator: params.Allocator,
		merchants: params.Merchants,
		logg:      params.Logger,
	}, nil
}

func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	if s.logg != nil {
		ctx = s.logg.WithEventID(ctx, string(event.ID))
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		return s.handlePaymentSucceeded(ctx, event)

	case stripe.EventTypePaymentIntentPaymentFailed:
		// The order stays in pending_payment; there is no failed state and
		// no retry here. Reconciliation is a product decision, not ours.
		s.logEvent(ctx, event, "payment intent failed")
		return nil

	case stripe.EventTypeCheckoutSessionCompleted, stripe.EventTypeCheckoutSessionExpired:
		s.logEvent(ctx, event, "checkout session event")
		return nil

	case stripe.EventTypeAccountUpdated:
		return s.handleAccountUpdated(ctx, event)

	case stripe.EventTypeTransferCreated:
		s.logEvent(ctx, event, "transfer created")
		return nil

	case stripe.EventTypePayoutPaid:
		s.logEvent(ctx, event, "payout paid")
		return nil

	default:
		// Unknown-but-valid events must be acknowledged or Stripe retries
		// them forever.
		s.logEvent(ctx, event, "unhandled stripe event type")
		return nil
	}
}

func (s *Service) handlePaymentSucceeded(ctx context.Context, event *stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode payment intent event")
	}

	meta, err := payments.DecodeMetadata(intent.Metadata)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode intent metadata")
	}

	result, err := s.allocator.Allocate(ctx, payouts.AllocateInput{
		PaymentIntentID: intent.ID,
		MerchantID:      meta.MerchantID,
		Breakdown:       meta.Breakdown,
	})
	if err != nil {
		return err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"payment_intent_id": intent.ID,
			"order_id":          result.OrderID.String(),
			"already_allocated": result.AlreadyAllocated,
		})
		s.logg.Info(logCtx, "payout allocation recorded")
	}
	return nil
}

func (s *Service) handleAccountUpdated(ctx context.Context, event *stripe.Event) error {
	var account stripe.Account
	if err := json.Unmarshal(event.Data.Raw, &account); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode account event")
	}
	return s.merchants.SyncAccount(ctx, account.ID, account.ChargesEnabled, account.PayoutsEnabled)
}

func (s *Service) logEvent(ctx context.Context, event *stripe.Event, msg string) {
	if s.logg == nil {
		return
	}
	s.logg.Info(s.logg.WithField(ctx, "event_type", string(event.Type)), msg)
}
