package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/outbox"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// QueuedEvent is the outbox payload consumed by the downstream email/SMS
// dispatcher.
type QueuedEvent struct {
	NotificationID uuid.UUID              `json:"notification_id"`
	RecipientID    uuid.UUID              `json:"recipient_id"`
	Kind           enums.NotificationKind `json:"kind"`
	OrderID        uuid.UUID              `json:"order_id"`
	AmountCents    int64                  `json:"amount_cents,omitempty"`
}

// Service queues notifications: a durable row plus an outbox event, committed
// together. Actual delivery happens behind the outbox publisher; callers
// treat every method as fire-and-forget.
type Service struct {
	repo   Repository
	tx     txRunner
	outbox outboxEmitter
	logg   *logger.Logger
}

// NewService builds the notifications service.
func NewService(repo Repository, tx txRunner, emitter outboxEmitter, logg *logger.Logger) (*Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if tx == nil {
		return nil, errors.New("transaction runner is required")
	}
	if emitter == nil {
		return nil, errors.New("outbox emitter is required")
	}
	return &Service{repo: repo, tx: tx, outbox: emitter, logg: logg}, nil
}

// PaymentReceived queues the merchant-facing payment notification.
func (s *Service) PaymentReceived(ctx context.Context, merchantID, orderID uuid.UUID, amountCents int64) error {
	return s.queue(ctx, models.Notification{
		RecipientID: merchantID,
		Kind:        enums.NotificationKindPaymentReceived,
		Title:       "Payment received",
		Body:        fmt.Sprintf("You received a payment of $%.2f for order %s.", float64(amountCents)/100, orderID),
	}, orderID, amountCents)
}

// OrderConfirmed queues the customer-facing confirmation.
func (s *Service) OrderConfirmed(ctx context.Context, customerID, orderID uuid.UUID) error {
	return s.queue(ctx, models.Notification{
		RecipientID: customerID,
		Kind:        enums.NotificationKindOrderConfirmed,
		Title:       "Order confirmed",
		Body:        fmt.Sprintf("Your order %s has been confirmed and is being prepared.", orderID),
	}, orderID, 0)
}

// RunnerAssigned queues the customer-facing runner assignment notice.
func (s *Service) RunnerAssigned(ctx context.Context, customerID, orderID uuid.UUID) error {
	return s.queue(ctx, models.Notification{
		RecipientID: customerID,
		Kind:        enums.NotificationKindRunnerAssigned,
		Title:       "Runner assigned",
		Body:        fmt.Sprintf("A runner has been assigned to your order %s.", orderID),
	}, orderID, 0)
}

func (s *Service) queue(ctx context.Context, notification models.Notification, orderID uuid.UUID, amountCents int64) error {
	notification.ID = uuid.New()

	meta, err := json.Marshal(map[string]string{"order_id": orderID.String()})
	if err != nil {
		return err
	}
	notification.Metadata = meta

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Insert(ctx, &notification); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.OutboxEventTypeNotificationQueued,
			AggregateType: enums.OutboxAggregateTypeNotification,
			AggregateID:   notification.ID,
			Data: QueuedEvent{
				NotificationID: notification.ID,
				RecipientID:    notification.RecipientID,
				Kind:           notification.Kind,
				OrderID:        orderID,
				AmountCents:    amountCents,
			},
		})
	})
	if err != nil {
		return fmt.Errorf("queueing %s notification: %w", notification.Kind, err)
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"notification_id": notification.ID.String(),
			"kind":            notification.Kind.String(),
		})
		s.logg.Info(logCtx, "notification queued")
	}
	return nil
}
