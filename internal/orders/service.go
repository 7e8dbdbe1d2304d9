package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mypartsrunner/delivery-backend/pkg/db/models"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/pagination"
)

// Service defines order operations beyond repository reads.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*OrderList, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error)
	AssignRunner(ctx context.Context, orderID, runnerID uuid.UUID) (*models.Order, error)
}

// Notifier pushes customer-facing order lifecycle notices.
type Notifier interface {
	RunnerAssigned(ctx context.Context, customerID, orderID uuid.UUID) error
}

type service struct {
	repo     Repository
	notifier Notifier
	logg     *logger.Logger
}

// NewService builds the orders service. The notifier is optional.
func NewService(repo Repository, notifier Notifier, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	return &service{repo: repo, notifier: notifier, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if input.MerchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if input.SubtotalCents < 0 || input.DeliveryFeeCents < 0 || input.ServiceFeeCents < 0 || input.TaxCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amounts must be non-negative")
	}

	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}

	order := &models.Order{
		CustomerID:           input.CustomerID,
		MerchantID:           input.MerchantID,
		StoreID:              input.StoreID,
		Status:               enums.OrderStatusPendingPayment,
		PaymentStatus:        enums.PaymentStatusPending,
		MerchantPayoutStatus: enums.PayoutStatusUnallocated,
		DeliveryPayoutStatus: enums.PayoutStatusUnallocated,
		Currency:             currency,
		SubtotalCents:        input.SubtotalCents,
		DeliveryFeeCents:     input.DeliveryFeeCents,
		ServiceFeeCents:      input.ServiceFeeCents,
		TaxCents:             input.TaxCents,
		TotalCents:           input.SubtotalCents + input.DeliveryFeeCents + input.ServiceFeeCents + input.TaxCents,
		DeliveryAddress:      input.DeliveryAddress,
		Items:                input.Items,
	}

	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order")
	}
	return created, nil
}

// List requires exactly one party filter so a caller can never page an
// unbounded table scan. Validation happens before any query runs.
func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*OrderList, error) {
	set := 0
	if filters.CustomerID != nil {
		set++
	}
	if filters.RunnerID != nil {
		set++
	}
	if filters.MerchantID != nil {
		set++
	}
	if set != 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			"exactly one of customer_id, runner_id or merchant_id is required")
	}

	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing orders")
	}
	return list, nil
}

var allowedTransitions = map[enums.OrderStatus][]enums.OrderStatus{
	enums.OrderStatusPendingPayment: {enums.OrderStatusConfirmed, enums.OrderStatusCanceled},
	enums.OrderStatusConfirmed:      {enums.OrderStatusPickedUp, enums.OrderStatusCanceled},
	enums.OrderStatusPickedUp:       {enums.OrderStatusDelivered},
}

func transitionAllowed(from, to enums.OrderStatus) bool {
	for _, candidate := range allowedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status != status && !transitionAllowed(order.Status, status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, status))
	}

	if err := s.repo.Update(ctx, orderID, map[string]any{"status": status}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating order status")
	}
	order.Status = status
	return order, nil
}

// AssignRunner sets the runner and confirms the order in one write.
func (s *service) AssignRunner(ctx context.Context, orderID, runnerID uuid.UUID) (*models.Order, error) {
	if runnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "runner id is required")
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == enums.OrderStatusCanceled || order.Status == enums.OrderStatusDelivered {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot assign runner to %s order", order.Status))
	}

	updates := map[string]any{
		"runner_id": runnerID,
		"status":    enums.OrderStatusConfirmed,
	}
	if err := s.repo.Update(ctx, orderID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assigning runner")
	}
	order.RunnerID = &runnerID
	order.Status = enums.OrderStatusConfirmed

	// Notification failure must never fail the assignment.
	if s.notifier != nil {
		if err := s.notifier.RunnerAssigned(ctx, order.CustomerID, order.ID); err != nil && s.logg != nil {
			s.logg.Error(s.logg.WithOrderID(ctx, order.ID.String()), "runner assignment notification failed", err)
		}
	}
	return order, nil
}

func (s *service) findOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order")
	}
	return order, nil
}
