package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/api/responses"
	"github.com/mypartsrunner/delivery-backend/api/validators"
	ordersvc "github.com/mypartsrunner/delivery-backend/internal/orders"
	"github.com/mypartsrunner/delivery-backend/pkg/enums"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/pagination"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// CreateOrder records an order before its payment intent exists. Amounts
// arrive as integer minor units.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.Create(ctx, ordersvc.CreateOrderInput{
			CustomerID:       payload.CustomerID,
			MerchantID:       payload.MerchantID,
			StoreID:          payload.StoreID,
			Currency:         payload.Currency,
			SubtotalCents:    payload.SubtotalCents,
			DeliveryFeeCents: payload.DeliveryFeeCents,
			ServiceFeeCents:  payload.ServiceFeeCents,
			TaxCents:         payload.TaxCents,
			DeliveryAddress:  payload.DeliveryAddress,
			Items:            payload.Items,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ListOrders pages through one party's orders. Exactly one of customer_id,
// runner_id, merchant_id must be supplied.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		customerID, err := validators.ParseQueryUUID(r, "customer_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		runnerID, err := validators.ParseQueryUUID(r, "runner_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		merchantID, err := validators.ParseQueryUUID(r, "merchant_id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		list, err := svc.List(ctx, ordersvc.ListFilters{
			CustomerID: customerID,
			RunnerID:   runnerID,
			MerchantID: merchantID,
		}, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// UpdateOrderStatus advances an order along its lifecycle.
func UpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(ctx, orderID, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// AssignOrderRunner attaches a runner to an order awaiting pickup.
func AssignOrderRunner(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload assignRunnerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.AssignRunner(ctx, orderID, payload.RunnerID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

type createOrderRequest struct {
	CustomerID       uuid.UUID       `json:"customer_id" validate:"required,uuid4"`
	MerchantID       uuid.UUID       `json:"merchant_id" validate:"required,uuid4"`
	StoreID          *uuid.UUID      `json:"store_id,omitempty" validate:"omitempty,uuid4"`
	Currency         string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	SubtotalCents    int64           `json:"subtotal_cents" validate:"gte=0"`
	DeliveryFeeCents int64           `json:"delivery_fee_cents" validate:"gte=0"`
	ServiceFeeCents  int64           `json:"service_fee_cents" validate:"gte=0"`
	TaxCents         int64           `json:"tax_cents" validate:"gte=0"`
	DeliveryAddress  *types.Address  `json:"delivery_address,omitempty"`
	Items            json.RawMessage `json:"items,omitempty"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignRunnerRequest struct {
	RunnerID uuid.UUID `json:"runner_id" validate:"required,uuid4"`
}
