package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/api/responses"
	"github.com/mypartsrunner/delivery-backend/api/validators"
	paymentsvc "github.com/mypartsrunner/delivery-backend/internal/payments"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// CreatePaymentIntent accepts the checkout total plus its breakdown and
// returns the provider client secret the frontend confirms the card with.
func CreatePaymentIntent(svc paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		var payload createIntentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.CreateIntent(ctx, paymentsvc.CreateIntentInput{
			AmountCents: payload.AmountCents,
			Currency:    payload.Currency,
			OrderDetails: paymentsvc.OrderDetails{
				CustomerID:      payload.OrderDetails.CustomerID,
				MerchantID:      payload.OrderDetails.MerchantID,
				StoreID:         payload.OrderDetails.StoreID,
				Breakdown:       payload.OrderDetails.Breakdown,
				DeliveryAddress: payload.OrderDetails.DeliveryAddress,
				Items:           payload.OrderDetails.Items,
			},
			Metadata: paymentsvc.CustomerMetadata{
				CustomerName:    payload.Metadata.CustomerName,
				CustomerEmail:   payload.Metadata.CustomerEmail,
				CustomerPhone:   payload.Metadata.CustomerPhone,
				DeliveryAddress: payload.Metadata.DeliveryAddress,
				OrderType:       payload.Metadata.OrderType,
			},
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type createIntentRequest struct {
	AmountCents  int64                   `json:"amount_cents" validate:"required,gt=0"`
	Currency     string                  `json:"currency,omitempty" validate:"omitempty,len=3"`
	OrderDetails orderDetailsPayload     `json:"order_details" validate:"required"`
	Metadata     customerMetadataPayload `json:"metadata"`
}

type orderDetailsPayload struct {
	CustomerID      uuid.UUID       `json:"customer_id" validate:"required,uuid4"`
	MerchantID      uuid.UUID       `json:"merchant_id" validate:"required,uuid4"`
	StoreID         *uuid.UUID      `json:"store_id,omitempty" validate:"omitempty,uuid4"`
	Breakdown       types.Breakdown `json:"breakdown"`
	DeliveryAddress *types.Address  `json:"delivery_address,omitempty"`
	Items           json.RawMessage `json:"items,omitempty"`
}

type customerMetadataPayload struct {
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerEmail   string `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	OrderType       string `json:"order_type,omitempty"`
}
