package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mypartsrunner/delivery-backend/api/responses"
	"github.com/mypartsrunner/delivery-backend/api/validators"
	payoutsvc "github.com/mypartsrunner/delivery-backend/internal/payouts"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/types"
)

// ProcessPayout runs the allocator for one settled payment intent. The
// webhook handler is the normal caller; this endpoint exists for manual
// replays when an event was missed.
func ProcessPayout(svc payoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payouts service unavailable"))
			return
		}

		var payload processPayoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Allocate(ctx, payoutsvc.AllocateInput{
			PaymentIntentID: payload.PaymentIntentID,
			MerchantID:      payload.OrderDetails.MerchantID,
			Breakdown:       payload.OrderDetails.Breakdown,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type processPayoutRequest struct {
	PaymentIntentID string               `json:"payment_intent_id" validate:"required"`
	OrderDetails    payoutDetailsPayload `json:"order_details" validate:"required"`
}

type payoutDetailsPayload struct {
	MerchantID uuid.UUID       `json:"merchant_id" validate:"required,uuid4"`
	Breakdown  types.Breakdown `json:"breakdown"`
}
