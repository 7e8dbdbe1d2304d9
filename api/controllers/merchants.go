package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mypartsrunner/delivery-backend/api/responses"
	"github.com/mypartsrunner/delivery-backend/api/validators"
	merchantsvc "github.com/mypartsrunner/delivery-backend/internal/merchants"
	pkgerrors "github.com/mypartsrunner/delivery-backend/pkg/errors"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
)

// MerchantPayoutAccount reports whether the merchant's Connect account is
// provisioned and able to receive transfers.
func MerchantPayoutAccount(svc merchantsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "merchants service unavailable"))
			return
		}

		merchantID, err := validators.ParsePathUUID(chi.URLParam(r, "merchantId"), "merchantId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := svc.PayoutAccount(ctx, merchantID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, status)
	}
}
