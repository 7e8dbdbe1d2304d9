package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns middleware for the public API surface. The frontends are
// served from customer-controlled domains, so the policy is wide open and
// credentials stay disabled.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Stripe-Signature", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
