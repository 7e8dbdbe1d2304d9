package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mypartsrunner/delivery-backend/api/controllers"
	webhookcontrollers "github.com/mypartsrunner/delivery-backend/api/controllers/webhooks"
	"github.com/mypartsrunner/delivery-backend/api/middleware"
	merchantsvc "github.com/mypartsrunner/delivery-backend/internal/merchants"
	ordersvc "github.com/mypartsrunner/delivery-backend/internal/orders"
	paymentsvc "github.com/mypartsrunner/delivery-backend/internal/payments"
	payoutsvc "github.com/mypartsrunner/delivery-backend/internal/payouts"
	stripewebhook "github.com/mypartsrunner/delivery-backend/internal/webhooks/stripe"
	"github.com/mypartsrunner/delivery-backend/pkg/config"
	"github.com/mypartsrunner/delivery-backend/pkg/db"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/metrics"
	"github.com/mypartsrunner/delivery-backend/pkg/redis"
	"github.com/mypartsrunner/delivery-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	stripeClient *stripe.Client,
	registry *prometheus.Registry,
	webhookMetrics *metrics.WebhookMetrics,
	paymentsService paymentsvc.Service,
	payoutsService payoutsvc.Service,
	ordersService ordersvc.Service,
	merchantsService merchantsvc.Service,
	stripeWebhookService *stripewebhook.Service,
	stripeWebhookGuard *stripewebhook.IdempotencyGuard,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CORS())

		// The webhook route stays outside CORS enforcement concerns; Stripe
		// posts server-to-server, so the permissive policy is harmless here.
		r.Post("/webhooks/stripe", webhookcontrollers.StripeWebhook(stripeWebhookService, stripeClient, stripeWebhookGuard, webhookMetrics, logg))

		r.Post("/payments/intents", controllers.CreatePaymentIntent(paymentsService, logg))
		r.Post("/payouts/process", controllers.ProcessPayout(payoutsService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.CreateOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Post("/{orderId}/status", controllers.UpdateOrderStatus(ordersService, logg))
			r.Post("/{orderId}/assign", controllers.AssignOrderRunner(ordersService, logg))
		})

		r.Get("/merchants/{merchantId}/payout-account", controllers.MerchantPayoutAccount(merchantsService, logg))
	})

	return r
}
