package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mypartsrunner/delivery-backend/api/routes"
	"github.com/mypartsrunner/delivery-backend/internal/merchants"
	"github.com/mypartsrunner/delivery-backend/internal/notifications"
	"github.com/mypartsrunner/delivery-backend/internal/orders"
	"github.com/mypartsrunner/delivery-backend/internal/payments"
	"github.com/mypartsrunner/delivery-backend/internal/payouts"
	stripewebhook "github.com/mypartsrunner/delivery-backend/internal/webhooks/stripe"
	"github.com/mypartsrunner/delivery-backend/pkg/config"
	"github.com/mypartsrunner/delivery-backend/pkg/db"
	"github.com/mypartsrunner/delivery-backend/pkg/logger"
	"github.com/mypartsrunner/delivery-backend/pkg/metrics"
	"github.com/mypartsrunner/delivery-backend/pkg/migrate"
	"github.com/mypartsrunner/delivery-backend/pkg/outbox"
	"github.com/mypartsrunner/delivery-backend/pkg/redis"
	"github.com/mypartsrunner/delivery-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		logg.Error(context.Background(), "failed to access sql db", err)
		os.Exit(1)
	}
	if err := migrate.MaybeRunDev(context.Background(), cfg, sqlDB, logg); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	webhookMetrics := metrics.NewWebhookMetrics(registry)

	gdb := dbClient.DB()
	merchantsRepo := merchants.NewRepository(gdb)
	ordersRepo := orders.NewRepository(gdb)
	ledgerRepo := payouts.NewLedgerRepository(gdb)
	notificationsRepo := notifications.NewRepository(gdb)
	outboxService := outbox.NewService(outbox.NewRepository(gdb), logg)

	merchantsService, err := merchants.NewService(merchantsRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create merchants service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, notificationsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	intentClient := payments.NewIntentClient(stripeClient)

	paymentsService, err := payments.NewService(intentClient, merchantsRepo, ordersRepo, cfg.Payments.Currency, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	payoutsService, err := payouts.NewService(intentClient, ordersRepo, ledgerRepo, dbClient, notificationsService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create payouts service", err)
		os.Exit(1)
	}

	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		Allocator: payoutsService,
		Merchants: merchantsService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Payments.WebhookEventTTL, "stripe-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			stripeClient,
			registry,
			webhookMetrics,
			paymentsService,
			payoutsService,
			ordersService,
			merchantsService,
			webhookService,
			webhookGuard,
		),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(drainCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
