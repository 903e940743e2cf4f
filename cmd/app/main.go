// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-payments/internal/config"
	"clinic-payments/internal/domain/ports/adapter"
	"clinic-payments/internal/domain/ports/repository"
	payAdapters "clinic-payments/internal/infra/adapters/payment"
	pg "clinic-payments/internal/infra/db/postgres"
	"clinic-payments/internal/infra/logging"
	"clinic-payments/internal/infra/metrics"
	red "clinic-payments/internal/infra/redis"
	"clinic-payments/internal/infra/web"
	"clinic-payments/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (in-memory gateway)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Runtime.Dev {
		log.Printf("[DEV MODE] Enabled")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	metrics.MustRegister()

	// ---- Payment gateway ----
	var gateway adapter.PaymentGateway
	if cfg.Runtime.Dev && cfg.Payment.Razorpay.KeySecret == "" {
		gateway = payAdapters.NewNoopPaymentGateway()
		logger.Warn().Msg("no gateway credentials; using in-memory noop gateway")
	} else {
		gateway, err = payAdapters.NewRazorpayGateway(cfg.Payment.Razorpay.KeyID, cfg.Payment.Razorpay.KeySecret, cfg.Payment.Razorpay.BaseURL)
		if err != nil {
			log.Fatalf("razorpay gateway: %v", err)
		}
	}

	// ---- Optional audit store ----
	var payments repository.PaymentRepository
	if cfg.Database.URL != "" {
		pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		payments = pg.NewPaymentRepo(pool)
		logger.Info().Msg("payment audit store enabled")
	}

	// ---- Optional rate limiter ----
	var limiter web.Limiter
	if cfg.RateLimit.Enabled {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
		logger.Info().Int("per_minute", cfg.RateLimit.PerMinute).Msg("payment rate limiting enabled")
	}

	// ---- Use cases ----
	orderUC := usecase.NewOrderUseCase(gateway, payments, cfg.Payment.Razorpay.Currency, logger)
	verifyUC := usecase.NewVerificationUseCase(cfg.Payment.Razorpay.KeySecret, payments, logger)

	// ---- HTTP server ----
	server := web.NewServer(orderUC, verifyUC, limiter, cfg.RateLimit.PerMinute, logger)
	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.Router(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Str("gateway", gateway.Name()).Msg("payment server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server stopped")
			cancel()
		}
	}()

	// ---- Graceful shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sig:
		logger.Info().Str("signal", s.String()).Msg("shutting down")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
