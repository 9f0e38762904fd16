package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"walletlens/internal/amqp"
	"walletlens/internal/backend"
	"walletlens/internal/config"
	applog "walletlens/internal/log"
	"walletlens/internal/widget"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting widget-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	stores, err := backend.Open(backendCfg, logger)
	if err != nil {
		logger.Error("Failed to open stores", applog.FieldError, err)
		os.Exit(1)
	}
	defer stores.Cleanup()

	// The worker only reads the widget-shared namespace.
	provider := widget.NewProvider(stores.Shared, logger)

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, falling back to timer-only refresh", applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	if _, err := provider.Publish(ctx); err != nil {
		logger.Warn("Initial timeline publish failed", applog.FieldError, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Fixed-interval rebuild: the widget stays fresh even when every
	// explicit refresh signal is lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.WidgetRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if _, err := provider.Publish(ctx); err != nil {
					logger.Warn("Periodic timeline publish failed", applog.FieldError, err)
				}
			}
		}
	})

	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.ConsumeWidgetRefresh(ctx, func(msg *amqp.WidgetRefreshMessage) error {
				logger.Info("Refresh signal received", "reason", msg.Reason, "attempt", msg.Attempt)
				if _, err := provider.Publish(ctx); err != nil {
					logger.Warn("Signalled timeline publish failed", applog.FieldError, err)
				}
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("widget-worker stopped gracefully")
}
