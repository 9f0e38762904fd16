package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"walletlens/internal/amqp"
	"walletlens/internal/backend"
	"walletlens/internal/config"
	"walletlens/internal/ledger"
	applog "walletlens/internal/log"
	"walletlens/internal/notify"
	"walletlens/internal/widget"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	logger.Info("Starting walletlensd")

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

	// The AMQP bus carries widget refresh signals out and alert actions
	// back in. Without it the daemon still runs standalone: refreshes are
	// dropped and fired alerts only reach the log.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without signal bus", applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange)
		}
	}

	refresher := widget.NopRefresher
	sink := notify.LogSink(logger)
	if amqpClient != nil {
		refresher = widget.RefresherFunc(func(ctx context.Context, reason string, attempt int) {
			if err := amqpClient.PublishWidgetRefresh(ctx, reason, attempt); err != nil {
				logger.Warn("Widget refresh publish failed", applog.FieldError, err, "attempt", attempt)
			}
		})
		sink = notify.SinkFunc(func(ctx context.Context, alert notify.Alert) error {
			return amqpClient.PublishAlert(ctx, &amqp.AlertMessage{
				ID:        alert.ID,
				Title:     alert.Title,
				Body:      alert.Body,
				Category:  alert.Category,
				FiredAt:   alert.FireAt,
				Timestamp: time.Now(),
			})
		})
	}

	scheduler := notify.NewTimerScheduler(sink, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := ledger.New(stores.App, stores.Shared, scheduler, refresher, logger)
	store.Load(ctx)

	if err := scheduler.RegisterCategories(ctx, notify.DefaultCategories()); err != nil {
		logger.Warn("Failed to register notification categories", applog.FieldError, err)
	}
	if err := scheduler.RequestPermission(ctx); err != nil {
		logger.Warn("Notification permission request failed", applog.FieldError, err)
	}
	store.RescheduleReminderAlerts(ctx)

	// Alert actions taken on the notification surface flow back over the
	// bus and are applied to the ledger directly.
	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeActions(ctx, func(msg *amqp.ActionMessage) error {
				switch msg.Action {
				case notify.ActionMarkPaid:
					if err := store.MarkReminderPaid(ctx, msg.ReminderID); err != nil {
						logger.Warn("Mark-paid action ignored", applog.FieldError, err, applog.FieldReminderID, msg.ReminderID)
					}
				case notify.ActionRemindLater:
					if _, err := store.SnoozeReminder(ctx, msg.ReminderID); err != nil {
						logger.Warn("Remind-later action ignored", applog.FieldError, err, applog.FieldReminderID, msg.ReminderID)
					}
				case notify.ActionViewDetails, notify.ActionDismiss:
					// Presentation-only actions, nothing to apply here.
				default:
					logger.Warn("Unknown alert action", "action", msg.Action)
				}
				return nil
			})
			if err != nil && err != context.Canceled {
				logger.Error("Action consumption failed", applog.FieldError, err)
				cancel()
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("walletlensd stopped gracefully")
}
