// Package main is the entry point of the ledger server.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledger/internal/config"
	"ledger/internal/logging"
	"ledger/internal/middleware"
	"ledger/internal/repositories"
	"ledger/internal/routes"
	"ledger/internal/services/account"
	"ledger/internal/services/notification"
	"ledger/internal/services/transfer"
	"ledger/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewPrometheusCollector(reg)

	sink, closeSink, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up notifier", zap.Error(err))
	}
	dispatcher := notification.NewDispatcher(sink, notification.DispatcherConfig{
		Buffer:  cfg.NotifyBuffer,
		Workers: cfg.NotifyWorkers,
	}, metrics, logger.Named("notification"))

	store := repositories.NewAccountStore()
	accountService := account.NewService(store, logger.Named("account"))
	transferService := transfer.NewService(
		store,
		dispatcher,
		transfer.Config{LockTimeout: cfg.LockTimeout},
		metrics,
		logger.Named("transfer"),
	)

	app := fiber.New(fiber.Config{
		AppName:               "ledger " + version,
		DisableStartupMessage: cfg.IsProduction(),
	})
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(logger.Named("http"), metrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
		AllowMethods: "GET,POST,HEAD",
	}))

	routes.SetupRoutes(app, routes.Dependencies{
		Accounts:          accountService,
		Transfers:         transferService,
		Gatherer:          reg,
		Version:           version,
		Notifier:          cfg.Notifier,
		TransferRateLimit: cfg.TransferRateLimit,
	})

	go func() {
		logger.Info("starting ledger server",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
			zap.String("notifier", cfg.Notifier),
			zap.Duration("lock_timeout", cfg.LockTimeout),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	// In-flight transfers have returned; flush their queued notifications.
	if err := dispatcher.Close(); err != nil {
		logger.Error("notification dispatcher shutdown failed", zap.Error(err))
	}
	if err := closeSink.Close(); err != nil {
		logger.Error("failed to close notifier", zap.Error(err))
	}
	logger.Info("ledger server stopped")
}

// newNotifier builds the notification sink selected by cfg.Notifier.
func newNotifier(cfg config.Config, logger *zap.Logger) (notification.Notifier, io.Closer, error) {
	switch cfg.Notifier {
	case config.NotifierLog:
		return notification.NewLogNotifier(logger.Named("notification")), io.NopCloser(nil), nil

	case config.NotifierRedis:
		client := notification.NewRedisClient(notification.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr), zap.String("channel", cfg.RedisChannel))
		return notification.NewRedisNotifier(client, cfg.RedisChannel), client, nil

	case config.NotifierKafka:
		writer := notification.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Named("kafka"))
		logger.Info("kafka notifier configured", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaTopic))
		return notification.NewKafkaNotifier(writer), writer, nil
	}
	return nil, nil, fmt.Errorf("unknown notifier %q", cfg.Notifier)
}
