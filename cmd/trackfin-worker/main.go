package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trackfin/internal/amqp"
	"trackfin/internal/cli"
	applog "trackfin/internal/log"
	"trackfin/internal/storage"
	"trackfin/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting trackfin-worker")

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.StoreBackend == "memory" {
		logger.Warn("Memory backend is process-local; the worker will only mirror an empty snapshot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Primary store: the one the server writes to.
	primary := cli.InitBackend(ctx, logger, cfg)
	if primary.Cleanup != nil {
		defer func() {
			if err := primary.Cleanup(); err != nil {
				logger.Error("Primary store cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// Mirror store: a local SQLite copy for point-in-time backup.
	mirror, err := storage.NewSQLiteStore(cfg.MirrorDBPath, cfg.SnapshotKey, logger)
	if err != nil {
		logger.Error("Failed to initialize mirror store", applog.FieldError, err, "path", cfg.MirrorDBPath)
		os.Exit(1)
	}
	defer mirror.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(primary.Store, mirror, logger)

	// Catch up anything published while the worker was down.
	logger.Info("Performing startup sync...")
	if err := mirrorWorker.SyncOnce(ctx); err != nil {
		logger.Error("Startup sync failed", applog.FieldError, err)
		// Keep running; the consumer will pick up the next change.
	}

	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		err := amqpClient.ConsumeStateChangedWithRetry(consumerCtx, func(msg *amqp.StateChangedMessage) error {
			return mirrorWorker.HandleStateChanged(consumerCtx, msg)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Message consumption failed", applog.FieldError, err)
		}
		cancel()
	}()

	// Periodic safety-net sync for any missed messages.
	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-consumerCtx.Done():
				return
			case <-ticker.C:
				if err := mirrorWorker.SyncOnce(consumerCtx); err != nil {
					logger.Error("Periodic sync failed", applog.FieldError, err)
				}
			}
		}
	}()

	<-consumerCtx.Done()
	logger.Info("Shutting down worker...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Final sync so the mirror is as fresh as possible on exit.
	if err := mirrorWorker.SyncOnce(shutdownCtx); err != nil {
		logger.Warn("Final sync failed", applog.FieldError, err)
	}
	logger.Info("Worker shutdown complete")
}
