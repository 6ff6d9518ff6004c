package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"trackfin/internal/amqp"
	"trackfin/internal/cli"
	apphttp "trackfin/internal/http"
	applog "trackfin/internal/log"
	"trackfin/internal/state"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	// Change-feed publishing is optional; without AMQP the store still
	// persists every transition.
	var events state.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change feed",
				applog.FieldError, err)
		} else {
			defer amqpClient.Close()
			events = amqpClient
			logger.Info("Initialized AMQP change feed",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := state.NewStore(result.Store, events, logger)

	// Replay the stored snapshot, one action per entity. A missing or
	// malformed blob starts the store empty.
	if snap, found, err := result.Store.Load(ctx); err != nil {
		logger.Error("Failed to load stored snapshot", applog.FieldError, err)
		os.Exit(1)
	} else if found {
		store.Replay(ctx, snap)
		logger.Info("Replayed stored snapshot",
			"accounts", len(snap.Accounts),
			"transactions", len(snap.Transactions),
			"budgets", len(snap.Budgets),
			applog.FieldRevision, store.Revision())
	} else {
		logger.Info("No stored snapshot, starting empty")
	}

	srv := apphttp.NewServer(":"+cfg.Port, store, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting trackfin server", "port", cfg.Port, "backend", cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
