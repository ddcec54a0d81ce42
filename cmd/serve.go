package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"moveout/internal/api"
	"moveout/internal/api/handler/v1handler"
	"moveout/internal/closure"
	"moveout/internal/config"
	"moveout/internal/identity"
	"moveout/internal/lease"
	"moveout/internal/worker"
	"moveout/pkg/logger"
	"moveout/pkg/storage/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context,
	cfg *config.Config,
	strg *postgres.PgSQL,
	closures closure.Service) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Leases:   lease.New(strg),
			Closures: closures,
			Identity: identity.New(strg),
		},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func setupWorker(ctx context.Context,
	cfg *config.Config,
	strg *postgres.PgSQL,
	closures closure.Service) func(ctx context.Context) {
	closureWorker := worker.NewClosureWorker(closures, strg, cfg.Closure.MaxAttempts)

	riverClient, err := worker.Start(ctx, strg.Pool, closureWorker, cfg.Closure.MaxWorkers)
	if err != nil {
		logger.Fatal(ctx, "could not start worker", zap.Error(err))
	}

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping worker...")
		if err := riverClient.Stop(ctx); err != nil {
			logger.Error(ctx, "could not stop worker", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			closureOptions, err := closure.NewOptions(cfg)
			if err != nil {
				logger.Fatal(ctx, "could not build closure options", zap.Error(err))
			}
			closures := closure.New(strg, closureOptions)

			stopWebserver := setupServer(ctx, cfg, strg, closures)
			stopWorker := setupWorker(ctx, cfg, strg, closures)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWorker(shutdownCtx)
			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
