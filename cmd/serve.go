package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"domainguard/internal/api"
	"domainguard/internal/api/handler/v1handler"
	"domainguard/internal/config"
	"domainguard/internal/guard"
	"domainguard/internal/orchestrator"
	"domainguard/internal/probe"
	"domainguard/internal/worker"
	"domainguard/pkg/cache"
	"domainguard/pkg/logger"
	"domainguard/pkg/metrics"
	"domainguard/pkg/ratelimit"
)

func newLimiter(cfg *config.Config) *ratelimit.Limiter {
	generic := ratelimit.Limit{
		MaxRequests: cfg.RateLimit.GenericMaxRequests,
		Window:      cfg.RateLimit.GenericWindow,
	}

	return ratelimit.New(map[ratelimit.Class]ratelimit.Limit{
		ratelimit.ClassGeneric: generic,
		ratelimit.ClassScan: {
			MaxRequests: cfg.RateLimit.ScanMaxRequests,
			Window:      cfg.RateLimit.ScanWindow,
		},
		ratelimit.ClassAuth: {
			MaxRequests: cfg.RateLimit.AuthMaxRequests,
			Window:      cfg.RateLimit.AuthWindow,
		},
	}, generic)
}

func setupServer(ctx context.Context, cfg *config.Config, orch orchestrator.Orchestrator) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Orchestrator: orch,
			Limiter:      newLimiter(cfg),
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

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and scan workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			sink := metrics.NewPromSink(prometheus.DefaultRegisterer)
			queryCache := cache.New(cfg.Cache.Enabled)

			quotaGuard := guard.New(strg, sink, cfg.Guard.UpgradeURL)
			orch := orchestrator.New(strg, quotaGuard, queryCache, sink, orchestrator.NewOptions(cfg))

			scanWorker := worker.NewScanWorker(strg,
				probe.DefaultRegistry(),
				nil,
				queryCache,
				sink,
				worker.NewOptions(cfg))
			riverClient, err := worker.Start(ctx, strg.Pool, cfg, scanWorker)
			if err != nil {
				logger.Fatal(ctx, "could not start scan workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, orch)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(ctx, "stopping scan workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(ctx, "could not stop scan workers", zap.Error(err))
			}
		},
	}

	return cmd
}
