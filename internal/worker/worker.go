// Package worker runs the durable queue consumer that executes scans. Each
// job drives one scan through its state machine: RUNNING on pickup, probe
// fan-out, then COMPLETED or FAILED exactly once.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"domainguard/internal/config"
	"domainguard/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Start registers the scan worker and starts the River client on the given
// pool. MaxWorkers bounds how many scans run concurrently; queued jobs wait
// without blocking the admission path.
func Start(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, scanWorker *ScanWorker) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, scanWorker)

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: cfg.Scanner.MaxConcurrentScans},
		},
		Workers: workers,
		Logger:  slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
