package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"domainguard/internal/config"
	"domainguard/internal/orchestrator"
	"domainguard/internal/probe"
	"domainguard/pkg/cache"
	"domainguard/pkg/domain"
	"domainguard/pkg/logger"
	"domainguard/pkg/metrics"
	"domainguard/pkg/notify"
	"domainguard/pkg/scoring"
	"domainguard/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// Options configure scan execution timeouts.
type Options struct {
	// WholeScanTimeout caps the total wall-clock time of one scan. When it
	// elapses the scan completes with whatever findings arrived, or fails if
	// no probe succeeded.
	WholeScanTimeout time.Duration
	// ProbeTimeout caps the runtime of a single probe.
	ProbeTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		WholeScanTimeout: cfg.Scanner.WholeScanTimeout,
		ProbeTimeout:     cfg.Scanner.ProbeTimeout,
	}
}

// probeResult is one probe's outcome flowing back to the collecting worker.
type probeResult struct {
	name     string
	findings []domain.Finding
	err      error
}

// ScanWorker is the River worker executing scan jobs.
//
// State machine discipline: every status write is a compare-and-swap on the
// expected current status, so replayed or duplicated jobs observe a terminal
// scan and do nothing. Probe failures are local: a failing probe contributes
// zero findings and the scan continues; only when every probe fails does the
// scan itself fail.
type ScanWorker struct {
	river.WorkerDefaults[orchestrator.ScanJobArgs]

	options  Options
	storage  storage.Storage
	registry *probe.Registry
	notifier notify.Notifier
	cache    *cache.Cache
	sink     metrics.Sink
}

// NewScanWorker constructs a ScanWorker. A nil notifier falls back to the log
// notifier, a nil sink disables metric recording.
func NewScanWorker(strg storage.Storage,
	registry *probe.Registry,
	notifier notify.Notifier,
	c *cache.Cache,
	sink metrics.Sink,
	options Options) *ScanWorker {
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}

	return &ScanWorker{
		options:  options,
		storage:  strg,
		registry: registry,
		notifier: notifier,
		cache:    c,
		sink:     sink,
	}
}

// Timeout bounds a whole job attempt at the River level, slightly above the
// scan deadline so the finalization writes are not cut off.
func (w *ScanWorker) Timeout(*river.Job[orchestrator.ScanJobArgs]) time.Duration {
	return w.options.WholeScanTimeout + 30*time.Second
}

// Work executes a single scan job.
func (w *ScanWorker) Work(ctx context.Context, job *river.Job[orchestrator.ScanJobArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("scanID", job.Args.ScanID.String()),
		zap.String("domain", job.Args.Domain))

	scan, err := w.storage.ScanByID(ctx, domain.ScanID(job.Args.ScanID))
	if err != nil {
		return w.infraError(ctx, job, fmt.Errorf("could not fetch scan: %w", err))
	}
	if scan == nil {
		// the scan row is gone; retrying cannot help
		return river.JobCancel(errors.New("scan not found")) //nolint: wrapcheck
	}
	if scan.Status.Terminal() {
		logger.Info(ctx, "scan already finished, skipping replayed job",
			zap.String("status", string(scan.Status)))

		return nil
	}

	if scan.Status == domain.ScanStatusPending {
		now := time.Now().UTC()
		updated, err := w.storage.TransitionScan(ctx, scan.ID, domain.ScanStatusPending, storage.ScanUpdates{
			Status:    domain.ScanStatusRunning,
			StartedAt: &now,
		})
		if err != nil {
			return w.infraError(ctx, job, fmt.Errorf("could not mark scan running: %w", err))
		}
		if updated == nil {
			// lost the CAS to another attempt; re-read and bail if finished
			scan, err = w.storage.ScanByID(ctx, scan.ID)
			if err != nil {
				return w.infraError(ctx, job, fmt.Errorf("could not refetch scan: %w", err))
			}
			if scan == nil || scan.Status.Terminal() {
				return nil
			}
		} else {
			scan = updated
		}
	}

	findings, succeeded := w.runProbes(ctx, scan.Domain)

	if succeeded == 0 {
		return w.failScan(ctx, job, scan)
	}

	return w.completeScan(ctx, job, scan, findings)
}

// runProbes fans the registry out as concurrent tasks and collects results
// until every probe reported or the whole-scan deadline elapsed. It returns
// the collected findings and how many probes succeeded.
func (w *ScanWorker) runProbes(ctx context.Context, host string) ([]domain.Finding, int) {
	scanCtx, cancel := context.WithTimeout(ctx, w.options.WholeScanTimeout)
	defer cancel()

	probes := w.registry.Probes()
	results := make(chan probeResult, len(probes))

	for _, p := range probes {
		go func() {
			probeCtx, cancel := context.WithTimeout(scanCtx, w.options.ProbeTimeout)
			defer cancel()

			started := time.Now()
			findings, err := p.Inspect(probeCtx, host)
			w.sink.Record("probe_duration_seconds",
				map[string]string{"probe": p.Name()},
				time.Since(started).Seconds())

			results <- probeResult{name: p.Name(), findings: findings, err: err}
		}()
	}

	var findings []domain.Finding
	succeeded := 0

	// collect until all probes answered or the scan deadline hits; probes
	// still in flight at the deadline observe scanCtx cancellation and
	// report errors nobody reads, which the buffered channel absorbs
	for range probes {
		select {
		case res := <-results:
			if res.err != nil {
				logger.Warn(ctx, "probe failed",
					zap.String("probe", res.name),
					zap.Error(res.err))
				w.sink.Record("probe_failures_total", map[string]string{"probe": res.name}, 1)

				continue
			}
			succeeded++
			findings = append(findings, res.findings...)
		case <-scanCtx.Done():
			logger.Warn(ctx, "scan deadline elapsed with probes outstanding")

			return findings, succeeded
		}
	}

	return findings, succeeded
}

// failScan marks the scan FAILED after every probe failed. The job is
// canceled because rerunning it would fail the same way for probe-level
// reasons; infrastructure errors never take this path.
func (w *ScanWorker) failScan(ctx context.Context, job *river.Job[orchestrator.ScanJobArgs], scan *domain.Scan) error {
	now := time.Now().UTC()
	lastError := "all probes failed"
	if _, err := w.storage.TransitionScan(ctx, scan.ID, domain.ScanStatusRunning, storage.ScanUpdates{
		Status:      domain.ScanStatusFailed,
		CompletedAt: &now,
		LastError:   &lastError,
	}); err != nil {
		return w.infraError(ctx, job, fmt.Errorf("could not mark scan failed: %w", err))
	}

	w.cache.Invalidate("overview:")
	w.sink.Record("scans_failed_total", nil, 1)
	logger.Error(ctx, "scan failed, no probe succeeded")

	return river.JobCancel(errors.New(lastError)) //nolint: wrapcheck
}

// completeScan stores the findings and finalizes the scan with its health
// score in one transaction.
func (w *ScanWorker) completeScan(ctx context.Context,
	job *river.Job[orchestrator.ScanJobArgs],
	scan *domain.Scan,
	findings []domain.Finding) error {
	for i := range findings {
		findings[i].ScanID = scan.ID
	}
	score := scoring.Score(findings)
	now := time.Now().UTC()

	if err := w.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if _, err := tx.StoreFindings(ctx, findings); err != nil {
			return fmt.Errorf("could not store findings: %w", err)
		}

		updated, err := tx.TransitionScan(ctx, scan.ID, domain.ScanStatusRunning, storage.ScanUpdates{
			Status:      domain.ScanStatusCompleted,
			HealthScore: &score,
			CompletedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("could not mark scan completed: %w", err)
		}
		if updated == nil {
			return errors.New("scan left RUNNING state concurrently")
		}

		return nil
	}); err != nil {
		return w.infraError(ctx, job, fmt.Errorf("could not finalize scan: %w", err))
	}

	w.cache.Invalidate("overview:")
	w.sink.Record("scans_completed_total", nil, 1)
	if scan.StartedAt != nil {
		w.sink.Record("scan_duration_seconds", nil, now.Sub(*scan.StartedAt).Seconds())
	}

	summary := notify.Summary{Domain: scan.Domain}
	for _, f := range findings {
		switch f.Severity {
		case domain.SeverityCritical:
			summary.CriticalCount++
		case domain.SeverityHigh:
			summary.HighCount++
		case domain.SeverityMedium, domain.SeverityLow:
		}
	}
	if err := w.notifier.ScanCompleted(ctx, summary); err != nil {
		logger.Warn(ctx, "could not notify scan completion", zap.Error(err))
	}

	logger.Info(ctx, "scan completed",
		zap.Int("healthScore", score),
		zap.Int("findings", len(findings)))

	return nil
}

// infraError handles storage and queue failures: River retries the job with
// exponential backoff, and on the final attempt the scan is marked FAILED so
// the error surfaces on the next status read.
func (w *ScanWorker) infraError(ctx context.Context, job *river.Job[orchestrator.ScanJobArgs], err error) error {
	logger.Error(ctx, "scan job infrastructure error",
		zap.Int("attempt", job.Attempt),
		zap.Int("maxAttempts", job.MaxAttempts),
		zap.Error(err))

	if job.Attempt >= job.MaxAttempts {
		now := time.Now().UTC()
		lastError := err.Error()
		for _, from := range []domain.ScanStatus{domain.ScanStatusRunning, domain.ScanStatusPending} {
			// best effort: the scan may be unreachable for the same reason
			if _, markErr := w.storage.TransitionScan(ctx, domain.ScanID(job.Args.ScanID), from, storage.ScanUpdates{
				Status:      domain.ScanStatusFailed,
				CompletedAt: &now,
				LastError:   &lastError,
			}); markErr != nil {
				logger.Error(ctx, "could not mark scan failed after final attempt", zap.Error(markErr))

				break
			}
		}
		w.cache.Invalidate("overview:")
		w.sink.Record("scans_failed_total", nil, 1)
	}

	return err
}
