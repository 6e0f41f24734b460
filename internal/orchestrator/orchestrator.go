// Package orchestrator implements scan admission and the read side of the
// scanning engine. Admission is a fixed pipeline: validate the domain, check
// company ownership, consult the quota guard, then create the scan record and
// its queue job in one transaction so they appear together or not at all.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"domainguard/internal/config"
	"domainguard/pkg/cache"
	"domainguard/pkg/domain"
	"domainguard/pkg/metrics"
	"domainguard/pkg/serrors"
	"domainguard/pkg/storage"

	"github.com/google/uuid"
)

// maxCompanyNameLength caps company names at creation.
const maxCompanyNameLength = 200

// Options configure scan enqueueing and overview caching.
type Options struct {
	// MaxAttempts is how many times the background worker retries a scan job
	// before giving up.
	MaxAttempts int
	// OverviewTTL is how long a computed overview stays cached.
	OverviewTTL time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Scanner.MaxAttempts,
		OverviewTTL: cfg.Cache.TTL,
	}
}

type orchestrator struct {
	options Options
	storage storage.Storage
	guard   Guard
	cache   *cache.Cache
	sink    metrics.Sink
}

// New creates an Orchestrator. A nil sink disables metric recording.
func New(strg storage.Storage, g Guard, c *cache.Cache, sink metrics.Sink, options Options) Orchestrator {
	if sink == nil {
		sink = metrics.NopSink{}
	}

	return &orchestrator{
		options: options,
		storage: strg,
		guard:   g,
		cache:   c,
		sink:    sink,
	}
}

// overviewCacheKey is the cache key of one user's overview aggregate.
func overviewCacheKey(userID domain.UserID) string {
	return "overview:" + userID.String()
}

// StartScan runs the admission pipeline and enqueues the scan. The rate
// limiter has already admitted the request at the transport layer.
func (o *orchestrator) StartScan(ctx context.Context,
	userID domain.UserID,
	companyID domain.CompanyID,
	host string) (*domain.Scan, error) {
	host, err := NormalizeDomain(host)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrBadRequest, err, "invalid domain")
	}

	company, err := o.storage.UserCompanyByID(ctx, userID, companyID)
	if err != nil {
		return nil, fmt.Errorf("could not fetch company: %w", err)
	}
	if company == nil {
		return nil, serrors.With(serrors.ErrNotFound, "company not found")
	}

	if err := o.guard.AuthorizeScan(ctx, userID); err != nil {
		return nil, err
	}

	var scan *domain.Scan
	if err := o.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		scan, err = tx.StoreScan(ctx, domain.Scan{
			CompanyID: companyID,
			Domain:    host,
			Type:      domain.ScanTypeFull,
			Status:    domain.ScanStatusPending,
		})
		if err != nil {
			return fmt.Errorf("could not store scan: %w", err)
		}

		if _, err := tx.AddJob(ctx, ScanJobArgs{
			ScanID:      uuid.UUID(scan.ID),
			Domain:      host,
			maxAttempts: o.options.MaxAttempts,
		}, nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not enqueue scan: %w", err)
	}

	o.sink.Record("scans_started_total", map[string]string{"type": string(scan.Type)}, 1)

	return scan, nil
}

// ScanStatus returns the scan and, when it completed, its findings. For FAILED
// scans the last error is surfaced on the scan record itself.
func (o *orchestrator) ScanStatus(ctx context.Context,
	userID domain.UserID,
	scanID domain.ScanID) (*domain.Scan, []domain.Finding, error) {
	scan, err := o.storage.UserScanByID(ctx, userID, scanID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not fetch scan: %w", err)
	}
	if scan == nil {
		return nil, nil, serrors.With(serrors.ErrNotFound, "scan not found")
	}

	if scan.Status != domain.ScanStatusCompleted {
		return scan, nil, nil
	}

	findings, err := o.storage.FindingsByScanID(ctx, scanID)
	if err != nil {
		return nil, nil, fmt.Errorf("could not fetch findings: %w", err)
	}

	return scan, findings, nil
}

// UserScans returns a page of scans for the given user filtered by status.
// It supports cursor-based pagination using an RFC3339 timestamp string and
// returns the next cursor when more results are available.
func (o *orchestrator) UserScans(ctx context.Context,
	userID domain.UserID,
	status domain.ScanStatus,
	cursor string,
	limit uint) ([]domain.Scan, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	page, err := o.storage.UserScans(ctx, userID, status, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user scans: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Scans, next, nil
}

// CreateCompany registers a company after the guard's company quota admits it.
func (o *orchestrator) CreateCompany(ctx context.Context,
	userID domain.UserID,
	name string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "company name is empty")
	}
	if len(name) > maxCompanyNameLength {
		return nil, serrors.With(serrors.ErrBadRequest, "company name is too long")
	}

	if err := o.guard.AuthorizeCompany(ctx, userID); err != nil {
		return nil, err
	}

	company, err := o.storage.StoreCompany(ctx, domain.Company{
		OwnerUserID: userID,
		Name:        name,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store company: %w", err)
	}

	return company, nil
}

// Companies lists the user's companies.
func (o *orchestrator) Companies(ctx context.Context, userID domain.UserID) ([]domain.Company, error) {
	companies, err := o.storage.UserCompanies(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get user companies: %w", err)
	}

	return companies, nil
}

// Overview serves the user's posture aggregate through the query cache. The
// worker invalidates the user's entry when one of their scans finishes.
func (o *orchestrator) Overview(ctx context.Context, userID domain.UserID) (domain.Overview, error) {
	overview, err := cache.GetOrCompute(ctx, o.cache, overviewCacheKey(userID), o.options.OverviewTTL,
		func(ctx context.Context) (domain.Overview, error) {
			return o.storage.UserOverview(ctx, userID) //nolint: wrapcheck
		})
	if err != nil {
		return domain.Overview{}, fmt.Errorf("could not compute overview: %w", err)
	}

	return overview, nil
}
