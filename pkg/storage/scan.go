package storage

import (
	"context"
	"time"

	"domainguard/pkg/domain"
)

// ScanUpdates describes the fields applied to a scan when it moves through
// its state machine. Only non-nil fields are written.
type ScanUpdates struct {
	// Status is the state to transition to.
	Status domain.ScanStatus
	// HealthScore, when provided, sets the computed health score.
	HealthScore *int
	// StartedAt, when provided, records when a worker picked up the scan.
	StartedAt *time.Time
	// CompletedAt, when provided, records when the scan reached a terminal state.
	CompletedAt *time.Time
	// LastError, when provided, sets the last error text. An empty string
	// clears it (NULL).
	LastError *string
}

// ScanPage groups a page of scans together with an optional NextCursor used
// for created-at cursor pagination.
type ScanPage struct {
	// Scans contains the current page of scan records.
	Scans []domain.Scan
	// NextCursor points to the timestamp to use as cursor for the next page.
	// It is nil when there is no next page.
	NextCursor *time.Time
}

// ScanStorage defines persistence operations for scans. Status writes are
// compare-and-swap on the expected current status so that lifecycle
// transitions stay monotonic even when a job is replayed.
type ScanStorage interface {
	// StoreScan inserts a scan and returns the stored row including
	// generated fields.
	StoreScan(ctx context.Context, scan domain.Scan) (*domain.Scan, error)
	// TransitionScan applies updates to the scan identified by id only when
	// its current status equals from. It returns the updated row, or nil when
	// the scan does not exist or is not in the expected state.
	TransitionScan(ctx context.Context,
		id domain.ScanID,
		from domain.ScanStatus,
		updates ScanUpdates) (*domain.Scan, error)
	// ScanByID fetches a scan by id regardless of owner. Returns nil when not found.
	ScanByID(ctx context.Context, id domain.ScanID) (*domain.Scan, error)
	// UserScanByID fetches a scan by id constrained to companies owned by
	// userID. Returns nil when not found.
	UserScanByID(ctx context.Context, userID domain.UserID, id domain.ScanID) (*domain.Scan, error)
	// UserScans returns a page of scans across companies owned by userID,
	// created before the optional cursor, newest first. A non-empty status
	// filters the page.
	UserScans(ctx context.Context,
		userID domain.UserID,
		status domain.ScanStatus,
		cursor time.Time,
		limit uint) (ScanPage, error)
	// UserScanCount returns the total number of scans owned (transitively via
	// companies) by userID. Input to the trial quota check.
	UserScanCount(ctx context.Context, userID domain.UserID) (int64, error)
	// UserOverview computes the read-side aggregate over a user's scans and
	// open findings.
	UserOverview(ctx context.Context, userID domain.UserID) (domain.Overview, error)
}
