package orchestrator

import (
	"context"

	"domainguard/pkg/domain"
)

// Guard is the admission check consulted before creating scans or companies.
// Denials unwrap to serrors.ErrPaymentRequired.
type Guard interface {
	AuthorizeScan(ctx context.Context, userID domain.UserID) error
	AuthorizeCompany(ctx context.Context, userID domain.UserID) error
}

// Orchestrator is the admission and read-side service of the scanning engine.
// It validates input, consults the quota guard, creates scan records
// atomically with their queue jobs, and serves status and aggregate reads.
//
//go:generate mockgen -package mockorchestrator -source=interface.go -destination=mock/mockorchestrator.go *
type Orchestrator interface {
	// StartScan admits and enqueues a scan of host for one of the user's
	// companies. The returned scan is in PENDING state.
	StartScan(ctx context.Context, userID domain.UserID, companyID domain.CompanyID, host string) (*domain.Scan, error)
	// ScanStatus returns a scan with its findings. Findings are only present
	// once the scan completed.
	ScanStatus(ctx context.Context, userID domain.UserID, scanID domain.ScanID) (*domain.Scan, []domain.Finding, error)
	// UserScans pages through the user's scans, newest first. The cursor is
	// an RFC3339 timestamp returned by the previous page.
	UserScans(ctx context.Context,
		userID domain.UserID,
		status domain.ScanStatus,
		cursor string,
		limit uint) ([]domain.Scan, string, error)
	// CreateCompany registers a company after the guard admits it.
	CreateCompany(ctx context.Context, userID domain.UserID, name string) (*domain.Company, error)
	// Companies lists the user's companies.
	Companies(ctx context.Context, userID domain.UserID) ([]domain.Company, error)
	// Overview returns the cached posture aggregate for the user.
	Overview(ctx context.Context, userID domain.UserID) (domain.Overview, error)
}
