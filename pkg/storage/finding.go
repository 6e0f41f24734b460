package storage

import (
	"context"

	"domainguard/pkg/domain"
)

// FindingStorage defines persistence operations for findings. Findings are
// written once when a scan completes; only their resolution status changes
// afterwards, driven by a workflow outside this core.
type FindingStorage interface {
	// StoreFindings inserts findings and returns the stored rows including
	// generated fields. An empty slice is a no-op.
	StoreFindings(ctx context.Context, findings []domain.Finding) ([]domain.Finding, error)
	// FindingsByScanID returns all findings of a scan in insertion order.
	FindingsByScanID(ctx context.Context, scanID domain.ScanID) ([]domain.Finding, error)
}
