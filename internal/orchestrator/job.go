package orchestrator

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// ScanJobArgs is the payload of a scan job submitted to River. Every scan
// gets exactly one job; the scan id makes job processing idempotent because
// the worker re-reads the scan's state before acting.
type ScanJobArgs struct {
	// ScanID is the scan to process.
	ScanID uuid.UUID `json:"scanId"`
	// Domain is the normalized host to inspect, duplicated here so the worker
	// log line carries it before the scan row is loaded.
	Domain string `json:"domain"`

	// maxAttempts configures how many times River retries the job on
	// infrastructure errors.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the scan worker.
func (args ScanJobArgs) Kind() string { return "DomainScanJob" }

// InsertOpts returns the River options controlling retry behavior.
func (args ScanJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
	}
}
