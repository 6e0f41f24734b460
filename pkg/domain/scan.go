package domain

import "time"

// ScanStatus represents the lifecycle state of a scan. Transitions are
// monotonic and one-directional: PENDING -> RUNNING -> {COMPLETED, FAILED}.
type ScanStatus string

const (
	// ScanStatusPending indicates the scan has been admitted and enqueued but
	// no worker has picked it up yet.
	ScanStatusPending ScanStatus = "PENDING"
	// ScanStatusRunning indicates a worker is currently executing the scan's probes.
	ScanStatusRunning ScanStatus = "RUNNING"
	// ScanStatusCompleted indicates all probes finished (or the whole-scan
	// deadline hit with at least one success) and a health score is available.
	ScanStatusCompleted ScanStatus = "COMPLETED"
	// ScanStatusFailed indicates every probe failed, or an infrastructure
	// error persisted past the retry budget. Terminal.
	ScanStatusFailed ScanStatus = "FAILED"
)

// Terminal reports whether the status is an end state of the scan lifecycle.
func (s ScanStatus) Terminal() bool {
	return s == ScanStatusCompleted || s == ScanStatusFailed
}

// ScanType selects which probe set a scan executes.
type ScanType string

const (
	// ScanTypeFull runs every registered probe.
	ScanTypeFull ScanType = "full"
)

// Scan represents one orchestrated execution of all probes against a domain.
// A scan is owned by a company and is created only after quota admission.
type Scan struct {
	// ID is the unique identifier of the scan.
	ID ScanID `json:"id"`
	// CompanyID identifies the company the scanned domain belongs to.
	CompanyID CompanyID `json:"companyId"`

	// Domain is the registrable domain under inspection.
	Domain string `json:"domain"`
	// Type selects the probe set; currently always ScanTypeFull.
	Type ScanType `json:"type"`
	// Status is the current lifecycle state of the scan.
	Status ScanStatus `json:"status"`
	// HealthScore is the 0-100 aggregate computed from findings. It is set if
	// and only if Status is COMPLETED.
	HealthScore *int `json:"healthScore,omitempty"`

	// LastError stores the most recent error message encountered while
	// processing the scan, if any.
	LastError string `json:"-"`

	// StartedAt is when a worker transitioned the scan to RUNNING.
	StartedAt *time.Time `json:"startedAt,omitempty"`
	// CompletedAt is when the scan reached a terminal state.
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// CreatedAt is when the scan request was admitted.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the scan was last modified.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Overview is a read-side aggregate over a user's scans and open findings.
// It is computed on demand and memoized by the query cache.
type Overview struct {
	TotalScans         int64              `json:"totalScans"`
	CompletedScans     int64              `json:"completedScans"`
	FailedScans        int64              `json:"failedScans"`
	AverageHealthScore float64            `json:"averageHealthScore"`
	OpenFindings       map[Severity]int64 `json:"openFindings"`
}
