package domain

import "time"

// Severity grades how dangerous a detected condition is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities lists all severities from least to most severe.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// FindingCategory names the security dimension a finding belongs to.
// Each probe reports findings under exactly one category.
type FindingCategory string

const (
	CategoryEmailSecurity   FindingCategory = "email-security"
	CategoryCertificate     FindingCategory = "certificate"
	CategoryWebHardening    FindingCategory = "web-hardening"
	CategoryNetworkExposure FindingCategory = "network-exposure"
)

// ResolutionStatus tracks the remediation workflow of a finding. It is the
// only mutable attribute of a finding; the workflow that drives it lives
// outside the scanning core.
type ResolutionStatus string

const (
	ResolutionOpen          ResolutionStatus = "open"
	ResolutionInProgress    ResolutionStatus = "in-progress"
	ResolutionResolved      ResolutionStatus = "resolved"
	ResolutionFalsePositive ResolutionStatus = "false-positive"
)

// Finding is a single detected condition. Findings belong to exactly one scan
// and are immutable once created, except for Resolution.
type Finding struct {
	// ID is the unique identifier of the finding.
	ID FindingID `json:"id"`
	// ScanID identifies the scan that produced this finding.
	ScanID ScanID `json:"scanId"`

	// Category is the security dimension this finding belongs to.
	Category FindingCategory `json:"category"`
	// Severity grades the finding.
	Severity Severity `json:"severity"`

	// Title is a short human-readable summary.
	Title string `json:"title"`
	// Description explains the detected condition.
	Description string `json:"description"`
	// Remediation tells the user how to fix the condition.
	Remediation string `json:"remediation"`

	// Resolution tracks the remediation workflow state.
	Resolution ResolutionStatus `json:"resolution"`

	// CreatedAt is when the finding was recorded.
	CreatedAt time.Time `json:"createdAt"`
}
