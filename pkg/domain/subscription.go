package domain

import "time"

// PlanTier is the subscription level determining quotas and feature access.
type PlanTier string

const (
	PlanTrial   PlanTier = "trial"
	PlanStarter PlanTier = "starter"
	PlanPro     PlanTier = "pro"
)

// Subscription is the billing collaborator's view of a user, consumed
// read-only by the quota guard. A user without a subscription record is
// treated as an active trial.
type Subscription struct {
	// UserID identifies the subscriber.
	UserID UserID `json:"userId"`
	// Plan is the subscribed tier.
	Plan PlanTier `json:"plan"`
	// Active reports whether the subscription is in good standing.
	Active bool `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanLimits holds the per-tier usage caps. A negative cap means unlimited.
type PlanLimits struct {
	// MaxCompanies caps how many companies the user may register.
	MaxCompanies int
	// MaxScans caps the total number of scans; only the trial tier is capped.
	MaxScans int
}
