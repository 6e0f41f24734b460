// Package guard implements the plan/quota admission check. It runs after
// authentication and rate limiting and before any scan or company is created.
// Denials are structured payloads the caller can render as an upgrade flow,
// never plain strings.
package guard

import (
	"context"
	"fmt"

	"domainguard/pkg/domain"
	"domainguard/pkg/metrics"
	"domainguard/pkg/serrors"
	"domainguard/pkg/storage"
)

// Denial codes surfaced in rejection payloads.
const (
	CodeSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
	CodeScanLimitExceeded    = "SCAN_LIMIT_EXCEEDED"
	CodeCompanyLimitExceeded = "COMPANY_LIMIT_EXCEEDED"
)

// Denial is a structured quota rejection. It unwraps to
// serrors.ErrPaymentRequired so transport layers can map it to 402.
type Denial struct {
	// Code is the machine-readable denial reason.
	Code string `json:"code"`
	// Message is a human-readable explanation.
	Message string `json:"message"`
	// CurrentPlan is the tier the user is on.
	CurrentPlan domain.PlanTier `json:"currentPlan"`
	// CurrentUsage is the usage count that hit the cap, when applicable.
	CurrentUsage *int64 `json:"currentUsage,omitempty"`
	// Limit is the cap that was hit, when applicable.
	Limit *int64 `json:"limit,omitempty"`
	// UpgradeURL points the user at the billing flow.
	UpgradeURL string `json:"upgradeUrl"`
	// AvailablePlans lists the tiers the user can upgrade to.
	AvailablePlans []PlanOffer `json:"availablePlans,omitempty"`
}

// Error implements the error interface.
func (d *Denial) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Unwrap ties denials to the payment-required error kind.
func (d *Denial) Unwrap() error {
	return serrors.KindOnly(serrors.ErrPaymentRequired)
}

// Guard gates scan and company admission on subscription state and plan caps.
type Guard struct {
	storage    storage.Storage
	sink       metrics.Sink
	upgradeURL string
}

// New creates a Guard. A nil sink disables metric recording.
func New(strg storage.Storage, sink metrics.Sink, upgradeURL string) *Guard {
	if sink == nil {
		sink = metrics.NopSink{}
	}

	return &Guard{
		storage:    strg,
		sink:       sink,
		upgradeURL: upgradeURL,
	}
}

// resolveSubscription loads the user's subscription, defaulting to an active
// trial when no record exists.
func (g *Guard) resolveSubscription(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	sub, err := g.storage.SubscriptionByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not resolve subscription: %w", err)
	}
	if sub == nil {
		sub = &domain.Subscription{
			UserID: userID,
			Plan:   domain.PlanTrial,
			Active: true,
		}
	}

	return sub, nil
}

// checkActive rejects inactive paid subscriptions. An inactive trial is still
// admitted; trial users are capped by usage, not standing.
func (g *Guard) checkActive(sub *domain.Subscription) *Denial {
	if sub.Active || sub.Plan == domain.PlanTrial {
		return nil
	}

	return &Denial{
		Code:           CodeSubscriptionInactive,
		Message:        "your subscription is inactive, renew it to keep scanning",
		CurrentPlan:    sub.Plan,
		UpgradeURL:     g.upgradeURL,
		AvailablePlans: UpgradeOffers(),
	}
}

// AuthorizeScan admits or denies a new scan for the user. It returns a
// *Denial (wrapping serrors.ErrPaymentRequired) when the subscription is
// inactive or the trial scan cap is reached, and nil when admitted.
func (g *Guard) AuthorizeScan(ctx context.Context, userID domain.UserID) error {
	sub, err := g.resolveSubscription(ctx, userID)
	if err != nil {
		return err
	}

	if denial := g.checkActive(sub); denial != nil {
		g.sink.Record("guard_denials_total", map[string]string{"code": denial.Code}, 1)

		return denial
	}

	limits := LimitsFor(sub.Plan)
	if limits.MaxScans < 0 {
		g.sink.Record("guard_admissions_total", map[string]string{"operation": "scan"}, 1)

		return nil
	}

	count, err := g.storage.UserScanCount(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not count user scans: %w", err)
	}
	if count >= int64(limits.MaxScans) {
		g.sink.Record("guard_denials_total", map[string]string{"code": CodeScanLimitExceeded}, 1)
		limit := int64(limits.MaxScans)

		return &Denial{
			Code:           CodeScanLimitExceeded,
			Message:        fmt.Sprintf("trial plan allows %d scans, upgrade to keep scanning", limits.MaxScans),
			CurrentPlan:    sub.Plan,
			CurrentUsage:   &count,
			Limit:          &limit,
			UpgradeURL:     g.upgradeURL,
			AvailablePlans: UpgradeOffers(),
		}
	}

	g.sink.Record("guard_admissions_total", map[string]string{"operation": "scan"}, 1)

	return nil
}

// AuthorizeCompany admits or denies registering a new company for the user.
// The company cap is checked here at creation time, not at scan time.
func (g *Guard) AuthorizeCompany(ctx context.Context, userID domain.UserID) error {
	sub, err := g.resolveSubscription(ctx, userID)
	if err != nil {
		return err
	}

	if denial := g.checkActive(sub); denial != nil {
		g.sink.Record("guard_denials_total", map[string]string{"code": denial.Code}, 1)

		return denial
	}

	limits := LimitsFor(sub.Plan)
	if limits.MaxCompanies < 0 {
		g.sink.Record("guard_admissions_total", map[string]string{"operation": "company"}, 1)

		return nil
	}

	count, err := g.storage.UserCompanyCount(ctx, userID)
	if err != nil {
		return fmt.Errorf("could not count user companies: %w", err)
	}
	if count >= int64(limits.MaxCompanies) {
		g.sink.Record("guard_denials_total", map[string]string{"code": CodeCompanyLimitExceeded}, 1)
		limit := int64(limits.MaxCompanies)

		return &Denial{
			Code:           CodeCompanyLimitExceeded,
			Message:        fmt.Sprintf("the %s plan allows %d companies", sub.Plan, limits.MaxCompanies),
			CurrentPlan:    sub.Plan,
			CurrentUsage:   &count,
			Limit:          &limit,
			UpgradeURL:     g.upgradeURL,
			AvailablePlans: UpgradeOffers(),
		}
	}

	g.sink.Record("guard_admissions_total", map[string]string{"operation": "company"}, 1)

	return nil
}
