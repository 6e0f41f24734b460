package storage

import (
	"context"

	"domainguard/pkg/domain"
)

// SubscriptionStorage is the read-only view of the billing collaborator's
// records consumed by the quota guard.
type SubscriptionStorage interface {
	// SubscriptionByUserID returns the user's subscription, or nil when the
	// user has none (the guard then defaults to an active trial).
	SubscriptionByUserID(ctx context.Context, userID domain.UserID) (*domain.Subscription, error)
}
