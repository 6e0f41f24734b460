package postgres

import (
	"context"
	"fmt"

	"domainguard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const subscriptionsTable = "subscriptions"

// SubscriptionByUserID returns nil when the user has no subscription row,
// which callers treat as an implicit trial plan.
func (p *PgSQL) SubscriptionByUserID(ctx context.Context, userID domain.UserID) (*domain.Subscription, error) {
	var row PgSubscription
	found, err := p.Builder.From(subscriptionsTable).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch subscription by user id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
