package postgres_test

import (
	"context"
	"testing"

	"domainguard/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_SubscriptionByUserID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()

	// no row means no subscription, callers default to trial
	sub, err := pgSQL.SubscriptionByUserID(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, sub)

	_, err = pgSQL.DB.ExecContext(ctx,
		"INSERT INTO subscriptions (user_id, plan, active) VALUES ($1, $2, $3)",
		uuid.UUID(userID), string(domain.PlanPro), true)
	require.NoError(t, err)

	sub, err = pgSQL.SubscriptionByUserID(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	require.Equal(t, domain.PlanPro, sub.Plan)
	require.True(t, sub.Active)
}
