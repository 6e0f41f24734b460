package postgres_test

import (
	"context"
	"testing"

	"domainguard/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreCompany(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	stored, err := pgSQL.StoreCompany(ctx, domain.Company{
		OwnerUserID: userID,
		Name:        "acme",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "acme", stored.Name)
	require.Equal(t, userID, stored.OwnerUserID)
	require.False(t, stored.CreatedAt.IsZero())
}

func TestPgSQL_UserCompanyByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := newUserID()
	userB := newUserID()
	company := mustCompany(t, pgSQL, userA, "a corp")

	got, err := pgSQL.UserCompanyByID(ctx, userA, company.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, company.ID, got.ID)

	// other user cannot see it
	got, err = pgSQL.UserCompanyByID(ctx, userB, company.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// unknown id
	got, err = pgSQL.UserCompanyByID(ctx, userA, domain.CompanyID(uuid.New()))
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPgSQL_UserCompanies(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	mustCompany(t, pgSQL, userID, "first")
	mustCompany(t, pgSQL, userID, "second")
	mustCompany(t, pgSQL, newUserID(), "someone else's")

	companies, err := pgSQL.UserCompanies(ctx, userID)
	require.NoError(t, err)
	require.Len(t, companies, 2)

	count, err := pgSQL.UserCompanyCount(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)
}
