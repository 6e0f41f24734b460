package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"domainguard/pkg/domain"
	"domainguard/pkg/storage"
	"domainguard/pkg/storage/postgres"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	// underlying handle should be a *sql.Tx
	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	// begin when already in tx
	_, err = inner.Begin(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_Commit_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := pg.Commit()
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotInTx)

	userID := newUserID()
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = txStorage.StoreCompany(ctx, domain.Company{OwnerUserID: userID, Name: "tx corp"})
	require.NoError(t, err)
	require.NoError(t, txStorage.Commit())

	// visible outside the tx after commit
	companies, err := pg.UserCompanies(ctx, userID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
}

func TestPgSQL_Rollback_SuccessAndNotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	err := pg.Rollback()
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrNotInTx)

	userID := newUserID()
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	_, err = txStorage.StoreCompany(ctx, domain.Company{OwnerUserID: userID, Name: "gone corp"})
	require.NoError(t, err)
	require.NoError(t, txStorage.Rollback())

	companies, err := pg.UserCompanies(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, companies)
}

func TestPgSQL_WithTx_CommitAndRollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	userID := newUserID()

	// success callback commits both writes atomically
	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		company, err := s.StoreCompany(ctx, domain.Company{OwnerUserID: userID, Name: "atomic corp"})
		if err != nil {
			return err //nolint: wrapcheck
		}
		_, err = s.StoreScan(ctx, domain.Scan{
			CompanyID: company.ID,
			Domain:    "atomic.example.com",
			Type:      domain.ScanTypeFull,
			Status:    domain.ScanStatusPending,
		})

		return err //nolint: wrapcheck
	})
	require.NoError(t, err)

	count, err := pg.UserScanCount(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	// error in callback rolls everything back
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		if _, err := s.StoreCompany(ctx, domain.Company{OwnerUserID: userID, Name: "doomed corp"}); err != nil {
			return err //nolint: wrapcheck
		}

		return errors.New("boom")
	})
	require.Error(t, err)

	companies, err := pg.UserCompanies(ctx, userID)
	require.NoError(t, err)
	require.Len(t, companies, 1)
}
