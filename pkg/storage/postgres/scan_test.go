package postgres_test

import (
	"context"
	"testing"
	"time"

	"domainguard/pkg/domain"
	"domainguard/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_StoreScan(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	company := mustCompany(t, pgSQL, newUserID(), "acme")

	stored, err := pgSQL.StoreScan(ctx, domain.Scan{
		CompanyID: company.ID,
		Domain:    "example.com",
		Type:      domain.ScanTypeFull,
		Status:    domain.ScanStatusPending,
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "example.com", stored.Domain)
	require.Equal(t, domain.ScanStatusPending, stored.Status)
	require.Nil(t, stored.HealthScore)
	require.False(t, stored.CreatedAt.IsZero())
}

func TestPgSQL_TransitionScan(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	company := mustCompany(t, pgSQL, newUserID(), "acme")
	scan := mustScan(t, pgSQL, company.ID, "example.com")

	t.Run("pending to running", func(t *testing.T) {
		now := time.Now().UTC()
		updated, err := pgSQL.TransitionScan(ctx, scan.ID, domain.ScanStatusPending, storage.ScanUpdates{
			Status:    domain.ScanStatusRunning,
			StartedAt: &now,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, domain.ScanStatusRunning, updated.Status)
		require.NotNil(t, updated.StartedAt)
	})

	t.Run("stale transition is a no-op", func(t *testing.T) {
		// scan is RUNNING now, a replayed PENDING->RUNNING must not match
		updated, err := pgSQL.TransitionScan(ctx, scan.ID, domain.ScanStatusPending, storage.ScanUpdates{
			Status: domain.ScanStatusRunning,
		})
		require.NoError(t, err)
		require.Nil(t, updated)
	})

	t.Run("running to completed sets score", func(t *testing.T) {
		score := 78
		now := time.Now().UTC()
		updated, err := pgSQL.TransitionScan(ctx, scan.ID, domain.ScanStatusRunning, storage.ScanUpdates{
			Status:      domain.ScanStatusCompleted,
			HealthScore: &score,
			CompletedAt: &now,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		require.Equal(t, domain.ScanStatusCompleted, updated.Status)
		require.NotNil(t, updated.HealthScore)
		require.Equal(t, 78, *updated.HealthScore)
		require.NotNil(t, updated.CompletedAt)
	})

	t.Run("terminal state does not move", func(t *testing.T) {
		updated, err := pgSQL.TransitionScan(ctx, scan.ID, domain.ScanStatusRunning, storage.ScanUpdates{
			Status: domain.ScanStatusFailed,
		})
		require.NoError(t, err)
		require.Nil(t, updated)
	})

	t.Run("unknown scan", func(t *testing.T) {
		updated, err := pgSQL.TransitionScan(ctx, domain.ScanID(uuid.New()), domain.ScanStatusPending, storage.ScanUpdates{
			Status: domain.ScanStatusRunning,
		})
		require.NoError(t, err)
		require.Nil(t, updated)
	})
}

func TestPgSQL_UserScanByID_Ownership(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := newUserID()
	userB := newUserID()
	companyA := mustCompany(t, pgSQL, userA, "a corp")
	companyB := mustCompany(t, pgSQL, userB, "b corp")
	scanA := mustScan(t, pgSQL, companyA.ID, "a.example.com")
	scanB := mustScan(t, pgSQL, companyB.ID, "b.example.com")

	// owner sees their scan
	got, err := pgSQL.UserScanByID(ctx, userA, scanA.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, scanA.ID, got.ID)

	// cross-tenant access yields nil
	got, err = pgSQL.UserScanByID(ctx, userA, scanB.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	// ScanByID ignores ownership, used by the worker
	got, err = pgSQL.ScanByID(ctx, scanB.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestPgSQL_UserScans_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	company := mustCompany(t, pgSQL, userID, "acme")

	stored := make([]domain.Scan, 0, 5)
	for range 5 {
		stored = append(stored, mustScan(t, pgSQL, company.ID, uuid.NewString()+".example.com"))
	}

	// adjust created_at to be deterministic descending: now, now-1m, ...
	now := time.Now().UTC()
	for i, sc := range stored {
		created := now.Add(-time.Duration(4-i) * time.Minute)
		_, err := pgSQL.DB.ExecContext(ctx, "UPDATE scans SET created_at = $1 WHERE id = $2", created, uuid.UUID(sc.ID))
		require.NoError(t, err)
	}

	// first page, limit 2
	p1, err := pgSQL.UserScans(ctx, userID, "", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, p1.Scans, 2)
	require.NotNil(t, p1.NextCursor)

	// second page
	p2, err := pgSQL.UserScans(ctx, userID, "", *p1.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p2.Scans, 2)
	require.NotNil(t, p2.NextCursor)

	// third (last) page, one scan left and no next cursor
	p3, err := pgSQL.UserScans(ctx, userID, "", *p2.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, p3.Scans, 1)
	require.Nil(t, p3.NextCursor)
}

func TestPgSQL_UserScans_StatusFilter(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	company := mustCompany(t, pgSQL, userID, "acme")
	pending := mustScan(t, pgSQL, company.ID, "p.example.com")
	running := mustScan(t, pgSQL, company.ID, "r.example.com")

	_, err := pgSQL.TransitionScan(ctx, running.ID, domain.ScanStatusPending, storage.ScanUpdates{
		Status: domain.ScanStatusRunning,
	})
	require.NoError(t, err)

	page, err := pgSQL.UserScans(ctx, userID, domain.ScanStatusPending, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Scans, 1)
	require.Equal(t, pending.ID, page.Scans[0].ID)
}

func TestPgSQL_UserScanCount(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	companyA := mustCompany(t, pgSQL, userID, "a corp")
	companyB := mustCompany(t, pgSQL, userID, "b corp")
	other := mustCompany(t, pgSQL, newUserID(), "other corp")

	mustScan(t, pgSQL, companyA.ID, "a1.example.com")
	mustScan(t, pgSQL, companyA.ID, "a2.example.com")
	mustScan(t, pgSQL, companyB.ID, "b1.example.com")
	mustScan(t, pgSQL, other.ID, "o1.example.com")

	count, err := pgSQL.UserScanCount(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)
}

func TestPgSQL_UserOverview(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userID := newUserID()
	company := mustCompany(t, pgSQL, userID, "acme")

	completed := mustScan(t, pgSQL, company.ID, "done.example.com")
	failed := mustScan(t, pgSQL, company.ID, "broken.example.com")
	mustScan(t, pgSQL, company.ID, "pending.example.com")

	score := 80
	now := time.Now().UTC()
	_, err := pgSQL.TransitionScan(ctx, completed.ID, domain.ScanStatusPending, storage.ScanUpdates{
		Status: domain.ScanStatusRunning, StartedAt: &now,
	})
	require.NoError(t, err)
	_, err = pgSQL.TransitionScan(ctx, completed.ID, domain.ScanStatusRunning, storage.ScanUpdates{
		Status: domain.ScanStatusCompleted, HealthScore: &score, CompletedAt: &now,
	})
	require.NoError(t, err)
	_, err = pgSQL.TransitionScan(ctx, failed.ID, domain.ScanStatusPending, storage.ScanUpdates{
		Status: domain.ScanStatusFailed, CompletedAt: &now,
	})
	require.NoError(t, err)

	findings, err := pgSQL.StoreFindings(ctx, []domain.Finding{
		{ScanID: completed.ID, Category: domain.CategoryCertificate, Severity: domain.SeverityHigh, Title: "expired cert", Description: "d"},
		{ScanID: completed.ID, Category: domain.CategoryWebHardening, Severity: domain.SeverityLow, Title: "missing hsts", Description: "d"},
		{ScanID: completed.ID, Category: domain.CategoryWebHardening, Severity: domain.SeverityLow, Title: "missing csp", Description: "d"},
	})
	require.NoError(t, err)
	require.Len(t, findings, 3)

	// resolved findings do not count as open
	_, err = pgSQL.DB.ExecContext(ctx,
		"UPDATE findings SET resolution_status = $1 WHERE id = $2",
		string(domain.ResolutionResolved), uuid.UUID(findings[1].ID))
	require.NoError(t, err)

	overview, err := pgSQL.UserOverview(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 3, overview.TotalScans)
	require.EqualValues(t, 1, overview.CompletedScans)
	require.EqualValues(t, 1, overview.FailedScans)
	require.InEpsilon(t, 80.0, overview.AverageHealthScore, 0.001)
	require.EqualValues(t, 1, overview.OpenFindings[domain.SeverityHigh])
	require.EqualValues(t, 1, overview.OpenFindings[domain.SeverityLow])
	require.NotContains(t, overview.OpenFindings, domain.SeverityCritical)
}
