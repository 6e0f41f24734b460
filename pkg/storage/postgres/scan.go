package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"domainguard/pkg/domain"
	"domainguard/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	scansTable     = "scans"
	companiesTable = "companies"
)

// ownedScans is the base dataset of scans joined to the companies owned by a user.
func (p *PgSQL) ownedScans(userID domain.UserID) *goqu.SelectDataset {
	return p.Builder.From(scansTable).
		Join(goqu.T(companiesTable), goqu.On(
			goqu.I(scansTable+".company_id").Eq(goqu.I(companiesTable+".id")),
		)).
		Where(goqu.I(companiesTable + ".owner_user_id").Eq(uuid.UUID(userID)))
}

func (p *PgSQL) StoreScan(ctx context.Context, scan domain.Scan) (*domain.Scan, error) {
	var pgScan PgScan
	pgScan.FromDomain(scan)

	var result []PgScan
	if err := p.Builder.Insert(scansTable).
		Rows(pgScan).
		Returning(&PgScan{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store scan into pg: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}

	return result[0].ToDomain(), nil
}

// TransitionScan performs a compare-and-swap status update: the row is only
// written when its current status equals from, which keeps the lifecycle
// monotonic under job replays and concurrent workers.
func (p *PgSQL) TransitionScan(ctx context.Context,
	id domain.ScanID,
	from domain.ScanStatus,
	updates storage.ScanUpdates) (*domain.Scan, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"status":     string(updates.Status),
	}
	if updates.HealthScore != nil {
		rec["health_score"] = *updates.HealthScore
	}
	if updates.StartedAt != nil {
		rec["started_at"] = *updates.StartedAt
	}
	if updates.CompletedAt != nil {
		rec["completed_at"] = *updates.CompletedAt
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgScan
	found, err := p.Builder.Update(scansTable).
		Set(rec).Where(
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("status").Eq(string(from)),
	).Returning(&PgScan{}).Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not transition scan in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// ScanByID returns a scan by its id regardless of owner.
func (p *PgSQL) ScanByID(ctx context.Context, id domain.ScanID) (*domain.Scan, error) {
	var row PgScan
	found, err := p.Builder.From(scansTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UserScanByID returns a scan by id constrained to companies owned by the user.
func (p *PgSQL) UserScanByID(ctx context.Context, userID domain.UserID, id domain.ScanID) (*domain.Scan, error) {
	var row PgScan
	found, err := p.ownedScans(userID).
		Select(goqu.I(scansTable+".*")).
		Where(goqu.I(scansTable+".id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user scan by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UserScans returns a page of the user's scans ordered by created_at DESC,
// id DESC, with an optional created-at cursor and status filter.
func (p *PgSQL) UserScans(ctx context.Context,
	userID domain.UserID,
	status domain.ScanStatus,
	cursor time.Time,
	limit uint) (storage.ScanPage, error) {
	ds := p.ownedScans(userID).Select(goqu.I(scansTable + ".*"))
	if status != "" {
		ds = ds.Where(goqu.I(scansTable + ".status").Eq(string(status)))
	}
	if !cursor.IsZero() {
		ds = ds.Where(goqu.I(scansTable + ".created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds = ds.Order(goqu.I(scansTable+".created_at").Desc(), goqu.I(scansTable+".id").Desc()).
		Limit(fetch)

	var rows []PgScan
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.ScanPage{}, fmt.Errorf("could not fetch user scans from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	return storage.ScanPage{
		Scans:      pgScansToDomain(rows),
		NextCursor: nextCursor,
	}, nil
}

// UserScanCount counts all scans owned transitively via the user's companies.
func (p *PgSQL) UserScanCount(ctx context.Context, userID domain.UserID) (int64, error) {
	var count int64
	if _, err := p.ownedScans(userID).
		Select(goqu.COUNT(goqu.I(scansTable + ".id"))).
		Executor().ScanValContext(ctx, &count); err != nil {
		return 0, fmt.Errorf("could not count user scans in pg: %w", err)
	}

	return count, nil
}

// UserOverview aggregates scan counts, average score and open finding counts
// for one user. Serves the cached metrics endpoint.
func (p *PgSQL) UserOverview(ctx context.Context, userID domain.UserID) (domain.Overview, error) {
	var agg struct {
		Total     int64           `db:"total"`
		Completed int64           `db:"completed"`
		Failed    int64           `db:"failed"`
		AvgScore  sql.NullFloat64 `db:"avg_score"`
	}

	_, err := p.ownedScans(userID).
		Select(
			goqu.COUNT(goqu.I(scansTable+".id")).As("total"),
			goqu.L("COUNT(*) FILTER (WHERE ? = ?)", goqu.I(scansTable+".status"), string(domain.ScanStatusCompleted)).As("completed"),
			goqu.L("COUNT(*) FILTER (WHERE ? = ?)", goqu.I(scansTable+".status"), string(domain.ScanStatusFailed)).As("failed"),
			goqu.AVG(goqu.I(scansTable+".health_score")).As("avg_score"),
		).
		Executor().ScanStructContext(ctx, &agg)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("could not aggregate user scans in pg: %w", err)
	}

	overview := domain.Overview{
		TotalScans:     agg.Total,
		CompletedScans: agg.Completed,
		FailedScans:    agg.Failed,
		OpenFindings:   make(map[domain.Severity]int64, 4),
	}
	if agg.AvgScore.Valid {
		overview.AverageHealthScore = agg.AvgScore.Float64
	}

	var rows []struct {
		Severity string `db:"severity"`
		Count    int64  `db:"count"`
	}
	if err := p.Builder.From(findingsTable).
		Join(goqu.T(scansTable), goqu.On(
			goqu.I(findingsTable+".scan_id").Eq(goqu.I(scansTable+".id")),
		)).
		Join(goqu.T(companiesTable), goqu.On(
			goqu.I(scansTable+".company_id").Eq(goqu.I(companiesTable+".id")),
		)).
		Where(
			goqu.I(companiesTable+".owner_user_id").Eq(uuid.UUID(userID)),
			goqu.I(findingsTable+".resolution_status").Eq(string(domain.ResolutionOpen)),
		).
		Select(goqu.I(findingsTable+".severity"), goqu.COUNT("*").As("count")).
		GroupBy(goqu.I(findingsTable+".severity")).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return domain.Overview{}, fmt.Errorf("could not aggregate open findings in pg: %w", err)
	}
	for _, r := range rows {
		overview.OpenFindings[domain.Severity(r.Severity)] = r.Count
	}

	return overview, nil
}
