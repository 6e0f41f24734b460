package postgres

import (
	"context"
	"fmt"

	"domainguard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const findingsTable = "findings"

func (p *PgSQL) StoreFindings(ctx context.Context, findings []domain.Finding) ([]domain.Finding, error) {
	if len(findings) == 0 {
		return nil, nil
	}

	var result []PgFinding
	if err := p.Builder.Insert(findingsTable).
		Rows(domainFindingsToPg(findings)).
		Returning(&PgFinding{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store findings into pg: %w", err)
	}

	return pgFindingsToDomain(result), nil
}

// FindingsByScanID returns the scan's findings in insertion order.
func (p *PgSQL) FindingsByScanID(ctx context.Context, scanID domain.ScanID) ([]domain.Finding, error) {
	var rows []PgFinding
	if err := p.Builder.From(findingsTable).
		Where(goqu.I("scan_id").Eq(uuid.UUID(scanID))).
		Order(goqu.I("created_at").Asc(), goqu.I("id").Asc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch findings by scan id: %w", err)
	}

	return pgFindingsToDomain(rows), nil
}
