package postgres

import (
	"context"
	"fmt"

	"domainguard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

func (p *PgSQL) StoreCompany(ctx context.Context, company domain.Company) (*domain.Company, error) {
	var pgCompany PgCompany
	pgCompany.FromDomain(company)

	var result []PgCompany
	if err := p.Builder.Insert(companiesTable).
		Rows(pgCompany).
		Returning(&PgCompany{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store company into pg: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("insert returned no row")
	}

	return result[0].ToDomain(), nil
}

func (p *PgSQL) UserCompanyByID(ctx context.Context, userID domain.UserID, id domain.CompanyID) (*domain.Company, error) {
	var row PgCompany
	found, err := p.Builder.From(companiesTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("owner_user_id").Eq(uuid.UUID(userID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user company by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

func (p *PgSQL) UserCompanies(ctx context.Context, userID domain.UserID) ([]domain.Company, error) {
	var rows []PgCompany
	if err := p.Builder.From(companiesTable).
		Where(goqu.I("owner_user_id").Eq(uuid.UUID(userID))).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return nil, fmt.Errorf("could not fetch user companies from pg: %w", err)
	}

	out := make([]domain.Company, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}

	return out, nil
}

func (p *PgSQL) UserCompanyCount(ctx context.Context, userID domain.UserID) (int64, error) {
	var count int64
	if _, err := p.Builder.From(companiesTable).
		Where(goqu.I("owner_user_id").Eq(uuid.UUID(userID))).
		Select(goqu.COUNT("*")).
		Executor().ScanValContext(ctx, &count); err != nil {
		return 0, fmt.Errorf("could not count user companies in pg: %w", err)
	}

	return count, nil
}
