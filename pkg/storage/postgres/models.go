package postgres

import (
	"database/sql"
	"time"

	"domainguard/pkg/domain"

	"github.com/google/uuid"
)

type PgScan struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	CompanyID uuid.UUID `db:"company_id"`

	Domain      string         `db:"domain"`
	ScanType    string         `db:"scan_type"`
	Status      string         `db:"status"`
	HealthScore sql.NullInt32  `db:"health_score" goqu:"skipinsert"`
	LastError   sql.NullString `db:"last_error"   goqu:"skipinsert"`

	StartedAt   sql.NullTime `db:"started_at"   goqu:"skipinsert"`
	CompletedAt sql.NullTime `db:"completed_at" goqu:"skipinsert"`
	CreatedAt   time.Time    `db:"created_at"   goqu:"skipinsert"`
	UpdatedAt   sql.NullTime `db:"updated_at"   goqu:"skipinsert"`
}

func (p *PgScan) ToDomain() *domain.Scan {
	out := &domain.Scan{
		ID:        domain.ScanID(p.ID),
		CompanyID: domain.CompanyID(p.CompanyID),
		Domain:    p.Domain,
		Type:      domain.ScanType(p.ScanType),
		Status:    domain.ScanStatus(p.Status),
		LastError: p.LastError.String,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
	if p.HealthScore.Valid {
		score := int(p.HealthScore.Int32)
		out.HealthScore = &score
	}
	if p.StartedAt.Valid {
		t := p.StartedAt.Time
		out.StartedAt = &t
	}
	if p.CompletedAt.Valid {
		t := p.CompletedAt.Time
		out.CompletedAt = &t
	}

	return out
}

func (p *PgScan) FromDomain(scan domain.Scan) {
	*p = PgScan{
		ID:        uuid.UUID(scan.ID),
		CompanyID: uuid.UUID(scan.CompanyID),
		Domain:    scan.Domain,
		ScanType:  string(scan.Type),
		Status:    string(scan.Status),
		LastError: sql.NullString{
			String: scan.LastError,
			Valid:  scan.LastError != "",
		},
		CreatedAt: scan.CreatedAt,
	}
	if scan.HealthScore != nil {
		p.HealthScore = sql.NullInt32{Int32: int32(*scan.HealthScore), Valid: true} //nolint: gosec
	}
	if scan.StartedAt != nil {
		p.StartedAt = sql.NullTime{Time: *scan.StartedAt, Valid: true}
	}
	if scan.CompletedAt != nil {
		p.CompletedAt = sql.NullTime{Time: *scan.CompletedAt, Valid: true}
	}
	if !scan.UpdatedAt.IsZero() {
		p.UpdatedAt = sql.NullTime{Time: scan.UpdatedAt, Valid: true}
	}
}

func pgScansToDomain(scans []PgScan) []domain.Scan {
	out := make([]domain.Scan, 0, len(scans))
	for i := range scans {
		out = append(out, *scans[i].ToDomain())
	}

	return out
}

type PgFinding struct {
	ID     uuid.UUID `db:"id"      goqu:"skipinsert"`
	ScanID uuid.UUID `db:"scan_id"`

	Category    string `db:"category"`
	Severity    string `db:"severity"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Remediation string `db:"remediation"`
	Resolution  string `db:"resolution_status"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgFinding) ToDomain() *domain.Finding {
	return &domain.Finding{
		ID:          domain.FindingID(p.ID),
		ScanID:      domain.ScanID(p.ScanID),
		Category:    domain.FindingCategory(p.Category),
		Severity:    domain.Severity(p.Severity),
		Title:       p.Title,
		Description: p.Description,
		Remediation: p.Remediation,
		Resolution:  domain.ResolutionStatus(p.Resolution),
		CreatedAt:   p.CreatedAt,
	}
}

func (p *PgFinding) FromDomain(finding domain.Finding) {
	resolution := finding.Resolution
	if resolution == "" {
		resolution = domain.ResolutionOpen
	}

	*p = PgFinding{
		ID:          uuid.UUID(finding.ID),
		ScanID:      uuid.UUID(finding.ScanID),
		Category:    string(finding.Category),
		Severity:    string(finding.Severity),
		Title:       finding.Title,
		Description: finding.Description,
		Remediation: finding.Remediation,
		Resolution:  string(resolution),
		CreatedAt:   finding.CreatedAt,
	}
}

func domainFindingsToPg(findings []domain.Finding) []PgFinding {
	out := make([]PgFinding, len(findings))
	for i := range out {
		out[i].FromDomain(findings[i])
	}

	return out
}

func pgFindingsToDomain(findings []PgFinding) []domain.Finding {
	out := make([]domain.Finding, 0, len(findings))
	for i := range findings {
		out = append(out, *findings[i].ToDomain())
	}

	return out
}

type PgCompany struct {
	ID          uuid.UUID `db:"id"            goqu:"skipinsert"`
	OwnerUserID uuid.UUID `db:"owner_user_id"`

	Name string `db:"name"`

	CreatedAt time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgCompany) ToDomain() *domain.Company {
	return &domain.Company{
		ID:          domain.CompanyID(p.ID),
		OwnerUserID: domain.UserID(p.OwnerUserID),
		Name:        p.Name,
		CreatedAt:   p.CreatedAt,
	}
}

func (p *PgCompany) FromDomain(company domain.Company) {
	*p = PgCompany{
		ID:          uuid.UUID(company.ID),
		OwnerUserID: uuid.UUID(company.OwnerUserID),
		Name:        company.Name,
		CreatedAt:   company.CreatedAt,
	}
}

type PgSubscription struct {
	UserID uuid.UUID `db:"user_id"`

	Plan   string `db:"plan"`
	Active bool   `db:"active"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgSubscription) ToDomain() *domain.Subscription {
	return &domain.Subscription{
		UserID:    domain.UserID(p.UserID),
		Plan:      domain.PlanTier(p.Plan),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}
