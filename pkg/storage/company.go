package storage

import (
	"context"

	"domainguard/pkg/domain"
)

// CompanyStorage defines persistence operations for companies, the quota unit
// scans attach to.
type CompanyStorage interface {
	// StoreCompany inserts a company and returns the stored row.
	StoreCompany(ctx context.Context, company domain.Company) (*domain.Company, error)
	// UserCompanyByID fetches a company by id constrained to the owning user.
	// Returns nil when not found.
	UserCompanyByID(ctx context.Context, userID domain.UserID, id domain.CompanyID) (*domain.Company, error)
	// UserCompanies returns all companies owned by userID, newest first.
	UserCompanies(ctx context.Context, userID domain.UserID) ([]domain.Company, error)
	// UserCompanyCount returns how many companies userID owns. Input to the
	// company quota check at company creation.
	UserCompanyCount(ctx context.Context, userID domain.UserID) (int64, error)
}
