package v1handler

import (
	"net/http"

	"domainguard/pkg/domain"
)

// CreateCompanyRequest is the body of POST /v1/companies.
type CreateCompanyRequest struct {
	Name string `json:"name"`
}

// CompanyListResponse lists the user's companies.
type CompanyListResponse struct {
	Items []domain.Company `json:"items"`
}

// CreateCompany registers a company for the calling user.
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCompanyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}

	company, err := h.deps.Orchestrator.CreateCompany(ctx, GetUserIDFromContext(ctx), req.Name)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusCreated, company)
}

// ListCompanies returns the user's companies, newest first.
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	companies, err := h.deps.Orchestrator.Companies(ctx, GetUserIDFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	if companies == nil {
		companies = []domain.Company{}
	}

	writeJSON(ctx, w, http.StatusOK, CompanyListResponse{Items: companies})
}
