package v1handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"domainguard/pkg/domain"
	"domainguard/pkg/serrors"
)

// CreateScanRequest is the body of POST /v1/scans.
type CreateScanRequest struct {
	CompanyID uuid.UUID `json:"companyId"`
	Domain    string    `json:"domain"`
	// Type is optional and defaults to the full probe set.
	Type domain.ScanType `json:"type,omitempty"`
}

// CreateScanResponse acknowledges an admitted scan.
type CreateScanResponse struct {
	Success bool          `json:"success"`
	ScanID  domain.ScanID `json:"scanId"`
	Message string        `json:"message"`
}

// ScanResponse is a scan as served by the API. LastError is surfaced here
// for failed scans, and findings are attached on single-scan reads once the
// scan completed.
type ScanResponse struct {
	domain.Scan
	LastError string           `json:"lastError,omitempty"`
	Findings  []domain.Finding `json:"findings,omitempty"`
}

// ScanListResponse is one page of scans.
type ScanListResponse struct {
	Items      []ScanResponse `json:"items"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

func toScanResponse(scan *domain.Scan, findings []domain.Finding) ScanResponse {
	return ScanResponse{
		Scan:      *scan,
		LastError: scan.LastError,
		Findings:  findings,
	}
}

// CreateScan admits a new scan. 202 on success since the work happens
// asynchronously.
func (h *Handler) CreateScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateScanRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(ctx, w, err)

		return
	}
	if req.CompanyID == uuid.Nil {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "companyId is required"))

		return
	}
	if req.Type != "" && req.Type != domain.ScanTypeFull {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "unknown scan type"))

		return
	}

	scan, err := h.deps.Orchestrator.StartScan(ctx,
		GetUserIDFromContext(ctx),
		domain.CompanyID(req.CompanyID),
		req.Domain)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusAccepted, CreateScanResponse{
		Success: true,
		ScanID:  scan.ID,
		Message: "scan queued",
	})
}

// GetScan returns one scan with its findings.
func (h *Handler) GetScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	scanID, err := uuid.Parse(chi.URLParam(r, "scanID"))
	if err != nil {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid scan id"))

		return
	}

	scan, findings, err := h.deps.Orchestrator.ScanStatus(ctx, GetUserIDFromContext(ctx), domain.ScanID(scanID))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, toScanResponse(scan, findings))
}

// ListScans returns a page of the user's scans, newest first.
func (h *Handler) ListScans(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := domain.ScanStatus(r.URL.Query().Get("status"))
	switch status {
	case "", domain.ScanStatusPending, domain.ScanStatusRunning, domain.ScanStatusCompleted, domain.ScanStatusFailed:
	default:
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid status filter"))

		return
	}

	limit := uint(DefaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || parsed == 0 || parsed > MaxLimit {
			writeError(ctx, w, serrors.With(serrors.ErrBadRequest, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	scans, nextCursor, err := h.deps.Orchestrator.UserScans(ctx,
		GetUserIDFromContext(ctx),
		status,
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	items := make([]ScanResponse, 0, len(scans))
	for i := range scans {
		items = append(items, toScanResponse(&scans[i], nil))
	}

	writeJSON(ctx, w, http.StatusOK, ScanListResponse{Items: items, NextCursor: nextCursor})
}
