package v1handler

import (
	"net/http"
)

// GetOverview returns the user's aggregated security posture.
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	overview, err := h.deps.Orchestrator.Overview(ctx, GetUserIDFromContext(ctx))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, overview)
}
