// Package v1handler implements the v1 HTTP API: scan admission, scan reads,
// company management and the posture overview. Handlers translate between
// JSON payloads and the orchestrator; semantic errors map onto HTTP status
// codes here and nowhere else.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"domainguard/internal/guard"
	"domainguard/internal/orchestrator"
	"domainguard/pkg/controller"
	"domainguard/pkg/domain"
	"domainguard/pkg/logger"
	"domainguard/pkg/ratelimit"
	"domainguard/pkg/serrors"
)

// DefaultLimit is the page size used when the client does not send one.
const DefaultLimit = 20

// MaxLimit caps the page size a client may request.
const MaxLimit = 100

// Deps holds the collaborators handlers delegate to.
type Deps struct {
	Orchestrator orchestrator.Orchestrator
	Limiter      *ratelimit.Limiter
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes builds the authenticated v1 router. Every route sits behind the
// bearer-token middleware; scan creation additionally uses the stricter scan
// rate-limit class.
func (h *Handler) Routes(sec *SecHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(sec.Middleware)

	r.With(h.rateLimit(ratelimit.ClassScan)).Post("/scans", h.CreateScan)

	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit(ratelimit.ClassGeneric))

		r.Get("/scans", h.ListScans)
		r.Get("/scans/{scanID}", h.GetScan)
		r.Post("/companies", h.CreateCompany)
		r.Get("/companies", h.ListCompanies)
		r.Get("/metrics/overview", h.GetOverview)
	})

	return r
}

// errorResponse is the uniform error payload for non-quota failures.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(ctx, "could not encode response", zap.Error(err))
	}
}

// writeError maps semantic errors to HTTP statuses. Quota denials keep their
// full structured payload so clients can render upgrade prompts.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var denial *guard.Denial
	if errors.As(err, &denial) {
		writeJSON(ctx, w, http.StatusPaymentRequired, denial)

		return
	}

	var serr *serrors.Error
	if errors.As(err, &serr) {
		switch {
		case errors.Is(serr, serrors.ErrBadRequest):
			writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: serr.Message()})
		case errors.Is(serr, serrors.ErrUnauthorized):
			writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{Error: serr.Message()})
		case errors.Is(serr, serrors.ErrPaymentRequired):
			writeJSON(ctx, w, http.StatusPaymentRequired, errorResponse{Error: serr.Message()})
		case errors.Is(serr, serrors.ErrNotFound):
			writeJSON(ctx, w, http.StatusNotFound, errorResponse{Error: serr.Message()})
		case errors.Is(serr, serrors.ErrConflict):
			writeJSON(ctx, w, http.StatusConflict, errorResponse{Error: serr.Message()})
		case errors.Is(serr, serrors.ErrRateLimited):
			writeJSON(ctx, w, http.StatusTooManyRequests, errorResponse{Error: serr.Message()})
		default:
			logger.Error(ctx, "request failed", zap.Error(err))
			writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}

		return
	}

	logger.Error(ctx, "request failed", zap.Error(err))
	writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// rateLimit gates a route on the fixed-window limiter. Authenticated
// requests count per user, anything else per client IP. Denied requests get
// a Retry-After of one full window.
func (h *Handler) rateLimit(class ratelimit.Class) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := controller.GetClientIP(r)
			if userID := GetUserIDFromContext(r.Context()); userID != (domain.UserID{}) {
				identifier = userID.String()
			}

			if !h.deps.Limiter.Admit(identifier, class) {
				seconds := int(h.deps.Limiter.Window(class) / time.Second)
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				writeJSON(r.Context(), w, http.StatusTooManyRequests,
					errorResponse{Error: "rate limit exceeded, retry later"})

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
