package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"domainguard/pkg/controller"
	"domainguard/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestWithCORS_SetsHeadersAndHandlesPreflight(t *testing.T) {
	handler := controller.WithCORS(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWithCORS_AllowListEchoesKnownOrigins(t *testing.T) {
	handler := controller.WithCORS([]string{"https://app.example.com"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Values("Vary"), "Origin")

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, r)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRegisterPprof_ServesIndex(t *testing.T) {
	mux := http.NewServeMux()
	controller.RegisterPprof(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.9:4431"
	require.Equal(t, "10.0.0.9", controller.GetClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.7")
	require.Equal(t, "198.51.100.7", controller.GetClientIP(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 70.41.3.18")
	require.Equal(t, "203.0.113.5", controller.GetClientIP(r))
}

func TestWithLogger_PropagatesRequestID(t *testing.T) {
	var seen string
	handler := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(controller.RequestIDKey).(string)
	}))

	r := httptest.NewRequest(http.MethodGet, "/v1/scans", nil)
	r.Header.Set("X-Request-Id", "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.Equal(t, "req-42", seen)
}

func TestWithLogger_GeneratesRequestID(t *testing.T) {
	var seen string
	handler := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(controller.RequestIDKey).(string)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
}
