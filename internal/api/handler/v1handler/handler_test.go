package v1handler_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"domainguard/internal/api/handler/v1handler"
	mockorchestrator "domainguard/internal/orchestrator/mock"
	"domainguard/pkg/logger"
	"domainguard/pkg/ratelimit"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// genRSAKeys generates an RSA key pair and returns the private key and the
// PEM-encoded public key.
func genRSAKeys(tb testing.TB) (*rsa.PrivateKey, string) {
	tb.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(tb, err, "failed to generate RSA key")
	pubASN1, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(tb, err, "failed to marshal public key")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubASN1})

	return priv, string(pubPEM)
}

func signJWTRS256(tb testing.TB, priv *rsa.PrivateKey, sub string, issuedAt, exp time.Time) string {
	tb.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(exp),
		NotBefore: jwt.NewNumericDate(issuedAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(priv)
	require.NoError(tb, err, "failed to sign token")

	return signed
}

// testAPI bundles everything a handler test needs: the HTTP test server, the
// orchestrator mock behind it and a signed token for userID.
type testAPI struct {
	server  *httptest.Server
	orch    *mockorchestrator.MockOrchestrator
	limiter *ratelimit.Limiter
	userID  uuid.UUID
	token   string
}

func newTestAPI(t *testing.T, ctrl *gomock.Controller) *testAPI {
	t.Helper()

	priv, pubPEM := genRSAKeys(t)
	sec, err := v1handler.NewSecHandler(&v1handler.SecHandlerOptions{PublicKey: pubPEM})
	require.NoError(t, err)

	orch := mockorchestrator.NewMockOrchestrator(ctrl)
	limiter := ratelimit.New(map[ratelimit.Class]ratelimit.Limit{
		ratelimit.ClassGeneric: {MaxRequests: 100, Window: time.Minute},
		ratelimit.ClassScan:    {MaxRequests: 2, Window: time.Minute},
	}, ratelimit.Limit{MaxRequests: 100, Window: time.Minute})

	h := v1handler.New(v1handler.Deps{Orchestrator: orch, Limiter: limiter})
	server := httptest.NewServer(h.Routes(sec))
	t.Cleanup(server.Close)

	userID := uuid.New()
	now := time.Now()

	return &testAPI{
		server:  server,
		orch:    orch,
		limiter: limiter,
		userID:  userID,
		token:   signJWTRS256(t, priv, userID.String(), now, now.Add(time.Hour)),
	}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func decodeInto(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestRoutes_MissingTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := newTestAPI(t, ctrl)

	resp, err := http.Get(api.server.URL + "/scans")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
