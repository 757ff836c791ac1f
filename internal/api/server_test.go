package api

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/memos"
	"github.com/daylogapp/daylog-server/internal/service"
	"github.com/daylogapp/daylog-server/internal/store/sqlite"
)

// testServer wraps the API server with a humatest client.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a fully wired server on a temp-dir sqlite store.
// The Memos client points at memosURL; pass "" to leave it unconfigured.
func setupTestServer(t *testing.T, memosURL string) *testServer {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute)
	require.NoError(t, err)

	memosClient := memos.NewClient(memosURL, logger)

	services := &Services{
		Auth:     service.NewAuthService(st, tokenService, logger),
		User:     service.NewUserService(st, logger),
		Log:      service.NewLogService(st, memosClient, logger),
		QuickTag: service.NewQuickTagService(st, logger),
		Setting:  service.NewSettingService(st, logger),
	}

	s := NewServer(st, services, tokenService, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// createUser creates an account directly through the service layer and
// returns its bearer token and user ID.
func (ts *testServer) createUser(t *testing.T, email, role string) (token, userID string) {
	t.Helper()

	user, err := ts.services.User.Create(context.Background(), service.CreateUserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "hunter22",
		Role:     role,
	})
	require.NoError(t, err)

	resp, err := ts.services.Auth.Login(context.Background(), service.LoginRequest{
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)

	return resp.Token, user.ID
}

// bearer formats a token as an Authorization header value for humatest.
func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// decodeBody unmarshals a humatest response body.
func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	ts.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	ts := setupTestServer(t, "")

	for _, path := range []string{
		"/api/v1/auth/me",
		"/api/v1/logs",
		"/api/v1/quick-tags",
		"/api/v1/settings/memos-token",
		"/api/v1/users",
	} {
		resp := ts.api.Get(path)
		assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
	}
}

func TestMalformedAuthorizationHeader(t *testing.T) {
	ts := setupTestServer(t, "")

	resp := ts.api.Get("/api/v1/logs", "Authorization: NotBearer abc")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/logs", "Authorization: Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
