package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemosTokenSettings(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.createUser(t, "alice@example.com", "")

	resp := ts.api.Get("/api/v1/settings/memos-token", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[MemosTokenResponse](t, resp.Body.Bytes()).MemosToken)

	resp = ts.api.Put("/api/v1/settings/memos-token", bearer(token), map[string]any{
		"memosToken": "memos-secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/settings/memos-token", bearer(token))
	assert.Equal(t, "memos-secret", decodeBody[MemosTokenResponse](t, resp.Body.Bytes()).MemosToken)

	// An explicit empty string is rejected; null clears.
	resp = ts.api.Put("/api/v1/settings/memos-token", bearer(token), map[string]any{
		"memosToken": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Put("/api/v1/settings/memos-token", bearer(token), map[string]any{
		"memosToken": nil,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/settings/memos-token", bearer(token))
	assert.Empty(t, decodeBody[MemosTokenResponse](t, resp.Body.Bytes()).MemosToken)
}

func TestMemosTokenIsPerUser(t *testing.T) {
	ts := setupTestServer(t, "")
	aliceToken, _ := ts.createUser(t, "alice@example.com", "")
	bobToken, _ := ts.createUser(t, "bob@example.com", "")

	resp := ts.api.Put("/api/v1/settings/memos-token", bearer(aliceToken), map[string]any{
		"memosToken": "alice-secret",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/settings/memos-token", bearer(bobToken))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeBody[MemosTokenResponse](t, resp.Body.Bytes()).MemosToken)
}
