package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuickTagLifecycle(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.createUser(t, "alice@example.com", "")

	var ids []string
	for _, tag := range []struct{ label, category string }{
		{"meeting", "work"},
		{"deploy", "work"},
		{"chores", "home"},
	} {
		resp := ts.api.Post("/api/v1/quick-tags", bearer(token), map[string]any{
			"label":        tag.label,
			"categoryName": tag.category,
		})
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		ids = append(ids, decodeBody[QuickTagResponse](t, resp.Body.Bytes()).ID)
	}

	resp := ts.api.Get("/api/v1/quick-tags", bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody[QuickTagsGroupedResponse](t, resp.Body.Bytes())
	require.Len(t, body.Groups, 2)
	assert.Equal(t, []string{"chores"}, body.Groups["home"])
	// Labels come back sorted within their category.
	assert.Equal(t, []string{"deploy", "meeting"}, body.Groups["work"])

	resp = ts.api.Delete("/api/v1/quick-tags/"+ids[0], bearer(token))
	require.Equal(t, http.StatusOK, resp.Code)

	body = decodeBody[QuickTagsGroupedResponse](t, ts.api.Get("/api/v1/quick-tags", bearer(token)).Body.Bytes())
	assert.Equal(t, []string{"deploy"}, body.Groups["work"])

	resp = ts.api.Delete("/api/v1/quick-tags/"+ids[0], bearer(token))
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestAddQuickTag_Validation(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.createUser(t, "alice@example.com", "")

	resp := ts.api.Post("/api/v1/quick-tags", bearer(token), map[string]any{
		"label":        "",
		"categoryName": "work",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Post("/api/v1/quick-tags", bearer(token), map[string]any{
		"label":        "meeting",
		"categoryName": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRenameQuickTagCategory(t *testing.T) {
	ts := setupTestServer(t, "")
	token, _ := ts.createUser(t, "alice@example.com", "")
	otherToken, _ := ts.createUser(t, "bob@example.com", "")

	for _, label := range []string{"meeting", "deploy"} {
		resp := ts.api.Post("/api/v1/quick-tags", bearer(token), map[string]any{
			"label":        label,
			"categoryName": "work",
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}
	resp := ts.api.Post("/api/v1/quick-tags", bearer(otherToken), map[string]any{
		"label":        "standup",
		"categoryName": "work",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/quick-tags/rename-category", bearer(token), map[string]any{
		"oldName": "work",
		"newName": "job",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 2, decodeBody[RenameCategoryResponse](t, resp.Body.Bytes()).Count)

	body := decodeBody[QuickTagsGroupedResponse](t, ts.api.Get("/api/v1/quick-tags", bearer(token)).Body.Bytes())
	assert.NotContains(t, body.Groups, "work")
	assert.Equal(t, []string{"deploy", "meeting"}, body.Groups["job"])

	// The other user's category is untouched.
	otherBody := decodeBody[QuickTagsGroupedResponse](t, ts.api.Get("/api/v1/quick-tags", bearer(otherToken)).Body.Bytes())
	assert.Equal(t, []string{"standup"}, otherBody.Groups["work"])

	// Renaming a category with no tags is fine and moves nothing.
	resp = ts.api.Post("/api/v1/quick-tags/rename-category", bearer(token), map[string]any{
		"oldName": "nope",
		"newName": "still nope",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, decodeBody[RenameCategoryResponse](t, resp.Body.Bytes()).Count)
}
