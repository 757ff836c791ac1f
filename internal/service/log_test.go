package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylogapp/daylog-server/internal/domain"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
)

func createTestUser(t *testing.T, env *testEnv, email string) *domain.User {
	t.Helper()
	user, err := env.users.Create(context.Background(), CreateUserRequest{
		Name:     "Test User",
		Email:    email,
		Password: "hunter22",
	})
	require.NoError(t, err)
	return user
}

func TestLogService_Add(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	date := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Content: "shipped the release",
		Date:    date,
		Tags:    `[{"category":"work","labels":["deploy"]}]`,
		IsTodo:  true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, log.ID)
	assert.True(t, log.IsTodo)
	assert.False(t, log.IsTodoDone, "new todos always start undone")

	got, err := env.store.GetLog(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.Equal(t, "shipped the release", got.Content)
}

func TestLogService_Add_RequiresContentOrTags(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	_, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Content: "   ",
		Tags:    "  ",
		Date:    time.Now(),
	})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	// Tag-only entries are fine.
	_, err = env.logs.Add(ctx, user.ID, AddLogRequest{
		Tags: `[{"category":"mood","labels":["good"]}]`,
		Date: time.Now(),
	})
	assert.NoError(t, err)
}

func TestLogService_Add_Reply(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	parent, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "parent", Date: time.Now()})
	require.NoError(t, err)

	reply, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Content:  "reply",
		Date:     time.Now(),
		ParentID: parent.ID,
	})
	require.NoError(t, err)
	assert.True(t, reply.IsReply())

	replies, err := env.logs.GetReplies(ctx, user.ID, parent.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)
}

func TestLogService_GetByDate(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	inDay, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "today", Date: day.Add(9 * time.Hour)})
	require.NoError(t, err)
	_, err = env.logs.Add(ctx, user.ID, AddLogRequest{Content: "tomorrow", Date: day.AddDate(0, 0, 1)})
	require.NoError(t, err)
	_, err = env.logs.Add(ctx, user.ID, AddLogRequest{
		Content: "threaded", Date: day.Add(10 * time.Hour), ParentID: inDay.ID,
	})
	require.NoError(t, err)

	// Any instant of the day selects the whole day.
	got, err := env.logs.GetByDate(ctx, user.ID, day.Add(23*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, inDay.ID, got[0].Log.ID)
	require.Len(t, got[0].Replies, 1)
	assert.Equal(t, "threaded", got[0].Replies[0].Content)
}

func TestLogService_ToggleTodo(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	todo, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "buy milk", Date: time.Now(), IsTodo: true})
	require.NoError(t, err)
	plain, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "not a todo", Date: time.Now()})
	require.NoError(t, err)

	toggled, err := env.logs.ToggleTodo(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsTodoDone)

	toggled, err = env.logs.ToggleTodo(ctx, user.ID, todo.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsTodoDone)

	_, err = env.logs.ToggleTodo(ctx, user.ID, plain.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = env.logs.ToggleTodo(ctx, user.ID, "missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	// Someone else's todo is indistinguishable from a missing one.
	other := createTestUser(t, env, "b@example.com")
	_, err = env.logs.ToggleTodo(ctx, other.ID, todo.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLogService_Update(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Content: "original",
		Tags:    `[{"category":"work","labels":["misc"]}]`,
		Date:    time.Now(),
	})
	require.NoError(t, err)

	// Updating only content keeps tags.
	newContent := "rewritten"
	updated, err := env.logs.Update(ctx, user.ID, log.ID, UpdateLogRequest{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Content)
	assert.Equal(t, log.Tags, updated.Tags)

	// Empty string is an explicit value, not "leave as is".
	empty := ""
	updated, err = env.logs.Update(ctx, user.ID, log.ID, UpdateLogRequest{Tags: &empty})
	require.NoError(t, err)
	assert.Equal(t, "rewritten", updated.Content)
	assert.Empty(t, updated.Tags)

	// At least one field is required.
	_, err = env.logs.Update(ctx, user.ID, log.ID, UpdateLogRequest{})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = env.logs.Update(ctx, user.ID, "missing", UpdateLogRequest{Content: &newContent})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLogService_Delete(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	parent, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "parent", Date: time.Now()})
	require.NoError(t, err)
	reply, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "reply", Date: time.Now(), ParentID: parent.ID})
	require.NoError(t, err)

	require.NoError(t, env.logs.Delete(ctx, user.ID, parent.ID))

	_, err = env.store.GetLog(ctx, user.ID, reply.ID)
	assert.Error(t, err, "replies are deleted with their parent")

	// Deleting again reports not found instead of failing loudly.
	err = env.logs.Delete(ctx, user.ID, parent.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLogService_ImportExport(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	count, err := env.logs.Import(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	items := []ImportItem{
		{Content: "first", Date: date, Tags: `[{"category":"work","labels":["a"]}]`, IsTodo: true},
		// Import deliberately has no content-or-tags requirement;
		// entries that Add would reject pass through untouched.
		{Content: "", Date: date.AddDate(0, 0, 1)},
	}
	count, err = env.logs.Import(ctx, user.ID, items)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := env.logs.Export(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0].Content)
	assert.True(t, entries[0].IsTodo)
	assert.False(t, entries[0].IsTodoDone)
	assert.Empty(t, entries[1].Content)
}

func TestLogService_Forward(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Content: "went for a run",
		Tags:    `[{"category":"health","labels":["exercise"]}]`,
		Date:    time.Now(),
	})
	require.NoError(t, err)

	// Without a stored token forwarding is refused softly.
	result, err := env.logs.Forward(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, result.OK)

	token := "memos-token"
	require.NoError(t, env.settings.UpdateMemosToken(ctx, user.ID, &token))

	result, err = env.logs.Forward(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "Saved to memos.", result.Message)
	assert.Equal(t, "- went for a run (health: exercise)", gotBody["content"])

	_, err = env.logs.Forward(ctx, user.ID, "missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestLogService_Forward_Unconfigured(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "entry", Date: time.Now()})
	require.NoError(t, err)

	result, err := env.logs.Forward(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "Missing MEMOS API URL.", result.Message)
}

func TestLogService_Forward_TagOnlyEntry(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")
	token := "memos-token"
	require.NoError(t, env.settings.UpdateMemosToken(ctx, user.ID, &token))

	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{
		Tags: `[{"category":"mood","labels":["good"]}]`,
		Date: time.Now(),
	})
	require.NoError(t, err)

	result, err := env.logs.Forward(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "- Tagged entry (mood: good)", gotBody["content"])
}

func TestLogService_Forward_MemosDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	env := newTestEnv(t, srv.URL)
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")
	token := "memos-token"
	require.NoError(t, env.settings.UpdateMemosToken(ctx, user.ID, &token))

	log, err := env.logs.Add(ctx, user.ID, AddLogRequest{Content: "entry", Date: time.Now()})
	require.NoError(t, err)

	// Upstream failure is a soft result, never an error.
	result, err := env.logs.Forward(ctx, user.ID, log.ID)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Equal(t, "Failed to save to memos.", result.Message)
}
