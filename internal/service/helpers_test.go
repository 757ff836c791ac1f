package service

import (
	"encoding/hex"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/memos"
	"github.com/daylogapp/daylog-server/internal/store"
	"github.com/daylogapp/daylog-server/internal/store/sqlite"
)

// testEnv bundles the services under test with their shared store.
type testEnv struct {
	store        store.Store
	tokenService *auth.TokenService
	auth         *AuthService
	users        *UserService
	logs         *LogService
	quickTags    *QuickTagService
	settings     *SettingService
}

// newTestEnv creates services backed by a temp-dir sqlite store. The Memos
// client points at memosURL; pass "" to leave forwarding unconfigured.
func newTestEnv(t *testing.T, memosURL string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	key, err := auth.LoadOrGenerateKey(dir)
	require.NoError(t, err)

	tokenService, err := auth.NewTokenService(hex.EncodeToString(key), 15*time.Minute)
	require.NoError(t, err)

	memosClient := memos.NewClient(memosURL, logger)

	return &testEnv{
		store:        s,
		tokenService: tokenService,
		auth:         NewAuthService(s, tokenService, logger),
		users:        NewUserService(s, logger),
		logs:         NewLogService(s, memosClient, logger),
		quickTags:    NewQuickTagService(s, logger),
		settings:     NewSettingService(s, logger),
	}
}
