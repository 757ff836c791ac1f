package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
)

func TestSettingService_MemosToken(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()
	user := createTestUser(t, env, "a@example.com")

	token, err := env.settings.GetMemosToken(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, token)

	value := "memos-token"
	require.NoError(t, env.settings.UpdateMemosToken(ctx, user.ID, &value))

	token, err = env.settings.GetMemosToken(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "memos-token", token)

	// Nil clears the token.
	require.NoError(t, env.settings.UpdateMemosToken(ctx, user.ID, nil))
	token, err = env.settings.GetMemosToken(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, token)

	// A supplied token must not be empty.
	empty := ""
	err = env.settings.UpdateMemosToken(ctx, user.ID, &empty)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestSettingService_UnknownUser(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	_, err := env.settings.GetMemosToken(ctx, "missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))

	err = env.settings.UpdateMemosToken(ctx, "missing", nil)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
