package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylogapp/daylog-server/internal/domain"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
)

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	created, err := env.users.Create(ctx, CreateUserRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resp, err := env.auth.Login(ctx, LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, created.ID, resp.User.ID)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// Token must verify and carry the user's identity.
	claims, err := env.tokenService.VerifyAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, string(domain.RoleUser), claims.Role)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	user, err := env.users.Create(ctx, CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	wrongPassword := func() error {
		_, err := env.auth.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "wrong password"})
		return err
	}
	unknownEmail := func() error {
		_, err := env.auth.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "hunter22"})
		return err
	}

	errWrong := wrongPassword()
	errUnknown := unknownEmail()

	// Deactivate and try with the correct password.
	_, err = env.users.SetStatus(ctx, user.ID, false)
	require.NoError(t, err)
	_, errInactive := env.auth.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "hunter22"})

	// All three failure modes must be indistinguishable.
	for name, e := range map[string]error{
		"wrong password": errWrong,
		"unknown email":  errUnknown,
		"inactive":       errInactive,
	} {
		var domainErr *domainerrors.Error
		require.True(t, errors.As(e, &domainErr), name)
		assert.Equal(t, domainerrors.CodeInvalidCredentials, domainErr.Code, name)
		assert.Equal(t, errWrong.Error(), e.Error(), name)
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.auth.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: ""})
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv(t, "")
	ctx := context.Background()

	user, err := env.users.Create(ctx, CreateUserRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	got, err := env.auth.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = env.auth.Me(ctx, "missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
