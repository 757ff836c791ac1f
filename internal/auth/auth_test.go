package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daylogapp/daylog-server/internal/domain"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), time.Hour)
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	user := &domain.User{
		ID:    "user-abc",
		Email: "u@example.com",
		Role:  domain.RoleAdmin,
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-abc", claims.UserID)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.True(t, claims.IsAdmin())
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t)
	_, err := svc.VerifyAccessToken("v4.local.garbage")
	assert.Error(t, err)
}

func TestTokenService_RejectsForeignKey(t *testing.T) {
	a := newTestTokenService(t)
	b := newTestTokenService(t)

	token, err := a.GenerateAccessToken(&domain.User{ID: "user-1", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = b.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestNewTokenService_BadKey(t *testing.T) {
	_, err := NewTokenService("deadbeef", time.Hour)
	assert.Error(t, err)
}

func TestGenerateAPIToken(t *testing.T) {
	a, err := GenerateAPIToken()
	require.NoError(t, err)
	b, err := GenerateAPIToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	// 32 bytes base64url without padding is 43 characters.
	assert.Len(t, a, 43)
}

func TestAPITokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "bearer", header: map[string]string{"Authorization": "Bearer tok123"}, want: "tok123"},
		{name: "bearer trims spaces", header: map[string]string{"Authorization": "Bearer  tok123 "}, want: "tok123"},
		{name: "x-api-token", header: map[string]string{"X-Api-Token": "tok456"}, want: "tok456"},
		{name: "bearer wins over header", header: map[string]string{"Authorization": "Bearer a", "X-Api-Token": "b"}, want: "a"},
		{name: "basic scheme ignored", header: map[string]string{"Authorization": "Basic abc"}, want: ""},
		{name: "empty", header: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/open/logs", nil)
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, APITokenFromRequest(r))
		})
	}
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, 32)

	// Second load returns the persisted key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}
