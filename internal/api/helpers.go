package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/daylogapp/daylog-server/internal/auth"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// access token claims.
func (s *Server) authenticateRequest(_ context.Context, authHeader string) (*auth.AccessClaims, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.tokenService.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims, nil
}

// authenticateAndRequireAdmin validates the token and requires admin role.
// The role is re-checked against the store so a demoted or deactivated admin
// loses access as soon as the change lands, not when the token expires.
func (s *Server) authenticateAndRequireAdmin(ctx context.Context, authHeader string) (*auth.AccessClaims, error) {
	claims, err := s.authenticateRequest(ctx, authHeader)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, huma.Error401Unauthorized("User not found")
	}
	if !user.IsActive {
		return nil, huma.Error401Unauthorized("Account is deactivated")
	}
	if !user.IsAdmin() {
		return nil, domainerrors.Forbidden("Admin access required")
	}

	return claims, nil
}
