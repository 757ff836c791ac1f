package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/daylogapp/daylog-server/internal/domain"
	"github.com/daylogapp/daylog-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "User login",
		Description: "Authenticates a user and returns an access token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "me",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Current user",
		Description: "Returns the authenticated user's account",
		Tags:        []string{"Authentication"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMe)
}

// === DTOs ===

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" doc:"Account email"`
	Password string `json:"password" doc:"Account password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	XForwardedFor string `header:"X-Forwarded-For"`
	XRealIP       string `header:"X-Real-IP"`
	Body          LoginRequest
}

// UserResponse contains public account data in API responses.
type UserResponse struct {
	ID        string    `json:"id" doc:"User ID"`
	Name      string    `json:"name" doc:"Display name"`
	Email     string    `json:"email" doc:"Email address"`
	Role      string    `json:"role" doc:"Account role (ADMIN or USER)"`
	IsActive  bool      `json:"isActive" doc:"Whether the account can log in"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
}

// AuthResponse contains the access token and authenticated user.
type AuthResponse struct {
	Token string       `json:"token" doc:"PASETO access token"`
	User  UserResponse `json:"user" doc:"Authenticated user"`
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body AuthResponse
}

// MeInput contains parameters for session introspection.
type MeInput struct {
	Authorization string `header:"Authorization"`
}

// MeOutput wraps the current user response for Huma.
type MeOutput struct {
	Body UserResponse
}

// userResponse converts a domain user to its API shape.
func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.DisplayName,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	ip := extractIP(input.XForwardedFor, input.XRealIP)
	if !s.authRateLimiter.Allow(ip) {
		s.logger.Warn("Login rate limit exceeded", "ip", ip)
		return nil, huma.Error429TooManyRequests("Too many login attempts. Please try again later.")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &AuthOutput{
		Body: AuthResponse{
			Token: resp.Token,
			User:  userResponse(resp.User),
		},
	}, nil
}

func (s *Server) handleMe(ctx context.Context, input *MeInput) (*MeOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Auth.Me(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &MeOutput{Body: userResponse(user)}, nil
}
