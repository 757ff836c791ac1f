package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/daylogapp/daylog-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all accounts, newest first (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        "/api/v1/users",
		Summary:     "Create user",
		Description: "Creates a new account (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "setUserStatus",
		Method:      http.MethodPatch,
		Path:        "/api/v1/users/{id}/status",
		Summary:     "Set user status",
		Description: "Activates or deactivates an account (admin only)",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetUserStatus)

	huma.Register(s.api, huma.Operation{
		OperationID: "setSecretKey",
		Method:      http.MethodPut,
		Path:        "/api/v1/users/me/secret-key",
		Summary:     "Set API token",
		Description: "Sets the caller's open-endpoint API token to a chosen value",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetSecretKey)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateAPIToken",
		Method:      http.MethodPost,
		Path:        "/api/v1/users/me/api-token",
		Summary:     "Generate API token",
		Description: "Generates, stores and returns a fresh open-endpoint API token",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGenerateAPIToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "getAPIToken",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/api-token",
		Summary:     "Get API token",
		Description: "Returns the caller's current open-endpoint API token",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetAPIToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "revokeAPIToken",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me/api-token",
		Summary:     "Revoke API token",
		Description: "Clears the caller's open-endpoint API token",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRevokeAPIToken)
}

// === DTOs ===

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

// ListUsersResponse contains a list of accounts.
type ListUsersResponse struct {
	Users []UserResponse `json:"users" doc:"All accounts, newest first"`
}

// ListUsersOutput wraps the list users response for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// CreateUserRequest is the request body for creating an account.
type CreateUserRequest struct {
	Name     string `json:"name" doc:"Display name"`
	Email    string `json:"email" doc:"Email address (stored lowercased)"`
	Password string `json:"password" doc:"Password, at least 6 characters"`
	Role     string `json:"role,omitempty" doc:"ADMIN or USER, defaults to USER"`
}

// CreateUserInput wraps the create user request for Huma.
type CreateUserInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateUserRequest
}

// UserOutput wraps a single user response for Huma.
type UserOutput struct {
	Body UserResponse
}

// SetUserStatusRequest is the request body for activating or deactivating.
type SetUserStatusRequest struct {
	IsActive bool `json:"isActive" doc:"Whether the account may log in"`
}

// SetUserStatusInput wraps the status change request for Huma.
type SetUserStatusInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          SetUserStatusRequest
}

// SetSecretKeyRequest is the request body for choosing an API token.
type SetSecretKeyRequest struct {
	SecretKey string `json:"secretKey" doc:"New API token value"`
}

// SetSecretKeyInput wraps the secret key request for Huma.
type SetSecretKeyInput struct {
	Authorization string `header:"Authorization"`
	Body          SetSecretKeyRequest
}

// APITokenResponse contains an open-endpoint API token.
type APITokenResponse struct {
	Token string `json:"token" doc:"API token, empty when unset"`
}

// APITokenOutput wraps the API token response for Huma.
type APITokenOutput struct {
	Body APITokenResponse
}

// AuthHeaderInput contains just the Authorization header.
type AuthHeaderInput struct {
	Authorization string `header:"Authorization"`
}

// OKResponse reports a successful mutation with no other payload.
type OKResponse struct {
	OK bool `json:"ok"`
}

// OKOutput wraps the OK response for Huma.
type OKOutput struct {
	Body OKResponse
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, input *ListUsersInput) (*ListUsersOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	users, err := s.services.User.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = userResponse(u)
	}

	return &ListUsersOutput{Body: ListUsersResponse{Users: resp}}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	user, err := s.services.User.Create(ctx, service.CreateUserRequest{
		Name:     input.Body.Name,
		Email:    input.Body.Email,
		Password: input.Body.Password,
		Role:     input.Body.Role,
	})
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: userResponse(user)}, nil
}

func (s *Server) handleSetUserStatus(ctx context.Context, input *SetUserStatusInput) (*UserOutput, error) {
	if _, err := s.authenticateAndRequireAdmin(ctx, input.Authorization); err != nil {
		return nil, err
	}

	user, err := s.services.User.SetStatus(ctx, input.ID, input.Body.IsActive)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: userResponse(user)}, nil
}

func (s *Server) handleSetSecretKey(ctx context.Context, input *SetSecretKeyInput) (*OKOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.SetSecretKey(ctx, claims.UserID, input.Body.SecretKey); err != nil {
		return nil, err
	}

	return &OKOutput{Body: OKResponse{OK: true}}, nil
}

func (s *Server) handleGenerateAPIToken(ctx context.Context, input *AuthHeaderInput) (*APITokenOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	token, err := s.services.User.GenerateAPIToken(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &APITokenOutput{Body: APITokenResponse{Token: token}}, nil
}

func (s *Server) handleGetAPIToken(ctx context.Context, input *AuthHeaderInput) (*APITokenOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	token, err := s.services.User.GetAPIToken(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &APITokenOutput{Body: APITokenResponse{Token: token}}, nil
}

func (s *Server) handleRevokeAPIToken(ctx context.Context, input *AuthHeaderInput) (*OKOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.User.RevokeAPIToken(ctx, claims.UserID); err != nil {
		return nil, err
	}

	return &OKOutput{Body: OKResponse{OK: true}}, nil
}
