package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSettingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMemosToken",
		Method:      http.MethodGet,
		Path:        "/api/v1/settings/memos-token",
		Summary:     "Get Memos token",
		Description: "Returns the caller's stored Memos access token",
		Tags:        []string{"Settings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMemosToken)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMemosToken",
		Method:      http.MethodPut,
		Path:        "/api/v1/settings/memos-token",
		Summary:     "Update Memos token",
		Description: "Stores or clears the caller's Memos access token",
		Tags:        []string{"Settings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMemosToken)
}

// === DTOs ===

// GetMemosTokenInput contains parameters for reading the Memos token.
type GetMemosTokenInput struct {
	Authorization string `header:"Authorization"`
}

// MemosTokenResponse contains the stored Memos token.
type MemosTokenResponse struct {
	MemosToken string `json:"memosToken" doc:"Memos access token, empty when unset"`
}

// MemosTokenOutput wraps the Memos token response for Huma.
type MemosTokenOutput struct {
	Body MemosTokenResponse
}

// UpdateMemosTokenRequest stores or clears the Memos token. Null clears it.
type UpdateMemosTokenRequest struct {
	MemosToken *string `json:"memosToken" doc:"New token, or null to clear"`
}

// UpdateMemosTokenInput wraps the update request for Huma.
type UpdateMemosTokenInput struct {
	Authorization string `header:"Authorization"`
	Body          UpdateMemosTokenRequest
}

// === Handlers ===

func (s *Server) handleGetMemosToken(ctx context.Context, input *GetMemosTokenInput) (*MemosTokenOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	token, err := s.services.Setting.GetMemosToken(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &MemosTokenOutput{Body: MemosTokenResponse{MemosToken: token}}, nil
}

func (s *Server) handleUpdateMemosToken(ctx context.Context, input *UpdateMemosTokenInput) (*OKOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Setting.UpdateMemosToken(ctx, claims.UserID, input.Body.MemosToken); err != nil {
		return nil, err
	}

	return &OKOutput{Body: OKResponse{OK: true}}, nil
}
