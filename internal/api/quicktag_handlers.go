package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/daylogapp/daylog-server/internal/service"
)

func (s *Server) registerQuickTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getQuickTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/quick-tags",
		Summary:     "Get quick tags",
		Description: "Returns the caller's quick tags grouped by category",
		Tags:        []string{"QuickTags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetQuickTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "addQuickTag",
		Method:      http.MethodPost,
		Path:        "/api/v1/quick-tags",
		Summary:     "Add quick tag",
		Description: "Creates a quick tag shortcut",
		Tags:        []string{"QuickTags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddQuickTag)

	huma.Register(s.api, huma.Operation{
		OperationID: "renameQuickTagCategory",
		Method:      http.MethodPost,
		Path:        "/api/v1/quick-tags/rename-category",
		Summary:     "Rename quick tag category",
		Description: "Moves every quick tag of the caller from one category to another",
		Tags:        []string{"QuickTags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRenameQuickTagCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteQuickTag",
		Method:      http.MethodDelete,
		Path:        "/api/v1/quick-tags/{id}",
		Summary:     "Delete quick tag",
		Description: "Deletes one quick tag of the caller",
		Tags:        []string{"QuickTags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteQuickTag)
}

// === DTOs ===

// GetQuickTagsInput contains parameters for listing quick tags.
type GetQuickTagsInput struct {
	Authorization string `header:"Authorization"`
}

// QuickTagsGroupedResponse maps categories to their labels.
type QuickTagsGroupedResponse struct {
	Groups map[string][]string `json:"groups" doc:"Labels per category, sorted"`
}

// QuickTagsGroupedOutput wraps the grouped response for Huma.
type QuickTagsGroupedOutput struct {
	Body QuickTagsGroupedResponse
}

// AddQuickTagRequest is the request body for creating a quick tag.
type AddQuickTagRequest struct {
	Label        string `json:"label" doc:"Tag label"`
	CategoryName string `json:"categoryName" doc:"Tag category"`
}

// AddQuickTagInput wraps the add quick tag request for Huma.
type AddQuickTagInput struct {
	Authorization string `header:"Authorization"`
	Body          AddQuickTagRequest
}

// QuickTagResponse contains quick tag data in API responses.
type QuickTagResponse struct {
	ID           string    `json:"id" doc:"Quick tag ID"`
	Label        string    `json:"label" doc:"Tag label"`
	CategoryName string    `json:"categoryName" doc:"Tag category"`
	CreatedAt    time.Time `json:"createdAt" doc:"Creation time"`
}

// QuickTagOutput wraps a single quick tag response for Huma.
type QuickTagOutput struct {
	Body QuickTagResponse
}

// RenameCategoryRequest is the request body for a category rename.
type RenameCategoryRequest struct {
	OldName string `json:"oldName" doc:"Category to rename"`
	NewName string `json:"newName" doc:"New category name"`
}

// RenameCategoryInput wraps the rename request for Huma.
type RenameCategoryInput struct {
	Authorization string `header:"Authorization"`
	Body          RenameCategoryRequest
}

// RenameCategoryResponse reports how many quick tags moved.
type RenameCategoryResponse struct {
	Count int `json:"count" doc:"Number of renamed quick tags"`
}

// RenameCategoryOutput wraps the rename response for Huma.
type RenameCategoryOutput struct {
	Body RenameCategoryResponse
}

// DeleteQuickTagInput contains parameters for deleting a quick tag.
type DeleteQuickTagInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Quick tag ID"`
}

// === Handlers ===

func (s *Server) handleGetQuickTags(ctx context.Context, input *GetQuickTagsInput) (*QuickTagsGroupedOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	grouped, err := s.services.QuickTag.GetGrouped(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return &QuickTagsGroupedOutput{Body: QuickTagsGroupedResponse{Groups: grouped}}, nil
}

func (s *Server) handleAddQuickTag(ctx context.Context, input *AddQuickTagInput) (*QuickTagOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	tag, err := s.services.QuickTag.Add(ctx, claims.UserID, service.AddQuickTagRequest{
		Label:        input.Body.Label,
		CategoryName: input.Body.CategoryName,
	})
	if err != nil {
		return nil, err
	}

	return &QuickTagOutput{
		Body: QuickTagResponse{
			ID:           tag.ID,
			Label:        tag.Label,
			CategoryName: tag.CategoryName,
			CreatedAt:    tag.CreatedAt,
		},
	}, nil
}

func (s *Server) handleRenameQuickTagCategory(ctx context.Context, input *RenameCategoryInput) (*RenameCategoryOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	count, err := s.services.QuickTag.RenameCategory(ctx, claims.UserID, service.RenameCategoryRequest{
		OldName: input.Body.OldName,
		NewName: input.Body.NewName,
	})
	if err != nil {
		return nil, err
	}

	return &RenameCategoryOutput{Body: RenameCategoryResponse{Count: count}}, nil
}

func (s *Server) handleDeleteQuickTag(ctx context.Context, input *DeleteQuickTagInput) (*OKOutput, error) {
	claims, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.QuickTag.Delete(ctx, claims.UserID, input.ID); err != nil {
		return nil, err
	}

	return &OKOutput{Body: OKResponse{OK: true}}, nil
}
