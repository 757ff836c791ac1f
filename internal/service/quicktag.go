package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daylogapp/daylog-server/internal/domain"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
	"github.com/daylogapp/daylog-server/internal/id"
	"github.com/daylogapp/daylog-server/internal/store"
)

// QuickTagService manages per-user quick tag shortcuts.
type QuickTagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewQuickTagService creates a new quick tag service.
func NewQuickTagService(store store.Store, logger *slog.Logger) *QuickTagService {
	return &QuickTagService{
		store:  store,
		logger: logger,
	}
}

// AddQuickTagRequest contains the data for a new quick tag.
type AddQuickTagRequest struct {
	Label        string `json:"label" validate:"required,min=1"`
	CategoryName string `json:"categoryName" validate:"required,min=1"`
}

// RenameCategoryRequest renames a quick tag category for the caller.
type RenameCategoryRequest struct {
	OldName string `json:"oldName" validate:"required"`
	NewName string `json:"newName" validate:"required"`
}

// GetGrouped returns the caller's quick tags grouped by category. Labels keep
// the store's category-then-label ordering; stored duplicates are kept.
func (s *QuickTagService) GetGrouped(ctx context.Context, userID string) (map[string][]string, error) {
	tags, err := s.store.ListQuickTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list quick tags: %w", err)
	}

	grouped := map[string][]string{}
	for _, tag := range tags {
		grouped[tag.CategoryName] = append(grouped[tag.CategoryName], tag.Label)
	}
	return grouped, nil
}

// Add creates a quick tag for the caller.
func (s *QuickTagService) Add(ctx context.Context, userID string, req AddQuickTagRequest) (*domain.QuickTag, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	tagID, err := id.Generate("qt")
	if err != nil {
		return nil, fmt.Errorf("generate quick tag ID: %w", err)
	}

	tag := &domain.QuickTag{
		ID:           tagID,
		UserID:       userID,
		CategoryName: req.CategoryName,
		Label:        req.Label,
	}

	if err := s.store.CreateQuickTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("create quick tag: %w", err)
	}
	return tag, nil
}

// RenameCategory moves every quick tag of the caller from one category to
// another and returns how many were moved.
func (s *QuickTagService) RenameCategory(ctx context.Context, userID string, req RenameCategoryRequest) (int, error) {
	if err := validate.Validate(req); err != nil {
		return 0, err
	}

	count, err := s.store.RenameQuickTagCategory(ctx, userID, req.OldName, req.NewName)
	if err != nil {
		return 0, fmt.Errorf("rename category: %w", err)
	}
	return count, nil
}

// Delete removes one quick tag of the caller.
func (s *QuickTagService) Delete(ctx context.Context, userID, tagID string) error {
	if err := s.store.DeleteQuickTag(ctx, userID, tagID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("quick tag not found")
		}
		return fmt.Errorf("delete quick tag: %w", err)
	}
	return nil
}
