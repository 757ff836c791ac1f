package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
	"github.com/daylogapp/daylog-server/internal/store"
)

// SettingService manages per-user settings, currently just the Memos token.
type SettingService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSettingService creates a new setting service.
func NewSettingService(store store.Store, logger *slog.Logger) *SettingService {
	return &SettingService{
		store:  store,
		logger: logger,
	}
}

// GetMemosToken returns the caller's stored Memos token, empty when unset.
func (s *SettingService) GetMemosToken(ctx context.Context, userID string) (string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainerrors.NotFound("user not found")
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	return user.MemosToken, nil
}

// UpdateMemosToken stores or clears the caller's Memos token. A nil token
// clears it; a non-nil token must not be empty.
func (s *SettingService) UpdateMemosToken(ctx context.Context, userID string, token *string) error {
	if token != nil && *token == "" {
		return domainerrors.Validation("memosToken must not be empty")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	if token == nil {
		user.MemosToken = ""
	} else {
		user.MemosToken = *token
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
