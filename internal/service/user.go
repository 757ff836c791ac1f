package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daylogapp/daylog-server/internal/auth"
	"github.com/daylogapp/daylog-server/internal/domain"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
	"github.com/daylogapp/daylog-server/internal/id"
	"github.com/daylogapp/daylog-server/internal/store"
)

// UserService handles account management and API token self-service.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// CreateUserRequest contains the data for an admin-created account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=ADMIN USER"`
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create adds a new account. The role defaults to USER when unset.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleUser
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		DisplayName:  req.Name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User created", "user_id", userID, "email", user.Email, "role", role)

	return user, nil
}

// SetStatus activates or deactivates an account. Deactivated users cannot log
// in and their API token stops working, but their data is kept.
func (s *UserService) SetStatus(ctx context.Context, userID string, isActive bool) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.IsActive = isActive
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User status changed", "user_id", userID, "is_active", isActive)

	return user, nil
}

// SetSecretKey sets the caller's API token to a chosen value.
func (s *UserService) SetSecretKey(ctx context.Context, userID, secretKey string) error {
	if secretKey == "" {
		return domainerrors.Validation("secretKey must not be empty")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	user.SecretKey = secretKey
	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domainerrors.Conflict("secret key already in use")
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// GenerateAPIToken creates a fresh random API token for the caller, stores it
// and returns it. Any previous token stops working.
func (s *UserService) GenerateAPIToken(ctx context.Context, userID string) (string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainerrors.NotFound("user not found")
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	token, err := auth.GenerateAPIToken()
	if err != nil {
		return "", fmt.Errorf("generate api token: %w", err)
	}

	user.SecretKey = token
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return "", fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("API token rotated", "user_id", userID)

	return token, nil
}

// GetAPIToken returns the caller's current API token, empty when unset.
func (s *UserService) GetAPIToken(ctx context.Context, userID string) (string, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domainerrors.NotFound("user not found")
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	return user.SecretKey, nil
}

// RevokeAPIToken clears the caller's API token.
func (s *UserService) RevokeAPIToken(ctx context.Context, userID string) error {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("user not found")
		}
		return fmt.Errorf("get user: %w", err)
	}

	user.SecretKey = ""
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("API token revoked", "user_id", userID)

	return nil
}
