// Package store defines the persistence interface for the Daylog server.
package store

import (
	"context"
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
)

// LogWithReplies pairs a top-level entry with its replies, ordered by
// creation time. The children view is derived at read time, never stored.
type LogWithReplies struct {
	Log     *domain.Log   `json:"log"`
	Replies []*domain.Log `json:"replies"`
}

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserBySecretKey(ctx context.Context, secretKey string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Logs
	CreateLog(ctx context.Context, log *domain.Log) error
	CreateLogs(ctx context.Context, logs []*domain.Log) (int, error)
	GetLog(ctx context.Context, userID, id string) (*domain.Log, error)
	UpdateLog(ctx context.Context, log *domain.Log) error
	DeleteLogTree(ctx context.Context, userID, id string) error
	ListLogs(ctx context.Context, userID string) ([]*domain.Log, error)
	ListLogsByDate(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]*LogWithReplies, error)
	ListReplies(ctx context.Context, userID, parentID string) ([]*domain.Log, error)

	// Quick tags
	CreateQuickTag(ctx context.Context, tag *domain.QuickTag) error
	ListQuickTags(ctx context.Context, userID string) ([]*domain.QuickTag, error)
	RenameQuickTagCategory(ctx context.Context, userID, oldName, newName string) (int, error)
	DeleteQuickTag(ctx context.Context, userID, id string) error
}
