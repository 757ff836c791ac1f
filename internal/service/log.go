package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
	domainerrors "github.com/daylogapp/daylog-server/internal/errors"
	"github.com/daylogapp/daylog-server/internal/id"
	"github.com/daylogapp/daylog-server/internal/memos"
	"github.com/daylogapp/daylog-server/internal/store"
	"github.com/daylogapp/daylog-server/internal/tags"
)

// LogService handles journal entries: creation, todos, replies, import/export
// and forwarding to Memos.
type LogService struct {
	store  store.Store
	memos  *memos.Client
	logger *slog.Logger
}

// NewLogService creates a new log service.
func NewLogService(store store.Store, memosClient *memos.Client, logger *slog.Logger) *LogService {
	return &LogService{
		store:  store,
		memos:  memosClient,
		logger: logger,
	}
}

// AddLogRequest contains the data for a new entry.
type AddLogRequest struct {
	Content  string    `json:"content,omitempty"`
	Date     time.Time `json:"date" validate:"required"`
	Tags     string    `json:"tags,omitempty"`
	IsTodo   bool      `json:"isTodo,omitempty"`
	ParentID string    `json:"parentId,omitempty"`
}

// UpdateLogRequest carries a partial entry update. Nil means "leave as is";
// an empty string is an explicit new value.
type UpdateLogRequest struct {
	Content *string `json:"content,omitempty"`
	Tags    *string `json:"tags,omitempty"`
}

// ImportItem is one entry of a bulk import payload.
type ImportItem struct {
	Content string    `json:"content"`
	Date    time.Time `json:"date" validate:"required"`
	Tags    string    `json:"tags,omitempty"`
	IsTodo  bool      `json:"isTodo,omitempty"`
}

// ExportEntry is the file format produced by Export. Import reads the same
// shape and ignores the fields it does not take.
type ExportEntry struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	Date       time.Time `json:"date"`
	Tags       string    `json:"tags"`
	IsTodo     bool      `json:"isTodo"`
	IsTodoDone bool      `json:"isTodoDone"`
	ParentID   string    `json:"parentId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// GetAll returns every entry of a user, oldest first.
func (s *LogService) GetAll(ctx context.Context, userID string) ([]*domain.Log, error) {
	logs, err := s.store.ListLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

// GetByDate returns the top-level entries of one calendar day with their
// replies. The day runs from local midnight to the next, half-open.
func (s *LogService) GetByDate(ctx context.Context, userID string, date time.Time) ([]*store.LogWithReplies, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	logs, err := s.store.ListLogsByDate(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("list logs by date: %w", err)
	}
	return logs, nil
}

// GetReplies returns the replies of one entry, oldest first.
func (s *LogService) GetReplies(ctx context.Context, userID, logID string) ([]*domain.Log, error) {
	replies, err := s.store.ListReplies(ctx, userID, logID)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return replies, nil
}

// Add creates a new entry. Content and tags may not both be blank. New todos
// always start undone.
func (s *LogService) Add(ctx context.Context, userID string, req AddLogRequest) (*domain.Log, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Content) == "" && strings.TrimSpace(req.Tags) == "" {
		return nil, domainerrors.Validation("content or tags required")
	}

	logID, err := id.Generate("log")
	if err != nil {
		return nil, fmt.Errorf("generate log ID: %w", err)
	}

	log := &domain.Log{
		ID:         logID,
		UserID:     userID,
		Content:    req.Content,
		Date:       req.Date,
		Tags:       req.Tags,
		IsTodo:     req.IsTodo,
		IsTodoDone: false,
		ParentID:   req.ParentID,
	}

	if err := s.store.CreateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("create log: %w", err)
	}
	return log, nil
}

// ToggleTodo flips the done state of a todo entry.
func (s *LogService) ToggleTodo(ctx context.Context, userID, logID string) (*domain.Log, error) {
	log, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	if !log.IsTodo {
		return nil, domainerrors.Validation("log is not a todo")
	}

	log.IsTodoDone = !log.IsTodoDone
	if err := s.store.UpdateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return log, nil
}

// Update rewrites the content and/or tags of an entry. At least one field must
// be supplied; unsupplied fields keep their previous value.
func (s *LogService) Update(ctx context.Context, userID, logID string, req UpdateLogRequest) (*domain.Log, error) {
	if req.Content == nil && req.Tags == nil {
		return nil, domainerrors.Validation("content or tags required")
	}

	log, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	if req.Content != nil {
		log.Content = *req.Content
	}
	if req.Tags != nil {
		log.Tags = *req.Tags
	}

	if err := s.store.UpdateLog(ctx, log); err != nil {
		return nil, fmt.Errorf("update log: %w", err)
	}
	return log, nil
}

// Delete removes an entry together with its replies.
func (s *LogService) Delete(ctx context.Context, userID, logID string) error {
	if err := s.store.DeleteLogTree(ctx, userID, logID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("log not found")
		}
		return fmt.Errorf("delete log: %w", err)
	}

	s.logger.Info("Log deleted", "user_id", userID, "log_id", logID)

	return nil
}

// Import bulk-inserts entries, typically from an earlier export. Items are
// taken as-is; unlike Add there is no content-or-tags requirement.
func (s *LogService) Import(ctx context.Context, userID string, items []ImportItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	logs := make([]*domain.Log, 0, len(items))
	for _, item := range items {
		if err := validate.Validate(item); err != nil {
			return 0, err
		}
		logID, err := id.Generate("log")
		if err != nil {
			return 0, fmt.Errorf("generate log ID: %w", err)
		}
		logs = append(logs, &domain.Log{
			ID:         logID,
			UserID:     userID,
			Content:    item.Content,
			Date:       item.Date,
			Tags:       item.Tags,
			IsTodo:     item.IsTodo,
			IsTodoDone: false,
		})
	}

	count, err := s.store.CreateLogs(ctx, logs)
	if err != nil {
		return 0, fmt.Errorf("create logs: %w", err)
	}

	s.logger.Info("Logs imported", "user_id", userID, "count", count)

	return count, nil
}

// Export returns every entry of a user in the import file format.
func (s *LogService) Export(ctx context.Context, userID string) ([]ExportEntry, error) {
	logs, err := s.store.ListLogs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	entries := make([]ExportEntry, 0, len(logs))
	for _, log := range logs {
		entries = append(entries, ExportEntry{
			ID:         log.ID,
			Content:    log.Content,
			Date:       log.Date,
			Tags:       log.Tags,
			IsTodo:     log.IsTodo,
			IsTodoDone: log.IsTodoDone,
			ParentID:   log.ParentID,
			CreatedAt:  log.CreatedAt,
		})
	}
	return entries, nil
}

// ForwardResult reports the outcome of forwarding an entry to Memos.
// Failures are part of the result, not errors: a broken Memos instance must
// not fail the request.
type ForwardResult struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Forward sends one entry to the caller's Memos instance as a new memo.
func (s *LogService) Forward(ctx context.Context, userID, logID string) (*ForwardResult, error) {
	log, err := s.getOwned(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	if !s.memos.Enabled() {
		return &ForwardResult{OK: false, Message: "Missing MEMOS API URL."}, nil
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.MemosToken == "" {
		return &ForwardResult{OK: false, Message: "Set a memos token in the user menu."}, nil
	}

	content := memoLine(log)
	if err := s.memos.CreateMemo(ctx, user.MemosToken, content); err != nil {
		s.logger.Warn("Memos forward failed", "user_id", userID, "log_id", logID, "error", err)
		return &ForwardResult{OK: false, Message: "Failed to save to memos."}, nil
	}

	return &ForwardResult{OK: true, Message: "Saved to memos."}, nil
}

// memoLine renders an entry as a single memo bullet: the trimmed content (or
// a placeholder for tag-only entries) followed by the formatted tags.
func memoLine(log *domain.Log) string {
	groups := tags.Parse(log.Tags)
	tagLine := ""
	if len(groups) > 0 {
		tagLine = " (" + tags.Format(groups) + ")"
	}

	line := strings.TrimSpace(log.Content)
	if line == "" {
		line = "Tagged entry"
	}
	return "- " + line + tagLine
}

// getOwned fetches an entry scoped to its owner, mapping absence to a domain
// not-found error.
func (s *LogService) getOwned(ctx context.Context, userID, logID string) (*domain.Log, error) {
	log, err := s.store.GetLog(ctx, userID, logID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("log not found")
		}
		return nil, fmt.Errorf("get log: %w", err)
	}
	return log, nil
}
