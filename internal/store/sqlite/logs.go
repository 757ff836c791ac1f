package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
	"github.com/daylogapp/daylog-server/internal/store"
)

// logColumns is the ordered list of columns selected in log queries.
// Must match the scan order in scanLog.
const logColumns = `id, user_id, created_at, updated_at, content, date,
	tags, is_todo, is_todo_done, parent_id`

// scanLog scans a sql.Row (or sql.Rows via its Scan method) into a domain.Log.
func scanLog(scanner interface{ Scan(dest ...any) error }) (*domain.Log, error) {
	var l domain.Log

	var (
		createdAt  string
		updatedAt  string
		date       string
		isTodo     int
		isTodoDone int
		parentID   sql.NullString
	)

	err := scanner.Scan(
		&l.ID,
		&l.UserID,
		&createdAt,
		&updatedAt,
		&l.Content,
		&date,
		&l.Tags,
		&isTodo,
		&isTodoDone,
		&parentID,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	l.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	l.Date, err = parseTime(date)
	if err != nil {
		return nil, err
	}

	l.IsTodo = isTodo != 0
	l.IsTodoDone = isTodoDone != 0
	if parentID.Valid {
		l.ParentID = parentID.String
	}

	return &l, nil
}

// CreateLog inserts a single log entry.
func (s *Store) CreateLog(ctx context.Context, log *domain.Log) error {
	now := time.Now()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = now
	}
	if log.UpdatedAt.IsZero() {
		log.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO logs (
			id, user_id, created_at, updated_at, content, date,
			tags, is_todo, is_todo_done, parent_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.UserID,
		formatTime(log.CreatedAt),
		formatTime(log.UpdatedAt),
		log.Content,
		formatTime(log.Date),
		log.Tags,
		boolToInt(log.IsTodo),
		boolToInt(log.IsTodoDone),
		nullString(log.ParentID),
	)
	return err
}

// CreateLogs inserts a batch of log entries in one transaction and returns
// the inserted count. An empty batch is a no-op returning 0.
func (s *Store) CreateLogs(ctx context.Context, logs []*domain.Log) (int, error) {
	if len(logs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO logs (
			id, user_id, created_at, updated_at, content, date,
			tags, is_todo, is_todo_done, parent_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, log := range logs {
		if log.CreatedAt.IsZero() {
			log.CreatedAt = now
		}
		if log.UpdatedAt.IsZero() {
			log.UpdatedAt = now
		}
		if _, err := stmt.ExecContext(ctx,
			log.ID,
			log.UserID,
			formatTime(log.CreatedAt),
			formatTime(log.UpdatedAt),
			log.Content,
			formatTime(log.Date),
			log.Tags,
			boolToInt(log.IsTodo),
			boolToInt(log.IsTodoDone),
			nullString(log.ParentID),
		); err != nil {
			return 0, fmt.Errorf("insert log %s: %w", log.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(logs), nil
}

// GetLog retrieves an entry by ID scoped to its owner. Absent and unowned
// entries are both store.ErrNotFound.
func (s *Store) GetLog(ctx context.Context, userID, id string) (*domain.Log, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM logs WHERE id = ? AND user_id = ?`, id, userID)

	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// UpdateLog persists content, tags and todo-done state of an entry.
func (s *Store) UpdateLog(ctx context.Context, log *domain.Log) error {
	log.UpdatedAt = time.Now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE logs SET updated_at = ?, content = ?, tags = ?, is_todo_done = ?
		WHERE id = ? AND user_id = ?`,
		formatTime(log.UpdatedAt),
		log.Content,
		log.Tags,
		boolToInt(log.IsTodoDone),
		log.ID,
		log.UserID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteLogTree deletes an entry and its replies in one transaction: replies
// first, then the entry itself. Re-running on an already-deleted entry
// returns store.ErrNotFound without touching anything.
func (s *Store) DeleteLogTree(ctx context.Context, userID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM logs WHERE parent_id = ? AND user_id = ?`, id, userID); err != nil {
		return fmt.Errorf("delete replies: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM logs WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete log: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// ListLogs returns every entry of a user, oldest first.
func (s *Store) ListLogs(ctx context.Context, userID string) ([]*domain.Log, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+logColumns+` FROM logs WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLogs(rows)
}

// ListLogsByDate returns top-level entries whose date falls in
// [dayStart, dayEnd), each with its replies, all oldest first.
func (s *Store) ListLogsByDate(ctx context.Context, userID string, dayStart, dayEnd time.Time) ([]*store.LogWithReplies, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+logColumns+` FROM logs
		WHERE user_id = ? AND parent_id IS NULL AND date >= ? AND date < ?
		ORDER BY created_at ASC`,
		userID, formatTime(dayStart), formatTime(dayEnd))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	parents, err := collectLogs(rows)
	if err != nil {
		return nil, err
	}

	result := make([]*store.LogWithReplies, 0, len(parents))
	for _, parent := range parents {
		replies, err := s.ListReplies(ctx, userID, parent.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, &store.LogWithReplies{Log: parent, Replies: replies})
	}
	return result, nil
}

// ListReplies returns the replies of an entry, oldest first.
func (s *Store) ListReplies(ctx context.Context, userID, parentID string) ([]*domain.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+logColumns+` FROM logs
		WHERE user_id = ? AND parent_id = ?
		ORDER BY created_at ASC`,
		userID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLogs(rows)
}

// collectLogs drains rows into a slice.
func collectLogs(rows *sql.Rows) ([]*domain.Log, error) {
	logs := []*domain.Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
