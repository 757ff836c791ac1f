package sqlite

import (
	"context"
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
	"github.com/daylogapp/daylog-server/internal/store"
)

// CreateQuickTag inserts a quick tag. Duplicate (category, label) pairs are
// allowed; there is no uniqueness constraint beyond the primary key.
func (s *Store) CreateQuickTag(ctx context.Context, tag *domain.QuickTag) error {
	if tag.CreatedAt.IsZero() {
		tag.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quick_tags (id, user_id, created_at, category_name, label)
		VALUES (?, ?, ?, ?, ?)`,
		tag.ID,
		tag.UserID,
		formatTime(tag.CreatedAt),
		tag.CategoryName,
		tag.Label,
	)
	return err
}

// ListQuickTags returns a user's quick tags ordered by category then label.
func (s *Store) ListQuickTags(ctx context.Context, userID string) ([]*domain.QuickTag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, created_at, category_name, label
		FROM quick_tags
		WHERE user_id = ?
		ORDER BY category_name ASC, label ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.QuickTag{}
	for rows.Next() {
		var t domain.QuickTag
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &createdAt, &t.CategoryName, &t.Label); err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		tags = append(tags, &t)
	}
	return tags, rows.Err()
}

// RenameQuickTagCategory renames every quick tag of a user in the old
// category. Returns the number of rows changed; renaming a category with no
// rows is a successful no-op.
func (s *Store) RenameQuickTagCategory(ctx context.Context, userID, oldName, newName string) (int, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE quick_tags SET category_name = ?
		WHERE user_id = ? AND category_name = ?`,
		newName, userID, oldName)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// DeleteQuickTag deletes one quick tag scoped to its owner.
// Returns store.ErrNotFound if the tag is absent or owned by someone else.
func (s *Store) DeleteQuickTag(ctx context.Context, userID, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM quick_tags WHERE id = ? AND user_id = ?`, id, userID)
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
