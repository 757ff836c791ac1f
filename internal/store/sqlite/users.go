package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
	"github.com/daylogapp/daylog-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, email, display_name,
	password_hash, role, is_active, memos_token, secret_key`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt  string
		updatedAt  string
		role       string
		isActive   int
		memosToken sql.NullString
		secretKey  sql.NullString
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&role,
		&isActive,
		&memosToken,
		&secretKey,
	)
	if err != nil {
		return nil, err
	}

	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = domain.Role(role)
	u.IsActive = isActive != 0
	if memosToken.Valid {
		u.MemosToken = memosToken.String
	}
	if secretKey.Valid {
		u.SecretKey = secretKey.String
	}

	return &u, nil
}

// CreateUser inserts a new user. The email is stored lowercased and trimmed.
// Returns store.ErrAlreadyExists if the email or secret key is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	user.Email = email

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, email, display_name,
			password_hash, role, is_active, memos_token, secret_key
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		email,
		user.DisplayName,
		user.PasswordHash,
		string(user.Role),
		boolToInt(user.IsActive),
		nullString(user.MemosToken),
		nullString(user.SecretKey),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return userFromRow(row)
}

// GetUserByEmail retrieves a user by email. The lookup is case-insensitive
// because emails are stored lowercased.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	return userFromRow(row)
}

// GetUserBySecretKey retrieves the active user owning the given API token.
// Inactive owners and unknown tokens both come back as store.ErrNotFound so
// the open endpoint cannot leak account state.
func (s *Store) GetUserBySecretKey(ctx context.Context, secretKey string) (*domain.User, error) {
	if secretKey == "" {
		return nil, store.ErrNotFound
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE secret_key = ? AND is_active = 1`, secretKey)
	return userFromRow(row)
}

// UpdateUser persists all mutable user fields.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			updated_at = ?, email = ?, display_name = ?, password_hash = ?,
			role = ?, is_active = ?, memos_token = ?, secret_key = ?
		WHERE id = ?`,
		formatTime(user.UpdatedAt),
		strings.ToLower(strings.TrimSpace(user.Email)),
		user.DisplayName,
		user.PasswordHash,
		string(user.Role),
		boolToInt(user.IsActive),
		nullString(user.MemosToken),
		nullString(user.SecretKey),
		user.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
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

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CountUsers returns the total number of users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// userFromRow converts a single-row scan into a user or store.ErrNotFound.
func userFromRow(row *sql.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
