package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants user administration access.
	RoleAdmin Role = "ADMIN"
	// RoleUser grants standard access.
	RoleUser Role = "USER"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an authenticated user account.
// Accounts are never hard-deleted; admins disable them via IsActive.
type User struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email"` // stored lowercased
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`

	// MemosToken is the bearer token for the user's external Memos instance.
	// Empty when forwarding is not configured.
	MemosToken string `json:"-"`

	// SecretKey is the API token accepted by the open ingestion endpoint.
	// Empty when no token has been issued. Unique across users when set.
	SecretKey string `json:"-"`
}

// IsAdmin returns true if the user has administrative privileges.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
