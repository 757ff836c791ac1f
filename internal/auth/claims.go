package auth

import (
	"time"

	"github.com/daylogapp/daylog-server/internal/domain"
)

// AccessClaims represents the claims stored in a PASETO session token.
// These are encrypted in v4.local tokens, so they're not readable without
// the key.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// IsAdmin returns true if the token carries the admin role claim.
func (c *AccessClaims) IsAdmin() bool {
	return domain.Role(c.Role) == domain.RoleAdmin
}
