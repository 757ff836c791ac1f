package domain

import "time"

// QuickTag is a reusable (category, label) pair a user can attach to entries
// quickly. Nothing prevents storing the same pair twice; the grouped read
// reflects the rows as they are.
type QuickTag struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	CategoryName string    `json:"category_name"`
	Label        string    `json:"label"`
}
