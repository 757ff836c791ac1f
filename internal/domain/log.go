package domain

import (
	"strings"
	"time"
)

// Log is a single dated journal entry. An entry is optionally a todo and
// optionally a reply to another entry owned by the same user.
//
// Replies reference their parent by ID only. The children view is always
// derived from a query, never stored, so ownership stays a plain foreign
// key rather than a nested collection.
type Log struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Content is the entry text. May be empty when Tags is not.
	Content string `json:"content"`

	// Date is the user-chosen day of the entry, distinct from CreatedAt.
	Date time.Time `json:"date"`

	// Tags holds the serialized tag-group string (see internal/tags).
	Tags string `json:"tags"`

	IsTodo     bool `json:"is_todo"`
	IsTodoDone bool `json:"is_todo_done"`

	// ParentID is empty for top-level entries and set to the parent's ID
	// for replies. A reply's parent always belongs to the same user.
	ParentID string `json:"parent_id,omitempty"`
}

// IsReply returns true if the entry is a reply to another entry.
func (l *Log) IsReply() bool {
	return l.ParentID != ""
}

// HasBody returns true if the entry carries content or tags after trimming.
// An entry with neither is rejected on single create.
func (l *Log) HasBody() bool {
	return strings.TrimSpace(l.Content) != "" || strings.TrimSpace(l.Tags) != ""
}
