package domain

import (
	"time"

	"github.com/google/uuid"
)

// Folder is a user-owned tree node grouping subscriptions.
// Depth is stored denormalized; the root level is depth 1.
type Folder struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	ParentID  *uuid.UUID `json:"parent_id,omitempty" db:"parent_id"`
	Depth     int        `json:"depth" db:"depth"`
	IsPinned  bool       `json:"is_pinned" db:"is_pinned"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// FolderNode is a folder with children and rolled-up unread counts, as
// returned by GET /folders/tree.
type FolderNode struct {
	Folder
	UnreadCount   int                 `json:"unread_count"`
	Subscriptions []*SubscriptionView `json:"subscriptions,omitempty"`
	Children      []*FolderNode       `json:"children,omitempty"`
}
