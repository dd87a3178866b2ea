package models

import (
	"strings"
	"time"
)

// Comment is a threaded comment using an adjacency list (ParentID) plus a
// materialized path. Path holds the full ancestor id chain ("42.55.61"), so
// one ORDER BY path query returns a whole thread in tree-traversal order.
// Path is assigned once at creation and never rewritten; comments are never
// reparented.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	Post      Post      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ParentID  *uint     `json:"parent_id" gorm:"index"` // Nullable for top-level comments
	Parent    *Comment  `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Path      string    `json:"path" gorm:"index"`
	Depth     int       `json:"depth" gorm:"not null;default:0"` // number of ancestors, cached for indentation
	LikeCount int       `json:"like_count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PathDepth returns the depth encoded in the materialized path.
// Invariant: PathDepth() == Depth for every persisted comment.
func (c *Comment) PathDepth() int {
	return strings.Count(c.Path, ".")
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID *uint  `json:"parent_id"`
}
