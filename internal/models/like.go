package models

import "time"

// Valid like target kinds.
const (
	TargetTypePost    = "post"
	TargetTypeComment = "comment"
)

// Like marks that a user liked a post or a comment.
//
// The composite unique index on (user_id, target_type, target_id) is the
// database-level guard against double likes: two concurrent requests may both
// pass the existence check, but only one INSERT can succeed. The loser is
// reported as already_liked, not as an error.
type Like struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	TargetType string    `json:"target_type" gorm:"size:10;uniqueIndex:idx_user_target_like"`
	TargetID   uint      `json:"target_id" gorm:"index;uniqueIndex:idx_user_target_like"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToggleLikeRequest defines the request body for the like toggle endpoint
type ToggleLikeRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=post comment"`
	TargetID   uint   `json:"target_id" validate:"required"`
}

// Toggle outcomes.
const (
	LikeStatusLiked        = "liked"
	LikeStatusUnliked      = "unliked"
	LikeStatusAlreadyLiked = "already_liked"
)

// ToggleLikeResult reports the state a toggle resolved to.
type ToggleLikeResult struct {
	Status     string `json:"status"`
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	IsLiked    bool   `json:"is_liked"`
}
