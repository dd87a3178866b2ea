package models

import "time"

// Post represents a community feed post.
// LikeCount is a denormalized cache of Like rows with target_type=post;
// the Like rows stay the system of record.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	LikeCount int       `json:"like_count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// PostResponse is the feed-list shape: no comments loaded.
type PostResponse struct {
	ID        uint      `json:"id"`
	Author    AuthorRef `json:"author"`
	Content   string    `json:"content"`
	LikeCount int       `json:"like_count"`
	CreatedAt time.Time `json:"created_at"`
	IsLiked   bool      `json:"is_liked"`
}

// PostDetailResponse carries the post plus its reconstructed comment forest.
type PostDetailResponse struct {
	PostResponse
	Comments []*CommentNode `json:"comments"`
}

func (p *Post) Response(isLiked bool) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Author:    p.User.AuthorRef(),
		Content:   p.Content,
		LikeCount: p.LikeCount,
		CreatedAt: p.CreatedAt,
		IsLiked:   isLiked,
	}
}
