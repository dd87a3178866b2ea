package models

import "time"

// Karma awards per like target kind, credited to the target's author.
const (
	KarmaAmountPostLike    = 5
	KarmaAmountCommentLike = 1

	KarmaReasonPostLike    = "post_like"
	KarmaReasonCommentLike = "comment_like"
)

// KarmaEvent is one row of the append-only karma ledger. A user's karma over
// a window is always SUM(amount) over their events in that window; no running
// total is stored anywhere. Rows are never updated in place; a like retracts
// its karma by deleting the event, not by inserting a negative one.
type KarmaEvent struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Amount      int       `json:"amount" gorm:"not null"`
	Reason      string    `json:"reason" gorm:"size:50;not null"`
	RelatedType string    `json:"related_type" gorm:"size:10"`
	RelatedID   uint      `json:"related_id"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// LeaderboardEntry is one ranked row of the rolling-window karma leaderboard.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Karma    int    `json:"karma"`
}
