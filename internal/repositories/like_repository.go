package repositories

import (
	"errors"
	"strings"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"gorm.io/gorm"
)

// LikeRepository owns the toggle-like state machine and keeps the three
// pieces of like state (the Like row, the target's denormalized like_count
// and the karma ledger) mutually consistent.
type LikeRepository interface {
	ToggleLike(userID uint, targetType string, targetID, authorID uint) (*models.ToggleLikeResult, error)
	HasUserLiked(userID uint, targetType string, targetID uint) (bool, error)
	LikedTargetIDs(userID uint, targetType string, targetIDs []uint) (map[uint]bool, error)
	CountLikes(targetType string, targetID uint) (int64, error)
	ReconcileLikeCount(targetType string, targetID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// ToggleLike flips the (user, target) like state and reports the resulting
// state. authorID is the target's author, already resolved by the caller.
//
// The existence check and the insert are deliberately not serialized: two
// concurrent requests may both see "not liked" and both attempt the INSERT.
// The unique index on (user_id, target_type, target_id) lets exactly one
// succeed; the loser's constraint violation is translated into an
// already_liked outcome instead of an error. Each direction runs its three
// mutations (like row, karma event, counter) in a single transaction, so a
// failure after partial work rolls everything back.
func (r *PostgresLikeRepository) ToggleLike(userID uint, targetType string, targetID, authorID uint) (*models.ToggleLikeResult, error) {
	result := &models.ToggleLikeResult{TargetType: targetType, TargetID: targetID}

	var existing models.Like
	err := r.db.
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&existing).Error

	switch {
	case err == nil:
		if err := r.unlike(&existing, userID, targetType, targetID, authorID); err != nil {
			return nil, err
		}
		result.Status = models.LikeStatusUnliked
		result.IsLiked = false
		return result, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		status, err := r.like(userID, targetType, targetID, authorID)
		if err != nil {
			return nil, err
		}
		result.Status = status
		result.IsLiked = true
		return result, nil

	default:
		return nil, err
	}
}

// like inserts the like row, credits karma to the target's author and bumps
// the denormalized counter, all in one transaction.
func (r *PostgresLikeRepository) like(userID uint, targetType string, targetID, authorID uint) (string, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, TargetType: targetType, TargetID: targetID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}

		// No self-karma: liking your own post or comment still counts the
		// like but credits nothing.
		if authorID != userID {
			event := models.KarmaEvent{
				UserID:      authorID,
				Amount:      karmaAmount(targetType),
				Reason:      karmaReason(targetType),
				RelatedType: targetType,
				RelatedID:   targetID,
			}
			if err := tx.Create(&event).Error; err != nil {
				return err
			}
		}

		return adjustLikeCount(tx, targetType, targetID, +1)
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			// Lost the insert race: another request created the row first.
			// The state the caller asked for already holds.
			return models.LikeStatusAlreadyLiked, nil
		}
		return "", err
	}
	return models.LikeStatusLiked, nil
}

// unlike removes the like row, retracts the most recent matching karma event
// and decrements the counter, all in one transaction.
//
// There is no foreign key from Like to KarmaEvent, so the retraction matches
// on (recipient, reason, related target) and deletes the newest event. With
// several likers interleaving on the same target this can retract an event
// created by a different like; the amounts are identical, so window sums only
// drift at window edges.
func (r *PostgresLikeRepository) unlike(existing *models.Like, userID uint, targetType string, targetID, authorID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Like{}, existing.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// A concurrent unlike got here first; counter and ledger were
			// already settled by it.
			return nil
		}

		if authorID != userID {
			var event models.KarmaEvent
			err := tx.
				Where("user_id = ? AND reason = ? AND related_type = ? AND related_id = ?",
					authorID, karmaReason(targetType), targetType, targetID).
				Order("created_at DESC, id DESC").
				First(&event).Error
			switch {
			case err == nil:
				if err := tx.Delete(&models.KarmaEvent{}, event.ID).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				// Nothing to retract.
			default:
				return err
			}
		}

		return adjustLikeCount(tx, targetType, targetID, -1)
	})
}

// HasUserLiked checks if a user currently likes a specific target
func (r *PostgresLikeRepository) HasUserLiked(userID uint, targetType string, targetID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Count(&count).Error
	return count > 0, err
}

// LikedTargetIDs returns which of targetIDs the user has liked, as a set.
// One bulk query; used to mark viewer-liked flags over a whole comment list.
func (r *PostgresLikeRepository) LikedTargetIDs(userID uint, targetType string, targetIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(targetIDs))
	if len(targetIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).
		Pluck("target_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// CountLikes returns the exact number of Like rows for a target
func (r *PostgresLikeRepository) CountLikes(targetType string, targetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// ReconcileLikeCount recomputes a target's denormalized like_count from the
// Like rows and writes it back, returning the exact count. The Like rows are
// the system of record; this is the repair routine and the oracle the
// incremental updates are checked against.
func (r *PostgresLikeRepository) ReconcileLikeCount(targetType string, targetID uint) (int64, error) {
	count, err := r.CountLikes(targetType, targetID)
	if err != nil {
		return 0, err
	}
	if err := setLikeCount(r.db, targetType, targetID, count); err != nil {
		return 0, err
	}
	return count, nil
}

func karmaAmount(targetType string) int {
	if targetType == models.TargetTypePost {
		return models.KarmaAmountPostLike
	}
	return models.KarmaAmountCommentLike
}

func karmaReason(targetType string) string {
	if targetType == models.TargetTypePost {
		return models.KarmaReasonPostLike
	}
	return models.KarmaReasonCommentLike
}

// adjustLikeCount moves the denormalized counter by delta with a relative
// UPDATE, never a read-modify-write of a previously fetched value.
func adjustLikeCount(tx *gorm.DB, targetType string, targetID uint, delta int) error {
	return likeCountModel(tx, targetType).
		Where("id = ?", targetID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
}

func setLikeCount(db *gorm.DB, targetType string, targetID uint, count int64) error {
	return likeCountModel(db, targetType).
		Where("id = ?", targetID).
		UpdateColumn("like_count", count).Error
}

func likeCountModel(db *gorm.DB, targetType string) *gorm.DB {
	if targetType == models.TargetTypePost {
		return db.Model(&models.Post{})
	}
	return db.Model(&models.Comment{})
}

// isDuplicateKeyError reports whether err is a unique-constraint violation.
// GORM translates these to ErrDuplicatedKey when TranslateError is on; the
// message checks cover drivers opened without it (postgres and sqlite).
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
