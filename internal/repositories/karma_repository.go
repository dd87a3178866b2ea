package repositories

import (
	"time"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"gorm.io/gorm"
)

// KarmaRepository reads the append-only karma ledger.
type KarmaRepository interface {
	TopKarma(window time.Duration, limit int) ([]models.LeaderboardEntry, error)
	SumForUser(userID uint, window time.Duration) (int64, error)
}

// PostgresKarmaRepository implements KarmaRepository for PostgreSQL
type PostgresKarmaRepository struct {
	db *gorm.DB
}

// NewPostgresKarmaRepository creates a new PostgresKarmaRepository
func NewPostgresKarmaRepository(db *gorm.DB) *PostgresKarmaRepository {
	return &PostgresKarmaRepository{db: db}
}

// TopKarma ranks users by SUM(amount) over ledger events created within the
// trailing window, descending, ties broken by ascending user id. Computed
// fresh from the ledger on every call; there is no cached aggregate to go
// stale. Users with no qualifying events are absent, not zero-ranked.
func (r *PostgresKarmaRepository) TopKarma(window time.Duration, limit int) ([]models.LeaderboardEntry, error) {
	cutoff := time.Now().Add(-window)

	var entries []models.LeaderboardEntry
	err := r.db.Model(&models.KarmaEvent{}).
		Select("karma_events.user_id AS user_id, users.username AS username, SUM(karma_events.amount) AS karma").
		Joins("JOIN users ON users.id = karma_events.user_id").
		Where("karma_events.created_at >= ?", cutoff).
		Group("karma_events.user_id, users.username").
		Order("karma DESC, karma_events.user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// SumForUser returns one user's karma over the trailing window.
func (r *PostgresKarmaRepository) SumForUser(userID uint, window time.Duration) (int64, error) {
	cutoff := time.Now().Add(-window)

	var total int64
	err := r.db.Model(&models.KarmaEvent{}).
		Where("user_id = ? AND created_at >= ?", userID, cutoff).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
