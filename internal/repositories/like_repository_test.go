package repositories

import (
	"testing"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func postLikeCount(t *testing.T, db *gorm.DB, postID uint) int {
	t.Helper()
	var post models.Post
	require.NoError(t, db.First(&post, postID).Error)
	return post.LikeCount
}

func karmaEvents(t *testing.T, db *gorm.DB, userID uint) []models.KarmaEvent {
	t.Helper()
	var events []models.KarmaEvent
	require.NoError(t, db.Where("user_id = ?", userID).Find(&events).Error)
	return events
}

func TestToggleLike_LikePost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "hello")

	result, err := repo.ToggleLike(bob.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusLiked, result.Status)
	assert.True(t, result.IsLiked)
	assert.Equal(t, models.TargetTypePost, result.TargetType)
	assert.Equal(t, post.ID, result.TargetID)

	count, err := repo.CountLikes(models.TargetTypePost, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, 1, postLikeCount(t, db, post.ID))

	events := karmaEvents(t, db, alice.ID)
	require.Len(t, events, 1)
	assert.Equal(t, models.KarmaAmountPostLike, events[0].Amount)
	assert.Equal(t, models.KarmaReasonPostLike, events[0].Reason)
	assert.Equal(t, models.TargetTypePost, events[0].RelatedType)
	assert.Equal(t, post.ID, events[0].RelatedID)
}

func TestToggleLike_LikeComment(t *testing.T) {
	db := setupTestDB(t)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "hello")
	comment := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "root"}
	require.NoError(t, commentRepo.CreateComment(comment, nil))

	result, err := likeRepo.ToggleLike(bob.ID, models.TargetTypeComment, comment.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusLiked, result.Status)

	var stored models.Comment
	require.NoError(t, db.First(&stored, comment.ID).Error)
	assert.Equal(t, 1, stored.LikeCount)

	events := karmaEvents(t, db, alice.ID)
	require.Len(t, events, 1)
	assert.Equal(t, models.KarmaAmountCommentLike, events[0].Amount)
	assert.Equal(t, models.KarmaReasonCommentLike, events[0].Reason)
}

func TestToggleLike_UnlikeRestoresPreLikeState(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "hello")

	_, err := repo.ToggleLike(bob.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)

	result, err := repo.ToggleLike(bob.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusUnliked, result.Status)
	assert.False(t, result.IsLiked)

	count, err := repo.CountLikes(models.TargetTypePost, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
	assert.Equal(t, 0, postLikeCount(t, db, post.ID))
	assert.Empty(t, karmaEvents(t, db, alice.ID))
}

func TestToggleLike_SelfLikeCreatesNoKarma(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	post := createTestPost(t, db, alice, "hello")

	result, err := repo.ToggleLike(alice.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusLiked, result.Status)

	assert.Equal(t, 1, postLikeCount(t, db, post.ID))
	assert.Empty(t, karmaEvents(t, db, alice.ID))
}

func TestToggleLike_InsertRaceResolvesToAlreadyLiked(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "hello")

	// Both "requests" observed not-liked; the first insert wins.
	status, err := repo.like(bob.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusLiked, status)

	// The loser hits the unique constraint; its whole transaction (karma
	// event, counter bump) rolls back and the outcome is already_liked.
	status, err = repo.like(bob.ID, models.TargetTypePost, post.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LikeStatusAlreadyLiked, status)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	assert.EqualValues(t, 1, likeCount)
	assert.Len(t, karmaEvents(t, db, alice.ID), 1)
	assert.Equal(t, 1, postLikeCount(t, db, post.ID))

	// Counter still agrees with the system of record.
	reconciled, err := repo.ReconcileLikeCount(models.TargetTypePost, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, reconciled)
	assert.Equal(t, 1, postLikeCount(t, db, post.ID))
}

func TestToggleLike_MultipleLikersAccumulate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	post := createTestPost(t, db, alice, "hello")

	for _, liker := range []*models.User{bob, carol} {
		result, err := repo.ToggleLike(liker.ID, models.TargetTypePost, post.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, models.LikeStatusLiked, result.Status)
	}

	assert.Equal(t, 2, postLikeCount(t, db, post.ID))

	events := karmaEvents(t, db, alice.ID)
	require.Len(t, events, 2)
	total := 0
	for _, e := range events {
		total += e.Amount
	}
	assert.Equal(t, 2*models.KarmaAmountPostLike, total)
}

func TestLikedTargetIDs(t *testing.T) {
	db := setupTestDB(t)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice, "hello")

	var ids []uint
	for i := 0; i < 3; i++ {
		c := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "c"}
		require.NoError(t, commentRepo.CreateComment(c, nil))
		ids = append(ids, c.ID)
	}
	_, err := likeRepo.ToggleLike(bob.ID, models.TargetTypeComment, ids[0], alice.ID)
	require.NoError(t, err)
	_, err = likeRepo.ToggleLike(bob.ID, models.TargetTypeComment, ids[2], alice.ID)
	require.NoError(t, err)

	liked, err := likeRepo.LikedTargetIDs(bob.ID, models.TargetTypeComment, ids)
	require.NoError(t, err)
	assert.Equal(t, map[uint]bool{ids[0]: true, ids[2]: true}, liked)

	empty, err := likeRepo.LikedTargetIDs(bob.ID, models.TargetTypeComment, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReconcileLikeCount_RepairsDrift(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	post := createTestPost(t, db, alice, "hello")

	for _, liker := range []*models.User{bob, carol} {
		_, err := repo.ToggleLike(liker.ID, models.TargetTypePost, post.ID, alice.ID)
		require.NoError(t, err)
	}

	// Corrupt the denormalized counter; the Like rows stay authoritative.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("like_count", 40).Error)

	count, err := repo.ReconcileLikeCount(models.TargetTypePost, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, 2, postLikeCount(t, db, post.ID))
}

func TestToggleLike_IncrementalMatchesOracle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	post := createTestPost(t, db, alice, "hello")

	// A churn of toggles; after each step the incremental counter must equal
	// the exact recount.
	steps := []*models.User{bob, carol, bob, bob, carol, carol, bob}
	for _, liker := range steps {
		_, err := repo.ToggleLike(liker.ID, models.TargetTypePost, post.ID, alice.ID)
		require.NoError(t, err)

		incremental := postLikeCount(t, db, post.ID)
		oracle, err := repo.CountLikes(models.TargetTypePost, post.ID)
		require.NoError(t, err)
		assert.EqualValues(t, oracle, incremental)
	}
}
