package repositories

import (
	"strconv"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment, parent *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	ListByPostID(postID uint) ([]models.Comment, error)
	DeleteSubtree(comment *models.Comment) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment persists a comment and assigns its materialized path.
//
// The path needs the comment's own id, which only exists after the INSERT, so
// assignment is two-phase: insert the row, then write the computed path back.
// Both phases run in one transaction; readers never see a comment with an
// unassigned path. The caller must have verified that parent (when non-nil)
// belongs to the same post.
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment, parent *models.Comment) error {
	if parent != nil {
		comment.ParentID = &parent.ID
		comment.Depth = parent.Depth + 1
	} else {
		comment.Depth = 0
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		id := strconv.FormatUint(uint64(comment.ID), 10)
		if parent != nil {
			comment.Path = parent.Path + "." + id
		} else {
			comment.Path = id
		}

		return tx.Model(&models.Comment{}).
			Where("id = ?", comment.ID).
			UpdateColumn("path", comment.Path).Error
	})
}

// GetCommentByID retrieves a comment by ID from PostgreSQL
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPostID retrieves every comment of a post in materialized-path order,
// authors joined in the same query. One query per thread, regardless of the
// number of comments or their nesting depth; the caller rebuilds the tree
// from the flat slice (models.BuildCommentTree).
func (r *PostgresCommentRepository) ListByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Joins("User").
		Where("comments.post_id = ?", postID).
		Order("comments.path").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteSubtree deletes a comment and all of its descendants in one statement
// using the materialized-path prefix.
func (r *PostgresCommentRepository) DeleteSubtree(comment *models.Comment) error {
	return r.db.
		Where("post_id = ? AND (path = ? OR path LIKE ?)", comment.PostID, comment.Path, comment.Path+".%").
		Delete(&models.Comment{}).Error
}
