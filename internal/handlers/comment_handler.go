package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"github.com/Rituchoudhary67/Community-Feed/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
}

// CreateComment creates a new comment on a post, optionally as a reply to an
// existing comment of the same post.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = h.commentRepository.GetCommentByID(*req.ParentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		// Replying across posts is forbidden; reject before persisting.
		if parent.PostID != post.ID {
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
	}

	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: req.Content,
	}

	if err := h.commentRepository.CreateComment(comment, parent); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Notify the post author (or the parent comment's author on replies)
	recipient := post.UserID
	targetType := models.TargetTypePost
	targetID := post.ID
	if parent != nil {
		recipient = parent.UserID
		targetType = models.TargetTypeComment
		targetID = parent.ID
	}
	if recipient != userID {
		go h.notificationRepository.CreateNotification(&models.Notification{
			Type:        "comment",
			ActorID:     userID,
			RecipientID: recipient,
			TargetType:  targetType,
			TargetID:    targetID,
			Message:     "New reply to your " + targetType,
		})
	}

	return c.JSON(http.StatusCreated, comment)
}
