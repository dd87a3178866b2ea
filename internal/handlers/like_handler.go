package handlers

import (
	"net/http"

	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"github.com/Rituchoudhary67/Community-Feed/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// LikeHandler handles the like toggle endpoint
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	commentRepository      repositories.CommentRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		commentRepository:      commentRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like", h.ToggleLike)
}

// ToggleLike flips the caller's like state on a post or comment. The response
// always reports the resulting state: liked, unliked, or already_liked when a
// concurrent request won the insert race.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.ToggleLikeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Resolve the target and its author before touching any state.
	var authorID uint
	switch req.TargetType {
	case models.TargetTypePost:
		post, err := h.postRepository.GetPostByID(req.TargetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Post not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		authorID = post.UserID
	case models.TargetTypeComment:
		comment, err := h.commentRepository.GetCommentByID(req.TargetID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		authorID = comment.UserID
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid target_type")
	}

	result, err := h.likeRepository.ToggleLike(userID, req.TargetType, req.TargetID, authorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if result.Status == models.LikeStatusLiked && authorID != userID {
		go h.notificationRepository.CreateNotification(&models.Notification{
			Type:        "like",
			ActorID:     userID,
			RecipientID: authorID,
			TargetType:  req.TargetType,
			TargetID:    req.TargetID,
			Message:     "Someone liked your " + req.TargetType,
		})
	}

	return c.JSON(http.StatusOK, result)
}
