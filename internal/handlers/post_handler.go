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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	commentRepository repositories.CommentRepository
	likeRepository    repositories.LikeRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, likeRepo repositories.LikeRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		commentRepository: commentRepo,
		likeRepository:    likeRepo,
	}
}

// RegisterPostRoutes registers post-related routes. read is the
// anonymous-allowed group, write requires authentication.
func (h *PostHandler) RegisterPostRoutes(read, write *echo.Group) {
	read.GET("/posts", h.ListPosts)
	read.GET("/posts/:id", h.GetPostDetail)
	write.POST("/posts", h.CreatePost)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:  userID,
		Content: req.Content,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, post)
}

// ListPosts returns the feed: all posts newest first, no comments loaded.
func (h *PostHandler) ListPosts(c echo.Context) error {
	posts, err := h.postRepository.ListPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedPosts := map[uint]bool{}
	if userID, ok := currentUserID(c); ok && len(posts) > 0 {
		ids := make([]uint, len(posts))
		for i := range posts {
			ids[i] = posts[i].ID
		}
		likedPosts, err = h.likeRepository.LikedTargetIDs(userID, models.TargetTypePost, ids)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	responses := make([]models.PostResponse, len(posts))
	for i := range posts {
		responses[i] = posts[i].Response(likedPosts[posts[i].ID])
	}

	return c.JSON(http.StatusOK, responses)
}

// GetPostDetail returns one post with its reconstructed comment forest.
//
// The whole thread costs a fixed number of queries however large or deep it
// is: one for the post, one for all of its comments (path-ordered, authors
// joined) and one bulk lookup for the viewer's liked ids. The forest itself
// is rebuilt in memory from the flat slice.
func (h *PostHandler) GetPostDetail(c echo.Context) error {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	post, err := h.postRepository.GetPostByID(uint(postID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.ListByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	likedComments := map[uint]bool{}
	postLiked := false
	if userID, ok := currentUserID(c); ok {
		ids := make([]uint, len(comments))
		for i := range comments {
			ids[i] = comments[i].ID
		}
		likedComments, err = h.likeRepository.LikedTargetIDs(userID, models.TargetTypeComment, ids)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		postLiked, err = h.likeRepository.HasUserLiked(userID, models.TargetTypePost, post.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	detail := models.PostDetailResponse{
		PostResponse: post.Response(postLiked),
		Comments:     models.BuildCommentTree(comments, likedComments),
	}

	return c.JSON(http.StatusOK, detail)
}
