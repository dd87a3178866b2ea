package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rituchoudhary67/Community-Feed/internal/middleware"
	"github.com/Rituchoudhary67/Community-Feed/internal/models"
	"github.com/Rituchoudhary67/Community-Feed/internal/repositories"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testApp wires handlers, repositories and middleware against an in-memory
// database, mirroring the production route layout.
type testApp struct {
	e  *echo.Echo
	db *gorm.DB

	auth        *AuthHandler
	commentRepo repositories.CommentRepository
	likeRepo    repositories.LikeRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.KarmaEvent{},
		&models.Notification{},
	))

	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	karmaRepo := repositories.NewPostgresKarmaRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)

	e := echo.New()

	read := e.Group("/api/v1")
	read.Use(middleware.OptionalJWTAuthMiddleware())

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())

	authHandler := NewAuthHandler(userRepo, nil)

	postHandler := NewPostHandler(postRepo, commentRepo, likeRepo)
	postHandler.RegisterPostRoutes(read, api)

	commentHandler := NewCommentHandler(commentRepo, postRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := NewLikeHandler(likeRepo, postRepo, commentRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)

	leaderboardHandler := NewLeaderboardHandler(karmaRepo)
	leaderboardHandler.RegisterLeaderboardRoutes(read)

	return &testApp{
		e:           e,
		db:          db,
		auth:        authHandler,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

func (a *testApp) createUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
	}
	require.NoError(t, a.db.Create(user).Error)
	return user
}

func (a *testApp) createPost(t *testing.T, author *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: author.ID, Content: content}
	require.NoError(t, a.db.Create(post).Error)
	return post
}

func (a *testApp) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := a.auth.generateJWT(user)
	require.NoError(t, err)
	return token
}

// request performs an in-process HTTP request. An empty token means an
// anonymous call.
func (a *testApp) request(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
