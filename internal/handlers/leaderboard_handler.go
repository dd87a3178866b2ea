package handlers

import (
	"net/http"
	"time"

	"github.com/Rituchoudhary67/Community-Feed/internal/repositories"
	"github.com/labstack/echo/v4"
)

// Leaderboard parameters: trailing 24 hours, top 5 earners.
const (
	leaderboardWindow = 24 * time.Hour
	leaderboardLimit  = 5
)

// LeaderboardHandler serves the rolling karma leaderboard
type LeaderboardHandler struct {
	karmaRepository repositories.KarmaRepository
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(karmaRepo repositories.KarmaRepository) *LeaderboardHandler {
	return &LeaderboardHandler{karmaRepository: karmaRepo}
}

// RegisterLeaderboardRoutes registers leaderboard routes
func (h *LeaderboardHandler) RegisterLeaderboardRoutes(g *echo.Group) {
	g.GET("/leaderboard", h.GetLeaderboard)
}

// GetLeaderboard returns the top karma earners of the trailing 24 hours,
// recomputed from the ledger on every request.
func (h *LeaderboardHandler) GetLeaderboard(c echo.Context) error {
	entries, err := h.karmaRepository.TopKarma(leaderboardWindow, leaderboardLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}
