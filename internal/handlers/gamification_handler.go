package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// GamificationHandler exposes points, levels and the leaderboard
type GamificationHandler struct {
	gamificationService *services.GamificationService
}

func NewGamificationHandler(gamificationService *services.GamificationService) *GamificationHandler {
	return &GamificationHandler{gamificationService: gamificationService}
}

func (h *GamificationHandler) RegisterGamificationRoutes(g *echo.Group) {
	g.GET("/points", h.GetPoints)
	g.GET("/leaderboard", h.GetLeaderboard)
	g.POST("/award", h.AwardPoints)
	g.GET("/history", h.GetHistory)
}

// GetPoints returns the caller's level progress, creating the record on first use
func (h *GamificationHandler) GetPoints(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	summary, err := h.gamificationService.Summary(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *GamificationHandler) GetLeaderboard(c echo.Context) error {
	leaderboard, err := h.gamificationService.Leaderboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"leaderboard": leaderboard})
}

// AwardPoints credits the caller with a positive amount
func (h *GamificationHandler) AwardPoints(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.AwardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	res, err := h.gamificationService.Award(c.Request().Context(), user.ID, req.Points, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Points awarded",
		"points":    res.Points,
		"level":     res.Level,
		"leveledUp": res.LeveledUp,
	})
}

func (h *GamificationHandler) GetHistory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	history, err := h.gamificationService.History(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"history": history})
}
