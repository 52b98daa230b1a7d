package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ReactionHandler handles typed reactions on posts
type ReactionHandler struct {
	reactionService *services.ReactionService
}

func NewReactionHandler(reactionService *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.GET("/user/my-reactions", h.MyReactions)
	g.POST("/:postId", h.React)
	g.DELETE("/:postId", h.RemoveReaction)
	g.GET("/:postId", h.GetReactions)
}

// React sets or replaces the caller's reaction on a post
func (h *ReactionHandler) React(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.ReactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	counts, err := h.reactionService.Set(c.Request().Context(), user.ID, c.Param("postId"), req.Type)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Reaction added",
		"type":    req.Type,
		"counts":  counts,
	})
}

func (h *ReactionHandler) RemoveReaction(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	counts, err := h.reactionService.Clear(c.Request().Context(), user.ID, c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Reaction removed",
		"counts":  counts,
	})
}

// GetReactions returns the post's counts and the caller's own reaction, if any
func (h *ReactionHandler) GetReactions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	counts, mine, err := h.reactionService.Summary(c.Request().Context(), user.ID, c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"counts":       counts,
		"userReaction": mine,
	})
}

func (h *ReactionHandler) MyReactions(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	reactions, err := h.reactionService.MyReactions(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"reactions": reactions})
}
