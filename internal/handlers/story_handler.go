package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// StoryHandler handles HTTP requests for stories and their views
type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("", h.GetStories)
	g.POST("", h.CreateStory)
	g.DELETE("/:storyId", h.DeleteStory)
	g.POST("/:storyId/view", h.ViewStory)
	g.GET("/:storyId/viewers", h.GetViewers)
}

// GetStories returns stories from the last 24 hours, newest first
func (h *StoryHandler) GetStories(c echo.Context) error {
	stories, err := h.storyService.Active(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stories": stories})
}

func (h *StoryHandler) CreateStory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateStoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	story, err := h.storyService.Create(c.Request().Context(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Story created successfully",
		"story":   story,
	})
}

func (h *StoryHandler) DeleteStory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.storyService.Delete(c.Request().Context(), user, c.Param("storyId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Story deleted successfully"})
}

// ViewStory records that the caller has seen a story
func (h *StoryHandler) ViewStory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.storyService.View(c.Request().Context(), user.ID, c.Param("storyId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "View recorded"})
}

// GetViewers lists who has seen a story. Owner or admin only.
func (h *StoryHandler) GetViewers(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	viewers, err := h.storyService.Viewers(c.Request().Context(), user, c.Param("storyId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"viewers": viewers})
}
