package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ExploreHandler serves the discovery views
type ExploreHandler struct {
	feedService *services.FeedService
}

func NewExploreHandler(feedService *services.FeedService) *ExploreHandler {
	return &ExploreHandler{feedService: feedService}
}

// RegisterExploreRoutes registers discovery routes
func (h *ExploreHandler) RegisterExploreRoutes(g *echo.Group) {
	g.GET("/trending", h.GetTrending)
	g.GET("/popular-users", h.GetPopularUsers)
	g.GET("/trending-hashtags", h.GetTrendingHashtags)
	g.GET("/hashtags/:tag", h.SearchHashtag)
	g.GET("/recommended", h.GetRecommended)
}

func (h *ExploreHandler) GetTrending(c echo.Context) error {
	posts, err := h.feedService.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

func (h *ExploreHandler) GetPopularUsers(c echo.Context) error {
	users, err := h.feedService.PopularUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

func (h *ExploreHandler) GetTrendingHashtags(c echo.Context) error {
	hashtags, err := h.feedService.TrendingHashtags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"hashtags": hashtags})
}

// SearchHashtag returns posts carrying #tag, newest first
func (h *ExploreHandler) SearchHashtag(c echo.Context) error {
	tag := c.Param("tag")
	posts, err := h.feedService.Hashtag(c.Request().Context(), tag)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts, "tag": tag})
}

// GetRecommended suggests profiles the caller does not follow yet
func (h *ExploreHandler) GetRecommended(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	users, err := h.feedService.Recommended(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}
