package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:userId", h.FollowUser)
	g.POST("/unfollow/:userId", h.UnfollowUser)
	g.GET("/followers/:userId", h.GetFollowers)
	g.GET("/following/:userId", h.GetFollowing)
	g.GET("/status/:userId", h.GetStatus)
	g.GET("/counts/:userId", h.GetCounts)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	follow, err := h.followService.Follow(c.Request().Context(), user.ID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Followed successfully",
		"follow":  follow,
	})
}

// UnfollowUser removes the follow edge if present
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), user.ID, c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Unfollowed successfully"})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	followers, err := h.followService.Followers(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"followers": followers, "count": len(followers)})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	following, err := h.followService.Following(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"following": following, "count": len(following)})
}

// GetStatus reports whether the caller and the user follow each other
func (h *FollowHandler) GetStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	status, err := h.followService.Status(c.Request().Context(), user.ID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *FollowHandler) GetCounts(c echo.Context) error {
	counts, err := h.followService.Counts(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}
