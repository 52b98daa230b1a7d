package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/middleware"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the moderation surface
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterAdminRoutes registers moderation routes. g must already authenticate the caller.
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	admin := middleware.RequireAdmin()
	owner := middleware.RequireOwner()

	g.GET("/users", h.GetUsers, admin)
	g.GET("/posts", h.GetPosts, admin)
	g.GET("/analytics", h.GetAnalytics, admin)
	g.DELETE("/users/:userId", h.DeleteUser, admin)
	g.PUT("/users/:userId/suspend", h.ToggleSuspend, admin)
	g.DELETE("/posts/:postId", h.DeletePost, admin)

	g.PUT("/users/:userId/grant-admin", h.GrantAdmin, owner)
	g.PUT("/users/:userId/revoke-admin", h.RevokeAdmin, owner)
	g.PUT("/users/:userId/ban", h.BanUser, owner)
	g.PUT("/users/:userId/unban", h.UnbanUser, owner)
}

func (h *AdminHandler) GetUsers(c echo.Context) error {
	users, err := h.adminService.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"users": users})
}

func (h *AdminHandler) GetPosts(c echo.Context) error {
	posts, err := h.adminService.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

func (h *AdminHandler) GetAnalytics(c echo.Context) error {
	stats, err := h.adminService.Analytics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// DeleteUser removes a user and everything that references them
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.adminService.DeleteUser(c.Request().Context(), actor, c.Param("userId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (h *AdminHandler) ToggleSuspend(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.adminService.ToggleSuspend(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}

	message := "User unsuspended successfully"
	if user.Suspended {
		message = "User suspended successfully"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": message, "user": user})
}

func (h *AdminHandler) DeletePost(c echo.Context) error {
	if err := h.adminService.DeletePost(c.Request().Context(), c.Param("postId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

func (h *AdminHandler) GrantAdmin(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.adminService.GrantAdmin(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Admin access granted successfully",
		"user":    user.Public(),
	})
}

func (h *AdminHandler) RevokeAdmin(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.adminService.RevokeAdmin(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Admin access revoked successfully",
		"user":    user.Public(),
	})
}

func (h *AdminHandler) BanUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.adminService.Ban(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User banned successfully",
		"user":    map[string]interface{}{"id": user.ID, "email": user.Email, "banned": user.Banned},
	})
}

func (h *AdminHandler) UnbanUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.adminService.Unban(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User unbanned successfully",
		"user":    map[string]interface{}{"id": user.ID, "email": user.Email, "banned": user.Banned},
	})
}
