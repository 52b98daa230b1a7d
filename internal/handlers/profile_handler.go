package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles profile HTTP requests
type ProfileHandler struct {
	profileService *services.ProfileService
}

func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRoutes registers profile routes. Reading a profile is public.
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/search", h.SearchProfiles, auth)
	g.GET("/:userId", h.GetProfile)
	g.POST("", h.UpsertProfile, auth)
	g.PUT("/:userId", h.UpdateProfile, auth)
}

// GetProfile returns a profile with the owner's role
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	profile, err := h.profileService.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"profile": profile})
}

// UpsertProfile creates or replaces the caller's profile
func (h *ProfileHandler) UpsertProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpsertProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	profile, err := h.profileService.Upsert(c.Request().Context(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Profile created successfully",
		"profile": profile,
	})
}

// UpdateProfile merges the supplied fields into the caller's profile
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	profile, err := h.profileService.Update(c.Request().Context(), user.ID, c.Param("userId"), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// SearchProfiles matches name, stream or roll number
func (h *ProfileHandler) SearchProfiles(c echo.Context) error {
	profiles, err := h.profileService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"profiles": profiles})
}
