package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts, their likes and comments
type PostHandler struct {
	postService *services.PostService
	feedService *services.FeedService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService, feedService *services.FeedService) *PostHandler {
	return &PostHandler{postService: postService, feedService: feedService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("", h.GetPosts)
	g.GET("/user/:userId", h.GetUserPosts)
	g.POST("", h.CreatePost)
	g.GET("/:postId", h.GetPost)
	g.DELETE("/:postId", h.DeletePost)
	g.POST("/:postId/like", h.ToggleLike)
	g.GET("/:postId/comments", h.GetComments)
	g.POST("/:postId/comments", h.AddComment)
}

// GetPosts returns the global feed
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.feedService.Global(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// GetUserPosts returns one author's posts
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.feedService.ByUser(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"posts": posts})
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), user.ID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the caller, or any post for admins
func (h *PostHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.postService.DeletePost(c.Request().Context(), user, c.Param("postId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// ToggleLike likes or unlikes a post
func (h *PostHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	liked, err := h.postService.ToggleLike(c.Request().Context(), user.ID, c.Param("postId"))
	if err != nil {
		return err
	}

	message := "Post unliked"
	if liked {
		message = "Post liked"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": message, "liked": liked})
}

// GetComments lists comments on a post, oldest first
func (h *PostHandler) GetComments(c echo.Context) error {
	comments, err := h.postService.ListComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"comments": comments})
}

// AddComment comments on a post
func (h *PostHandler) AddComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	comment, err := h.postService.AddComment(c.Request().Context(), user.ID, c.Param("postId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Comment added",
		"comment": comment,
	})
}
