package handlers

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct messages
type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterMessageRoutes registers messaging routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.GET("/unread/count", h.GetUnreadCount)
	g.GET("/online-status/:userId", h.GetOnlineStatus)
	g.GET("/:userId", h.GetHistory)
	g.POST("/:userId", h.SendMessage)
	g.PUT("/:messageId/read", h.MarkRead)
	g.POST("/:userId/typing", h.Typing)
}

func (h *MessageHandler) GetConversations(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	conversations, err := h.messageService.Conversations(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"conversations": conversations})
}

// GetHistory returns the conversation with a user and marks incoming messages read
func (h *MessageHandler) GetHistory(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	messages, err := h.messageService.History(c.Request().Context(), user.ID, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"messages": messages})
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.messageService.Send(c.Request().Context(), user.ID, c.Param("userId"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Message sent",
		"data":    msg,
	})
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.messageService.MarkRead(c.Request().Context(), user.ID, c.Param("messageId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Message marked as read"})
}

// Typing acknowledges a typing indicator. Nothing is delivered to the other side.
func (h *MessageHandler) Typing(c echo.Context) error {
	var req models.TypingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "isTyping": req.IsTyping})
}

// GetOnlineStatus always reports offline; presence is not tracked.
func (h *MessageHandler) GetOnlineStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{"isOnline": false, "lastSeen": nil})
}

func (h *MessageHandler) GetUnreadCount(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	count, err := h.messageService.UnreadCount(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"unreadCount": count})
}
