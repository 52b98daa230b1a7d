package services

import (
	"context"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/metrics"
	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/internal/repositories"
	"github.com/anonto42/sach-wave/backend/internal/validators"
	"github.com/google/uuid"
)

type MessageService struct {
	messages repositories.MessageRepository
	sessions repositories.ChatSessionRepository
	users    repositories.UserRepository
	profiles repositories.ProfileRepository
	now      func() time.Time
}

func NewMessageService(repos *repositories.Set) *MessageService {
	return &MessageService{
		messages: repos.Messages,
		sessions: repos.ChatSessions,
		users:    repos.Users,
		profiles: repos.Profiles,
		now:      time.Now,
	}
}

// Conversations summarises every chat the user takes part in, most recent first.
func (s *MessageService) Conversations(ctx context.Context, userID string) ([]models.Conversation, error) {
	sessions, err := s.sessions.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}

	out := make([]models.Conversation, 0, len(sessions))
	for _, sess := range sessions {
		other := sess.Other(userID)
		history, err := s.messages.ListConversation(ctx, userID, other)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if len(history) == 0 {
			continue
		}
		last := history[len(history)-1]
		unread := 0
		for _, m := range history {
			if m.SenderID == other && !m.Read {
				unread++
			}
		}
		out = append(out, models.Conversation{
			UserID:          other,
			Name:            dir.name(other),
			ProfileImage:    dir.image(other),
			LastMessage:     last.Content,
			LastMessageTime: last.Timestamp,
			UnreadCount:     unread,
		})
	}
	sortByTimeDesc(out, func(c models.Conversation) time.Time { return c.LastMessageTime })
	return out, nil
}

// History returns the chat with otherID oldest first, marking incoming messages read.
func (s *MessageService) History(ctx context.Context, userID, otherID string) ([]models.ChatMessage, error) {
	if _, err := s.messages.MarkConversationRead(ctx, userID, otherID, s.now()); err != nil {
		return nil, models.NewInternalError(err)
	}
	history, err := s.messages.ListConversation(ctx, userID, otherID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	dir, err := loadDirectory(ctx, s.profiles)
	if err != nil {
		return nil, err
	}
	out := make([]models.ChatMessage, 0, len(history))
	for _, m := range history {
		out = append(out, models.ChatMessage{Message: m, SenderName: dir.name(m.SenderID), SenderImage: dir.image(m.SenderID)})
	}
	return out, nil
}

func (s *MessageService) Send(ctx context.Context, senderID, receiverID, content string) (*models.Message, error) {
	content = validators.SanitizeText(content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	if senderID == receiverID {
		return nil, models.NewValidationError("Cannot message yourself")
	}
	if _, err := s.users.GetUserByID(ctx, receiverID); err != nil {
		return nil, repoError(err, "User")
	}

	msg := &models.Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  s.now(),
	}
	if err := s.messages.CreateMessage(ctx, msg); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.sessions.TouchSession(ctx, senderID, receiverID, msg.Timestamp); err != nil {
		return nil, models.NewInternalError(err)
	}
	metrics.Event("message_sent")
	return msg, nil
}

// MarkRead marks one message read. Only its receiver may do this.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID string) error {
	msg, err := s.messages.GetMessageByID(ctx, messageID)
	if err != nil {
		return repoError(err, "Message")
	}
	if msg.ReceiverID != userID {
		return models.NewAuthorizationError("Not authorized")
	}
	return repoError(s.messages.MarkMessageRead(ctx, messageID, s.now()), "Message")
}

func (s *MessageService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	n, err := s.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
