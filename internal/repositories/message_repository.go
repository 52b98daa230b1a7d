package repositories

import (
	"context"
	"slices"
	"time"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/anonto42/sach-wave/backend/pkg/recordstore"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageRepository stores direct messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, message *models.Message) error
	GetMessageByID(ctx context.Context, id string) (*models.Message, error)
	// ListConversation returns every message exchanged between a and b, oldest first.
	ListConversation(ctx context.Context, a, b string) ([]models.Message, error)
	// MarkConversationRead marks unread messages from senderID to receiverID as read.
	MarkConversationRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error)
	MarkMessageRead(ctx context.Context, id string, at time.Time) error
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	DeleteMessagesByUser(ctx context.Context, userID string) error
}

// ChatSessionRepository tracks which pairs of users have talked and when they last did.
type ChatSessionRepository interface {
	TouchSession(ctx context.Context, a, b string, at time.Time) error
	// ListSessionsByUser returns the user's sessions, most recent activity first.
	ListSessionsByUser(ctx context.Context, userID string) ([]models.ChatSession, error)
	DeleteSessionsByUser(ctx context.Context, userID string) error
}

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *PostgresMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, gormError(err)
	}
	return &message, nil
}

func (r *PostgresMessageRepository) ListConversation(ctx context.Context, a, b string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}

func (r *PostgresMessageRepository) MarkConversationRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", receiverID, senderID, false).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

func (r *PostgresMessageRepository) MarkMessageRead(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Message{}).Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).Where("receiver_id = ? AND read = ?", receiverID, false).Count(&count).Error
	return count, err
}

func (r *PostgresMessageRepository) DeleteMessagesByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&models.Message{}).Error
}

type PostgresChatSessionRepository struct {
	db *gorm.DB
}

func NewPostgresChatSessionRepository(db *gorm.DB) *PostgresChatSessionRepository {
	return &PostgresChatSessionRepository{db: db}
}

func (r *PostgresChatSessionRepository) TouchSession(ctx context.Context, a, b string, at time.Time) error {
	user1, user2 := models.SessionPair(a, b)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.ChatSession{}).Where("user1 = ? AND user2 = ?", user1, user2).Update("last_message", at)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.ChatSession{ID: uuid.NewString(), User1: user1, User2: user2, LastMessage: at, CreatedAt: at}).Error
	})
}

func (r *PostgresChatSessionRepository) ListSessionsByUser(ctx context.Context, userID string) ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	err := r.db.WithContext(ctx).Where("user1 = ? OR user2 = ?", userID, userID).Order("last_message desc").Find(&sessions).Error
	return sessions, err
}

func (r *PostgresChatSessionRepository) DeleteSessionsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user1 = ? OR user2 = ?", userID, userID).Delete(&models.ChatSession{}).Error
}

type FileMessageRepository struct {
	messages *recordstore.Collection[models.Message]
}

func NewFileMessageRepository(store *recordstore.Store) *FileMessageRepository {
	return &FileMessageRepository{messages: recordstore.NewCollection[models.Message](store, messagesCollection)}
}

func (r *FileMessageRepository) CreateMessage(_ context.Context, message *models.Message) error {
	return r.messages.Update(func(messages []models.Message) ([]models.Message, error) {
		return append(messages, *message), nil
	})
}

func (r *FileMessageRepository) GetMessageByID(_ context.Context, id string) (*models.Message, error) {
	message, ok, err := r.messages.Find(func(m models.Message) bool { return m.ID == id })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &message, nil
}

func (r *FileMessageRepository) ListConversation(_ context.Context, a, b string) ([]models.Message, error) {
	messages, err := r.messages.Filter(func(m models.Message) bool {
		return (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a)
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(messages, func(x, y models.Message) int {
		return x.Timestamp.Compare(y.Timestamp)
	})
	return messages, nil
}

func (r *FileMessageRepository) MarkConversationRead(_ context.Context, receiverID, senderID string, at time.Time) (int64, error) {
	var marked int64
	err := r.messages.Update(func(messages []models.Message) ([]models.Message, error) {
		for i := range messages {
			m := &messages[i]
			if m.ReceiverID == receiverID && m.SenderID == senderID && !m.Read {
				m.Read = true
				m.ReadAt = &at
				marked++
			}
		}
		return messages, nil
	})
	return marked, err
}

func (r *FileMessageRepository) MarkMessageRead(_ context.Context, id string, at time.Time) error {
	return r.messages.Update(func(messages []models.Message) ([]models.Message, error) {
		i := slices.IndexFunc(messages, func(m models.Message) bool { return m.ID == id })
		if i < 0 {
			return nil, ErrNotFound
		}
		messages[i].Read = true
		messages[i].ReadAt = &at
		return messages, nil
	})
}

func (r *FileMessageRepository) CountUnread(_ context.Context, receiverID string) (int64, error) {
	unread, err := r.messages.Filter(func(m models.Message) bool { return m.ReceiverID == receiverID && !m.Read })
	return int64(len(unread)), err
}

func (r *FileMessageRepository) DeleteMessagesByUser(_ context.Context, userID string) error {
	_, err := r.messages.Remove(func(m models.Message) bool { return m.SenderID == userID || m.ReceiverID == userID })
	return err
}

type FileChatSessionRepository struct {
	sessions *recordstore.Collection[models.ChatSession]
}

func NewFileChatSessionRepository(store *recordstore.Store) *FileChatSessionRepository {
	return &FileChatSessionRepository{sessions: recordstore.NewCollection[models.ChatSession](store, chatSessionsCollection)}
}

func (r *FileChatSessionRepository) TouchSession(_ context.Context, a, b string, at time.Time) error {
	user1, user2 := models.SessionPair(a, b)
	return r.sessions.Update(func(sessions []models.ChatSession) ([]models.ChatSession, error) {
		i := slices.IndexFunc(sessions, func(s models.ChatSession) bool { return s.User1 == user1 && s.User2 == user2 })
		if i >= 0 {
			sessions[i].LastMessage = at
			return sessions, nil
		}
		return append(sessions, models.ChatSession{ID: uuid.NewString(), User1: user1, User2: user2, LastMessage: at, CreatedAt: at}), nil
	})
}

func (r *FileChatSessionRepository) ListSessionsByUser(_ context.Context, userID string) ([]models.ChatSession, error) {
	sessions, err := r.sessions.Filter(func(s models.ChatSession) bool { return s.User1 == userID || s.User2 == userID })
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(sessions, func(a, b models.ChatSession) int {
		return b.LastMessage.Compare(a.LastMessage)
	})
	return sessions, nil
}

func (r *FileChatSessionRepository) DeleteSessionsByUser(_ context.Context, userID string) error {
	_, err := r.sessions.Remove(func(s models.ChatSession) bool { return s.User1 == userID || s.User2 == userID })
	return err
}
