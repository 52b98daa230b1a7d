package models

import "time"

// Message is a direct message between two users.
type Message struct {
	ID         string     `json:"id" gorm:"primaryKey;size:36"`
	SenderID   string     `json:"senderId" gorm:"size:36;index"`
	ReceiverID string     `json:"receiverId" gorm:"size:36;index"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp" gorm:"index"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"readAt"`
}

// ChatSession tracks the last activity between two users. User1 < User2.
type ChatSession struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	User1       string    `json:"user1" gorm:"size:36;uniqueIndex:idx_chat_pair"`
	User2       string    `json:"user2" gorm:"size:36;uniqueIndex:idx_chat_pair"`
	LastMessage time.Time `json:"lastMessage"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Other returns the counterpart of userID in the session.
func (s *ChatSession) Other(userID string) string {
	if s.User1 == userID {
		return s.User2
	}
	return s.User1
}

// SessionPair orders two user ids the way ChatSession stores them.
func SessionPair(a, b string) (string, string) {
	if a < b {
		return a, b
	}
	return b, a
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type Conversation struct {
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	ProfileImage    string    `json:"profileImage"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
	IsOnline        bool      `json:"isOnline"`
}

// ChatMessage is a message together with its sender's display attributes.
type ChatMessage struct {
	Message
	SenderName  string `json:"senderName"`
	SenderImage string `json:"senderImage"`
}

type TypingRequest struct {
	IsTyping bool `json:"isTyping"`
}
