package domain

import "time"

type Conversation struct {
	ID        string
	UserID    int64
	Title     string
	CreatedAt time.Time
}

type MessageRole string

const (
	MessageRoleSystem    MessageRole = "system"
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

type Message struct {
	ID             int64
	ConversationID string
	Role           MessageRole
	Content        string
	CreatedAt      time.Time
}
