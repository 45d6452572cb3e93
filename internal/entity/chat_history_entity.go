package entity

import "time"

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	DefaultConversationId = "default"
)

// ChatMessage is one turn of a conversation. Immutable once appended.
type ChatMessage struct {
	Role      string
	Content   string
	Timestamp time.Time
}
