package contract

import (
	"context"

	"hotel-rooms-be/internal/entity"
)

// ChatHistoryRepository stores one ordered, append-only log per conversation.
type ChatHistoryRepository interface {
	Append(ctx context.Context, conversationId string, message entity.ChatMessage) error
	// List returns a copy; callers may keep it across later appends
	List(ctx context.Context, conversationId string) ([]entity.ChatMessage, error)
	Clear(ctx context.Context, conversationId string) error
}
