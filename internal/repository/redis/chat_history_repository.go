package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/repository/contract"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: chat:history:{conversation_id} -> list of JSON messages.
// TTL is refreshed on every append.
const historyKeyPrefix = "chat:history:"

type messageRecord struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type ChatHistoryRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

var _ contract.ChatHistoryRepository = (*ChatHistoryRepository)(nil)

func NewChatHistoryRepository(client *goredis.Client, ttl time.Duration) *ChatHistoryRepository {
	return &ChatHistoryRepository{
		client: client,
		ttl:    ttl,
	}
}

func historyKey(conversationId string) string {
	return historyKeyPrefix + conversationId
}

func (r *ChatHistoryRepository) Append(ctx context.Context, conversationId string, message entity.ChatMessage) error {
	data, err := json.Marshal(messageRecord{
		Role:      message.Role,
		Content:   message.Content,
		Timestamp: message.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("marshal chat message: %w", err)
	}

	key := historyKey(conversationId)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat history: %w", err)
	}
	return nil
}

func (r *ChatHistoryRepository) List(ctx context.Context, conversationId string) ([]entity.ChatMessage, error) {
	raw, err := r.client.LRange(ctx, historyKey(conversationId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat history: %w", err)
	}

	history := make([]entity.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var rec messageRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decode chat message: %w", err)
		}
		history = append(history, entity.ChatMessage{
			Role:      rec.Role,
			Content:   rec.Content,
			Timestamp: rec.Timestamp,
		})
	}
	return history, nil
}

func (r *ChatHistoryRepository) Clear(ctx context.Context, conversationId string) error {
	if err := r.client.Del(ctx, historyKey(conversationId)).Err(); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
