package memory

import (
	"context"
	"sync"
	"time"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// ChatHistoryRepository keeps conversations in process memory. With a
// positive ttl a history expires after that long without appends, with 0 it
// lives until cleared. Everything is lost on restart.
type ChatHistoryRepository struct {
	cache *cache.Cache
	mu    sync.Mutex
}

var _ contract.ChatHistoryRepository = (*ChatHistoryRepository)(nil)

func NewChatHistoryRepository(ttl time.Duration) *ChatHistoryRepository {
	// Purge expired conversations every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ChatHistoryRepository{
		cache: c,
	}
}

func (r *ChatHistoryRepository) Append(ctx context.Context, conversationId string, message entity.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []entity.ChatMessage
	if x, found := r.cache.Get(conversationId); found {
		history = x.([]entity.ChatMessage)
	}

	// Copy on write so slices handed out by List never change underneath a reader
	next := make([]entity.ChatMessage, len(history), len(history)+1)
	copy(next, history)
	next = append(next, message)

	r.cache.Set(conversationId, next, cache.DefaultExpiration)
	return nil
}

func (r *ChatHistoryRepository) List(ctx context.Context, conversationId string) ([]entity.ChatMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	x, found := r.cache.Get(conversationId)
	if !found {
		return []entity.ChatMessage{}, nil
	}
	history := x.([]entity.ChatMessage)
	out := make([]entity.ChatMessage, len(history))
	copy(out, history)
	return out, nil
}

func (r *ChatHistoryRepository) Clear(ctx context.Context, conversationId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Delete(conversationId)
	return nil
}
