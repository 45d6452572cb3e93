package service

import (
	"context"
	"strings"
	"time"

	"hotel-rooms-be/internal/dto"
	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/internal/repository/contract"
	"hotel-rooms-be/pkg/llm"
)

type IChatService interface {
	SendMessage(ctx context.Context, conversationId string, message string) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, conversationId string) ([]*dto.ChatHistoryItemResponse, error)
	ClearHistory(ctx context.Context, conversationId string) error
}

type chatService struct {
	provider llm.Provider
	history  contract.ChatHistoryRepository
	logger   logger.ILogger
	now      func() time.Time
}

func NewChatService(provider llm.Provider, history contract.ChatHistoryRepository, logger logger.ILogger) IChatService {
	return &chatService{
		provider: provider,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// SendMessage records the user turn before calling the assistant, so a
// failed call still leaves the question in the history.
func (s *chatService) SendMessage(ctx context.Context, conversationId string, message string) (*dto.ChatResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperror.BadRequest("Message cannot be empty")
	}
	conversationId = normalizeConversationId(conversationId)

	err := s.history.Append(ctx, conversationId, entity.ChatMessage{
		Role:      entity.ChatRoleUser,
		Content:   message,
		Timestamp: s.now(),
	})
	if err != nil {
		return nil, apperror.Internal("Failed to save chat history", err)
	}

	reply, err := s.provider.Reply(ctx, message)
	if err != nil {
		s.logger.Error("CHAT", "Assistant request failed", map[string]interface{}{
			"conversation_id": conversationId,
			"error":           err.Error(),
		})
		return nil, apperror.Upstream("Could not reach the assistant", err)
	}

	err = s.history.Append(ctx, conversationId, entity.ChatMessage{
		Role:      entity.ChatRoleAssistant,
		Content:   reply,
		Timestamp: s.now(),
	})
	if err != nil {
		return nil, apperror.Internal("Failed to save chat history", err)
	}

	return &dto.ChatResponse{Response: reply}, nil
}

func (s *chatService) GetHistory(ctx context.Context, conversationId string) ([]*dto.ChatHistoryItemResponse, error) {
	messages, err := s.history.List(ctx, normalizeConversationId(conversationId))
	if err != nil {
		return nil, apperror.Internal("Failed to load chat history", err)
	}

	res := make([]*dto.ChatHistoryItemResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, &dto.ChatHistoryItemResponse{
			Role:      m.Role,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return res, nil
}

func (s *chatService) ClearHistory(ctx context.Context, conversationId string) error {
	conversationId = normalizeConversationId(conversationId)
	if err := s.history.Clear(ctx, conversationId); err != nil {
		return apperror.Internal("Failed to clear chat history", err)
	}
	s.logger.Info("CHAT", "History cleared", map[string]interface{}{"conversation_id": conversationId})
	return nil
}

func normalizeConversationId(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return entity.DefaultConversationId
	}
	return id
}
