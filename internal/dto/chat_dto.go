package dto

import "time"

type SendChatMessageRequest struct {
	Message        string `json:"message"`
	ConversationId string `json:"conversation_id" validate:"omitempty,max=128"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type ChatHistoryItemResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MessageResponse is the body of endpoints that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}
