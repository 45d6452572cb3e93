package factory

import (
	"fmt"
	"time"

	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/pkg/llm"
	"hotel-rooms-be/pkg/llm/upstream"
)

func NewLLMProvider(endpoint string, timeout time.Duration, log logger.ILogger) (llm.Provider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("chat upstream endpoint is not configured")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return upstream.NewProvider(endpoint, timeout, log), nil
}
