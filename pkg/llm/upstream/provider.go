package upstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

// Provider talks to the external chat service: POST {"message": ...}
// answered by {"response": ...}.
type Provider struct {
	endpoint string
	client   *resty.Client
	logger   logger.ILogger
}

var _ llm.Provider = &Provider{}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response *string `json:"response"`
}

// NewProvider builds a client without retries; a failed call is reported
// to the caller as-is.
func NewProvider(endpoint string, timeout time.Duration, log logger.ILogger) *Provider {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Provider{
		endpoint: endpoint,
		client:   client,
		logger:   log,
	}
}

func (p *Provider) Reply(ctx context.Context, message string) (string, error) {
	var body chatResponse
	start := time.Now()

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(chatRequest{Message: message}).
		SetResult(&body).
		Post(p.endpoint)
	if err != nil {
		return "", fmt.Errorf("upstream request failed: %w", err)
	}

	p.logger.Info("UPSTREAM", "chat upstream call", map[string]interface{}{
		"endpoint":    p.endpoint,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.IsError() {
		return "", fmt.Errorf("upstream error: status %d, body: %s", resp.StatusCode(), truncate(resp.String(), 512))
	}

	// resty only decodes JSON content types into the result
	if body.Response == nil {
		if !strings.Contains(resp.Header().Get("Content-Type"), "json") {
			return "", fmt.Errorf("upstream returned %q, want application/json", resp.Header().Get("Content-Type"))
		}
		return "", llm.ErrEmptyReply
	}

	return *body.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
