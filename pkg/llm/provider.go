package llm

import (
	"context"
	"errors"
)

var ErrEmptyReply = errors.New("assistant reply has no response field")

// Provider forwards a single user message to an assistant backend and
// returns its reply text. Implementations keep no conversation state.
type Provider interface {
	Reply(ctx context.Context, message string) (string, error)
}
