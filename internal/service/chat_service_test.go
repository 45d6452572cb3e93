package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel-rooms-be/internal/entity"
	"hotel-rooms-be/internal/pkg/apperror"
	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply string
	err   error
	calls []string
}

func (p *stubProvider) Reply(ctx context.Context, message string) (string, error) {
	p.calls = append(p.calls, message)
	return p.reply, p.err
}

func newChatFixture(provider *stubProvider) (IChatService, *memory.ChatHistoryRepository) {
	history := memory.NewChatHistoryRepository(time.Hour)
	return NewChatService(provider, history, logger.NewNopLogger()), history
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("records both turns", func(t *testing.T) {
		provider := &stubProvider{reply: "Hi"}
		svc, _ := newChatFixture(provider)

		res, err := svc.SendMessage(ctx, "", "Hello")
		require.NoError(t, err)
		assert.Equal(t, "Hi", res.Response)
		assert.Equal(t, []string{"Hello"}, provider.calls)

		history, err := svc.GetHistory(ctx, entity.DefaultConversationId)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, entity.ChatRoleUser, history[0].Role)
		assert.Equal(t, "Hello", history[0].Content)
		assert.Equal(t, entity.ChatRoleAssistant, history[1].Role)
		assert.Equal(t, "Hi", history[1].Content)
		assert.False(t, history[1].Timestamp.Before(history[0].Timestamp))
	})

	t.Run("empty message", func(t *testing.T) {
		provider := &stubProvider{reply: "Hi"}
		svc, _ := newChatFixture(provider)

		for _, msg := range []string{"", "   ", "\n\t"} {
			_, err := svc.SendMessage(ctx, "", msg)
			assertAppError(t, err, apperror.ErrBadRequest, "Message cannot be empty")
		}

		history, err := svc.GetHistory(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, history)
		assert.Empty(t, provider.calls)
	})

	t.Run("upstream failure keeps the question", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("connection refused")}
		svc, _ := newChatFixture(provider)

		_, err := svc.SendMessage(ctx, "", "Hello")
		assertAppError(t, err, apperror.ErrUpstream, "Could not reach the assistant")

		history, err := svc.GetHistory(ctx, "")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, entity.ChatRoleUser, history[0].Role)
	})

	t.Run("conversations are isolated", func(t *testing.T) {
		svc, _ := newChatFixture(&stubProvider{reply: "ok"})

		_, err := svc.SendMessage(ctx, "guest-1", "one")
		require.NoError(t, err)
		_, err = svc.SendMessage(ctx, "guest-2", "two")
		require.NoError(t, err)

		first, err := svc.GetHistory(ctx, "guest-1")
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "one", first[0].Content)

		def, err := svc.GetHistory(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, def)
	})
}

func TestChatService_HistoryIsACopy(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(&stubProvider{reply: "Hi"})

	_, err := svc.SendMessage(ctx, "", "Hello")
	require.NoError(t, err)

	snapshot, err := svc.GetHistory(ctx, "")
	require.NoError(t, err)
	snapshot[0].Content = "tampered"

	_, err = svc.SendMessage(ctx, "", "Again")
	require.NoError(t, err)

	assert.Len(t, snapshot, 2)
	fresh, err := svc.GetHistory(ctx, "")
	require.NoError(t, err)
	require.Len(t, fresh, 4)
	assert.Equal(t, "Hello", fresh[0].Content)
}

func TestChatService_ClearHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newChatFixture(&stubProvider{reply: "Hi"})

	_, err := svc.SendMessage(ctx, "", "Hello")
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory(ctx, ""))

	history, err := svc.GetHistory(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, history)

	// clearing an empty conversation is fine
	require.NoError(t, svc.ClearHistory(ctx, "nobody"))
}
