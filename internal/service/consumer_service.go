package service

import (
	"context"
	"encoding/json"
	"time"

	"hotel-rooms-be/internal/dto"
	"hotel-rooms-be/internal/pkg/imagestore"
	"hotel-rooms-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

const (
	ImageCleanupTopic = "ROOM_IMAGE_CLEANUP"

	cleanupAttempts = 3
)

// IConsumerService drains the image cleanup topic in the background.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	imageStore imagestore.Store
	logger     logger.ILogger
	retryDelay time.Duration
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	imageStore imagestore.Store,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		imageStore: imageStore,
		logger:     logger,
		retryDelay: 2 * time.Second,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. Retries happen here with a delay because the
// in-process channel redelivers nacked messages immediately.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.RoomImageCleanupMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("IMAGE_CLEANUP", "Invalid cleanup message", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		return
	}

	details := map[string]interface{}{"room_id": payload.RoomId, "image": payload.Image}

	var err error
	for attempt := 1; attempt <= cleanupAttempts; attempt++ {
		if err = cs.imageStore.Remove(ctx, payload.Image); err == nil {
			cs.logger.Info("IMAGE_CLEANUP", "Removed obsolete image", details)
			return
		}
		if attempt < cleanupAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(cs.retryDelay):
			}
		}
	}

	details["error"] = err.Error()
	cs.logger.Error("IMAGE_CLEANUP", "Giving up on obsolete image, remove it manually", details)
}
