package service

import (
	"context"
	"encoding/json"

	"ai-chat-history-be/internal/dto"
	"ai-chat-history-be/internal/pkg/logger"
	"ai-chat-history-be/internal/repository/memory"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService evicts a user's cached merge state when a lifecycle
// mutation publishes an invalidation event.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	previewCache *memory.PreviewCache
	logger       logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	previewCache *memory.PreviewCache,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		previewCache: previewCache,
		logger:       log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishInvalidationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal invalidation message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.previewCache.Invalidate(payload.UserId)
	msg.Ack()
}
