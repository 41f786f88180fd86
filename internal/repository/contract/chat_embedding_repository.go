package contract

import (
	"context"

	"ai-chat-history-be/internal/model"

	"github.com/google/uuid"
)

type ChatEmbeddingRepository interface {
	Create(ctx context.Context, embedding *model.ChatEmbedding) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
