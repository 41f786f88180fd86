package contract

import (
	"context"

	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatFragmentRepository interface {
	Create(ctx context.Context, fragment *entity.ChatFragment) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFragment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
