package contract

import (
	"context"

	"ai-chat-history-be/internal/entity"

	"github.com/google/uuid"
)

// ChatPreviewRepository is the contract both preview backends honor.
// Pages come back newest-first by created_at with length <= limit; an empty
// page signals the backend is exhausted.
type ChatPreviewRepository interface {
	FetchPage(ctx context.Context, userId uuid.UUID, offset, limit int) ([]entity.ChatPreview, error)
}
