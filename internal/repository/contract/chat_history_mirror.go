package contract

import (
	"context"

	"ai-chat-history-be/internal/entity"

	"github.com/google/uuid"
)

// ChatHistoryMirror is the write side of the key-value backend: the recency
// index and per-session keys kept in step with the relational source of
// truth by the lifecycle operations.
type ChatHistoryMirror interface {
	RecordSession(ctx context.Context, session *entity.ChatSession) error
	RecordPrompt(ctx context.Context, sessionId uuid.UUID, text string) error
	RenameSession(ctx context.Context, sessionId uuid.UUID, title string) error
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error
}
