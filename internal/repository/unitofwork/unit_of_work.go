package unitofwork

import (
	"context"

	"ai-chat-history-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatFragmentRepository() contract.ChatFragmentRepository
	ChatEmbeddingRepository() contract.ChatEmbeddingRepository
}
