package implementation

import (
	"context"

	"ai-chat-history-be/internal/model"
	"ai-chat-history-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatEmbeddingRepositoryImpl struct {
	db *gorm.DB
}

func NewChatEmbeddingRepository(db *gorm.DB) contract.ChatEmbeddingRepository {
	return &ChatEmbeddingRepositoryImpl{db: db}
}

func (r *ChatEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *model.ChatEmbedding) error {
	return r.db.WithContext(ctx).Create(embedding).Error
}

func (r *ChatEmbeddingRepositoryImpl) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).Delete(&model.ChatEmbedding{}).Error
}

func (r *ChatEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.ChatEmbedding{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
