package implementation

import (
	"context"

	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/mapper"
	"ai-chat-history-be/internal/model"
	"ai-chat-history-be/internal/repository/contract"
	"ai-chat-history-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatFragmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewChatFragmentRepository(db *gorm.DB) contract.ChatFragmentRepository {
	return &ChatFragmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatFragmentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatFragmentRepositoryImpl) Create(ctx context.Context, fragment *entity.ChatFragment) error {
	m := r.mapper.ChatFragmentToModel(fragment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*fragment = *r.mapper.ChatFragmentToEntity(m)
	return nil
}

func (r *ChatFragmentRepositoryImpl) DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("chat_session_id = ?", sessionId).Delete(&model.ChatFragment{}).Error
}

func (r *ChatFragmentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatFragment, error) {
	var models []*model.ChatFragment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ChatFragmentsToEntities(models), nil
}

func (r *ChatFragmentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatFragment{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
