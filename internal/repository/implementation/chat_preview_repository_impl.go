package implementation

import (
	"context"
	"errors"
	"time"

	"ai-chat-history-be/internal/apperror"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/model"
	"ai-chat-history-be/internal/pkg/logger"
	"ai-chat-history-be/internal/repository/contract"
	"ai-chat-history-be/internal/repository/scope"
	"ai-chat-history-be/pkg/preview"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// firstFragmentSubquery resolves, per session, the single qualifying preview
// fragment: the earliest non-empty user text, position-ordered within equal
// timestamps. Correlated so the outer range query stays one round trip no
// matter how many fragments a session has.
const firstFragmentSubquery = `(
	SELECT f.chat FROM chat_fragments f
	WHERE f.chat_session_id = chat_sessions.id
	  AND f.role = ? AND f.kind = ? AND f.chat <> ''
	  AND f.deleted_at IS NULL
	ORDER BY f.created_at ASC, f.position ASC
	LIMIT 1
) AS first_chat`

type sessionPreviewRow struct {
	Id        uuid.UUID
	Title     string
	CreatedAt time.Time
	FirstChat *string
}

type ChatPreviewRepositoryImpl struct {
	db        *gorm.DB
	extractor *preview.Extractor
	logger    logger.ILogger
}

func NewChatPreviewRepository(db *gorm.DB, extractor *preview.Extractor, log logger.ILogger) contract.ChatPreviewRepository {
	return &ChatPreviewRepositoryImpl{
		db:        db,
		extractor: extractor,
		logger:    log,
	}
}

func (r *ChatPreviewRepositoryImpl) FetchPage(ctx context.Context, userId uuid.UUID, offset, limit int) ([]entity.ChatPreview, error) {
	var rows []sessionPreviewRow
	err := r.db.WithContext(ctx).
		Model(&model.ChatSession{}).
		Select("chat_sessions.id, chat_sessions.title, chat_sessions.created_at, "+firstFragmentSubquery,
			constant.ChatFragmentRoleUser, constant.ChatFragmentKindText).
		Where("user_id = ?", userId).
		Scopes(scope.OrderByCreatedDesc).
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, &apperror.BackendUnavailableError{Backend: "postgres", Err: err}
	}

	previews := make([]entity.ChatPreview, 0, len(rows))
	for _, row := range rows {
		session := entity.ChatSession{
			Id:        row.Id,
			Title:     row.Title,
			CreatedAt: row.CreatedAt,
		}
		var fragments []*entity.ChatFragment
		if row.FirstChat != nil {
			fragments = append(fragments, &entity.ChatFragment{
				ChatSessionId: row.Id,
				Role:          constant.ChatFragmentRoleUser,
				Kind:          constant.ChatFragmentKindText,
				Chat:          *row.FirstChat,
			})
		}

		p, err := r.extractor.Extract(&session, fragments)
		if err != nil {
			var malformed *apperror.MalformedSessionError
			if errors.As(err, &malformed) {
				r.logger.Warn("ChatPreviewRepository", "Skipping malformed session row", map[string]interface{}{
					"session_id": row.Id.String(),
				})
				continue
			}
			return nil, err
		}
		previews = append(previews, p)
	}
	return previews, nil
}
