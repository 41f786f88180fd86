package service

import (
	"context"
	"strings"
	"time"

	"ai-chat-history-be/internal/apperror"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/dto"
	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/pkg/logger"
	"ai-chat-history-be/internal/repository/contract"
	"ai-chat-history-be/internal/repository/memory"
	"ai-chat-history-be/internal/repository/specification"
	"ai-chat-history-be/internal/repository/unitofwork"
	"ai-chat-history-be/pkg/preview"

	"github.com/google/uuid"
)

// IChatHistoryService defines the chat history service interface
type IChatHistoryService interface {
	GetChatPreviews(ctx context.Context, userId uuid.UUID, offset, limit int) (*dto.GetChatPreviewsResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	RecordPrompt(ctx context.Context, userId, sessionId uuid.UUID, request *dto.RecordPromptRequest) error
	RenameSession(ctx context.Context, userId, sessionId uuid.UUID, title string) *dto.RenameSessionResponse
	DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) *dto.DeleteSessionResponse
}

type chatHistoryService struct {
	uowFactory   unitofwork.RepositoryFactory
	previewRepo  contract.ChatPreviewRepository
	historyStore contract.ChatHistoryMirror
	previewCache *memory.PreviewCache
	publisher    IPublisherService
	logger       logger.ILogger
	pageSize     int

	now func() time.Time // Overridable so bucketing is deterministic in tests
}

func NewChatHistoryService(
	uowFactory unitofwork.RepositoryFactory,
	previewRepo contract.ChatPreviewRepository,
	historyStore contract.ChatHistoryMirror,
	previewCache *memory.PreviewCache,
	publisher IPublisherService,
	log logger.ILogger,
	pageSize int,
) IChatHistoryService {
	return &chatHistoryService{
		uowFactory:   uowFactory,
		previewRepo:  previewRepo,
		historyStore: historyStore,
		previewCache: previewCache,
		publisher:    publisher,
		logger:       log,
		pageSize:     pageSize,
		now:          time.Now,
	}
}

// GetChatPreviews fetches one page of previews through the selected backend,
// feeds the user's accumulated merge state, and returns the page plus the
// recomputed six-bucket categorization.
//
// A backend failure degrades to an empty page rather than an error, so the
// list always has a renderable state; the tradeoff is that a transient
// failure is indistinguishable from end-of-list.
func (cs *chatHistoryService) GetChatPreviews(ctx context.Context, userId uuid.UUID, offset, limit int) (*dto.GetChatPreviewsResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.ErrInvalidUserID
	}
	if offset < 0 {
		return nil, apperror.NewValidationError("offset", "must not be negative")
	}
	if limit <= 0 || limit > cs.pageSize {
		limit = cs.pageSize
	}

	page, err := cs.previewRepo.FetchPage(ctx, userId, offset, limit)
	if err != nil {
		cs.logger.Error("ChatHistoryService", "Preview page fetch failed, degrading to empty page", map[string]interface{}{
			"user_id": userId.String(),
			"offset":  offset,
			"error":   err.Error(),
		})
		page = []entity.ChatPreview{}
	}

	merger := cs.previewCache.GetOrCreate(userId)
	merger.AppendPage(offset, page, limit, cs.now())

	return &dto.GetChatPreviewsResponse{
		Previews:    toPreviewDTOs(page),
		Categorized: toCategorizedDTO(merger.Categorized()),
		HasMore:     merger.HasMore(),
	}, nil
}

// CreateSession persists a new session and mirrors it into the recency index.
func (cs *chatHistoryService) CreateSession(ctx context.Context, userId uuid.UUID, request *dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.ErrInvalidUserID
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session := entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     strings.TrimSpace(request.Title),
		CreatedAt: cs.now(),
	}

	if err := uow.ChatSessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	// Mirror is best effort; the relational store stays the source of truth.
	if err := cs.historyStore.RecordSession(ctx, &session); err != nil {
		cs.logger.Warn("ChatHistoryService", "Failed to mirror session to Redis", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	cs.invalidate(userId)
	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

// RecordPrompt appends a fragment to a session the user owns. User text
// fragments are also mirrored into the Redis prompt list so the key-value
// backend can serve previews without touching Postgres.
func (cs *chatHistoryService) RecordPrompt(ctx context.Context, userId, sessionId uuid.UUID, request *dto.RecordPromptRequest) error {
	if userId == uuid.Nil {
		return apperror.ErrInvalidUserID
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NewValidationError("session_id", "session not found or access denied")
	}

	count, err := uow.ChatFragmentRepository().Count(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return err
	}

	fragment := entity.ChatFragment{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Role:          request.Role,
		Kind:          request.Kind,
		Chat:          request.Chat,
		Position:      int(count),
		CreatedAt:     cs.now(),
	}
	if err := uow.ChatFragmentRepository().Create(ctx, &fragment); err != nil {
		return err
	}

	if request.Role == constant.ChatFragmentRoleUser && request.Kind == constant.ChatFragmentKindText {
		if err := cs.historyStore.RecordPrompt(ctx, sessionId, request.Chat); err != nil {
			cs.logger.Warn("ChatHistoryService", "Failed to mirror prompt to Redis", map[string]interface{}{
				"session_id": sessionId.String(),
				"error":      err.Error(),
			})
		}
	}

	cs.invalidate(userId)
	return nil
}

// RenameSession rejects empty titles and persists the new title to both
// backends so subsequent preview extraction returns it verbatim. It reports
// failure in the response shape instead of erroring.
func (cs *chatHistoryService) RenameSession(ctx context.Context, userId, sessionId uuid.UUID, title string) *dto.RenameSessionResponse {
	title = strings.TrimSpace(title)
	if title == "" {
		return &dto.RenameSessionResponse{Success: false, Error: "title must not be empty"}
	}
	if userId == uuid.Nil {
		return &dto.RenameSessionResponse{Success: false, Error: "invalid user identifier"}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		cs.logger.Error("ChatHistoryService", "Rename lookup failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return &dto.RenameSessionResponse{Success: false, Error: "temporary backend failure"}
	}
	if session == nil {
		return &dto.RenameSessionResponse{Success: false, Error: "session not found"}
	}

	session.Title = title
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		cs.logger.Error("ChatHistoryService", "Rename update failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return &dto.RenameSessionResponse{Success: false, Error: "temporary backend failure"}
	}

	if err := cs.historyStore.RenameSession(ctx, sessionId, title); err != nil {
		cs.logger.Warn("ChatHistoryService", "Failed to mirror rename to Redis", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	cs.invalidate(userId)
	return &dto.RenameSessionResponse{Success: true}
}

// DeleteSession removes the session and all dependent data: fragments and
// embeddings in one transaction, then the Redis keys in one MULTI. Safe to
// call on an already-deleted id; always answers with a status message and
// never an error.
func (cs *chatHistoryService) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) *dto.DeleteSessionResponse {
	if userId == uuid.Nil || sessionId == uuid.Nil {
		return &dto.DeleteSessionResponse{Message: "Invalid session identifier"}
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return cs.deleteFailed(sessionId, err)
	}
	defer uow.Rollback()

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return cs.deleteFailed(sessionId, err)
	}

	if session != nil {
		if err := uow.ChatEmbeddingRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
			return cs.deleteFailed(sessionId, err)
		}
		if err := uow.ChatFragmentRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
			return cs.deleteFailed(sessionId, err)
		}
		if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
			return cs.deleteFailed(sessionId, err)
		}
		if err := uow.Commit(); err != nil {
			return cs.deleteFailed(sessionId, err)
		}
	}

	// Redis cleanup runs even when the row was already gone, so a retry
	// after a partial failure converges.
	if err := cs.historyStore.DeleteSession(ctx, userId, sessionId); err != nil {
		cs.logger.Warn("ChatHistoryService", "Failed to delete Redis keys", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
	}

	cs.invalidate(userId)
	return &dto.DeleteSessionResponse{Message: "Chat deleted successfully"}
}

func (cs *chatHistoryService) deleteFailed(sessionId uuid.UUID, err error) *dto.DeleteSessionResponse {
	cs.logger.Error("ChatHistoryService", "Delete failed", map[string]interface{}{
		"session_id": sessionId.String(),
		"error":      err.Error(),
	})
	return &dto.DeleteSessionResponse{Message: "Failed to delete chat"}
}

func (cs *chatHistoryService) invalidate(userId uuid.UUID) {
	if err := cs.publisher.PublishInvalidation(userId); err != nil {
		cs.logger.Warn("ChatHistoryService", "Failed to publish invalidation", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}

// DTO mapping

func toPreviewDTOs(previews []entity.ChatPreview) []dto.ChatPreviewDTO {
	out := make([]dto.ChatPreviewDTO, 0, len(previews))
	for _, p := range previews {
		out = append(out, dto.ChatPreviewDTO{
			Id:           p.Id,
			FirstMessage: p.FirstMessage,
			CreatedAt:    p.CreatedAt,
		})
	}
	return out
}

func toCategorizedDTO(c preview.CategorizedChats) dto.CategorizedChatsDTO {
	return dto.CategorizedChatsDTO{
		Today:       toPreviewDTOs(c.Today),
		Yesterday:   toPreviewDTOs(c.Yesterday),
		Last7Days:   toPreviewDTOs(c.Last7Days),
		Last30Days:  toPreviewDTOs(c.Last30Days),
		Last2Months: toPreviewDTOs(c.Last2Months),
		Older:       toPreviewDTOs(c.Older),
	}
}
