package rediscache

import (
	"context"
	"errors"
	"time"

	"ai-chat-history-be/internal/apperror"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Key layout, per user and per session:
//
//	chat:user:{userId}:sessions   ZSET  session ids scored by creation unix time
//	chat:session:{id}             HASH  title, created_at (RFC3339Nano)
//	chat:session:{id}:prompts     LIST  user text prompts, oldest first
const (
	hashFieldTitle     = "title"
	hashFieldCreatedAt = "created_at"
)

func userSessionsKey(userId uuid.UUID) string {
	return "chat:user:" + userId.String() + ":sessions"
}

func sessionKey(sessionId uuid.UUID) string {
	return "chat:session:" + sessionId.String()
}

func sessionPromptsKey(sessionId uuid.UUID) string {
	return "chat:session:" + sessionId.String() + ":prompts"
}

// ChatHistoryStore is the key-value preview backend. It keeps a per-user
// recency index plus per-session metadata mirrored from the relational
// source of truth, and serves preview pages in one pipelined round trip.
type ChatHistoryStore struct {
	rdb       *redis.Client
	maxLength int
	logger    logger.ILogger
}

func NewChatHistoryStore(rdb *redis.Client, previewMaxLength int, log logger.ILogger) *ChatHistoryStore {
	return &ChatHistoryStore{
		rdb:       rdb,
		maxLength: previewMaxLength,
		logger:    log,
	}
}

// FetchPage slices the recency index by rank, then batch-fetches each
// session's metadata hash and first prompt in a single pipeline instead of
// N sequential round trips.
func (s *ChatHistoryStore) FetchPage(ctx context.Context, userId uuid.UUID, offset, limit int) ([]entity.ChatPreview, error) {
	ids, err := s.rdb.ZRevRange(ctx, userSessionsKey(userId), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}
	if len(ids) == 0 {
		return []entity.ChatPreview{}, nil
	}

	sessionIds := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.logger.Warn("ChatHistoryStore", "Skipping non-uuid index member", map[string]interface{}{
				"member": raw,
			})
			continue
		}
		sessionIds = append(sessionIds, id)
	}

	pipe := s.rdb.Pipeline()
	hashCmds := make([]*redis.MapStringStringCmd, len(sessionIds))
	promptCmds := make([]*redis.StringCmd, len(sessionIds))
	for i, id := range sessionIds {
		hashCmds[i] = pipe.HGetAll(ctx, sessionKey(id))
		promptCmds[i] = pipe.LIndex(ctx, sessionPromptsKey(id), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}

	previews := make([]entity.ChatPreview, 0, len(sessionIds))
	for i, id := range sessionIds {
		meta := hashCmds[i].Val()
		createdAt, err := time.Parse(time.RFC3339Nano, meta[hashFieldCreatedAt])
		if err != nil {
			// Index entry without a readable hash: treat as a malformed row
			// and keep serving the rest of the page.
			s.logger.Warn("ChatHistoryStore", "Skipping malformed session hash", map[string]interface{}{
				"session_id": id.String(),
			})
			continue
		}

		firstMessage := meta[hashFieldTitle]
		if firstMessage == "" {
			prompt, err := promptCmds[i].Result()
			if err == nil && prompt != "" {
				firstMessage = s.truncate(prompt)
			} else {
				firstMessage = constant.FallbackPreview
			}
		}

		previews = append(previews, entity.ChatPreview{
			Id:           id,
			FirstMessage: firstMessage,
			CreatedAt:    createdAt,
		})
	}
	return previews, nil
}

// RecordSession mirrors a newly created session into the index and its
// metadata hash, atomically.
func (s *ChatHistoryStore) RecordSession(ctx context.Context, session *entity.ChatSession) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, userSessionsKey(session.UserId), redis.Z{
			Score:  float64(session.CreatedAt.Unix()),
			Member: session.Id.String(),
		})
		pipe.HSet(ctx, sessionKey(session.Id),
			hashFieldTitle, session.Title,
			hashFieldCreatedAt, session.CreatedAt.Format(time.RFC3339Nano),
		)
		return nil
	})
	if err != nil {
		return &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}
	return nil
}

// RecordPrompt appends a user text prompt to the session's prompt list.
func (s *ChatHistoryStore) RecordPrompt(ctx context.Context, sessionId uuid.UUID, text string) error {
	if err := s.rdb.RPush(ctx, sessionPromptsKey(sessionId), text).Err(); err != nil {
		return &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}
	return nil
}

// RenameSession persists a user-assigned title so subsequent pages return
// it verbatim.
func (s *ChatHistoryStore) RenameSession(ctx context.Context, sessionId uuid.UUID, title string) error {
	if err := s.rdb.HSet(ctx, sessionKey(sessionId), hashFieldTitle, title).Err(); err != nil {
		return &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}
	return nil
}

// DeleteSession removes the index entry, metadata hash, and prompt list in
// one MULTI so readers never observe a half-deleted session. Deleting keys
// that are already gone is a no-op, which keeps the operation idempotent.
func (s *ChatHistoryStore) DeleteSession(ctx context.Context, userId, sessionId uuid.UUID) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, userSessionsKey(userId), sessionId.String())
		pipe.Del(ctx, sessionKey(sessionId), sessionPromptsKey(sessionId))
		return nil
	})
	if err != nil {
		return &apperror.BackendUnavailableError{Backend: "redis", Err: err}
	}
	return nil
}

func (s *ChatHistoryStore) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= s.maxLength {
		return text
	}
	return string(runes[:s.maxLength])
}
