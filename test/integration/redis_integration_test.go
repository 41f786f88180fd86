package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/repository/rediscache"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisHistoryBackend(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("Skipping integration test: REDIS_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	rdb := redis.NewClient(opts)

	ctx := context.Background()
	require.NoError(t, rdb.Ping(ctx).Err())

	store := rediscache.NewChatHistoryStore(rdb, 100, testLogger{t})

	userId := uuid.New()
	newer := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Redis titled session",
		CreatedAt: time.Now(),
	}
	older := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: time.Now().Add(-time.Hour),
	}

	require.NoError(t, store.RecordSession(ctx, newer))
	require.NoError(t, store.RecordSession(ctx, older))
	require.NoError(t, store.RecordPrompt(ctx, older.Id, "older session first prompt"))

	t.Cleanup(func() {
		_ = store.DeleteSession(ctx, userId, newer.Id)
		_ = store.DeleteSession(ctx, userId, older.Id)
	})

	page, err := store.FetchPage(ctx, userId, 0, 30)
	require.NoError(t, err)
	require.Len(t, page, 2)

	assert.Equal(t, newer.Id, page[0].Id)
	assert.Equal(t, "Redis titled session", page[0].FirstMessage)
	assert.Equal(t, older.Id, page[1].Id)
	assert.Equal(t, "older session first prompt", page[1].FirstMessage)

	t.Run("rename wins over prompt", func(t *testing.T) {
		require.NoError(t, store.RenameSession(ctx, older.Id, "Renamed in place"))

		page, err := store.FetchPage(ctx, userId, 0, 30)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "Renamed in place", page[1].FirstMessage)
	})

	t.Run("delete removes session from the index", func(t *testing.T) {
		require.NoError(t, store.DeleteSession(ctx, userId, older.Id))

		page, err := store.FetchPage(ctx, userId, 0, 30)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, newer.Id, page[0].Id)

		// Deleting again is a no-op.
		assert.NoError(t, store.DeleteSession(ctx, userId, older.Id))
	})

	t.Run("offset past the end is an empty page", func(t *testing.T) {
		page, err := store.FetchPage(ctx, userId, 100, 30)
		assert.NoError(t, err)
		assert.Empty(t, page)
	})
}
