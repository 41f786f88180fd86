package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/entity"
	"ai-chat-history-be/internal/repository/implementation"
	"ai-chat-history-be/internal/repository/unitofwork"
	"ai-chat-history-be/pkg/database"
	"ai-chat-history-be/pkg/preview"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{ t *testing.T }

func (l testLogger) Debug(module, message string, details map[string]interface{}) {
	l.t.Logf("[DEBUG] %s: %s %v", module, message, details)
}
func (l testLogger) Info(module, message string, details map[string]interface{}) {
	l.t.Logf("[INFO] %s: %s %v", module, message, details)
}
func (l testLogger) Warn(module, message string, details map[string]interface{}) {
	l.t.Logf("[WARN] %s: %s %v", module, message, details)
}
func (l testLogger) Error(module, message string, details map[string]interface{}) {
	l.t.Logf("[ERROR] %s: %s %v", module, message, details)
}
func (l testLogger) Sync() error { return nil }

func TestPostgresPreviewBackend(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	assert.NotNil(t, uow.ChatSessionRepository())
	assert.NotNil(t, uow.ChatFragmentRepository())
	assert.NotNil(t, uow.ChatEmbeddingRepository())

	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	userId := uuid.New()

	// One titled session, one relying on its first user prompt.
	titled := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Integration titled session",
		CreatedAt: time.Now(),
	}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, titled))

	untitled := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, untitled))
	require.NoError(t, uow.ChatFragmentRepository().Create(ctx, &entity.ChatFragment{
		Id:            uuid.New(),
		ChatSessionId: untitled.Id,
		Role:          constant.ChatFragmentRoleUser,
		Kind:          constant.ChatFragmentKindText,
		Chat:          "first prompt of the untitled session",
		CreatedAt:     time.Now(),
	}))

	t.Cleanup(func() {
		_ = uow.ChatFragmentRepository().DeleteByChatSessionId(ctx, untitled.Id)
		_ = uow.ChatSessionRepository().Delete(ctx, titled.Id)
		_ = uow.ChatSessionRepository().Delete(ctx, untitled.Id)
	})

	repo := implementation.NewChatPreviewRepository(gormDB, preview.NewExtractor(100), testLogger{t})

	page, err := repo.FetchPage(ctx, userId, 0, 30)
	require.NoError(t, err)
	require.Len(t, page, 2)

	// Newest first, title verbatim, then first user text.
	assert.Equal(t, titled.Id, page[0].Id)
	assert.Equal(t, "Integration titled session", page[0].FirstMessage)
	assert.Equal(t, untitled.Id, page[1].Id)
	assert.Equal(t, "first prompt of the untitled session", page[1].FirstMessage)

	t.Run("other users see nothing", func(t *testing.T) {
		page, err := repo.FetchPage(ctx, uuid.New(), 0, 30)
		assert.NoError(t, err)
		assert.Empty(t, page)
	})
}
