package bootstrap

import (
	"context"
	"log"

	"ai-chat-history-be/internal/config"
	"ai-chat-history-be/internal/constant"
	"ai-chat-history-be/internal/controller"
	"ai-chat-history-be/internal/pkg/logger"
	"ai-chat-history-be/internal/repository/contract"
	"ai-chat-history-be/internal/repository/implementation"
	"ai-chat-history-be/internal/repository/memory"
	"ai-chat-history-be/internal/repository/rediscache"
	"ai-chat-history-be/internal/repository/unitofwork"
	"ai-chat-history-be/internal/service"
	"ai-chat-history-be/pkg/preview"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatHistoryController controller.IChatHistoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	loc := cfg.Location()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// 4. Domain components
	extractor := preview.NewExtractor(cfg.Chat.PreviewMaxLength)
	historyStore := rediscache.NewChatHistoryStore(rdb, cfg.Chat.PreviewMaxLength, sysLogger)
	previewCache := memory.NewPreviewCache(cfg.Chat.CacheTTL, loc)

	// Backend selection: both implementations honor the same page contract.
	var previewRepo contract.ChatPreviewRepository
	if cfg.Chat.HistoryBackend == "redis" {
		previewRepo = historyStore
		log.Printf("[INFO] Using Preview Backend: REDIS")
	} else {
		previewRepo = implementation.NewChatPreviewRepository(db, extractor, sysLogger)
		log.Printf("[INFO] Using Preview Backend: POSTGRES")
	}

	publisherService := service.NewPublisherService(constant.InvalidationTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.InvalidationTopic, previewCache, sysLogger)

	chatHistoryService := service.NewChatHistoryService(
		uowFactory,
		previewRepo,
		historyStore,
		previewCache,
		publisherService,
		sysLogger,
		cfg.Chat.PageSize,
	)

	// 5. Controllers
	return &Container{
		ChatHistoryController: controller.NewChatHistoryController(chatHistoryService),
		ConsumerService:       consumerService,
	}
}
