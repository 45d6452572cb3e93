package bootstrap

import (
	"context"
	"fmt"
	"log"

	"hotel-rooms-be/internal/config"
	"hotel-rooms-be/internal/controller"
	"hotel-rooms-be/internal/pkg/imagestore"
	"hotel-rooms-be/internal/pkg/logger"
	"hotel-rooms-be/internal/repository/contract"
	"hotel-rooms-be/internal/repository/memory"
	redisRepo "hotel-rooms-be/internal/repository/redis"
	"hotel-rooms-be/internal/repository/unitofwork"
	"hotel-rooms-be/internal/service"
	roomEvents "hotel-rooms-be/pkg/hotel/events"
	"hotel-rooms-be/pkg/llm/factory"
	pktNats "hotel-rooms-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger *logger.ZapLogger

	// Controllers
	RoomController   controller.IRoomController
	ChatController   controller.IChatController
	HealthController controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	ctx := context.Background()
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c.Logger = sysLogger

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	// 2. Image storage
	imageStore, err := newImageStore(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init image store: %w", err)
	}
	sysLogger.Info("BOOTSTRAP", "Image store ready", map[string]interface{}{"driver": cfg.Storage.Driver})

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	c.closers = append(c.closers, func() { pubSub.Close() })

	cleanupPublisher := service.NewPublisherService(service.ImageCleanupTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, service.ImageCleanupTopic, imageStore, sysLogger)

	// NATS is optional; without it room events are dropped
	var bus roomEvents.Bus
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("BOOTSTRAP", "Failed to connect to NATS, room events disabled", map[string]interface{}{
			"url":   cfg.App.NatsURL,
			"error": err.Error(),
		})
	} else {
		bus = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}
	roomEventPublisher := roomEvents.NewBusPublisher(bus, sysLogger)

	// 4. Chat
	historyRepo, err := c.newChatHistoryRepository(ctx, cfg, sysLogger)
	if err != nil {
		return nil, err
	}

	upstreamLogger := logger.NewIsolatedLogger(cfg.Chat.TrafficLogPath)
	llmProvider, err := factory.NewLLMProvider(cfg.Chat.UpstreamURL, cfg.Chat.Timeout, upstreamLogger)
	if err != nil {
		return nil, fmt.Errorf("init chat provider: %w", err)
	}
	log.Printf("[INFO] Using chat upstream: %s", cfg.Chat.UpstreamURL)

	// 5. Services
	roomService := service.NewRoomService(uowFactory, imageStore, roomEventPublisher, cleanupPublisher, sysLogger)
	chatService := service.NewChatService(llmProvider, historyRepo, sysLogger)

	// 6. Controllers
	c.RoomController = controller.NewRoomController(roomService, cfg.Storage.MaxSize)
	c.ChatController = controller.NewChatController(chatService)
	c.HealthController = controller.NewHealthController(sqlDB)

	return c, nil
}

// Close releases broker connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func newImageStore(ctx context.Context, cfg config.StorageConfig) (imagestore.Store, error) {
	switch cfg.Driver {
	case "", "local":
		return imagestore.NewLocalStore(cfg.UploadDir), nil
	case "s3":
		return imagestore.NewS3Store(ctx, imagestore.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func (c *Container) newChatHistoryRepository(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (contract.ChatHistoryRepository, error) {
	switch cfg.Chat.HistoryBackend {
	case "", "memory":
		return memory.NewChatHistoryRepository(cfg.Chat.HistoryTTL), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			sysLogger.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as address", map[string]interface{}{
				"error": err.Error(),
			})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
		return redisRepo.NewChatHistoryRepository(rdb, cfg.Chat.HistoryTTL), nil
	default:
		return nil, fmt.Errorf("unknown chat history backend %q", cfg.Chat.HistoryBackend)
	}
}
