package bootstrap

import (
	"context"
	"log"

	"ai-redesign-be/internal/config"
	"ai-redesign-be/internal/controller"
	"ai-redesign-be/internal/handler"
	"ai-redesign-be/internal/pkg/logger"
	"ai-redesign-be/internal/pkg/mailer"
	"ai-redesign-be/internal/repository/unitofwork"
	"ai-redesign-be/internal/service"
	"ai-redesign-be/internal/websocket"
	"ai-redesign-be/pkg/objectstore"

	pktNats "ai-redesign-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController       controller.IChatController
	ImageController      controller.IImageController
	PreferenceController controller.IPreferenceController
	PaymentController    controller.IPaymentController

	// Background services, exposed for main.go to run
	NotifierService INotifierRunner

	// WebSockets
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

// INotifierRunner lets main.go start the in-process consumer without
// importing the service package directly.
type INotifierRunner interface {
	Consume(ctx context.Context) error
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	var signer objectstore.Signer
	s3Store, err := objectstore.NewS3Store(context.Background(), objectstore.S3Config{
		Region:       cfg.Storage.Region,
		Endpoint:     cfg.Storage.Endpoint,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		UsePathStyle: cfg.Storage.UsePathStyle,
	})
	if err != nil {
		log.Printf("[WARN] Failed to initialize object store: %v", err)
	} else {
		signer = s3Store
	}

	// WebSocket hub
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 3. Services
	usageService := service.NewUsageService(rdb, uowFactory, cfg.Quota.FreeDailyRenderCap)
	chatService := service.NewChatService(uowFactory, usageService, natsPub, sysLogger)
	imageService := service.NewImageService(
		uowFactory,
		signer,
		cfg.Storage.SignedURLTTL,
		pubSub,
		cfg.App.RenderNotifyTopic,
		natsPub,
		sysLogger,
	)
	preferenceService := service.NewPreferenceService(uowFactory)
	paymentService := service.NewPaymentService(
		uowFactory,
		cfg.Billing.MidtransServerKey,
		cfg.Billing.Production,
		cfg.App.ClientURL,
		cfg.Quota.FreeDailyRenderCap,
		sysLogger,
	)

	notifierService := service.NewNotifierService(
		pubSub,
		cfg.App.RenderNotifyTopic,
		uowFactory,
		imageService,
		wsHub,
		emailService,
		sysLogger,
	)

	// Render intake worker, durable across restarts
	if natsSub != nil {
		renderConsumer := service.NewRenderConsumerService(imageService, natsSub, sysLogger)
		if err := renderConsumer.Start(); err != nil {
			log.Printf("[WARN] Failed to start render consumer: %v", err)
		}
	}

	notifHandler := handler.NewNotificationHandler(wsHub, sysLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		ChatController:       controller.NewChatController(chatService),
		ImageController:      controller.NewImageController(imageService, usageService),
		PreferenceController: controller.NewPreferenceController(preferenceService),
		PaymentController:    controller.NewPaymentController(paymentService),

		NotifierService: notifierService,
	}
}
