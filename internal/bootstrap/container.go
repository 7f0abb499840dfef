package bootstrap

import (
	"context"
	"log"
	"time"

	"gradaid-be/internal/config"
	"gradaid-be/internal/controller"
	"gradaid-be/internal/handler"
	"gradaid-be/internal/pkg/clock"
	"gradaid-be/internal/pkg/logger"
	"gradaid-be/internal/pkg/mailer"
	"gradaid-be/internal/repository/unitofwork"
	"gradaid-be/internal/service"
	"gradaid-be/internal/websocket"
	"gradaid-be/pkg/llm/factory"

	pkgNats "gradaid-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	CreditController      controller.ICreditController
	UniversityController  controller.IUniversityController
	ApplicationController controller.IApplicationController
	DocumentController    controller.IDocumentController
	DashboardController   controller.IDashboardController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ReminderService service.IReminderService

	// WebSockets & Feed
	FeedHandler  *handler.FeedHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	clk := clock.System()

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.ClientURL,
	)

	// 2. Event Bus (in-process feed)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	feedPublisher := service.NewFeedPublisher(pubSub)

	// LLM Provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.HuggingFaceKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pkgNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	creditService := service.NewCreditService(uowFactory, clk, sysLogger, feedPublisher)
	activityService := service.NewActivityService(uowFactory, clk, feedPublisher)
	authService := service.NewAuthService(uowFactory, cfg, clk, sysLogger, natsPub)
	userService := service.NewUserService(uowFactory, clk, feedPublisher)
	universityService := service.NewUniversityService(uowFactory)
	applicationService := service.NewApplicationService(uowFactory, clk, sysLogger, feedPublisher)
	documentService := service.NewDocumentService(uowFactory, creditService, llmProvider, emailService, cfg, clk, sysLogger, feedPublisher)
	dashboardService := service.NewDashboardService(uowFactory, creditService, activityService, clk)
	reminderService := service.NewReminderService(uowFactory, emailService, clk, sysLogger)

	var consumerService service.IConsumerService
	if natsSub != nil {
		consumerService = service.NewConsumerService(natsSub, creditService, sysLogger)
	}

	// Feed bridge: watermill topic -> websocket hub
	feedHandler := handler.NewFeedHandler(wsHub, pubSub, wsLogger)
	if err := feedHandler.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start feed handler: %v", err)
	}

	// Deadline reminder sweep runs hourly
	reminderService.Start(context.Background(), time.Hour)

	// 4. Controllers
	return &Container{
		AuthController:        controller.NewAuthController(authService),
		UserController:        controller.NewUserController(userService),
		CreditController:      controller.NewCreditController(creditService),
		UniversityController:  controller.NewUniversityController(universityService),
		ApplicationController: controller.NewApplicationController(applicationService),
		DocumentController:    controller.NewDocumentController(documentService),
		DashboardController:   controller.NewDashboardController(dashboardService, activityService),

		ConsumerService: consumerService,
		ReminderService: reminderService,

		FeedHandler:  feedHandler,
		WebSocketHub: wsHub,
	}
}
