package bootstrap

import (
	"time"

	"chatshot-be/internal/config"
	"chatshot-be/internal/controller"
	"chatshot-be/internal/pkg/logger"
	"chatshot-be/internal/pkg/serverutils"
	"chatshot-be/internal/repository/implementation"
	"chatshot-be/internal/repository/memory"
	"chatshot-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Middleware
	AuthRequired fiber.Handler

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Repositories
	credentialRepo := implementation.NewCredentialRepository(cfg.Storage.DataDir)
	storeRepo := implementation.NewStoreRepository(cfg.Storage.DataDir)
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Auth.SessionTTLMinutes) * time.Minute)

	// 4. Services
	authService := service.NewAuthService(credentialRepo, storeRepo, sessionRepo, pubSub, sysLogger, cfg.Auth)
	chatService := service.NewChatService(sessionRepo, storeRepo, pubSub, sysLogger)
	auditService := service.NewAuditService(pubSub, sysLogger)

	// 5. Controllers
	authController := controller.NewAuthController(authService)
	chatController := controller.NewChatController(chatService)

	return &Container{
		AuthController: authController,
		ChatController: chatController,
		AuthRequired:   serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret, sessionRepo),
		AuditService:   auditService,
		Logger:         sysLogger,
	}
}
