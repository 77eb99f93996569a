package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gestaocontabil/backend/docs"
	"github.com/gestaocontabil/backend/internal/api/handler"
	"github.com/gestaocontabil/backend/internal/api/middleware"
	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
	"github.com/gestaocontabil/backend/internal/core/service"
	"github.com/gestaocontabil/backend/internal/infrastructure/config"
	mongodb "github.com/gestaocontabil/backend/internal/infrastructure/db/mongo"
	redisdb "github.com/gestaocontabil/backend/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	files ports.FileStore,
	publisher ports.EventPublisher,
	cfg *config.Config,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gestao"))

	// --- Repositories ---
	accountRepo := mongodb.NewAccountRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	obligationRepo := mongodb.NewObligationRepository(db)
	documentRepo := mongodb.NewDocumentRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)
	sessionStore := redisdb.NewSessionStore(rdb)

	// --- Services ---
	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	accountService := service.NewAccountService(accountRepo, log)
	clientService := service.NewClientService(clientRepo, log)
	obligationService := service.NewObligationService(obligationRepo, clientRepo, log)
	documentService := service.NewDocumentService(documentRepo, clientRepo, files, log)
	notificationService := service.NewNotificationService(notificationRepo, publisher, log)
	dashboardService := service.NewDashboardService(clientRepo, obligationRepo, documentRepo, notificationRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessionStore, log)
	userHandler := handler.NewUserHandler(accountService)
	clientHandler := handler.NewClientHandler(clientService)
	obligationHandler := handler.NewObligationHandler(obligationService)
	documentHandler := handler.NewDocumentHandler(documentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	authRequired := middleware.Auth(authService)
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleContador)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/logout", authHandler.Logout)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	e.GET("/auth/validate", authHandler.Validate, authRequired)

	dashboard := e.Group("/dashboard", authRequired)
	dashboard.GET("/summary", dashboardHandler.Summary)

	notifications := e.Group("/notifications", authRequired)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/unread-count", notificationHandler.UnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)

	// Clients: every role reads, ADMIN and CONTADOR write, only ADMIN deletes.
	clients := e.Group("/clients", authRequired)
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.POST("", clientHandler.Create, staff)
	clients.PUT("/:id", clientHandler.Update, staff)
	clients.DELETE("/:id", clientHandler.Delete, adminOnly)

	// Obligations: every role reads and works them (status transitions);
	// creation and edits are ADMIN/CONTADOR, deletion ADMIN only.
	obligations := e.Group("/obligations", authRequired)
	obligations.GET("", obligationHandler.List)
	obligations.GET("/:id", obligationHandler.Get)
	obligations.PUT("/:id/status", obligationHandler.Transition)
	obligations.POST("", obligationHandler.Create, staff)
	obligations.PUT("/:id", obligationHandler.Update, staff)
	obligations.DELETE("/:id", obligationHandler.Delete, adminOnly)

	// Documents: every role uploads and reads, deletion is ADMIN/CONTADOR.
	documents := e.Group("/documents", authRequired)
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.GET("/:id/content", documentHandler.Download)
	documents.POST("", documentHandler.Upload)
	documents.DELETE("/:id", documentHandler.Delete, staff)

	// User administration: ADMIN only.
	users := e.Group("/users", authRequired, adminOnly)
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	return e
}
