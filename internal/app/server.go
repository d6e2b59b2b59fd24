// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"backdesk-service/internal/config"
	"backdesk-service/internal/db"
	"backdesk-service/internal/events"
	assignmentHandler "backdesk-service/internal/handlers/assignment"
	authHandler "backdesk-service/internal/handlers/auth"
	eventsHandler "backdesk-service/internal/handlers/events"
	"backdesk-service/internal/middleware"
	"backdesk-service/internal/pkg/jwt"
	"backdesk-service/internal/pkg/limiter"
	"backdesk-service/internal/repository/postgres"
	assignmentService "backdesk-service/internal/service/assignment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	database *postgres.DB
	cancel   context.CancelFunc
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	database, err := postgres.NewDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.database = database
	pool := database.Pool()

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Rate Limiter -----
	rateLimiter := limiter.NewRateLimiter(redisClient).
		WithLimits(s.cfg.TransitionRateLimit, s.cfg.TransitionRateWindow)

	// ----- Repositories -----
	ownershipRepo := postgres.NewOwnershipRepository(pool)
	assistantRepo := postgres.NewAssistantRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	// ----- Events Hub -----
	hub := events.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	engine := assignmentService.NewService(
		ownershipRepo,
		assistantRepo,
		auditRepo,
		assignmentService.NewDefaultPolicy(),
		logger,
	)
	engine.SetNotifier(hub)

	// ----- Handlers -----
	assignmentHandlerInst := assignmentHandler.NewAssignmentHandler(engine)
	authHandlerInst := authHandler.NewAuthHandler(jwtManager, assistantRepo, logger)
	wsHandlerInst := eventsHandler.NewWebSocketHandler(hub, jwtManager.Verifier, s.cfg.CORSOrigins, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager.Verifier)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)

	// ----- Router -----
	handlers := &Handlers{
		AssignmentHandler: assignmentHandlerInst,
		AuthHandler:       authHandlerInst,
		WSHandler:         wsHandlerInst,
		AuthMiddleware:    authMiddleware,
		RateLimiter:       rateLimiter,
		Logger:            logger,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// Shutdown releases the server's long-lived resources.
func (s *Server) Shutdown() {
	if s.cancel != nil {
		s.cancel()
	}
	if s.database != nil {
		s.database.Close()
	}
}
