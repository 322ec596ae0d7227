package config

import (
	"IntentBridge/database/postgres"
	conversationHandler "IntentBridge/internal/api/conversation/handler"
	conversationRepository "IntentBridge/internal/api/conversation/repository"
	conversationService "IntentBridge/internal/api/conversation/service"
	intentHandler "IntentBridge/internal/api/intent/handler"
	intentService "IntentBridge/internal/api/intent/service"
	"IntentBridge/internal/middleware"
	"IntentBridge/pkg/dialogflow"
	"IntentBridge/pkg/redis"
	"IntentBridge/pkg/utils"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	handlers       []handler
	redisServer    redis.IRedis
	agent          *dialogflow.Client
	intentCacheTTL time.Duration
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		intentCacheTTL: 10 * time.Minute,
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.agent == nil {
		return nil, fmt.Errorf("dialogflow client is required")
	}
	if server.middleware == nil {
		return nil, fmt.Errorf("middleware is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to Postgres and migrates the schema. Without DB_HOST the option is a
// no-op and query history is disabled.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if !postgres.Enabled() {
			if s.log != nil {
				s.log.Warn("DB_HOST not set, query history disabled")
			}
			return nil
		}

		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := postgres.Migrate(ctx, db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithIntentCacheTTL(ttl time.Duration) ServerOption {
	return func(s *Server) error {
		if ttl <= 0 {
			return fmt.Errorf("intent cache ttl must be positive, got %v", ttl)
		}
		s.intentCacheTTL = ttl
		return nil
	}
}

// WithDialogflowClient builds the agent client from DIALOGFLOW_* variables.
func WithDialogflowClient() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before dialogflow client")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := dialogflow.New(ctx, dialogflow.ConfigFromEnv(), s.log)
		if err != nil {
			s.log.Errorf("Failed to create dialogflow client: %v", err)
			return fmt.Errorf("failed to create dialogflow client: %w", err)
		}
		s.agent = client
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Intent Domain
	intentServices := intentService.NewIntentService(s.log, s.agent, s.redisServer, s.intentCacheTTL)
	intentHandlers := intentHandler.New(s.log, s.validator, s.middleware, intentServices)

	// Conversation Domain
	var conversationRepo conversationRepository.Repository
	if s.db != nil {
		conversationRepo = conversationRepository.New(s.db, s.log)
	}
	conversationServices := conversationService.NewConversationService(s.log, s.agent, intentServices, conversationRepo, s.utils)
	conversationHandlers := conversationHandler.New(s.log, s.validator, s.middleware, conversationServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, intentHandlers, conversationHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the listener and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
			"project": s.agent.ProjectID(),
		})
	})
}
