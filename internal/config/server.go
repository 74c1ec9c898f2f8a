package config

import (
	"ExpenseTracker/database/postgres"
	authHandler "ExpenseTracker/internal/api/auth/handler"
	authRepository "ExpenseTracker/internal/api/auth/repository"
	authService "ExpenseTracker/internal/api/auth/service"
	categoryHandler "ExpenseTracker/internal/api/category/handler"
	categoryRepository "ExpenseTracker/internal/api/category/repository"
	categoryService "ExpenseTracker/internal/api/category/service"
	expenseHandler "ExpenseTracker/internal/api/expense/handler"
	expenseRepository "ExpenseTracker/internal/api/expense/repository"
	expenseService "ExpenseTracker/internal/api/expense/service"
	reportHandler "ExpenseTracker/internal/api/report/handler"
	reportService "ExpenseTracker/internal/api/report/service"
	"ExpenseTracker/internal/middleware"
	"ExpenseTracker/pkg/bcrypt"
	"ExpenseTracker/pkg/redis"
	"ExpenseTracker/pkg/utils"
	"context"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	bcryptUtils bcrypt.IBcrypt
	redisServer redis.IRedis
	handlers    []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

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

// WithDatabase connects to PostgreSQL and applies pending migrations when DB_AUTO_MIGRATE is "true".
func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		if os.Getenv("DB_AUTO_MIGRATE") == "true" {
			if err := postgres.MigrateUp(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		s.db = db
		return nil
	}
}

// WithDB uses an existing connection instead of opening one.
func WithDB(db *sqlx.DB) ServerOption {
	return func(s *Server) error {
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

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, s.redisServer, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware)

	// Categories
	categoryRepo := categoryRepository.New(s.db, s.log)
	categoryServices := categoryService.NewCategoryService(s.log, categoryRepo, s.utils)
	categoryHandlers := categoryHandler.New(s.log, s.validator, s.middleware, categoryServices)

	// Expenses
	expenseRepo := expenseRepository.New(s.db, s.log)
	expenseServices := expenseService.NewExpenseService(s.log, expenseRepo, categoryRepo, s.utils)
	expenseHandlers := expenseHandler.New(s.log, s.validator, s.middleware, expenseServices)

	// Reports
	reportServices := reportService.NewReportService(s.log, expenseRepo)
	reportHandlers := reportHandler.New(s.log, s.validator, s.middleware, reportServices)

	s.handlers = append(s.handlers, authHandlers, categoryHandlers, expenseHandlers, reportHandlers)
}

// Mount installs the global middleware, then the health check and every registered handler under /api/v1.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	s.engine.Use(s.middleware.NewRateLimiter)

	s.setupHealthCheck()

	router := s.engine.Group("/api/v1")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		return err
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		status := "up"
		if s.db != nil {
			c, cancel := context.WithTimeout(ctx.UserContext(), 2*time.Second)
			defer cancel()
			if err := s.db.PingContext(c); err != nil {
				status = "down"
			}
		}

		return ctx.JSON(fiber.Map{
			"message":  "Server is Healthy!",
			"database": status,
		})
	})
}
