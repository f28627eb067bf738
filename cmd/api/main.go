// @title Exam Paper Generator API
// @version 1.0
// @description Upload documents and generate a styled exam paper PDF from them.
// @host localhost:8080
// @BasePath /api
// @schemes http https
package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/khadijah-Shabir/exam-paper-generator/internal/adapter/completion"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/config"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/extractor"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/handler"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/logger"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/middleware"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/renderer"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/service"
	"github.com/khadijah-Shabir/exam-paper-generator/internal/validation"

	_ "github.com/khadijah-Shabir/exam-paper-generator/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Refuse to start without the completion API key; no network call is
	// ever attempted with a missing credential.
	if err := cfg.ValidateCredentials(); err != nil {
		appLogger.Fatal("Missing credential", zap.Error(err))
	}

	completionClient, err := completion.NewGroqClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create completion client", zap.Error(err))
	}

	examService := service.NewExamService(extractor.New(), completionClient, renderer.New(), cfg)
	examHandler := handler.NewExamHandler(examService, validation.NewValidator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", examHandler.Health)

	apiGroup := app.Group("/api")
	apiGroup.Post("/papers", examHandler.GeneratePaper)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown failed", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
