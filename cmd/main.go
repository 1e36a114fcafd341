package main

import (
	"context"
	"log"
	"time"

	"github.com/firstroundai/interview-server/internal/config"
	"github.com/firstroundai/interview-server/internal/database"
	"github.com/firstroundai/interview-server/internal/handler"
	"github.com/firstroundai/interview-server/internal/middleware"
	"github.com/firstroundai/interview-server/internal/repository"
	"github.com/firstroundai/interview-server/internal/routes"
	"github.com/firstroundai/interview-server/internal/service"
	"github.com/firstroundai/interview-server/pkg/ai"
	"github.com/firstroundai/interview-server/pkg/jwt"
	"github.com/firstroundai/interview-server/pkg/logger"
	"github.com/firstroundai/interview-server/pkg/tts"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	zapLogger, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		zapLogger.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	jwtManager := jwt.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	candidateRepo := repository.NewCandidateRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	usageRepo := repository.NewTokenUsageRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	settingsService := service.NewSettingsService(settingsRepo, cacheRepo, auditRepo, zapLogger)
	usageRecorder := service.NewUsageRecorder(usageRepo, zapLogger)

	gateway := ai.NewGateway(settingsService, time.Duration(cfg.Provider.TimeoutSeconds)*time.Second, zapLogger)
	if cfg.OpenAI.APIKey != "" {
		gateway.Register(ai.ProviderOpenAI, ai.NewOpenAIBackend(cfg.OpenAI.APIKey, cfg.OpenAI.Model, usageRecorder))
	}
	if cfg.Gemini.APIKey != "" {
		geminiBackend, err := ai.NewGeminiBackend(cfg.Gemini.APIKey, cfg.Gemini.Model, usageRecorder)
		if err != nil {
			zapLogger.Warn("gemini backend unavailable", zap.Error(err))
		} else {
			gateway.Register(ai.ProviderGemini, geminiBackend)
		}
	}

	ttsClient := tts.NewClient(tts.Config{
		APIKey:  cfg.ElevenLabs.APIKey,
		VoiceID: cfg.ElevenLabs.VoiceID,
	})

	emailService := service.NewEmailService(cfg.SMTP, cfg.App.FrontendURL)
	resumeService := service.NewResumeService(zapLogger)
	interviewService := service.NewInterviewService(candidateRepo, interviewRepo, answerRepo, evaluationRepo, gateway, zapLogger)
	reportService := service.NewReportService(interviewService)
	authService := service.NewAuthService(userRepo, candidateRepo, invitationRepo, jwtManager, zapLogger)
	adminService := service.NewAdminService(candidateRepo, interviewRepo, evaluationRepo, userRepo, auditRepo, usageRepo, invitationRepo, cacheRepo, emailService, zapLogger)

	if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		zapLogger.Fatal("failed to seed admin account", zap.Error(err))
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)

	authHandler := handler.NewAuthHandler(authService)
	interviewHandler := handler.NewInterviewHandler(interviewService, resumeService, reportService)
	adminHandler := handler.NewAdminHandler(adminService, settingsService)
	ttsHandler := handler.NewTTSHandler(ttsClient, settingsService)

	app := fiber.New(fiber.Config{
		AppName:      "FirstRound AI API",
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
		AllowCredentials: false,
	}))

	routes.Setup(app, routes.Handlers{
		Auth:      authHandler,
		Interview: interviewHandler,
		Admin:     adminHandler,
		TTS:       ttsHandler,
	}, routes.Middlewares{
		Auth: authMiddleware,
	})

	zapLogger.Info("server starting", zap.String("port", cfg.App.Port))
	if err := app.Listen(":" + cfg.App.Port); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
