package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"appointme.backend/internal/config"
	"appointme.backend/internal/infrastructure/chatbot"
	"appointme.backend/internal/infrastructure/datasources/postgres"
	"appointme.backend/internal/infrastructure/jobs"
	"appointme.backend/internal/infrastructure/repositories"
	"appointme.backend/internal/interfaces/http/handlers"
	"appointme.backend/internal/interfaces/http/middleware"
	"appointme.backend/internal/interfaces/http/response"
	"appointme.backend/internal/usecases"
	"appointme.backend/pkg/jwt"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/metrics"
	"appointme.backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

var (
	loadDotenv   = godotenv.Load
	loadCfg      = config.Load
	initLog      = logger.Init
	initRedis    = redis.Init
	openDB       = postgres.OpenGorm
	newGenerator = chatbot.NewGeminiClient
	runServer    = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() { _ = redis.Close() }()
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database, cfg.Server.Env == "development")
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database")
	}

	m := metrics.New()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	// Both stay untyped nil when Redis is not wired so logout degrades to a no-op.
	var revoker usecases.TokenRevoker
	var revocationChecker middleware.RevocationChecker
	if client := redis.GetClient(); client != nil {
		denylist := redis.NewTokenDenylist(client)
		revoker = denylist
		revocationChecker = denylist
	}

	var generator usecases.TextGenerator
	if cfg.Chatbot.APIKey != "" {
		gemini, err := newGenerator(ctx, cfg.Chatbot.APIKey, cfg.Chatbot.Model)
		if err != nil {
			logger.Warn(ctx, "Chatbot generator unavailable, using canned answers", zap.Error(err))
		} else {
			defer gemini.Close()
			generator = gemini
		}
	}

	userRepo := repositories.NewUserRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	availabilityRepo := repositories.NewAvailabilityRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	pictureRepo := repositories.NewProfilePictureRepository(db)
	applicationRepo := repositories.NewProviderApplicationRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, revoker)
	adminAuthUsecase := usecases.NewAdminAuthUsecase(adminRepo, jwtService, revoker)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, serviceRepo, availabilityRepo, userRepo, notificationRepo, uow, m)
	serviceUsecase := usecases.NewServiceUsecase(serviceRepo, availabilityRepo, userRepo, uow)
	profileUsecase := usecases.NewProfileUsecase(userRepo, pictureRepo)
	applicationUsecase := usecases.NewProviderApplicationUsecase(applicationRepo, userRepo, notificationRepo, uow)
	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo)
	chatbotUsecase := usecases.NewChatbotUsecase(generator, cfg.Chatbot.Timeout, m)

	var reconcileJob *jobs.AvailabilityReconcileJob
	if cfg.Jobs.ReconcileEnabled {
		reconcileJob = jobs.NewAvailabilityReconcileJob(availabilityRepo, uow, m, cfg.Jobs.ReconcileSchedule)
		go func() {
			if err := reconcileJob.Start(ctx); err != nil {
				logger.Error(ctx, "Availability reconcile job failed to start", zap.Error(err))
			}
		}()
	}

	response.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(m))

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r, handlers.NewHealthHandler(sqlDB))
	registerMetricsRoute(r, m)
	registerAPIV1Routes(r, routeDeps{
		authHandler:                handlers.NewAuthHandler(authUsecase),
		adminAuthHandler:           handlers.NewAdminAuthHandler(adminAuthUsecase),
		bookingHandler:             handlers.NewBookingHandler(bookingUsecase),
		serviceHandler:             handlers.NewServiceHandler(serviceUsecase),
		profileHandler:             handlers.NewProfileHandler(profileUsecase),
		providerApplicationHandler: handlers.NewProviderApplicationHandler(applicationUsecase),
		notificationHandler:        handlers.NewNotificationHandler(notificationUsecase),
		chatbotHandler:             handlers.NewChatbotHandler(chatbotUsecase),
		authMiddleware:             middleware.AuthMiddleware(jwtService, revocationChecker),
		chatbotRateLimit: middleware.RateLimitMiddleware(
			middleware.NewIPRateLimiter(cfg.RateLimit.ChatbotPerMinute, cfg.RateLimit.ChatbotBurst),
		),
		adminSignup: cfg.Server.AdminSignupEnabled,
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case <-ctx.Done():
			return
		}
		logger.Info(ctx, "Shutting down server")
		if reconcileJob != nil {
			reconcileJob.Stop()
		}
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "AppointMe backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
