package main

import (
	"context"
	"log"

	"github.com/chirag640/national-health-record-system-backend-sub001/config"
	"github.com/chirag640/national-health-record-system-backend-sub001/db"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/handler"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/notify"
	repo "github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/repository/postgres"
	redisrepo "github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/repository/redis"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/identity/service"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/logging"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/observability"
	"github.com/chirag640/national-health-record-system-backend-sub001/internal/sweeper"
	"github.com/gofiber/fiber/v2"
)

func main() {
	cfg := config.Load()
	logger := logging.NewDefault()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	redisClient, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	accountRepo := repo.NewAccountRepository(pool)
	sessionRepo := repo.NewSessionRepository(pool)
	consentRepo := repo.NewConsentRepository(pool)
	otpStore := redisrepo.NewOTPStore(redisClient)

	notifier := notify.NewLogNotifier(logger)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	otpService := service.NewOTPService(otpStore)
	authService := service.NewAuthService(accountRepo, sessionRepo, otpService,
		tokenService, notifier, logger, cfg.MaxActiveSessions)
	accountService := service.NewAccountService(accountRepo, sessionRepo, otpService,
		notifier, logger)

	authHandler := handler.NewAuthHandler(authService, accountService)
	middleware := handler.NewMiddleware(tokenService, consentRepo)

	sessionSweeper := sweeper.New(sessionRepo, logger)
	if err := sessionSweeper.Start(cfg.SweepSchedule); err != nil {
		log.Fatalf("sweeper: %v", err)
	}
	defer sessionSweeper.Stop()

	go func() {
		if err := observability.Serve(cfg.MetricsPort); err != nil {
			logger.Error(ctx, "metrics server stopped", "err", err)
		}
	}()

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, middleware)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
