package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yudhapratama/auth-service/cache"
	"github.com/yudhapratama/auth-service/config"
	"github.com/yudhapratama/auth-service/db"
	"github.com/yudhapratama/auth-service/internal/auth/handler"
	"github.com/yudhapratama/auth-service/internal/auth/notifier"
	repo "github.com/yudhapratama/auth-service/internal/auth/repository/postgres"
	redisstore "github.com/yudhapratama/auth-service/internal/auth/repository/redis"
	"github.com/yudhapratama/auth-service/internal/auth/service"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to init database: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("failed to init redis: %v", err)
	}
	defer redisClient.Close()

	userRepo := repo.NewPostgresRepository(dbPool)
	sessionStore := redisstore.NewSessionStore(redisClient)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := service.NewBcryptHasher()
	resetNotifier := notifier.NewLogNotifier(slogger)
	userService := service.NewUserService(userRepo, sessionStore, tokenService, hasher, resetNotifier, slogger)
	authHandler := handler.NewAuthHandler(userService, slogger)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	handler.RegisterRoutes(app, authHandler)

	slogger.Info("starting auth service", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
