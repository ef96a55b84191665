package main

import (
	"context"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"usersvc/docs"
	"usersvc/internal/cache"
	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/handler"
	"usersvc/internal/middleware"
	"usersvc/internal/model"
	"usersvc/internal/repository"
	"usersvc/internal/router"
	"usersvc/internal/service"
)

// @title User Service API
// @version 1.0
// @description CRUD API for managing users.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.DBLogLevel)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("database handle: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping users table...")
		if err := gormDB.Migrator().DropTable(&model.User{}); err != nil {
			log.Printf("Warning: Failed to drop table (may not exist): %v", err)
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(sqlDB)

	router.Register(e, userHandler, healthHandler, newLimiter(cfg))

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	} else {
		docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// newLimiter picks the Redis limiter when REDIS_ADDR is reachable and falls back to per-process buckets.
func newLimiter(cfg *config.Config) middleware.Limiter {
	if cfg.RateLimitRPS <= 0 {
		log.Println("Rate limiting disabled")
		return nil
	}

	if cfg.RedisAddr != "" {
		client := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx); err != nil {
			log.Printf("Warning: Redis unavailable (%v), using in-process rate limiting", err)
			_ = client.Close()
		} else {
			log.Printf("Rate limiting through Redis at %s", cfg.RedisAddr)
			perMinute := int(math.Ceil(cfg.RateLimitRPS*60)) + cfg.RateLimitBurst
			return middleware.NewRedisLimiter(client, perMinute, time.Minute)
		}
	}
	return middleware.NewMemoryLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
}
