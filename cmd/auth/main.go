// Package main is the entry point for the auth service.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/config"
	"github.com/AymenBoubertakh/IDL/internal/handlers"
	"github.com/AymenBoubertakh/IDL/internal/middleware"
	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/repository"
	"github.com/AymenBoubertakh/IDL/internal/routes"
	"github.com/AymenBoubertakh/IDL/internal/service"
	"github.com/AymenBoubertakh/IDL/pkg/database"
	"github.com/AymenBoubertakh/IDL/pkg/logger"
	"github.com/AymenBoubertakh/IDL/pkg/redis"
)

const (
	loginMaxAttempts = 10
	loginWindow      = 5 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.LoadAuth()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// Initialize logger
	zlog, err := logger.New(logger.Config{
		Level: cfg.LogLevel,
		Dev:   cfg.Environment == "development",
	})
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.Connect(database.PostgresConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize Redis-backed login limiter
	redisClient, err := redis.NewClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	limiter := service.NewLoginLimiter(redisClient, loginMaxAttempts, loginWindow)

	// Initialize repository
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	jwtService, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		zlog.Fatal("failed to initialize jwt service", zap.Error(err))
	}
	authService := service.NewAuthService(userRepo, jwtService, limiter, zlog)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, jwtService, zlog)
	healthHandler := handlers.NewHealthHandler("auth-service")

	// Setup router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	metrics := middleware.NewMetrics("auth-service", prometheus.DefaultRegisterer)
	routes.SetupAuth(router, authHandler, healthHandler, metrics, zlog)

	// Start server
	zlog.Info("starting auth service", zap.String("port", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
