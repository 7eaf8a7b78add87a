// Package main is the entry point for the API gateway.
package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/config"
	"github.com/AymenBoubertakh/IDL/internal/gateway"
	"github.com/AymenBoubertakh/IDL/internal/middleware"
	"github.com/AymenBoubertakh/IDL/internal/service"
	"github.com/AymenBoubertakh/IDL/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadGateway()
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

	// The gateway only verifies tokens; it shares the signing secret and
	// claim schema with the auth service, nothing else.
	jwtService, err := service.NewJWTService(cfg.JWTSecret, 0)
	if err != nil {
		zlog.Fatal("failed to initialize jwt service", zap.Error(err))
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := middleware.NewMetrics("api-gateway", prometheus.DefaultRegisterer)
	router, err := gateway.NewRouter(cfg, jwtService, metrics, zlog)
	if err != nil {
		zlog.Fatal("failed to build gateway router", zap.Error(err))
	}

	zlog.Info("starting api gateway", zap.String("port", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
