// Package main is the entry point for the student service.
package main

import (
	"fmt"
	"log"

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
)

func main() {
	// Load configuration
	cfg, err := config.LoadStudent()
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

	if err := db.AutoMigrate(&models.University{}, &models.Student{}); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize repositories
	studentRepo := repository.NewStudentRepository(db)
	universityRepo := repository.NewUniversityRepository(db)

	// Initialize services
	studentService := service.NewStudentService(studentRepo, universityRepo)
	universityService := service.NewUniversityService(universityRepo)

	// Initialize handlers
	studentHandler := handlers.NewStudentHandler(studentService, zlog)
	universityHandler := handlers.NewUniversityHandler(universityService, zlog)
	healthHandler := handlers.NewHealthHandler("student-service")

	// Setup router
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	metrics := middleware.NewMetrics("student-service", prometheus.DefaultRegisterer)
	routes.SetupStudent(router, studentHandler, universityHandler, healthHandler, metrics, zlog)

	// Start server
	zlog.Info("starting student service", zap.String("port", cfg.Port))
	if err := router.Run(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
