// Package routes defines HTTP routes for the services.
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/handlers"
	"github.com/AymenBoubertakh/IDL/internal/middleware"
	"github.com/AymenBoubertakh/IDL/internal/models"
)

// SetupAuth configures all HTTP routes for the auth service.
func SetupAuth(router *gin.Engine, authHandler *handlers.AuthHandler, healthHandler *handlers.HealthHandler, metrics *middleware.Metrics, logger *zap.Logger) {
	router.Use(middleware.RequestLogging(logger))
	router.Use(metrics.Collect())

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Health check
	router.GET("/health", healthHandler.Check)

	// Auth routes
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authHandler.Me)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/health", healthHandler.Check)
	}
}

// SetupStudent configures all HTTP routes for the student service.
// Mutations require the ADMIN role asserted by the gateway's trusted
// headers; reads are open to any forwarded request.
func SetupStudent(router *gin.Engine, studentHandler *handlers.StudentHandler, universityHandler *handlers.UniversityHandler, healthHandler *handlers.HealthHandler, metrics *middleware.Metrics, logger *zap.Logger) {
	router.Use(middleware.RequestLogging(logger))
	router.Use(metrics.Collect())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Check)

	adminOnly := middleware.RequireRole(models.RoleAdmin, logger)

	students := router.Group("/api/students")
	{
		students.GET("", studentHandler.List)
		students.GET("/:id", studentHandler.Get)
		students.GET("/email/:email", studentHandler.GetByEmail)
		students.GET("/search", studentHandler.Search)
		students.GET("/university/:universityId", studentHandler.ListByUniversity)
		students.GET("/university/name/:universityName", studentHandler.ListByUniversityName)
		students.POST("", adminOnly, studentHandler.Create)
		students.PUT("/:id", adminOnly, studentHandler.Update)
		students.PUT("/:id/university/:universityId", adminOnly, studentHandler.AssociateUniversity)
		students.DELETE("/:id", adminOnly, studentHandler.Delete)
	}

	universities := router.Group("/api/universities")
	{
		universities.GET("", universityHandler.List)
		universities.GET("/:id", universityHandler.Get)
		universities.GET("/search", universityHandler.Search)
		universities.GET("/location/:location", universityHandler.ListByLocation)
		universities.POST("", adminOnly, universityHandler.Create)
		universities.PUT("/:id", adminOnly, universityHandler.Update)
		universities.DELETE("/:id", adminOnly, universityHandler.Delete)
	}
}
