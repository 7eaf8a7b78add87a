package gateway

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/config"
	"github.com/AymenBoubertakh/IDL/internal/middleware"
	"github.com/AymenBoubertakh/IDL/internal/service"
)

// route maps a path prefix to the proxy for its downstream service.
type route struct {
	prefix  string
	handler gin.HandlerFunc
}

// NewRouter builds the gateway engine: recovery, logging, CORS, metrics
// and the edge enforcement filter in front of the downstream proxies.
func NewRouter(cfg *config.GatewayConfig, jwtService service.JWTService, metrics *middleware.Metrics, logger *zap.Logger) (*gin.Engine, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(logger))
	router.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.AllowedOrigins}))
	router.Use(metrics.Collect())

	// Gateway's own endpoints, registered before the auth filter so a
	// Prometheus scrape needs no token.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "api-gateway"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	filter := middleware.NewAuthFilter(jwtService, nil, logger)
	router.Use(filter.Apply())

	authProxy, err := newProxy(cfg.AuthServiceURL, logger)
	if err != nil {
		return nil, err
	}
	studentProxy, err := newProxy(cfg.StudentURL, logger)
	if err != nil {
		return nil, err
	}

	routes := []route{
		{prefix: "/api/auth", handler: authProxy},
		{prefix: "/api/students", handler: studentProxy},
		{prefix: "/api/universities", handler: studentProxy},
	}

	// Forwarding is a prefix match over the route table rather than
	// registered gin routes, so downstream path shapes stay opaque to
	// the gateway.
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, r := range routes {
			if strings.HasPrefix(path, r.prefix) {
				r.handler(c)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "no route for " + path, "status": http.StatusNotFound})
	})

	return router, nil
}
