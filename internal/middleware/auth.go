package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/service"
)

const bearerPrefix = "Bearer "

// DefaultPublicPaths are the route prefixes reachable without a token:
// the auth endpoints themselves and health checks.
var DefaultPublicPaths = []string{
	"/api/auth/login",
	"/api/auth/register",
	"/api/auth/logout",
	"/api/auth/health",
	"/health",
}

// AuthFilter is the edge enforcement filter. It classifies every request
// as public or protected, verifies bearer tokens on protected paths, and
// injects the trusted identity headers before the request is forwarded.
// It holds no per-request state beyond the immutable codec and allowlist,
// so any number of requests can be verified concurrently.
type AuthFilter struct {
	jwtService  service.JWTService
	publicPaths []string
	logger      *zap.Logger
}

// NewAuthFilter creates a new AuthFilter. A nil publicPaths uses
// DefaultPublicPaths.
func NewAuthFilter(jwtService service.JWTService, publicPaths []string, logger *zap.Logger) *AuthFilter {
	if publicPaths == nil {
		publicPaths = DefaultPublicPaths
	}
	return &AuthFilter{
		jwtService:  jwtService,
		publicPaths: publicPaths,
		logger:      logger,
	}
}

// Apply returns the gin middleware enforcing the filter.
func (f *AuthFilter) Apply() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if f.isPublicPath(path) {
			c.Next()
			return
		}

		// A fault while decoding attacker-controlled input must never
		// escape this boundary as anything but a 401.
		defer func() {
			if r := recover(); r != nil {
				f.logger.Error("token handling panic", zap.String("path", path), zap.Any("panic", r))
				f.reject(c, "Token validation failed")
			}
		}()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, bearerPrefix) {
			f.logger.Warn("missing or invalid Authorization header", zap.String("path", path))
			f.reject(c, "Missing or invalid Authorization header")
			return
		}

		token := strings.TrimPrefix(authHeader, bearerPrefix)

		claims, err := f.jwtService.ValidateToken(token)
		if err != nil {
			f.logger.Warn("token rejected",
				zap.String("path", path),
				zap.String("reason", err.Error()))
			f.reject(c, "Invalid or expired token")
			return
		}

		// Strip any client-supplied identity headers before injecting
		// the verified assertion.
		c.Request.Header.Del(HeaderUserID)
		c.Request.Header.Del(HeaderUsername)
		c.Request.Header.Del(HeaderUserRole)

		c.Request.Header.Set(HeaderUserID, strconv.FormatInt(claims.UserID, 10))
		c.Request.Header.Set(HeaderUsername, claims.Subject)
		c.Request.Header.Set(HeaderUserRole, claims.Role.String())

		c.Next()
	}
}

func (f *AuthFilter) isPublicPath(path string) bool {
	for _, prefix := range f.publicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (f *AuthFilter) reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":  message,
		"status": http.StatusUnauthorized,
	})
}
