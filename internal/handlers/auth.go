// Package handlers contains HTTP request handlers for the services.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/service"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	jwtService  service.JWTService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, jwtService service.JWTService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new account and returns a token for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
			RespondError(c, http.StatusConflict, err.Error())
		default:
			h.logger.Error("registration failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
			RespondError(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	c.JSON(http.StatusOK, response)
}

// Login authenticates a user and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.logger.Warn("login rejected",
				zap.String("path", c.Request.URL.Path),
				zap.String("reason", "invalid_credentials"))
			RespondError(c, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
			return
		}
		h.logger.Error("login failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "login failed")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Me returns the profile of the token's subject. The token is verified
// again here; no claim is trusted without signature validation.
func (h *AuthHandler) Me(c *gin.Context) {
	token := extractToken(c)
	if token == "" {
		RespondError(c, http.StatusUnauthorized, "missing or invalid Authorization header")
		return
	}

	username, err := h.jwtService.ExtractUsername(token)
	if err != nil {
		h.logger.Warn("me rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("reason", err.Error()))
		RespondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), username)
	if err != nil {
		// A verified subject with no account indicates a deleted or
		// inconsistent user, not a client error worth distinguishing.
		h.logger.Warn("me subject not found", zap.String("path", c.Request.URL.Path))
		RespondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout is a stateless no-op: tokens are self-contained, the client
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	parts := strings.Split(bearerToken, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
