// Package middleware provides HTTP middleware shared by the gateway and
// the resource services.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AymenBoubertakh/IDL/internal/models"
)

// Trusted identity headers. The gateway is the only party permitted to
// set these; it strips any inbound copies before injecting its own.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUsername = "X-User-Username"
	HeaderUserRole = "X-User-Role"
)

// Identity is the trusted (user id, username, role) triple attached to a
// request by the gateway after token verification.
type Identity struct {
	UserID   int64
	Username string
	Role     models.Role
}

// IdentityFromRequest reads the trusted identity headers. The second
// return value is false when the headers are absent or unparsable.
func IdentityFromRequest(c *gin.Context) (Identity, bool) {
	username := c.GetHeader(HeaderUsername)
	role := models.Role(c.GetHeader(HeaderUserRole))
	if username == "" || !role.Valid() {
		return Identity{}, false
	}

	userID, err := strconv.ParseInt(c.GetHeader(HeaderUserID), 10, 64)
	if err != nil {
		return Identity{}, false
	}

	return Identity{UserID: userID, Username: username, Role: role}, true
}

// RequireRole guards an endpoint behind the given role. It trusts the
// identity headers verbatim; the gateway is the sole entry point into the
// resource tier.
func RequireRole(role models.Role, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromRequest(c)
		if !ok || identity.Role != role {
			logger.Warn("access denied",
				zap.String("path", c.Request.URL.Path),
				zap.String("required_role", role.String()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":  "Access denied: " + role.String() + " role required",
				"status": http.StatusForbidden,
			})
			return
		}
		c.Next()
	}
}
