package handlers

import "github.com/gin-gonic/gin"

// RespondError writes the shared error body shape used across services.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message, "status": status})
}
