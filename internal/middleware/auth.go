package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fincontrol/internal/services"
)

// SessionTokenHeader carries the opaque session token issued at login.
const SessionTokenHeader = "X-Session-Token"

// SessionAuth returns a Gin middleware that validates the session token
// header against the active session. Requests with a missing, unknown, or
// expired token are rejected before reaching the handler.
func SessionAuth(sessions services.SessionServicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session token is required"})
			c.Abort()
			return
		}

		if _, err := sessions.Validate(token, time.Now()); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			c.Abort()
			return
		}

		c.Next()
	}
}
