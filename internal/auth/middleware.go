package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key holding the authenticated user ID
const ContextUserKey = "auth.user_id"

// ContextUsernameKey is the gin context key holding the authenticated username
const ContextUsernameKey = "auth.username"

// Middleware returns a gin middleware that requires a valid bearer token
// and stores the caller's identity in the request context.
func Middleware(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid Authorization header format",
			})
			return
		}

		claims, err := m.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ContextUserKey, claims.UserID)
		c.Set(ContextUsernameKey, claims.Username)
		c.Next()
	}
}

// UserID returns the authenticated user ID from the context, or 0 when
// the request is anonymous.
func UserID(c *gin.Context) int64 {
	if v, ok := c.Get(ContextUserKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
