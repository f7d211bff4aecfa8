package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"planera/internal/session"
	"planera/pkg/logger"
)

const userIDKey = "user_id"

// RequestID tags every request's context logger with a generated id and
// echoes it in the X-Request-ID response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Header("X-Request-ID", id)
		ctx := logger.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth accepts the session cookie or an Authorization: Bearer token
// and stores the authenticated user id on the context.
func RequireAuth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := ""
		if cookie, err := c.Cookie(session.CookieName); err == nil {
			token = cookie
		}
		if token == "" {
			const prefix = "Bearer "
			if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, prefix) {
				token = strings.TrimSpace(auth[len(prefix):])
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}
		userID, err := sessions.Verify(ctx, token)
		if err != nil {
			logger.Debug(ctx, "Session verification failed", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No autenticado"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUser returns the authenticated user id set by RequireAuth.
func CurrentUser(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}
