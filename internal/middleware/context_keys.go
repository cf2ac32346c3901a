package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the acting user's ID in the request
// context. Identity is established upstream (gateway or reverse proxy);
// this service only carries it through for audit fields.
const userIDKey = contextKey("userID")

// defaultUserID is recorded when no identity header is present, e.g. for
// local development or internal batch calls.
const defaultUserID = "system"

// UserScope reads the upstream identity header and stores the acting user ID
// in the request context.
func UserScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = defaultUserID
		}
		ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the request context.
func GetUserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return defaultUserID
	}
	return userID
}
