package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Keys for the authenticated identity in the request context.
const (
	userIDKey    = contextKey("userID")
	sessionIDKey = contextKey("sessionID")
)

// WithIdentity returns a copy of ctx carrying the authenticated user and session.
func WithIdentity(ctx context.Context, userID, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userIDKey)
}

// GetSessionIDFromContext retrieves the session ID the request's token was issued for.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), sessionIDKey)
}

func stringFromCtx(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
