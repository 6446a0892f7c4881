package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carnage-ai/internal/pkg/jwtutil"
	"carnage-ai/internal/session"
	"carnage-ai/internal/transport/http/response"
)

const (
	ContextUserIDKey    = "user_id"
	ContextSessionIDKey = "session_id"
)

// SessionChecker is the slice of the session store the middleware needs.
type SessionChecker interface {
	Get(ctx context.Context, id string) (*session.Record, bool, error)
}

// Auth requires a Bearer JWT whose session record still exists server-side.
// On success the caller's user id and session id are placed on the context.
func Auth(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, http.StatusUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		record, ok, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "internal server error")
			c.Abort()
			return
		}
		if !ok || record.UserID != claims.UserID {
			response.Error(c, http.StatusUnauthorized, "session expired")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextSessionIDKey, claims.SessionID)
		c.Next()
	}
}
