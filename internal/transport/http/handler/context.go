package handler

import (
	"github.com/gin-gonic/gin"

	"carnage-ai/internal/transport/http/middleware"
)

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func getSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionIDAny, exists := c.Get(middleware.ContextSessionIDKey)
	if !exists {
		return "", false
	}
	sessionID, ok := sessionIDAny.(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}
