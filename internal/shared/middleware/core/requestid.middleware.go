package core

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHandler type spécifique pour Fx
type RequestIDHandler gin.HandlerFunc

// RequestIDMiddleware propage ou génère l'identifiant de corrélation X-Request-Id
func RequestIDMiddleware() RequestIDHandler {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-Id", requestID)
		c.Next()
	}
}
