package middleware

import (
	"net/http"
	"strings"

	"slotpoll/utils"

	"github.com/gin-gonic/gin"
)

// CreatorAuthMiddleware validates the creator JWT issued at poll creation
// and stores the creator ID in the context. Used for listing own polls.
func CreatorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		creatorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set("creatorID", creatorID)
		c.Next()
	}
}
