package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"fin_api/internal/domain" // Domain errors
	"fin_api/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserIDKey is the context key holding the authenticated user's ID
const UserIDKey = "userID"

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrMissingCredential.Error()})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": domain.ErrInvalidCredential.Error()})
			return
		}
		c.Set(UserIDKey, claims.Subject) // Store userID in context
		c.Next()                         // Proceed to the next handler
	}
}

// UserID returns the authenticated user's ID set by JWTAuthMiddleware
func UserID(c *gin.Context) (string, bool) {
	userID, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := userID.(string)
	return id, ok && id != ""
}
