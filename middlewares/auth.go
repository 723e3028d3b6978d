package middlewares

import (
	"net/http"
	"strings"

	"festa-pos/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware requires a Bearer token in the Authorization header.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return authenticate(secret, false)
}

// StreamAuthMiddleware also accepts ?token=, since EventSource cannot set
// headers. Use it only on SSE routes.
func StreamAuthMiddleware(secret string) gin.HandlerFunc {
	return authenticate(secret, true)
}

func authenticate(secret string, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok {
			tokenString = ""
		}
		if tokenString == "" && allowQuery {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}

		claims, err := utils.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextRole, claims.Role)
		c.Next()
	}
}

func RoleMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := utils.GetUserRole(c)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}
