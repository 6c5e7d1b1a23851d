package middleware

import (
	"net/http"
	"strings"

	"digibook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthAdminMiddleware accepts HS256 bearer tokens carrying role=admin.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		if role != utils.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Unauthorized admin access"})
			return
		}

		c.Set("adminID", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
