package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askcaira/backend/utils"
)

// UserIDKey is where Auth stores the authenticated user id.
const UserIDKey = "user_id"

func Auth(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		claims, err := utils.ParseJWT(secret, issuer, t)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}
