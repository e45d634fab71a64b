package user

import (
	"net/http"
	"strings"

	"github.com/mindbridge/mindbridge-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

const (
	// UserIDKey 是认证通过后，用户UUID在Gin上下文中的键名。
	UserIDKey = "userID"
)

// RequireAuthMiddleware 验证Authorization头中的Bearer令牌。
// 验证通过后将用户UUID放入Gin上下文，否则以401中断请求。
func RequireAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := token.ParseToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		// 令牌可能在用户被删除后仍然有效，因此额外确认用户仍然存在
		exists, err := Exists(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 从Gin上下文中取出认证中间件写入的用户UUID。
func CurrentUserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
