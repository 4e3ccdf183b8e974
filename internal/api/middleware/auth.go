package middleware

import (
	"net/http"
	"strings"

	"recipe-ai/internal/core/auth"

	"github.com/gin-gonic/gin"
)

// 驗證通過的使用者放進 gin context 的鍵
const userContextKey = "user"

// Auth 驗證中間件，查驗 bearer token 並把使用者放進請求上下文
func Auth(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authService.Authenticate(c.Request.Context(), ExtractBearerToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// ExtractBearerToken 取出 Authorization 標頭的 bearer token，沒有時回空字串
func ExtractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUser 取得中間件放入的使用者，未經 Auth 的路由回 nil
func CurrentUser(c *gin.Context) *auth.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*auth.User)
	if !ok {
		return nil
	}
	return user
}
