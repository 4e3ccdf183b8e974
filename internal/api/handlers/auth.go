package handlers

import (
	"net/http"

	"recipe-ai/internal/api/middleware"
	"recipe-ai/internal/core/auth"

	"github.com/gin-gonic/gin"
)

// AuthHandler 驗證狀態處理器
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler 創建驗證狀態處理器
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Status 回報目前 token 的驗證狀態
// 此路由不擋未登入的請求，查驗失敗回 authenticated:false 而非 401
func (h *AuthHandler) Status(c *gin.Context) {
	user, err := h.authService.Authenticate(c.Request.Context(), middleware.ExtractBearerToken(c))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"authenticated": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          user,
	})
}
