package recipe

import (
	"errors"
	"net/http"

	"recipe-ai/internal/api/middleware"
	recipeService "recipe-ai/internal/core/recipe"
	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理器
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理器
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// generateRequest 生成請求，菜名與食材皆可省略，兩者皆空時隨機生成
type generateRequest struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

// saveRequest 儲存請求
type saveRequest struct {
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
	Content     string `json:"content"`
}

// HandleGenerate 生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req.Name, req.Ingredients)
	if err != nil {
		common.LogError("食譜生成失敗",
			zap.String("name", req.Name),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"text":    result.Text,
		"recipe":  result.Recipe,
	})
}

// HandleSave 儲存食譜
func (h *Handler) HandleSave(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}
	user := middleware.CurrentUser(c)
	stored, err := h.service.Save(c.Request.Context(), user.ID, req.Name, req.Ingredients, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"recipeId": stored.ID,
		"message":  "Recipe saved successfully",
	})
}

// HandleList 列出食譜，支援 q 搜尋與 sort 排序
func (h *Handler) HandleList(c *gin.Context) {
	user := middleware.CurrentUser(c)
	query := storage.ListQuery{
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
	}

	recipes, err := h.service.List(c.Request.Context(), user.ID, query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	user := middleware.CurrentUser(c)

	recipe, err := h.service.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  recipe,
	})
}

// HandleDelete 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.service.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe deleted",
	})
}

// respondError 統一錯誤回應，領域錯誤帶出對應狀態碼
func respondError(c *gin.Context, err error) {
	switch {
	case common.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, storage.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Recipe already exists.",
		})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
		})
	default:
		var customErr *common.CustomError
		if errors.As(err, &customErr) {
			c.JSON(customErr.Status, gin.H{
				"error": customErr.Message,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
