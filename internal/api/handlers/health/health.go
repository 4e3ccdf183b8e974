package health

import (
	"net/http"
	"runtime"
	"time"

	"recipe-ai/internal/core/generator"
	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	config    *config.Config
	store     storage.RecipeStore
	generator *generator.Service
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, store storage.RecipeStore, gen *generator.Service) *Handler {
	return &Handler{
		config:    cfg,
		store:     store,
		generator: gen,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	// 構建響應
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	if h.generator != nil {
		response.Cache = h.generator.CacheStats()
	}

	// 記錄請求
	common.LogInfo("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，儲存層連不上時回報未就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.store != nil {
		if err := h.store.Ping(c.Request.Context()); err != nil {
			common.LogError("儲存層連線檢查失敗",
				zap.Error(err),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "storage unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
