package api

import (
	"context"
	"net/http"
	"time"

	"recipe-ai/internal/api/handlers"
	"recipe-ai/internal/api/handlers/health"
	recipeHandler "recipe-ai/internal/api/handlers/recipe"
	"recipe-ai/internal/api/middleware"
	"recipe-ai/internal/core/auth"
	"recipe-ai/internal/core/generator"
	recipeService "recipe-ai/internal/core/recipe"
	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求超時設置
const timeoutDuration = 120 * time.Second

// Services 路由需要的服務集合
type Services struct {
	Recipe    *recipeService.Service
	Auth      *auth.Service
	Generator *generator.Service
	Store     storage.RecipeStore
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svcs Services) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Request.MaxBodyBytes))

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
		}
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, svcs.Store, svcs.Generator)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")

	// 重複請求去重
	api.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 驗證狀態，不擋未登入請求
	authHandler := handlers.NewAuthHandler(svcs.Auth)
	api.GET("/auth/status", authHandler.Status)

	// 食譜路由，一律要求 bearer token
	recipes := api.Group("/recipes")
	recipes.Use(middleware.Auth(svcs.Auth))
	{
		handler := recipeHandler.NewHandler(svcs.Recipe)
		recipes.POST("/generate", handler.HandleGenerate)
		recipes.POST("", handler.HandleSave)
		recipes.GET("", handler.HandleList)
		recipes.GET("/:id", handler.HandleGet)
		recipes.DELETE("/:id", handler.HandleDelete)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Request.MaxBodyBytes),
	)

	return router
}
