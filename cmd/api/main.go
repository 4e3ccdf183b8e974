package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-ai/internal/api"
	"recipe-ai/internal/core/auth"
	"recipe-ai/internal/core/generator"
	recipeService "recipe-ai/internal/core/recipe"
	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.String("webhook_url", cfg.Webhook.URL),
		zap.String("gemini_model", cfg.Gemini.Model),
		zap.String("redis_addr", cfg.Redis.Addr),
	)

	// 初始化儲存層
	store, err := storage.NewRedisStore(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize recipe store",
			zap.Error(err),
		)
	}
	defer store.Close()

	// 初始化生成服務
	generatorSvc := generator.NewService(cfg)
	defer generatorSvc.Close()

	// 初始化驗證服務
	authSvc := auth.NewService(cfg)

	// 初始化食譜服務
	recipeSvc := recipeService.NewService(generatorSvc, store)

	// 設置路由
	router := api.SetupRouter(cfg, api.Services{
		Recipe:    recipeSvc,
		Auth:      authSvc,
		Generator: generatorSvc,
		Store:     store,
	})

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
