package generator

import (
	"context"
	"fmt"
	"time"

	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeSource 食譜文本生成來源
type RecipeSource interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service 食譜生成服務
// 快取在前，來源依序嘗試，前一個失敗才輪到下一個
type Service struct {
	config  *config.Config
	cache   *CacheManager
	sources []RecipeSource
}

// NewService 創建生成服務，依設定組裝啟用的來源
func NewService(cfg *config.Config) *Service {
	sources := make([]RecipeSource, 0, 2)
	if cfg.Webhook.Enabled {
		sources = append(sources, NewWebhookSource(cfg))
	}
	if cfg.Gemini.Enabled {
		sources = append(sources, NewGeminiSource(cfg))
	}

	return &Service{
		config:  cfg,
		cache:   NewCacheManager(cfg),
		sources: sources,
	}
}

// NewServiceWithSources 以指定來源創建生成服務
func NewServiceWithSources(cfg *config.Config, cache *CacheManager, sources ...RecipeSource) *Service {
	return &Service{
		config:  cfg,
		cache:   cache,
		sources: sources,
	}
}

// Generate 依請求生成食譜文本
func (s *Service) Generate(ctx context.Context, name, ingredients string) (string, error) {
	prompt := BuildPrompt(name, ingredients)

	// 先查快取
	if cached, err := s.cache.Get(ctx, prompt); err == nil {
		return cached, nil
	}

	var lastErr error
	for _, source := range s.sources {
		start := time.Now()
		text, err := source.Generate(ctx, prompt)
		common.LogGenerationCall(source.Name(), time.Since(start), err)
		if err != nil {
			lastErr = err
			continue
		}

		if err := s.cache.Set(ctx, prompt, text); err != nil {
			common.LogWarn("快取寫入失敗",
				zap.String("來源", source.Name()),
				zap.Error(err),
			)
		}
		return text, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("all generation sources failed: %w", lastErr)
	}
	return "", fmt.Errorf("no generation sources configured")
}

// CacheStats 回傳快取統計，供健康檢查使用
func (s *Service) CacheStats() map[string]interface{} {
	if s.cache == nil {
		return map[string]interface{}{"enabled": false}
	}
	return s.cache.GetStats()
}

// Close 釋放服務資源
func (s *Service) Close() error {
	return s.cache.Close()
}
