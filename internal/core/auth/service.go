package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// User 驗證通過的使用者
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// Service 使用者驗證服務
// 向外部驗證供應商查驗 bearer token，結果在存活時間內快取
type Service struct {
	config *config.Config
	client *resty.Client

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	user      User
	expiresAt time.Time
}

// NewService 創建驗證服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.Auth.ProviderURL).
		SetTimeout(cfg.Auth.Timeout).
		SetHeader("apikey", cfg.Auth.APIKey)

	return &Service{
		config: cfg,
		client: client,
		cache:  make(map[string]cacheEntry),
	}
}

// Authenticate 查驗 bearer token，任何失敗一律視為未授權
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, common.ErrUnauthorized
	}

	key := hashToken(token)

	s.mu.RLock()
	entry, exists := s.cache[key]
	s.mu.RUnlock()
	if exists && time.Now().Before(entry.expiresAt) {
		user := entry.user
		return &user, nil
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		Get("/auth/v1/user")

	if err != nil {
		common.LogWarn("驗證供應商請求失敗",
			zap.Error(err),
		)
		return nil, common.ErrUnauthorized
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, common.ErrUnauthorized
	}

	var user User
	if err := common.ParseJSONBytes(resp.Body(), &user); err != nil || user.ID == "" {
		return nil, common.ErrUnauthorized
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{
		user:      user,
		expiresAt: time.Now().Add(s.config.Auth.CacheTTL),
	}
	s.mu.Unlock()

	return &user, nil
}

// hashToken 以雜湊作為快取鍵，原始 token 不落地
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
