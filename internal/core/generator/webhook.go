package generator

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// WebhookSource 透過 n8n 工作流 webhook 生成食譜，為主要生成來源
type WebhookSource struct {
	config *config.Config
	client *resty.Client
}

// NewWebhookSource 創建 webhook 生成來源
func NewWebhookSource(cfg *config.Config) *WebhookSource {
	client := resty.New().
		SetTimeout(cfg.Webhook.Timeout).
		SetHeader("Content-Type", "application/json")

	return &WebhookSource{
		config: cfg,
		client: client,
	}
}

// Name 來源名稱，用於日誌
func (s *WebhookSource) Name() string {
	return "webhook"
}

// Generate 生成回應
// 工作流的回應欄位不固定，依序嘗試 text、output、message，都沒有時退回原始字串
func (s *WebhookSource) Generate(ctx context.Context, prompt string) (string, error) {
	req := map[string]string{
		"message": prompt,
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(s.config.Webhook.URL)

	if err != nil {
		return "", fmt.Errorf("failed to send request to webhook: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("webhook returned error: %s", resp.Status())
	}

	var result struct {
		Text    string `json:"text"`
		Output  string `json:"output"`
		Message string `json:"message"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		// 非 JSON 回應直接當純文字食譜使用
		body := strings.TrimSpace(resp.String())
		if body == "" {
			return "", fmt.Errorf("empty webhook response")
		}
		return body, nil
	}

	for _, candidate := range []string{result.Text, result.Output, result.Message} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no recipe text in webhook response")
}
