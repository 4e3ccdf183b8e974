package generator

import (
	"context"
	"fmt"
	"net/http"

	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// GeminiSource Gemini 生成來源，webhook 失敗時的備援
type GeminiSource struct {
	config *config.Config
	client *resty.Client
}

// NewGeminiSource 創建 Gemini 生成來源
func NewGeminiSource(cfg *config.Config) *GeminiSource {
	client := resty.New().
		SetBaseURL("https://generativelanguage.googleapis.com/v1beta").
		SetTimeout(cfg.Gemini.Timeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiSource{
		config: cfg,
		client: client,
	}
}

// Name 來源名稱，用於日誌
func (s *GeminiSource) Name() string {
	return "gemini"
}

// Generate 生成回應
func (s *GeminiSource) Generate(ctx context.Context, prompt string) (string, error) {
	// 構建請求
	req := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     s.config.Gemini.Temperature,
			"maxOutputTokens": s.config.Gemini.MaxTokens,
		},
	}

	// 發送請求
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.config.Gemini.APIKey).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", s.config.Gemini.Model))

	if err != nil {
		return "", fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Gemini API returned error: %s", resp.String())
	}

	// 解析回應
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in Gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
