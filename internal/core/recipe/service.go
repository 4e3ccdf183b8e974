package recipe

import (
	"context"
	"strings"

	"recipe-ai/internal/core/parser"
	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

	"go.uber.org/zap"
)

// 標題最終退路，解析與請求都拿不到標題時使用
const fallbackTitle = "Untitled Recipe"

// Generator 食譜文本生成來源
type Generator interface {
	Generate(ctx context.Context, name, ingredients string) (string, error)
}

// GeneratedRecipe 生成結果，含原始文本與解析後結構
type GeneratedRecipe struct {
	Text   string              `json:"text"`
	Recipe parser.ParsedRecipe `json:"recipe"`
}

// Service 食譜服務，銜接生成、解析與儲存
type Service struct {
	generator     Generator
	store         storage.RecipeStore
	saveParser    parser.RecipeTextParser
	displayParser parser.RecipeTextParser
}

// NewService 創建食譜服務
func NewService(gen Generator, store storage.RecipeStore) *Service {
	return &Service{
		generator:     gen,
		store:         store,
		saveParser:    parser.NewSaveParser(),
		displayParser: parser.NewDisplayParser(),
	}
}

// Generate 生成食譜並解析為顯示用結構
func (s *Service) Generate(ctx context.Context, name, ingredients string) (*GeneratedRecipe, error) {
	text, err := s.generator.Generate(ctx, name, ingredients)
	if err != nil {
		return nil, common.NewError(common.ErrGenerationFailed.Code, common.ErrGenerationFailed.Message, common.ErrGenerationFailed.Status, err)
	}

	return &GeneratedRecipe{
		Text:   text,
		Recipe: s.safeParse(s.displayParser, text),
	}, nil
}

// Save 解析並儲存食譜
// 標題優先序：解析結果、請求的菜名、最終退路
// 解析不出食材清單時，退回請求的食材字串作為單一項目
func (s *Service) Save(ctx context.Context, userID, name, ingredients, content string) (*storage.StoredRecipe, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.NewValidationError("Recipe content is required")
	}

	parsed := s.safeParse(s.saveParser, content)

	title := parsed.Title
	if title == "" {
		title = name
	}
	if title == "" {
		title = fallbackTitle
	}
	parsed.Title = title

	if len(parsed.Ingredients) == 0 && ingredients != "" {
		parsed.Ingredients = []string{ingredients}
	}

	stored := &storage.StoredRecipe{
		ID:           common.GenerateUUID(),
		UserID:       userID,
		ParsedRecipe: parsed,
		CreatedAt:    common.NowRFC3339(),
	}

	if err := s.store.Create(ctx, stored); err != nil {
		return nil, err
	}

	common.LogInfo("食譜已儲存",
		zap.String("recipe_id", stored.ID),
		zap.String("title", stored.Title),
	)
	return stored, nil
}

// List 列出使用者的食譜
func (s *Service) List(ctx context.Context, userID string, query storage.ListQuery) ([]storage.StoredRecipe, error) {
	return s.store.List(ctx, userID, query)
}

// Get 取得單一食譜
func (s *Service) Get(ctx context.Context, userID, recipeID string) (*storage.StoredRecipe, error) {
	return s.store.Get(ctx, userID, recipeID)
}

// Delete 刪除食譜
func (s *Service) Delete(ctx context.Context, userID, recipeID string) error {
	return s.store.Delete(ctx, userID, recipeID)
}

// safeParse 解析失敗不往外拋，改回傳全空結構讓上層以退路欄位補齊
func (s *Service) safeParse(p parser.RecipeTextParser, content string) (out parser.ParsedRecipe) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("食譜解析失敗",
				zap.Any("panic", r),
			)
			out = parser.ParsedRecipe{
				Ingredients: []string{},
				Steps:       []string{},
				Tips:        []string{},
			}
		}
	}()
	return p.Parse(content)
}
