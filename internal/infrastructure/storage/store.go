package storage

import (
	"context"
	"sort"
	"strings"

	"recipe-ai/internal/core/parser"
	"recipe-ai/internal/pkg/common"
)

// StoredRecipe 已儲存的食譜文件
type StoredRecipe struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	parser.ParsedRecipe
	CreatedAt string `json:"createdAt"`
}

// ListQuery 清單查詢條件
type ListQuery struct {
	// Search 標題與描述的不分大小寫子字串過濾
	Search string
	// Sort 排序方式：created_desc（預設）、created_asc、title
	Sort string
}

// RecipeStore 食譜儲存層
type RecipeStore interface {
	Create(ctx context.Context, recipe *StoredRecipe) error
	List(ctx context.Context, userID string, query ListQuery) ([]StoredRecipe, error)
	Get(ctx context.Context, userID, recipeID string) (*StoredRecipe, error)
	Delete(ctx context.Context, userID, recipeID string) error
	Ping(ctx context.Context) error
}

// 儲存層錯誤沿用共用錯誤表，直接對映 HTTP 狀態
var (
	ErrDuplicate = common.ErrRecipeDuplicate
	ErrNotFound  = common.ErrRecipeNotFound
)

// FilterRecipes 依查詢條件過濾
func FilterRecipes(recipes []StoredRecipe, query ListQuery) []StoredRecipe {
	if query.Search == "" {
		return recipes
	}

	needle := strings.ToLower(query.Search)
	filtered := make([]StoredRecipe, 0, len(recipes))
	for _, recipe := range recipes {
		if strings.Contains(strings.ToLower(recipe.Title), needle) ||
			strings.Contains(strings.ToLower(recipe.Description), needle) {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}

// SortRecipes 依排序方式就地排序，未知值退回建立時間新到舊
func SortRecipes(recipes []StoredRecipe, sortKey string) {
	switch sortKey {
	case "created_asc":
		sort.SliceStable(recipes, func(i, j int) bool {
			return recipes[i].CreatedAt < recipes[j].CreatedAt
		})
	case "title":
		sort.SliceStable(recipes, func(i, j int) bool {
			return strings.ToLower(recipes[i].Title) < strings.ToLower(recipes[j].Title)
		})
	default:
		sort.SliceStable(recipes, func(i, j int) bool {
			return recipes[i].CreatedAt > recipes[j].CreatedAt
		})
	}
}
