package storage

import (
	"context"
	"fmt"
	"strings"

	"recipe-ai/internal/infrastructure/config"
	"recipe-ai/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore 以 Redis 作為食譜文件儲存
// 文件鍵 recipe:<id> 存 JSON，集合鍵 user:<userID>:recipes 作為使用者索引
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 儲存層並測試連接
func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("食譜儲存層已初始化",
		zap.String("位址", cfg.Redis.Addr),
		zap.Int("db", cfg.Redis.DB),
	)

	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient 以現有的客戶端創建儲存層，測試用
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func recipeKey(recipeID string) string {
	return fmt.Sprintf("recipe:%s", recipeID)
}

func userIndexKey(userID string) string {
	return fmt.Sprintf("user:%s:recipes", userID)
}

// Create 儲存食譜，同一使用者同名食譜視為重複
func (s *RedisStore) Create(ctx context.Context, recipe *StoredRecipe) error {
	existing, err := s.List(ctx, recipe.UserID, ListQuery{})
	if err != nil {
		return err
	}
	for _, r := range existing {
		if strings.EqualFold(r.Title, recipe.Title) {
			return ErrDuplicate
		}
	}

	data, err := common.ToJSON(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, recipeKey(recipe.ID), data, 0)
	pipe.SAdd(ctx, userIndexKey(recipe.UserID), recipe.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store recipe: %w", err)
	}

	return nil
}

// List 列出使用者的食譜，依查詢條件過濾與排序
func (s *RedisStore) List(ctx context.Context, userID string, query ListQuery) ([]StoredRecipe, error) {
	ids, err := s.client.SMembers(ctx, userIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ids: %w", err)
	}

	recipes := make([]StoredRecipe, 0, len(ids))
	for _, id := range ids {
		data, err := s.client.Get(ctx, recipeKey(id)).Bytes()
		if err == redis.Nil {
			// 索引殘留的孤兒項目，順手移除
			s.client.SRem(ctx, userIndexKey(userID), id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load recipe %s: %w", id, err)
		}

		var recipe StoredRecipe
		if err := common.ParseJSONBytes(data, &recipe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", id, err)
		}
		recipes = append(recipes, recipe)
	}

	recipes = FilterRecipes(recipes, query)
	SortRecipes(recipes, query.Sort)
	return recipes, nil
}

// Get 取得單一食譜，非擁有者視同不存在
func (s *RedisStore) Get(ctx context.Context, userID, recipeID string) (*StoredRecipe, error) {
	data, err := s.client.Get(ctx, recipeKey(recipeID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}

	var recipe StoredRecipe
	if err := common.ParseJSONBytes(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}

	if recipe.UserID != userID {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

// Delete 刪除食譜並同步移除索引
func (s *RedisStore) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := s.Get(ctx, userID, recipeID); err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, recipeKey(recipeID))
	pipe.SRem(ctx, userIndexKey(userID), recipeID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	return nil
}

// Ping 檢查儲存層連線，供健康檢查使用
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉儲存層連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
