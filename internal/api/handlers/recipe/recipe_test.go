package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-ai/internal/core/auth"
	recipeService "recipe-ai/internal/core/recipe"
	"recipe-ai/internal/infrastructure/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Generate(ctx context.Context, name, ingredients string) (string, error) {
	return g.text, g.err
}

type memStore struct {
	recipes map[string]storage.StoredRecipe
}

func newMemStore() *memStore {
	return &memStore{recipes: make(map[string]storage.StoredRecipe)}
}

func (s *memStore) Create(ctx context.Context, recipe *storage.StoredRecipe) error {
	for _, r := range s.recipes {
		if r.UserID == recipe.UserID && strings.EqualFold(r.Title, recipe.Title) {
			return storage.ErrDuplicate
		}
	}
	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *memStore) List(ctx context.Context, userID string, query storage.ListQuery) ([]storage.StoredRecipe, error) {
	out := make([]storage.StoredRecipe, 0)
	for _, r := range s.recipes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	out = storage.FilterRecipes(out, query)
	storage.SortRecipes(out, query.Sort)
	return out, nil
}

func (s *memStore) Get(ctx context.Context, userID, recipeID string) (*storage.StoredRecipe, error) {
	r, ok := s.recipes[recipeID]
	if !ok || r.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (s *memStore) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := s.Get(ctx, userID, recipeID); err != nil {
		return err
	}
	delete(s.recipes, recipeID)
	return nil
}

func (s *memStore) Ping(ctx context.Context) error { return nil }

// testUser 測試路由直接注入使用者，略過對外的驗證供應商
func testUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", &auth.User{ID: "user-1", Email: "cook@example.com"})
		c.Next()
	}
}

func setupRouter(gen recipeService.Generator, store storage.RecipeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(recipeService.NewService(gen, store))

	router := gin.New()
	group := router.Group("/api/v1/recipes")
	group.Use(testUser())
	group.POST("/generate", handler.HandleGenerate)
	group.POST("", handler.HandleSave)
	group.GET("", handler.HandleList)
	group.GET("/:id", handler.HandleGet)
	group.DELETE("/:id", handler.HandleDelete)
	return router
}

const recipeContent = `Tomato Soup Recipe

A warming classic.

Ingredients:
- 500g tomatoes
- 1 onion

Instructions:
1. Chop the vegetables.
2. Simmer for twenty minutes.
`

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleGenerate(t *testing.T) {
	router := setupRouter(&stubGenerator{text: recipeContent}, newMemStore())

	w := doRequest(router, http.MethodPost, "/api/v1/recipes/generate", `{"name":"Tomato Soup"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		Text    string `json:"text"`
		Recipe  struct {
			Title       string   `json:"title"`
			Ingredients []string `json:"ingredients"`
		} `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, recipeContent, resp.Text)
	assert.Equal(t, "Tomato Soup Recipe", resp.Recipe.Title)
	assert.Equal(t, []string{"500g tomatoes", "1 onion"}, resp.Recipe.Ingredients)
}

func TestHandleGenerateSourceFailure(t *testing.T) {
	router := setupRouter(&stubGenerator{err: fmt.Errorf("upstream down")}, newMemStore())

	w := doRequest(router, http.MethodPost, "/api/v1/recipes/generate", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestHandleSaveAndGet(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	body, _ := json.Marshal(map[string]string{"content": recipeContent})
	w := doRequest(router, http.MethodPost, "/api/v1/recipes", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var saveResp struct {
		Success  bool   `json:"success"`
		RecipeID string `json:"recipeId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saveResp))
	assert.True(t, saveResp.Success)
	require.NotEmpty(t, saveResp.RecipeID)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes/"+saveResp.RecipeID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Tomato Soup")
}

func TestHandleSaveMissingContent(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	w := doRequest(router, http.MethodPost, "/api/v1/recipes", `{"name":"Soup"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe content is required")
}

func TestHandleSaveDuplicate(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	body, _ := json.Marshal(map[string]string{"content": recipeContent})
	w := doRequest(router, http.MethodPost, "/api/v1/recipes", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/recipes", string(body))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe already exists.")
}

func TestHandleListWithQuery(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	for _, content := range []string{
		"Tomato Soup Recipe\n\nIngredients:\n- tomatoes",
		"Beef Stew Recipe\n\nIngredients:\n- beef",
	} {
		body, _ := json.Marshal(map[string]string{"content": content})
		w := doRequest(router, http.MethodPost, "/api/v1/recipes", string(body))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(router, http.MethodGet, "/api/v1/recipes?q=stew", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                   `json:"success"`
		Recipes []storage.StoredRecipe `json:"recipes"`
		Count   int                    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Beef Stew", resp.Recipes[0].Title)
}

func TestHandleDelete(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	body, _ := json.Marshal(map[string]string{"content": recipeContent})
	w := doRequest(router, http.MethodPost, "/api/v1/recipes", string(body))
	require.Equal(t, http.StatusOK, w.Code)

	var saveResp struct {
		RecipeID string `json:"recipeId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saveResp))

	w = doRequest(router, http.MethodDelete, "/api/v1/recipes/"+saveResp.RecipeID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/recipes/"+saveResp.RecipeID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleGetUnknownID(t *testing.T) {
	router := setupRouter(&stubGenerator{}, newMemStore())

	w := doRequest(router, http.MethodGet, "/api/v1/recipes/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Recipe not found")
}
