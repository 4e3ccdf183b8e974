package recipe

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"recipe-ai/internal/infrastructure/storage"
	"recipe-ai/internal/pkg/common"

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

// fakeStore 記憶體儲存，行為比照 Redis 實作
type fakeStore struct {
	recipes map[string]storage.StoredRecipe
}

func newFakeStore() *fakeStore {
	return &fakeStore{recipes: make(map[string]storage.StoredRecipe)}
}

func (s *fakeStore) Create(ctx context.Context, recipe *storage.StoredRecipe) error {
	for _, r := range s.recipes {
		if r.UserID == recipe.UserID && strings.EqualFold(r.Title, recipe.Title) {
			return storage.ErrDuplicate
		}
	}
	s.recipes[recipe.ID] = *recipe
	return nil
}

func (s *fakeStore) List(ctx context.Context, userID string, query storage.ListQuery) ([]storage.StoredRecipe, error) {
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

func (s *fakeStore) Get(ctx context.Context, userID, recipeID string) (*storage.StoredRecipe, error) {
	r, ok := s.recipes[recipeID]
	if !ok || r.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &r, nil
}

func (s *fakeStore) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := s.Get(ctx, userID, recipeID); err != nil {
		return err
	}
	delete(s.recipes, recipeID)
	return nil
}

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

const generatedText = `Pasta Primavera Recipe

A colorful vegetable pasta.

Ingredients:
- 200g pasta
- 1 zucchini

Instructions:
1. Boil the pasta.
2. Saute the vegetables.
`

func TestGenerateParsesRecipe(t *testing.T) {
	svc := NewService(&stubGenerator{text: generatedText}, newFakeStore())

	got, err := svc.Generate(context.Background(), "Pasta Primavera", "")
	require.NoError(t, err)
	assert.Equal(t, generatedText, got.Text)
	assert.Equal(t, "Pasta Primavera Recipe", got.Recipe.Title)
	assert.Equal(t, []string{"200g pasta", "1 zucchini"}, got.Recipe.Ingredients)
	// 顯示路徑沒有營養區段時以全文估算
	assert.NotZero(t, got.Recipe.Nutrition.Calories)
}

func TestGenerateSourceFailure(t *testing.T) {
	svc := NewService(&stubGenerator{err: fmt.Errorf("upstream down")}, newFakeStore())

	_, err := svc.Generate(context.Background(), "Pasta", "")
	require.Error(t, err)

	customErr, ok := err.(*common.CustomError)
	require.True(t, ok)
	assert.Equal(t, common.ErrGenerationFailed.Code, customErr.Code)
}

func TestSaveStoresParsedRecipe(t *testing.T) {
	store := newFakeStore()
	svc := NewService(&stubGenerator{}, store)

	stored, err := svc.Save(context.Background(), "user-1", "", "", generatedText)
	require.NoError(t, err)
	assert.Equal(t, "Pasta Primavera", stored.Title)
	assert.Equal(t, "user-1", stored.UserID)
	assert.NotEmpty(t, stored.ID)
	assert.NotEmpty(t, stored.CreatedAt)
	assert.Len(t, store.recipes, 1)
}

func TestSaveDuplicateTitle(t *testing.T) {
	svc := NewService(&stubGenerator{}, newFakeStore())

	_, err := svc.Save(context.Background(), "user-1", "", "", generatedText)
	require.NoError(t, err)
	_, err = svc.Save(context.Background(), "user-1", "", "", generatedText)
	assert.ErrorIs(t, err, storage.ErrDuplicate)
}

func TestSaveEmptyContentRejected(t *testing.T) {
	store := newFakeStore()
	svc := NewService(&stubGenerator{}, store)

	_, err := svc.Save(context.Background(), "user-1", "Family Curry", "", "")
	require.Error(t, err)
	assert.True(t, common.IsValidationError(err))
	assert.Equal(t, "Recipe content is required", err.Error())

	// 只有空白的內文同樣拒收
	_, err = svc.Save(context.Background(), "user-1", "", "", "  \n\t")
	assert.True(t, common.IsValidationError(err))
	assert.Empty(t, store.recipes)
}

func TestSaveIngredientFallback(t *testing.T) {
	svc := NewService(&stubGenerator{}, newFakeStore())

	stored, err := svc.Save(context.Background(), "user-1", "Curry", "chicken, onion, curry paste", "Curry Recipe\n\nJust wing it.")
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken, onion, curry paste"}, stored.Ingredients)
}

func TestGetAndDeleteScopedToOwner(t *testing.T) {
	store := newFakeStore()
	svc := NewService(&stubGenerator{}, store)

	stored, err := svc.Save(context.Background(), "user-1", "", "", generatedText)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", stored.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = svc.Delete(context.Background(), "user-2", stored.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := svc.Get(context.Background(), "user-1", stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)

	require.NoError(t, svc.Delete(context.Background(), "user-1", stored.ID))
	_, err = svc.Get(context.Background(), "user-1", stored.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
