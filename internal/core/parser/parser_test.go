package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecipe = `**Chicken Pasta Recipe**

A quick weeknight dinner with pantry staples.

Servings: 4
Prep Time: 10 minutes
Cook Time: 20 minutes

Ingredients:
- 200g chicken
- 1 onion

Instructions:
1. Boil water.
2. Add pasta.

Nutritional Information:
Calories: 450
Protein: 30g
`

func TestSaveParserFullRecipe(t *testing.T) {
	recipe := NewSaveParser().Parse(sampleRecipe)

	assert.Equal(t, "Chicken Pasta", recipe.Title)
	assert.Equal(t, "A quick weeknight dinner with pantry staples.", recipe.Description)
	assert.Equal(t, []string{"200g chicken", "1 onion"}, recipe.Ingredients)
	assert.Equal(t, []string{"Boil water.", "Add pasta."}, recipe.Steps)
	assert.Equal(t, "4", recipe.Servings)
	assert.Equal(t, "10 minutes", recipe.PrepTime)
	assert.Equal(t, "20 minutes", recipe.CookTime)
	assert.Equal(t, 450, recipe.Nutrition.Calories)
	assert.Equal(t, float64(30), recipe.Nutrition.Protein)
}

func TestSaveParserTitleCascade(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"recipe 前綴", "Recipe: Beef Stew\n\nIngredients:\n- beef", "Beef Stew"},
		{"recipe 後綴", "Beef Stew Recipe\n\nIngredients:\n- beef", "Beef Stew"},
		{"首行冒號前", "Beef Stew: hearty and warm\n\nIngredients:\n- beef", "Beef Stew"},
		{"標題行清理", "## Beef Stew\nIngredients:\n- beef", "Beef Stew"},
		{"空輸入", "", "Untitled Recipe"},
	}
	p := NewSaveParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.content).Title)
		})
	}
}

func TestDisplayParserTitle(t *testing.T) {
	p := NewDisplayParser()

	recipe := p.Parse("**Beef Stew**\n\nIngredients:\n- beef")
	assert.Equal(t, "Beef Stew", recipe.Title)

	assert.Equal(t, "Generated Recipe", p.Parse("").Title)
}

func TestSaveParserNutritionZeroFilledWithoutSection(t *testing.T) {
	recipe := NewSaveParser().Parse("Pasta Recipe\n\nIngredients:\n- 200g pasta")

	assert.Equal(t, Nutrition{}, recipe.Nutrition)
}

func TestDisplayParserNutritionEstimatedWithoutSection(t *testing.T) {
	recipe := NewDisplayParser().Parse("Garden Salad\n\nIngredients:\n- 100g lettuce")

	// 沙拉類基準 150 kcal，重量覆寫 100g -> 150 kcal
	assert.Equal(t, 150, recipe.Nutrition.Calories)
	assert.Equal(t, float64(100), recipe.Nutrition.Weight)
}

func TestDisplayParserAllCapsHeadingBoundary(t *testing.T) {
	content := "Pasta\n\nIngredients:\n- dried pasta\n- sea salt\nINSTRUCTIONS\n1. Boil water.\n"
	recipe := NewDisplayParser().Parse(content)

	assert.Equal(t, []string{"dried pasta", "sea salt"}, recipe.Ingredients)
	assert.Equal(t, []string{"Boil water."}, recipe.Steps)
}

func TestParseListStripsMarkers(t *testing.T) {
	got := ParseList("- 200g chicken\n* 1 onion\n• 2 cloves garlic\n3. sea salt\n\nIngredients:\n")
	assert.Equal(t, []string{"200g chicken", "1 onion", "2 cloves garlic", "sea salt"}, got)
}

func TestParseListDropsBareSingleWords(t *testing.T) {
	// 標籤行過濾器把去掉符號後只剩單一英文字的項目一併濾掉
	got := ParseList("- salt\n- 200g chicken\n- pepper")
	assert.Equal(t, []string{"200g chicken"}, got)
}

func TestParseStepsNumbered(t *testing.T) {
	got := ParseSteps("1. Boil water.\n2. Add pasta.\n3. Drain and serve.")
	assert.Equal(t, []string{"Boil water.", "Add pasta.", "Drain and serve."}, got)
}

func TestParseStepsSentenceFallback(t *testing.T) {
	got := ParseSteps("Boil a large pot of water. Add the pasta with salt. Drain well and serve hot.")
	require.Len(t, got, 3)
	assert.Equal(t, "Boil a large pot of water", got[0])
	assert.Equal(t, "Add the pasta with salt", got[1])
	assert.Equal(t, "Drain well and serve hot.", got[2])
}

func TestParseNutritionBackfill(t *testing.T) {
	// 只有熱量：其餘欄位由熱量回推
	n := ParseNutrition("calories: 450", "calories: 450")

	assert.Equal(t, 450, n.Calories)
	assert.Equal(t, float64(225), n.Weight)
	assert.Equal(t, float64(17), n.Protein)       // round(450*0.15/4)
	assert.Equal(t, float64(62), n.Carbohydrates) // round(450*0.55/4)
	assert.Equal(t, float64(15), n.Fats)          // round(450*0.30/9)
}

func TestParseNutritionCaloriesFromMacros(t *testing.T) {
	n := ParseNutrition("protein: 30g\ncarbohydrates: 40g\nfats: 10g", "")

	// 30*4 + 40*4 + 10*9 = 370
	assert.Equal(t, 370, n.Calories)
	assert.Equal(t, float64(185), n.Weight)
}

func TestParseNutritionLastMatchWins(t *testing.T) {
	n := ParseNutrition("calories: 300\ncalories: 450\nprotein: 20g", "")
	assert.Equal(t, 450, n.Calories)
	assert.Equal(t, float64(20), n.Protein)
}

func TestEstimateNutritionCategories(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		calories int
		protein  float64
		carbs    float64
		fats     float64
	}{
		{"沙拉", "a fresh salad with greens", 150, 8, 20, 5},
		{"義大利麵", "creamy pasta dish", 400, 12, 60, 8},
		{"肉類", "grilled chicken breast", 350, 25, 15, 15},
		{"魚類", "baked salmon fillet", 250, 20, 5, 12},
		{"湯品", "hearty vegetable soup", 150, 8, 20, 5},
		{"甜點", "chocolate cake slice", 350, 5, 45, 15},
		{"早餐", "scrambled egg plate", 300, 15, 25, 12},
		{"無類別基準", "mystery dish", 300, 15, 30, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := EstimateNutrition(tt.text)
			assert.Equal(t, tt.calories, n.Calories)
			assert.Equal(t, tt.protein, n.Protein)
			assert.Equal(t, tt.carbs, n.Carbohydrates)
			assert.Equal(t, tt.fats, n.Fats)
		})
	}
}

func TestEstimateNutritionWeightOverride(t *testing.T) {
	// 300g + 1kg = 1300g 總重，覆寫所有類別基準
	n := EstimateNutrition("300g beef and 1kg potatoes")

	assert.Equal(t, float64(1300), n.Weight)
	assert.Equal(t, 1950, n.Calories) // round(1300*1.5)
	assert.Equal(t, float64(130), n.Protein)
	assert.Equal(t, float64(195), n.Carbohydrates)
	assert.Equal(t, float64(65), n.Fats)
}

func TestEstimateNutritionDerivedWeight(t *testing.T) {
	// 無重量資訊時 weight = calories / 1.5
	n := EstimateNutrition("a fresh salad")
	assert.Equal(t, float64(100), n.Weight)
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("## **Pasta** Recipe ")
	assert.Equal(t, "Pasta Recipe", once)
	assert.Equal(t, once, Normalize(once))
}

func TestExtractSectionStopsAtBlankLine(t *testing.T) {
	content := "Ingredients:\n- pasta\n- salt\n\nsome trailing prose"
	got, ok := ExtractSection(content, []string{"ingredients"})
	require.True(t, ok)
	assert.Equal(t, "- pasta\n- salt", got)
}

func TestExtractSectionMalformedHeadingRunsToEnd(t *testing.T) {
	// 下一個標題行帶標點時不被視為段落邊界，段落吞到文末
	content := "Ingredients:\n- 200g rice\nNotes!\n- 1 tsp oil"
	got, ok := ExtractSection(content, []string{"ingredients"})
	require.True(t, ok)
	assert.Equal(t, "- 200g rice\nNotes!\n- 1 tsp oil", got)
}

func TestExtractSectionMissing(t *testing.T) {
	_, ok := ExtractSection("no sections here", []string{"ingredients"})
	assert.False(t, ok)
}

func TestExtractInfoFirstMatch(t *testing.T) {
	content := "Servings: 4\nTotal Time: 30 minutes"
	assert.Equal(t, "4", ExtractInfo(content, []string{"servings", "serves"}))
	assert.Equal(t, "30 minutes", ExtractInfo(content, []string{"total time", "time"}))
	assert.Equal(t, "", ExtractInfo(content, []string{"prep time"}))
}
