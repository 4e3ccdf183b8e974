package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 食材重量：數值緊接公制單位，公斤一律換算為克
var ingredientWeightPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(g|gram|grams|kg|kilo|kilos)`)

// 類別關鍵字表，依序檢查，先命中者勝（互斥由檢查順序保證）
var categoryEstimates = []struct {
	keywords []string
	calories int
	protein  float64
	carbs    float64
	fats     float64
}{
	{[]string{"salad", "vegetable"}, 150, 8, 20, 5},
	{[]string{"pasta", "rice", "noodle"}, 400, 12, 60, 8},
	{[]string{"meat", "chicken", "beef", "pork"}, 350, 25, 15, 15},
	{[]string{"fish", "salmon", "tuna"}, 250, 20, 5, 12},
	{[]string{"soup", "stew"}, 200, 10, 25, 8},
	{[]string{"dessert", "cake", "cookie", "sweet"}, 350, 5, 45, 15},
	{[]string{"breakfast", "egg", "pancake"}, 300, 15, 25, 12},
}

// EstimateNutrition 在完全擷取不到營養數值時推估宏量
// 先從文本加總明寫的食材重量；有重量時以固定比例換算並完全蓋過類別估計，
// 沒有重量時套用第一個命中的類別基準，重量反推為 calories/1.5
func EstimateNutrition(text string) Nutrition {
	lowerText := strings.ToLower(text)

	var totalWeight float64
	for _, m := range ingredientWeightPattern.FindAllStringSubmatch(text, -1) {
		num, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		unit := strings.ToLower(m[2])
		if strings.Contains(unit, "kg") || strings.Contains(unit, "kilo") {
			totalWeight += num * 1000
		} else {
			totalWeight += num
		}
	}

	// 預設：中等餐點
	calories := 300
	protein := 15.0
	carbs := 30.0
	fats := 12.0

	for _, cat := range categoryEstimates {
		if containsAny(lowerText, cat.keywords) {
			calories = cat.calories
			protein = cat.protein
			carbs = cat.carbs
			fats = cat.fats
			break
		}
	}

	if totalWeight > 0 {
		// 有食材重量就以重量為準：約略 1.5 卡/克，蛋白質 10%、碳水 15%、脂肪 5%
		calories = int(math.Round(totalWeight * 1.5))
		protein = math.Round(totalWeight * 0.1)
		carbs = math.Round(totalWeight * 0.15)
		fats = math.Round(totalWeight * 0.05)
	} else {
		totalWeight = float64(calories) / 1.5
	}

	return Nutrition{
		Calories:      calories,
		Weight:        math.Round(totalWeight),
		Protein:       protein,
		Carbohydrates: carbs,
		Fats:          fats,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
