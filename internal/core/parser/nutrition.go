package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// 每行營養素掃描：關鍵字緊接數值；同一營養素多行命中時，後面的覆蓋前面的
var (
	caloriesLinePattern = regexp.MustCompile(`(?:calories?|kcal|energy)[:\s]*(\d+)`)
	weightLinePattern   = regexp.MustCompile(`(?:weight|serving size|portion)[:\s]*(\d+(?:\.\d+)?)`)
	proteinLinePattern  = regexp.MustCompile(`(?:protein|proteins)[:\s]*(\d+(?:\.\d+)?)`)
	carbsLinePattern    = regexp.MustCompile(`(?:carbohydrates?|carbs|carb)[:\s]*(\d+(?:\.\d+)?)`)
	fatsLinePattern     = regexp.MustCompile(`(?:fats?|fat|lipids)[:\s]*(\d+(?:\.\d+)?)`)
)

// ParseNutrition 從營養區段擷取數值
// 五欄全為零時改走估算（estimateSource 為估算用文本，儲存端傳入區段本身、
// 顯示端傳入整篇食譜）；否則用固定宏量比例回填仍為零的欄位。
// 比例常數是刻意的近似值，為了輸出相容必須原樣保留
func ParseNutrition(text string, estimateSource string) Nutrition {
	var n Nutrition

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ToLower(line))

		if m := caloriesLinePattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.Atoi(m[1]); err == nil {
				n.Calories = v
			}
		}
		if m := weightLinePattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				n.Weight = v
			}
		}
		if m := proteinLinePattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				n.Protein = v
			}
		}
		if m := carbsLinePattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				n.Carbohydrates = v
			}
		}
		if m := fatsLinePattern.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				n.Fats = v
			}
		}
	}

	if n.Calories == 0 && n.Weight == 0 && n.Protein == 0 && n.Carbohydrates == 0 && n.Fats == 0 {
		return EstimateNutrition(estimateSource)
	}

	// 回填順序固定：熱量先補，後面的欄位用補好的熱量推導
	if n.Calories == 0 {
		n.Calories = int(math.Round(n.Protein*4 + n.Carbohydrates*4 + n.Fats*9))
	}
	if n.Weight == 0 {
		n.Weight = math.Round(float64(n.Calories) / 2) // 約略 2 卡路里/克
	}
	if n.Protein == 0 {
		n.Protein = math.Round(float64(n.Calories) * 0.15 / 4) // 15% 熱量來自蛋白質
	}
	if n.Carbohydrates == 0 {
		n.Carbohydrates = math.Round(float64(n.Calories) * 0.55 / 4) // 55% 來自碳水
	}
	if n.Fats == 0 {
		n.Fats = math.Round(float64(n.Calories) * 0.30 / 9) // 30% 來自脂肪
	}

	return n
}
