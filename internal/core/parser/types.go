package parser

// Nutrition 營養資訊（整份料理的總量）
// 五個欄位永遠有值：解析、估算或補零，不會缺欄位
type Nutrition struct {
	Calories      int     `json:"calories"`
	Weight        float64 `json:"weight"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// ParsedRecipe 從生成文本解析出的結構化食譜
type ParsedRecipe struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Tips        []string  `json:"tips"`
	Nutrition   Nutrition `json:"nutrition"`
	Servings    string    `json:"servings,omitempty"`
	PrepTime    string    `json:"prepTime,omitempty"`
	CookTime    string    `json:"cookTime,omitempty"`
	TotalTime   string    `json:"totalTime,omitempty"`
}

// RecipeTextParser 食譜文本解析器
// 兩個實作對應兩條歷史演化路徑（儲存端與顯示端），
// 標題偵測與段落邊界的啟發式各自獨立，不可合併
type RecipeTextParser interface {
	Parse(content string) ParsedRecipe
}
