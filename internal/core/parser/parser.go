package parser

import (
	"regexp"
	"strings"
)

// 預設標題：兩條路徑各自的歷史字面值，測試有釘住，不可互換
const (
	defaultSaveTitle    = "Untitled Recipe"
	defaultDisplayTitle = "Generated Recipe"
)

// 區段關鍵字，依優先序嘗試，先命中者勝
var (
	ingredientSectionNames  = []string{"ingredients", "what you need", "shopping list"}
	instructionSectionNames = []string{"instructions", "directions", "method", "steps", "preparation"}
	nutritionSectionNames   = []string{"nutritional information", "nutrition", "nutrition facts"}
	tipSectionNames         = []string{"tips", "notes", "chef's tips"}

	servingsKeywords  = []string{"servings", "serves", "portions"}
	prepTimeKeywords  = []string{"prep time", "preparation time"}
	cookTimeKeywords  = []string{"cook time", "cooking time", "bake time"}
	totalTimeKeywords = []string{"total time", "time"}
)

// 儲存端標題樣式，依序嘗試三種再退回首行
var saveTitlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^recipe[:\s]*(.+?)$`),
	regexp.MustCompile(`(?im)^(.+?)\s*recipe$`),
	regexp.MustCompile(`(?m)^([^:]+?)(?:\s*:|\s*$)`),
}

// 描述行不得是區段標題或中繼資料行
var metadataLinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^ingredients[:\s]*`),
	regexp.MustCompile(`(?i)^instructions?[:\s]*`),
	regexp.MustCompile(`(?i)^steps?[:\s]*`),
	regexp.MustCompile(`(?i)^tips?[:\s]*`),
	regexp.MustCompile(`(?i)^servings?[:\s]*`),
	regexp.MustCompile(`(?i)^prep time[:\s]*`),
	regexp.MustCompile(`(?i)^cook time[:\s]*`),
	regexp.MustCompile(`(?i)^total time[:\s]*`),
}

var titleResiduePattern = regexp.MustCompile(`[*#-]`)

// SaveParser 儲存路徑的解析器：三段式標題偵測、嚴格的區段前瞻
type SaveParser struct{}

// DisplayParser 顯示路徑的解析器：首行即標題、邊界另認全大寫標題行、
// 找不到營養區段時改以整篇食譜文字估算
type DisplayParser struct{}

// NewSaveParser 建立儲存端解析器
func NewSaveParser() *SaveParser { return &SaveParser{} }

// NewDisplayParser 建立顯示端解析器
func NewDisplayParser() *DisplayParser { return &DisplayParser{} }

// Parse 解析生成文本為結構化食譜（儲存端行為）
func (p *SaveParser) Parse(content string) ParsedRecipe {
	clean := Normalize(content)
	lines := nonEmptyLines(clean)

	title := defaultSaveTitle
	for _, pattern := range saveTitlePatterns {
		if m := pattern.FindStringSubmatch(clean); m != nil && strings.TrimSpace(m[1]) != "" {
			title = strings.TrimSpace(m[1])
			break
		}
	}
	if title == defaultSaveTitle && len(lines) > 0 {
		title = cleanTitleLine(lines[0])
	}

	recipe := ParsedRecipe{
		Title:       title,
		Description: extractDescription(lines),
		Ingredients: []string{},
		Steps:       []string{},
		Tips:        []string{},
	}

	if section, ok := ExtractSection(clean, ingredientSectionNames); ok {
		recipe.Ingredients = ParseList(section)
	}
	if section, ok := ExtractSection(clean, instructionSectionNames); ok {
		recipe.Steps = ParseSteps(section)
	}
	if section, ok := ExtractSection(clean, nutritionSectionNames); ok {
		recipe.Nutrition = ParseNutrition(section, section)
	}
	if section, ok := ExtractSection(clean, tipSectionNames); ok {
		recipe.Tips = ParseList(section)
	}

	recipe.Servings = ExtractInfo(clean, servingsKeywords)
	recipe.PrepTime = ExtractInfo(clean, prepTimeKeywords)
	recipe.CookTime = ExtractInfo(clean, cookTimeKeywords)
	recipe.TotalTime = ExtractInfo(clean, totalTimeKeywords)

	return recipe
}

// Parse 解析生成文本為結構化食譜（顯示端行為）
func (p *DisplayParser) Parse(content string) ParsedRecipe {
	clean := Normalize(content)
	lines := nonEmptyLines(clean)

	title := defaultDisplayTitle
	if len(lines) > 0 {
		if cleaned := cleanTitleLine(lines[0]); cleaned != "" {
			title = cleaned
		}
	}

	recipe := ParsedRecipe{
		Title:       title,
		Description: extractDescription(lines),
		Ingredients: []string{},
		Steps:       []string{},
		Tips:        []string{},
	}

	if section, ok := ExtractSectionDisplay(clean, ingredientSectionNames); ok {
		recipe.Ingredients = ParseList(section)
	}
	if section, ok := ExtractSectionDisplay(clean, instructionSectionNames); ok {
		recipe.Steps = ParseSteps(section)
	}
	if section, ok := ExtractSectionDisplay(clean, nutritionSectionNames); ok {
		recipe.Nutrition = ParseNutrition(section, clean)
	} else {
		recipe.Nutrition = EstimateNutrition(clean)
	}
	if section, ok := ExtractSectionDisplay(clean, tipSectionNames); ok {
		recipe.Tips = ParseList(section)
	}

	recipe.Servings = ExtractInfo(clean, servingsKeywords)
	recipe.PrepTime = ExtractInfo(clean, prepTimeKeywords)
	recipe.CookTime = ExtractInfo(clean, cookTimeKeywords)
	recipe.TotalTime = ExtractInfo(clean, totalTimeKeywords)

	return recipe
}

func nonEmptyLines(content string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cleanTitleLine(line string) string {
	return strings.TrimSpace(titleResiduePattern.ReplaceAllString(line, ""))
}

// extractDescription 取標題之後第一個不是區段標題的敘述行
func extractDescription(lines []string) string {
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isMetadataLine(line) {
			continue
		}
		return line
	}
	return ""
}

func isMetadataLine(line string) bool {
	for _, pattern := range metadataLinePatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	return false
}
