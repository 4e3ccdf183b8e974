package generator

import "fmt"

// 三種提示模板共用的格式要求，要求生成結果帶有可解析的區段結構
const promptFormatInstructions = `

Please format the recipe with the following structure:
- Recipe title
- Servings information
- Prep time and cook time
- Ingredients list (one per line with quantities)
- Step-by-step instructions (numbered)
- Nutritional Information (for total dish):
  * Total Calories
  * Total Weight (grams)
  * Total Protein (grams)
  * Total Carbohydrates (grams)
  * Total Fats (grams)
- Any helpful tips

Make it clear, well-organized, and easy to follow. Include accurate nutritional estimates based on the ingredients and quantities used. Calculate the TOTAL nutrition for the entire dish, not per serving.`

// BuildPrompt 依請求內容組裝提示
// 有菜名以菜名為主，只有食材改做創意食譜，兩者皆無則隨機生成
func BuildPrompt(name, ingredients string) string {
	switch {
	case name != "" && ingredients != "":
		return fmt.Sprintf("Create a detailed recipe for %q using these ingredients: %s.%s", name, ingredients, promptFormatInstructions)
	case name != "":
		return fmt.Sprintf("Create a detailed recipe for %q.%s", name, promptFormatInstructions)
	case ingredients != "":
		return fmt.Sprintf("Create a creative recipe using these ingredients: %s.%s", ingredients, promptFormatInstructions)
	default:
		return "Generate a random delicious recipe." + promptFormatInstructions
	}
}
