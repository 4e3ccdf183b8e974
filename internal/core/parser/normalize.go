package parser

import (
	"regexp"
	"strings"
)

var headingMarkerPattern = regexp.MustCompile(`#+`)

// Normalize 清除 markdown 粗體與標題記號，並修剪前後空白
// 必須在任何段落／清單解析之前執行，重複執行結果不變
func Normalize(content string) string {
	cleaned := strings.ReplaceAll(content, "**", "")
	cleaned = headingMarkerPattern.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
