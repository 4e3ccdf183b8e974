package parser

import (
	"regexp"
	"strings"
)

// 區段邊界：下一個「單字加冒號換行」形式的標題行
// 若下一個標題不符合這個形式，區段會吞掉剩餘全文（已知限制，刻意保留）
var nextHeadingPattern = regexp.MustCompile(`\n[a-zA-Z]+[:\s]*\n`)

// 顯示端的邊界另外承認全大寫標題行（兩條路徑的正則不同，不可統一）
var displayHeadingPattern = regexp.MustCompile(`\n([A-Z][A-Z \t]+|[A-Za-z][A-Za-z ]*:)[ \t]*\n`)

// ExtractSection 依優先序嘗試關鍵字，回傳第一個命中的區段內容
// 區段自標題行之後起，至下一個空行、下一個可辨識標題或文末為止
// 找不到時回傳 ("", false)，呼叫端應視為「此區段為空」而非錯誤
func ExtractSection(content string, sectionNames []string) (string, bool) {
	return extractSection(content, sectionNames, nextHeadingPattern)
}

// ExtractSectionDisplay 顯示端變體：邊界正則多認得全大寫標題行
func ExtractSectionDisplay(content string, sectionNames []string) (string, bool) {
	return extractSection(content, sectionNames, displayHeadingPattern)
}

func extractSection(content string, sectionNames []string, boundary *regexp.Regexp) (string, bool) {
	for _, name := range sectionNames {
		heading := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name) + `[:\s]*\n`)
		loc := heading.FindStringIndex(content)
		if loc == nil {
			continue
		}

		rest := content[loc[1]:]
		end := len(rest)

		if i := strings.Index(rest, "\n\n"); i >= 0 && i < end {
			end = i
		}
		if m := boundary.FindStringIndex(rest); m != nil && m[0] < end {
			end = m[0]
		}

		return strings.TrimSpace(rest[:end]), true
	}
	return "", false
}

// ExtractInfo 擷取單行中繼資料（份量、備料時間等），只取第一次命中
func ExtractInfo(content string, keywords []string) string {
	for _, keyword := range keywords {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword) + `[:\s]*([^\n]+)`)
		if m := re.FindStringSubmatch(content); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}
