package parser

import (
	"regexp"
	"strings"
)

var (
	bulletPrefixPattern = regexp.MustCompile(`^[-*•]\s*`)
	numberPrefixPattern = regexp.MustCompile(`^\d+\.\s*`)
	labelLinePattern    = regexp.MustCompile(`^[a-zA-Z]+[:\s]*$`)

	numberedSplitPattern = regexp.MustCompile(`\n\d+\.\s*`)
	// 句子回退切分：空行，或句點空格後接大寫字母（大寫字母保留在下一段）
	sentenceSplitPattern = regexp.MustCompile(`\n\n|\. [A-Z]`)
)

// ParseList 將區段文字切成無序清單（食材、小訣竅）
// 逐行去除項目符號與數字前綴，丟棄空行與殘留的區段標籤字
func ParseList(text string) []string {
	items := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		line = bulletPrefixPattern.ReplaceAllString(line, "")
		line = numberPrefixPattern.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" || labelLinePattern.MatchString(line) {
			continue
		}
		items = append(items, line)
	}
	return items
}

// ParseSteps 將指示區段切成有序步驟
// 主策略以行首「<數字>.」切分；若結果不超過一項（編號缺失或壞掉）
// 退回以段落或句界切分，並只保留超過 10 個字元的片段
// 「<=1 即回退」是定義性的門檻，不可更動
func ParseSteps(text string) []string {
	steps := make([]string, 0)
	for _, part := range numberedSplitPattern.Split(text, -1) {
		part = numberPrefixPattern.ReplaceAllString(part, "")
		part = strings.TrimSpace(part)
		if part != "" {
			steps = append(steps, part)
		}
	}

	if len(steps) <= 1 {
		return splitSentences(text)
	}
	return steps
}

func splitSentences(text string) []string {
	steps := make([]string, 0)
	last := 0
	for _, m := range sentenceSplitPattern.FindAllStringIndex(text, -1) {
		cut := m[1]
		if text[m[0]] == '.' {
			// 句點切分不吃掉開頭的大寫字母
			cut = m[1] - 1
		}
		steps = append(steps, text[last:m[0]])
		last = cut
	}
	steps = append(steps, text[last:])

	kept := make([]string, 0, len(steps))
	for _, s := range steps {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			kept = append(kept, s)
		}
	}
	return kept
}
