package pricing

import (
	"regexp"
	"strings"
)

var (
	nonLetterRe  = regexp.MustCompile(`[^a-z\s]`)
	adjectiveRe  = regexp.MustCompile(`\b(small|large|medium|big|fresh|organic|raw|cooked|dried|frozen)\b`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// 只處理這四個複數，沒有一般化的規則
	singulars = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\bpotatoes?\b`), "potato"},
		{regexp.MustCompile(`\btomatoes?\b`), "tomato"},
		{regexp.MustCompile(`\bcarrots?\b`), "carrot"},
		{regexp.MustCompile(`\bonions?\b`), "onion"},
	}
)

// Normalize 將食材名稱整理成搜尋用的形式。
// 非 a-z 的字元（包含數字與重音字母）都會被移除，這一步對西班牙文是有損的。
// 不換行空白視為一般空白。
func Normalize(raw string) string {
	s := strings.ToLower(strings.ReplaceAll(raw, "\u00a0", " "))
	s = nonLetterRe.ReplaceAllString(s, "")
	s = adjectiveRe.ReplaceAllString(s, "")
	for _, sg := range singulars {
		s = sg.re.ReplaceAllString(s, sg.repl)
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
