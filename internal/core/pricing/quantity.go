package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

const unitPattern = `(cups?|cup|tbsp|tablespoons?|tsp|teaspoons?|oz|ounces?|lbs?|pounds?|g|grams?|kg|kilograms?|ml|milliliters?|l|liters?|pints?|quarts?)\b`

// numberStart 數字前不可緊接數字、小數點或斜線，避免 "1/2" 被讀成 2
const numberStart = `(?:^|[^\d./])`

// 依序嘗試，第一個符合的為準
var quantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(numberStart + `(\d+(?:\.\d+)?)\s*` + unitPattern),
	regexp.MustCompile(numberStart + `((?:\d+\s+)?\d+/\d+)\s*` + unitPattern),
	regexp.MustCompile(numberStart + `(\d+(?:\.\d+)?)\s*$`),
}

// DefaultUnit 量詞沒有單位時視為公克
const DefaultUnit = "g"

// ParseQuantity 從 measure 取出數量與單位。
// 空字串或沒有任何樣式符合時回傳 nil，代表數量未知而不是零。
func ParseQuantity(measure string) *ParsedQuantity {
	text := strings.ToLower(strings.TrimSpace(measure))
	if text == "" {
		return nil
	}

	for _, re := range quantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}

		unit := DefaultUnit
		if len(m) > 2 && m[2] != "" {
			unit = m[2]
		}

		return &ParsedQuantity{
			Amount:       amount,
			Unit:         unit,
			OriginalText: measure,
		}
	}

	return nil
}

// parseAmount 支援整數、小數、a/b 分數與 "1 1/2" 帶分數
func parseAmount(s string) (float64, bool) {
	if parts := strings.Fields(s); len(parts) == 2 {
		w, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, false
		}
		f, ok := parseAmount(parts[1])
		if !ok {
			return 0, false
		}
		return w + f, true
	}

	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
