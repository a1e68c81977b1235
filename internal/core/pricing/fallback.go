package pricing

// DefaultFallbackPrice 找不到任何估價時的每公斤價格
const DefaultFallbackPrice = 5.0

// fallbackPrices 常見食材每公斤的估計價格（EUR），鍵為正規化後的英文名稱
var fallbackPrices = map[string]float64{
	"potato":   1.5,
	"carrot":   1.2,
	"onion":    1.8,
	"tomato":   3.0,
	"lettuce":  2.5,
	"spinach":  4.0,
	"broccoli": 3.5,
	"chicken":  8.0,
	"beef":     15.0,
	"pork":     10.0,
	"fish":     12.0,
	"rice":     2.0,
	"pasta":    1.5,
	"oil":      4.0,
	"butter":   8.0,
	"milk":     1.0,
	"cheese":   12.0,
	"eggs":     3.0,
}

// LookupFallback 以完全相同的鍵查詢估價表
func LookupFallback(key string) (float64, bool) {
	price, ok := fallbackPrices[key]
	return price, ok
}

// FallbackPricePerKilo 先查正規化後的原名，再查正規化後的翻譯，最後回傳預設值
func FallbackPricePerKilo(name string) float64 {
	if price, ok := LookupFallback(Normalize(name)); ok {
		return price
	}
	if price, ok := LookupFallback(Normalize(Translate(name))); ok {
		return price
	}
	return DefaultFallbackPrice
}
