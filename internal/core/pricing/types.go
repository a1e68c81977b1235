package pricing

// Currency 所有價格皆為歐元
const Currency = "EUR"

// 回應 source 標籤
const (
	SourceLive          = "DIA España"
	SourceWithEstimates = "DIA España + Estimates"
)

// 可接受的抓取價格範圍，超出視為非價格雜訊
const (
	MinPrice = 0.10
	MaxPrice = 500.0
)

// IngredientRequest 食譜中的一行食材
type IngredientRequest struct {
	Ingredient string `json:"ingredient"`
	Measure    string `json:"measure"`
}

// ParsedQuantity 從 measure 解析出的數量與單位
type ParsedQuantity struct {
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
	OriginalText string  `json:"originalText"`
}

// ScrapeResult 一次即時查價的結果；Found 為 false 時 Price 一定是 nil
type ScrapeResult struct {
	Price            *float64 `json:"price"`
	Currency         string   `json:"currency"`
	Found            bool     `json:"found"`
	SearchURL        string   `json:"searchUrl,omitempty"`
	PricePerKiloText string   `json:"pricePerKiloText,omitempty"`
}

// notFound 所有失敗情況統一回傳的結果
func notFound() ScrapeResult {
	return ScrapeResult{Currency: Currency}
}

// IngredientCost 回傳給呼叫端的單行結果
type IngredientCost struct {
	Ingredient       string          `json:"ingredient"`
	Measure          string          `json:"measure"`
	Price            *float64        `json:"price"`
	Currency         string          `json:"currency"`
	Found            bool            `json:"found"`
	SearchedTerm     string          `json:"searchedTerm"`
	PricePerKiloText string          `json:"pricePerKiloText,omitempty"`
	ParsedQuantity   *ParsedQuantity `json:"parsedQuantity,omitempty"`
}

// CostCalculationResponse 整份食譜的成本估算
type CostCalculationResponse struct {
	Ingredients   []IngredientCost `json:"ingredients"`
	TotalCost     float64          `json:"totalCost"`
	Currency      string           `json:"currency"`
	EstimatedCost bool             `json:"estimatedCost"`
	Source        string           `json:"source"`
}
