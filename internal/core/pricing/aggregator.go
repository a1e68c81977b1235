package pricing

import (
	"context"
	"math"

	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregator 逐行查價並加總整份食譜的成本
type Aggregator struct {
	lookup      PriceLookup
	concurrency int
}

// NewAggregator 建立成本計算器；concurrency <= 1 時依序查價
func NewAggregator(lookup PriceLookup, concurrency int) *Aggregator {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Aggregator{
		lookup:      lookup,
		concurrency: concurrency,
	}
}

// lineResult 單行查價結果與是否使用估價
type lineResult struct {
	cost      IngredientCost
	estimated bool
}

// CalculateCosts 計算所有食材的成本。沒有食材名稱的項目會被略過，
// 其餘項目的輸出順序與輸入相同，任何單行失敗都只會改用估價。
func (a *Aggregator) CalculateCosts(ctx context.Context, items []IngredientRequest) *CostCalculationResponse {
	valid := make([]IngredientRequest, 0, len(items))
	for _, item := range items {
		if item.Ingredient == "" {
			continue
		}
		valid = append(valid, item)
	}

	// 每行的逾時由 PriceLookup 控制；請求截止不可中斷尚未查價的食材
	lookupCtx := context.WithoutCancel(ctx)

	lines := make([]lineResult, len(valid))
	if a.concurrency == 1 {
		for i, item := range valid {
			lines[i] = a.priceLine(lookupCtx, item)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(a.concurrency)
		for i, item := range valid {
			i, item := i, item
			g.Go(func() error {
				lines[i] = a.priceLine(lookupCtx, item)
				return nil
			})
		}
		_ = g.Wait()
	}

	resp := &CostCalculationResponse{
		Ingredients: make([]IngredientCost, 0, len(lines)),
		Currency:    Currency,
		Source:      SourceLive,
	}

	var total float64
	found := 0
	for _, line := range lines {
		resp.Ingredients = append(resp.Ingredients, line.cost)
		if line.cost.Price != nil {
			total += *line.cost.Price
		}
		if line.estimated {
			resp.EstimatedCost = true
		} else {
			found++
		}
	}

	resp.TotalCost = RoundPrice(total)
	if resp.EstimatedCost {
		resp.Source = SourceWithEstimates
	}

	common.LogInfo("Cost calculation completed",
		zap.Int("requested", len(items)),
		zap.Int("priced", len(lines)),
		zap.Int("found_live", found),
		zap.Float64("total_cost", resp.TotalCost),
		zap.Bool("estimated", resp.EstimatedCost),
	)

	return resp
}

// priceLine 查單行價格；查不到時改用估價表
func (a *Aggregator) priceLine(ctx context.Context, item IngredientRequest) lineResult {
	res := a.safeLookup(ctx, item.Ingredient)

	cost := IngredientCost{
		Ingredient:       item.Ingredient,
		Measure:          item.Measure,
		Currency:         Currency,
		SearchedTerm:     Translate(item.Ingredient),
		PricePerKiloText: res.PricePerKiloText,
		ParsedQuantity:   ParseQuantity(item.Measure),
	}

	if res.Found && res.Price != nil {
		price := *res.Price
		cost.Price = &price
		cost.Found = true
		return lineResult{cost: cost}
	}

	fallback := FallbackPricePerKilo(item.Ingredient)
	cost.Price = &fallback
	return lineResult{cost: cost, estimated: true}
}

// safeLookup 保護呼叫端不受 PriceLookup 實作的 panic 影響
func (a *Aggregator) safeLookup(ctx context.Context, ingredient string) (res ScrapeResult) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError("Price lookup panic recovered",
				zap.Any("error", r),
				zap.String("ingredient", ingredient),
			)
			res = notFound()
		}
	}()
	return a.lookup.LookupPrice(ctx, ingredient)
}

// RoundPrice 四捨五入到小數兩位（遠離零）
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
