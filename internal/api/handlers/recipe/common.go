package recipe

import (
	"bytes"
	"context"
	"encoding/json"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/pricing"
)

// Catalog 食譜目錄查詢
type Catalog interface {
	SearchByName(ctx context.Context, name string) ([]catalog.Meal, error)
	FilterByIngredient(ctx context.Context, ingredient string) ([]catalog.MealSummary, error)
	LookupByID(ctx context.Context, id string) (*catalog.Meal, error)
}

// CostCalculator 食材成本估算
type CostCalculator interface {
	CalculateCosts(ctx context.Context, items []pricing.IngredientRequest) *pricing.CostCalculationResponse
}

// Handler 食譜與成本處理程序
type Handler struct {
	catalog Catalog
	costs   CostCalculator
}

// NewHandler 創建新的食譜處理程序
func NewHandler(catalog Catalog, costs CostCalculator) *Handler {
	return &Handler{
		catalog: catalog,
		costs:   costs,
	}
}

// parseIngredientItems 解析 ingredients 陣列。
// 不是陣列（含 null 或缺少欄位）時 ok 為 false；
// 陣列中不是物件、或 ingredient 不是非空字串的項目會被略過，非字串的 measure 視為空字串。
func parseIngredientItems(raw json.RawMessage) (items []pricing.IngredientRequest, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}

	items = make([]pricing.IngredientRequest, 0, len(elems))
	for _, elem := range elems {
		var obj map[string]any
		if err := json.Unmarshal(elem, &obj); err != nil || obj == nil {
			continue
		}

		name, _ := obj["ingredient"].(string)
		if name == "" {
			continue
		}
		measure, _ := obj["measure"].(string)

		items = append(items, pricing.IngredientRequest{
			Ingredient: name,
			Measure:    measure,
		})
	}
	return items, true
}
