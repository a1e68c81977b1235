package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotFound 目錄中沒有該食譜
var ErrNotFound = errors.New("meal not found")

// Client TheMealDB 客戶端
type Client struct {
	client *resty.Client
}

// mealsResponse TheMealDB 的回應外層；查無資料時 meals 為 null
type mealsResponse[T any] struct {
	Meals []T `json:"meals"`
}

// NewClient 創建目錄客戶端
func NewClient(cfg config.CatalogConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// SearchByName 以名稱搜尋食譜；名稱為空時回傳 nil
func (c *Client) SearchByName(ctx context.Context, name string) ([]Meal, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	return fetch[Meal](ctx, c.client, "/search.php", "s", name)
}

// FilterByIngredient 列出使用指定食材的食譜；食材為空時回傳 nil
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]MealSummary, error) {
	if strings.TrimSpace(ingredient) == "" {
		return nil, nil
	}
	return fetch[MealSummary](ctx, c.client, "/filter.php", "i", ingredient)
}

// LookupByID 取得單一食譜，查無資料時回傳 ErrNotFound
func (c *Client) LookupByID(ctx context.Context, id string) (*Meal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}

	meals, err := fetch[Meal](ctx, c.client, "/lookup.php", "i", id)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, ErrNotFound
	}
	return &meals[0], nil
}

func fetch[T any](ctx context.Context, client *resty.Client, path, param, value string) ([]T, error) {
	start := time.Now()
	resp, err := client.R().
		SetContext(ctx).
		SetQueryParam(param, value).
		Get(path)
	common.LogUpstreamCall("catalog", time.Since(start), err,
		zap.String("path", path),
		zap.String("query", value),
	)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode())
	}

	var result mealsResponse[T]
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	return result.Meals, nil
}
