package favorite

import (
	"context"
	"errors"
)

// ErrNotFound 使用者沒有收藏該食譜
var ErrNotFound = errors.New("favorite not found")

// Store 收藏存放介面；List 依加入順序回傳食譜 ID
type Store interface {
	Add(ctx context.Context, userID, recipeID string) (bool, error)
	Remove(ctx context.Context, userID, recipeID string) error
	List(ctx context.Context, userID string) ([]string, error)
	IsFavorite(ctx context.Context, userID, recipeID string) (bool, error)
}
