package favorite

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"recipe-finder/internal/core/catalog"
	favoriteStore "recipe-finder/internal/core/favorite"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// 列出收藏時同時向目錄查詢的上限
const lookupConcurrency = 4

// MealLookup 以 ID 查詢食譜
type MealLookup interface {
	LookupByID(ctx context.Context, id string) (*catalog.Meal, error)
}

// Handler 收藏處理程序
type Handler struct {
	store   favoriteStore.Store
	catalog MealLookup
}

// NewHandler 創建收藏處理程序
func NewHandler(store favoriteStore.Store, catalog MealLookup) *Handler {
	return &Handler{store: store, catalog: catalog}
}

// favoriteBody recipeId 與 userId 可以是字串或數字
type favoriteBody struct {
	RecipeID any `json:"recipeId"`
	UserID   any `json:"userId"`
}

// idString 將 JSON 的字串或數字轉成 ID，其他型別與空值回傳空字串
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	default:
		return ""
	}
}

// bind 解析請求體並確認兩個 ID 都存在
func bind(c *gin.Context) (body favoriteBody, userID, recipeID string, ok bool) {
	if err := c.ShouldBindJSON(&body); err != nil {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("Invalid JSON").Wrap(err))
		return body, "", "", false
	}

	userID, recipeID = idString(body.UserID), idString(body.RecipeID)
	if userID == "" || recipeID == "" {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("Missing requested inputs"))
		return body, "", "", false
	}
	return body, userID, recipeID, true
}

// HandleAdd 加入收藏；食譜必須存在於目錄中
func (h *Handler) HandleAdd(c *gin.Context) {
	requestID := common.RequestID(c)
	body, userID, recipeID, ok := bind(c)
	if !ok {
		return
	}

	if _, err := h.catalog.LookupByID(c.Request.Context(), recipeID); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			common.AbortWithError(c, common.ErrNotFound.WithMessage("Recipe not found in catalog"))
			return
		}
		common.LogError("Failed to verify recipe",
			zap.Error(err),
			zap.String("recipe_id", recipeID),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Failed to verify recipe").Wrap(err))
		return
	}

	added, err := h.store.Add(c.Request.Context(), userID, recipeID)
	if err != nil {
		common.LogError("Failed to add favorite",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Error adding favourite").Wrap(err))
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{"message": "Recipe already in favorites"})
		return
	}

	common.LogInfo("Favorite added",
		zap.String("user_id", userID),
		zap.String("recipe_id", recipeID),
		zap.String("request_id", requestID),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Favourite added successfully",
		"data":          body.RecipeID,
		"alreadyExists": false,
	})
}

// HandleRemove 移除收藏
func (h *Handler) HandleRemove(c *gin.Context) {
	requestID := common.RequestID(c)
	_, userID, recipeID, ok := bind(c)
	if !ok {
		return
	}

	err := h.store.Remove(c.Request.Context(), userID, recipeID)
	switch {
	case errors.Is(err, favoriteStore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"message":    "No record found to delete",
			"isFavorite": false,
		})
	case err != nil:
		common.LogError("Failed to remove favorite",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Failed to remove favorite").Wrap(err))
	default:
		c.JSON(http.StatusOK, gin.H{
			"message":    "Recipe removed from favorites successfully",
			"isFavorite": false,
		})
	}
}

// HandleList 依加入順序回傳收藏的完整食譜；查詢失敗的食譜會被略過
func (h *Handler) HandleList(c *gin.Context) {
	requestID := common.RequestID(c)
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("User ID is required"))
		return
	}

	ids, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		common.LogError("Failed to fetch favorites",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Failed to fetch favorites").Wrap(err))
		return
	}

	found := make([]*catalog.Meal, len(ids))
	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			meal, err := h.catalog.LookupByID(c.Request.Context(), id)
			if err != nil {
				common.LogWarn("Failed to fetch favorite recipe",
					zap.Error(err),
					zap.String("recipe_id", id),
					zap.String("request_id", requestID),
				)
				return nil
			}
			found[i] = meal
			return nil
		})
	}
	_ = g.Wait()

	meals := make([]*catalog.Meal, 0, len(found))
	for _, meal := range found {
		if meal != nil {
			meals = append(meals, meal)
		}
	}
	c.JSON(http.StatusOK, meals)
}

// HandleCheck 查詢是否已收藏
func (h *Handler) HandleCheck(c *gin.Context) {
	recipeID := strings.TrimSpace(c.Query("recipeId"))
	userID := strings.TrimSpace(c.Query("userId"))
	if recipeID == "" || userID == "" {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("Recipe ID and User ID are required"))
		return
	}

	isFavorite, err := h.store.IsFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		common.LogError("Failed to check favorite status",
			zap.Error(err),
			zap.String("request_id", common.RequestID(c)),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Failed to check favorite status").Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"isFavorite": isFavorite})
}
