package recipe

import (
	"encoding/json"
	"errors"
	"net/http"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const invalidIngredientsMessage = "Invalid ingredients data. Expected an array of ingredients."

// CostRequest 成本估算請求；ingredients 保留原始 JSON 以便逐項驗證
type CostRequest struct {
	Ingredients json.RawMessage `json:"ingredients"`
}

// HandleCalculateCost 估算一組食材的成本
func (h *Handler) HandleCalculateCost(c *gin.Context) {
	requestID := common.RequestID(c)
	defer h.recoverCostPanic(c, requestID)

	var req CostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid cost request body",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage(invalidIngredientsMessage).Wrap(err))
		return
	}

	items, ok := parseIngredientItems(req.Ingredients)
	if !ok {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage(invalidIngredientsMessage))
		return
	}

	common.LogInfo("Calculating recipe cost",
		zap.String("request_id", requestID),
		zap.Int("ingredients", len(items)),
	)

	c.JSON(http.StatusOK, h.costs.CalculateCosts(c.Request.Context(), items))
}

// HandleMealCost 估算目錄中某道食譜的成本
func (h *Handler) HandleMealCost(c *gin.Context) {
	requestID := common.RequestID(c)
	defer h.recoverCostPanic(c, requestID)

	meal, err := h.catalog.LookupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortCatalogError(c, requestID, err)
		return
	}

	c.JSON(http.StatusOK, h.costs.CalculateCosts(c.Request.Context(), meal.Ingredients()))
}

// recoverCostPanic 估算過程中的 panic 轉成 500
func (h *Handler) recoverCostPanic(c *gin.Context, requestID string) {
	if r := recover(); r != nil {
		common.LogError("Cost calculation panic recovered",
			zap.Any("error", r),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Internal server error during cost calculation"))
	}
}

// abortCatalogError 目錄查無資料回 404，其他錯誤回 502
func (h *Handler) abortCatalogError(c *gin.Context, requestID string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		common.AbortWithError(c, common.ErrNotFound.WithMessage("Recipe not found"))
		return
	}
	common.LogError("Catalog request failed",
		zap.Error(err),
		zap.String("request_id", requestID),
	)
	common.AbortWithError(c, common.ErrBadGateway.Wrap(err))
}
