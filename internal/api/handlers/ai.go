package handlers

import (
	"context"
	"errors"
	"net/http"

	"recipe-finder/internal/core/suggestion"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Suggester 依食材產生食譜建議
type Suggester interface {
	Suggest(ctx context.Context, ingredients []string, recipe string) ([]string, error)
}

// AIHandler AI 處理器
type AIHandler struct {
	suggester Suggester
}

// NewAIHandler 創建 AI 處理器
func NewAIHandler(suggester Suggester) *AIHandler {
	return &AIHandler{
		suggester: suggester,
	}
}

// SuggestRequest 建議請求；recipe 可省略
type SuggestRequest struct {
	AvailableIngredients []string `json:"availableIngredients"`
	Recipe               string   `json:"recipe,omitempty"`
}

// SuggestRecipes 以可用食材推薦食譜
func (h *AIHandler) SuggestRecipes(c *gin.Context) {
	requestID := common.RequestID(c)

	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("A list of ingredients is required").Wrap(err))
		return
	}
	if len(req.AvailableIngredients) == 0 {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("A list of ingredients is required"))
		return
	}

	suggestions, err := h.suggester.Suggest(c.Request.Context(), req.AvailableIngredients, req.Recipe)
	switch {
	case errors.Is(err, suggestion.ErrNoIngredients):
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("A list of ingredients is required"))
		return
	case errors.Is(err, suggestion.ErrDisabled):
		common.AbortWithError(c, common.ErrServiceUnavailable.WithMessage("Recipe suggestions are not configured"))
		return
	case err != nil:
		common.LogError("Failed to generate recipe suggestions",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.AbortWithError(c, common.ErrInternalError.WithMessage("Failed to generate recipe suggestions").Wrap(err))
		return
	}

	common.LogInfo("Recipe suggestions generated",
		zap.String("request_id", requestID),
		zap.Int("ingredients", len(req.AvailableIngredients)),
		zap.Int("suggestions", len(suggestions)),
	)

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
	})
}
