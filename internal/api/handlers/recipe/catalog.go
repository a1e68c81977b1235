package recipe

import (
	"net/http"
	"strings"

	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// HandleSearch 以名稱搜尋食譜
func (h *Handler) HandleSearch(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("Query parameter 'name' is required"))
		return
	}

	meals, err := h.catalog.SearchByName(c.Request.Context(), name)
	if err != nil {
		h.abortCatalogError(c, common.RequestID(c), err)
		return
	}
	if meals == nil {
		meals = []catalog.Meal{}
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// HandleFilter 列出使用指定食材的食譜
func (h *Handler) HandleFilter(c *gin.Context) {
	ingredient := strings.TrimSpace(c.Query("ingredient"))
	if ingredient == "" {
		common.AbortWithError(c, common.ErrInvalidRequest.WithMessage("Query parameter 'ingredient' is required"))
		return
	}

	meals, err := h.catalog.FilterByIngredient(c.Request.Context(), ingredient)
	if err != nil {
		h.abortCatalogError(c, common.RequestID(c), err)
		return
	}
	if meals == nil {
		meals = []catalog.MealSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// HandleLookup 取得單一食譜
func (h *Handler) HandleLookup(c *gin.Context) {
	meal, err := h.catalog.LookupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortCatalogError(c, common.RequestID(c), err)
		return
	}

	c.JSON(http.StatusOK, meal)
}
