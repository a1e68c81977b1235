package api

import (
	"context"
	"fmt"
	"time"

	"recipe-finder/internal/api/handlers"
	favoriteHandler "recipe-finder/internal/api/handlers/favorite"
	"recipe-finder/internal/api/handlers/health"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/favorite"
	"recipe-finder/internal/core/pricing"
	"recipe-finder/internal/core/suggestion"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// pinger 可做連線檢查的存放
type pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager, store favorite.Store) (*gin.Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("favorite store is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 初始化服務
	scraper := pricing.NewScraper(cfg.Scraper)
	aggregator := pricing.NewAggregator(scraper, cfg.Scraper.Concurrency)
	catalogClient := catalog.NewClient(cfg.Catalog)
	suggestionSvc := suggestion.NewService(cfg.OpenRouter, cacheManager)

	common.LogInfo("Services initialized",
		zap.String("retail_base_url", cfg.Scraper.BaseURL),
		zap.Int("scraper_concurrency", cfg.Scraper.Concurrency),
		zap.String("catalog_base_url", cfg.Catalog.BaseURL),
		zap.Bool("suggestions_enabled", suggestionSvc.Enabled()),
		zap.Bool("cache_enabled", cacheManager != nil),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	// 健康檢查路由
	checks := map[string]health.Checker{}
	if p, ok := store.(pinger); ok {
		checks["favorites"] = p.Ping
	}
	healthHandler := health.NewHandler(cfg.App.Version, cacheManager, checks)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		recipes := recipeHandler.NewHandler(catalogClient, aggregator)
		favorites := favoriteHandler.NewHandler(store, catalogClient)
		ai := handlers.NewAIHandler(suggestionSvc)

		// 成本估算沒有副作用，可重複送出
		api.POST("/recipe/cost", recipes.HandleCalculateCost)

		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("/search", recipes.HandleSearch)
			recipeGroup.GET("/filter", recipes.HandleFilter)
			recipeGroup.GET("/:id", recipes.HandleLookup)
			recipeGroup.GET("/:id/cost", recipes.HandleMealCost)
		}

		// 會寫入狀態或呼叫付費模型的路由才做重複請求檢查
		deduped := api.Group("", middleware.Deduplication(cfg.DedupWindow))

		favoriteGroup := deduped.Group("/favorites")
		{
			favoriteGroup.POST("", favorites.HandleAdd)
			favoriteGroup.DELETE("", favorites.HandleRemove)
			favoriteGroup.GET("", favorites.HandleList)
			favoriteGroup.GET("/check", favorites.HandleCheck)
		}

		deduped.POST("/ai/suggest-recipes", ai.SuggestRecipes)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
	)

	return router, nil
}
