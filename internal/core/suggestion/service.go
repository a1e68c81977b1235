package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

var (
	// ErrDisabled 未設定 API Key 或已關閉
	ErrDisabled = errors.New("recipe suggestions are disabled")
	// ErrNoIngredients 沒有任何可用食材
	ErrNoIngredients = errors.New("at least one ingredient is required")
)

const cacheNamespace = "suggest"

// Service 依可用食材推薦食譜
type Service struct {
	completer    Completer
	cacheManager *cache.Manager
}

// suggestionReply 模型應回傳的 JSON
type suggestionReply struct {
	Suggestions []string `json:"suggestions"`
}

// NewService 依設定建立服務；沒有 API Key 時建立關閉狀態的服務
func NewService(cfg config.OpenRouterConfig, cacheManager *cache.Manager) *Service {
	if !cfg.Enabled || cfg.APIKey == "" {
		common.LogWarn("Recipe suggestions disabled", zap.Bool("enabled", cfg.Enabled))
		return &Service{cacheManager: cacheManager}
	}

	common.LogInfo("Recipe suggestions enabled",
		zap.String("model", cfg.Model),
		zap.String("key", config.MaskAPIKey(cfg.APIKey)),
	)
	return NewServiceWithCompleter(NewOpenRouterClient(cfg), cacheManager)
}

// NewServiceWithCompleter 使用指定的 Completer
func NewServiceWithCompleter(completer Completer, cacheManager *cache.Manager) *Service {
	return &Service{completer: completer, cacheManager: cacheManager}
}

// Enabled 是否可以產生建議
func (s *Service) Enabled() bool {
	return s.completer != nil
}

// Suggest 回傳以可用食材能做的食譜建議；recipe 可為空，有值時提供變化版本
func (s *Service) Suggest(ctx context.Context, ingredients []string, recipe string) ([]string, error) {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoIngredients
	}
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	prompt := buildPrompt(cleaned, strings.TrimSpace(recipe))
	key := cache.Key(cacheNamespace, prompt)

	if content, ok := s.cacheManager.Get(key); ok {
		if suggestions, err := parseReply(content); err == nil {
			return suggestions, nil
		}
	}

	content, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	suggestions, err := parseReply(content)
	if err != nil {
		common.LogWarn("Unparseable suggestion reply", zap.Error(err), zap.Int("length", len(content)))
		return nil, err
	}

	s.cacheManager.Set(key, content)
	return suggestions, nil
}

// buildPrompt 組出 prompt；空白統一合併，讓相同輸入得到相同快取鍵
func buildPrompt(ingredients []string, recipe string) string {
	var b strings.Builder
	b.WriteString("Eres un experto en cocina. Basándote en los ingredientes disponibles, ")
	b.WriteString("sugiere recetas específicas que se puedan hacer con esos ingredientes.\n\n")
	fmt.Fprintf(&b, "Ingredientes disponibles: %s\n\n", strings.Join(ingredients, ", "))
	if recipe != "" {
		fmt.Fprintf(&b, "Receta original: %s\nPropón variaciones de esta receta.\n\n", recipe)
	}
	b.WriteString("Sugiere 4-5 recetas específicas. Para cada receta incluye el nombre ")
	b.WriteString("y una breve descripción de cómo prepararla (2-3 líneas máximo). ")
	b.WriteString("Haz que las sugerencias sean prácticas, deliciosas y fáciles de preparar. Responde en español.\n\n")
	b.WriteString(`Devuelve solo un objeto JSON con el formato {"suggestions": ["Nombre: descripción", ...]}.`)

	return strings.Join(strings.Fields(b.String()), " ")
}

// parseReply 從模型回覆取出建議清單，忽略空字串
func parseReply(content string) ([]string, error) {
	obj, err := common.ExtractJSONObject(content)
	if err != nil {
		return nil, fmt.Errorf("invalid suggestion reply: %w", err)
	}

	var reply suggestionReply
	if err := common.ParseJSON(obj, &reply); err != nil {
		return nil, fmt.Errorf("invalid suggestion reply: %w", err)
	}

	suggestions := make([]string, 0, len(reply.Suggestions))
	for _, s := range reply.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			suggestions = append(suggestions, s)
		}
	}
	return suggestions, nil
}
