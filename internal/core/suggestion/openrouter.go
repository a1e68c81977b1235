package suggestion

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Completer 送出單一 prompt 並取得模型回覆文字
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Message 消息結構
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest chat completions 請求
type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

// chatResponse chat completions 回應
type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// apiError OpenRouter 錯誤格式
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenRouterClient OpenRouter chat completions 客戶端
type OpenRouterClient struct {
	client    *resty.Client
	model     string
	maxTokens int
}

// NewOpenRouterClient 創建 OpenRouter 客戶端
func NewOpenRouterClient(cfg config.OpenRouterConfig) *OpenRouterClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("HTTP-Referer", "https://recipe-finder.app").
		SetHeader("X-Title", "Recipe Finder")

	return &OpenRouterClient{
		client:    client,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

// Complete 生成回應
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := chatRequest{
		Model:     c.model,
		Messages:  []Message{{Role: "user", Content: prompt}},
		MaxTokens: c.maxTokens,
	}

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")
	common.LogUpstreamCall("openrouter", time.Since(start), err, zap.String("model", c.model))
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		var apiErr apiError
		if jsonErr := common.ParseJSONBytes(resp.Body(), &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("OpenRouter API returned %d: %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("OpenRouter API returned %d", resp.StatusCode())
	}

	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	common.LogDebug("OpenRouter usage",
		zap.String("id", result.ID),
		zap.Int("prompt_tokens", result.Usage.PromptTokens),
		zap.Int("completion_tokens", result.Usage.CompletionTokens),
	)

	return result.Choices[0].Message.Content, nil
}
