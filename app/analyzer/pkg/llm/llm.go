package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
)

var (
	// ErrNotConfigured 没有配置 API Key
	ErrNotConfigured = errors.New("llm: api key not configured")
	// ErrEmptyResponse 模型返回空内容
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Request 一次生成请求
type Request struct {
	System string
	Prompt string
	// Schema 响应结构。Gemini 直接使用，其它模型以文本形式附在系统提示后
	Schema      *genai.Schema
	Temperature float32
}

// Client 模型客户端，只负责单次调用，重试和限流由调用方处理
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// New 根据配置创建客户端，没有 API Key 时返回 ErrNotConfigured
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	switch cfg.Provider {
	case "", config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	case config.ProviderOpenAI:
		return NewOpenAIClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// IsRateLimited 判断是否为限流错误
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted")
}

// CleanJSON 去掉模型有时附带的 ```json 代码块标记
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
