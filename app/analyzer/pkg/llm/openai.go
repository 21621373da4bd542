package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
)

// chatGenerator 是 eino ChatModel 的子集
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// OpenAIClient 通过 eino 调用 OpenAI 兼容接口
type OpenAIClient struct {
	chat  chatGenerator
	model string
}

// NewOpenAIClient 创建 OpenAI 兼容客户端
func NewOpenAIClient(ctx context.Context, cfg config.LLMConfig) (*OpenAIClient, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return &OpenAIClient{chat: cm, model: cfg.Model}, nil
}

// Name 客户端名称
func (c *OpenAIClient) Name() string { return "openai:" + c.model }

// Generate 返回模型输出的文本。这类接口没有响应结构参数，结构以 JSON 形式放进系统提示。
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	system := req.System
	if req.Schema != nil {
		raw, err := json.Marshal(req.Schema)
		if err != nil {
			return "", fmt.Errorf("marshal schema: %w", err)
		}
		system = strings.TrimSpace(system + "\n다음 JSON 스키마를 따르는 JSON 객체 하나만 출력하십시오. 마크다운 표기를 사용하지 마십시오.\n" + string(raw))
	}

	messages := []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(req.Prompt),
	}
	resp, err := c.chat.Generate(ctx, messages, model.WithTemperature(req.Temperature))
	if err != nil {
		return "", err
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
