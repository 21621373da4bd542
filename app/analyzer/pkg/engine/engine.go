package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/fetch"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/llm"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/logger"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/search"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/search/factory"
	"github.com/adamamaa/greenscope/app/common/report"
)

// ErrEmptyIdea 创意为空
var ErrEmptyIdea = errors.New("engine: empty idea")

// Request 一次分析请求
type Request struct {
	Idea string
	// ReferenceURL 可选的参考链接，抓取失败不影响分析
	ReferenceURL string
}

// Generator 由创意生成分析报告
type Generator interface {
	Generate(ctx context.Context, req Request) (*report.AnalysisResult, error)
}

// Engine 核心处理引擎
type Engine struct {
	cfg      *config.Config
	client   llm.Client
	searcher search.Searcher
	fetcher  fetch.Fetcher
	limiter  *rate.Limiter
	// baseDelay 限流重试的初始退避时间
	baseDelay time.Duration
}

var _ Generator = (*Engine)(nil)

// NewEngine 按配置创建引擎。
// 没有 API Key 时不报错，Generate 返回 llm.ErrNotConfigured 由调用方降级为占位结果。
func NewEngine(ctx context.Context, cfg *config.Config) (*Engine, error) {
	client, err := llm.New(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Log.Warn("未配置 LLM API Key，将返回占位结果")
	case err != nil:
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	searcher, err := factory.NewSearcher(cfg)
	switch {
	case errors.Is(err, factory.ErrDisabled):
	case err != nil:
		logger.Log.Warnf("搜索客户端初始化失败，已关闭市场调研: %v", err)
	}

	fetcher := fetch.NewReadable(time.Duration(cfg.Fetch.Timeout)*time.Second, cfg.Fetch.MaxChars)
	return New(cfg, client, searcher, fetcher), nil
}

// New 使用给定的组件创建引擎，client 为 nil 表示未配置
func New(cfg *config.Config, client llm.Client, searcher search.Searcher, fetcher fetch.Fetcher) *Engine {
	cfg.Defaults()
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	e := &Engine{
		cfg:       cfg,
		client:    client,
		searcher:  searcher,
		fetcher:   fetcher,
		limiter:   rate.NewLimiter(limit, cfg.Concurrency.QPS),
		baseDelay: 2 * time.Second,
	}
	if client != nil {
		logger.Log.Infof("分析引擎已就绪: model=%s, limit=%.2f req/s, burst=%d", client.Name(), limit, cfg.Concurrency.QPS)
	}
	return e
}

// Generate 执行一次分析
func (e *Engine) Generate(ctx context.Context, req Request) (*report.AnalysisResult, error) {
	idea := strings.TrimSpace(req.Idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	if e.client == nil {
		return nil, llm.ErrNotConfigured
	}

	pc := PromptContext{
		Reference: e.reference(ctx, req.ReferenceURL),
		Research:  e.research(ctx, idea),
	}
	r, err := e.generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      BuildPrompt(idea, pc),
		Schema:      ResponseSchema(),
		Temperature: e.cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, err
	}
	r.Normalize()
	logger.Log.Infof("分析完成: grade=%s", r.HarshCritique.Grade)
	return r, nil
}

// generate 限流后调用模型。429 按指数退避重试，空响应和无效 JSON 直接重试。
func (e *Engine) generate(ctx context.Context, req llm.Request) (*report.AnalysisResult, error) {
	maxRetries := e.cfg.LLM.MaxRetries
	var lastErr error

	for i := 0; i <= maxRetries; i++ {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		content, err := e.client.Generate(ctx, req)
		if err != nil {
			switch {
			case llm.IsRateLimited(err):
				lastErr = err
				if i < maxRetries {
					delay := e.baseDelay * time.Duration(1<<i)
					logger.Log.Warnf("触发限流，%v 后重试 (%d/%d)", delay, i+1, maxRetries)
					if err := sleep(ctx, delay); err != nil {
						return nil, err
					}
					continue
				}
			case errors.Is(err, llm.ErrEmptyResponse):
				lastErr = err
				if i < maxRetries {
					continue
				}
			}
			return nil, fmt.Errorf("generate: %w", err)
		}

		var r report.AnalysisResult
		if err := json.Unmarshal([]byte(llm.CleanJSON(content)), &r); err != nil {
			logger.Log.Warnf("响应不是有效 JSON (%d/%d): %v", i+1, maxRetries+1, err)
			lastErr = fmt.Errorf("json unmarshal: %w", err)
			continue
		}
		return &r, nil
	}
	return nil, fmt.Errorf("failed after retries: %w", lastErr)
}

func (e *Engine) reference(ctx context.Context, rawURL string) string {
	if strings.TrimSpace(rawURL) == "" || e.fetcher == nil {
		return ""
	}
	text, err := e.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		logger.Log.Warnf("参考链接抓取失败 [%s]: %v", rawURL, err)
		return ""
	}
	logger.Log.Debugf("参考链接抓取成功 [%s]: %d 字", rawURL, len([]rune(text)))
	return text
}

func (e *Engine) research(ctx context.Context, idea string) string {
	if e.searcher == nil {
		return ""
	}
	resp, err := e.searcher.Search(ctx, &search.Request{
		Query:      fetch.Truncate(idea, 200) + " 시장 규모 경쟁사",
		Topic:      "general",
		MaxResults: e.cfg.Research.MaxResults,
		Language:   "ko",
	})
	if err != nil {
		logger.Log.Warnf("市场调研搜索失败: %v", err)
		return ""
	}
	return resp.Digest(e.cfg.Fetch.MaxChars)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
