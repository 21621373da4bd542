package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/engine"
	anaLogger "github.com/adamamaa/greenscope/app/analyzer/pkg/logger"
	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/scope/internal/conf"
	"github.com/adamamaa/greenscope/app/scope/internal/usecase"
)

// NewGenerator 初始化分析引擎。没有 API Key 时引擎仍然可用，分析结果为占位结果。
func NewGenerator(c *conf.Analyzer, logger log.Logger) (engine.Generator, func(), error) {
	helper := log.NewHelper(logger)
	cfg := AnalyzerConfig(c)
	cfg.ApplyEnv()

	closer, err := anaLogger.InitLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		helper.Errorf("Failed to init analyzer logger: %v", err)
		if closer, err = anaLogger.InitLogger("info", ""); err != nil {
			return nil, nil, err
		}
	}

	eng, err := engine.NewEngine(context.Background(), cfg)
	if err != nil {
		_ = closer.Close()
		helper.Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("Cleaning up analyzer engine")
		_ = closer.Close()
	}
	return eng, cleanup, nil
}

// AnalyzerConfig 将 conf.Analyzer 转换为 analyzer 的 config.Config，缺省项填充默认值
func AnalyzerConfig(c *conf.Analyzer) *config.Config {
	cfg := &config.Config{}
	if c == nil {
		cfg.Defaults()
		return cfg
	}
	if l := c.Llm; l != nil {
		cfg.LLM = config.LLMConfig{
			Provider:    l.Provider,
			BaseURL:     l.BaseUrl,
			APIKey:      l.ApiKey,
			Model:       l.Model,
			Temperature: l.Temperature,
			Timeout:     int(l.Timeout),
			MaxRetries:  int(l.MaxRetries),
		}
	}
	if s := c.Search; s != nil {
		cfg.Search.Provider = s.Provider
		if s.Tavily != nil {
			cfg.Search.Tavily.APIKey = s.Tavily.ApiKey
		}
		if s.Searxng != nil {
			cfg.Search.SearXNG = config.SearXNGConfig{BaseURL: s.Searxng.BaseUrl, Timeout: int(s.Searxng.Timeout)}
		}
	}
	if r := c.Research; r != nil {
		cfg.Research = config.ResearchConfig{Enabled: r.Enabled, MaxResults: int(r.MaxResults)}
	}
	if f := c.Fetch; f != nil {
		cfg.Fetch = config.FetchConfig{Timeout: int(f.Timeout), MaxChars: int(f.MaxChars)}
	}
	if l := c.Log; l != nil {
		cfg.Log = config.LogConfig{Level: l.Level, File: l.File}
	}
	if cc := c.Concurrency; cc != nil {
		cfg.Concurrency = config.ConcurrencyConfig{QPS: int(cc.Qps), RPM: int(cc.Rpm)}
	}
	cfg.Defaults()
	return cfg
}

// NewSessionOptions 汇总会话用例需要的超时、加载和拦截配置
func NewSessionOptions(a *conf.Analyzer, g *conf.Gating, l *conf.Loading) usecase.Options {
	opts := usecase.Options{
		Timeout:      AnalyzerConfig(a).GenerationTimeout(),
		PollInterval: 2 * time.Second,
	}
	if g != nil {
		opts.Markers = report.Markers{Rejection: g.RejectionMarkers, Impropriety: g.ImproprietyMarkers}
	}
	if l != nil {
		opts.LoadingInterval = parseDuration(l.Interval)
		if d := parseDuration(l.PollInterval); d > 0 {
			opts.PollInterval = d
		}
	}
	return opts
}

func parseDuration(s string) time.Duration {
	if s == "" {
		return 0
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}
