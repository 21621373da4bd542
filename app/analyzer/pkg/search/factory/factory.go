package factory

import (
	"errors"
	"fmt"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/search"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/search/searxng"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/search/tavily"
)

// ErrDisabled 未开启市场调研
var ErrDisabled = errors.New("research disabled")

// NewSearcher 根据配置创建搜索实例。未开启调研时返回 ErrDisabled。
func NewSearcher(cfg *config.Config) (search.Searcher, error) {
	if !cfg.Research.Enabled {
		return nil, ErrDisabled
	}

	provider := cfg.Search.Provider
	if provider == "" {
		// 有 tavily key 时默认使用 tavily
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("search provider not configured")
		}
		provider = "tavily"
	}

	switch provider {
	case "tavily":
		if cfg.Search.Tavily.APIKey == "" {
			return nil, fmt.Errorf("tavily api key is missing")
		}
		return tavily.NewClient(cfg.Search.Tavily.APIKey), nil

	case "searxng":
		if cfg.Search.SearXNG.BaseURL == "" {
			return nil, fmt.Errorf("searxng base url is missing")
		}
		return searxng.NewClient(cfg.Search.SearXNG.BaseURL, cfg.Search.SearXNG.Timeout), nil

	default:
		return nil, fmt.Errorf("unknown search provider: %s", provider)
	}
}
