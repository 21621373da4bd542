package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider 名称
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// DefaultGeminiModel 未配置模型时使用
const DefaultGeminiModel = "gemini-3-pro-preview"

// Config 分析器配置
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Research    ResearchConfig    `yaml:"research"`
	Fetch       FetchConfig       `yaml:"fetch"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	// Provider gemini 或 openai，为空时按 gemini 处理
	Provider    string  `yaml:"provider"`
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	// Timeout 单次生成超时（秒）
	Timeout    int `yaml:"timeout"`
	MaxRetries int `yaml:"max_retries"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider string        `yaml:"provider"`
	Tavily   TavilyConfig  `yaml:"tavily"`
	SearXNG  SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// ResearchConfig 市场调研上下文
type ResearchConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxResults int  `yaml:"max_results"`
}

// FetchConfig 参考链接正文抓取
type FetchConfig struct {
	Timeout  int `yaml:"timeout"`
	MaxChars int `yaml:"max_chars"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置，缺省项填充默认值
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Defaults()

	return &cfg, nil
}

// Defaults 填充零值字段
func (c *Config) Defaults() {
	c.LLM.Provider = strings.ToLower(strings.TrimSpace(c.LLM.Provider))
	if c.LLM.Provider == "" {
		c.LLM.Provider = ProviderGemini
	}
	if c.LLM.Model == "" && c.LLM.Provider == ProviderGemini {
		c.LLM.Model = DefaultGeminiModel
	}
	if c.LLM.Temperature <= 0 {
		c.LLM.Temperature = 0.1
	}
	if c.LLM.Timeout <= 0 {
		c.LLM.Timeout = 180
	}
	if c.LLM.MaxRetries < 0 {
		c.LLM.MaxRetries = 0
	}
	if c.Research.MaxResults <= 0 {
		c.Research.MaxResults = 5
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30
	}
	if c.Fetch.MaxChars <= 0 {
		c.Fetch.MaxChars = 5000
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
}

// ApplyEnv 用环境变量补全缺失的密钥
func (c *Config) ApplyEnv() {
	if c.LLM.APIKey == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		default:
			c.LLM.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY")
		}
	}
	if c.Search.Tavily.APIKey == "" {
		c.Search.Tavily.APIKey = os.Getenv("TAVILY_API_KEY")
	}
}

// GenerationTimeout 单次生成超时
func (c *Config) GenerationTimeout() time.Duration {
	return time.Duration(c.LLM.Timeout) * time.Second
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
