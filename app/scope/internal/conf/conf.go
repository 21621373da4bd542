package conf

type Bootstrap struct {
	Server   *Server
	Session  *Session
	Analyzer *Analyzer
	Gating   *Gating
	Loading  *Loading
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

// Session 会话存储配置
type Session struct {
	// Capacity 最多保留的会话数，超出后淘汰最久未使用的会话
	Capacity   int32  `json:"capacity"`
	CookieName string `json:"cookie_name"`
}

// Analyzer 分析引擎配置，启动时转换为 analyzer 的 config.Config
type Analyzer struct {
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Research    *Research    `json:"research"`
	Fetch       *Fetch       `json:"fetch"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
}

type LLM struct {
	Provider    string  `json:"provider"`
	BaseUrl     string  `json:"base_url"`
	ApiKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	Timeout     int32   `json:"timeout"`
	MaxRetries  int32   `json:"max_retries"`
}

type Search struct {
	Provider string   `json:"provider"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Research struct {
	Enabled    bool  `json:"enabled"`
	MaxResults int32 `json:"max_results"`
}

type Fetch struct {
	Timeout  int32 `json:"timeout"`
	MaxChars int32 `json:"max_chars"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

// Gating 拦截判定的标记文本，为空时使用默认标记
type Gating struct {
	RejectionMarkers   []string `json:"rejection_markers"`
	ImproprietyMarkers []string `json:"impropriety_markers"`
}

// Loading 加载页配置
type Loading struct {
	// Interval 加载文本切换间隔，例如 5s
	Interval string `json:"interval"`
	// PollInterval 页面轮询 /api/session 的间隔
	PollInterval string `json:"poll_interval"`
}
