package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
)

// ErrUnsupportedURL 只支持 http/https
var ErrUnsupportedURL = errors.New("fetch: unsupported url")

// maxBodyBytes 单个页面读取上限
const maxBodyBytes = 4 << 20

// Fetcher 抓取参考链接的正文
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Readable 使用 readability 提取正文
type Readable struct {
	client   *http.Client
	maxRunes int
}

// NewReadable timeout 为整次请求超时，maxRunes 为正文保留的最大字符数
func NewReadable(timeout time.Duration, maxRunes int) *Readable {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Readable{client: &http.Client{Timeout: timeout}, maxRunes: maxRunes}
}

var _ Fetcher = (*Readable)(nil)

// Fetch 下载页面并返回清洗后的正文
func (r *Readable) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ScopeAI/1.0)")

	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: status %d", u, res.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(res.Body, maxBodyBytes), u)
	if err != nil {
		return "", fmt.Errorf("readability: %w", err)
	}

	text := Sanitize(article.TextContent)
	if text == "" {
		text = Sanitize(article.Excerpt)
	}
	return Truncate(text, r.maxRunes), nil
}

// Sanitize 移除 NUL 字节和无效的 UTF-8，并压缩空白
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ToValidUTF8(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Truncate 按字符截断，n <= 0 时不截断
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
