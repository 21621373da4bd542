package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Searcher 通用搜索接口，用于给分析提示词补充市场调研上下文
type Searcher interface {
	Search(ctx context.Context, req *Request) (*Response, error)
}

// Request 通用搜索请求
type Request struct {
	Query      string
	Topic      string // "news" or "general"
	MaxResults int
	Language   string
}

// Response 通用搜索响应
type Response struct {
	// Answer 搜索服务给出的摘要，可能为空
	Answer  string
	Results []Result
}

// Result 单条搜索结果
type Result struct {
	Title         string
	URL           string
	Content       string
	Score         float64
	PublishedDate string
}

// Digest 把搜索结果整理成提示词片段，总长度不超过 maxRunes
func (r *Response) Digest(maxRunes int) string {
	if r == nil {
		return ""
	}
	var sb strings.Builder
	if a := strings.TrimSpace(r.Answer); a != "" {
		fmt.Fprintf(&sb, "요약: %s\n", a)
	}
	for i, item := range r.Results {
		content := strings.Join(strings.Fields(item.Content), " ")
		if content == "" {
			continue
		}
		fmt.Fprintf(&sb, "%d. %s (%s)\n   %s\n", i+1, item.Title, item.URL, content)
	}
	return truncateRunes(sb.String(), maxRunes)
}

func truncateRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
