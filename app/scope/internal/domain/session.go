package domain

import (
	"sync"

	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
)

// Page 会话当前所在页面
type Page string

const (
	PageInput    Page = "input"
	PageAnalysis Page = "analysis"
)

// Session 一个浏览器会话的全部状态。
// 字段只能在持有锁时读写，Epoch 每次提交递增，用于丢弃过期的分析结果。
type Session struct {
	mu sync.Mutex

	ID           string
	Page         Page
	Idea         string
	ReferenceURL string
	Result       *report.AnalysisResult
	Loading      bool
	Error        string
	State        view.State
	Epoch        uint64
	Rotator      *view.Rotator
}

// NewSession 创建处于输入页的会话
func NewSession(id string, rotator *view.Rotator) *Session {
	return &Session{
		ID:      id,
		Page:    PageInput,
		State:   view.Initial(),
		Rotator: rotator,
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Snapshot 会话的只读快照，Blocked 在生成快照时根据结果重新判定
type Snapshot struct {
	ID           string
	Page         Page
	Idea         string
	ReferenceURL string
	Result       *report.AnalysisResult
	Loading      bool
	LoadingText  string
	Error        string
	State        view.State
	Blocked      bool
}
