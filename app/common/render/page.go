package render

import (
	"time"
	"unicode/utf8"

	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
)

// MaxIdeaLength 输入框允许的最大字符数
const MaxIdeaLength = 5000

// InputPage 输入页
type InputPage struct {
	Idea         string
	ReferenceURL string
	Chars        int
	Loading      bool
	Error        string
	MaxLength    int
	Year         int
}

// NewInputPage 构造输入页
func NewInputPage(idea, ref, errMsg string, loading bool, now time.Time) InputPage {
	return InputPage{
		Idea:         idea,
		ReferenceURL: ref,
		Chars:        utf8.RuneCountInString(idea),
		Loading:      loading,
		Error:        errMsg,
		MaxLength:    MaxIdeaLength,
		Year:         now.Year(),
	}
}

// TabLink 导航栏中的页签
type TabLink struct {
	view.Tab
	Href   string
	Active bool
}

// ReportPage 报告页
type ReportPage struct {
	Idea        string
	Blocked     bool
	Loading     bool
	LoadingText string
	// ShowBanner 加载完成、没有错误且有结果时显示目标创意横幅
	ShowBanner bool
	ErrorCard  *ContentCard
	// Notice 没有结果也没有错误时的提示
	Notice *ContentCard
	Tabs       []TabLink
	// Panels 服务端模式只有当前页签，静态模式包含全部九个
	Panels []Panel
	Static bool
	Year   int
	// PollMillis 加载中轮询 /api/session 的间隔，0 表示不轮询
	PollMillis int
}

// ReportInput 构造报告页所需的会话快照
type ReportInput struct {
	Idea         string
	Result       *report.AnalysisResult
	State        view.State
	Markers      report.Markers
	Loading      bool
	LoadingText  string
	ErrorMessage string
	Mode         Mode
	Now          time.Time
	PollInterval time.Duration
}

// NewReportPage 每次都根据当前结果重新判定拦截状态
func NewReportPage(in ReportInput) ReportPage {
	markers := in.Markers
	if len(markers.Rejection) == 0 && len(markers.Impropriety) == 0 {
		markers = report.DefaultMarkers
	}
	blocked := markers.Blocked(in.Result)

	p := ReportPage{
		Idea:        in.Idea,
		Blocked:     blocked,
		Loading:     in.Loading,
		LoadingText: in.LoadingText,
		Static:      in.Mode == ModeStatic,
		Year:        in.Now.Year(),
	}
	if in.Loading {
		p.PollMillis = int(in.PollInterval / time.Millisecond)
	}

	for _, t := range view.Tabs {
		p.Tabs = append(p.Tabs, TabLink{
			Tab:    t,
			Href:   in.Mode.TabHref(t.Key),
			Active: in.Mode == ModeServer && t.Key == in.State.ActiveTab,
		})
	}

	switch {
	case in.Loading:
		return p
	case in.ErrorMessage != "":
		card := NewContentCard("오류 발생", "분석 과정 중 문제가 발생했습니다: "+in.ErrorMessage)
		card.Tone = "danger"
		p.ErrorCard = &card
		return p
	case in.Result == nil:
		card := NewContentCard("데이터 없음", "분석 데이터를 불러올 수 없습니다. 다시 시도해주세요.")
		p.Notice = &card
		return p
	}

	p.ShowBanner = true
	if in.Mode == ModeStatic {
		for _, t := range view.Tabs {
			s := in.State
			s.ActiveTab = t.Key
			p.Panels = append(p.Panels, BuildPanel(in.Result, s, blocked, ModeStatic))
		}
		return p
	}
	p.Panels = []Panel{BuildPanel(in.Result, in.State, blocked, ModeServer)}
	return p
}
