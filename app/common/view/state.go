package view

const (
	// DefaultRating 消费者反应页默认选中的星级
	DefaultRating = 5
	minRating     = 1
	maxRating     = 5
)

// State 报告页的视图状态。
// Blocked 只用于检测拦截状态的上升沿，渲染时总是根据当前结果重新判定。
type State struct {
	ActiveTab      TabKey `json:"active_tab"`
	SelectedRating int    `json:"selected_rating"`
	Blocked        bool   `json:"blocked"`
}

// Initial 初始状态：SWOT 页签，5 星
func Initial() State {
	return State{ActiveTab: TabSWOT, SelectedRating: DefaultRating}
}

// Event 视图事件
type Event interface {
	event()
}

// TabSelected 用户切换页签
type TabSelected struct{ Tab TabKey }

// RatingSelected 用户选择星级
type RatingSelected struct{ Rating int }

// GatingObserved 观察到当前结果的拦截状态
type GatingObserved struct{ Blocked bool }

// Reset 返回输入页
type Reset struct{}

func (TabSelected) event()    {}
func (RatingSelected) event() {}
func (GatingObserved) event() {}
func (Reset) event()          {}

// Reduce 纯函数状态转移。
// 拦截状态从 false 变为 true 时强制切到冷静批评页签，重复的 true 不再触发。
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case TabSelected:
		if ev.Tab.Valid() {
			s.ActiveTab = ev.Tab
		}
	case RatingSelected:
		if ev.Rating >= minRating && ev.Rating <= maxRating {
			s.SelectedRating = ev.Rating
		}
	case GatingObserved:
		if ev.Blocked && !s.Blocked {
			s.ActiveTab = TabHarshCritique
		}
		s.Blocked = ev.Blocked
	case Reset:
		return Initial()
	}
	return s
}
