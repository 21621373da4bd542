package view

// TabKey 报告页签标识
type TabKey string

const (
	TabSWOT                       TabKey = "swot"
	TabCompetitiveLandscape       TabKey = "competitiveLandscape"
	TabMonetizationStrategy       TabKey = "monetizationStrategy"
	TabTargetAudience             TabKey = "targetAudience"
	TabMarketingSalesStrategy     TabKey = "marketingSalesStrategy"
	TabKPIs                       TabKey = "kpis"
	TabRiskAssessment             TabKey = "riskAssessment"
	TabConsumerReactionPrediction TabKey = "consumerReactionPrediction"
	TabHarshCritique              TabKey = "harshCritique"
)

// Tab 页签的展示信息
type Tab struct {
	Key   TabKey
	Label string
	Icon  string
}

// Tabs 固定的九个页签，按展示顺序排列
var Tabs = []Tab{
	{Key: TabSWOT, Label: "SWOT"},
	{Key: TabCompetitiveLandscape, Label: "경쟁 환경"},
	{Key: TabMonetizationStrategy, Label: "수익 모델"},
	{Key: TabTargetAudience, Label: "타겟 고객"},
	{Key: TabMarketingSalesStrategy, Label: "마케팅/판매"},
	{Key: TabKPIs, Label: "KPI"},
	{Key: TabRiskAssessment, Label: "위험 평가"},
	{Key: TabConsumerReactionPrediction, Label: "소비자 예상 반응", Icon: "⭐"},
	{Key: TabHarshCritique, Label: "냉정한 비평"},
}

// Valid 是否为已知页签
func (k TabKey) Valid() bool {
	_, ok := k.lookup()
	return ok
}

// Tab 返回页签信息，未知页签返回只有 Key 的零值
func (k TabKey) Tab() Tab {
	t, _ := k.lookup()
	return t
}

func (k TabKey) lookup() (Tab, bool) {
	for _, t := range Tabs {
		if t.Key == k {
			return t, true
		}
	}
	return Tab{Key: k}, false
}
