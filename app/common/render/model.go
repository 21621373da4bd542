package render

import (
	"strings"

	"github.com/adamamaa/greenscope/app/common/chart"
	"github.com/adamamaa/greenscope/app/common/report"
)

const nbsp = "\u00a0"

// ContentCard 标题加若干段落的卡片
type ContentCard struct {
	Title      string
	Paragraphs []string
	Tone       string
}

// NewContentCard 按换行拆分段落，空行保留为不换行空格
func NewContentCard(title, content string) ContentCard {
	lines := strings.Split(content, "\n")
	c := ContentCard{Title: title, Paragraphs: make([]string, 0, len(lines))}
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			l = nbsp
		}
		c.Paragraphs = append(c.Paragraphs, l)
	}
	return c
}

// Item 卡片输入
type Item struct {
	Title   string
	Content string
}

// MultiCardView 四张卡片围绕中心标题的布局，SWOT 页签使用
type MultiCardView struct {
	CategoryTitle string
	Cards         []ContentCard
	Empty         bool
}

const maxMultiCards = 4

// NewMultiCardView 最多取前四项
func NewMultiCardView(title string, items []Item) MultiCardView {
	v := MultiCardView{CategoryTitle: title}
	if len(items) == 0 {
		v.Empty = true
		return v
	}
	for i, it := range items {
		if i == maxMultiCards {
			break
		}
		v.Cards = append(v.Cards, NewContentCard(it.Title, it.Content))
	}
	return v
}

// SectionGrid 卡片网格
type SectionGrid struct {
	Title string
	Cards []ContentCard
	Wide  bool
}

// NewSectionGrid 多于一项时使用两列
func NewSectionGrid(title string, items []Item) SectionGrid {
	g := SectionGrid{Title: title, Wide: len(items) > 1}
	for _, it := range items {
		g.Cards = append(g.Cards, NewContentCard(it.Title, it.Content))
	}
	return g
}

// RevenueSummary 核心收益模式摘要
type RevenueSummary struct {
	HasData   bool
	Streams   []string
	Pricing   string
	Customers []string
	Strengths string
}

// NewRevenueSummary 全部字段都没有信息时 HasData 为 false，
// 核心优势为空或为“정보 없음”时不显示
func NewRevenueSummary(m report.MonetizationStrategy) RevenueSummary {
	strengths := m.KeyStrengthsSummary
	if strengths == report.NotAvailable {
		strengths = ""
	}
	return RevenueSummary{
		HasData: len(m.KeyRevenueStreamsSummary) > 0 ||
			m.PricingPolicySummary != report.NotAvailable ||
			len(m.KeyPayingCustomersSummary) > 0 ||
			strengths != "",
		Streams:   m.KeyRevenueStreamsSummary,
		Pricing:   m.PricingPolicySummary,
		Customers: m.KeyPayingCustomersSummary,
		Strengths: strengths,
	}
}

// JourneySection 旅程阶段中的一个分组
type JourneySection struct {
	Title string
	Items []string
}

// JourneyStage 旅程阶段
type JourneyStage struct {
	Number   int
	Name     string
	Sections []JourneySection
	Last     bool
}

// JourneyMap 客户旅程图，Empty 时显示无数据提示
type JourneyMap struct {
	Stages []JourneyStage
	Empty  bool
}

// NewJourneyMap 只有一个“정보 없음”阶段时视为无数据；
// 分组为空或只有“정보 없음”时省略该分组
func NewJourneyMap(stages []report.CustomerJourneyStage) JourneyMap {
	if !hasJourney(stages) {
		return JourneyMap{Empty: true}
	}
	m := JourneyMap{}
	for i, st := range stages {
		js := JourneyStage{Number: i + 1, Name: st.StageName, Last: i == len(stages)-1}
		for _, sec := range []JourneySection{
			{Title: "고객 행동", Items: st.CustomerActions},
			{Title: "마케팅 활동", Items: st.Touchpoints},
			{Title: "활용 채널", Items: st.Channels},
			{Title: "측정 지표", Items: st.KPIs},
		} {
			if len(sec.Items) == 0 || (len(sec.Items) == 1 && sec.Items[0] == report.NotAvailable) {
				continue
			}
			js.Sections = append(js.Sections, sec)
		}
		m.Stages = append(m.Stages, js)
	}
	return m
}

func hasJourney(stages []report.CustomerJourneyStage) bool {
	return len(stages) > 0 && stages[0].StageName != report.NotAvailable
}

// RatingButton 星级按钮
type RatingButton struct {
	Rating int
	Stars  string
	Href   string
	Active bool
}

// ReactionCard 某星级的消费者反应
type ReactionCard struct {
	Rating         int
	Title          string
	Comment        ContentCard
	Points         []string
	Considerations []string
}

// ReactionView 消费者反应页签
type ReactionView struct {
	// Rows 第一行 5/4/3，第二行 2/1
	Rows [][]RatingButton
	// Cards 服务端模式只有选中的一张，静态模式包含全部
	Cards []ReactionCard
	// Missing 选中的星级没有数据
	Missing bool
}

// GradeBadge 等级徽章
type GradeBadge struct {
	Grade string
	Style report.BadgeStyle
}

// NewGradeBadge 构造徽章，空等级显示为“-”
func NewGradeBadge(g report.Grade) GradeBadge {
	label := string(g)
	if label == "" {
		label = "-"
	}
	return GradeBadge{Grade: label, Style: g.Badge()}
}

// CritiqueView 冷静批评页签
type CritiqueView struct {
	Badge   GradeBadge
	Blocked bool
	Card    ContentCard
}

// PyramidView 金字塔图
type PyramidView struct {
	ID      string
	Title   string
	Layout  chart.PyramidLayout
	Prompt  chart.Detail
	Details []chart.Detail
}

// CirclesView 同心圆图
type CirclesView struct {
	ID      string
	Title   string
	Layout  chart.CircleLayout
	Prompt  chart.Detail
	Details []chart.Detail
}

// MapView 定位图
type MapView struct {
	Layout     chart.MapLayout
	StarPoints string
	XLabel     chart.Point
	YLabel     chart.Point
	YRotate    string
}

// MatrixView 功能对比矩阵
type MatrixView struct {
	Matrix chart.Matrix
	Empty  bool
}
