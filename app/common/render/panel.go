package render

import (
	"fmt"
	"strings"

	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
)

// Mode 渲染模式
type Mode int

const (
	// ModeServer 服务端页面，一次只渲染当前页签
	ModeServer Mode = iota
	// ModeStatic 静态文件，渲染全部页签，链接为页内锚点
	ModeStatic
)

// TabHref 页签链接
func (m Mode) TabHref(k view.TabKey) string {
	if m == ModeStatic {
		return "#tab-" + string(k)
	}
	return "/report?tab=" + string(k)
}

// RatingHref 星级按钮链接
func (m Mode) RatingHref(rating int) string {
	if m == ModeStatic {
		return fmt.Sprintf("#reaction-%d", rating)
	}
	return fmt.Sprintf("/report?tab=%s&rating=%d", view.TabConsumerReactionPrediction, rating)
}

// Panel 一个页签的全部内容，模板按非空字段渲染
type Panel struct {
	Tab        view.Tab
	Restricted bool

	Multi      *MultiCardView
	Grid       *SectionGrid
	DetailGrid *SectionGrid
	Revenue    *RevenueSummary
	Map        *MapView
	Matrix     *MatrixView
	Circles    *CirclesView
	Pyramids   []*PyramidView
	Journey    *JourneyMap
	Reaction   *ReactionView
	Critique   *CritiqueView
}

// ratingRows 按 5/4/3 和 2/1 两行排列
var ratingRows = [][]int{{5, 4, 3}, {2, 1}}

// BuildPanel 根据结果和视图状态构造当前页签的内容。
// 拦截时除冷静批评外的页签都只显示受限提示。
func BuildPanel(r *report.AnalysisResult, s view.State, blocked bool, mode Mode) Panel {
	tab := s.ActiveTab.Tab()
	p := Panel{Tab: tab}
	if r == nil {
		return p
	}
	if blocked && tab.Key != view.TabHarshCritique {
		p.Restricted = true
		return p
	}

	switch tab.Key {
	case view.TabSWOT:
		mv := NewMultiCardView(tab.Label, []Item{
			{Title: "Strengths (강점)", Content: r.SWOT.Strengths},
			{Title: "Weaknesses (약점)", Content: r.SWOT.Weaknesses},
			{Title: "Opportunities (기회)", Content: r.SWOT.Opportunities},
			{Title: "Threats (위협)", Content: r.SWOT.Threats},
		})
		p.Multi = &mv

	case view.TabCompetitiveLandscape:
		cl := r.CompetitiveLandscape
		g := NewSectionGrid(tab.Label, []Item{
			{Title: "주요 경쟁자", Content: cl.MainCompetitors},
			{Title: "자사 경쟁 우위", Content: cl.CompetitiveAdvantages},
			{Title: "시장 진입 장벽", Content: cl.MarketEntryBarriers},
			{Title: "차별화 포인트", Content: cl.DifferentiationPoints},
		})
		p.Grid = &g
		if !blocked {
			p.Map = NewMapView(cl.PositioningMapData)
			p.Matrix = NewMatrixView(cl.FeatureMatrixData)
		}

	case view.TabMonetizationStrategy:
		m := r.MonetizationStrategy
		rs := NewRevenueSummary(m)
		p.Revenue = &rs
		g := NewSectionGrid("수익 모델 상세 정보", []Item{
			{Title: "주요 수익원 상세", Content: m.RevenueStreams},
			{Title: "가격 정책 상세", Content: m.PricingPolicy},
			{Title: "예상 수익 잠재력", Content: m.EstimatedRevenuePotential},
			{Title: "결제 및 수금 방법", Content: m.PaymentCollectionMethods},
		})
		p.DetailGrid = &g

	case view.TabTargetAudience:
		ta := r.TargetAudience
		g := NewSectionGrid(tab.Label, []Item{
			{Title: "주요 타겟 고객", Content: ta.PrimaryAudience},
			{Title: "보조 타겟 고객", Content: ta.SecondaryAudience},
			{Title: "고객 니즈 및 문제점", Content: ta.CustomerNeedsAndPainPoints},
			{Title: "고객 가치 제안", Content: ta.ValuePropositionToAudience},
		})
		p.Grid = &g
		if !blocked {
			p.Circles = NewMarketCircles(ta.MarketSizePyramid)
			for _, pv := range []*PyramidView{
				NewSegmentationPyramid(ta.CustomerSegmentationPyramid),
				NewLoyaltyPyramid(ta.CustomerLoyaltyPyramid),
			} {
				if pv != nil {
					p.Pyramids = append(p.Pyramids, pv)
				}
			}
		}

	case view.TabMarketingSalesStrategy:
		ms := r.MarketingSalesStrategy
		g := NewSectionGrid(tab.Label, []Item{
			{Title: "핵심 마케팅 채널", Content: ms.KeyMarketingChannels},
			{Title: "영업 프로세스", Content: ms.SalesProcess},
			{Title: "고객 확보 전략", Content: ms.CustomerAcquisitionStrategy},
			{Title: "브랜드 메시징", Content: ms.BrandMessaging},
		})
		p.Grid = &g
		if !blocked && hasJourney(ms.CustomerJourneyMap) {
			jm := NewJourneyMap(ms.CustomerJourneyMap)
			p.Journey = &jm
		}

	case view.TabKPIs:
		k := r.KPIs
		g := NewSectionGrid(tab.Label, []Item{
			{Title: "주요 KPI", Content: k.PrimaryKPIs},
			{Title: "보조 KPI", Content: k.SecondaryKPIs},
			{Title: "측정 도구 및 주기", Content: k.MeasurementToolsAndFrequency},
			{Title: "성공 목표치", Content: k.SuccessTargets},
		})
		p.Grid = &g

	case view.TabRiskAssessment:
		ra := r.RiskAssessment
		g := NewSectionGrid(tab.Label, []Item{
			{Title: "기술적 위험", Content: ra.PotentialTechnicalRisks},
			{Title: "시장 위험", Content: ra.PotentialMarketRisks},
			{Title: "재무 위험", Content: ra.PotentialFinancialRisks},
			{Title: "완화 전략", Content: ra.MitigationStrategies},
		})
		p.Grid = &g

	case view.TabConsumerReactionPrediction:
		if !blocked {
			p.Reaction = buildReaction(r.ConsumerReactionPrediction, s.SelectedRating, mode)
		}

	case view.TabHarshCritique:
		title := "분석 리포트"
		tone := "rose"
		if blocked {
			title, tone = "거부 사유 보고서", "danger"
		}
		card := NewContentCard(title, r.HarshCritique.Critique)
		card.Tone = tone
		p.Critique = &CritiqueView{
			Badge:   NewGradeBadge(r.HarshCritique.Grade),
			Blocked: blocked,
			Card:    card,
		}
	}
	return p
}

func buildReaction(c report.ConsumerReactionPrediction, selected int, mode Mode) *ReactionView {
	v := &ReactionView{}
	for _, row := range ratingRows {
		buttons := make([]RatingButton, 0, len(row))
		for _, rating := range row {
			buttons = append(buttons, RatingButton{
				Rating: rating,
				Stars:  strings.Repeat("⭐", rating),
				Href:   mode.RatingHref(rating),
				Active: mode == ModeServer && rating == selected,
			})
		}
		v.Rows = append(v.Rows, buttons)
	}

	if mode == ModeStatic {
		for _, row := range ratingRows {
			for _, rating := range row {
				if rc := c.ByRating(rating); rc != nil {
					v.Cards = append(v.Cards, newReactionCard(*rc))
				}
			}
		}
		v.Missing = len(v.Cards) == 0
		return v
	}

	rc := c.ByRating(selected)
	if rc == nil {
		v.Missing = true
		return v
	}
	v.Cards = []ReactionCard{newReactionCard(*rc)}
	return v
}

func newReactionCard(r report.StarRatingReaction) ReactionCard {
	return ReactionCard{
		Rating:         r.Rating,
		Title:          r.Title,
		Comment:        NewContentCard("예상 댓글", r.ExpectedComment),
		Points:         r.KeyReactionPoints,
		Considerations: r.StartupConsiderations,
	}
}
