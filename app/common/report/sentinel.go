package report

import (
	"fmt"
	"strings"
)

const (
	// NotAvailable 占位结果中所有文本字段的值
	NotAvailable = "정보 없음"
	// AnalysisError 错误结果中所有文本字段的值
	AnalysisError = "분석 중 오류 발생"
	// shortError 错误结果中标签类字段的值
	shortError = "오류"
)

// 三个层级名称是固定的，占位和错误结果都沿用
const (
	TAMName = "TAM (전체 시장)"
	SAMName = "SAM (유효 시장)"
	SOMName = "SOM (점유 가능 시장)"
)

// Placeholder 返回“暂无数据”的占位结果（等级 C）。
// 提交后、LLM 返回前展示它；未配置 API Key 时也用它代替真实结果。
// 每次调用都返回新的实例。
func Placeholder() *AnalysisResult {
	return filled(NotAvailable, GradeC, placeholderExtras)
}

// ErrorResult 返回错误哨兵结果（等级 F），LLM 调用失败时使用。
// 它的文本与拒绝标记互不相交，因此不会触发拦截。
func ErrorResult() *AnalysisResult {
	return filled(AnalysisError, GradeF, errorExtras)
}

func placeholderExtras(r *AnalysisResult) {
	r.CompetitiveLandscape.PositioningMapData = &PositioningMapData{
		XAxisLabel:  "X 축 (예: 혁신성)",
		YAxisLabel:  "Y 축 (예: 시장성)",
		OurCompany:  PositioningPoint{Name: "우리 아이디어", X: 5, Y: 5},
		Competitors: []PositioningPoint{},
	}
	r.CompetitiveLandscape.FeatureMatrixData = &FeatureMatrixData{
		CompetitorNames: []string{},
		Features:        []FeatureMatrixFeature{},
	}
	r.MonetizationStrategy.KeyRevenueStreamsSummary = []string{"구독료 기반", "광고 수익", "프리미엄 기능 판매"}
	r.MonetizationStrategy.KeyPayingCustomersSummary = []string{}
}

func errorExtras(r *AnalysisResult) {
	r.CompetitiveLandscape.PositioningMapData = &PositioningMapData{
		XAxisLabel:  shortError,
		YAxisLabel:  shortError,
		OurCompany:  PositioningPoint{Name: shortError},
		Competitors: []PositioningPoint{},
	}
	r.CompetitiveLandscape.FeatureMatrixData = &FeatureMatrixData{
		CompetitorNames: []string{shortError},
		Features: []FeatureMatrixFeature{
			{FeatureName: shortError, OurCompany: "X", CompetitorValues: []string{"X"}},
		},
	}
	r.MonetizationStrategy.KeyRevenueStreamsSummary = []string{shortError}
	r.MonetizationStrategy.KeyPayingCustomersSummary = []string{shortError}
}

func filled(text string, grade Grade, extras func(*AnalysisResult)) *AnalysisResult {
	layer := func(name string) PyramidLayerContent {
		return PyramidLayerContent{
			Name:            name,
			Description:     text,
			Size:            text,
			Characteristics: []string{text},
			Personas:        []string{text},
		}
	}

	r := &AnalysisResult{
		SWOT: SWOT{Strengths: text, Weaknesses: text, Opportunities: text, Threats: text},
		CompetitiveLandscape: CompetitiveLandscape{
			MainCompetitors:       text,
			CompetitiveAdvantages: text,
			MarketEntryBarriers:   text,
			DifferentiationPoints: text,
		},
		MonetizationStrategy: MonetizationStrategy{
			PricingPolicySummary:      text,
			KeyStrengthsSummary:       text,
			RevenueStreams:            text,
			PricingPolicy:             text,
			EstimatedRevenuePotential: text,
			PaymentCollectionMethods:  text,
		},
		TargetAudience: TargetAudience{
			PrimaryAudience:            text,
			SecondaryAudience:          text,
			CustomerNeedsAndPainPoints: text,
			ValuePropositionToAudience: text,
			MarketSizePyramid: &MarketSizeLayers{
				TAM: layer(TAMName),
				SAM: layer(SAMName),
				SOM: layer(SOMName),
			},
			CustomerSegmentationPyramid: &SegmentationLayers{
				PrimaryTarget:   layer("핵심 타겟"),
				SecondaryTarget: layer("2차 타겟"),
				TertiaryTarget:  layer("확장 타겟"),
			},
			CustomerLoyaltyPyramid: &LoyaltyLayers{
				Advocates:        layer("옹호자/전도사"),
				LoyalCustomers:   layer("단골 고객"),
				RegularCustomers: layer("일반 고객"),
				Prospects:        layer("잠재 고객/방문자"),
			},
		},
		MarketingSalesStrategy: MarketingSalesStrategy{
			KeyMarketingChannels:        text,
			SalesProcess:                text,
			CustomerAcquisitionStrategy: text,
			BrandMessaging:              text,
			CustomerJourneyMap: []CustomerJourneyStage{{
				StageName:       text,
				CustomerActions: []string{text},
				Touchpoints:     []string{text},
				Channels:        []string{text},
				KPIs:            []string{text},
			}},
		},
		KPIs: KPIs{
			PrimaryKPIs:                  text,
			SecondaryKPIs:                text,
			MeasurementToolsAndFrequency: text,
			SuccessTargets:               text,
		},
		RiskAssessment: RiskAssessment{
			PotentialTechnicalRisks: text,
			PotentialMarketRisks:    text,
			PotentialFinancialRisks: text,
			MitigationStrategies:    text,
		},
		HarshCritique: HarshCritique{Grade: grade, Critique: text},
	}
	for rating := 5; rating >= 1; rating-- {
		r.ConsumerReactionPrediction.ReactionsByStar = append(r.ConsumerReactionPrediction.ReactionsByStar,
			defaultReaction(rating, text))
	}
	extras(r)
	return r
}

func defaultReaction(rating int, message string) StarRatingReaction {
	return StarRatingReaction{
		Rating:                rating,
		Title:                 fmt.Sprintf("%s (%d점) - %s", Stars(rating), rating, message),
		ExpectedComment:       message,
		KeyReactionPoints:     []string{message},
		StartupConsiderations: []string{message},
	}
}

// Stars 生成形如 ⭐⭐⭐☆☆ 的五星字符串
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("⭐", rating) + strings.Repeat("☆", 5-rating)
}
