package report

import "strings"

// SWOT SWOT 分析
type SWOT struct {
	Strengths     string `json:"strengths"`
	Weaknesses    string `json:"weaknesses"`
	Opportunities string `json:"opportunities"`
	Threats       string `json:"threats"`
}

// PositioningPoint 定位图上的一个点，坐标取值 [0, 10]
type PositioningPoint struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PositioningMapData 定位图数据
type PositioningMapData struct {
	XAxisLabel  string             `json:"xAxisLabel"`
	YAxisLabel  string             `json:"yAxisLabel"`
	OurCompany  PositioningPoint   `json:"ourCompany"`
	Competitors []PositioningPoint `json:"competitors"`
}

// FeatureMatrixFeature 功能对比矩阵中的一行
type FeatureMatrixFeature struct {
	FeatureName      string   `json:"featureName"`
	OurCompany       string   `json:"ourCompany"`
	CompetitorValues []string `json:"competitorValues"`
}

// FeatureMatrixData 功能对比矩阵
type FeatureMatrixData struct {
	CompetitorNames []string               `json:"competitorNames"`
	Features        []FeatureMatrixFeature `json:"features"`
}

// CompetitiveLandscape 竞争环境分析
type CompetitiveLandscape struct {
	MainCompetitors       string              `json:"mainCompetitors"`
	CompetitiveAdvantages string              `json:"competitiveAdvantages"`
	MarketEntryBarriers   string              `json:"marketEntryBarriers"`
	DifferentiationPoints string              `json:"differentiationPoints"`
	PositioningMapData    *PositioningMapData `json:"positioningMapData,omitempty"`
	FeatureMatrixData     *FeatureMatrixData  `json:"featureMatrixData,omitempty"`
}

// MonetizationStrategy 收益模式分析
type MonetizationStrategy struct {
	KeyRevenueStreamsSummary  []string `json:"keyRevenueStreamsSummary"`
	PricingPolicySummary      string   `json:"pricingPolicySummary"`
	KeyPayingCustomersSummary []string `json:"keyPayingCustomersSummary"`
	KeyStrengthsSummary       string   `json:"keyStrengthsSummary,omitempty"`
	RevenueStreams            string   `json:"revenueStreams"`
	PricingPolicy             string   `json:"pricingPolicy"`
	EstimatedRevenuePotential string   `json:"estimatedRevenuePotential"`
	PaymentCollectionMethods  string   `json:"paymentCollectionMethods"`
}

// PyramidLayerContent 金字塔/同心圆中一层的内容
type PyramidLayerContent struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Size            string   `json:"size,omitempty"`
	Characteristics []string `json:"characteristics,omitempty"`
	Personas        []string `json:"personas,omitempty"`
}

// MarketSizeLayers TAM / SAM / SOM
type MarketSizeLayers struct {
	TAM PyramidLayerContent `json:"tam"`
	SAM PyramidLayerContent `json:"sam"`
	SOM PyramidLayerContent `json:"som"`
}

// SegmentationLayers 客户细分金字塔
type SegmentationLayers struct {
	PrimaryTarget   PyramidLayerContent `json:"primaryTarget"`
	SecondaryTarget PyramidLayerContent `json:"secondaryTarget"`
	TertiaryTarget  PyramidLayerContent `json:"tertiaryTarget"`
}

// LoyaltyLayers 客户忠诚度金字塔
type LoyaltyLayers struct {
	Advocates        PyramidLayerContent `json:"advocates"`
	LoyalCustomers   PyramidLayerContent `json:"loyalCustomers"`
	RegularCustomers PyramidLayerContent `json:"regularCustomers"`
	Prospects        PyramidLayerContent `json:"prospects"`
}

// TargetAudience 目标客户分析
type TargetAudience struct {
	PrimaryAudience             string              `json:"primaryAudience"`
	SecondaryAudience           string              `json:"secondaryAudience"`
	CustomerNeedsAndPainPoints  string              `json:"customerNeedsAndPainPoints"`
	ValuePropositionToAudience  string              `json:"valuePropositionToAudience"`
	MarketSizePyramid           *MarketSizeLayers   `json:"marketSizePyramid,omitempty"`
	CustomerSegmentationPyramid *SegmentationLayers `json:"customerSegmentationPyramid,omitempty"`
	CustomerLoyaltyPyramid      *LoyaltyLayers      `json:"customerLoyaltyPyramid,omitempty"`
}

// CustomerJourneyStage 客户旅程中的一个阶段
type CustomerJourneyStage struct {
	StageName       string   `json:"stageName"`
	CustomerActions []string `json:"customerActions"`
	Touchpoints     []string `json:"touchpoints"`
	Channels        []string `json:"channels"`
	KPIs            []string `json:"kpis"`
}

// MarketingSalesStrategy 营销与销售策略
type MarketingSalesStrategy struct {
	KeyMarketingChannels        string                 `json:"keyMarketingChannels"`
	SalesProcess                string                 `json:"salesProcess"`
	CustomerAcquisitionStrategy string                 `json:"customerAcquisitionStrategy"`
	BrandMessaging              string                 `json:"brandMessaging"`
	CustomerJourneyMap          []CustomerJourneyStage `json:"customerJourneyMap,omitempty"`
}

// KPIs 核心成功指标
type KPIs struct {
	PrimaryKPIs                  string `json:"primaryKPIs"`
	SecondaryKPIs                string `json:"secondaryKPIs"`
	MeasurementToolsAndFrequency string `json:"measurementToolsAndFrequency"`
	SuccessTargets               string `json:"successTargets"`
}

// RiskAssessment 风险评估
type RiskAssessment struct {
	PotentialTechnicalRisks string `json:"potentialTechnicalRisks"`
	PotentialMarketRisks    string `json:"potentialMarketRisks"`
	PotentialFinancialRisks string `json:"potentialFinancialRisks"`
	MitigationStrategies    string `json:"mitigationStrategies"`
}

// StarRatingReaction 某个星级下的消费者反应
type StarRatingReaction struct {
	Rating                int      `json:"rating"`
	Title                 string   `json:"title"`
	ExpectedComment       string   `json:"expectedComment"`
	KeyReactionPoints     []string `json:"keyReactionPoints"`
	StartupConsiderations []string `json:"startupConsiderations"`
}

// ConsumerReactionPrediction 消费者反应模拟
type ConsumerReactionPrediction struct {
	ReactionsByStar []StarRatingReaction `json:"reactionsByStar"`
}

// ByRating 返回指定星级的反应，不存在时返回 nil
func (c ConsumerReactionPrediction) ByRating(rating int) *StarRatingReaction {
	for i := range c.ReactionsByStar {
		if c.ReactionsByStar[i].Rating == rating {
			return &c.ReactionsByStar[i]
		}
	}
	return nil
}

// HarshCritique 冷静批评
//
// PolicyViolation 是结构化的违规标记，旧的响应里没有这个字段，所以是可选的。
type HarshCritique struct {
	Grade           Grade  `json:"grade"`
	Critique        string `json:"critique"`
	PolicyViolation *bool  `json:"policyViolation,omitempty"`
}

// AnalysisResult 一份完整的分析报告，由 LLM 一次性生成，生成后不再修改
type AnalysisResult struct {
	SWOT                       SWOT                       `json:"swot"`
	CompetitiveLandscape       CompetitiveLandscape       `json:"competitiveLandscape"`
	MonetizationStrategy       MonetizationStrategy       `json:"monetizationStrategy"`
	TargetAudience             TargetAudience             `json:"targetAudience"`
	MarketingSalesStrategy     MarketingSalesStrategy     `json:"marketingSalesStrategy"`
	KPIs                       KPIs                       `json:"kpis"`
	RiskAssessment             RiskAssessment             `json:"riskAssessment"`
	ConsumerReactionPrediction ConsumerReactionPrediction `json:"consumerReactionPrediction"`
	HarshCritique              HarshCritique              `json:"harshCritique"`
}

// Normalize 整理 LLM 返回的结果：等级统一为大写，nil 切片换成空切片，
// 保证渲染层只需要做顶层的 nil 判断。
func (r *AnalysisResult) Normalize() {
	r.HarshCritique.Grade = ParseGrade(string(r.HarshCritique.Grade))

	r.MonetizationStrategy.KeyRevenueStreamsSummary = compact(r.MonetizationStrategy.KeyRevenueStreamsSummary)
	r.MonetizationStrategy.KeyPayingCustomersSummary = compact(r.MonetizationStrategy.KeyPayingCustomersSummary)

	if m := r.CompetitiveLandscape.FeatureMatrixData; m != nil {
		// 矩阵按位置对齐，只补空切片，不删除元素
		m.CompetitorNames = orEmpty(m.CompetitorNames)
		for i := range m.Features {
			m.Features[i].CompetitorValues = orEmpty(m.Features[i].CompetitorValues)
		}
	}
	if p := r.CompetitiveLandscape.PositioningMapData; p != nil && p.Competitors == nil {
		p.Competitors = []PositioningPoint{}
	}
	for i := range r.ConsumerReactionPrediction.ReactionsByStar {
		rc := &r.ConsumerReactionPrediction.ReactionsByStar[i]
		rc.KeyReactionPoints = compact(rc.KeyReactionPoints)
		rc.StartupConsiderations = compact(rc.StartupConsiderations)
	}
	for i := range r.MarketingSalesStrategy.CustomerJourneyMap {
		st := &r.MarketingSalesStrategy.CustomerJourneyMap[i]
		st.CustomerActions = compact(st.CustomerActions)
		st.Touchpoints = compact(st.Touchpoints)
		st.Channels = compact(st.Channels)
		st.KPIs = compact(st.KPIs)
	}
}

func compact(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := s[:0]
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
