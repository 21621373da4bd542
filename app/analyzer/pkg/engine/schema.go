package engine

import "google.golang.org/genai"

func str() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }

func num() *genai.Schema { return &genai.Schema{Type: genai.TypeNumber} }

func strList() *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: str()}
}

func object(props map[string]*genai.Schema, required ...string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: props, Required: required}
}

func point() *genai.Schema {
	return object(map[string]*genai.Schema{"name": str(), "x": num(), "y": num()}, "name", "x", "y")
}

// layer 金字塔层，extra 为该图表额外的列表字段（size 只用于市场规模）
func layer(withSize bool, extra string) *genai.Schema {
	props := map[string]*genai.Schema{
		"name":        str(),
		"description": str(),
		extra:         strList(),
	}
	if withSize {
		props["size"] = str()
	}
	return object(props, "name", "description")
}

// ResponseSchema 分析报告的响应结构，字段名与 report.AnalysisResult 的 json 标签一致
func ResponseSchema() *genai.Schema {
	marketLayer := func() *genai.Schema { return layer(true, "characteristics") }
	segmentLayer := func() *genai.Schema { return layer(false, "personas") }
	loyaltyLayer := func() *genai.Schema { return layer(false, "characteristics") }

	return object(map[string]*genai.Schema{
		"swot": object(map[string]*genai.Schema{
			"strengths":     str(),
			"weaknesses":    str(),
			"opportunities": str(),
			"threats":       str(),
		}, "strengths", "weaknesses", "opportunities", "threats"),

		"competitiveLandscape": object(map[string]*genai.Schema{
			"mainCompetitors":       str(),
			"competitiveAdvantages": str(),
			"marketEntryBarriers":   str(),
			"differentiationPoints": str(),
			"positioningMapData": object(map[string]*genai.Schema{
				"xAxisLabel":  str(),
				"yAxisLabel":  str(),
				"ourCompany":  point(),
				"competitors": {Type: genai.TypeArray, Items: point()},
			}, "xAxisLabel", "yAxisLabel", "ourCompany", "competitors"),
			"featureMatrixData": object(map[string]*genai.Schema{
				"competitorNames": strList(),
				"features": {Type: genai.TypeArray, Items: object(map[string]*genai.Schema{
					"featureName":      str(),
					"ourCompany":       str(),
					"competitorValues": strList(),
				}, "featureName", "ourCompany", "competitorValues")},
			}, "competitorNames", "features"),
		}, "mainCompetitors", "competitiveAdvantages", "marketEntryBarriers", "differentiationPoints", "positioningMapData", "featureMatrixData"),

		"monetizationStrategy": object(map[string]*genai.Schema{
			"keyRevenueStreamsSummary":  strList(),
			"pricingPolicySummary":      str(),
			"keyPayingCustomersSummary": strList(),
			"keyStrengthsSummary":       str(),
			"revenueStreams":            str(),
			"pricingPolicy":             str(),
			"estimatedRevenuePotential": str(),
			"paymentCollectionMethods":  str(),
		}, "keyRevenueStreamsSummary", "pricingPolicySummary", "keyPayingCustomersSummary", "revenueStreams", "pricingPolicy", "estimatedRevenuePotential", "paymentCollectionMethods"),

		"targetAudience": object(map[string]*genai.Schema{
			"primaryAudience":            str(),
			"secondaryAudience":          str(),
			"customerNeedsAndPainPoints": str(),
			"valuePropositionToAudience": str(),
			"marketSizePyramid": object(map[string]*genai.Schema{
				"tam": marketLayer(),
				"sam": marketLayer(),
				"som": marketLayer(),
			}, "tam", "sam", "som"),
			"customerSegmentationPyramid": object(map[string]*genai.Schema{
				"primaryTarget":   segmentLayer(),
				"secondaryTarget": segmentLayer(),
				"tertiaryTarget":  segmentLayer(),
			}, "primaryTarget", "secondaryTarget", "tertiaryTarget"),
			"customerLoyaltyPyramid": object(map[string]*genai.Schema{
				"advocates":        loyaltyLayer(),
				"loyalCustomers":   loyaltyLayer(),
				"regularCustomers": loyaltyLayer(),
				"prospects":        loyaltyLayer(),
			}, "advocates", "loyalCustomers", "regularCustomers", "prospects"),
		}, "primaryAudience", "secondaryAudience", "customerNeedsAndPainPoints", "valuePropositionToAudience", "marketSizePyramid", "customerSegmentationPyramid", "customerLoyaltyPyramid"),

		"marketingSalesStrategy": object(map[string]*genai.Schema{
			"keyMarketingChannels":        str(),
			"salesProcess":                str(),
			"customerAcquisitionStrategy": str(),
			"brandMessaging":              str(),
			"customerJourneyMap": {Type: genai.TypeArray, Items: object(map[string]*genai.Schema{
				"stageName":       str(),
				"customerActions": strList(),
				"touchpoints":     strList(),
				"channels":        strList(),
				"kpis":            strList(),
			}, "stageName", "customerActions", "touchpoints", "channels", "kpis")},
		}, "keyMarketingChannels", "salesProcess", "customerAcquisitionStrategy", "brandMessaging", "customerJourneyMap"),

		"kpis": object(map[string]*genai.Schema{
			"primaryKPIs":                  str(),
			"secondaryKPIs":                str(),
			"measurementToolsAndFrequency": str(),
			"successTargets":               str(),
		}, "primaryKPIs", "secondaryKPIs", "measurementToolsAndFrequency", "successTargets"),

		"riskAssessment": object(map[string]*genai.Schema{
			"potentialTechnicalRisks": str(),
			"potentialMarketRisks":    str(),
			"potentialFinancialRisks": str(),
			"mitigationStrategies":    str(),
		}, "potentialTechnicalRisks", "potentialMarketRisks", "potentialFinancialRisks", "mitigationStrategies"),

		"consumerReactionPrediction": object(map[string]*genai.Schema{
			"reactionsByStar": {Type: genai.TypeArray, Items: object(map[string]*genai.Schema{
				"rating":                {Type: genai.TypeInteger},
				"title":                 str(),
				"expectedComment":       str(),
				"keyReactionPoints":     strList(),
				"startupConsiderations": strList(),
			}, "rating", "title", "expectedComment", "keyReactionPoints", "startupConsiderations")},
		}, "reactionsByStar"),

		"harshCritique": object(map[string]*genai.Schema{
			"grade":           {Type: genai.TypeString, Description: "Idea Grade: S, A, B, C, D, or F", Enum: []string{"S", "A", "B", "C", "D", "F"}},
			"critique":        {Type: genai.TypeString, Description: "Detailed harsh critique"},
			"policyViolation": {Type: genai.TypeBoolean, Description: "true when the idea was refused under the safety guideline"},
		}, "grade", "critique"),
	}, "swot", "competitiveLandscape", "monetizationStrategy", "targetAudience", "marketingSalesStrategy", "kpis", "riskAssessment", "consumerReactionPrediction", "harshCritique")
}
