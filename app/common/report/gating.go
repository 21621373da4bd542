package report

import "strings"

const (
	// RejectionMarker LLM 拒绝分析时写入 strengths 或 critique 的文本
	RejectionMarker = "거부되었습니다"
	// ImproprietyMarker LLM 判定内容不当时写入 critique 的文本
	ImproprietyMarker = "부적절"
)

// Markers 拦截判定使用的标记文本，可通过配置覆盖
type Markers struct {
	Rejection   []string
	Impropriety []string
}

// DefaultMarkers 默认标记
var DefaultMarkers = Markers{
	Rejection:   []string{RejectionMarker},
	Impropriety: []string{ImproprietyMarker},
}

// Blocked 判断结果是否应被拦截。
// 只有 F 等级参与判定。基本规则是 F 等级且命中文本标记；
// 在此之外，F 等级且 PolicyViolation 为 true 时即使没有标记文本也拦截。
func (m Markers) Blocked(r *AnalysisResult) bool {
	if r == nil || r.HarshCritique.Grade != GradeF {
		return false
	}
	if v := r.HarshCritique.PolicyViolation; v != nil && *v {
		return true
	}
	critique := r.HarshCritique.Critique
	return containsAny(r.SWOT.Strengths, m.Rejection) ||
		containsAny(critique, m.Rejection) ||
		containsAny(critique, m.Impropriety)
}

// IsBlocked 使用默认标记判定
func IsBlocked(r *AnalysisResult) bool {
	return DefaultMarkers.Blocked(r)
}

func containsAny(s string, markers []string) bool {
	for _, mk := range markers {
		if mk != "" && strings.Contains(s, mk) {
			return true
		}
	}
	return false
}
