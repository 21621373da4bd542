package engine

import (
	"fmt"
	"strings"
)

const systemPrompt = "당신은 비즈니스 아이디어를 분석하는 전문 컨설턴트이며 JSON 생성기입니다. 반드시 JSON만 출력하십시오."

const guidelines = `
[중요: 안전 및 윤리 가이드라인]
입력된 아이디어가 불법적인 활동(마약, 사기, 도박 등), 폭력, 혐오 표현, 성인물, 또는 기타 심각한 윤리적 결함이 있는 경우 다음과 같이 처리하십시오:
1. 'harshCritique'의 'grade'를 반드시 'F'로 설정하고 'policyViolation'을 true로 설정하십시오.
2. 'harshCritique'의 'critique'에 분석이 거부된 구체적인 이유(윤리적/법적 사유)를 작성하십시오.
3. 다른 모든 텍스트 필드(SWOT, 수익모델 등)의 내용을 "부적절한 요청으로 인해 분석이 거부되었습니다."로 통일하십시오.
4. 'reactionsByStar' 배열은 비워두거나 동일한 거부 메시지로 채우십시오.

[분석 품질 및 스타일 가이드라인 (매우 중요)]
1. 포지셔닝 맵 (보수적 평가):
   - "우리 회사(Our Company)"의 위치를 무조건 (10, 10)이나 최상위권에 두지 마십시오. 초기 아이디어임을 감안하여 현실적이고 보수적인 위치(예: x=6~8, y=5~7)에 배치하십시오.
   - 모든 좌표는 0에서 10 사이의 값이어야 합니다.
   - 경쟁사들을 강력하게 묘사하고, 시장을 이미 장악하고 있는 플레이어들을 상위권에 배치하십시오.
2. 기능 비교 매트릭스 (기호 엄수):
   - 'featureMatrixData'의 셀 값(competitorValues, ourCompany)에는 오직 'O' (제공/우수), 'X' (미제공/없음), '△' (보통/부분제공) 세 가지 기호만 사용하십시오.
   - 'competitorValues'의 순서와 개수는 'competitorNames'와 일치해야 합니다.
   - 절대 "제공함", "높음" 등의 텍스트를 쓰지 마십시오.
3. KPI 및 위험 평가 (철저한 분석):
   - KPI는 단순한 지표 나열이 아니라, 초기 스타트업이 생존하기 위해 반드시 확인해야 할 구체적인 수치와 지표를 제시하십시오.
   - 위험 평가는 "잘 해결될 것이다"라는 낙관론을 배제하고, 사업을 망하게 할 수 있는 치명적인 시나리오와 이에 대한 구체적이고 실질적인 대비책을 작성하십시오.

[일반 지침]
1. 아이디어에 대해 S, A, B, C, D, F 등급을 매기세요.
2. 'consumerReactionPrediction' 섹션의 'reactionsByStar' 배열에는 반드시 1점, 2점, 3점, 4점, 5점 등 총 5개의 객체가 하나도 빠짐없이 포함되어야 합니다.
3. 모든 텍스트는 전문적이고 통찰력 있는 한국어로 작성하세요.
4. '냉정한 비평' 섹션은 매우 비판적이고 현실적인 관점에서 작성해주세요.`

// PromptContext 提示词中的附加资料，均可为空
type PromptContext struct {
	// Reference 用户提供的参考链接正文
	Reference string
	// Research 市场调研搜索摘要
	Research string
}

// BuildPrompt 组装分析提示词
func BuildPrompt(idea string, pc PromptContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "다음 비즈니스 아이디어를 한국어로 심층 분석하여 체계적인 보고서를 작성해주세요: %q\n", idea)
	sb.WriteString(guidelines)

	if ref := strings.TrimSpace(pc.Reference); ref != "" {
		sb.WriteString("\n\n[참고 자료: 사용자가 제공한 링크의 본문]\n")
		sb.WriteString(ref)
	}
	if res := strings.TrimSpace(pc.Research); res != "" {
		sb.WriteString("\n\n[시장 조사 자료: 웹 검색 결과 요약]\n")
		sb.WriteString(res)
		sb.WriteString("\n위 자료는 참고용이며, 사실과 다른 내용은 무시하십시오.")
	}
	return sb.String()
}
