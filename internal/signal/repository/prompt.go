package repository

import (
	"fmt"
	"strings"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// BuildBriefingPrompt renders the per-stock briefing prompt from the
// composite signal and, when present, the live catalyst event.
func BuildBriefingPrompt(signal dto.CompositeSignal, catalyst *entity.CatalystEvent) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("다음은 한국 주식 %s에 대한 %s 기준 시그널 데이터입니다.\n\n",
		signal.StockCode, signal.AsOfDate.Format("2006-01-02")))

	sb.WriteString(fmt.Sprintf("종합 점수: %.1f (등급 %s, 시그널 유형: %s, 정렬 차원 수: %d)\n",
		signal.CompositeScore, signal.CompositeGrade, briefingSignalLabel(signal.SignalType), signal.AlignedCount))
	writeDimensionLine(&sb, "차트", signal.Chart)
	writeDimensionLine(&sb, "뉴스/공시", signal.Narrative)
	writeDimensionLine(&sb, "수급", signal.Flow)
	writeDimensionLine(&sb, "소셜", signal.Social)

	if catalyst != nil {
		sb.WriteString(fmt.Sprintf("\n진행 중인 촉매 이벤트: 유형 %s, 발생일 %s, 당일 변동률 %.1f%%, 현재 수익률 %.1f%%, 상태 %s, 경과 거래일 %d\n",
			catalyst.CatalystType,
			catalyst.EventDate.Format("2006-01-02"),
			catalyst.PriceChangePct,
			catalyst.CurrentReturn,
			catalyst.Status,
			catalyst.DaysAlive))
		if catalyst.FlowConfirmed {
			sb.WriteString("기관/외국인 수급이 이벤트 방향을 확인해 주고 있습니다.\n")
		}
	}

	sb.WriteString(`
위 데이터를 바탕으로 간결한 브리핑을 작성해 주세요. 투자 추천이 아니라 데이터 요약입니다.
반드시 아래 JSON 형식으로만 응답하세요:

{
  "headline": "한 줄 요약",
  "assessment": "2-3문장의 상황 평가",
  "key_drivers": ["핵심 동인 목록"],
  "risk_note": "주의할 리스크 한 가지",
  "confidence": 0.0
}
`)
	return sb.String()
}

func writeDimensionLine(sb *strings.Builder, label string, d dto.DimensionScore) {
	sb.WriteString(fmt.Sprintf("%s: %.1f/%.0f (등급 %s)\n", label, d.Score, d.MaxScore, d.Grade))
}

func briefingSignalLabel(signalType string) string {
	if signalType == dto.SignalTypeNone {
		return "없음"
	}
	return signalType
}
