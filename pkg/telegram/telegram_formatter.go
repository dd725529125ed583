package telegram

import (
	"fmt"
	"strings"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// FormatCatalystCreated renders the alert for a freshly opened catalyst
// event as Telegram Markdown.
func FormatCatalystCreated(event entity.CatalystEvent) string {
	var sb strings.Builder

	direction := "📈"
	if event.PriceChangePct < 0 {
		direction = "📉"
	}
	sb.WriteString(fmt.Sprintf("%s *새 촉매 이벤트* `%s`\n\n", direction, event.StockCode))
	sb.WriteString(fmt.Sprintf("🗓 *날짜:* %s\n", event.EventDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("🏷 *유형:* %s\n", catalystTypeLabel(event.CatalystType)))
	sb.WriteString(fmt.Sprintf("💹 *당일 변동:* %+.1f%%\n", event.PriceChangePct))
	sb.WriteString(fmt.Sprintf("💰 *기준가:* %s원\n", formatThousands(int64(event.PriceAtEvent))))
	sb.WriteString(fmt.Sprintf("📊 *거래량:* %s\n", formatThousands(event.VolumeAtEvent)))
	return sb.String()
}

// FormatCatalystExpired renders the closing report for a catalyst that
// reached its terminal state.
func FormatCatalystExpired(event entity.CatalystEvent) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🏁 *촉매 이벤트 종료* `%s`\n\n", event.StockCode))
	sb.WriteString(fmt.Sprintf("🗓 *발생일:* %s (경과 %d거래일)\n", event.EventDate.Format("2006-01-02"), event.DaysAlive))
	sb.WriteString(fmt.Sprintf("🏷 *유형:* %s\n", catalystTypeLabel(event.CatalystType)))
	sb.WriteString(fmt.Sprintf("📉 *최종 수익률:* %+.1f%%\n", event.CurrentReturn))
	sb.WriteString(fmt.Sprintf("🔝 *최고 수익률:* %+.1f%% (D+%d)\n", event.MaxReturn, event.MaxReturnDay))
	if event.ReturnT5 != nil {
		sb.WriteString(fmt.Sprintf("↪️ *T+5 수익률:* %+.1f%%\n", *event.ReturnT5))
	}
	if event.FlowConfirmed {
		sb.WriteString("✅ 기관/외국인 수급 확인됨\n")
	}
	return sb.String()
}

// FormatConfirmedSignal renders the alert for a composite signal whose four
// dimensions all aligned.
func FormatConfirmedSignal(signal dto.CompositeSignal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🚨 *확정 시그널* `%s`\n\n", signal.StockCode))
	sb.WriteString(fmt.Sprintf("🗓 *기준일:* %s\n", signal.AsOfDate.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("⭐ *종합:* %.1f점 (등급 %s)\n\n", signal.CompositeScore, signal.CompositeGrade))
	sb.WriteString(formatDimensionRow("📈 차트", signal.Chart))
	sb.WriteString(formatDimensionRow("📰 뉴스/공시", signal.Narrative))
	sb.WriteString(formatDimensionRow("🏦 수급", signal.Flow))
	sb.WriteString(formatDimensionRow("💬 소셜", signal.Social))
	return sb.String()
}

func formatDimensionRow(label string, d dto.DimensionScore) string {
	check := "▫️"
	if d.Aligned() {
		check = "✅"
	}
	return fmt.Sprintf("%s %s: %.0f/%.0f (%s)\n", check, label, d.Score, d.MaxScore, d.Grade)
}

func catalystTypeLabel(catalystType string) string {
	switch catalystType {
	case entity.CatalystTypeEarnings:
		return "실적"
	case entity.CatalystTypeContract:
		return "수주/계약"
	case entity.CatalystTypePolicy:
		return "정책"
	case entity.CatalystTypeManagement:
		return "경영/지배구조"
	case entity.CatalystTypeProduct:
		return "신제품/승인"
	case entity.CatalystTypeTheme:
		return "테마"
	default:
		return "기타"
	}
}

func formatThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}
