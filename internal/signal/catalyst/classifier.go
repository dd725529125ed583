package catalyst

import (
	"strings"

	"golang-kstock-signals/internal/entity"
)

// Keyword table used when an event carries no catalyst classification of
// its own. First match wins within a title; across events the highest
// importance event decides.
var catalystKeywords = []struct {
	catalystType string
	keywords     []string
}{
	{entity.CatalystTypeEarnings, []string{"실적", "영업이익", "매출", "흑자", "적자", "어닝"}},
	{entity.CatalystTypeContract, []string{"수주", "계약", "공급", "납품", "MOU"}},
	{entity.CatalystTypePolicy, []string{"정책", "정부", "규제", "법안", "지원금", "국책"}},
	{entity.CatalystTypeManagement, []string{"인수", "합병", "대표", "경영권", "지분", "유상증자", "무상증자"}},
	{entity.CatalystTypeProduct, []string{"신제품", "출시", "개발", "특허", "임상", "승인"}},
	{entity.CatalystTypeTheme, []string{"테마", "관련주", "수혜주"}},
}

// ClassifyCatalystType infers the catalyst type for a detected move from
// the day's events. Events are ranked by importance; the best event's own
// classification wins, otherwise its title is keyword-matched. Falls back
// to "other".
func ClassifyCatalystType(events []entity.StockEvent) string {
	if len(events) == 0 {
		return entity.CatalystTypeOther
	}

	best := events[0]
	for _, ev := range events[1:] {
		if importanceRank(ev.Importance) > importanceRank(best.Importance) {
			best = ev
		}
	}

	if best.CatalystType != "" {
		return best.CatalystType
	}
	return classifyTitle(best.Title)
}

func classifyTitle(title string) string {
	for _, entry := range catalystKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(title, kw) {
				return entry.catalystType
			}
		}
	}
	return entity.CatalystTypeOther
}

func importanceRank(importance string) int {
	switch importance {
	case entity.ImportanceHigh:
		return 2
	case entity.ImportanceMedium:
		return 1
	default:
		return 0
	}
}
