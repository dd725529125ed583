package scoring

import (
	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// ScoreNarrative scores news and disclosure momentum over the trailing
// window. Events missing an importance classification count as low
// importance; the default never boosts the score.
func ScoreNarrative(cfg Config, events []entity.StockEvent) dto.DimensionScore {
	bands := cfg.Narrative
	details := map[string]interface{}{}

	if len(events) == 0 {
		details["data_unavailable"] = true
		return dto.DimensionScore{Score: 0, MaxScore: bands.MaxScore, Grade: Grade(0, bands.MaxScore), Details: details}
	}

	var newsPoints float64
	var newsCount, disclosureCount int
	catalystTypes := map[string]bool{}

	for _, ev := range events {
		if ev.CatalystType != "" {
			catalystTypes[ev.CatalystType] = true
		}
		switch ev.Type {
		case entity.EventTypeDisclosure:
			disclosureCount++
		default:
			newsCount++
			switch ev.Importance {
			case entity.ImportanceHigh:
				newsPoints += bands.NewsHighPoints
			case entity.ImportanceMedium:
				newsPoints += bands.NewsMediumPoints
			default:
				newsPoints += bands.NewsLowPoints
			}
		}
	}

	if newsPoints > bands.NewsCap {
		newsPoints = bands.NewsCap
	}

	disclosurePoints := float64(disclosureCount) * bands.DisclosurePoints
	if disclosurePoints > bands.DisclosureCap {
		disclosurePoints = bands.DisclosureCap
	}

	var diversityPoints float64
	if len(catalystTypes) >= 2 {
		diversityPoints = bands.TypeDiversityPoints
	}

	score := newsPoints + disclosurePoints + diversityPoints
	if score > bands.MaxScore {
		score = bands.MaxScore
	}

	details["news_count"] = newsCount
	details["news_points"] = newsPoints
	details["disclosure_count"] = disclosureCount
	details["disclosure_points"] = disclosurePoints
	details["catalyst_type_count"] = len(catalystTypes)
	details["diversity_points"] = diversityPoints

	return dto.DimensionScore{
		Score:    score,
		MaxScore: bands.MaxScore,
		Grade:    Grade(score, bands.MaxScore),
		Details:  details,
	}
}
