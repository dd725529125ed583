package scoring

import (
	"testing"
	"time"

	"golang-kstock-signals/internal/entity"

	"github.com/stretchr/testify/assert"
)

func newsEvent(importance, catalystType string) entity.StockEvent {
	return entity.StockEvent{
		StockCode:    "005930",
		Date:         time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Type:         entity.EventTypeNews,
		Importance:   importance,
		CatalystType: catalystType,
	}
}

func TestScoreNarrativeNoEvents(t *testing.T) {
	score := ScoreNarrative(DefaultConfig(), nil)

	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, true, score.Details["data_unavailable"])
}

func TestScoreNarrativeImportanceWeighting(t *testing.T) {
	cfg := DefaultConfig()

	high := ScoreNarrative(cfg, []entity.StockEvent{newsEvent(entity.ImportanceHigh, "")})
	low := ScoreNarrative(cfg, []entity.StockEvent{newsEvent(entity.ImportanceLow, "")})

	assert.Greater(t, high.Score, low.Score)
	assert.Equal(t, cfg.Narrative.NewsHighPoints, high.Details["news_points"])
}

func TestScoreNarrativeMissingImportanceCountsAsLow(t *testing.T) {
	cfg := DefaultConfig()

	unclassified := ScoreNarrative(cfg, []entity.StockEvent{newsEvent("", "")})
	low := ScoreNarrative(cfg, []entity.StockEvent{newsEvent(entity.ImportanceLow, "")})

	assert.Equal(t, low.Score, unclassified.Score)
}

func TestScoreNarrativeNewsCap(t *testing.T) {
	cfg := DefaultConfig()

	events := make([]entity.StockEvent, 0, 20)
	for i := 0; i < 20; i++ {
		events = append(events, newsEvent(entity.ImportanceHigh, ""))
	}
	score := ScoreNarrative(cfg, events)

	assert.Equal(t, cfg.Narrative.NewsCap, score.Details["news_points"])
	assert.LessOrEqual(t, score.Score, score.MaxScore)
}

func TestScoreNarrativeDisclosuresAndDiversity(t *testing.T) {
	cfg := DefaultConfig()

	disclosure := newsEvent("", entity.CatalystTypeEarnings)
	disclosure.Type = entity.EventTypeDisclosure
	events := []entity.StockEvent{
		disclosure,
		newsEvent(entity.ImportanceHigh, entity.CatalystTypeContract),
	}
	score := ScoreNarrative(cfg, events)

	assert.Equal(t, cfg.Narrative.DisclosurePoints, score.Details["disclosure_points"])
	assert.Equal(t, cfg.Narrative.TypeDiversityPoints, score.Details["diversity_points"])
	expected := cfg.Narrative.NewsHighPoints + cfg.Narrative.DisclosurePoints + cfg.Narrative.TypeDiversityPoints
	assert.Equal(t, expected, score.Score)
}
