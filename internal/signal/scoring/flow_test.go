package scoring

import (
	"testing"
	"time"

	"golang-kstock-signals/internal/entity"

	"github.com/stretchr/testify/assert"
)

func flowSeries(foreign, institution []int64) []entity.InvestorFlow {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	n := len(foreign)
	flows := make([]entity.InvestorFlow, 0, n)
	for i := 0; i < n; i++ {
		flows = append(flows, entity.InvestorFlow{
			StockCode:      "005930",
			Date:           base.AddDate(0, 0, i),
			ForeignNet:     foreign[i],
			InstitutionNet: institution[i],
		})
	}
	return flows
}

func repeatInt64(v int64, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScoreFlowNoData(t *testing.T) {
	score := ScoreFlow(DefaultConfig(), nil)

	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, true, score.Details["data_unavailable"])
}

func TestScoreFlowNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	flows := flowSeries(repeatInt64(-5_000_000, 20), repeatInt64(-3_000_000, 20))

	score := ScoreFlow(cfg, flows)

	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, "D", score.Grade)
}

func TestScoreFlowStreakCaps(t *testing.T) {
	cfg := DefaultConfig()
	flows := flowSeries(repeatInt64(1_000_000, 20), repeatInt64(1_000_000, 20))

	score := ScoreFlow(cfg, flows)

	assert.Equal(t, cfg.Flow.ForeignStreakCap, score.Details["foreign_streak_points"])
	assert.Equal(t, cfg.Flow.InstitutionStreakCap, score.Details["institution_streak_points"])
	assert.LessOrEqual(t, score.Score, score.MaxScore)
}

func TestScoreFlowStreakBrokenBySellDay(t *testing.T) {
	cfg := DefaultConfig()
	foreign := repeatInt64(1_000_000, 20)
	foreign[17] = -500_000 // sell day two sessions back
	flows := flowSeries(foreign, repeatInt64(0, 20))

	score := ScoreFlow(cfg, flows)

	assert.Equal(t, 2, score.Details["foreign_streak_days"])
	assert.Equal(t, 0, score.Details["institution_streak_days"])
}

func TestScoreFlowMagnitudeAgainstBaseline(t *testing.T) {
	cfg := DefaultConfig()
	// Quiet baseline then a strong 5-day surge.
	foreign := append(repeatInt64(500_000, 15), repeatInt64(5_000_000, 5)...)
	flows := flowSeries(foreign, repeatInt64(0, 20))

	score := ScoreFlow(cfg, flows)

	assert.Equal(t, cfg.Flow.ForeignStrongPoints, score.Details["foreign_magnitude_points"])
}
