package scoring

import (
	"testing"
	"time"

	"golang-kstock-signals/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes []float64, volume int64) []entity.StockPrice {
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]entity.StockPrice, 0, len(closes))
	for i, c := range closes {
		bars = append(bars, entity.StockPrice{
			StockCode: "005930",
			Date:      base.AddDate(0, 0, i),
			Open:      c * 0.995,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    volume,
		})
	}
	return bars
}

func risingCloses(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + float64(i)*step
	}
	return closes
}

func TestScoreChartEmptySeries(t *testing.T) {
	score := ScoreChart(DefaultConfig(), nil)

	assert.Equal(t, 0.0, score.Score)
	assert.Equal(t, "D", score.Grade)
	assert.Equal(t, true, score.Details["data_unavailable"])
}

func TestScoreChartUptrendScoresWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	bars := barsFromCloses(risingCloses(130, 100, 0.5), 1_000_000)

	score := ScoreChart(cfg, bars)

	assert.GreaterOrEqual(t, score.Score, 0.0)
	assert.LessOrEqual(t, score.Score, score.MaxScore)
	assert.Equal(t, MAAlignmentBullish, score.Details["ma_alignment"])
	assert.Equal(t, Grade(score.Score, score.MaxScore), score.Grade)
}

func TestScoreChartDowntrendIsBearish(t *testing.T) {
	cfg := DefaultConfig()
	closes := make([]float64, 130)
	for i := range closes {
		closes[i] = 200 - float64(i)*0.5
	}
	bars := barsFromCloses(closes, 1_000_000)

	score := ScoreChart(cfg, bars)

	assert.Equal(t, MAAlignmentBearish, score.Details["ma_alignment"])
	assert.Equal(t, 0.0, score.Details["ma_alignment_points"])
}

func TestScoreChartShortHistoryIsFlaggedNotFailed(t *testing.T) {
	cfg := DefaultConfig()
	bars := barsFromCloses(risingCloses(30, 100, 1), 500_000)

	score := ScoreChart(cfg, bars)

	assert.Equal(t, true, score.Details["insufficient_history"])
	assert.GreaterOrEqual(t, score.Score, 0.0)
	assert.LessOrEqual(t, score.Score, score.MaxScore)
}

func TestScoreChartVolumeAnomalyPoints(t *testing.T) {
	cfg := DefaultConfig()
	bars := barsFromCloses(risingCloses(130, 100, 0.2), 1_000_000)
	// Triple the final session's volume against the 20-day average.
	bars[len(bars)-1].Volume = 3_100_000

	score := ScoreChart(cfg, bars)

	assert.Equal(t, cfg.Chart.VolumeHighPoints, score.Details["volume_points"])
}

func TestClassifyMAAlignment(t *testing.T) {
	tol := 0.5

	assert.Equal(t, MAAlignmentBullish, classifyMAAlignment(110, 105, 100, 95, tol))
	assert.Equal(t, MAAlignmentBearish, classifyMAAlignment(95, 100, 105, 110, tol))
	assert.Equal(t, MAAlignmentMixed, classifyMAAlignment(100, 110, 90, 105, tol))
	// Within 0.5% tolerance a marginal inversion still counts as bullish.
	assert.Equal(t, MAAlignmentBullish, classifyMAAlignment(104.8, 105, 100, 95, tol))
}

func TestClassifyGap(t *testing.T) {
	cfg := DefaultConfig()
	base := barsFromCloses([]float64{100, 100}, 1_000_000)

	makeGap := func(open, close float64) []entity.StockPrice {
		bars := make([]entity.StockPrice, 2)
		copy(bars, base)
		bars[1].Open = open
		bars[1].Close = close
		bars[1].High = close * 1.01
		bars[1].Low = open * 0.99
		return bars
	}

	gapType, gapPct := classifyGap(cfg.Chart, makeGap(100.2, 100.5), 1.0)
	assert.Equal(t, GapNone, gapType)
	assert.InDelta(t, 0.2, gapPct, 0.001)

	gapType, _ = classifyGap(cfg.Chart, makeGap(101.5, 102), 1.0)
	assert.Equal(t, GapCommon, gapType)

	gapType, _ = classifyGap(cfg.Chart, makeGap(103.5, 105), 2.5)
	assert.Equal(t, GapBreakaway, gapType)

	gapType, _ = classifyGap(cfg.Chart, makeGap(101.5, 102.5), 2.5)
	assert.Equal(t, GapRunaway, gapType)

	gapType, _ = classifyGap(cfg.Chart, makeGap(104, 103), 2.5)
	assert.Equal(t, GapExhaustion, gapType)
}

func TestBollingerPercentB(t *testing.T) {
	// Flat closes have no band width.
	flat := barsFromCloses(risingCloses(25, 100, 0), 1_000)
	_, ok := bollingerPercentB(flat)
	assert.False(t, ok)

	rising := barsFromCloses(risingCloses(25, 100, 1), 1_000)
	b, ok := bollingerPercentB(rising)
	require.True(t, ok)
	assert.GreaterOrEqual(t, b, 0.0)
	assert.LessOrEqual(t, b, 1.0)
	// The latest close of a steady uptrend sits in the upper half.
	assert.Greater(t, b, 0.5)
}
