package scoring

import (
	"testing"

	"golang-kstock-signals/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestScoreValueQualityStockLandsInGradeA(t *testing.T) {
	cfg := DefaultConfig()
	ratio := &entity.FinancialRatio{
		StockCode: "005930",
		BsnsYear:  "2024",
		ReprtCode: "11011",
		PER:       f(8),
		PBR:       f(0.7),
		ROE:       f(15),
		DebtRatio: f(40),
	}

	metrics := ScoreValue(cfg, ratio, 0)

	assert.GreaterOrEqual(t, metrics.TotalScore, 80.0)
	assert.Equal(t, "A", metrics.Grade)
	assert.Equal(t, 25.0, metrics.SubScores["per"])
	assert.Equal(t, 20.0, metrics.SubScores["pbr"])
	assert.Equal(t, 20.0, metrics.SubScores["roe"])
	assert.Equal(t, 15.0, metrics.SubScores["safety"])
}

func TestScoreValueMidBandAllotmentsComeFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	// Mid-band ratios under the defaults.
	ratio := &entity.FinancialRatio{
		StockCode:       "005930",
		PER:             f(12),
		PBR:             f(1.0),
		ROE:             f(12),
		DebtRatio:       f(80),
		OperatingMargin: f(10),
		RevenueGrowth:   f(12),
	}

	metrics := ScoreValue(cfg, ratio, 0)
	assert.Equal(t, 18.0, metrics.SubScores["per"])
	assert.Equal(t, 15.0, metrics.SubScores["pbr"])
	assert.Equal(t, 14.0, metrics.SubScores["roe"])
	assert.Equal(t, 10.0, metrics.SubScores["safety"])
	assert.Equal(t, 6.0, metrics.SubScores["margin"])
	assert.Equal(t, 6.0, metrics.SubScores["growth"])

	// Overriding an allotment changes the sub-score without touching code.
	cfg.Value.PERPartialPoints = 22
	cfg.Value.DebtModeratePoints = 12
	metrics = ScoreValue(cfg, ratio, 0)
	assert.Equal(t, 22.0, metrics.SubScores["per"])
	assert.Equal(t, 12.0, metrics.SubScores["safety"])
}

func TestScoreValueExpensiveStockScoresLow(t *testing.T) {
	cfg := DefaultConfig()
	ratio := &entity.FinancialRatio{
		StockCode: "900001",
		PER:       f(40),
		PBR:       f(5),
		ROE:       f(2),
		DebtRatio: f(300),
	}

	metrics := ScoreValue(cfg, ratio, 0)

	assert.Equal(t, 0.0, metrics.TotalScore)
	assert.Equal(t, "D", metrics.Grade)
}

func TestScoreValueMissingRatiosScoreZeroNotError(t *testing.T) {
	cfg := DefaultConfig()
	ratio := &entity.FinancialRatio{StockCode: "005930", PER: f(8)}

	metrics := ScoreValue(cfg, ratio, 0)

	assert.Equal(t, 25.0, metrics.SubScores["per"])
	assert.Equal(t, 0.0, metrics.SubScores["roe"])
	assert.Equal(t, 0.0, metrics.SubScores["margin"])
	assert.Nil(t, metrics.FairValue)
	assert.Empty(t, metrics.ValuationMethod)
}

func TestScoreValueNegativePERScoresZero(t *testing.T) {
	cfg := DefaultConfig()
	ratio := &entity.FinancialRatio{StockCode: "005930", PER: f(-4)}

	metrics := ScoreValue(cfg, ratio, 0)

	assert.Equal(t, 0.0, metrics.SubScores["per"])
}

func TestFairValueMethodTable(t *testing.T) {
	cfg := DefaultConfig()

	withEPS := &entity.FinancialRatio{StockCode: "005930", EPS: f(5000), BPS: f(60000)}
	metrics := ScoreValue(cfg, withEPS, 50000)
	require.NotNil(t, metrics.FairValue)
	assert.Equal(t, ValuationMethodPER, metrics.ValuationMethod)
	assert.InDelta(t, 5000*cfg.Value.FairPER, *metrics.FairValue, 0.001)
	require.NotNil(t, metrics.UpsidePct)
	assert.InDelta(t, (5000*cfg.Value.FairPER-50000)/50000*100, *metrics.UpsidePct, 0.001)

	// Loss-making company falls back to book value.
	bookOnly := &entity.FinancialRatio{StockCode: "005930", EPS: f(-1000), BPS: f(60000)}
	metrics = ScoreValue(cfg, bookOnly, 50000)
	require.NotNil(t, metrics.FairValue)
	assert.Equal(t, ValuationMethodPBR, metrics.ValuationMethod)
	assert.InDelta(t, 60000*cfg.Value.FairPBR, *metrics.FairValue, 0.001)

	// No valuation inputs at all: nil fair value, no upside.
	bare := &entity.FinancialRatio{StockCode: "005930"}
	metrics = ScoreValue(cfg, bare, 50000)
	assert.Nil(t, metrics.FairValue)
	assert.Nil(t, metrics.UpsidePct)
}

func TestScoreValueNoPriceSuppressesUpside(t *testing.T) {
	cfg := DefaultConfig()
	ratio := &entity.FinancialRatio{StockCode: "005930", EPS: f(5000)}

	metrics := ScoreValue(cfg, ratio, 0)

	assert.NotNil(t, metrics.FairValue)
	assert.Nil(t, metrics.UpsidePct)
}
