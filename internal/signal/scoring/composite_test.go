package scoring

import (
	"math/rand"
	"testing"

	"golang-kstock-signals/internal/signal/dto"

	"github.com/stretchr/testify/assert"
)

func dim(score float64) dto.DimensionScore {
	return dto.DimensionScore{
		Score:    score,
		MaxScore: 100,
		Grade:    Grade(score, 100),
		Details:  map[string]interface{}{},
	}
}

func TestAggregateWeightedSum(t *testing.T) {
	cfg := DefaultConfig()

	signal := Aggregate(cfg, dim(80), dim(60), dim(40), dim(20))

	expected := 0.30*80 + 0.25*60 + 0.25*40 + 0.20*20
	assert.InDelta(t, expected, signal.CompositeScore, 0.0001)
	assert.Equal(t, Grade(expected, 100), signal.CompositeGrade)
}

func TestAggregateWeightsOverridable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights = Weights{Chart: 1, Narrative: 0, Flow: 0, Social: 0}

	signal := Aggregate(cfg, dim(70), dim(10), dim(10), dim(10))

	assert.InDelta(t, 70.0, signal.CompositeScore, 0.0001)
}

func TestAggregateAlignedCountProperty(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		scores := [4]float64{}
		for j := range scores {
			scores[j] = rng.Float64() * 100
		}

		signal := Aggregate(cfg, dim(scores[0]), dim(scores[1]), dim(scores[2]), dim(scores[3]))

		expected := 0
		for _, s := range scores {
			if s >= 50 {
				expected++
			}
		}
		assert.Equal(t, expected, signal.AlignedCount)

		reconstructed := cfg.Weights.Chart*scores[0] + cfg.Weights.Narrative*scores[1] +
			cfg.Weights.Flow*scores[2] + cfg.Weights.Social*scores[3]
		assert.InDelta(t, reconstructed, signal.CompositeScore, 0.0001)
	}
}

func TestAggregateAlignedCountExtremes(t *testing.T) {
	cfg := DefaultConfig()

	allZero := Aggregate(cfg, dim(0), dim(0), dim(0), dim(0))
	assert.Equal(t, 0, allZero.AlignedCount)
	assert.Equal(t, dto.SignalTypeNone, allZero.SignalType)

	allMax := Aggregate(cfg, dim(100), dim(100), dim(100), dim(100))
	assert.Equal(t, 4, allMax.AlignedCount)
	assert.Equal(t, dto.SignalTypeConfirmed, allMax.SignalType)

	// Alignment boundary: exactly half of max counts.
	boundary := Aggregate(cfg, dim(50), dim(49.9999), dim(0), dim(0))
	assert.Equal(t, 1, boundary.AlignedCount)
}

func TestSignalTypeDecisionTable(t *testing.T) {
	cfg := DefaultConfig()
	hi, lo := dim(90), dim(10)

	testCases := []struct {
		name                          string
		chart, narrative, flow, social dto.DimensionScore
		expected                      string
	}{
		{"all four", hi, hi, hi, hi, dto.SignalTypeConfirmed},
		{"three aligned", hi, hi, hi, lo, dto.SignalTypeNearConfirmed},
		{"chart and flow", hi, lo, hi, lo, dto.SignalTypeTechnicalFlow},
		{"narrative and social", lo, hi, lo, hi, dto.SignalTypeHype},
		{"chart and narrative", hi, hi, lo, lo, dto.SignalTypeNewsBreakout},
		{"chart and social", hi, lo, lo, hi, dto.SignalTypeRetailMomentum},
		{"flow and narrative", lo, hi, hi, lo, dto.SignalTypeInstitutionalNews},
		{"flow and social", lo, lo, hi, hi, dto.SignalTypeCrowdedFlow},
		{"chart only", hi, lo, lo, lo, dto.SignalTypeNone},
		{"none", lo, lo, lo, lo, dto.SignalTypeNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			signal := Aggregate(cfg, tc.chart, tc.narrative, tc.flow, tc.social)
			assert.Equal(t, tc.expected, signal.SignalType)
		})
	}
}

func TestChartOnlySignalNeverConfirmed(t *testing.T) {
	cfg := DefaultConfig()

	// Strong chart, everything else silent.
	signal := Aggregate(cfg, dim(95), dim(0), dim(0), dim(0))

	assert.Equal(t, 1, signal.AlignedCount)
	assert.NotEqual(t, dto.SignalTypeConfirmed, signal.SignalType)
	assert.Equal(t, dto.SignalTypeNone, signal.SignalType)
}

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()
	assert.NoError(t, valid.Validate())

	badWeights := DefaultConfig()
	badWeights.Weights.Chart = 0.9
	assert.ErrorIs(t, badWeights.Validate(), dto.ErrConfiguration)

	badThreshold := DefaultConfig()
	badThreshold.Catalyst.DetectionThresholdPct = 0
	assert.ErrorIs(t, badThreshold.Validate(), dto.ErrConfiguration)
}
