package scoring

import (
	"golang-kstock-signals/internal/signal/dto"
)

// Aggregate combines the four dimension scores into one composite signal
// under the configured weights. The signal-type decision table is explicit
// boolean logic over the aligned set, so the outcome never depends on
// iteration order.
func Aggregate(cfg Config, chart, narrative, flow, social dto.DimensionScore) dto.CompositeSignal {
	w := cfg.Weights

	composite := w.Chart*chart.Score +
		w.Narrative*narrative.Score +
		w.Flow*flow.Score +
		w.Social*social.Score

	maxComposite := w.Chart*chart.MaxScore +
		w.Narrative*narrative.MaxScore +
		w.Flow*flow.MaxScore +
		w.Social*social.MaxScore

	chartAligned := chart.Aligned()
	narrativeAligned := narrative.Aligned()
	flowAligned := flow.Aligned()
	socialAligned := social.Aligned()

	alignedCount := 0
	for _, aligned := range []bool{chartAligned, narrativeAligned, flowAligned, socialAligned} {
		if aligned {
			alignedCount++
		}
	}

	return dto.CompositeSignal{
		Chart:          chart,
		Narrative:      narrative,
		Flow:           flow,
		Social:         social,
		CompositeScore: composite,
		CompositeGrade: Grade(composite, maxComposite),
		AlignedCount:   alignedCount,
		SignalType:     classifySignalType(alignedCount, chartAligned, narrativeAligned, flowAligned, socialAligned),
	}
}

// classifySignalType is the exhaustive decision table over which dimensions
// aligned. Zero or one aligned dimension yields no classification.
func classifySignalType(alignedCount int, chart, narrative, flow, social bool) string {
	switch alignedCount {
	case 4:
		return dto.SignalTypeConfirmed
	case 3:
		return dto.SignalTypeNearConfirmed
	case 2:
		switch {
		case chart && flow:
			return dto.SignalTypeTechnicalFlow
		case narrative && social:
			return dto.SignalTypeHype
		case chart && narrative:
			return dto.SignalTypeNewsBreakout
		case chart && social:
			return dto.SignalTypeRetailMomentum
		case flow && narrative:
			return dto.SignalTypeInstitutionalNews
		default: // flow && social
			return dto.SignalTypeCrowdedFlow
		}
	default:
		return dto.SignalTypeNone
	}
}
