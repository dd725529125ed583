package scoring

import (
	"math"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// MA alignment classification.
const (
	MAAlignmentBullish = "bullish"
	MAAlignmentBearish = "bearish"
	MAAlignmentMixed   = "mixed"
)

// Gap classification of today's open against the prior session.
const (
	GapNone       = "none"
	GapCommon     = "common"
	GapBreakaway  = "breakaway"
	GapRunaway    = "runaway"
	GapExhaustion = "exhaustion"
)

// ScoreChart scores the technical picture of an OHLCV window. Bars must be
// ordered by date ascending; the last bar is the as-of session. Sub-criteria
// whose lookback exceeds the window are skipped and flagged in details
// rather than failing the whole score.
func ScoreChart(cfg Config, bars []entity.StockPrice) dto.DimensionScore {
	bands := cfg.Chart
	details := map[string]interface{}{}

	if len(bars) == 0 {
		details["data_unavailable"] = true
		return dto.DimensionScore{Score: 0, MaxScore: bands.MaxScore, Grade: Grade(0, bands.MaxScore), Details: details}
	}

	var score float64
	last := bars[len(bars)-1]

	// MA alignment needs the longest lookback.
	if len(bars) >= 120 {
		ma5 := movingAverage(bars, 5)
		ma20 := movingAverage(bars, 20)
		ma60 := movingAverage(bars, 60)
		ma120 := movingAverage(bars, 120)
		alignment := classifyMAAlignment(ma5, ma20, ma60, ma120, bands.MAAlignmentTolerancePct)
		details["ma_alignment"] = alignment
		switch alignment {
		case MAAlignmentBullish:
			score += bands.MABullishPoints
			details["ma_alignment_points"] = bands.MABullishPoints
		case MAAlignmentMixed:
			score += bands.MAMixedPoints
			details["ma_alignment_points"] = bands.MAMixedPoints
		default:
			details["ma_alignment_points"] = 0.0
		}
	} else {
		details["insufficient_history"] = true
	}

	volumeRatio := 0.0
	if len(bars) >= 21 {
		avgVol := averageVolume(bars[:len(bars)-1], 20)
		if avgVol > 0 {
			volumeRatio = float64(last.Volume) / avgVol
		}
		details["volume_ratio"] = round2(volumeRatio)
		var volPoints float64
		switch {
		case volumeRatio >= bands.VolumeHighRatio:
			volPoints = bands.VolumeHighPoints
		case volumeRatio >= bands.VolumeElevatedRatio:
			volPoints = bands.VolumeElevatedPts
		case volumeRatio >= bands.VolumeMildRatio:
			volPoints = bands.VolumeMildPoints
		}
		score += volPoints
		details["volume_points"] = volPoints
	}

	if len(bars) >= 2 {
		gapType, gapPct := classifyGap(bands, bars, volumeRatio)
		details["gap_type"] = gapType
		details["gap_pct"] = round2(gapPct)
		var gapPoints float64
		switch gapType {
		case GapBreakaway:
			gapPoints = bands.GapBreakawayPoints
		case GapRunaway:
			gapPoints = bands.GapRunawayPoints
		case GapCommon:
			gapPoints = bands.GapCommonPoints
		}
		score += gapPoints
		details["gap_points"] = gapPoints
	}

	if len(bars) >= 20 {
		ma20 := movingAverage(bars, 20)
		if ma20 > 0 {
			distPct := (last.Close - ma20) / ma20 * 100
			details["ma20_distance_pct"] = round2(distPct)
			var pullbackPoints float64
			switch {
			case distPct >= 0 && distPct <= bands.PullbackTightPct:
				pullbackPoints = bands.PullbackTightPoints
			case distPct > bands.PullbackTightPct && distPct <= bands.PullbackLoosePct:
				pullbackPoints = bands.PullbackLoosePoints
			}
			score += pullbackPoints
			details["pullback_points"] = pullbackPoints
		}

		b, ok := bollingerPercentB(bars)
		if ok {
			details["bollinger_pct_b"] = round2(b)
			var bbPoints float64
			switch {
			case b >= 0.5 && b <= 0.8:
				bbPoints = bands.BollingerMidHighPoints
			case b > 0.8:
				bbPoints = bands.BollingerTopPoints
			case b < 0.2:
				bbPoints = bands.BollingerLowPoints
			}
			score += bbPoints
			details["bollinger_points"] = bbPoints
		}
	}

	if score > bands.MaxScore {
		score = bands.MaxScore
	}

	return dto.DimensionScore{
		Score:    score,
		MaxScore: bands.MaxScore,
		Grade:    Grade(score, bands.MaxScore),
		Details:  details,
	}
}

// classifyMAAlignment orders MA5/20/60/120 with a relative tolerance so a
// fractional crossover does not flip the classification.
func classifyMAAlignment(ma5, ma20, ma60, ma120, tolerancePct float64) string {
	gte := func(a, b float64) bool {
		return a >= b*(1-tolerancePct/100)
	}
	if gte(ma5, ma20) && gte(ma20, ma60) && gte(ma60, ma120) {
		return MAAlignmentBullish
	}
	if gte(ma120, ma60) && gte(ma60, ma20) && gte(ma20, ma5) {
		return MAAlignmentBearish
	}
	return MAAlignmentMixed
}

// classifyGap labels today's opening gap against the prior close using the
// gap size, where the session closed, and the volume surge.
func classifyGap(bands ChartBands, bars []entity.StockPrice, volumeRatio float64) (string, float64) {
	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	if prev.Close <= 0 {
		return GapNone, 0
	}
	gapPct := (last.Open - prev.Close) / prev.Close * 100

	if gapPct < bands.GapMinPct {
		return GapNone, gapPct
	}

	highVolume := volumeRatio >= bands.GapVolumeRatio
	switch {
	case gapPct >= bands.GapBreakawayPct && highVolume && last.Close < last.Open:
		// Gapped hard on volume and faded: likely the end of the move.
		return GapExhaustion, gapPct
	case gapPct >= bands.GapBreakawayPct && highVolume:
		return GapBreakaway, gapPct
	case highVolume && last.Close >= last.Open:
		return GapRunaway, gapPct
	default:
		return GapCommon, gapPct
	}
}

// bollingerPercentB computes %B for a 20-day, 2-sigma band, clamped to
// [0, 1]. Returns false when the band has no width.
func bollingerPercentB(bars []entity.StockPrice) (float64, bool) {
	const period = 20
	window := bars[len(bars)-period:]

	var sum float64
	for _, b := range window {
		sum += b.Close
	}
	mid := sum / period

	var variance float64
	for _, b := range window {
		d := b.Close - mid
		variance += d * d
	}
	sd := math.Sqrt(variance / period)
	if sd == 0 {
		return 0, false
	}

	upper := mid + 2*sd
	lower := mid - 2*sd
	b := (bars[len(bars)-1].Close - lower) / (upper - lower)
	if b < 0 {
		b = 0
	}
	if b > 1 {
		b = 1
	}
	return b, true
}

func movingAverage(bars []entity.StockPrice, period int) float64 {
	if len(bars) < period || period <= 0 {
		return 0
	}
	var sum float64
	for _, b := range bars[len(bars)-period:] {
		sum += b.Close
	}
	return sum / float64(period)
}

func averageVolume(bars []entity.StockPrice, period int) float64 {
	if period <= 0 || len(bars) == 0 {
		return 0
	}
	if len(bars) < period {
		period = len(bars)
	}
	var sum float64
	for _, b := range bars[len(bars)-period:] {
		sum += float64(b.Volume)
	}
	return sum / float64(period)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
