package scoring

import (
	"math"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// ScoreFlow scores investor net-flow. Flows must be ordered by date
// ascending. The score rewards consecutive same-direction foreign and
// institution net buying plus recent magnitude against a rolling baseline;
// it is purely additive with a floor of zero.
func ScoreFlow(cfg Config, flows []entity.InvestorFlow) dto.DimensionScore {
	bands := cfg.Flow
	details := map[string]interface{}{}

	if len(flows) == 0 {
		details["data_unavailable"] = true
		return dto.DimensionScore{Score: 0, MaxScore: bands.MaxScore, Grade: Grade(0, bands.MaxScore), Details: details}
	}

	var score float64

	foreignStreak := netBuyStreak(flows, func(f entity.InvestorFlow) int64 { return f.ForeignNet })
	instStreak := netBuyStreak(flows, func(f entity.InvestorFlow) int64 { return f.InstitutionNet })

	foreignStreakPts := math.Min(float64(foreignStreak)*bands.ForeignStreakPoints, bands.ForeignStreakCap)
	instStreakPts := math.Min(float64(instStreak)*bands.InstitutionStreakPoints, bands.InstitutionStreakCap)
	score += foreignStreakPts + instStreakPts

	foreignMagnitude := magnitudeRatio(flows, bands.MagnitudeDays, bands.BaselineDays,
		func(f entity.InvestorFlow) int64 { return f.ForeignNet })
	instMagnitude := magnitudeRatio(flows, bands.MagnitudeDays, bands.BaselineDays,
		func(f entity.InvestorFlow) int64 { return f.InstitutionNet })

	foreignMagPts := magnitudePoints(bands, foreignMagnitude, bands.ForeignStrongPoints, bands.ForeignParPoints, bands.ForeignWeakPoints)
	instMagPts := magnitudePoints(bands, instMagnitude, bands.InstitutionStrongPoints, bands.InstitutionParPoints, bands.InstitutionWeakPoints)
	score += foreignMagPts + instMagPts

	if score > bands.MaxScore {
		score = bands.MaxScore
	}

	details["foreign_streak_days"] = foreignStreak
	details["foreign_streak_points"] = foreignStreakPts
	details["institution_streak_days"] = instStreak
	details["institution_streak_points"] = instStreakPts
	details["foreign_magnitude_ratio"] = round2(foreignMagnitude)
	details["foreign_magnitude_points"] = foreignMagPts
	details["institution_magnitude_ratio"] = round2(instMagnitude)
	details["institution_magnitude_points"] = instMagPts

	return dto.DimensionScore{
		Score:    score,
		MaxScore: bands.MaxScore,
		Grade:    Grade(score, bands.MaxScore),
		Details:  details,
	}
}

// netBuyStreak counts consecutive net-buy days counting back from the most
// recent flow record.
func netBuyStreak(flows []entity.InvestorFlow, net func(entity.InvestorFlow) int64) int {
	streak := 0
	for i := len(flows) - 1; i >= 0; i-- {
		if net(flows[i]) <= 0 {
			break
		}
		streak++
	}
	return streak
}

// magnitudeRatio compares the recent cumulative net buy against the rolling
// mean absolute daily net over the baseline window. Zero when the baseline
// is empty or the recent sum is not a net buy.
func magnitudeRatio(flows []entity.InvestorFlow, recentDays, baselineDays int, net func(entity.InvestorFlow) int64) float64 {
	if len(flows) == 0 || recentDays <= 0 || baselineDays <= 0 {
		return 0
	}

	start := len(flows) - recentDays
	if start < 0 {
		start = 0
	}
	var recent int64
	for _, f := range flows[start:] {
		recent += net(f)
	}
	if recent <= 0 {
		return 0
	}

	baseStart := len(flows) - baselineDays
	if baseStart < 0 {
		baseStart = 0
	}
	var absSum float64
	var n int
	for _, f := range flows[baseStart:] {
		absSum += math.Abs(float64(net(f)))
		n++
	}
	if n == 0 || absSum == 0 {
		return 0
	}
	baseline := absSum / float64(n)
	return float64(recent) / float64(recentDays) / baseline
}

func magnitudePoints(bands FlowBands, ratio, strong, par, weak float64) float64 {
	switch {
	case ratio >= bands.MagnitudeStrongRatio:
		return strong
	case ratio >= bands.MagnitudeParRatio:
		return par
	case ratio >= bands.MagnitudeWeakRatio:
		return weak
	default:
		return 0
	}
}
