package scoring

import (
	"fmt"

	"golang-kstock-signals/internal/signal/dto"
)

// Weights are the fixed composite weights per dimension. They must sum to 1.
type Weights struct {
	Chart     float64 `mapstructure:"chart" json:"chart"`
	Narrative float64 `mapstructure:"narrative" json:"narrative"`
	Flow      float64 `mapstructure:"flow" json:"flow"`
	Social    float64 `mapstructure:"social" json:"social"`
}

// ChartBands holds the point allotments and thresholds of the chart scorer.
type ChartBands struct {
	MaxScore float64 `mapstructure:"max_score" json:"max_score"`

	MAAlignmentTolerancePct float64 `mapstructure:"ma_alignment_tolerance_pct" json:"ma_alignment_tolerance_pct"`
	MABullishPoints         float64 `mapstructure:"ma_bullish_points" json:"ma_bullish_points"`
	MAMixedPoints           float64 `mapstructure:"ma_mixed_points" json:"ma_mixed_points"`

	GapBreakawayPoints float64 `mapstructure:"gap_breakaway_points" json:"gap_breakaway_points"`
	GapRunawayPoints   float64 `mapstructure:"gap_runaway_points" json:"gap_runaway_points"`
	GapCommonPoints    float64 `mapstructure:"gap_common_points" json:"gap_common_points"`
	GapMinPct          float64 `mapstructure:"gap_min_pct" json:"gap_min_pct"`
	GapBreakawayPct    float64 `mapstructure:"gap_breakaway_pct" json:"gap_breakaway_pct"`
	GapVolumeRatio     float64 `mapstructure:"gap_volume_ratio" json:"gap_volume_ratio"`

	VolumeHighRatio     float64 `mapstructure:"volume_high_ratio" json:"volume_high_ratio"`
	VolumeHighPoints    float64 `mapstructure:"volume_high_points" json:"volume_high_points"`
	VolumeElevatedRatio float64 `mapstructure:"volume_elevated_ratio" json:"volume_elevated_ratio"`
	VolumeElevatedPts   float64 `mapstructure:"volume_elevated_points" json:"volume_elevated_points"`
	VolumeMildRatio     float64 `mapstructure:"volume_mild_ratio" json:"volume_mild_ratio"`
	VolumeMildPoints    float64 `mapstructure:"volume_mild_points" json:"volume_mild_points"`

	PullbackTightPct    float64 `mapstructure:"pullback_tight_pct" json:"pullback_tight_pct"`
	PullbackTightPoints float64 `mapstructure:"pullback_tight_points" json:"pullback_tight_points"`
	PullbackLoosePct    float64 `mapstructure:"pullback_loose_pct" json:"pullback_loose_pct"`
	PullbackLoosePoints float64 `mapstructure:"pullback_loose_points" json:"pullback_loose_points"`

	BollingerMidHighPoints float64 `mapstructure:"bollinger_mid_high_points" json:"bollinger_mid_high_points"`
	BollingerTopPoints     float64 `mapstructure:"bollinger_top_points" json:"bollinger_top_points"`
	BollingerLowPoints     float64 `mapstructure:"bollinger_low_points" json:"bollinger_low_points"`
}

// NarrativeBands holds the news/disclosure point allotments.
type NarrativeBands struct {
	MaxScore            float64 `mapstructure:"max_score" json:"max_score"`
	WindowDays          int     `mapstructure:"window_days" json:"window_days"`
	NewsHighPoints      float64 `mapstructure:"news_high_points" json:"news_high_points"`
	NewsMediumPoints    float64 `mapstructure:"news_medium_points" json:"news_medium_points"`
	NewsLowPoints       float64 `mapstructure:"news_low_points" json:"news_low_points"`
	NewsCap             float64 `mapstructure:"news_cap" json:"news_cap"`
	DisclosurePoints    float64 `mapstructure:"disclosure_points" json:"disclosure_points"`
	DisclosureCap       float64 `mapstructure:"disclosure_cap" json:"disclosure_cap"`
	TypeDiversityPoints float64 `mapstructure:"type_diversity_points" json:"type_diversity_points"`
}

// FlowBands holds the investor-flow point allotments.
type FlowBands struct {
	MaxScore                 float64 `mapstructure:"max_score" json:"max_score"`
	BaselineDays             int     `mapstructure:"baseline_days" json:"baseline_days"`
	MagnitudeDays            int     `mapstructure:"magnitude_days" json:"magnitude_days"`
	ForeignStreakPoints      float64 `mapstructure:"foreign_streak_points" json:"foreign_streak_points"`
	ForeignStreakCap         float64 `mapstructure:"foreign_streak_cap" json:"foreign_streak_cap"`
	InstitutionStreakPoints  float64 `mapstructure:"institution_streak_points" json:"institution_streak_points"`
	InstitutionStreakCap     float64 `mapstructure:"institution_streak_cap" json:"institution_streak_cap"`
	MagnitudeStrongRatio     float64 `mapstructure:"magnitude_strong_ratio" json:"magnitude_strong_ratio"`
	MagnitudeParRatio        float64 `mapstructure:"magnitude_par_ratio" json:"magnitude_par_ratio"`
	MagnitudeWeakRatio       float64 `mapstructure:"magnitude_weak_ratio" json:"magnitude_weak_ratio"`

	ForeignStrongPoints     float64 `mapstructure:"foreign_strong_points" json:"foreign_strong_points"`
	ForeignParPoints        float64 `mapstructure:"foreign_par_points" json:"foreign_par_points"`
	ForeignWeakPoints       float64 `mapstructure:"foreign_weak_points" json:"foreign_weak_points"`
	InstitutionStrongPoints float64 `mapstructure:"institution_strong_points" json:"institution_strong_points"`
	InstitutionParPoints    float64 `mapstructure:"institution_par_points" json:"institution_par_points"`
	InstitutionWeakPoints   float64 `mapstructure:"institution_weak_points" json:"institution_weak_points"`
}

// SocialBands holds the social-mention allotments and saturation constants.
type SocialBands struct {
	MaxScore          float64 `mapstructure:"max_score" json:"max_score"`
	WindowDays        int     `mapstructure:"window_days" json:"window_days"`
	YoutubePoints     float64 `mapstructure:"youtube_points" json:"youtube_points"`
	YoutubeHalfway    float64 `mapstructure:"youtube_halfway" json:"youtube_halfway"`
	ExpertPoints      float64 `mapstructure:"expert_points" json:"expert_points"`
	ExpertHalfway     float64 `mapstructure:"expert_halfway" json:"expert_halfway"`
	TelegramPoints    float64 `mapstructure:"telegram_points" json:"telegram_points"`
	TelegramHalfway   float64 `mapstructure:"telegram_halfway" json:"telegram_halfway"`
	SentimentPoints   float64 `mapstructure:"sentiment_points" json:"sentiment_points"`
}

// ValueBands holds the value screener thresholds, the point allotments of
// each band, and the fair-value multiples. Full-band allotments sum to 100.
type ValueBands struct {
	PERFull          float64 `mapstructure:"per_full" json:"per_full"`
	PERPartial       float64 `mapstructure:"per_partial" json:"per_partial"`
	PERZero          float64 `mapstructure:"per_zero" json:"per_zero"`
	PERFullPoints    float64 `mapstructure:"per_full_points" json:"per_full_points"`
	PERPartialPoints float64 `mapstructure:"per_partial_points" json:"per_partial_points"`
	PERLowPoints     float64 `mapstructure:"per_low_points" json:"per_low_points"`

	PBRFull          float64 `mapstructure:"pbr_full" json:"pbr_full"`
	PBRPartial       float64 `mapstructure:"pbr_partial" json:"pbr_partial"`
	PBRZero          float64 `mapstructure:"pbr_zero" json:"pbr_zero"`
	PBRFullPoints    float64 `mapstructure:"pbr_full_points" json:"pbr_full_points"`
	PBRPartialPoints float64 `mapstructure:"pbr_partial_points" json:"pbr_partial_points"`
	PBRLowPoints     float64 `mapstructure:"pbr_low_points" json:"pbr_low_points"`

	ROEFull          float64 `mapstructure:"roe_full" json:"roe_full"`
	ROEPartial       float64 `mapstructure:"roe_partial" json:"roe_partial"`
	ROELow           float64 `mapstructure:"roe_low" json:"roe_low"`
	ROEFullPoints    float64 `mapstructure:"roe_full_points" json:"roe_full_points"`
	ROEPartialPoints float64 `mapstructure:"roe_partial_points" json:"roe_partial_points"`
	ROELowPoints     float64 `mapstructure:"roe_low_points" json:"roe_low_points"`

	DebtSafe           float64 `mapstructure:"debt_safe" json:"debt_safe"`
	DebtModerate       float64 `mapstructure:"debt_moderate" json:"debt_moderate"`
	DebtHigh           float64 `mapstructure:"debt_high" json:"debt_high"`
	DebtSafePoints     float64 `mapstructure:"debt_safe_points" json:"debt_safe_points"`
	DebtModeratePoints float64 `mapstructure:"debt_moderate_points" json:"debt_moderate_points"`
	DebtHighPoints     float64 `mapstructure:"debt_high_points" json:"debt_high_points"`

	MarginFull          float64 `mapstructure:"margin_full" json:"margin_full"`
	MarginPartial       float64 `mapstructure:"margin_partial" json:"margin_partial"`
	MarginLow           float64 `mapstructure:"margin_low" json:"margin_low"`
	MarginFullPoints    float64 `mapstructure:"margin_full_points" json:"margin_full_points"`
	MarginPartialPoints float64 `mapstructure:"margin_partial_points" json:"margin_partial_points"`
	MarginLowPoints     float64 `mapstructure:"margin_low_points" json:"margin_low_points"`

	GrowthFull          float64 `mapstructure:"growth_full" json:"growth_full"`
	GrowthPartial       float64 `mapstructure:"growth_partial" json:"growth_partial"`
	GrowthLow           float64 `mapstructure:"growth_low" json:"growth_low"`
	GrowthFullPoints    float64 `mapstructure:"growth_full_points" json:"growth_full_points"`
	GrowthPartialPoints float64 `mapstructure:"growth_partial_points" json:"growth_partial_points"`
	GrowthLowPoints     float64 `mapstructure:"growth_low_points" json:"growth_low_points"`

	FairPER float64 `mapstructure:"fair_per" json:"fair_per"`
	FairPBR float64 `mapstructure:"fair_pbr" json:"fair_pbr"`
}

// CatalystConfig holds the lifecycle engine thresholds.
type CatalystConfig struct {
	DetectionThresholdPct float64 `mapstructure:"detection_threshold_pct" json:"detection_threshold_pct"`
	TrackingHorizonDays   int     `mapstructure:"tracking_horizon_days" json:"tracking_horizon_days"`
	WeakenRetracePct      float64 `mapstructure:"weaken_retrace_pct" json:"weaken_retrace_pct"`
	WeakenConsecutiveDays int     `mapstructure:"weaken_consecutive_days" json:"weaken_consecutive_days"`
	HardFloorPct          float64 `mapstructure:"hard_floor_pct" json:"hard_floor_pct"`
	FlowWindowDays        int     `mapstructure:"flow_window_days" json:"flow_window_days"`
}

// Config bundles every scoring tunable. One instance is built at startup
// (from defaults overlaid with file config) and injected everywhere; tests
// override individual fields deterministically.
type Config struct {
	Weights   Weights        `mapstructure:"weights" json:"weights"`
	Chart     ChartBands     `mapstructure:"chart" json:"chart"`
	Narrative NarrativeBands `mapstructure:"narrative" json:"narrative"`
	Flow      FlowBands      `mapstructure:"flow" json:"flow"`
	Social    SocialBands    `mapstructure:"social" json:"social"`
	Value     ValueBands     `mapstructure:"value" json:"value"`
	Catalyst  CatalystConfig `mapstructure:"catalyst" json:"catalyst"`
}

// DefaultConfig returns the documented default bands.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{Chart: 0.30, Narrative: 0.25, Flow: 0.25, Social: 0.20},
		Chart: ChartBands{
			MaxScore:                100,
			MAAlignmentTolerancePct: 0.5,
			MABullishPoints:         25,
			MAMixedPoints:           10,
			GapBreakawayPoints:      15,
			GapRunawayPoints:        12,
			GapCommonPoints:         5,
			GapMinPct:               1.0,
			GapBreakawayPct:         3.0,
			GapVolumeRatio:          2.0,
			VolumeHighRatio:         3.0,
			VolumeHighPoints:        20,
			VolumeElevatedRatio:     2.0,
			VolumeElevatedPts:       15,
			VolumeMildRatio:         1.5,
			VolumeMildPoints:        8,
			PullbackTightPct:        2.0,
			PullbackTightPoints:     20,
			PullbackLoosePct:        5.0,
			PullbackLoosePoints:     10,
			BollingerMidHighPoints:  20,
			BollingerTopPoints:      12,
			BollingerLowPoints:      5,
		},
		Narrative: NarrativeBands{
			MaxScore:            100,
			WindowDays:          7,
			NewsHighPoints:      12,
			NewsMediumPoints:    6,
			NewsLowPoints:       2,
			NewsCap:             60,
			DisclosurePoints:    10,
			DisclosureCap:       30,
			TypeDiversityPoints: 10,
		},
		Flow: FlowBands{
			MaxScore:                100,
			BaselineDays:            20,
			MagnitudeDays:           5,
			ForeignStreakPoints:     6,
			ForeignStreakCap:        30,
			InstitutionStreakPoints: 5,
			InstitutionStreakCap:    25,
			MagnitudeStrongRatio:    2.0,
			MagnitudeParRatio:       1.0,
			MagnitudeWeakRatio:      0.5,
			ForeignStrongPoints:     25,
			ForeignParPoints:        15,
			ForeignWeakPoints:       8,
			InstitutionStrongPoints: 20,
			InstitutionParPoints:    12,
			InstitutionWeakPoints:   6,
		},
		Social: SocialBands{
			MaxScore:        100,
			WindowDays:      14,
			YoutubePoints:   30,
			YoutubeHalfway:  5,
			ExpertPoints:    25,
			ExpertHalfway:   3,
			TelegramPoints:  25,
			TelegramHalfway: 4,
			SentimentPoints: 20,
		},
		Value: ValueBands{
			PERFull: 10, PERPartial: 15, PERZero: 25,
			PERFullPoints: 25, PERPartialPoints: 18, PERLowPoints: 8,
			PBRFull: 0.8, PBRPartial: 1.2, PBRZero: 2.0,
			PBRFullPoints: 20, PBRPartialPoints: 15, PBRLowPoints: 8,
			ROEFull: 15, ROEPartial: 10, ROELow: 5,
			ROEFullPoints: 20, ROEPartialPoints: 14, ROELowPoints: 7,
			DebtSafe: 50, DebtModerate: 100, DebtHigh: 200,
			DebtSafePoints: 15, DebtModeratePoints: 10, DebtHighPoints: 4,
			MarginFull: 15, MarginPartial: 8, MarginLow: 3,
			MarginFullPoints: 10, MarginPartialPoints: 6, MarginLowPoints: 3,
			GrowthFull: 20, GrowthPartial: 10, GrowthLow: 5,
			GrowthFullPoints: 10, GrowthPartialPoints: 6, GrowthLowPoints: 3,
			FairPER: 12, FairPBR: 1.0,
		},
		Catalyst: CatalystConfig{
			DetectionThresholdPct: 3.0,
			TrackingHorizonDays:   20,
			WeakenRetracePct:      50,
			WeakenConsecutiveDays: 3,
			HardFloorPct:          -10,
			FlowWindowDays:        5,
		},
	}
}

// Validate fails fast on malformed thresholds or weights.
func (c Config) Validate() error {
	sum := c.Weights.Chart + c.Weights.Narrative + c.Weights.Flow + c.Weights.Social
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("%w: dimension weights sum to %.4f, want 1.0", dto.ErrConfiguration, sum)
	}
	if c.Weights.Chart < 0 || c.Weights.Narrative < 0 || c.Weights.Flow < 0 || c.Weights.Social < 0 {
		return fmt.Errorf("%w: negative dimension weight", dto.ErrConfiguration)
	}
	for name, max := range map[string]float64{
		"chart":     c.Chart.MaxScore,
		"narrative": c.Narrative.MaxScore,
		"flow":      c.Flow.MaxScore,
		"social":    c.Social.MaxScore,
	} {
		if max <= 0 {
			return fmt.Errorf("%w: %s max_score must be positive", dto.ErrConfiguration, name)
		}
	}
	if c.Catalyst.DetectionThresholdPct <= 0 {
		return fmt.Errorf("%w: catalyst detection_threshold_pct must be positive", dto.ErrConfiguration)
	}
	if c.Catalyst.TrackingHorizonDays <= 0 {
		return fmt.Errorf("%w: catalyst tracking_horizon_days must be positive", dto.ErrConfiguration)
	}
	if c.Catalyst.WeakenRetracePct <= 0 || c.Catalyst.WeakenRetracePct > 100 {
		return fmt.Errorf("%w: catalyst weaken_retrace_pct must be in (0, 100]", dto.ErrConfiguration)
	}
	if c.Catalyst.WeakenConsecutiveDays <= 0 {
		return fmt.Errorf("%w: catalyst weaken_consecutive_days must be positive", dto.ErrConfiguration)
	}
	if c.Catalyst.FlowWindowDays <= 0 {
		return fmt.Errorf("%w: catalyst flow_window_days must be positive", dto.ErrConfiguration)
	}
	return nil
}
