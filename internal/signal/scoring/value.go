package scoring

import (
	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
)

// Valuation methods recorded on ValueMetrics.
const (
	ValuationMethodPER = "per_multiple"
	ValuationMethodPBR = "pbr_multiple"
)

// ScoreValue computes the value screen for one ratio bundle. Missing ratios
// score zero for their sub-criterion; the fair value falls back to nil when
// neither valuation input is present. currentPrice may be zero when no
// recent bar exists, which suppresses the upside percentage.
func ScoreValue(cfg Config, ratio *entity.FinancialRatio, currentPrice float64) dto.ValueMetrics {
	bands := cfg.Value
	metrics := dto.ValueMetrics{
		SubScores: map[string]float64{},
	}
	if ratio == nil {
		metrics.Grade = Grade(0, 100)
		return metrics
	}

	metrics.StockCode = ratio.StockCode
	metrics.BsnsYear = ratio.BsnsYear
	metrics.ReprtCode = ratio.ReprtCode

	metrics.SubScores["per"] = scorePER(bands, ratio.PER)
	metrics.SubScores["pbr"] = scorePBR(bands, ratio.PBR)
	metrics.SubScores["roe"] = scoreROE(bands, ratio.ROE)
	metrics.SubScores["safety"] = scoreSafety(bands, ratio.DebtRatio)
	metrics.SubScores["margin"] = scoreMargin(bands, ratio.OperatingMargin)
	metrics.SubScores["growth"] = scoreGrowth(bands, ratio.RevenueGrowth)

	for _, v := range metrics.SubScores {
		metrics.TotalScore += v
	}
	metrics.Grade = Grade(metrics.TotalScore, 100)

	fairValue, method := estimateFairValue(bands, ratio)
	metrics.FairValue = fairValue
	metrics.ValuationMethod = method
	if fairValue != nil && currentPrice > 0 {
		upside := (*fairValue - currentPrice) / currentPrice * 100
		metrics.UpsidePct = &upside
	}

	return metrics
}

func scorePER(bands ValueBands, per *float64) float64 {
	if per == nil || *per <= 0 {
		return 0
	}
	switch {
	case *per < bands.PERFull:
		return bands.PERFullPoints
	case *per < bands.PERPartial:
		return bands.PERPartialPoints
	case *per < bands.PERZero:
		return bands.PERLowPoints
	default:
		return 0
	}
}

func scorePBR(bands ValueBands, pbr *float64) float64 {
	if pbr == nil || *pbr <= 0 {
		return 0
	}
	switch {
	case *pbr < bands.PBRFull:
		return bands.PBRFullPoints
	case *pbr < bands.PBRPartial:
		return bands.PBRPartialPoints
	case *pbr < bands.PBRZero:
		return bands.PBRLowPoints
	default:
		return 0
	}
}

func scoreROE(bands ValueBands, roe *float64) float64 {
	if roe == nil {
		return 0
	}
	switch {
	case *roe >= bands.ROEFull:
		return bands.ROEFullPoints
	case *roe >= bands.ROEPartial:
		return bands.ROEPartialPoints
	case *roe >= bands.ROELow:
		return bands.ROELowPoints
	default:
		return 0
	}
}

func scoreSafety(bands ValueBands, debtRatio *float64) float64 {
	if debtRatio == nil || *debtRatio < 0 {
		return 0
	}
	switch {
	case *debtRatio < bands.DebtSafe:
		return bands.DebtSafePoints
	case *debtRatio < bands.DebtModerate:
		return bands.DebtModeratePoints
	case *debtRatio < bands.DebtHigh:
		return bands.DebtHighPoints
	default:
		return 0
	}
}

func scoreMargin(bands ValueBands, margin *float64) float64 {
	if margin == nil {
		return 0
	}
	switch {
	case *margin >= bands.MarginFull:
		return bands.MarginFullPoints
	case *margin >= bands.MarginPartial:
		return bands.MarginPartialPoints
	case *margin >= bands.MarginLow:
		return bands.MarginLowPoints
	default:
		return 0
	}
}

func scoreGrowth(bands ValueBands, growth *float64) float64 {
	if growth == nil {
		return 0
	}
	switch {
	case *growth >= bands.GrowthFull:
		return bands.GrowthFullPoints
	case *growth >= bands.GrowthPartial:
		return bands.GrowthPartialPoints
	case *growth >= bands.GrowthLow:
		return bands.GrowthLowPoints
	default:
		return 0
	}
}

// estimateFairValue applies the valuation method table: earnings multiple
// when EPS is positive, book multiple when BPS is positive, otherwise no
// estimate.
func estimateFairValue(bands ValueBands, ratio *entity.FinancialRatio) (*float64, string) {
	if ratio.EPS != nil && *ratio.EPS > 0 {
		fv := *ratio.EPS * bands.FairPER
		return &fv, ValuationMethodPER
	}
	if ratio.BPS != nil && *ratio.BPS > 0 {
		fv := *ratio.BPS * bands.FairPBR
		return &fv, ValuationMethodPBR
	}
	return nil, ""
}
