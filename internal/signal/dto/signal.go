package dto

import "time"

// Signal type classification produced by the composite aggregator. The
// decision table over aligned dimensions is exhaustive; SignalTypeNone is
// the zero/one-aligned outcome.
const (
	SignalTypeNone              = ""
	SignalTypeConfirmed         = "confirmed"
	SignalTypeNearConfirmed     = "near_confirmed"
	SignalTypeTechnicalFlow     = "technical_flow"
	SignalTypeHype              = "hype"
	SignalTypeNewsBreakout      = "news_breakout"
	SignalTypeRetailMomentum    = "retail_momentum"
	SignalTypeInstitutionalNews = "institutional_news"
	SignalTypeCrowdedFlow       = "crowded_flow"
)

// DimensionScore is the outcome of one dimension scorer. Score is always
// within [0, MaxScore]; Details carries the sub-criteria breakdown plus
// degradation flags such as "data_unavailable".
type DimensionScore struct {
	Score    float64                `json:"score"`
	MaxScore float64                `json:"max_score"`
	Grade    string                 `json:"grade"`
	Details  map[string]interface{} `json:"details"`
}

// Ratio returns score/max, 0 when max is 0.
func (d DimensionScore) Ratio() float64 {
	if d.MaxScore <= 0 {
		return 0
	}
	return d.Score / d.MaxScore
}

// Aligned reports whether the dimension scored at least half its maximum.
func (d DimensionScore) Aligned() bool {
	return d.MaxScore > 0 && d.Score >= 0.5*d.MaxScore
}

// CompositeSignal is the recomputed-per-scan composite result for one stock.
type CompositeSignal struct {
	StockCode      string         `json:"stock_code"`
	AsOfDate       time.Time      `json:"as_of_date"`
	Chart          DimensionScore `json:"chart"`
	Narrative      DimensionScore `json:"narrative"`
	Flow           DimensionScore `json:"flow"`
	Social         DimensionScore `json:"social"`
	CompositeScore float64        `json:"composite_score"`
	CompositeGrade string         `json:"composite_grade"`
	AlignedCount   int            `json:"aligned_count"`
	SignalType     string         `json:"signal_type"`
}

// ScanRequest asks for a ranked composite scan over a stock universe.
type ScanRequest struct {
	StockCodes []string  `json:"stock_codes"`
	AsOfDate   time.Time `json:"as_of_date"`
	MinScore   float64   `json:"min_score"`
	Limit      int       `json:"limit"`
	SortBy     string    `json:"sort_by"` // composite_score | aligned_count
}

// ScanResult is the successfully scored subset plus the omission count for
// stocks that failed to score. A partial failure is never a hard failure.
type ScanResult struct {
	Signals []CompositeSignal `json:"signals"`
	Omitted int               `json:"omitted"`
}

// TrackingResult summarises one daily catalyst tracking pass.
type TrackingResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errored int `json:"errored"`
}

// ValueMetrics is the value screener outcome for one statement.
type ValueMetrics struct {
	StockCode       string             `json:"stock_code"`
	BsnsYear        string             `json:"bsns_year"`
	ReprtCode       string             `json:"reprt_code"`
	SubScores       map[string]float64 `json:"sub_scores"`
	TotalScore      float64            `json:"total_score"`
	Grade           string             `json:"grade"`
	FairValue       *float64           `json:"fair_value"`
	UpsidePct       *float64           `json:"upside_pct"`
	ValuationMethod string             `json:"valuation_method"`
}

// ValueScreenRequest asks for a ranked value screen.
type ValueScreenRequest struct {
	MinScore float64 `json:"min_score"`
	Limit    int     `json:"limit"`
	SortBy   string  `json:"sort_by"` // total_score | upside_pct
}
