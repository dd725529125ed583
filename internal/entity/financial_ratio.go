package entity

import "time"

// FinancialRatio holds the ratio bundle extracted from one financial
// statement, unique per (stock_code, bsns_year, reprt_code). Ratio fields
// are pointers because statements routinely omit line items; a missing
// ratio scores zero, it is never guessed.
type FinancialRatio struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StockCode string `gorm:"not null;uniqueIndex:idx_financial_ratios_key" json:"stock_code"`
	BsnsYear  string `gorm:"type:varchar(4);not null;uniqueIndex:idx_financial_ratios_key" json:"bsns_year"`
	ReprtCode string `gorm:"type:varchar(5);not null;uniqueIndex:idx_financial_ratios_key" json:"reprt_code"`

	PER             *float64 `json:"per"`
	PBR             *float64 `json:"pbr"`
	ROE             *float64 `json:"roe"`              // percent
	OperatingMargin *float64 `json:"operating_margin"` // percent
	RevenueGrowth   *float64 `json:"revenue_growth"`   // percent, YoY
	DebtRatio       *float64 `json:"debt_ratio"`       // percent
	EPS             *float64 `json:"eps"`
	BPS             *float64 `json:"bps"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (FinancialRatio) TableName() string {
	return "financial_ratios"
}
