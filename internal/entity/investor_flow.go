package entity

import "time"

// InvestorFlow is the daily net trading value by investor group for one
// stock, in KRW. Unique per (stock_code, date); produced by the flow
// collector job.
type InvestorFlow struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StockCode      string    `gorm:"not null;uniqueIndex:idx_investor_flows_code_date" json:"stock_code"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_investor_flows_code_date" json:"date"`
	ForeignNet     int64     `json:"foreign_net"`
	InstitutionNet int64     `json:"institution_net"`
	IndividualNet  int64     `json:"individual_net"`
	FlowScore      float64   `json:"flow_score"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (InvestorFlow) TableName() string {
	return "investor_flows"
}
