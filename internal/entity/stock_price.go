package entity

import "time"

// StockPrice is one daily OHLCV bar. Bars are unique per (stock_code, date)
// and always read back ordered by date ascending.
type StockPrice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StockCode string    `gorm:"not null;uniqueIndex:idx_stock_prices_code_date" json:"stock_code"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_stock_prices_code_date" json:"date"`
	Open      float64   `gorm:"not null" json:"open"`
	High      float64   `gorm:"not null" json:"high"`
	Low       float64   `gorm:"not null" json:"low"`
	Close     float64   `gorm:"not null" json:"close"`
	Volume    int64     `gorm:"not null" json:"volume"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StockPrice) TableName() string {
	return "stock_prices"
}
