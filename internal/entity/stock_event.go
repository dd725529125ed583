package entity

import (
	"time"

	"github.com/lib/pq"
)

const (
	EventTypeNews       = "news"
	EventTypeDisclosure = "disclosure"

	ImportanceHigh   = "high"
	ImportanceMedium = "medium"
	ImportanceLow    = "low"
)

// StockEvent is one dated news article or disclosure attributed to a stock.
type StockEvent struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StockCode      string         `gorm:"not null;index:idx_stock_events_code_date" json:"stock_code"`
	Date           time.Time      `gorm:"type:date;not null;index:idx_stock_events_code_date" json:"date"`
	Type           string         `gorm:"type:varchar(20);not null" json:"type"`
	Title          string         `gorm:"not null" json:"title"`
	Source         string         `json:"source"`
	Link           string         `json:"link"`
	HashIdentifier string         `gorm:"uniqueIndex;not null" json:"hash_identifier"`
	Importance     string         `gorm:"type:varchar(10)" json:"importance"`
	CatalystType   string         `gorm:"type:varchar(20)" json:"catalyst_type"`
	RawContent     string         `json:"raw_content"`
	Keywords       pq.StringArray `gorm:"type:text[]" json:"keywords"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (StockEvent) TableName() string {
	return "stock_events"
}
