package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SignalBriefing caches the generated narrative for one composite signal,
// keyed by stock code plus a hash of the signal content so an unchanged
// signal never triggers regeneration.
type SignalBriefing struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StockCode      string         `gorm:"type:varchar(50);not null;index" json:"stock_code"`
	HashIdentifier string         `gorm:"type:text;not null;uniqueIndex" json:"hash_identifier"`
	CompositeScore float64        `json:"composite_score"`
	CompositeGrade string         `gorm:"type:varchar(2)" json:"composite_grade"`
	SignalType     string         `gorm:"type:varchar(30)" json:"signal_type"`
	Briefing       string         `gorm:"type:text" json:"briefing"`
	Data           datatypes.JSON `gorm:"type:jsonb" json:"data"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SignalBriefing) TableName() string {
	return "signal_briefings"
}
