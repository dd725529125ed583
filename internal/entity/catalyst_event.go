package entity

import "time"

const (
	CatalystStatusActive    = "active"
	CatalystStatusWeakening = "weakening"
	CatalystStatusExpired   = "expired"

	CatalystTypePolicy     = "policy"
	CatalystTypeEarnings   = "earnings"
	CatalystTypeContract   = "contract"
	CatalystTypeTheme      = "theme"
	CatalystTypeManagement = "management"
	CatalystTypeProduct    = "product"
	CatalystTypeOther      = "other"
)

// CatalystEvent is a news-correlated price move tracked through its
// lifecycle. Exactly one row exists per (stock_code, event_date); a row is
// never deleted, only marked expired.
//
// PriceAtEvent, VolumeAtEvent and PriceChangePct are creation-time snapshots
// and never change afterwards. ReturnT1..ReturnT20 are point-in-time
// snapshots: null until the corresponding number of trading days has
// elapsed, then written once.
type CatalystEvent struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StockCode      string    `gorm:"not null;uniqueIndex:idx_catalyst_events_code_date" json:"stock_code"`
	EventDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_catalyst_events_code_date" json:"event_date"`
	CatalystType   string    `gorm:"type:varchar(20);not null" json:"catalyst_type"`
	PriceAtEvent   float64   `gorm:"not null" json:"price_at_event"`
	VolumeAtEvent  int64     `gorm:"not null" json:"volume_at_event"`
	PriceChangePct float64   `gorm:"not null" json:"price_change_pct"`

	ReturnT1  *float64 `json:"return_t1"`
	ReturnT5  *float64 `json:"return_t5"`
	ReturnT10 *float64 `json:"return_t10"`
	ReturnT20 *float64 `json:"return_t20"`

	CurrentReturn float64 `json:"current_return"`
	MaxReturn     float64 `json:"max_return"`
	MaxReturnDay  int     `json:"max_return_day"`

	FlowConfirmed bool    `json:"flow_confirmed"`
	FlowScore5D   float64 `json:"flow_score_5d"`

	FollowupNewsCount int        `json:"followup_news_count"`
	LatestNewsDate    *time.Time `gorm:"type:date" json:"latest_news_date"`

	Status    string `gorm:"type:varchar(20);not null;index" json:"status"`
	DaysAlive int    `gorm:"not null" json:"days_alive"`

	// Tracking bookkeeping: DecayStreak counts consecutive tracked days the
	// return stayed retraced past the weakening threshold; LastTrackedDate
	// makes a re-run for an already processed date a no-op.
	DecayStreak     int        `gorm:"not null" json:"decay_streak"`
	LastTrackedDate *time.Time `gorm:"type:date" json:"last_tracked_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CatalystEvent) TableName() string {
	return "catalyst_events"
}

// IsTerminal reports whether the event reached its final state.
func (e *CatalystEvent) IsTerminal() bool {
	return e.Status == CatalystStatusExpired
}
