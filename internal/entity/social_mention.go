package entity

import "time"

// SocialMentionStat is the daily mention tally for one stock across the
// tracked social sources. TelegramSentiment is the day's average idea
// sentiment in [-1, 1].
type SocialMentionStat struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StockCode         string    `gorm:"not null;uniqueIndex:idx_social_mentions_code_date" json:"stock_code"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex:idx_social_mentions_code_date" json:"date"`
	YoutubeCount      int       `json:"youtube_count"`
	ExpertCount       int       `json:"expert_count"`
	TelegramIdeaCount int       `json:"telegram_idea_count"`
	TelegramSentiment float64   `json:"telegram_sentiment"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SocialMentionStat) TableName() string {
	return "social_mention_stats"
}
