package repository

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SocialMentionRepository reads and writes daily social mention tallies.
type SocialMentionRepository interface {
	GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.SocialMentionStat, error)
	Upsert(ctx context.Context, stats []entity.SocialMentionStat) error
}

func NewSocialMentionRepository(db *gorm.DB) SocialMentionRepository {
	return &socialMentionRepository{db: db}
}

type socialMentionRepository struct {
	db *gorm.DB
}

func (r *socialMentionRepository) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.SocialMentionStat, error) {
	var stats []entity.SocialMentionStat
	err := r.db.WithContext(ctx).
		Where("stock_code = ? AND date >= ? AND date <= ?", stockCode, start, end).
		Order("date asc").
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *socialMentionRepository) Upsert(ctx context.Context, stats []entity.SocialMentionStat) error {
	if len(stats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_code"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"youtube_count", "expert_count", "telegram_idea_count", "telegram_sentiment"}),
		}).
		Create(&stats).Error
}
