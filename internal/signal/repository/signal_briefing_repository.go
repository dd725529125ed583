package repository

import (
	"context"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
)

// SignalBriefingRepository caches generated narrative briefings keyed by
// stock code plus content hash.
type SignalBriefingRepository interface {
	Create(ctx context.Context, briefing *entity.SignalBriefing) error
	GetByHash(ctx context.Context, hashIdentifier string) (*entity.SignalBriefing, error)
	GetLatest(ctx context.Context, stockCode string) (*entity.SignalBriefing, error)
}

func NewSignalBriefingRepository(db *gorm.DB) SignalBriefingRepository {
	return &signalBriefingRepository{db: db}
}

type signalBriefingRepository struct {
	db *gorm.DB
}

func (r *signalBriefingRepository) Create(ctx context.Context, briefing *entity.SignalBriefing) error {
	return r.db.WithContext(ctx).Create(briefing).Error
}

func (r *signalBriefingRepository) GetByHash(ctx context.Context, hashIdentifier string) (*entity.SignalBriefing, error) {
	var briefing entity.SignalBriefing
	result := r.db.WithContext(ctx).Where("hash_identifier = ?", hashIdentifier).First(&briefing)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &briefing, nil
}

func (r *signalBriefingRepository) GetLatest(ctx context.Context, stockCode string) (*entity.SignalBriefing, error) {
	var briefing entity.SignalBriefing
	result := r.db.WithContext(ctx).
		Where("stock_code = ?", stockCode).
		Order("created_at desc").
		First(&briefing)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &briefing, nil
}
