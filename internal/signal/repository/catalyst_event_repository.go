package repository

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
)

// CatalystEventRepository persists catalyst lifecycle state. Events are
// append-only: Update mutates tracking fields, nothing ever deletes a row.
type CatalystEventRepository interface {
	Create(ctx context.Context, event *entity.CatalystEvent) error
	GetByStockAndDate(ctx context.Context, stockCode string, eventDate time.Time) (*entity.CatalystEvent, error)
	ListNonExpired(ctx context.Context) ([]entity.CatalystEvent, error)
	List(ctx context.Context, status string, limit int) ([]entity.CatalystEvent, error)
	Update(ctx context.Context, event *entity.CatalystEvent) error
}

func NewCatalystEventRepository(db *gorm.DB) CatalystEventRepository {
	return &catalystEventRepository{db: db}
}

type catalystEventRepository struct {
	db *gorm.DB
}

func (r *catalystEventRepository) Create(ctx context.Context, event *entity.CatalystEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *catalystEventRepository) GetByStockAndDate(ctx context.Context, stockCode string, eventDate time.Time) (*entity.CatalystEvent, error) {
	var event entity.CatalystEvent
	result := r.db.WithContext(ctx).
		Where("stock_code = ? AND event_date = ?", stockCode, eventDate).
		First(&event)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &event, nil
}

// ListNonExpired returns every event still in an active or weakening state,
// ordered by stock code and event date for a stable tracking pass.
func (r *catalystEventRepository) ListNonExpired(ctx context.Context) ([]entity.CatalystEvent, error) {
	var events []entity.CatalystEvent
	err := r.db.WithContext(ctx).
		Where("status <> ?", entity.CatalystStatusExpired).
		Order("stock_code asc, event_date asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *catalystEventRepository) List(ctx context.Context, status string, limit int) ([]entity.CatalystEvent, error) {
	query := r.db.WithContext(ctx).Order("event_date desc, stock_code asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var events []entity.CatalystEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// Update saves the full event row in one statement so a tracking update is
// all-or-nothing.
func (r *catalystEventRepository) Update(ctx context.Context, event *entity.CatalystEvent) error {
	return r.db.WithContext(ctx).Save(event).Error
}
