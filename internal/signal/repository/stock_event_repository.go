package repository

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockEventRepository reads and writes dated news/disclosure events.
type StockEventRepository interface {
	GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockEvent, error)
	GetByDate(ctx context.Context, stockCode string, date time.Time) ([]entity.StockEvent, error)
	Upsert(ctx context.Context, events []entity.StockEvent) error
}

func NewStockEventRepository(db *gorm.DB) StockEventRepository {
	return &stockEventRepository{db: db}
}

type stockEventRepository struct {
	db *gorm.DB
}

// GetRange returns events in [start, end], ordered by date then id so
// results are stable across calls.
func (r *stockEventRepository) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockEvent, error) {
	var events []entity.StockEvent
	err := r.db.WithContext(ctx).
		Where("stock_code = ? AND date >= ? AND date <= ?", stockCode, start, end).
		Order("date asc, id asc").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *stockEventRepository) GetByDate(ctx context.Context, stockCode string, date time.Time) ([]entity.StockEvent, error) {
	return r.GetRange(ctx, stockCode, date, date)
}

// Upsert inserts events, ignoring duplicates by hash identifier.
func (r *stockEventRepository) Upsert(ctx context.Context, events []entity.StockEvent) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hash_identifier"}},
			DoNothing: true,
		}).
		Create(&events).Error
}
