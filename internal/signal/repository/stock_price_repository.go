package repository

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockPriceRepository reads and writes daily OHLCV bars.
type StockPriceRepository interface {
	GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockPrice, error)
	GetCodesWithBarOn(ctx context.Context, date time.Time) ([]string, error)
	GetLatestClose(ctx context.Context, stockCode string, onOrBefore time.Time) (float64, error)
	Upsert(ctx context.Context, bars []entity.StockPrice) error
}

func NewStockPriceRepository(db *gorm.DB) StockPriceRepository {
	return &stockPriceRepository{db: db}
}

type stockPriceRepository struct {
	db *gorm.DB
}

// GetRange returns bars in [start, end], ordered by date ascending.
func (r *stockPriceRepository) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.StockPrice, error) {
	var bars []entity.StockPrice
	err := r.db.WithContext(ctx).
		Where("stock_code = ? AND date >= ? AND date <= ?", stockCode, start, end).
		Order("date asc").
		Find(&bars).Error
	if err != nil {
		return nil, err
	}
	return bars, nil
}

func (r *stockPriceRepository) GetCodesWithBarOn(ctx context.Context, date time.Time) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&entity.StockPrice{}).
		Where("date = ?", date).
		Order("stock_code asc").
		Pluck("stock_code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *stockPriceRepository) GetLatestClose(ctx context.Context, stockCode string, onOrBefore time.Time) (float64, error) {
	var bar entity.StockPrice
	err := r.db.WithContext(ctx).
		Where("stock_code = ? AND date <= ?", stockCode, onOrBefore).
		Order("date desc").
		First(&bar).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return bar.Close, nil
}

func (r *stockPriceRepository) Upsert(ctx context.Context, bars []entity.StockPrice) error {
	if len(bars) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_code"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
		}).
		Create(&bars).Error
}
