package repository

import (
	"context"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
)

// StocksRepository reads the tracked stock universe.
type StocksRepository interface {
	GetStocks(ctx context.Context) ([]entity.Stock, error)
	GetByCode(ctx context.Context, code string) (*entity.Stock, error)
}

func NewStocksRepository(db *gorm.DB) StocksRepository {
	return &stocksRepository{db: db}
}

type stocksRepository struct {
	db *gorm.DB
}

func (r *stocksRepository) GetStocks(ctx context.Context) ([]entity.Stock, error) {
	var stocks []entity.Stock
	if err := r.db.WithContext(ctx).Order("code asc").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (r *stocksRepository) GetByCode(ctx context.Context, code string) (*entity.Stock, error) {
	var stock entity.Stock
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&stock)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &stock, nil
}
