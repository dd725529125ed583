package repository

import (
	"context"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FinancialRatioRepository reads and writes the per-statement ratio bundles.
type FinancialRatioRepository interface {
	Get(ctx context.Context, stockCode, bsnsYear, reprtCode string) (*entity.FinancialRatio, error)
	GetLatestPerStock(ctx context.Context) ([]entity.FinancialRatio, error)
	Upsert(ctx context.Context, ratio *entity.FinancialRatio) error
}

func NewFinancialRatioRepository(db *gorm.DB) FinancialRatioRepository {
	return &financialRatioRepository{db: db}
}

type financialRatioRepository struct {
	db *gorm.DB
}

func (r *financialRatioRepository) Get(ctx context.Context, stockCode, bsnsYear, reprtCode string) (*entity.FinancialRatio, error) {
	var ratio entity.FinancialRatio
	result := r.db.WithContext(ctx).
		Where("stock_code = ? AND bsns_year = ? AND reprt_code = ?", stockCode, bsnsYear, reprtCode).
		First(&ratio)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &ratio, nil
}

// GetLatestPerStock returns the most recent statement ratios for every
// stock, newest business year and report first.
func (r *financialRatioRepository) GetLatestPerStock(ctx context.Context) ([]entity.FinancialRatio, error) {
	var ratios []entity.FinancialRatio
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (stock_code) *
		     FROM financial_ratios
		     ORDER BY stock_code, bsns_year DESC, reprt_code DESC`).
		Scan(&ratios).Error
	if err != nil {
		return nil, err
	}
	return ratios, nil
}

func (r *financialRatioRepository) Upsert(ctx context.Context, ratio *entity.FinancialRatio) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_code"}, {Name: "bsns_year"}, {Name: "reprt_code"}},
			UpdateAll: true,
		}).
		Create(ratio).Error
}
