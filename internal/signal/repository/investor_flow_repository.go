package repository

import (
	"context"
	"time"

	"golang-kstock-signals/internal/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvestorFlowRepository reads and writes daily investor net-flow records.
type InvestorFlowRepository interface {
	GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.InvestorFlow, error)
	Upsert(ctx context.Context, flows []entity.InvestorFlow) error
}

func NewInvestorFlowRepository(db *gorm.DB) InvestorFlowRepository {
	return &investorFlowRepository{db: db}
}

type investorFlowRepository struct {
	db *gorm.DB
}

// GetRange returns flow records in [start, end], ordered by date ascending.
func (r *investorFlowRepository) GetRange(ctx context.Context, stockCode string, start, end time.Time) ([]entity.InvestorFlow, error) {
	var flows []entity.InvestorFlow
	err := r.db.WithContext(ctx).
		Where("stock_code = ? AND date >= ? AND date <= ?", stockCode, start, end).
		Order("date asc").
		Find(&flows).Error
	if err != nil {
		return nil, err
	}
	return flows, nil
}

func (r *investorFlowRepository) Upsert(ctx context.Context, flows []entity.InvestorFlow) error {
	if len(flows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_code"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"foreign_net", "institution_net", "individual_net", "flow_score", "updated_at"}),
		}).
		Create(&flows).Error
}
