package service

import (
	"context"
	"fmt"
	"sort"

	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// ValueService scores fundamentals into the value screen.
type ValueService interface {
	ScoreStock(ctx context.Context, stockCode string) (*dto.ValueMetrics, error)
	ScreenValue(ctx context.Context, req dto.ValueScreenRequest) ([]dto.ValueMetrics, error)
}

// NewValueService creates a new ValueService.
func NewValueService(
	cfg scoring.Config,
	log *logger.Logger,
	ratioRepo repository.FinancialRatioRepository,
	priceRepo repository.StockPriceRepository,
) ValueService {
	return &valueService{
		cfg:       cfg,
		logger:    log,
		ratioRepo: ratioRepo,
		priceRepo: priceRepo,
	}
}

type valueService struct {
	cfg       scoring.Config
	logger    *logger.Logger
	ratioRepo repository.FinancialRatioRepository
	priceRepo repository.StockPriceRepository
}

// ScoreStock scores the most recent statement of one stock.
func (s *valueService) ScoreStock(ctx context.Context, stockCode string) (*dto.ValueMetrics, error) {
	ratios, err := s.ratioRepo.GetLatestPerStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial ratios: %w", err)
	}
	for i := range ratios {
		if ratios[i].StockCode != stockCode {
			continue
		}
		price, err := s.priceRepo.GetLatestClose(ctx, stockCode, utils.TimeNowKST())
		if err != nil {
			return nil, fmt.Errorf("failed to load latest close: %w", err)
		}
		metrics := scoring.ScoreValue(s.cfg, &ratios[i], price)
		return &metrics, nil
	}
	return nil, fmt.Errorf("%w: no financial statement for %s", dto.ErrDataUnavailable, stockCode)
}

// ScreenValue scores the latest statement of every covered stock. A stock
// whose price lookup fails is scored without valuation upside rather than
// dropped.
func (s *valueService) ScreenValue(ctx context.Context, req dto.ValueScreenRequest) ([]dto.ValueMetrics, error) {
	ratios, err := s.ratioRepo.GetLatestPerStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial ratios: %w", err)
	}

	now := utils.TimeNowKST()
	results := make([]dto.ValueMetrics, 0, len(ratios))
	for i := range ratios {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		price, err := s.priceRepo.GetLatestClose(ctx, ratios[i].StockCode, now)
		if err != nil {
			s.logger.Warn("Failed to load latest close, scoring without valuation",
				logger.StringField("stock_code", ratios[i].StockCode),
				logger.ErrorField(err))
			price = 0
		}
		metrics := scoring.ScoreValue(s.cfg, &ratios[i], price)
		if metrics.TotalScore < req.MinScore {
			continue
		}
		results = append(results, metrics)
	}

	sort.Slice(results, func(i, j int) bool {
		if req.SortBy == "upside_pct" {
			ui, uj := results[i].UpsidePct, results[j].UpsidePct
			if ui != nil && uj != nil && *ui != *uj {
				return *ui > *uj
			}
			if (ui != nil) != (uj != nil) {
				return ui != nil
			}
		}
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].StockCode < results[j].StockCode
	})

	if req.Limit > 0 && len(results) > req.Limit {
		results = results[:req.Limit]
	}
	return results, nil
}
