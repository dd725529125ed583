package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// BriefingService turns a composite signal into a cached natural-language
// briefing. The cache key hashes the signal content, so a stock whose
// signal has not moved is served from cache instead of hitting the AI.
type BriefingService interface {
	GetBriefing(ctx context.Context, stockCode string) (*entity.SignalBriefing, error)
}

// NewBriefingService creates a new BriefingService.
func NewBriefingService(
	log *logger.Logger,
	scanner ScannerService,
	catalystRepo repository.CatalystEventRepository,
	briefingRepo repository.SignalBriefingRepository,
	aiRepo repository.BriefingAIRepository,
) BriefingService {
	return &briefingService{
		logger:        log,
		scanner:       scanner,
		catalystRepo:  catalystRepo,
		briefingRepo:  briefingRepo,
		aiRepo:        aiRepo,
		inmemoryCache: cache.New(15*time.Minute, 30*time.Minute),
	}
}

type briefingService struct {
	logger        *logger.Logger
	scanner       ScannerService
	catalystRepo  repository.CatalystEventRepository
	briefingRepo  repository.SignalBriefingRepository
	aiRepo        repository.BriefingAIRepository
	inmemoryCache *cache.Cache
}

func (s *briefingService) GetBriefing(ctx context.Context, stockCode string) (*entity.SignalBriefing, error) {
	asOf := utils.TimeNowKST()

	signal, err := s.scanner.ScoreDimensions(ctx, stockCode, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to score stock: %w", err)
	}

	liveCatalyst, err := s.catalystRepo.GetByStockAndDate(ctx, stockCode, utils.TruncateToDate(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalyst event: %w", err)
	}

	hash := briefingHash(signal, liveCatalyst)

	if cached, found := s.inmemoryCache.Get(hash); found {
		return cached.(*entity.SignalBriefing), nil
	}
	if stored, err := s.briefingRepo.GetByHash(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to look up stored briefing: %w", err)
	} else if stored != nil {
		s.inmemoryCache.Set(hash, stored, cache.DefaultExpiration)
		return stored, nil
	}

	result, err := s.aiRepo.GenerateBriefing(ctx, *signal, liveCatalyst)
	if err != nil {
		return nil, fmt.Errorf("failed to generate briefing: %w", err)
	}

	data, err := json.Marshal(struct {
		Signal   *dto.CompositeSignal `json:"signal"`
		Briefing *dto.BriefingResult  `json:"briefing"`
	}{signal, result})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal briefing data: %w", err)
	}

	briefing := &entity.SignalBriefing{
		StockCode:      stockCode,
		HashIdentifier: hash,
		CompositeScore: signal.CompositeScore,
		CompositeGrade: signal.CompositeGrade,
		SignalType:     signal.SignalType,
		Briefing:       result.Assessment,
		Data:           data,
	}
	if err := s.briefingRepo.Create(ctx, briefing); err != nil {
		// A concurrent generation may have stored the same hash first.
		s.logger.Warn("Failed to store briefing",
			logger.StringField("stock_code", stockCode),
			logger.ErrorField(err))
	}
	s.inmemoryCache.Set(hash, briefing, cache.DefaultExpiration)
	return briefing, nil
}

// briefingHash keys the cache on everything that changes the narrative:
// the per-dimension scores, the composite outcome, and the catalyst state.
func briefingHash(signal *dto.CompositeSignal, catalyst *entity.CatalystEvent) string {
	key := fmt.Sprintf("%s|%s|%.2f|%.2f|%.2f|%.2f|%.2f|%s",
		signal.StockCode,
		signal.AsOfDate.Format("2006-01-02"),
		signal.Chart.Score,
		signal.Narrative.Score,
		signal.Flow.Score,
		signal.Social.Score,
		signal.CompositeScore,
		signal.SignalType)
	if catalyst != nil {
		key += fmt.Sprintf("|%d|%s|%d", catalyst.ID, catalyst.Status, catalyst.DaysAlive)
	}
	return utils.HashMD5(key)
}
