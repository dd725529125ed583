package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/eventbus"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// Price history loaded per stock, in calendar days. Wide enough for the
// 120-bar moving average stack plus holidays.
const priceLookbackDays = 220

// ScannerService computes the four-dimension composite signal.
type ScannerService interface {
	ScoreDimensions(ctx context.Context, stockCode string, asOf time.Time) (*dto.CompositeSignal, error)
	ScanUniverse(ctx context.Context, req dto.ScanRequest) (*dto.ScanResult, error)
}

// NewScannerService creates a new ScannerService.
func NewScannerService(
	cfg scoring.Config,
	log *logger.Logger,
	bus *eventbus.Bus,
	stocksRepo repository.StocksRepository,
	priceRepo repository.StockPriceRepository,
	eventRepo repository.StockEventRepository,
	flowRepo repository.InvestorFlowRepository,
	socialRepo repository.SocialMentionRepository,
) ScannerService {
	return &scannerService{
		cfg:        cfg,
		logger:     log,
		bus:        bus,
		stocksRepo: stocksRepo,
		priceRepo:  priceRepo,
		eventRepo:  eventRepo,
		flowRepo:   flowRepo,
		socialRepo: socialRepo,
	}
}

type scannerService struct {
	cfg        scoring.Config
	logger     *logger.Logger
	bus        *eventbus.Bus
	stocksRepo repository.StocksRepository
	priceRepo  repository.StockPriceRepository
	eventRepo  repository.StockEventRepository
	flowRepo   repository.InvestorFlowRepository
	socialRepo repository.SocialMentionRepository
}

// ScoreDimensions loads the four data windows for one stock and folds them
// into the composite. A missing dimension degrades to a zero score inside
// its scorer; only a repository failure is an error.
func (s *scannerService) ScoreDimensions(ctx context.Context, stockCode string, asOf time.Time) (*dto.CompositeSignal, error) {
	bars, err := s.priceRepo.GetRange(ctx, stockCode, asOf.AddDate(0, 0, -priceLookbackDays), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}

	events, err := s.eventRepo.GetRange(ctx, stockCode, asOf.AddDate(0, 0, -s.cfg.Narrative.WindowDays), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock events: %w", err)
	}

	flowLookback := (s.cfg.Flow.BaselineDays + s.cfg.Flow.MagnitudeDays) * 2
	flows, err := s.flowRepo.GetRange(ctx, stockCode, asOf.AddDate(0, 0, -flowLookback), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load investor flow: %w", err)
	}

	stats, err := s.socialRepo.GetRange(ctx, stockCode, asOf.AddDate(0, 0, -s.cfg.Social.WindowDays), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load social mentions: %w", err)
	}

	chart := scoring.ScoreChart(s.cfg, bars)
	narrative := scoring.ScoreNarrative(s.cfg, events)
	flow := scoring.ScoreFlow(s.cfg, flows)
	social := scoring.ScoreSocial(s.cfg, stats)

	signal := scoring.Aggregate(s.cfg, chart, narrative, flow, social)
	signal.StockCode = stockCode
	signal.AsOfDate = utils.TruncateToDate(asOf)
	return &signal, nil
}

// ScanUniverse scores the requested universe, or every known stock when
// the request names none. Stocks that fail to score are counted and
// omitted, never failing the scan. The result is ordered score-descending
// with the stock code as tiebreak so equal scores rank deterministically.
func (s *scannerService) ScanUniverse(ctx context.Context, req dto.ScanRequest) (*dto.ScanResult, error) {
	codes := req.StockCodes
	if len(codes) == 0 {
		stocks, err := s.stocksRepo.GetStocks(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load stock universe: %w", err)
		}
		for _, stock := range stocks {
			codes = append(codes, stock.Code)
		}
	}

	asOf := req.AsOfDate
	if asOf.IsZero() {
		asOf = utils.TimeNowKST()
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		signals []dto.CompositeSignal
		omitted int
	)
	semaphore := make(chan struct{}, 8)

	for _, code := range codes {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		code := code
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			signal, err := s.ScoreDimensions(ctx, code, asOf)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.logger.Error("Failed to score stock, omitting from scan",
					logger.StringField("stock_code", code),
					logger.ErrorField(err))
				omitted++
				return
			}
			if signal.SignalType == dto.SignalTypeConfirmed {
				s.bus.Publish(ctx, common.EventSignalConfirmed, *signal)
			}
			if signal.CompositeScore < req.MinScore {
				return
			}
			signals = append(signals, *signal)
		})
	}
	wg.Wait()

	sort.Slice(signals, func(i, j int) bool {
		if req.SortBy == "aligned_count" && signals[i].AlignedCount != signals[j].AlignedCount {
			return signals[i].AlignedCount > signals[j].AlignedCount
		}
		if signals[i].CompositeScore != signals[j].CompositeScore {
			return signals[i].CompositeScore > signals[j].CompositeScore
		}
		return signals[i].StockCode < signals[j].StockCode
	})

	if req.Limit > 0 && len(signals) > req.Limit {
		signals = signals[:req.Limit]
	}

	s.logger.Info("Universe scan finished",
		logger.IntField("scored", len(signals)),
		logger.IntField("omitted", omitted))
	return &dto.ScanResult{Signals: signals, Omitted: omitted}, nil
}
