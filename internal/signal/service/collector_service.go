package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// CollectorService ingests the external data feeds: investor flow from
// Naver Finance and news/disclosure items from the RSS feed.
type CollectorService interface {
	CollectInvestorFlow(ctx context.Context, from, to time.Time) (int, error)
	SyncDisclosures(ctx context.Context) (int, error)
}

// NewCollectorService creates a new CollectorService.
func NewCollectorService(
	log *logger.Logger,
	stocksRepo repository.StocksRepository,
	naverRepo repository.NaverFlowRepository,
	flowRepo repository.InvestorFlowRepository,
	feedRepo repository.DisclosureFeedRepository,
	eventRepo repository.StockEventRepository,
) CollectorService {
	return &collectorService{
		logger:     log,
		stocksRepo: stocksRepo,
		naverRepo:  naverRepo,
		flowRepo:   flowRepo,
		feedRepo:   feedRepo,
		eventRepo:  eventRepo,
	}
}

type collectorService struct {
	logger     *logger.Logger
	stocksRepo repository.StocksRepository
	naverRepo  repository.NaverFlowRepository
	flowRepo   repository.InvestorFlowRepository
	feedRepo   repository.DisclosureFeedRepository
	eventRepo  repository.StockEventRepository
}

// CollectInvestorFlow scrapes the daily net-buy table for every known
// stock and upserts the rows. The scrape is sequential per stock; the
// shared rate limiter inside the Naver repository paces the requests.
func (s *collectorService) CollectInvestorFlow(ctx context.Context, from, to time.Time) (int, error) {
	stocks, err := s.stocksRepo.GetStocks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load stock universe: %w", err)
	}

	total := 0
	for _, stock := range stocks {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		flows, err := s.naverRepo.FetchInvestorFlow(ctx, stock.Code, from, to)
		if err != nil {
			s.logger.Error("Failed to fetch investor flow",
				logger.StringField("stock_code", stock.Code),
				logger.ErrorField(err))
			continue
		}
		if len(flows) == 0 {
			continue
		}
		if err := s.flowRepo.Upsert(ctx, flows); err != nil {
			s.logger.Error("Failed to store investor flow",
				logger.StringField("stock_code", stock.Code),
				logger.ErrorField(err))
			continue
		}
		total += len(flows)
	}

	s.logger.Info("Investor flow collection finished",
		logger.IntField("stocks", len(stocks)),
		logger.IntField("rows", total))
	return total, nil
}

// SyncDisclosures pulls the feed for every known stock concurrently and
// upserts the events; the hash identifier dedupes across runs.
func (s *collectorService) SyncDisclosures(ctx context.Context) (int, error) {
	stocks, err := s.stocksRepo.GetStocks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load stock universe: %w", err)
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		total int
	)
	semaphore := make(chan struct{}, 4)

	for _, stock := range stocks {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}
		stock := stock
		wg.Add(1)
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			events, err := s.feedRepo.FetchEvents(ctx, stock.Code, stock.Name)
			if err != nil {
				s.logger.Error("Failed to fetch disclosure feed",
					logger.StringField("stock_code", stock.Code),
					logger.ErrorField(err))
				return
			}
			if len(events) == 0 {
				return
			}
			if err := s.eventRepo.Upsert(ctx, events); err != nil {
				s.logger.Error("Failed to store stock events",
					logger.StringField("stock_code", stock.Code),
					logger.ErrorField(err))
				return
			}
			mu.Lock()
			total += len(events)
			mu.Unlock()
		})
	}
	wg.Wait()

	s.logger.Info("Disclosure sync finished",
		logger.IntField("stocks", len(stocks)),
		logger.IntField("events", total))
	return total, nil
}
