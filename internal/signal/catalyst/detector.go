package catalyst

import (
	"context"
	"fmt"
	"math"
	"time"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/logger"
)

// Detector runs the detect→active transition: once per trading day it scans
// every stock with a bar on the as-of date and opens a catalyst event when a
// qualifying move coincides with at least one news/disclosure item.
type Detector struct {
	cfg          scoring.Config
	log          *logger.Logger
	priceRepo    repository.StockPriceRepository
	eventRepo    repository.StockEventRepository
	catalystRepo repository.CatalystEventRepository
}

// NewDetector creates a detector. The config must already be validated.
func NewDetector(
	cfg scoring.Config,
	log *logger.Logger,
	priceRepo repository.StockPriceRepository,
	eventRepo repository.StockEventRepository,
	catalystRepo repository.CatalystEventRepository,
) *Detector {
	return &Detector{
		cfg:          cfg,
		log:          log,
		priceRepo:    priceRepo,
		eventRepo:    eventRepo,
		catalystRepo: catalystRepo,
	}
}

// Run detects new catalysts for the given trading day and returns the
// created events. Re-running for an already processed day creates nothing:
// the (stock_code, event_date) pair is checked before insert. A single
// stock's failure is logged and skipped, never aborting the scan.
func (d *Detector) Run(ctx context.Context, asOf time.Time) ([]entity.CatalystEvent, error) {
	codes, err := d.priceRepo.GetCodesWithBarOn(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks with price data: %w", err)
	}

	var created []entity.CatalystEvent
	for _, code := range codes {
		select {
		case <-ctx.Done():
			return created, ctx.Err()
		default:
		}

		event, err := d.detectOne(ctx, code, asOf)
		if err != nil {
			d.log.Error("Catalyst detection failed for stock",
				logger.StringField("stock_code", code),
				logger.ErrorField(err))
			continue
		}
		if event != nil {
			created = append(created, *event)
		}
	}

	d.log.Info("Catalyst detection pass finished",
		logger.StringField("as_of", asOf.Format("2006-01-02")),
		logger.IntField("scanned", len(codes)),
		logger.IntField("created", len(created)))
	return created, nil
}

func (d *Detector) detectOne(ctx context.Context, code string, asOf time.Time) (*entity.CatalystEvent, error) {
	bars, err := d.priceRepo.GetRange(ctx, code, asOf.AddDate(0, 0, -14), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load price window: %w", err)
	}
	if len(bars) < 2 {
		return nil, nil
	}

	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	if prev.Close <= 0 {
		return nil, nil
	}
	changePct := (last.Close - prev.Close) / prev.Close * 100

	if math.Abs(changePct) < d.cfg.Catalyst.DetectionThresholdPct {
		return nil, nil
	}

	events, err := d.eventRepo.GetByDate(ctx, code, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to load day events: %w", err)
	}
	if len(events) == 0 {
		// A move without a narrative is not a catalyst.
		return nil, nil
	}

	existing, err := d.catalystRepo.GetByStockAndDate(ctx, code, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing catalyst: %w", err)
	}
	if existing != nil {
		return nil, nil
	}

	event := &entity.CatalystEvent{
		StockCode:      code,
		EventDate:      asOf,
		CatalystType:   ClassifyCatalystType(events),
		PriceAtEvent:   last.Close,
		VolumeAtEvent:  last.Volume,
		PriceChangePct: changePct,
		Status:         entity.CatalystStatusActive,
	}
	if err := d.catalystRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create catalyst event: %w", err)
	}

	d.log.Info("Catalyst event created",
		logger.StringField("stock_code", code),
		logger.StringField("catalyst_type", event.CatalystType),
		logger.Float64Field("price_change_pct", changePct))
	return event, nil
}
