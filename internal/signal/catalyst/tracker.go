package catalyst

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/internal/signal/repository"
	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/utils"
)

// Tracker runs the daily update pass over every non-expired catalyst event:
// forward returns, flow confirmation, follow-up news, and the
// active→weakening→expired transitions. Each event is recomputed in memory
// and persisted with a single save, so an update is all-or-nothing and a
// cancelled pass leaves every already-saved event self-consistent.
type Tracker struct {
	cfg          scoring.Config
	log          *logger.Logger
	priceRepo    repository.StockPriceRepository
	flowRepo     repository.InvestorFlowRepository
	eventRepo    repository.StockEventRepository
	catalystRepo repository.CatalystEventRepository
}

// NewTracker creates a tracker. The config must already be validated.
func NewTracker(
	cfg scoring.Config,
	log *logger.Logger,
	priceRepo repository.StockPriceRepository,
	flowRepo repository.InvestorFlowRepository,
	eventRepo repository.StockEventRepository,
	catalystRepo repository.CatalystEventRepository,
) *Tracker {
	return &Tracker{
		cfg:          cfg,
		log:          log,
		priceRepo:    priceRepo,
		flowRepo:     flowRepo,
		eventRepo:    eventRepo,
		catalystRepo: catalystRepo,
	}
}

// Transition records one lifecycle status change observed during a
// tracking pass.
type Transition struct {
	Event entity.CatalystEvent
	From  string
	To    string
}

// Run updates every non-expired event for the as-of trading day. A single
// event's failure never aborts the batch; the result reports how many
// events were updated, skipped, and errored, plus the status transitions
// that happened.
func (t *Tracker) Run(ctx context.Context, asOf time.Time) (dto.TrackingResult, []Transition, error) {
	var result dto.TrackingResult
	var transitions []Transition

	events, err := t.catalystRepo.ListNonExpired(ctx)
	if err != nil {
		return result, nil, fmt.Errorf("failed to list non-expired catalyst events: %w", err)
	}

	for i := range events {
		select {
		case <-ctx.Done():
			return result, transitions, ctx.Err()
		default:
		}

		statusBefore := events[i].Status
		err := t.trackOne(ctx, &events[i], asOf)
		switch {
		case err == nil:
			result.Updated++
			if events[i].Status != statusBefore {
				transitions = append(transitions, Transition{
					Event: events[i],
					From:  statusBefore,
					To:    events[i].Status,
				})
			}
		case errors.Is(err, dto.ErrInconsistentState):
			t.log.Warn("Skipping catalyst event",
				logger.StringField("stock_code", events[i].StockCode),
				logger.ErrorField(err))
			result.Skipped++
		default:
			t.log.Error("Catalyst tracking failed for event",
				logger.StringField("stock_code", events[i].StockCode),
				logger.ErrorField(err))
			result.Errored++
		}
	}

	t.log.Info("Catalyst tracking pass finished",
		logger.StringField("as_of", asOf.Format("2006-01-02")),
		logger.IntField("updated", result.Updated),
		logger.IntField("skipped", result.Skipped),
		logger.IntField("errored", result.Errored))
	return result, transitions, nil
}

func (t *Tracker) trackOne(ctx context.Context, event *entity.CatalystEvent, asOf time.Time) error {
	// Re-running the pass for an already tracked date must not change
	// anything, notably days_alive and the decay streak.
	if event.LastTrackedDate != nil && !event.LastTrackedDate.Before(asOf) {
		return fmt.Errorf("%w: already tracked for %s", dto.ErrInconsistentState, asOf.Format("2006-01-02"))
	}

	bars, err := t.priceRepo.GetRange(ctx, event.StockCode, event.EventDate, asOf)
	if err != nil {
		return fmt.Errorf("failed to load price window: %w", err)
	}
	if len(bars) == 0 || !utils.SameDate(bars[len(bars)-1].Date, asOf) {
		return fmt.Errorf("%w: no price bar on %s", dto.ErrInconsistentState, asOf.Format("2006-01-02"))
	}
	if event.PriceAtEvent <= 0 {
		return fmt.Errorf("%w: event has no snapshot price", dto.ErrInconsistentState)
	}

	latestClose := bars[len(bars)-1].Close
	currentReturn := (latestClose - event.PriceAtEvent) / event.PriceAtEvent * 100

	// Trading days elapsed since the event date, derived from the bars so
	// repeated runs for later dates can never double-count.
	tradingDays := len(bars) - 1
	if !utils.SameDate(bars[0].Date, event.EventDate) {
		tradingDays = len(bars)
	}

	event.CurrentReturn = currentReturn
	event.DaysAlive = tradingDays

	// Forward return snapshots are written exactly once.
	setSnapshot := func(field **float64, horizon int) {
		if *field == nil && tradingDays >= horizon {
			idx := horizon
			if !utils.SameDate(bars[0].Date, event.EventDate) {
				idx = horizon - 1
			}
			if idx >= 0 && idx < len(bars) {
				ret := (bars[idx].Close - event.PriceAtEvent) / event.PriceAtEvent * 100
				*field = &ret
			}
		}
	}
	setSnapshot(&event.ReturnT1, 1)
	setSnapshot(&event.ReturnT5, 5)
	setSnapshot(&event.ReturnT10, 10)
	setSnapshot(&event.ReturnT20, 20)

	if currentReturn > event.MaxReturn {
		event.MaxReturn = currentReturn
		event.MaxReturnDay = tradingDays
	}

	if err := t.updateFlowConfirmation(ctx, event, asOf); err != nil {
		return err
	}
	if err := t.updateFollowupNews(ctx, event, asOf); err != nil {
		return err
	}

	t.applyTransitions(event, currentReturn, tradingDays)

	trackedDate := utils.TruncateToDate(asOf)
	event.LastTrackedDate = &trackedDate

	if err := t.catalystRepo.Update(ctx, event); err != nil {
		return fmt.Errorf("failed to save catalyst event: %w", err)
	}
	return nil
}

// updateFlowConfirmation recomputes whether the recent cumulative
// foreign+institution net flow points the same way as the event's move.
func (t *Tracker) updateFlowConfirmation(ctx context.Context, event *entity.CatalystEvent, asOf time.Time) error {
	window := t.cfg.Catalyst.FlowWindowDays
	flows, err := t.flowRepo.GetRange(ctx, event.StockCode, asOf.AddDate(0, 0, -window*2), asOf)
	if err != nil {
		return fmt.Errorf("failed to load investor flow: %w", err)
	}
	if len(flows) == 0 {
		return nil
	}
	if len(flows) > window {
		flows = flows[len(flows)-window:]
	}

	var cumulative int64
	for _, f := range flows {
		cumulative += f.ForeignNet + f.InstitutionNet
	}

	event.FlowScore5D = float64(cumulative) / 1e8 // 억원
	if event.PriceChangePct > 0 {
		event.FlowConfirmed = cumulative > 0
	} else {
		event.FlowConfirmed = cumulative < 0
	}
	return nil
}

func (t *Tracker) updateFollowupNews(ctx context.Context, event *entity.CatalystEvent, asOf time.Time) error {
	followups, err := t.eventRepo.GetRange(ctx, event.StockCode, event.EventDate.AddDate(0, 0, 1), asOf)
	if err != nil {
		return fmt.Errorf("failed to load follow-up events: %w", err)
	}
	event.FollowupNewsCount = len(followups)
	if len(followups) > 0 {
		latest := followups[len(followups)-1].Date
		event.LatestNewsDate = &latest
	}
	return nil
}

// applyTransitions moves the event through the lifecycle. Expiry wins over
// weakening; expired is terminal and days_alive past the horizon always
// expires regardless of return.
func (t *Tracker) applyTransitions(event *entity.CatalystEvent, currentReturn float64, tradingDays int) {
	cat := t.cfg.Catalyst

	if tradingDays >= cat.TrackingHorizonDays || currentReturn <= cat.HardFloorPct {
		event.Status = entity.CatalystStatusExpired
		return
	}

	retraced := event.MaxReturn > 0 &&
		currentReturn < event.MaxReturn*(1-cat.WeakenRetracePct/100)
	if retraced {
		event.DecayStreak++
	} else {
		event.DecayStreak = 0
	}

	if event.Status == entity.CatalystStatusActive && event.DecayStreak >= cat.WeakenConsecutiveDays {
		event.Status = entity.CatalystStatusWeakening
	}
}
