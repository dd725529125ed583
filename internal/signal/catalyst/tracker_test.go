package catalyst

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/scoring"
	"golang-kstock-signals/pkg/logger"
)

type trackerFixture struct {
	prices    *fakePriceRepo
	flows     *fakeFlowRepo
	events    *fakeEventRepo
	catalysts *fakeCatalystRepo
	tracker   *Tracker
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()
	f := &trackerFixture{
		prices:    newFakePriceRepo(),
		flows:     newFakeFlowRepo(),
		events:    newFakeEventRepo(),
		catalysts: newFakeCatalystRepo(),
	}
	f.tracker = NewTracker(scoring.DefaultConfig(), logger.NewNop(),
		f.prices, f.flows, f.events, f.catalysts)
	return f
}

// seedEvent opens an active catalyst event on day 0 at the given price.
func (f *trackerFixture) seedEvent(t *testing.T, code string, price float64) {
	t.Helper()
	f.prices.add(code, testDay(0), price, 1_000_000)
	err := f.catalysts.Create(context.Background(), &entity.CatalystEvent{
		StockCode:      code,
		EventDate:      testDay(0),
		CatalystType:   entity.CatalystTypeEarnings,
		PriceAtEvent:   price,
		VolumeAtEvent:  1_000_000,
		PriceChangePct: 5.0,
		Status:         entity.CatalystStatusActive,
	})
	require.NoError(t, err)
}

func (f *trackerFixture) stored(t *testing.T, code string) *entity.CatalystEvent {
	t.Helper()
	ev, err := f.catalysts.GetByStockAndDate(context.Background(), code, testDay(0))
	require.NoError(t, err)
	require.NotNil(t, ev)
	return ev
}

func TestTrackerSnapshotsAreSetOnce(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)

	closes := []float64{103, 106, 104, 107, 110, 108, 112}
	for day, close := range closes {
		f.prices.add("005930", testDay(day+1), close, 1_000_000)
		result, _, err := f.tracker.Run(context.Background(), testDay(day+1))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
	}

	ev := f.stored(t, "005930")
	require.NotNil(t, ev.ReturnT1)
	assert.InDelta(t, 3.0, *ev.ReturnT1, 1e-9)
	require.NotNil(t, ev.ReturnT5)
	assert.InDelta(t, 10.0, *ev.ReturnT5, 1e-9)
	assert.Nil(t, ev.ReturnT10)
	assert.Nil(t, ev.ReturnT20)
	assert.Equal(t, 7, ev.DaysAlive)
	assert.InDelta(t, 12.0, ev.CurrentReturn, 1e-9)
	assert.InDelta(t, 12.0, ev.MaxReturn, 1e-9)
	assert.Equal(t, 7, ev.MaxReturnDay)
}

func TestTrackerSameDayRerunIsSkipped(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)
	f.prices.add("005930", testDay(1), 104, 1_000_000)

	result, _, err := f.tracker.Run(context.Background(), testDay(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	result, _, err = f.tracker.Run(context.Background(), testDay(1))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)

	ev := f.stored(t, "005930")
	assert.Equal(t, 1, ev.DaysAlive)
	assert.Equal(t, 0, ev.DecayStreak)
}

func TestTrackerMissingBarIsSkipped(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)

	// No bar on the as-of date: a market holiday or a data gap.
	result, _, err := f.tracker.Run(context.Background(), testDay(1))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 1, result.Skipped)

	ev := f.stored(t, "005930")
	assert.Equal(t, 0, ev.DaysAlive)
	assert.Nil(t, ev.LastTrackedDate)
}

func TestTrackerExpiresAtHorizon(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)

	for day := 1; day <= 20; day++ {
		f.prices.add("005930", testDay(day), 95, 1_000_000)
		result, _, err := f.tracker.Run(context.Background(), testDay(day))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
	}

	ev := f.stored(t, "005930")
	assert.Equal(t, entity.CatalystStatusExpired, ev.Status)
	assert.Equal(t, 20, ev.DaysAlive)
	require.NotNil(t, ev.ReturnT20)
	assert.InDelta(t, -5.0, *ev.ReturnT20, 1e-9)

	// Terminal events leave the tracking set.
	f.prices.add("005930", testDay(21), 95, 1_000_000)
	result, _, err := f.tracker.Run(context.Background(), testDay(21))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 20, f.stored(t, "005930").DaysAlive)
}

func TestTrackerHardFloorExpiresEarly(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)
	f.prices.add("005930", testDay(1), 88, 1_000_000)

	result, transitions, err := f.tracker.Run(context.Background(), testDay(1))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, transitions, 1)
	assert.Equal(t, entity.CatalystStatusActive, transitions[0].From)
	assert.Equal(t, entity.CatalystStatusExpired, transitions[0].To)

	ev := f.stored(t, "005930")
	assert.Equal(t, entity.CatalystStatusExpired, ev.Status)
	assert.Equal(t, 1, ev.DaysAlive)
	assert.InDelta(t, -12.0, ev.CurrentReturn, 1e-9)
}

func TestTrackerWeakensAfterSustainedRetrace(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)

	// Run up to +20%, then hold at +5% which is under half the peak.
	closes := []float64{112, 120, 105, 105, 105}
	for day, close := range closes {
		f.prices.add("005930", testDay(day+1), close, 1_000_000)
		_, _, err := f.tracker.Run(context.Background(), testDay(day+1))
		require.NoError(t, err)

		ev := f.stored(t, "005930")
		if day < 4 {
			assert.Equal(t, entity.CatalystStatusActive, ev.Status, "day %d", day+1)
		}
	}

	ev := f.stored(t, "005930")
	assert.Equal(t, entity.CatalystStatusWeakening, ev.Status)
	assert.Equal(t, 3, ev.DecayStreak)
	assert.InDelta(t, 20.0, ev.MaxReturn, 1e-9)
	assert.Equal(t, 2, ev.MaxReturnDay)
}

func TestTrackerRecoveryResetsDecayStreak(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)

	closes := []float64{120, 105, 105, 118, 105}
	for day, close := range closes {
		f.prices.add("005930", testDay(day+1), close, 1_000_000)
		_, _, err := f.tracker.Run(context.Background(), testDay(day+1))
		require.NoError(t, err)
	}

	ev := f.stored(t, "005930")
	assert.Equal(t, entity.CatalystStatusActive, ev.Status)
	assert.Equal(t, 1, ev.DecayStreak)
}

func TestTrackerFlowConfirmation(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)
	f.prices.add("005930", testDay(1), 106, 1_000_000)
	f.flows.add("005930", testDay(0), 300_000_000, 100_000_000)
	f.flows.add("005930", testDay(1), 200_000_000, -100_000_000)

	_, _, err := f.tracker.Run(context.Background(), testDay(1))
	require.NoError(t, err)

	ev := f.stored(t, "005930")
	assert.True(t, ev.FlowConfirmed)
	assert.InDelta(t, 5.0, ev.FlowScore5D, 1e-9)
}

func TestTrackerCountsFollowupNews(t *testing.T) {
	f := newTrackerFixture(t)
	f.seedEvent(t, "005930", 100)
	f.prices.add("005930", testDay(1), 106, 1_000_000)
	f.prices.add("005930", testDay(2), 107, 1_000_000)
	// Day-0 events are the catalyst itself, not follow-up coverage.
	f.events.add("005930", testDay(0), entity.EventTypeNews, entity.ImportanceHigh, "실적 발표")
	f.events.add("005930", testDay(1), entity.EventTypeNews, entity.ImportanceMedium, "후속 보도")
	f.events.add("005930", testDay(2), entity.EventTypeNews, entity.ImportanceLow, "추가 보도")

	_, _, err := f.tracker.Run(context.Background(), testDay(2))
	require.NoError(t, err)

	ev := f.stored(t, "005930")
	assert.Equal(t, 2, ev.FollowupNewsCount)
	require.NotNil(t, ev.LatestNewsDate)
	assert.True(t, ev.LatestNewsDate.Equal(testDay(2)))
}
