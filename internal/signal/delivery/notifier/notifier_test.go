package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/eventbus"
	"golang-kstock-signals/pkg/logger"
)

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) SendMessage(text string) error {
	f.messages = append(f.messages, text)
	return nil
}

func TestTelegramNotifier_CatalystCreated(t *testing.T) {
	log := logger.NewNop()
	sink := &fakeNotifier{}
	bus := eventbus.New(log)
	NewTelegramNotifier(log, sink).Register(bus)

	event := entity.CatalystEvent{
		StockCode:      "005930",
		EventDate:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CatalystType:   entity.CatalystTypeEarnings,
		PriceChangePct: 5.2,
		PriceAtEvent:   70000,
		VolumeAtEvent:  3_000_000,
		Status:         entity.CatalystStatusActive,
	}
	bus.Publish(context.Background(), common.EventCatalystCreated, event)

	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "005930")
	assert.Contains(t, sink.messages[0], "2026-03-02")
	assert.Contains(t, sink.messages[0], "실적")
	assert.Contains(t, sink.messages[0], "+5.2%")
	assert.Contains(t, sink.messages[0], "70,000원")
	assert.Contains(t, sink.messages[0], "3,000,000")
}

func TestTelegramNotifier_CatalystExpired(t *testing.T) {
	log := logger.NewNop()
	sink := &fakeNotifier{}
	bus := eventbus.New(log)
	NewTelegramNotifier(log, sink).Register(bus)

	t5 := 4.5
	event := entity.CatalystEvent{
		StockCode:     "000660",
		EventDate:     time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		CatalystType:  entity.CatalystTypeContract,
		CurrentReturn: -11.0,
		MaxReturn:     8.0,
		MaxReturnDay:  3,
		ReturnT5:      &t5,
		FlowConfirmed: true,
		DaysAlive:     12,
		Status:        entity.CatalystStatusExpired,
	}
	bus.Publish(context.Background(), common.EventCatalystExpired, event)

	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "000660")
	assert.Contains(t, sink.messages[0], "12거래일")
	assert.Contains(t, sink.messages[0], "-11.0%")
	assert.Contains(t, sink.messages[0], "+8.0% (D+3)")
	assert.Contains(t, sink.messages[0], "T+5")
	assert.Contains(t, sink.messages[0], "수급 확인")
}

func TestTelegramNotifier_SignalConfirmed(t *testing.T) {
	log := logger.NewNop()
	sink := &fakeNotifier{}
	bus := eventbus.New(log)
	NewTelegramNotifier(log, sink).Register(bus)

	signal := dto.CompositeSignal{
		StockCode:      "035420",
		AsOfDate:       time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Chart:          dto.DimensionScore{Score: 80, MaxScore: 100, Grade: "A"},
		Narrative:      dto.DimensionScore{Score: 60, MaxScore: 100, Grade: "B"},
		Flow:           dto.DimensionScore{Score: 70, MaxScore: 100, Grade: "B"},
		Social:         dto.DimensionScore{Score: 55, MaxScore: 100, Grade: "C"},
		CompositeScore: 68.3,
		CompositeGrade: "B",
		SignalType:     dto.SignalTypeConfirmed,
	}
	bus.Publish(context.Background(), common.EventSignalConfirmed, signal)

	require.Len(t, sink.messages, 1)
	assert.Contains(t, sink.messages[0], "확정 시그널")
	assert.Contains(t, sink.messages[0], "035420")
	assert.Contains(t, sink.messages[0], "68.3점")
	assert.Contains(t, sink.messages[0], "✅ 📈 차트: 80/100 (A)")
}

func TestTelegramNotifier_IgnoresBadPayload(t *testing.T) {
	log := logger.NewNop()
	sink := &fakeNotifier{}
	bus := eventbus.New(log)
	NewTelegramNotifier(log, sink).Register(bus)

	bus.Publish(context.Background(), common.EventCatalystCreated, "not an event")

	assert.Empty(t, sink.messages)
}
