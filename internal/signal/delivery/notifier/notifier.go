package notifier

import (
	"context"
	"fmt"

	"golang-kstock-signals/internal/entity"
	"golang-kstock-signals/internal/signal/dto"
	"golang-kstock-signals/pkg/common"
	"golang-kstock-signals/pkg/eventbus"
	"golang-kstock-signals/pkg/logger"
	"golang-kstock-signals/pkg/telegram"
)

// TelegramNotifier forwards catalyst and signal events from the in-process
// bus to the configured Telegram chat.
type TelegramNotifier struct {
	log      *logger.Logger
	notifier telegram.Notifier
}

func NewTelegramNotifier(log *logger.Logger, notifier telegram.Notifier) *TelegramNotifier {
	return &TelegramNotifier{log: log, notifier: notifier}
}

// Register subscribes the notifier to the alert topics.
func (n *TelegramNotifier) Register(bus *eventbus.Bus) {
	bus.Subscribe(common.EventCatalystCreated, n.onCatalystCreated)
	bus.Subscribe(common.EventCatalystExpired, n.onCatalystExpired)
	bus.Subscribe(common.EventSignalConfirmed, n.onSignalConfirmed)
}

func (n *TelegramNotifier) onCatalystCreated(ctx context.Context, payload interface{}) error {
	event, ok := payload.(entity.CatalystEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", payload, common.EventCatalystCreated)
	}
	n.log.Info("Sending catalyst created alert", logger.StringField("stock_code", event.StockCode))
	return n.notifier.SendMessage(telegram.FormatCatalystCreated(event))
}

func (n *TelegramNotifier) onCatalystExpired(ctx context.Context, payload interface{}) error {
	event, ok := payload.(entity.CatalystEvent)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", payload, common.EventCatalystExpired)
	}
	n.log.Info("Sending catalyst expired alert", logger.StringField("stock_code", event.StockCode))
	return n.notifier.SendMessage(telegram.FormatCatalystExpired(event))
}

func (n *TelegramNotifier) onSignalConfirmed(ctx context.Context, payload interface{}) error {
	signal, ok := payload.(dto.CompositeSignal)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", payload, common.EventSignalConfirmed)
	}
	n.log.Info("Sending confirmed signal alert", logger.StringField("stock_code", signal.StockCode))
	return n.notifier.SendMessage(telegram.FormatConfirmedSignal(signal))
}
