package eventbus

import (
	"context"
	"sync"

	"golang-kstock-signals/pkg/logger"
)

// Handler processes a single published event.
type Handler func(ctx context.Context, payload interface{}) error

// Bus is an in-process publish/subscribe bus. Publish is fire-and-forget:
// every subscriber runs, a failing or panicking subscriber is logged and
// never affects the publisher or the other subscribers.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// New creates an empty bus.
func New(log *logger.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for a topic. Registration order is the
// invocation order within one topic.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the payload to every subscriber of the topic synchronously.
func (b *Bus) Publish(ctx context.Context, topic string, payload interface{}) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[topic]))
	copy(handlers, b.handlers[topic])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.invoke(ctx, topic, h, payload)
	}
}

func (b *Bus) invoke(ctx context.Context, topic string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("Event handler panicked",
				logger.StringField("topic", topic),
				logger.Field("panic", r))
		}
	}()
	if err := h(ctx, payload); err != nil {
		b.log.Error("Event handler failed",
			logger.StringField("topic", topic),
			logger.ErrorField(err))
	}
}
