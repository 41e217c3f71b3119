package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event)
	Subscribe(eventType EventType, handler EventHandler)
}

// InMemoryDispatcher delivers events to handlers on their own goroutines.
// Publication is fire-and-forget: handler errors are logged and never reach
// the publisher, so a failing mail send cannot fail the flow that raised it.
type InMemoryDispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]EventHandler
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher(logger *zap.Logger) *InMemoryDispatcher {
	return &InMemoryDispatcher{
		listeners: make(map[EventType][]EventHandler),
		logger:    logger,
	}
}

// Publish hands the event to every subscribed handler asynchronously.
func (d *InMemoryDispatcher) Publish(ctx context.Context, event Event) {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler := handler
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			if err := handler(context.WithoutCancel(ctx), event); err != nil {
				d.logger.Warn("event handler failed",
					zap.String("event_type", string(event.Type)),
					zap.String("account_id", event.AccountID),
					zap.Error(err))
			}
		}()
	}
}

// Subscribe registers a handler for the given event type.
func (d *InMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}

// Wait blocks until all in-flight handlers have finished. Used on shutdown
// so pending mail sends are not cut off mid-flight.
func (d *InMemoryDispatcher) Wait() {
	d.wg.Wait()
}
