package bus

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is the envelope carried between modules. Payload stays in-process;
// nothing here is serialized for external transport.
type Event struct {
	ID         string    `json:"event_id"`
	Name       string    `json:"event_name"`
	Source     string    `json:"source_module"`
	OccurredAt time.Time `json:"occurred_at_utc"`
	Payload    any       `json:"payload"`
}

// New builds an envelope with a fresh id and UTC timestamp.
func New(name, source string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Name:       name,
		Source:     source,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// subscriberBuffer bounds how far one subscriber may lag before it loses
// events.
const subscriberBuffer = 128

// Bus is the in-process event bus modules publish through. Subscribers get a
// buffered channel each; a full buffer drops the event for that subscriber
// rather than blocking the publisher.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]chan Event
	logger      *slog.Logger
	closed      bool
}

func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		subscribers: make(map[string][]chan Event),
		logger:      logger,
	}
}

// Publish delivers event to every subscriber of event.Name.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return nil
	}
	subs := append([]chan Event(nil), b.subscribers[event.Name]...)
	b.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub <- event:
		default:
			b.logger.Warn("dropping event for slow subscriber",
				"event", "bus_publish_drop",
				"module", "internal/platform/bus",
				"layer", "platform",
				"event_name", event.Name,
				"event_id", event.ID,
			)
		}
	}

	b.logger.Debug("event published",
		"event", "bus_publish",
		"module", "internal/platform/bus",
		"layer", "platform",
		"event_name", event.Name,
		"event_id", event.ID,
		"source", event.Source,
	)
	return nil
}

// Subscribe runs handler for every event named name until ctx is canceled.
// Handler errors are logged and do not stop the consumer.
func (b *Bus) Subscribe(ctx context.Context, name, consumer string, handler func(context.Context, Event) error) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[name] = append(b.subscribers[name], ch)
	b.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				b.removeSubscriber(name, ch)
				return
			case event, ok := <-ch:
				if !ok {
					return
				}
				if err := handler(ctx, event); err != nil {
					b.logger.Error("event handler failed",
						"event", "bus_consume_failed",
						"module", "internal/platform/bus",
						"layer", "platform",
						"event_name", name,
						"consumer", consumer,
						"event_id", event.ID,
						"error", err.Error(),
					)
				}
			}
		}
	}()
}

func (b *Bus) removeSubscriber(name string, target chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := b.subscribers[name]
	if len(items) == 0 {
		return
	}
	filtered := make([]chan Event, 0, len(items))
	for _, item := range items {
		if item != target {
			filtered = append(filtered, item)
		}
	}
	b.subscribers[name] = filtered
}

// Close stops delivery. Consumer goroutines exit as their channels drain.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	b.subscribers = make(map[string][]chan Event)
}
