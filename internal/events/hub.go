package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
)

const defaultSubscriptionBuffer = 64

type topic struct {
	deviceID string
	kind     countdown.Kind
}

// Hub fans countdown events out to live subscribers of a device countdown.
// Register it with an emitter to feed it.
type Hub struct {
	mu     sync.RWMutex
	topics map[topic]map[*Subscription]struct{}
	buffer int
	logger *slog.Logger
}

// Subscription receives the events of one device countdown on C until Close.
type Subscription struct {
	C <-chan *CountdownEvent

	ch    chan *CountdownEvent
	hub   *Hub
	topic topic
	once  sync.Once
}

var _ EventHandler = (*Hub)(nil)

// NewHub creates a hub whose subscriptions buffer up to buffer events.
// A non-positive buffer selects the default.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = defaultSubscriptionBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		topics: make(map[topic]map[*Subscription]struct{}),
		buffer: buffer,
		logger: logger.With("component", "event_hub"),
	}
}

// Subscribe registers a subscriber for the countdown kind of deviceID.
func (h *Hub) Subscribe(deviceID string, kind countdown.Kind) *Subscription {
	ch := make(chan *CountdownEvent, h.buffer)
	sub := &Subscription{C: ch, ch: ch, hub: h, topic: topic{deviceID: deviceID, kind: kind}}

	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		h.topics[sub.topic] = subs
	}
	subs[sub] = struct{}{}

	h.logger.Debug("subscription registered",
		"device_id", deviceID,
		"kind", kind,
		"subscribers", len(subs))
	return sub
}

// Close unregisters the subscription and closes C. It is safe to call twice.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		defer s.hub.mu.Unlock()

		if subs, ok := s.hub.topics[s.topic]; ok {
			delete(subs, s)
			if len(subs) == 0 {
				delete(s.hub.topics, s.topic)
			}
		}
		close(s.ch)
	})
}

// Subscribers reports how many subscriptions are open for a device countdown.
func (h *Hub) Subscribers(deviceID string, kind countdown.Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic{deviceID: deviceID, kind: kind}])
}

// HandleEvent delivers event to every subscriber of its countdown.
// A subscriber whose buffer is full misses the event.
func (h *Hub) HandleEvent(_ context.Context, event *CountdownEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.topics[topic{deviceID: event.DeviceID, kind: event.Kind}] {
		select {
		case sub.ch <- event:
		default:
			h.logger.Warn("subscriber buffer full, dropping event",
				"device_id", event.DeviceID,
				"kind", event.Kind,
				"event_type", event.Type)
		}
	}
	return nil
}
