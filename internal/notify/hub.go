package notify

import (
	"sync"
	"time"

	"tablebook/internal/domain/booking"
	"tablebook/internal/pkg/metrics"

	"github.com/google/uuid"
)

const subscriptionBuffer = 16

// Event is one status notification. Events carry only the new state; there
// is no replay for late subscribers.
type Event struct {
	BookingID uuid.UUID      `json:"bookingId"`
	Status    booking.Status `json:"status"`
	TableID   int            `json:"tableId"`
	Date      string         `json:"date"`
	Time      string         `json:"time"`
	Timestamp time.Time      `json:"timestamp"`
}

// Subscription is one listener for a phone. Events arrive on a buffered
// channel in publish order; a subscriber that falls more than
// subscriptionBuffer events behind starts losing events rather than
// blocking publishers.
type Subscription struct {
	hub   *Hub
	phone string
	ch    chan Event
	once  sync.Once
}

func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close detaches the subscription and closes its channel. Idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.ch)
	})
}

// Hub fans booking status events out to subscribers keyed by customer
// phone. Publishing to a phone with no subscribers drops the event.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

func (h *Hub) Subscribe(phone string) *Subscription {
	sub := &Subscription{
		hub:   h,
		phone: phone,
		ch:    make(chan Event, subscriptionBuffer),
	}

	h.mu.Lock()
	set, ok := h.subs[phone]
	if !ok {
		set = make(map[*Subscription]struct{})
		h.subs[phone] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()

	metrics.IncStreamSubscribers()
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	if set, ok := h.subs[sub.phone]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.phone)
		}
	}
	h.mu.Unlock()

	metrics.DecStreamSubscribers()
}

// Publish delivers ev to every current subscription for phone. Sends never
// block: a full subscriber buffer drops the event for that subscriber only.
func (h *Hub) Publish(phone string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[phone] {
		select {
		case sub.ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports the live subscriptions for a phone.
func (h *Hub) SubscriberCount(phone string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[phone])
}
