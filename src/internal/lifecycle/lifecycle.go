// FILE: logship/src/internal/lifecycle/lifecycle.go
package lifecycle

import (
	"sync"

	"github.com/lixenwraith/log"
)

// Event is a host process lifecycle transition.
type Event int

const (
	// EventResignActive means the process is about to lose the foreground.
	EventResignActive Event = iota + 1

	// EventTerminate means the process is about to exit.
	EventTerminate
)

func (e Event) String() string {
	switch e {
	case EventResignActive:
		return "resign_active"
	case EventTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

// Notifier delivers lifecycle events to subscribers.
type Notifier interface {
	Subscribe(fn func(Event)) Subscription
}

// Subscription is the handle returned by Subscribe.
type Subscription interface {
	Unsubscribe()
}

// Hub is an in-process Notifier. Handlers run synchronously on the
// publishing goroutine and must not block.
type Hub struct {
	mu       sync.RWMutex
	handlers map[uint64]func(Event)
	nextID   uint64
	logger   *log.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		handlers: make(map[uint64]func(Event)),
		logger:   logger,
	}
}

// Subscribe registers fn until the returned subscription is removed.
func (h *Hub) Subscribe(fn func(Event)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.handlers[id] = fn

	return &subscription{hub: h, id: id}
}

// Publish delivers ev to every current subscriber.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	handlers := make([]func(Event), 0, len(h.handlers))
	for _, fn := range h.handlers {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	h.logger.Debug("msg", "Publishing lifecycle event",
		"component", "lifecycle",
		"event", ev.String(),
		"subscribers", len(handlers))

	for _, fn := range handlers {
		fn(ev)
	}
}

// Subscribers returns the number of active subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

type subscription struct {
	hub  *Hub
	id   uint64
	once sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.handlers, s.id)
		s.hub.mu.Unlock()
	})
}
