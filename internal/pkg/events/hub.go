package events

import (
	"sync"
)

// Event carries one domain event to in-process subscribers, keyed by the
// employee it concerns. Notification and rendering collaborators subscribe;
// publishing never blocks, so a slow consumer cannot hold up a committed
// workflow transition.
type Event struct {
	EmployeeID string
	Name       string
	Data       interface{}
}

// Hub manages subscribers and event broadcasting.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for an employee and returns the
// event channel and a cleanup function.
func (h *Hub) Subscribe(employeeID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[employeeID], ch)
		close(ch)
		if len(h.subscribers[employeeID]) == 0 {
			delete(h.subscribers, employeeID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of an employee. Full channels
// are skipped rather than blocked on.
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for an employee.
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[employeeID]; ok {
		return len(subs)
	}
	return 0
}
