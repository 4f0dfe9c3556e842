// Package sse implements the live-update channel: every tenant has a room
// keyed by company ID, and attendance/leave mutations are broadcast to it.
package sse

import (
	"sync"
)

// Event is one message pushed to a tenant room.
type Event struct {
	CompanyID string
	Name      string
	Data      interface{}
}

// Hub fans events out to all subscribers of a tenant room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe joins the tenant room and returns the event channel plus a
// cleanup function the caller must invoke when the connection closes.
func (h *Hub) Subscribe(companyID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)

	if h.rooms[companyID] == nil {
		h.rooms[companyID] = make(map[chan Event]struct{})
	}
	h.rooms[companyID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.rooms[companyID], ch)
		close(ch)
		if len(h.rooms[companyID]) == 0 {
			delete(h.rooms, companyID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber in the tenant room. Slow
// subscribers are skipped rather than blocking the publisher.
func (h *Hub) Publish(companyID string, name string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	subs, ok := h.rooms[companyID]
	if !ok {
		return
	}

	event := Event{CompanyID: companyID, Name: name, Data: data}
	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// RoomSize returns the number of active subscribers for a tenant.
func (h *Hub) RoomSize(companyID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[companyID])
}

// TotalSubscribers returns the number of active subscribers across tenants.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.rooms {
		total += len(subs)
	}
	return total
}
