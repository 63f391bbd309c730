// Package events carries change notifications from the write path to live
// subscribers (websocket sessions, AMQP fan-out). Derivation stays in
// internal/core; the hub only says "something of yours changed, recompute".
package events

import (
	"sync"
	"time"
)

// Kind names the record collection a change belongs to.
type Kind string

const (
	KindExpenses   Kind = "expenses"
	KindWallet     Kind = "wallet"
	KindCategories Kind = "categories"
	KindIncomes    Kind = "incomes"
)

// Event is one committed change, scoped to a single owner. Events for
// different owners never reach each other's subscribers.
type Event struct {
	OwnerID string    `json:"owner_id"`
	Kind    Kind      `json:"kind"`
	Op      string    `json:"op"` // create | update | delete
	ID      string    `json:"id,omitempty"`
	At      time.Time `json:"at"`
}

// Hub is an in-process observable with explicit unsubscribe handles. After
// the returned cancel function runs, no further events are delivered on the
// channel; a stale subscription leaking another session's data after an
// account switch would be a correctness bug, not a resource leak.
type Hub struct {
	mu     sync.Mutex
	subs   map[string]map[int]chan Event
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[int]chan Event)}
}

// Subscribe returns a buffered event channel for one owner and the handle
// that tears it down. The channel is closed on unsubscribe and on hub close.
func (h *Hub) Subscribe(ownerID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 16)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	if h.subs[ownerID] == nil {
		h.subs[ownerID] = make(map[int]chan Event)
	}
	h.subs[ownerID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if owner, ok := h.subs[ownerID]; ok {
				if sub, ok := owner[id]; ok {
					delete(owner, id)
					if len(owner) == 0 {
						delete(h.subs, ownerID)
					}
					close(sub)
				}
			}
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber of its owner. Slow consumers
// with a full buffer miss the event rather than blocking the write path; a
// missed notification only delays a recompute until the next one.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs[e.OwnerID] {
		select {
		case ch <- e:
		default:
		}
	}
}

// Close tears down every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for owner, subs := range h.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(h.subs, owner)
	}
}
