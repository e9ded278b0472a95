// Package spectate streams live game snapshots to read-only viewers over
// HTTP and WebSocket.
package spectate

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// DefaultBuffer is the per-subscriber queue length.
const DefaultBuffer = 8

// Hub fans snapshots out to subscribers. Publish never blocks: a
// subscriber whose queue is full loses its oldest pending snapshot.
type Hub struct {
	mu     sync.RWMutex
	latest snake.Snapshot
	has    bool
	subs   map[string]chan snake.Snapshot
	buffer int
}

// NewHub creates a hub with the given per-subscriber queue length.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		subs:   make(map[string]chan snake.Snapshot),
		buffer: buffer,
	}
}

// Publish records snap as the latest state and offers it to every
// subscriber.
func (h *Hub) Publish(snap snake.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = snap
	h.has = true
	for _, ch := range h.subs {
		offer(ch, snap)
	}
}

func offer(ch chan snake.Snapshot, snap snake.Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		// Full: drop the oldest and retry.
		select {
		case <-ch:
		default:
		}
	}
}

// Latest returns the most recently published snapshot.
func (h *Hub) Latest() (snake.Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest, h.has
}

// Subscribe registers a new spectator. The returned cancel func removes it
// and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (string, <-chan snake.Snapshot, func()) {
	id := uuid.NewString()
	ch := make(chan snake.Snapshot, h.buffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return id, ch, cancel
}

// Count returns the number of active subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
