package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

const subscriberBuffer = 16

// Hub fans out newly persisted chat messages to live subscribers, one
// channel set per pregnancy. Slow subscribers drop messages instead of
// blocking the sender.
type Hub struct {
	mu   sync.Mutex
	subs map[uuid.UUID]map[chan domain.ChatMessage]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[chan domain.ChatMessage]struct{})}
}

// Subscribe registers a listener for one pregnancy's messages. The returned
// cancel func must be called to release the channel.
func (h *Hub) Subscribe(pregnancyID uuid.UUID) (<-chan domain.ChatMessage, func()) {
	ch := make(chan domain.ChatMessage, subscriberBuffer)

	h.mu.Lock()
	set, ok := h.subs[pregnancyID]
	if !ok {
		set = make(map[chan domain.ChatMessage]struct{})
		h.subs[pregnancyID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[pregnancyID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, pregnancyID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *Hub) Publish(msg domain.ChatMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[msg.PregnancyID] {
		select {
		case ch <- msg:
		default:
		}
	}
}
