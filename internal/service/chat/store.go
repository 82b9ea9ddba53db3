package chat

import (
	"sync"

	"github.com/acadassist/widget/internal/model/chat"
)

// Update describes one atomic append to the store.
type Update struct {
	Appended []chat.Turn
	Total    int
}

// Listener observes store updates. Listeners run synchronously in append
// order and must not append to the store they observe.
type Listener func(Update)

// Store holds the ordered chat history of one widget session. It is
// append-only; history lives as long as the store does.
type Store struct {
	// notifyMu serializes append+notify so listeners see updates in order.
	notifyMu sync.Mutex

	mu        sync.RWMutex
	turns     []chat.Turn
	listeners map[int]Listener
	nextID    int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		turns:     make([]chat.Turn, 0, 16),
		listeners: make(map[int]Listener),
	}
}

// Append adds turns as a single update and notifies listeners once. Appending
// nothing is a no-op and does not notify.
func (s *Store) Append(turns ...chat.Turn) int {
	if len(turns) == 0 {
		return s.Len()
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	s.turns = append(s.turns, turns...)
	total := len(s.turns)
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	update := Update{
		Appended: append([]chat.Turn(nil), turns...),
		Total:    total,
	}
	for _, fn := range listeners {
		fn(update)
	}
	return total
}

// Turns returns a copy of the history in append order.
func (s *Store) Turns() []chat.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Turn, len(s.turns))
	copy(copied, s.turns)
	return copied
}

// Len returns the number of stored turns.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
