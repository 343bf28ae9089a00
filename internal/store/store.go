package store

import "sync"

// Listener observes every dispatched action together with the snapshot it
// produced. Listeners see actions in the order they were applied; they run
// outside the state lock but must not Dispatch themselves.
type Listener func(a Action, next State)

// Store is the single owner of the dashboard state.
type Store struct {
	// dispatchMu orders reduce+notify; mu only guards state for readers.
	dispatchMu sync.Mutex
	mu         sync.RWMutex
	state      State
	listeners  []Listener
}

func New() *Store {
	return &Store{state: Initial()}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and returns the resulting snapshot.
func (s *Store) Dispatch(a Action) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	listeners := s.listeners
	s.mu.Unlock()

	for _, l := range listeners {
		l(a, next)
	}
	return next
}

func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(append([]Listener{}, s.listeners...), l)
}

