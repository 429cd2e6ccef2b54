package server

import (
	"sync"
	"time"
)

// DefaultStateTTL is how long an OAuth state token stays redeemable.
const DefaultStateTTL = 10 * time.Minute

// stateCleanupInterval is how often expired entries are swept.
const stateCleanupInterval = time.Minute

type stateEntry struct {
	identity  string
	expiresAt time.Time
}

// StateStore maps OAuth state tokens to the identity that started the
// flow. Entries expire so an abandoned flow cannot be replayed later.
type StateStore struct {
	mu      sync.Mutex
	entries map[string]stateEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

// NewStateStore creates a store and starts its cleanup loop. Call Stop
// when the server shuts down.
func NewStateStore(ttl time.Duration) *StateStore {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	s := &StateStore{
		entries: make(map[string]stateEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Put registers a state token for an identity.
func (s *StateStore) Put(state, identity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[state] = stateEntry{
		identity:  identity,
		expiresAt: time.Now().Add(s.ttl),
	}
}

// Consume redeems a state token exactly once, returning the identity that
// started the flow. Expired or unknown tokens fail.
func (s *StateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[state]
	if !ok {
		return "", false
	}
	delete(s.entries, state)

	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.identity, true
}

// Len returns the number of live entries.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stop ends the cleanup loop. Safe to call more than once.
func (s *StateStore) Stop() {
	s.once.Do(func() { close(s.done) })
}

func (s *StateStore) cleanupLoop() {
	ticker := time.NewTicker(stateCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for state, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, state)
				}
			}
			s.mu.Unlock()
		}
	}
}
