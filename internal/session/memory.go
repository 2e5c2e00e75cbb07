package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	questionCode string
	expiresAt    time.Time
}

// MemoryStore is an in-process Store with TTL expiry. Suitable for a single
// server; state is discarded on restart, which only costs players a
// re-entered question code.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	stop chan struct{}
	once sync.Once
}

// NewMemoryStore creates an in-memory session store. Entries older than ttl
// are treated as absent and periodically removed by a background sweep.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Get returns the pending question code, or "" if absent or expired
func (s *MemoryStore) Get(ctx context.Context, playerID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[playerID]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.questionCode, nil
}

// Set records the pending question code, resetting the TTL
func (s *MemoryStore) Set(ctx context.Context, playerID, questionCode string) error {
	s.mu.Lock()
	s.entries[playerID] = memoryEntry{
		questionCode: questionCode,
		expiresAt:    time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Clear removes the pending question entry
func (s *MemoryStore) Clear(ctx context.Context, playerID string) error {
	s.mu.Lock()
	delete(s.entries, playerID)
	s.mu.Unlock()
	return nil
}

// Close stops the background sweep
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// sweep periodically removes expired entries so the map does not grow with
// one entry per player ever seen
func (s *MemoryStore) sweep() {
	interval := s.ttl
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
