// Package session holds finished debate results in memory so the
// transport layer can serve them after the run completes. The store
// replaces ad-hoc global maps with an explicit, TTL-evicting
// abstraction passed into whoever needs it.
package session

import (
	"sync"
	"time"

	"github.com/nexusdebate/internal/debate"
)

// Record is one stored debate outcome.
type Record struct {
	Context   *debate.Context
	Failed    bool
	Error     string
	CreatedAt time.Time
}

// Store is a TTL-based in-memory session store, safe for concurrent
// debates. Records are evicted by a janitor goroutine once they
// outlive the TTL.
type Store struct {
	ttl time.Duration

	mu      sync.RWMutex
	records map[string]*Record

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store and starts its eviction janitor.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		ttl:     ttl,
		records: make(map[string]*Record),
		stop:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Put stores a debate result under its session id.
func (s *Store) Put(sessionID string, record *Record) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[sessionID] = record
}

// Get returns the record for a session id.
func (s *Store) Get(sessionID string) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[sessionID]
	return record, ok
}

// Delete removes a session explicitly.
func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close stops the eviction janitor.
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) janitor() {
	interval := s.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.evictExpired()
		case <-s.stop:
			return
		}
	}
}

func (s *Store) evictExpired() {
	cutoff := time.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, record := range s.records {
		if record.CreatedAt.Before(cutoff) {
			delete(s.records, id)
		}
	}
}
