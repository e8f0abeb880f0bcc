package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps session bindings in-process. It is the default backend
// for single-instance deployments; expired entries are dropped lazily on
// lookup and swept opportunistically on writes.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	session   Session
	expiresAt time.Time
}

// NewMemoryStore builds an in-process store. A zero TTL means sessions only
// die on logout.
func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     opts.TTL,
		now:     time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, sess Session) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sweepLocked()
	s.entries[token] = memoryEntry{session: sess, expiresAt: expiresAt}
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !entry.expiresAt.IsZero() && s.now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, nil
	}

	sess := entry.session
	return &sess, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.entries, token)
	s.mu.Unlock()
	return nil
}

// sweepLocked removes expired entries; callers must hold the write lock.
func (s *MemoryStore) sweepLocked() {
	if s.ttl <= 0 {
		return
	}
	now := s.now()
	for token, entry := range s.entries {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(s.entries, token)
		}
	}
}
