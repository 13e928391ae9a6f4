package session

import (
	"context"
	"sync"
	"time"

	"github.com/dkerr/reelcart/internal/utils"
)

// MemoryStore is a process-local Store. It backs the service when Redis
// is unavailable (sessions then do not survive restarts and are not shared
// between instances) and is the store handlers are tested against.
type MemoryStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]entry
}

// NewMemoryStore builds an empty MemoryStore with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]entry),
	}
}

// Create issues a fresh opaque token bound to the user id.
func (s *MemoryStore) Create(ctx context.Context, userID uint64) (string, error) {
	token, err := utils.NewSessionToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = entry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

// Resolve returns the bound user id. Expired entries are removed lazily.
func (s *MemoryStore) Resolve(ctx context.Context, token string) (uint64, error) {
	s.mu.RLock()
	e, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return 0, ErrNoSession
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, ErrNoSession
	}
	// slide the expiry on activity, matching the Redis store
	s.mu.Lock()
	s.sessions[token] = entry{userID: e.userID, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return e.userID, nil
}

// Destroy removes the binding. Unknown tokens are ignored.
func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}
