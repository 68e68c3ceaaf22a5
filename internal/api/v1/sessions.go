package v1

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	expiresAt time.Time
}

type sessionStore struct {
	mu    sync.Mutex
	items map[string]session
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		items: make(map[string]session),
	}
}

func (s *sessionStore) put(ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.purgeExpiredLocked(time.Now())

	token = uuid.NewString()
	s.items[token] = session{
		expiresAt: time.Now().Add(ttl),
	}
	return token
}

func (s *sessionStore) valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.items[token]
	if !ok {
		return false
	}
	if time.Now().After(v.expiresAt) {
		delete(s.items, token)
		return false
	}
	return true
}

func (s *sessionStore) delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, token)
}

func (s *sessionStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}
