package client

import "sync"

// Session holds the state of one signed-in user: the identity email and
// the locally cached summary. It starts empty, is populated by the
// sign-in flow and is discarded when the session ends. The store remains
// authoritative; this is a best-effort local view.
type Session struct {
	mu    sync.RWMutex
	email string
	cache SummaryCache
}

func NewSession(cache SummaryCache) *Session {
	if cache == nil {
		cache = NewMemoryCache()
	}
	return &Session{cache: cache}
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
}

func (s *Session) Cache() SummaryCache {
	return s.cache
}
