package application

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"storelens-shopify-sync/internal/domain"
)

// SessionTTL bounds how long an OAuth handshake may take before the state
// value expires.
const SessionTTL = 10 * time.Minute

// SessionStore holds in-flight OAuth sessions keyed by state. Sessions are
// single-use: Take removes them. In-memory is fine here since the callback
// lands on the same process that started the flow.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

// Put stores the session under a freshly generated state value and returns
// that value. Expired leftovers are swept on each call.
func (s *SessionStore) Put(session domain.Session) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	session.State = state
	session.ExpiresAt = time.Now().Add(SessionTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range s.sessions {
		if time.Now().After(v.ExpiresAt) {
			delete(s.sessions, k)
		}
	}
	s.sessions[state] = session
	return state, nil
}

// Take returns and removes the session for the state, or false when it is
// unknown or expired.
func (s *SessionStore) Take(state string) (domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[state]
	if !ok {
		return domain.Session{}, false
	}
	delete(s.sessions, state)
	if time.Now().After(session.ExpiresAt) {
		return domain.Session{}, false
	}
	return session, true
}
