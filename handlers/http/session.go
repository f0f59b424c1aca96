package httpHandler

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errSessionNotFound = errors.New("session not found")

type session struct {
	userID    string
	createdAt time.Time
}

// SessionManager keeps track of active login sessions. Tokens are opaque
// and process-local; restarting the server logs everyone out.
type SessionManager struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]session // token -> session
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
}

// Create issues a fresh token for the user.
func (m *SessionManager) Create(userID string) string {
	token := uuid.New().String()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = session{userID: userID, createdAt: time.Now()}
	return token
}

// Lookup resolves a token to its user, dropping expired sessions.
func (m *SessionManager) Lookup(token string) (string, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return "", errSessionNotFound
	}
	if time.Since(s.createdAt) > m.ttl {
		m.Revoke(token)
		return "", errSessionNotFound
	}
	return s.userID, nil
}

// Revoke removes a session; logout calls this.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
