package ui

import (
	"sync"

	"pharmabrand/domain/strategy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "pb_session"

// Session is one visitor's state: the simulated login flag and the
// wizard selection. Lives in memory only; nothing is persisted.
type Session struct {
	LoggedIn  bool
	Selection strategy.Selection
}

// SessionStore keeps per-visitor sessions keyed by a uuid cookie.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Current returns the request's session, creating one (and its cookie)
// on first contact.
func (s *SessionStore) Current(c *gin.Context) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, err := c.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[id]; ok {
			return sess
		}
	}

	id := uuid.NewString()
	sess := &Session{Selection: strategy.NewSelection()}
	s.sessions[id] = sess
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return sess
}
