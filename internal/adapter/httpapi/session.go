package httpapi

import (
	"net/http"
	"sync"
	"time"

	"ai-forms/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	sessionCookie = "aiforms_session"
	sessionTTL    = 24 * time.Hour
)

type session struct {
	selected  entity.ServiceID
	updatedAt time.Time
}

// SessionStore remembers which service each browser session has selected.
// Entries expire after a day of inactivity.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// ID returns the caller's session id, issuing a cookie when there is none.
func (s *SessionStore) ID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *SessionStore) Selected(id string) (entity.ServiceID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || s.now().Sub(sess.updatedAt) > sessionTTL {
		delete(s.sessions, id)
		return "", false
	}
	return sess.selected, true
}

func (s *SessionStore) Select(id string, svc entity.ServiceID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sessions[id] = &session{selected: svc, updatedAt: now}
	for k, v := range s.sessions {
		if now.Sub(v.updatedAt) > sessionTTL {
			delete(s.sessions, k)
		}
	}
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
