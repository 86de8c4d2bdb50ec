package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-dynform/pkg/form"
)

// session keeps a live form between the request rendering it and the
// requests submitting it.
type session struct {
	mu       sync.Mutex
	id       string
	key      string
	form     *form.Form
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
	onChange func(active int)
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]*session),
	}
}

// add stores f under a fresh id after dropping expired sessions.
func (s *sessionStore) add(key string, f *form.Form) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweepLocked(now)
	sess := &session{id: uuid.NewString(), key: key, form: f, lastSeen: now}
	s.sessions[sess.id] = sess
	s.changedLocked()
	return sess
}

// get returns the live session for id rendering key.
func (s *sessionStore) get(id, key string) (*session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.key != key {
		return nil, false
	}
	now := s.now()
	if s.expired(sess, now) {
		delete(s.sessions, id)
		s.changedLocked()
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *sessionStore) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		s.changedLocked()
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

func (s *sessionStore) changedLocked() {
	if s.onChange != nil {
		s.onChange(len(s.sessions))
	}
}
