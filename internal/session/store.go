// Package session keeps the playback engines of active readers in memory.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/kylemclaren/speed-reader/internal/playback"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrCapacity = errors.New("too many active sessions")
)

// Session pairs a playback engine with its bookkeeping.
type Session struct {
	ID        string
	CreatedAt time.Time
	Engine    *playback.Engine

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

// LastSeen is the last time the session was looked up.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// View is the JSON form of a session: its identity plus the engine snapshot.
type View struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
	playback.Snapshot
}

func (s *Session) View() View {
	return View{ID: s.ID, CreatedAt: s.CreatedAt, Snapshot: s.Engine.Snapshot()}
}

// Store is a thread-safe session registry. Sessions not looked up within
// ttl are evicted, and evicting or deleting a session closes its engine.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewStore returns a store holding at most maxSessions sessions; zero or
// less means no limit.
func NewStore(ttl time.Duration, maxSessions int) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

// Put registers sess. Expired sessions are evicted first; ErrCapacity is
// returned if the store is still full.
func (s *Store) Put(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if s.max > 0 && len(s.sessions) >= s.max {
		s.evictLocked(now)
		if len(s.sessions) >= s.max {
			return ErrCapacity
		}
	}
	sess.touch(now)
	s.sessions[sess.ID] = sess
	return nil
}

// Get returns the session and refreshes its TTL.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(sess, now) {
		s.removeLocked(sess)
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.removeLocked(sess)
	return nil
}

// Cleanup removes expired sessions and reports how many were removed.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(s.now())
}

// CloseAll removes every session.
func (s *Store) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		s.removeLocked(sess)
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.LastSeen()) > s.ttl
}

func (s *Store) evictLocked(now time.Time) int {
	n := 0
	for _, sess := range s.sessions {
		if s.expired(sess, now) {
			s.removeLocked(sess)
			n++
		}
	}
	return n
}

func (s *Store) removeLocked(sess *Session) {
	delete(s.sessions, sess.ID)
	sess.Engine.Close()
}
