// Package session holds per-browser-session state in memory.
//
// Each session owns exactly one state slot: the latest generated question
// plus its reveal flags. State survives page re-renders but deliberately
// not a process restart; nothing here touches durable storage.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/albertyip/dsedrill/internal/model"
)

// DefaultTTL is how long an idle session is kept before pruning.
const DefaultTTL = 24 * time.Hour

type entry struct {
	state    *model.SessionState
	lastSeen time.Time
}

// Store maps opaque session tokens to their SessionState.
// Safe for concurrent use across sessions; within one session the
// controller processes one trigger at a time.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration

	now func() time.Time // overridable in tests
}

// NewStore creates an empty session store with the given idle TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create allocates a fresh session with all-empty state and returns its token.
func (s *Store) Create() (string, *model.SessionState, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}

	state := &model.SessionState{}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	s.sessions[token] = &entry{state: state, lastSeen: s.now()}
	return token, state, nil
}

// Get returns the state for a token, refreshing its idle timer.
// Returns (nil, false) for unknown or expired tokens.
func (s *Store) Get(token string) (*model.SessionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()

	e, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.state, true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune()
	return len(s.sessions)
}

// prune drops sessions idle past the TTL. Caller holds the lock.
func (s *Store) prune() {
	cutoff := s.now().Add(-s.ttl)
	for token, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, token)
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
