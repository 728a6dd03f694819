/*
session.go - Server-side drill-down sessions

PURPOSE:
  Holds each session's per-board Selection so multiple analysts can drill
  into the same shared datasets independently. Sessions carry only
  selection state - datasets are owned by the hub and shared read-only, so
  a refresh is immediately visible to every session.

LIFETIME:
  Sessions are created on first touch and expire after a TTL of
  inactivity; expired sessions are pruned lazily on access. Losing a
  session loses nothing but the drill-down position.
*/
package api

import (
	"sync"
	"time"

	"github.com/warp/config-ops-hub/engine"
)

const sessionTTL = 2 * time.Hour

type session struct {
	selections map[string]*engine.Selection // by domain id
	lastSeen   time.Time
}

// Sessions is a concurrency-safe session registry.
type Sessions struct {
	mu   sync.Mutex
	byID map[string]*session
	now  func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		byID: make(map[string]*session),
		now:  time.Now,
	}
}

// Selection returns a copy of the session's selection for one board. An
// unknown session or board yields the zero selection.
func (s *Sessions) Selection(sid, domain string) engine.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[sid]
	if !ok {
		return engine.Selection{}
	}
	sess.lastSeen = s.now()
	if sel := sess.selections[domain]; sel != nil {
		return *sel
	}
	return engine.Selection{}
}

// Set applies one selection field for a board, creating the session on
// first touch. Later-ordered fields are cleared per the drill-down
// invariant.
func (s *Sessions) Set(sid, domain string, field engine.SelectionField, value string) engine.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(sid)
	sel := sess.selections[domain]
	if sel == nil {
		sel = &engine.Selection{}
		sess.selections[domain] = sel
	}
	sel.Set(field, value)
	return *sel
}

// Reset clears one board's selection, or every board's when domain is
// empty.
func (s *Sessions) Reset(sid, domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.touch(sid)
	if domain == "" {
		sess.selections = make(map[string]*engine.Selection)
		return
	}
	delete(sess.selections, domain)
}

// All returns every board selection held by a session.
func (s *Sessions) All(sid string) map[string]engine.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]engine.Selection)
	sess, ok := s.byID[sid]
	if !ok {
		return out
	}
	sess.lastSeen = s.now()
	for domain, sel := range sess.selections {
		out[domain] = *sel
	}
	return out
}

// touch returns the live session, creating it if needed, and prunes
// expired peers while it holds the lock.
func (s *Sessions) touch(sid string) *session {
	now := s.now()
	for id, sess := range s.byID {
		if now.Sub(sess.lastSeen) > sessionTTL {
			delete(s.byID, id)
		}
	}

	sess, ok := s.byID[sid]
	if !ok {
		sess = &session{selections: make(map[string]*engine.Selection)}
		s.byID[sid] = sess
	}
	sess.lastSeen = now
	return sess
}
