package handlers

import (
	"sync"
	"time"

	"astrobot/internal/astro"
)

// ConvState is the position of a chat in the birth date conversation.
type ConvState int

const (
	// StateNone means no birth date conversation is in progress.
	StateNone ConvState = iota
	// StateAwaitingDay waits for the day of the month.
	StateAwaitingDay
	// StateAwaitingMonth waits for the month number or name.
	StateAwaitingMonth
	// StateAwaitingYear waits for the four-digit year.
	StateAwaitingYear
)

// CompatPending is the single-field marker set while a compatibility check
// waits for the partner's date. It carries the first person's values so the
// second message can be scored without another profile lookup.
type CompatPending struct {
	Sign     astro.Sign
	LifePath int
}

// session is the ephemeral per-chat accumulator for the day/month/year flow
// and the pending compatibility marker. It is never persisted; expiry or
// cancellation discards it without touching the database.
type session struct {
	state     ConvState
	day       int
	month     int
	compat    *CompatPending
	touchedAt time.Time
}

// Sessions tracks in-progress conversations per chat. Entries expire after
// the configured inactivity timeout; expired sessions behave exactly like
// ones that never started.
type Sessions struct {
	mu  sync.Mutex
	m   map[int64]*session
	ttl time.Duration
	now func() time.Time
}

// NewSessions creates a session tracker with the given inactivity timeout.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		m:   make(map[int64]*session),
		ttl: ttl,
		now: time.Now,
	}
}

// get returns the live session for a chat, dropping it first if expired.
// Callers must hold s.mu.
func (s *Sessions) get(chatID int64) *session {
	sess, ok := s.m[chatID]
	if !ok {
		return nil
	}
	if s.now().Sub(sess.touchedAt) > s.ttl {
		delete(s.m, chatID)
		return nil
	}
	return sess
}

// touch refreshes the inactivity clock. Callers must hold s.mu.
func (s *Sessions) touch(sess *session) {
	sess.touchedAt = s.now()
}

// State returns the chat's current conversation state.
func (s *Sessions) State(chatID int64) ConvState {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil {
		return StateNone
	}
	return sess.state
}

// BeginDOB starts (or restarts) the birth date flow for a chat. Any
// previously accumulated values are discarded.
func (s *Sessions) BeginDOB(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil {
		sess = &session{}
		s.m[chatID] = sess
	}
	sess.state = StateAwaitingDay
	sess.day = 0
	sess.month = 0
	s.touch(sess)
}

// SetDay records the day and advances to the month step.
func (s *Sessions) SetDay(chatID int64, day int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil || sess.state != StateAwaitingDay {
		return
	}
	sess.day = day
	sess.state = StateAwaitingMonth
	s.touch(sess)
}

// SetMonth records the month and advances to the year step.
func (s *Sessions) SetMonth(chatID int64, month int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil || sess.state != StateAwaitingMonth {
		return
	}
	sess.month = month
	sess.state = StateAwaitingYear
	s.touch(sess)
}

// Pending returns the accumulated day and month for a chat in the year
// step. ok is false if the conversation is not at that step.
func (s *Sessions) Pending(chatID int64) (day, month int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil || sess.state != StateAwaitingYear {
		return 0, 0, false
	}
	s.touch(sess)
	return sess.day, sess.month, true
}

// Keep refreshes the inactivity clock without changing state, used when a
// step re-prompts after invalid input.
func (s *Sessions) Keep(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess := s.get(chatID); sess != nil {
		s.touch(sess)
	}
}

// Clear discards all conversation state for a chat: the birth date
// accumulator and any pending compatibility marker.
func (s *Sessions) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, chatID)
}

// ClearDOB ends the birth date flow but keeps a pending compatibility
// marker if one exists.
func (s *Sessions) ClearDOB(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil {
		return
	}
	if sess.compat == nil {
		delete(s.m, chatID)
		return
	}
	sess.state = StateNone
	sess.day = 0
	sess.month = 0
	s.touch(sess)
}

// SetCompatPending stores the marker for an awaited compatibility date.
func (s *Sessions) SetCompatPending(chatID int64, pending CompatPending) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil {
		sess = &session{}
		s.m[chatID] = sess
	}
	sess.compat = &pending
	s.touch(sess)
}

// TakeCompatPending returns and clears the pending compatibility marker,
// so every marker is consumed by exactly one attempt.
func (s *Sessions) TakeCompatPending(chatID int64) (CompatPending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(chatID)
	if sess == nil || sess.compat == nil {
		return CompatPending{}, false
	}
	pending := *sess.compat
	sess.compat = nil
	if sess.state == StateNone {
		delete(s.m, chatID)
	} else {
		s.touch(sess)
	}
	return pending, true
}

// Sweep removes all expired sessions and returns how many were dropped.
// The scheduled maintenance task calls this so abandoned conversations do
// not accumulate.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now().Add(-s.ttl)
	for chatID, sess := range s.m {
		if sess.touchedAt.Before(cutoff) {
			delete(s.m, chatID)
			removed++
		}
	}
	return removed
}
