package quiz

import (
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/w0uf/rangetrainer/internal/hands"
)

// Session tracks one quiz run: which abstract hands have already been
// asked, and the running score. The engine itself is stateless; the
// session is owned by the caller and handed into each build call.
type Session struct {
	ID        uuid.UUID
	clock     quartz.Clock
	startedAt time.Time

	used    hands.Set
	Total   int
	Correct int
}

// NewSession starts a session stamped from the given clock.
func NewSession(clock quartz.Clock) *Session {
	return &Session{
		ID:        uuid.New(),
		clock:     clock,
		startedAt: clock.Now(),
		used:      make(hands.Set),
	}
}

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Used returns the set of hands already asked this session. The set
// is live, not a copy.
func (s *Session) Used() hands.Set { return s.used }

// MarkUsed records that a hand has been asked.
func (s *Session) MarkUsed(h hands.Hand) { s.used[h] = true }

// ResetUsed clears the used-hands set, typically once every hand has
// been exhausted.
func (s *Session) ResetUsed() { s.used = make(hands.Set) }

// Record tallies an answered question.
func (s *Session) Record(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Score returns the percentage of correct answers so far.
func (s *Session) Score() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total) * 100
}
