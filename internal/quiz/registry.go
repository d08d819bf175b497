package quiz

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session survives.
const DefaultIdleTTL = 30 * time.Minute

// QuestionView is a question as shown to the learner. CorrectIndex and
// Explanation are only filled in once the question is revealed.
type QuestionView struct {
	Prompt       string   `json:"prompt"`
	Subtext      string   `json:"subtext,omitempty"`
	Options      []string `json:"options"`
	Tag          string   `json:"tag"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
	Explanation  string   `json:"explanation,omitempty"`
}

// SessionView is the serializable state of a session.
type SessionView struct {
	ID       string        `json:"id"`
	Mode     Mode          `json:"mode,omitempty"`
	State    State         `json:"state"`
	Index    int           `json:"index"`
	Total    int           `json:"total"`
	Score    int           `json:"score"`
	Picked   *int          `json:"picked,omitempty"`
	Question *QuestionView `json:"question,omitempty"`
	Result   *Result       `json:"result,omitempty"`
}

// View snapshots the session without leaking unrevealed answers.
func (s *Session) View() SessionView {
	v := SessionView{
		ID:    s.ID,
		Mode:  s.Mode,
		State: s.State,
		Index: s.Index,
		Total: len(s.Questions),
		Score: s.Score,
	}

	if q, ok := s.Current(); ok {
		qv := &QuestionView{
			Prompt:  q.Prompt,
			Subtext: q.Subtext,
			Options: q.Options,
			Tag:     q.Tag,
		}
		if s.State == StateRevealed {
			idx, picked := q.CorrectIndex, s.Picked
			qv.CorrectIndex = &idx
			qv.Explanation = q.Explanation
			v.Picked = &picked
		}
		v.Question = qv
	}

	if s.State == StateFinished {
		r := s.Result()
		v.Result = &r
	}
	return v
}

// RecorderFunc resolves the stats recorder for a learner.
type RecorderFunc func(learnerID string) StatsRecorder

// Registry holds live sessions keyed by id. Each session belongs to one
// learner; lookups by any other learner report ErrSessionNotFound.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	gen       *Generator
	recorders RecorderFunc
	ttl       time.Duration
	now       func() time.Time
}

// entry serializes work on one session so learners never queue behind
// each other's statistics writes.
type entry struct {
	mu      sync.Mutex
	s       *Session
	touched atomic.Int64 // unix nanos
}

func (e *entry) touch(t time.Time) { e.touched.Store(t.UnixNano()) }

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithIdleTTL overrides DefaultIdleTTL.
func WithIdleTTL(d time.Duration) RegistryOption {
	return func(r *Registry) { r.ttl = d }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// NewRegistry creates an empty registry.
func NewRegistry(gen *Generator, recorders RecorderFunc, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions:  make(map[string]*entry),
		gen:       gen,
		recorders: recorders,
		ttl:       DefaultIdleTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a new session for learnerID in mode.
func (r *Registry) Create(learnerID string, mode Mode) (SessionView, error) {
	var rec StatsRecorder
	if r.recorders != nil {
		rec = r.recorders(learnerID)
	}
	s := NewSession(r.gen, rec)
	if err := s.Start(mode); err != nil {
		return SessionView{}, err
	}
	s.ID = uuid.NewString()
	s.LearnerID = learnerID

	e := &entry{s: s}
	e.touch(r.now())

	r.mu.Lock()
	r.sessions[s.ID] = e
	r.mu.Unlock()
	return s.View(), nil
}

func (r *Registry) lookup(id, learnerID string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || e.s.LearnerID != learnerID {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// Do runs fn against the learner's session under that session's lock and
// returns the resulting view. Other sessions are not blocked meanwhile.
func (r *Registry) Do(id, learnerID string, fn func(*Session) error) (SessionView, error) {
	e, err := r.lookup(id, learnerID)
	if err != nil {
		return SessionView{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if fn != nil {
		if err := fn(e.s); err != nil {
			return e.s.View(), err
		}
	}
	e.touch(r.now())
	return e.s.View(), nil
}

// Get returns the current view of a session.
func (r *Registry) Get(id, learnerID string) (SessionView, error) {
	return r.Do(id, learnerID, nil)
}

// Answer submits an option for the current question.
func (r *Registry) Answer(ctx context.Context, id, learnerID string, option int) (Feedback, SessionView, error) {
	var fb Feedback
	view, err := r.Do(id, learnerID, func(s *Session) error {
		var err error
		// the answer is final once accepted; record it even if the caller left
		fb, err = s.Answer(context.WithoutCancel(ctx), option)
		return err
	})
	return fb, view, err
}

// Next advances a revealed session.
func (r *Registry) Next(id, learnerID string) (SessionView, error) {
	return r.Do(id, learnerID, func(s *Session) error { return s.Next() })
}

// Restart regenerates the session's question set in the same mode.
func (r *Registry) Restart(id, learnerID string) (SessionView, error) {
	return r.Do(id, learnerID, func(s *Session) error { return s.Restart() })
}

// Delete drops a session.
func (r *Registry) Delete(id, learnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok || e.s.LearnerID != learnerID {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and reports how many
// were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.ttl).UnixNano()
	n := 0
	for id, e := range r.sessions {
		if e.touched.Load() < cutoff {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
