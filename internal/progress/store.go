// Package progress persists per-learner navigation progress, quiz
// statistics, mastered vocabulary and the study log over a key-value
// backend. Reads never fail: missing or unreadable data yields the zero
// record. Writes are best effort and only logged on failure.
package progress

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Z4rru/hangulmastery/internal/quiz"
)

// Storage keys. The values are JSON documents.
const (
	ProgressKey = "korean-master-progress"
	StatsKey    = "kr-quiz-stats"
	MasteredKey = "kr-mastered"
	StudyLogKey = "kr-study-log"
)

// Backend is the raw key-value store, partitioned by learner.
type Backend interface {
	Get(ctx context.Context, learnerID, key string) ([]byte, bool, error)
	Put(ctx context.Context, learnerID, key string, value []byte) error
}

// Record is the navigation progress record.
type Record struct {
	Visited     map[string]bool `json:"visited"`
	TotalVisits int             `json:"totalVisits"`
}

// Explored counts how many of sections have been visited.
func (r Record) Explored(sections []string) int {
	n := 0
	for _, s := range sections {
		if r.Visited[s] {
			n++
		}
	}
	return n
}

// QuizStats accumulates answers across sessions.
type QuizStats struct {
	TotalQuizzes  int `json:"totalQuizzes"`
	TotalCorrect  int `json:"totalCorrect"`
	TotalAnswered int `json:"totalAnswered"`
	PerfectScores int `json:"perfectScores"`
}

// Store is the typed service over a Backend.
type Store struct {
	backend  Backend
	log      *zap.Logger
	now      func() time.Time
	sections []string

	// serializes read-modify-write cycles
	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for swallowed persistence errors.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock overrides time.Now for the study log.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a store. sections lists the section keys that count
// as visits; anything else, including home, is ignored by RecordVisit.
func NewStore(backend Backend, sections []string, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		log:      zap.NewNop(),
		now:      time.Now,
		sections: slices.Clone(sections),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sections returns the countable section keys.
func (s *Store) Sections() []string {
	return slices.Clone(s.sections)
}

// load decodes key into a fresh T. Any failure yields the zero T.
func load[T any](ctx context.Context, s *Store, learnerID, key string) T {
	var zero T
	raw, ok, err := s.backend.Get(ctx, learnerID, key)
	if err != nil {
		s.log.Warn("progress read failed, using default",
			zap.String("learner", learnerID), zap.String("key", key), zap.Error(err))
		return zero
	}
	if !ok || len(raw) == 0 {
		return zero
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Warn("stored progress is malformed, using default",
			zap.String("learner", learnerID), zap.String("key", key), zap.Error(err))
		return zero
	}
	return v
}

func (s *Store) save(ctx context.Context, learnerID, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error("progress encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.Put(ctx, learnerID, key, raw); err != nil {
		s.log.Warn("progress write failed",
			zap.String("learner", learnerID), zap.String("key", key), zap.Error(err))
	}
}

// LoadProgress returns the learner's navigation record.
func (s *Store) LoadProgress(ctx context.Context, learnerID string) Record {
	r := load[Record](ctx, s, learnerID, ProgressKey)
	if r.Visited == nil {
		r.Visited = map[string]bool{}
	}
	if r.TotalVisits < 0 {
		r.TotalVisits = 0
	}
	return r
}

// RecordVisit marks section visited and bumps the visit counter. Visits to
// sections outside the countable set leave the record unchanged.
func (s *Store) RecordVisit(ctx context.Context, learnerID, section string) Record {
	if !slices.Contains(s.sections, section) {
		return s.LoadProgress(ctx, learnerID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.LoadProgress(ctx, learnerID)
	r.Visited[section] = true
	r.TotalVisits++
	s.save(ctx, learnerID, ProgressKey, r)
	s.touch(ctx, learnerID)
	return r
}

// LoadQuizStats returns the learner's quiz statistics.
func (s *Store) LoadQuizStats(ctx context.Context, learnerID string) QuizStats {
	st := load[QuizStats](ctx, s, learnerID, StatsKey)
	st.TotalQuizzes = max(st.TotalQuizzes, 0)
	st.TotalCorrect = max(st.TotalCorrect, 0)
	st.TotalAnswered = max(st.TotalAnswered, 0)
	st.PerfectScores = max(st.PerfectScores, 0)
	return st
}

// RecordAnswer folds one answer into the statistics.
func (s *Store) RecordAnswer(ctx context.Context, learnerID string, ev quiz.AnswerEvent) QuizStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.LoadQuizStats(ctx, learnerID)
	st.TotalAnswered++
	if ev.Correct {
		st.TotalCorrect++
	}
	if ev.Completed {
		st.TotalQuizzes++
	}
	if ev.Perfect {
		st.PerfectScores++
	}
	s.save(ctx, learnerID, StatsKey, st)
	s.touch(ctx, learnerID)
	return st
}

// Recorder adapts the store to quiz.StatsRecorder for one learner.
func (s *Store) Recorder(learnerID string) quiz.StatsRecorder {
	return recorder{s: s, learner: learnerID}
}

type recorder struct {
	s       *Store
	learner string
}

func (r recorder) RecordAnswer(ctx context.Context, ev quiz.AnswerEvent) {
	r.s.RecordAnswer(ctx, r.learner, ev)
}

// LoadMastered returns the mastered headwords, sorted.
func (s *Store) LoadMastered(ctx context.Context, learnerID string) []string {
	return normalizeSet(load[[]string](ctx, s, learnerID, MasteredKey))
}

// ToggleMastered flips word in the mastered set and reports whether it is
// now mastered.
func (s *Store) ToggleMastered(ctx context.Context, learnerID, word string) ([]string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	words := s.LoadMastered(ctx, learnerID)
	i, found := slices.BinarySearch(words, word)
	if found {
		words = slices.Delete(words, i, i+1)
	} else {
		words = slices.Insert(words, i, word)
	}
	s.save(ctx, learnerID, MasteredKey, words)
	return words, !found
}

func normalizeSet(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
