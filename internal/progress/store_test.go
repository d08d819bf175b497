package progress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Z4rru/hangulmastery/internal/quiz"
)

var testSections = []string{"hangul", "vocabulary", "grammar", "culture", "practice", "wellness"}

type failingBackend struct {
	getErr, putErr error
}

func (f failingBackend) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, f.getErr
}

func (f failingBackend) Put(context.Context, string, string, []byte) error {
	return f.putErr
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *MemoryBackend) {
	t.Helper()
	mem := NewMemoryBackend()
	return NewStore(mem, testSections, opts...), mem
}

func TestLoadProgressDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	r := s.LoadProgress(context.Background(), "ana")
	assert.NotNil(t, r.Visited)
	assert.Empty(t, r.Visited)
	assert.Zero(t, r.TotalVisits)
}

func TestRecordVisit(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	s.RecordVisit(ctx, "ana", "hangul")
	s.RecordVisit(ctx, "ana", "hangul")
	r := s.RecordVisit(ctx, "ana", "culture")

	assert.Equal(t, 3, r.TotalVisits)
	assert.Equal(t, map[string]bool{"hangul": true, "culture": true}, r.Visited)
	assert.Equal(t, r, s.LoadProgress(ctx, "ana"), "round trip")

	raw, ok, err := mem.Get(ctx, "ana", ProgressKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"visited":{"hangul":true,"culture":true},"totalVisits":3}`, string(raw))
}

func TestRecordVisitIgnoresHomeAndUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, sec := range []string{"home", "", "settings"} {
		r := s.RecordVisit(ctx, "ana", sec)
		assert.Zero(t, r.TotalVisits, sec)
	}
	assert.Empty(t, s.LoadStudyLog(ctx, "ana").Days, "ignored visits are not study activity")
}

func TestLearnersAreIsolated(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	s.RecordVisit(ctx, "ana", "grammar")
	assert.Zero(t, s.LoadProgress(ctx, "ben").TotalVisits)
}

func TestCorruptDataYieldsDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s, mem := newTestStore(t, WithLogger(zap.New(core)))
	ctx := context.Background()

	tests := []struct {
		key   string
		value string
	}{
		{ProgressKey, `{"visited": "yes", "totalVisits": 4}`},
		{StatsKey, `not json`},
		{MasteredKey, `{"a": 1}`},
		{StudyLogKey, `[1,2,3]`},
	}
	for _, tt := range tests {
		require.NoError(t, mem.Put(ctx, "ana", tt.key, []byte(tt.value)))
	}

	assert.Zero(t, s.LoadProgress(ctx, "ana").TotalVisits)
	assert.Equal(t, QuizStats{}, s.LoadQuizStats(ctx, "ana"))
	assert.Empty(t, s.LoadMastered(ctx, "ana"))
	assert.Equal(t, StudyLog{}, s.LoadStudyLog(ctx, "ana"))
	assert.Equal(t, 4, logs.FilterMessage("stored progress is malformed, using default").Len())

	// a write after corruption starts over from the default
	r := s.RecordVisit(ctx, "ana", "wellness")
	assert.Equal(t, 1, r.TotalVisits)
}

func TestNegativeCountersClamped(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, "ana", StatsKey, []byte(`{"totalQuizzes":-3,"totalCorrect":2}`)))

	st := s.LoadQuizStats(ctx, "ana")
	assert.Zero(t, st.TotalQuizzes)
	assert.Equal(t, 2, st.TotalCorrect)
}

func TestBackendFailuresAreSwallowed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	boom := errors.New("disk full")
	s := NewStore(failingBackend{getErr: boom, putErr: boom}, testSections, WithLogger(zap.New(core)))
	ctx := context.Background()

	r := s.RecordVisit(ctx, "ana", "hangul")
	assert.Equal(t, 1, r.TotalVisits)

	st := s.RecordAnswer(ctx, "ana", quiz.AnswerEvent{Correct: true})
	assert.Equal(t, 1, st.TotalAnswered)

	assert.NotZero(t, logs.FilterMessage("progress read failed, using default").Len())
	assert.NotZero(t, logs.FilterMessage("progress write failed").Len())
}

func TestRecordAnswerAccumulates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	events := []quiz.AnswerEvent{
		{Correct: true},
		{Correct: false},
		{Correct: true, Completed: true},
		{Correct: true},
		{Correct: true, Completed: true, Perfect: true},
	}
	for _, ev := range events {
		s.RecordAnswer(ctx, "ana", ev)
	}

	assert.Equal(t, QuizStats{
		TotalQuizzes:  2,
		TotalCorrect:  4,
		TotalAnswered: 5,
		PerfectScores: 1,
	}, s.LoadQuizStats(ctx, "ana"))
}

func TestRecorderAdaptsSession(t *testing.T) {
	s, _ := newTestStore(t)
	rec := s.Recorder("ana")
	rec.RecordAnswer(context.Background(), quiz.AnswerEvent{Correct: true, Completed: true, Perfect: true})

	st := s.LoadQuizStats(context.Background(), "ana")
	assert.Equal(t, 1, st.PerfectScores)
	assert.Zero(t, s.LoadQuizStats(context.Background(), "ben").TotalAnswered)
}

func TestToggleMastered(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()

	words, on := s.ToggleMastered(ctx, "ana", "사랑")
	assert.True(t, on)
	assert.Equal(t, []string{"사랑"}, words)

	words, on = s.ToggleMastered(ctx, "ana", "가다")
	assert.True(t, on)
	assert.Equal(t, []string{"가다", "사랑"}, words)

	words, on = s.ToggleMastered(ctx, "ana", "사랑")
	assert.False(t, on)
	assert.Equal(t, []string{"가다"}, words)

	raw, _, _ := mem.Get(ctx, "ana", MasteredKey)
	assert.JSONEq(t, `["가다"]`, string(raw))
}

func TestLoadMasteredDedupes(t *testing.T) {
	s, mem := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Put(ctx, "ana", MasteredKey, []byte(`["물","","물","밥"]`)))
	assert.Equal(t, []string{"물", "밥"}, s.LoadMastered(ctx, "ana"))
}

func TestConcurrentAnswers(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordAnswer(ctx, "ana", quiz.AnswerEvent{Correct: true})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.LoadQuizStats(ctx, "ana").TotalAnswered)
}

func TestRecordVisitTouchesStudyLog(t *testing.T) {
	now := time.Date(2026, 5, 4, 23, 15, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	s.RecordVisit(ctx, "ana", "practice")
	l := s.LoadStudyLog(ctx, "ana")
	assert.Equal(t, []string{"2026-05-04"}, l.Days)
	assert.Equal(t, 1, l.BestStreak)
	assert.True(t, l.NightOwl)
}
