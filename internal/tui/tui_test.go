package tui

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/loader"
	"github.com/Z4rru/hangulmastery/internal/quiz"
	"github.com/Z4rru/hangulmastery/internal/sampling"
	"github.com/Z4rru/hangulmastery/internal/timer"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := loader.Embedded().LoadAll()
	require.NoError(t, err)
	return cat
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

type countingRecorder struct{ answers, completed int }

func (r *countingRecorder) RecordAnswer(_ context.Context, ev quiz.AnswerEvent) {
	r.answers++
	if ev.Completed {
		r.completed++
	}
}

func TestQuizModelFullRun(t *testing.T) {
	cat := testCatalog(t)
	rec := &countingRecorder{}
	var m tea.Model = NewQuizModel(context.Background(), quiz.NewGenerator(cat, sampling.NewRand(5)), rec, "")

	assert.Contains(t, m.View(), "Practice Quiz")

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	qm := m.(QuizModel)
	require.Equal(t, quiz.StateInProgress, qm.Session().State)
	assert.Equal(t, quiz.ModeVocab, qm.Session().Mode)

	for range quiz.SingleSize {
		q, ok := m.(QuizModel).Session().Current()
		require.True(t, ok)
		m, _ = m.Update(key(strconv.Itoa(q.CorrectIndex + 1)))
		require.Equal(t, quiz.StateRevealed, m.(QuizModel).Session().State)
		assert.Contains(t, m.View(), "Correct!")
		m, _ = m.Update(key("enter"))
	}

	require.Equal(t, quiz.StateFinished, m.(QuizModel).Session().State)
	assert.Contains(t, m.View(), "Perfect!")
	assert.Equal(t, quiz.SingleSize, rec.answers)
	assert.Equal(t, 1, rec.completed)

	m, _ = m.Update(key("r"))
	assert.Equal(t, quiz.StateInProgress, m.(QuizModel).Session().State)

	m, _ = m.Update(key("esc"))
	assert.Equal(t, quiz.StateMenu, m.(QuizModel).Session().State)

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
}

func TestQuizModelWrongAnswerAndKeys(t *testing.T) {
	cat := testCatalog(t)
	var m tea.Model = NewQuizModel(context.Background(), quiz.NewGenerator(cat, sampling.NewRand(9)), nil, quiz.ModeHangul)
	require.Equal(t, quiz.StateInProgress, m.(QuizModel).Session().State)

	q, _ := m.(QuizModel).Session().Current()
	wrong := (q.CorrectIndex + 1) % quiz.OptionCount
	for range wrong {
		m, _ = m.Update(key("down"))
	}
	m, _ = m.Update(key("enter"))
	assert.Contains(t, m.View(), "Not quite.")
	assert.Equal(t, 0, m.(QuizModel).Session().Score)

	// answering again while revealed is ignored
	m, _ = m.Update(key("1"))
	assert.Equal(t, quiz.StateRevealed, m.(QuizModel).Session().State)
}

func TestQuizModelUnknownMode(t *testing.T) {
	cat := testCatalog(t)
	m := NewQuizModel(context.Background(), quiz.NewGenerator(cat, sampling.NewRand(1)), nil, "bogus")
	assert.Contains(t, m.View(), "Error:")
	assert.Equal(t, quiz.StateMenu, m.Session().State)
}

// stillTicker never fires; it only counts live tickers.
type stillTickers struct{ live atomic.Int32 }

type stillTicker struct {
	owner   *stillTickers
	ch      chan time.Time
	stopped atomic.Bool
}

func (s *stillTicker) C() <-chan time.Time { return s.ch }
func (s *stillTicker) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.owner.live.Add(-1)
	}
}

func (s *stillTickers) New(time.Duration) timer.Ticker {
	s.live.Add(1)
	return &stillTicker{owner: s, ch: make(chan time.Time)}
}

func TestBreatheModel(t *testing.T) {
	cat := testCatalog(t)
	tickers := &stillTickers{}
	bm, err := NewBreatheModel(context.Background(), cat, tickers.New)
	require.NoError(t, err)

	var m tea.Model = bm
	assert.Contains(t, m.View(), "space start")

	m, _ = m.Update(key(" "))
	assert.Contains(t, m.View(), cat.BreathingCycle[0].Korean)
	assert.Contains(t, m.View(), "space stop")
	assert.EqualValues(t, 1, tickers.live.Load())

	m, _ = m.Update(breathMsg(timer.BreathingState{Running: true, Label: "Hold", Countdown: 2, Cycles: 3}))
	assert.Contains(t, m.View(), "Completed cycles: 3")

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
	assert.EqualValues(t, 0, tickers.live.Load(), "quitting releases the ticker")
}

func TestFocusModel(t *testing.T) {
	tickers := &stillTickers{}
	fm, err := NewFocusModel(context.Background(), []int{5, 10, 15}, 0, tickers.New)
	require.NoError(t, err)

	var m tea.Model = fm
	assert.Contains(t, m.View(), "10:00")

	m, _ = m.Update(key("l"))
	assert.Contains(t, m.View(), "15:00")
	m, _ = m.Update(key("l"))
	assert.Contains(t, m.View(), "15:00", "already at the last preset")

	m, _ = m.Update(key(" "))
	assert.Equal(t, timer.FocusRunning, m.(FocusModel).state.Status)
	assert.EqualValues(t, 1, tickers.live.Load())

	m, _ = m.Update(key(" "))
	assert.Equal(t, timer.FocusPaused, m.(FocusModel).state.Status)
	assert.EqualValues(t, 0, tickers.live.Load())

	m, _ = m.Update(focusMsg(timer.FocusState{Status: timer.FocusCompleted, Display: "00:00", Progress: 1}))
	assert.Contains(t, m.View(), "Great work")

	m, _ = m.Update(key("h"))
	assert.Contains(t, m.View(), "10:00")

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
}

func TestFocusModelRejectsUnknownPreset(t *testing.T) {
	_, err := NewFocusModel(context.Background(), []int{5, 10}, 7, nil)
	assert.ErrorIs(t, err, timer.ErrInvalidDuration)
}

func TestFeedKeepsLatest(t *testing.T) {
	f := newFeed[int]()
	f.push(1)
	f.push(2)
	f.push(3)

	msg := f.wait(func(v int) tea.Msg { return v })()
	assert.Equal(t, 3, msg)
}
