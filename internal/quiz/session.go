package quiz

import (
	"context"
	"fmt"
	"math"
)

// State is a quiz session state.
type State string

const (
	StateMenu       State = "menu"
	StateInProgress State = "in_progress"
	StateRevealed   State = "revealed"
	StateFinished   State = "finished"
)

// AnswerEvent is emitted once per answered question.
type AnswerEvent struct {
	Correct   bool
	Completed bool // the last question of the set was answered
	Perfect   bool // Completed, and every answer in the session was correct
}

// StatsRecorder persists answer statistics. Implementations must not fail
// the answer; persistence problems are theirs to log.
type StatsRecorder interface {
	RecordAnswer(ctx context.Context, ev AnswerEvent)
}

type nopRecorder struct{}

func (nopRecorder) RecordAnswer(context.Context, AnswerEvent) {}

// Feedback is what the learner sees after picking an option.
type Feedback struct {
	Picked       int    `json:"picked"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation"`
	Last         bool   `json:"last"`
}

// Result summarizes a session.
type Result struct {
	Mode       Mode       `json:"mode"`
	Score      int        `json:"score"`
	Total      int        `json:"total"`
	Answered   int        `json:"answered"`
	Percentage int        `json:"percentage"`
	History    []bool     `json:"history"`
	Missed     []Question `json:"missed"`
	Finished   bool       `json:"finished"`
}

// Session is one learner's run through a question set. It is not safe for
// concurrent use; the Registry serializes access.
type Session struct {
	ID        string
	LearnerID string
	Mode      Mode
	State     State
	Questions []Question
	Index     int
	Picked    int
	Score     int
	History   []bool
	Missed    []Question

	gen *Generator
	rec StatsRecorder
}

// NewSession returns a session in the menu state.
func NewSession(gen *Generator, rec StatsRecorder) *Session {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &Session{
		State:  StateMenu,
		Picked: -1,
		gen:    gen,
		rec:    rec,
	}
}

// Start generates a question set for mode and moves to the first question.
// It is allowed from any state.
func (s *Session) Start(mode Mode) error {
	qs, err := s.gen.Generate(mode)
	if err != nil {
		return err
	}
	if len(qs) == 0 {
		return fmt.Errorf("%w: mode %s produced no questions", ErrInsufficientContent, mode)
	}

	s.Mode = mode
	s.Questions = qs
	s.Index = 0
	s.Picked = -1
	s.Score = 0
	s.History = make([]bool, 0, len(qs))
	s.Missed = nil
	s.State = StateInProgress
	return nil
}

// Restart regenerates the set for the current mode.
func (s *Session) Restart() error {
	if s.Mode == "" {
		return fmt.Errorf("%w: no mode selected", ErrInvalidTransition)
	}
	return s.Start(s.Mode)
}

// Menu abandons the current set.
func (s *Session) Menu() {
	s.Mode = ""
	s.Questions = nil
	s.Index = 0
	s.Picked = -1
	s.Score = 0
	s.History = nil
	s.Missed = nil
	s.State = StateMenu
}

// Current returns the question being shown, if any.
func (s *Session) Current() (Question, bool) {
	if s.State != StateInProgress && s.State != StateRevealed {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Answer records the pick for the current question and reveals it.
func (s *Session) Answer(ctx context.Context, option int) (Feedback, error) {
	if s.State != StateInProgress {
		return Feedback{}, fmt.Errorf("%w: cannot answer in state %s", ErrInvalidTransition, s.State)
	}
	q := s.Questions[s.Index]
	if option < 0 || option >= len(q.Options) {
		return Feedback{}, fmt.Errorf("%w: %d", ErrInvalidOption, option)
	}

	ok := q.IsCorrect(option)
	if ok {
		s.Score++
	} else {
		s.Missed = append(s.Missed, q)
	}
	s.History = append(s.History, ok)
	s.Picked = option
	s.State = StateRevealed

	last := s.Index+1 == len(s.Questions)
	s.rec.RecordAnswer(ctx, AnswerEvent{
		Correct:   ok,
		Completed: last,
		Perfect:   last && s.Score == len(s.Questions),
	})

	return Feedback{
		Picked:       option,
		Correct:      ok,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		Last:         last,
	}, nil
}

// Next advances past a revealed question, finishing after the last one.
func (s *Session) Next() error {
	if s.State != StateRevealed {
		return fmt.Errorf("%w: cannot advance in state %s", ErrInvalidTransition, s.State)
	}
	if s.Index+1 >= len(s.Questions) {
		s.State = StateFinished
		return nil
	}
	s.Index++
	s.Picked = -1
	s.State = StateInProgress
	return nil
}

// Result summarizes the session so far.
func (s *Session) Result() Result {
	missed := s.Missed
	if missed == nil {
		missed = []Question{}
	}
	history := s.History
	if history == nil {
		history = []bool{}
	}
	return Result{
		Mode:       s.Mode,
		Score:      s.Score,
		Total:      len(s.Questions),
		Answered:   len(s.History),
		Percentage: Percentage(s.Score, len(s.Questions)),
		History:    history,
		Missed:     missed,
		Finished:   s.State == StateFinished,
	}
}

// Percentage returns score/total as a rounded percentage, 0 for an empty set.
func Percentage(score, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
