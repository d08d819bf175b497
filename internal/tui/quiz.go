package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Z4rru/hangulmastery/internal/quiz"
)

// QuizModel runs one local quiz session in the terminal.
type QuizModel struct {
	ctx      context.Context
	session  *quiz.Session
	modes    []quiz.ModeInfo
	cursor   int
	feedback *quiz.Feedback
	err      error
}

// NewQuizModel starts at the mode menu, or straight into mode when it is
// not empty.
func NewQuizModel(ctx context.Context, gen *quiz.Generator, rec quiz.StatsRecorder, mode quiz.Mode) QuizModel {
	m := QuizModel{
		ctx:     ctx,
		session: quiz.NewSession(gen, rec),
		modes:   quiz.Modes(),
	}
	if mode != "" {
		m.err = m.session.Start(mode)
	}
	return m
}

// Session exposes the underlying session.
func (m QuizModel) Session() *quiz.Session {
	return m.session
}

func (m QuizModel) Init() tea.Cmd {
	return nil
}

func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	m.err = nil
	switch m.session.State {
	case quiz.StateMenu:
		return m.updateMenu(key)
	case quiz.StateInProgress:
		return m.updateQuestion(key)
	case quiz.StateRevealed:
		if key.String() == "enter" || key.String() == "n" {
			m.err = m.session.Next()
			m.feedback = nil
			m.cursor = 0
		}
	case quiz.StateFinished:
		switch key.String() {
		case "r":
			m.err = m.session.Restart()
			m.cursor = 0
		case "m", "esc":
			m.session.Menu()
			m.cursor = 0
		}
	}
	return m, nil
}

func (m QuizModel) updateMenu(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.modes)-1 {
			m.cursor++
		}
	case "enter":
		m.err = m.session.Start(m.modes[m.cursor].Mode)
		m.cursor = 0
	}
	return m, nil
}

func (m QuizModel) updateQuestion(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	q, _ := m.session.Current()
	pick := -1

	switch s := key.String(); s {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case "enter":
		pick = m.cursor
	case "1", "2", "3", "4":
		pick = int(s[0] - '1')
	case "esc":
		m.session.Menu()
		m.cursor = 0
	}

	if pick >= 0 {
		fb, err := m.session.Answer(m.ctx, pick)
		if err != nil {
			m.err = err
		} else {
			m.feedback = &fb
		}
	}
	return m, nil
}

func (m QuizModel) View() string {
	var s strings.Builder

	switch m.session.State {
	case quiz.StateMenu:
		s.WriteString(titleStyle.Render("🇰🇷 Practice Quiz"))
		s.WriteString("\n")
		for i, mi := range m.modes {
			line := fmt.Sprintf("%s %s (%d questions)  %s", mi.Emoji, mi.Title, mi.Size, dimStyle.Render(mi.Description))
			s.WriteString(cursorLine(i == m.cursor, line))
		}
		s.WriteString(helpLine("↑/↓ choose • enter start • q quit"))

	case quiz.StateInProgress, quiz.StateRevealed:
		m.viewQuestion(&s)

	case quiz.StateFinished:
		r := m.session.Result()
		s.WriteString(titleStyle.Render("Results"))
		s.WriteString("\n")
		score := fmt.Sprintf("%d / %d  (%d%%)", r.Score, r.Total, r.Percentage)
		if r.Score == r.Total {
			s.WriteString(successStyle.Render("Perfect! 완벽해요! " + score))
		} else {
			s.WriteString(normalStyle.Render("Score: " + score))
		}
		s.WriteString("\n")
		if len(r.Missed) > 0 {
			s.WriteString("\nReview:\n")
			for _, q := range r.Missed {
				fmt.Fprintf(&s, "  • %s → %s\n", q.Prompt, successStyle.Render(q.Options[q.CorrectIndex]))
			}
		}
		s.WriteString(helpLine("r retry • m menu • q quit"))
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	}
	return frameStyle.Render(s.String())
}

func (m QuizModel) viewQuestion(s *strings.Builder) {
	q, _ := m.session.Current()
	fmt.Fprintf(s, "%s  %s\n\n", dimStyle.Render(fmt.Sprintf("Question %d/%d", m.session.Index+1, len(m.session.Questions))),
		dimStyle.Render(fmt.Sprintf("Score %d", m.session.Score)))
	s.WriteString(koreanStyle.Render(q.Prompt))
	s.WriteString("\n")
	if q.Subtext != "" {
		s.WriteString(dimStyle.Render(q.Subtext))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	revealed := m.session.State == quiz.StateRevealed
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		switch {
		case revealed && i == q.CorrectIndex:
			s.WriteString("  " + successStyle.Render(line+" ✓") + "\n")
		case revealed && i == m.session.Picked:
			s.WriteString("  " + errorStyle.Render(line+" ✗") + "\n")
		case revealed:
			s.WriteString("  " + normalStyle.Render(line) + "\n")
		default:
			s.WriteString(cursorLine(i == m.cursor, line))
		}
	}

	if revealed && m.feedback != nil {
		s.WriteString("\n")
		if m.feedback.Correct {
			s.WriteString(successStyle.Render("정답! Correct!"))
		} else {
			s.WriteString(errorStyle.Render("Not quite."))
		}
		s.WriteString("\n" + q.Explanation + "\n")
		next := "enter next"
		if m.feedback.Last {
			next = "enter see results"
		}
		s.WriteString(helpLine(next + " • q quit"))
		return
	}
	s.WriteString(helpLine("1-4 or ↑/↓ + enter answer • esc menu • q quit"))
}

func cursorLine(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> "+line) + "\n"
	}
	return normalStyle.Render("  "+line) + "\n"
}
