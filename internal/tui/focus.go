package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Z4rru/hangulmastery/internal/timer"
)

type focusMsg timer.FocusState

// FocusModel shows the focus countdown with a preset picker.
type FocusModel struct {
	ctx     context.Context
	timer   *timer.FocusTimer
	states  feed[timer.FocusState]
	state   timer.FocusState
	presets []int
	preset  int
	bar     progress.Model
	err     error
}

// NewFocusModel creates an idle timer set to minutes, which should be one
// of presets. A nil newTicker uses real time.
func NewFocusModel(ctx context.Context, presets []int, minutes int, newTicker timer.TickerFunc) (FocusModel, error) {
	if len(presets) == 0 {
		presets = []int{timer.DefaultFocusMinutes}
	}
	if minutes == 0 {
		minutes = timer.DefaultFocusMinutes
	}
	idx := slices.Index(presets, minutes)
	if idx < 0 {
		return FocusModel{}, fmt.Errorf("%w: %d minutes is not a preset", timer.ErrInvalidDuration, minutes)
	}

	states := newFeed[timer.FocusState]()
	t, err := timer.NewFocusTimer(minutes, newTicker, states.push)
	if err != nil {
		return FocusModel{}, err
	}
	return FocusModel{
		ctx:     ctx,
		timer:   t,
		states:  states,
		state:   t.State(),
		presets: presets,
		preset:  idx,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}, nil
}

// Close releases the countdown's ticker.
func (m FocusModel) Close() error {
	return m.timer.Close()
}

func (m FocusModel) listen() tea.Cmd {
	return m.states.wait(func(s timer.FocusState) tea.Msg { return focusMsg(s) })
}

func (m FocusModel) Init() tea.Cmd {
	return m.listen()
}

func (m FocusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case focusMsg:
		m.state = timer.FocusState(msg)
		return m, m.listen()

	case tea.KeyMsg:
		m.err = nil
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			_ = m.timer.Close()
			return m, tea.Quit
		case " ", "enter":
			if m.state.Status == timer.FocusRunning {
				m.err = m.timer.Pause()
			} else {
				m.err = m.timer.Start(m.ctx)
			}
		case "r":
			m.err = m.timer.Reset(m.presets[m.preset])
		case "left", "h", "-":
			m = m.choose(m.preset - 1)
		case "right", "l", "+":
			m = m.choose(m.preset + 1)
		}
		m.state = m.timer.State()
	}
	return m, nil
}

// choose switches preset; the countdown restarts idle at the new length.
func (m FocusModel) choose(i int) FocusModel {
	if i < 0 || i >= len(m.presets) || i == m.preset {
		return m
	}
	m.preset = i
	m.err = m.timer.Reset(m.presets[i])
	return m
}

func (m FocusModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("⏱️  Focus Timer"))
	s.WriteString("\n")

	for i, p := range m.presets {
		label := fmt.Sprintf(" %d ", p)
		if i == m.preset {
			s.WriteString(selectedStyle.Render("[" + label + "]"))
		} else {
			s.WriteString(dimStyle.Render(" " + label + " "))
		}
	}
	s.WriteString(dimStyle.Render(" min\n\n"))

	s.WriteString(koreanStyle.Render(m.state.Display))
	fmt.Fprintf(&s, "  %s\n", dimStyle.Render(string(m.state.Status)))
	s.WriteString(m.bar.ViewAs(m.state.Progress))
	s.WriteString("\n")

	if m.state.Status == timer.FocusCompleted {
		s.WriteString("\n" + successStyle.Render("수고했어요! Great work, take a short break.") + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n")
	}

	action := "space start"
	switch m.state.Status {
	case timer.FocusRunning:
		action = "space pause"
	case timer.FocusPaused:
		action = "space resume"
	}
	s.WriteString(helpLine(action + " • ←/→ length • r reset • q quit"))
	return frameStyle.Render(s.String())
}
