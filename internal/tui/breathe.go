package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Z4rru/hangulmastery/internal/content"
	"github.com/Z4rru/hangulmastery/internal/timer"
)

type breathMsg timer.BreathingState

// BreatheModel shows the box breathing guide.
type BreatheModel struct {
	ctx    context.Context
	timer  *timer.BreathingTimer
	states feed[timer.BreathingState]
	state  timer.BreathingState
	tips   []content.Tip
}

// NewBreatheModel creates an idle guide. A nil newTicker uses real time.
func NewBreatheModel(ctx context.Context, cat *content.Catalog, newTicker timer.TickerFunc) (BreatheModel, error) {
	states := newFeed[timer.BreathingState]()
	t, err := timer.NewBreathingTimer(cat.BreathingCycle, newTicker, states.push)
	if err != nil {
		return BreatheModel{}, err
	}
	return BreatheModel{
		ctx:    ctx,
		timer:  t,
		states: states,
		state:  t.State(),
		tips:   cat.WellnessTips,
	}, nil
}

// Close releases the guide's ticker.
func (m BreatheModel) Close() error {
	return m.timer.Close()
}

func (m BreatheModel) listen() tea.Cmd {
	return m.states.wait(func(s timer.BreathingState) tea.Msg { return breathMsg(s) })
}

func (m BreatheModel) Init() tea.Cmd {
	return m.listen()
}

func (m BreatheModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case breathMsg:
		m.state = timer.BreathingState(msg)
		return m, m.listen()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			_ = m.timer.Close()
			return m, tea.Quit
		case " ", "enter":
			m.timer.Toggle(m.ctx)
			m.state = m.timer.State()
		}
	}
	return m, nil
}

func (m BreatheModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("🌬️  Box Breathing"))
	s.WriteString("\n")

	st := m.state
	if st.Running {
		s.WriteString(koreanStyle.Render(st.Korean))
		fmt.Fprintf(&s, "  %s\n\n", dimStyle.Render(st.Romanization))
		fmt.Fprintf(&s, "%s  %s\n", selectedStyle.Render(st.Label), strings.Repeat("● ", st.Countdown))
	} else {
		s.WriteString("Breathe in for 4, hold for 4, out for 4, hold for 4.\n")
	}
	fmt.Fprintf(&s, "\nCompleted cycles: %d\n", st.Cycles)

	if len(m.tips) > 0 && !st.Running {
		tip := m.tips[st.Cycles%len(m.tips)]
		fmt.Fprintf(&s, "\n%s %s\n%s\n", tip.Emoji, tip.Title, dimStyle.Render(tip.Content))
	}

	action := "space start"
	if st.Running {
		action = "space stop"
	}
	s.WriteString(helpLine(action + " • q quit"))
	return frameStyle.Render(s.String())
}
