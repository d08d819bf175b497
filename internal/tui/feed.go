package tui

import tea "github.com/charmbracelet/bubbletea"

// feed hands timer states from the tick goroutine to the program. Only
// the latest state matters, so a full buffer is drained before pushing.
type feed[T any] struct {
	ch chan T
}

func newFeed[T any]() feed[T] {
	return feed[T]{ch: make(chan T, 1)}
}

func (f feed[T]) push(v T) {
	for {
		select {
		case f.ch <- v:
			return
		default:
		}
		select {
		case <-f.ch:
		default:
		}
	}
}

// wait returns a command that delivers the next state wrapped by wrap.
func (f feed[T]) wait(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return wrap(<-f.ch)
	}
}
