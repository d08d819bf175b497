// Package timer holds the breathing guide and focus countdown state
// machines and the ticker-driven runner that animates them.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/Z4rru/hangulmastery/internal/content"
)

var (
	ErrEmptyCycle        = errors.New("breathing cycle has no phases")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrInvalidTransition = errors.New("invalid timer transition")
)

// PhaseIdle is reported while the breathing guide is stopped.
const PhaseIdle = "idle"

// Breathing steps through a fixed cycle of timed phases. It is a pure
// state machine; time only moves through Tick.
type Breathing struct {
	cycle   []content.BreathPhase
	running bool
	step    int
	elapsed time.Duration
	cycles  int
}

// BreathingState is a snapshot of the guide.
type BreathingState struct {
	Running      bool   `json:"running"`
	Phase        string `json:"phase"`
	Label        string `json:"label,omitempty"`
	Korean       string `json:"korean,omitempty"`
	Romanization string `json:"romanization,omitempty"`
	Step         int    `json:"step"`
	Countdown    int    `json:"countdown"`
	Cycles       int    `json:"cycles"`
}

// NewBreathing builds a guide over cycle.
func NewBreathing(cycle []content.BreathPhase) (*Breathing, error) {
	if len(cycle) == 0 {
		return nil, ErrEmptyCycle
	}
	for _, p := range cycle {
		if p.DurationMS <= 0 {
			return nil, fmt.Errorf("%w: phase %s", ErrInvalidDuration, p.Phase)
		}
	}
	return &Breathing{cycle: cycle}, nil
}

func (b *Breathing) phaseDuration(i int) time.Duration {
	return time.Duration(b.cycle[i].DurationMS) * time.Millisecond
}

// Start begins at the first phase. Starting a running guide is a no-op.
func (b *Breathing) Start() {
	if b.running {
		return
	}
	b.running = true
	b.step = 0
	b.elapsed = 0
}

// Stop returns to idle. The phase, step and countdown reset; the completed
// cycle count is kept and never incremented by stopping.
func (b *Breathing) Stop() {
	b.running = false
	b.step = 0
	b.elapsed = 0
}

// Reset stops the guide and clears the cycle counter.
func (b *Breathing) Reset() {
	b.Stop()
	b.cycles = 0
}

// Tick advances the guide by d. Each time the last phase ends the cycle
// counter goes up by one.
func (b *Breathing) Tick(d time.Duration) {
	if !b.running || d <= 0 {
		return
	}
	b.elapsed += d
	for b.elapsed >= b.phaseDuration(b.step) {
		b.elapsed -= b.phaseDuration(b.step)
		b.step = (b.step + 1) % len(b.cycle)
		if b.step == 0 {
			b.cycles++
		}
	}
}

// State reports the current phase and whole seconds left in it.
func (b *Breathing) State() BreathingState {
	if !b.running {
		return BreathingState{
			Phase:     PhaseIdle,
			Countdown: ceilSeconds(b.phaseDuration(0)),
			Cycles:    b.cycles,
		}
	}
	p := b.cycle[b.step]
	return BreathingState{
		Running:      true,
		Phase:        p.Phase,
		Label:        p.Label,
		Korean:       p.Korean,
		Romanization: p.Romanization,
		Step:         b.step,
		Countdown:    ceilSeconds(b.phaseDuration(b.step) - b.elapsed),
		Cycles:       b.cycles,
	}
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
