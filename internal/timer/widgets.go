package timer

import (
	"context"
	"sync"
	"time"

	"github.com/Z4rru/hangulmastery/internal/content"
)

// BreathingTimer animates a Breathing guide once per second.
type BreathingTimer struct {
	mu       sync.Mutex
	b        *Breathing
	runner   *Runner
	onChange func(BreathingState)
}

// NewBreathingTimer wires a guide to a runner. onChange, if set, is called
// after every state change from the tick goroutine.
func NewBreathingTimer(cycle []content.BreathPhase, newTicker TickerFunc, onChange func(BreathingState)) (*BreathingTimer, error) {
	b, err := NewBreathing(cycle)
	if err != nil {
		return nil, err
	}
	return &BreathingTimer{
		b:        b,
		runner:   NewRunner(time.Second, newTicker),
		onChange: onChange,
	}, nil
}

func (t *BreathingTimer) notify(s BreathingState) {
	if t.onChange != nil {
		t.onChange(s)
	}
}

// Start begins the cycle and the tick loop.
func (t *BreathingTimer) Start(ctx context.Context) {
	t.mu.Lock()
	t.b.Start()
	s := t.b.State()
	t.mu.Unlock()
	t.notify(s)

	t.runner.Start(ctx, func(d time.Duration) bool {
		t.mu.Lock()
		t.b.Tick(d)
		s := t.b.State()
		t.mu.Unlock()
		t.notify(s)
		return true
	})
}

// Stop halts the loop and resets the guide to idle.
func (t *BreathingTimer) Stop() {
	t.runner.Stop()
	t.mu.Lock()
	t.b.Stop()
	s := t.b.State()
	t.mu.Unlock()
	t.notify(s)
}

// Toggle starts a stopped guide or stops a running one.
func (t *BreathingTimer) Toggle(ctx context.Context) {
	if t.State().Running {
		t.Stop()
		return
	}
	t.Start(ctx)
}

// State snapshots the guide.
func (t *BreathingTimer) State() BreathingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.b.State()
}

// Ticking reports whether the tick loop owns a live ticker.
func (t *BreathingTimer) Ticking() bool {
	return t.runner.Running()
}

// Close releases the ticker.
func (t *BreathingTimer) Close() error {
	return t.runner.Close()
}

// FocusTimer animates a Focus countdown once per second.
type FocusTimer struct {
	mu       sync.Mutex
	f        *Focus
	runner   *Runner
	onChange func(FocusState)
}

// NewFocusTimer creates an idle focus timer of minutes.
func NewFocusTimer(minutes int, newTicker TickerFunc, onChange func(FocusState)) (*FocusTimer, error) {
	f, err := NewFocus(minutes)
	if err != nil {
		return nil, err
	}
	return &FocusTimer{
		f:        f,
		runner:   NewRunner(time.Second, newTicker),
		onChange: onChange,
	}, nil
}

func (t *FocusTimer) notify(s FocusState) {
	if t.onChange != nil {
		t.onChange(s)
	}
}

// Start runs the countdown. The loop ends on its own at completion.
func (t *FocusTimer) Start(ctx context.Context) error {
	t.mu.Lock()
	if err := t.f.Start(); err != nil {
		t.mu.Unlock()
		return err
	}
	s := t.f.State()
	t.mu.Unlock()
	t.notify(s)

	t.runner.Start(ctx, func(d time.Duration) bool {
		t.mu.Lock()
		t.f.Tick(d)
		s := t.f.State()
		t.mu.Unlock()
		t.notify(s)
		return s.Status == FocusRunning
	})
	return nil
}

// Pause holds the countdown and releases the ticker.
func (t *FocusTimer) Pause() error {
	t.runner.Stop()
	t.mu.Lock()
	err := t.f.Pause()
	s := t.f.State()
	t.mu.Unlock()
	if err == nil {
		t.notify(s)
	}
	return err
}

// Reset stops the countdown and selects a new duration.
func (t *FocusTimer) Reset(minutes int) error {
	t.runner.Stop()
	t.mu.Lock()
	err := t.f.Reset(minutes)
	s := t.f.State()
	t.mu.Unlock()
	if err == nil {
		t.notify(s)
	}
	return err
}

// State snapshots the countdown.
func (t *FocusTimer) State() FocusState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.f.State()
}

// Ticking reports whether the tick loop owns a live ticker.
func (t *FocusTimer) Ticking() bool {
	return t.runner.Running()
}

// Close releases the ticker.
func (t *FocusTimer) Close() error {
	return t.runner.Close()
}
