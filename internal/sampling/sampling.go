// Package sampling holds the randomized list helpers used by the quiz
// generator: shuffling, sampling without replacement and distractor picking.
// None of the functions modify their input slices.
package sampling

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

// ErrInsufficientPool is returned when a pool cannot supply enough distinct
// distractors.
var ErrInsufficientPool = errors.New("not enough distinct candidates")

// Rand is the randomness source. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent use.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// NewRand returns a goroutine-safe source seeded from seed.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// NewTimeRand returns a goroutine-safe source seeded from the clock.
func NewTimeRand() Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}

// Shuffle returns a uniformly shuffled copy of items (Fisher-Yates).
func Shuffle[T any](r Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample draws n items without replacement. n is capped at len(items).
func Sample[T any](r Rand, items []T, n int) []T {
	if n <= 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}
	return Shuffle(r, items)[:n]
}

// Distractors picks n wrong answers from pool. value maps a pool entry to
// its answer text; entries whose text equals correct, or repeats an
// already chosen distractor, are skipped.
func Distractors[T any](r Rand, pool []T, correct string, value func(T) string, n int) ([]string, error) {
	out := make([]string, 0, n)
	seen := map[string]bool{correct: true}

	for _, item := range Shuffle(r, pool) {
		if len(out) == n {
			break
		}
		v := value(item)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}

	if len(out) < n {
		return nil, ErrInsufficientPool
	}
	return out, nil
}

// Options mixes correct in with wrong and shuffles the result. It returns
// the options and the index of the correct one.
func Options(r Rand, correct string, wrong []string) ([]string, int) {
	opts := Shuffle(r, append([]string{correct}, wrong...))
	for i, o := range opts {
		if o == correct {
			return opts, i
		}
	}
	return opts, -1
}

// Reorder shuffles a pre-authored option list and remaps the correct index.
func Reorder(r Rand, options []string, correct int) ([]string, int) {
	perm := Shuffle(r, indices(len(options)))
	out := make([]string, len(options))
	idx := -1
	for i, p := range perm {
		out[i] = options[p]
		if p == correct {
			idx = i
		}
	}
	return out, idx
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
