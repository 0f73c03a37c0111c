// Package ordering tracks a student's arrangement of ORDERING items.
package ordering

import (
	"errors"
	"hash/fnv"
	"math/rand"

	"github.com/mind-engage/mindengage-quiz/internal/question"
)

// MaxShuffleAttempts bounds how often Shuffle retries a permutation that
// equals the correct order before falling back to a rotation.
const MaxShuffleAttempts = 10

type State string

const (
	StateUnshuffled State = "unshuffled"
	StateShuffled   State = "shuffled"
	StateReordering State = "reordering"
	StateSubmitted  State = "submitted"
)

var (
	ErrIndexOutOfRange = errors.New("ordering: index out of range")
	ErrSubmitted       = errors.New("ordering: already submitted")
)

// Presenter holds the current order as a slice of item ids. Positions are
// the slice index plus one and are never stored separately.
type Presenter struct {
	correct []string
	order   []string
	state   State
}

// New starts an unshuffled presenter whose order is the correct order.
func New(d *question.OrderingData) *Presenter {
	correct := d.CorrectOrder()
	order := make([]string, len(correct))
	copy(order, correct)
	return &Presenter{correct: correct, order: order, state: StateUnshuffled}
}

// Restore resumes a presenter with a previously saved order, for example
// after a page reload. Unknown or missing ids fall back to a fresh presenter.
func Restore(d *question.OrderingData, saved []string) *Presenter {
	p := New(d)
	if !samePermutation(p.correct, saved) {
		return p
	}
	p.order = append([]string(nil), saved...)
	p.state = StateReordering
	return p
}

// SeedFor derives a stable seed per student and question so the initial
// arrangement survives reloads.
func SeedFor(sessionID, questionID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sessionID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(questionID))
	return int64(h.Sum64())
}

// Shuffle places the items with Fisher-Yates. A result identical to the
// correct order is retried up to MaxShuffleAttempts times and then rotated
// by one, so any list of two or more items starts visibly out of order.
// Shuffle only acts on an unshuffled presenter.
func (p *Presenter) Shuffle(rng *rand.Rand) {
	if p.state != StateUnshuffled {
		return
	}
	p.state = StateShuffled
	if len(p.order) < 2 {
		return
	}
	for attempt := 0; attempt < MaxShuffleAttempts; attempt++ {
		rng.Shuffle(len(p.order), func(i, j int) { p.order[i], p.order[j] = p.order[j], p.order[i] })
		if !equal(p.order, p.correct) {
			return
		}
	}
	first := p.order[0]
	copy(p.order, p.order[1:])
	p.order[len(p.order)-1] = first
}

// Move removes the item at from and reinserts it at to.
func (p *Presenter) Move(from, to int) error {
	if p.state == StateSubmitted {
		return ErrSubmitted
	}
	n := len(p.order)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	p.state = StateReordering
	if from == to {
		return nil
	}
	id := p.order[from]
	p.order = append(p.order[:from], p.order[from+1:]...)
	p.order = append(p.order[:to], append([]string{id}, p.order[to:]...)...)
	return nil
}

// Submit freezes the order. Further moves fail with ErrSubmitted.
func (p *Presenter) Submit() []string {
	p.state = StateSubmitted
	return p.Order()
}

func (p *Presenter) State() State { return p.state }

// Order returns a copy of the current id sequence.
func (p *Presenter) Order() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Positions maps each item id to its displayed 1-based position.
func (p *Presenter) Positions() map[string]int {
	out := make(map[string]int, len(p.order))
	for i, id := range p.order {
		out[id] = i + 1
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samePermutation(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	seen := make(map[string]int, len(want))
	for _, id := range want {
		seen[id]++
	}
	for _, id := range got {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	return true
}
