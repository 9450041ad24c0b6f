package searcher

import (
	"fmt"
	"sync"

	"santorini/game"
	"santorini/rules"

	"github.com/rs/zerolog/log"
)

type Option func(t *Tree)

// Tree picks turns that cannot lose within a fixed look-ahead.
// A Tree must not run two searches at once.
type Tree struct {
	depth      int
	goroutines int
	metrics    MetricsCollector
	last       SearchMetrics
}

// WithGoroutines evaluates root candidates on n goroutines.
func WithGoroutines(n int) Option {
	return func(t *Tree) {
		if n > 0 {
			t.goroutines = n
		}
	}
}

func WithMetrics() Option {
	return func(t *Tree) {
		t.metrics = NewMetricsCollector()
	}
}

func NewTree(depth int, options ...Option) *Tree {
	if depth < 0 {
		panic(fmt.Sprintf("look-ahead depth must be non-negative, got %d", depth))
	}
	t := &Tree{ // Default values
		depth:      depth,
		goroutines: 1,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Tree) Depth() int {
	return t.depth
}

// Metrics returns the metrics of the last search. They are zero unless WithMetrics was given.
func (t *Tree) Metrics() SearchMetrics {
	return t.last
}

// FindTurn returns an immediately winning turn if there is one, otherwise the first turn
// in enumeration order after which the opponent cannot force a win within the look-ahead.
// It reports false if no turn is safe.
func (t *Tree) FindTurn(b game.Board, me game.PlayerID) (game.Action, bool) {
	t.metrics.Start(t.goroutines, t.depth)
	defer func() { t.last = t.metrics.Complete() }()

	candidates := rules.LegalTurns(b, me)
	for _, c := range candidates {
		if c.Kind == game.MoveAction {
			return c, true
		}
	}

	index := t.evaluate(b, me, candidates)
	if index < 0 {
		log.Debug().Msgf("no safe turn among %d candidates at depth %d", len(candidates), t.depth)
		return game.Action{}, false
	}
	return candidates[index], true
}

// evaluate returns the index of the first safe candidate, or -1.
func (t *Tree) evaluate(b game.Board, me game.PlayerID, candidates []game.Action) int {
	if t.goroutines <= 1 {
		for i, c := range candidates {
			t.metrics.AddCandidate()
			if t.survives(apply(b, c), me, t.depth) {
				return i
			}
		}
		return -1
	}

	task := make(chan int, len(candidates))
	for i := range candidates {
		task <- i
	}
	close(task)

	safe := make([]bool, len(candidates))
	var wg sync.WaitGroup
	for i := 0; i < t.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range task {
				t.metrics.AddCandidate()
				safe[index] = t.survives(apply(b, candidates[index]), me, t.depth)
			}
		}()
	}
	wg.Wait()

	for i, ok := range safe {
		if ok {
			return i
		}
	}
	return -1
}

// Survives reports whether me, having just moved to reach b, cannot be forced
// into a loss within depth rounds of opponent reply and own answer.
func Survives(b game.Board, me game.PlayerID, depth int) bool {
	return NewTree(depth).survives(b, me, depth)
}

func (t *Tree) survives(b game.Board, me game.PlayerID, depth int) bool {
	t.metrics.AddNode()

	opponent := b.Opponent(me)
	switch outcome(b, opponent) {
	case me:
		return true
	case "":
	default:
		return false
	}
	if depth == 0 {
		return true
	}

	for _, reply := range rules.LegalTurns(b, opponent) {
		next := apply(b, reply)
		switch outcome(next, me) {
		case opponent:
			return false
		case me:
			continue
		}
		if depth > 1 && !t.canAnswer(next, me, depth-1) {
			return false
		}
	}
	return true
}

func (t *Tree) canAnswer(b game.Board, me game.PlayerID, depth int) bool {
	for _, answer := range rules.LegalTurns(b, me) {
		if t.survives(apply(b, answer), me, depth) {
			return true
		}
	}
	return false
}

// apply returns a copy of b with a played on it. Turns come from rules.LegalTurns,
// so a failure here is a bug.
func apply(b game.Board, a game.Action) game.Board {
	if err := b.Apply(a); err != nil {
		panic(fmt.Sprintf("apply %v: %v", a, err))
	}
	return b
}
