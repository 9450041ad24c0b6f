package searcher

import (
	"sync"
	"time"

	"santorini/game"
	"santorini/rules"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type MCTSOption func(m *MCTS)

// MCTS picks turns by Monte-Carlo tree search with random rollouts.
// An MCTS must not run two searches at once.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	seed       uint64
	metrics    MetricsCollector
	last       SearchMetrics
}

func WithDuration(duration time.Duration) MCTSOption {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) MCTSOption {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithCutoff stops rollouts after depth turns and scores them as a draw.
func WithCutoff(depth int) MCTSOption {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithSeed(seed uint64) MCTSOption {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(goroutines int, options ...MCTSOption) *MCTS {
	if goroutines < 1 {
		goroutines = 1
	}
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		metrics:    NewMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Metrics returns the metrics of the last search. Nodes counts expansions and
// Candidates the root turns.
func (m *MCTS) Metrics() SearchMetrics {
	return m.last
}

// FindTurn plays an immediate win if there is one and otherwise the most visited root turn.
// It reports false if me has no legal turn.
func (m *MCTS) FindTurn(b game.Board, me game.PlayerID) (game.Action, bool) {
	m.metrics.Start(m.goroutines, m.cutoff)
	defer func() { m.last = m.metrics.Complete() }()

	// TODO: keep the subtree of the opponent's reply between turns instead of a fresh root
	root := newNode(nil, b.Opponent(me), b)
	for _, turn := range root.turns {
		m.metrics.AddCandidate()
		if turn.Kind == game.MoveAction {
			return turn, true
		}
	}
	if len(root.turns) == 0 {
		return game.Action{}, false
	}

	if m.episodes > 0 {
		m.iterate(root)
	} else {
		m.countdown(root)
	}

	turn, ok := root.best()
	log.Debug().Msgf("mcts chose %v after %d episodes", turn, root.Visits())
	return turn, ok
}

func (m *MCTS) iterate(root *node) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for range task {
				m.simulate(root, rng)
			}
		}(m.rng(i))
	}

	wg.Wait()
}

func (m *MCTS) countdown(root *node) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func(rng *rand.Rand) {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(root, rng)
				}
			}
		}(m.rng(i))
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

// rng returns the random source of the i-th search goroutine; x/exp/rand sources are not shared.
func (m *MCTS) rng(i int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + uint64(i)))
}

func (m *MCTS) simulate(root *node, rng *rand.Rand) {
	leaf := selectThenExpand(root)
	m.metrics.AddNode()
	winner := m.rollout(leaf, rng)
	backup(leaf, winner)
}

func selectThenExpand(root *node) *node {
	parent := root
	child, added := parent.selectOrExpand()
	for child != parent && !added {
		parent = child
		child, added = parent.selectOrExpand()
	}
	return child
}

// rollout plays random turns from leaf until the game ends or the cutoff is reached.
// A winning move is always taken.
func (m *MCTS) rollout(leaf *node, rng *rand.Rand) game.PlayerID {
	if leaf.winner != "" {
		return leaf.winner
	}
	b, toMove := leaf.board, leaf.toMove
	for depth := 0; depth < m.cutoff; depth++ {
		if w := outcome(b, toMove); w != "" {
			return w
		}
		turns := rules.LegalTurns(b, toMove)
		turn := turns[rng.Intn(len(turns))]
		for _, t := range turns {
			if t.Kind == game.MoveAction {
				turn = t
				break
			}
		}
		b = apply(b, turn)
		toMove = b.Opponent(toMove)
	}
	return outcome(b, toMove)
}

func backup(leaf *node, winner game.PlayerID) {
	n := leaf
	for n != nil {
		n = n.backup(winner)
	}
}
