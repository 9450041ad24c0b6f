package player

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"santorini/meta"
	"santorini/searcher"

	"golang.org/x/exp/slices"
)

var ErrUnknownKind = errors.New("unknown player kind")

// Spec describes a player to build. Fields a kind does not use are ignored.
// Depth is the look-ahead of a tree player and the rollout cutoff of an mcts player.
type Spec struct {
	Kind       string        `mapstructure:"kind" yaml:"kind"`
	Name       string        `mapstructure:"name" yaml:"name"`
	Depth      int           `mapstructure:"depth" yaml:"depth"`
	Seed       uint64        `mapstructure:"seed" yaml:"seed"`
	Delay      time.Duration `mapstructure:"delay" yaml:"delay"`
	Episodes   int           `mapstructure:"episodes" yaml:"episodes"`
	Goroutines int           `mapstructure:"goroutines" yaml:"goroutines"`
}

type Factory func(spec Spec) (Player, error)

// Registry maps kind names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns a registry holding the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	for kind, factory := range builtins {
		r.factories[kind] = factory
	}
	return r
}

func (r *Registry) Register(kind string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[kind]; ok {
		return fmt.Errorf("player kind %q already registered", kind)
	}
	r.factories[kind] = factory
	return nil
}

func (r *Registry) New(spec Spec) (Player, error) {
	r.mu.RLock()
	factory, ok := r.factories[spec.Kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("player of kind %q has no name", spec.Kind)
	}
	return factory(spec)
}

// Kinds returns the registered kind names in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

func depth(spec Spec) int {
	if spec.Depth > 0 {
		return spec.Depth
	}
	return meta.TREE_DEPTH
}

// simple is the well-behaved base the faulty kinds build on.
func simple(spec Spec) *Strategic {
	return NewStrategic(spec.Name, Diagonal{}, First{})
}

var builtins = map[string]Factory{
	"tree": func(spec Spec) (Player, error) {
		tree := searcher.NewTree(depth(spec), searcher.WithGoroutines(spec.Goroutines))
		return NewStrategic(spec.Name, Far{}, tree), nil
	},
	"mcts": func(spec Spec) (Player, error) {
		episodes := spec.Episodes
		if episodes <= 0 {
			episodes = meta.MCTS_EPISODES
		}
		mcts := searcher.NewMCTS(spec.Goroutines,
			searcher.WithEpisodes(episodes),
			searcher.WithCutoff(spec.Depth),
			searcher.WithSeed(spec.Seed),
		)
		return NewStrategic(spec.Name, Far{}, mcts), nil
	},
	"random": func(spec Spec) (Player, error) {
		return NewStrategic(spec.Name, Diagonal{}, NewRandom(spec.Seed)), nil
	},
	"first": func(spec Spec) (Player, error) {
		return simple(spec), nil
	},
	"hang": func(spec Spec) (Player, error) {
		return Hang{simple(spec)}, nil
	},
	"sleep": func(spec Spec) (Player, error) {
		delay := spec.Delay
		if delay <= 0 {
			delay = 2 * meta.GUARD_TIMEOUT
		}
		return Sleep{Strategic: simple(spec), Delay: delay}, nil
	},
	"panic": func(spec Spec) (Player, error) {
		return Panic{simple(spec)}, nil
	},
	"error": func(spec Spec) (Player, error) {
		return Failing{simple(spec)}, nil
	},
	"malformed": func(spec Spec) (Player, error) {
		return Malformed{simple(spec)}, nil
	},
	"bad-placement": func(spec Spec) (Player, error) {
		return BadPlacement{simple(spec)}, nil
	},
	"foreign-worker": func(spec Spec) (Player, error) {
		return ForeignWorker{simple(spec)}, nil
	},
	"bad-turn": func(spec Spec) (Player, error) {
		return BadTurn{simple(spec)}, nil
	},
	"mutator": func(spec Spec) (Player, error) {
		return Mutator{simple(spec)}, nil
	},
}
