package observer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"santorini/game"
	"santorini/meta"
	"santorini/sandbox"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
)

type Option func(m *Manager)

func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager delivers each event to all active observers at once. An observer that fails,
// panics or takes longer than the timeout is removed; the rest hear about it through OnError.
// A nil *Manager drops every event.
type Manager struct {
	timeout time.Duration
	logger  zerolog.Logger

	mu        sync.Mutex
	observers []*entry
}

type entry struct {
	observer Observer
}

func NewManager(options ...Option) *Manager {
	m := &Manager{
		timeout: meta.OBSERVER_TIMEOUT,
		logger:  log.Logger,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Manager) Add(observers ...Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range observers {
		m.observers = append(m.observers, &entry{observer: o})
	}
}

// Len returns the number of active observers.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.observers)
}

type notification func(ctx context.Context, o Observer) error

func (m *Manager) NotifyPlacement(ctx context.Context, b game.Board, placement game.Action, names map[game.PlayerID]string) {
	m.notify(ctx, "placement", func(ctx context.Context, o Observer) error {
		return o.OnPlacement(ctx, b, placement, maps.Clone(names))
	})
}

func (m *Manager) NotifyTurn(ctx context.Context, b game.Board, turn game.Action, names map[game.PlayerID]string) {
	m.notify(ctx, "turn", func(ctx context.Context, o Observer) error {
		return o.OnTurn(ctx, b, turn, maps.Clone(names))
	})
}

func (m *Manager) NotifyGiveUp(ctx context.Context, name string) {
	m.notify(ctx, "give-up", func(ctx context.Context, o Observer) error {
		return o.OnGiveUp(ctx, name)
	})
}

func (m *Manager) NotifyGameOver(ctx context.Context, b game.Board, winner string, names map[game.PlayerID]string) {
	m.notify(ctx, "game-over", func(ctx context.Context, o Observer) error {
		return o.OnGameOver(ctx, b, winner, maps.Clone(names))
	})
}

func (m *Manager) NotifyError(ctx context.Context, message string) {
	m.notify(ctx, "error", func(ctx context.Context, o Observer) error {
		return o.OnError(ctx, message)
	})
}

func (m *Manager) notify(ctx context.Context, event string, fn notification) {
	if m == nil {
		return
	}
	failed := m.broadcast(ctx, fn)
	if len(failed) == 0 {
		return
	}

	messages := make([]string, 0, len(failed))
	for i, err := range failed {
		m.logger.Warn().Int("observer", i).Str("event", event).Msgf("dropping observer: %v", err)
		messages = append(messages, fmt.Sprintf("observer dropped during %s: %v", event, err))
	}
	// Failures while reporting failures only remove more observers.
	for _, msg := range messages {
		m.broadcast(ctx, func(ctx context.Context, o Observer) error {
			return o.OnError(ctx, msg)
		})
	}
}

// broadcast calls fn for every active observer concurrently and removes those that failed.
// It returns the failures keyed by the failed observer's position.
func (m *Manager) broadcast(ctx context.Context, fn notification) map[int]error {
	m.mu.Lock()
	active := append([]*entry(nil), m.observers...)
	m.mu.Unlock()

	errs := make([]error, len(active))
	var wg sync.WaitGroup
	for i, e := range active {
		wg.Add(1)
		go func(i int, o Observer) {
			defer wg.Done()
			errs[i] = sandbox.Run(ctx, m.timeout, func(ctx context.Context) error {
				return fn(ctx, o)
			})
		}(i, e.observer)
	}
	wg.Wait()

	// Cancellation of the game is not the observers' fault.
	if ctx.Err() != nil {
		return nil
	}

	failed := map[int]error{}
	dropped := map[*entry]bool{}
	for i, err := range errs {
		if err != nil {
			failed[i] = err
			dropped[active[i]] = true
		}
	}
	if len(failed) > 0 {
		m.remove(dropped)
	}
	return failed
}

func (m *Manager) remove(dropped map[*entry]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.observers[:0]
	for _, e := range m.observers {
		if !dropped[e] {
			kept = append(kept, e)
		}
	}
	m.observers = kept
}
