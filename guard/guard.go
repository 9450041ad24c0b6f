// Package guard wraps an untrusted player so that nothing it does can stall, crash
// or corrupt the referee. Every call runs under a deadline, every returned placement
// and turn is shape checked, ownership checked and then rule checked.
package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"santorini/game"
	"santorini/meta"
	"santorini/player"
	"santorini/rules"
	"santorini/sandbox"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errAbandoned = errors.New("player abandoned after an earlier timeout")

type Option func(g *Guard)

func WithTimeout(timeout time.Duration) Option {
	return func(g *Guard) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

// Guard wraps exactly one player. Its failure record and abandonment survive across
// all games of a series.
type Guard struct {
	player  player.Player
	timeout time.Duration
	logger  zerolog.Logger

	mu        sync.Mutex
	id        game.PlayerID
	abandoned bool
	failures  []*Error
}

func New(p player.Player, options ...Option) *Guard {
	g := &Guard{
		player:  p,
		timeout: meta.GUARD_TIMEOUT,
		logger:  log.Logger,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// ID returns the identity assigned by the last SetIdentity call.
func (g *Guard) ID() game.PlayerID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *Guard) Timeout() time.Duration {
	return g.timeout
}

// Abandoned reports whether the player timed out and is no longer called.
func (g *Guard) Abandoned() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.abandoned
}

// Failures returns every failure recorded so far, oldest first.
func (g *Guard) Failures() []*Error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]*Error(nil), g.failures...)
}

func (g *Guard) fail(op string, kind Kind, err error) *Error {
	e := &Error{Kind: kind, Op: op, Err: err}

	g.mu.Lock()
	g.failures = append(g.failures, e)
	if kind == Timeout {
		g.abandoned = true
	}
	id := g.id
	g.mu.Unlock()

	g.logger.Warn().Str("player", string(id)).Str("op", op).Msgf("player failed: %v", e)
	return e
}

// call runs fn against the player under the guard's deadline and classifies the outcome.
// Cancellation of ctx itself is returned unclassified.
func call[T any](ctx context.Context, g *Guard, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if g.Abandoned() {
		return zero, g.fail(op, Timeout, errAbandoned)
	}

	v, err := sandbox.Call(ctx, g.timeout, fn)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, sandbox.ErrTimeout):
		return zero, g.fail(op, Timeout, fmt.Errorf("no answer within %v: %w", g.timeout, err))
	case ctx.Err() != nil:
		return zero, ctx.Err()
	}
	return zero, g.fail(op, RaisedException, err)
}

func (g *Guard) SetIdentity(ctx context.Context, id game.PlayerID) error {
	g.mu.Lock()
	g.id = id
	g.mu.Unlock()

	_, err := call(ctx, g, "set-identity", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.player.SetIdentity(ctx, id)
	})
	return err
}

// Name asks for the display name. An empty name is malformed.
func (g *Guard) Name(ctx context.Context) (string, error) {
	name, err := call(ctx, g, "name", g.player.Name)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", g.fail("name", MalformedData, errors.New("empty name"))
	}
	return name, nil
}

func (g *Guard) StartOfGame(ctx context.Context) error {
	_, err := call(ctx, g, "start-of-game", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.player.StartOfGame(ctx)
	})
	return err
}

// PlaceWorker asks for a placement on a copy of b and returns it once it is well formed,
// refers to one of the player's own workers and is legal.
func (g *Guard) PlaceWorker(ctx context.Context, b game.Board) (game.Action, error) {
	const op = "place-worker"
	raw, err := call(ctx, g, op, func(ctx context.Context) (any, error) {
		return g.player.PlaceWorker(ctx, b)
	})
	if err != nil {
		return game.Action{}, err
	}

	placement, err := placementFrom(raw)
	if err != nil {
		return game.Action{}, g.fail(op, MalformedData, err)
	}
	if err := g.checkOwner(op, placement.Worker); err != nil {
		return game.Action{}, err
	}
	if !rules.CanPlace(b, placement.Worker, placement.Cell) {
		return game.Action{}, g.fail(op, InvalidPlacement, fmt.Errorf("cannot place %v at %v", placement.Worker, placement.Cell))
	}
	return placement, nil
}

// PlayTurn asks for a turn on a copy of b. A give up is returned as is.
func (g *Guard) PlayTurn(ctx context.Context, b game.Board) (game.Action, error) {
	const op = "play-turn"
	raw, err := call(ctx, g, op, func(ctx context.Context) (any, error) {
		return g.player.PlayTurn(ctx, b)
	})
	if err != nil {
		return game.Action{}, err
	}

	turn, err := turnFrom(raw)
	if err != nil {
		return game.Action{}, g.fail(op, MalformedData, err)
	}
	if turn.Kind == game.GiveUpAction {
		return turn, nil
	}
	if err := g.checkOwner(op, turn.Worker); err != nil {
		return game.Action{}, err
	}
	if !rules.IsValidTurn(b, turn) {
		return game.Action{}, g.fail(op, InvalidTurn, fmt.Errorf("illegal turn %v", turn))
	}
	return turn, nil
}

func (g *Guard) EndOfGame(ctx context.Context, winner string) error {
	_, err := call(ctx, g, "end-of-game", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, g.player.EndOfGame(ctx, winner)
	})
	return err
}

func (g *Guard) checkOwner(op string, w game.Worker) error {
	id := g.ID()
	if w.Player != id {
		return g.fail(op, UnownedWorker, fmt.Errorf("worker %v does not belong to %s", w, id))
	}
	return nil
}
