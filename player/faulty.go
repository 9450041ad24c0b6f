package player

import (
	"context"
	"errors"
	"time"

	"santorini/game"
)

// The players below behave well except for one call. They exist to exercise
// the guard and the referee against real misconduct.

// Hang never answers a turn request until the caller gives up on it.
type Hang struct{ *Strategic }

func (p Hang) PlayTurn(ctx context.Context, _ game.Board) (any, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// Sleep ignores cancellation and answers every turn request after a fixed delay.
type Sleep struct {
	*Strategic
	Delay time.Duration
}

func (p Sleep) PlayTurn(ctx context.Context, b game.Board) (any, error) {
	time.Sleep(p.Delay)
	return p.Strategic.PlayTurn(ctx, b)
}

// Panic panics when asked for a turn.
type Panic struct{ *Strategic }

func (p Panic) PlayTurn(context.Context, game.Board) (any, error) {
	panic("player panicked during its turn")
}

// Failing returns an error at the start of every game.
type Failing struct{ *Strategic }

func (p Failing) StartOfGame(context.Context) error {
	return errors.New("player refused to start")
}

// Malformed answers turn requests with data that is not a turn.
type Malformed struct{ *Strategic }

func (p Malformed) PlayTurn(context.Context, game.Board) (any, error) {
	return []any{"not", "a", "real", "turn"}, nil
}

// BadPlacement places its workers off the board.
type BadPlacement struct{ *Strategic }

func (p BadPlacement) PlaceWorker(_ context.Context, b game.Board) (any, error) {
	w := game.Worker{Player: p.id, Number: len(b.Workers(p.id)) + 1}
	return []any{w, []any{-1, -1}}, nil
}

// ForeignWorker plays legal looking turns with a worker it does not own.
type ForeignWorker struct{ *Strategic }

func (p ForeignWorker) PlayTurn(ctx context.Context, b game.Board) (any, error) {
	turn, err := p.Strategic.PlayTurn(ctx, b)
	if err != nil {
		return nil, err
	}
	a := turn.(game.Action)
	if a.Kind == game.GiveUpAction {
		return a, nil
	}
	a.Worker.Player = game.NewPlayerID()
	return a, nil
}

// BadTurn builds in place, which is never legal.
type BadTurn struct{ *Strategic }

func (p BadTurn) PlayTurn(ctx context.Context, b game.Board) (any, error) {
	turn, err := p.Strategic.PlayTurn(ctx, b)
	if err != nil {
		return nil, err
	}
	a := turn.(game.Action)
	if a.Kind == game.GiveUpAction {
		return a, nil
	}
	return game.MoveBuild(a.Worker, a.Move, game.Stay), nil
}

// Mutator scribbles over the board it is given, then plays a normal turn for the board as it was.
type Mutator struct{ *Strategic }

func (p Mutator) PlayTurn(ctx context.Context, b game.Board) (any, error) {
	pristine := b
	for _, w := range b.Workers(p.id) {
		for _, d := range game.Directions {
			_ = b.Build(w, d)
		}
	}
	return p.Strategic.PlayTurn(ctx, pristine)
}
