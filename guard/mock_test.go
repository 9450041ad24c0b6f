package guard

import (
	"context"
	"sync/atomic"

	"santorini/game"
)

// mockPlayer answers every call with its fields; nil funcs behave well.
type mockPlayer struct {
	name    string
	id      game.PlayerID
	calls   atomic.Int32
	place   func(ctx context.Context, b game.Board) (any, error)
	turn    func(ctx context.Context, b game.Board) (any, error)
	onStart func(ctx context.Context) error
}

func (m *mockPlayer) SetIdentity(_ context.Context, id game.PlayerID) error {
	m.calls.Add(1)
	m.id = id
	return nil
}

func (m *mockPlayer) Name(context.Context) (string, error) {
	m.calls.Add(1)
	return m.name, nil
}

func (m *mockPlayer) StartOfGame(ctx context.Context) error {
	m.calls.Add(1)
	if m.onStart != nil {
		return m.onStart(ctx)
	}
	return nil
}

func (m *mockPlayer) PlaceWorker(ctx context.Context, b game.Board) (any, error) {
	m.calls.Add(1)
	if m.place != nil {
		return m.place(ctx, b)
	}
	return game.Place(game.Worker{Player: m.id, Number: 1}, game.Cell{Row: 0, Col: 0}), nil
}

func (m *mockPlayer) PlayTurn(ctx context.Context, b game.Board) (any, error) {
	m.calls.Add(1)
	if m.turn != nil {
		return m.turn(ctx, b)
	}
	return game.GiveUp(), nil
}

func (m *mockPlayer) EndOfGame(context.Context, string) error {
	m.calls.Add(1)
	return nil
}
