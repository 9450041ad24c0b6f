package player

import (
	"context"
	"errors"

	"santorini/game"
)

// Player is the contract every player implementation follows. Implementations are untrusted:
// the referee only ever talks to them through a guard, which bounds every call in time and
// checks what comes back. PlaceWorker and PlayTurn return loosely typed values for that reason;
// well-behaved players return a game.Action.
type Player interface {
	SetIdentity(ctx context.Context, id game.PlayerID) error
	Name(ctx context.Context) (string, error)
	StartOfGame(ctx context.Context) error
	PlaceWorker(ctx context.Context, b game.Board) (any, error)
	PlayTurn(ctx context.Context, b game.Board) (any, error)
	EndOfGame(ctx context.Context, winner string) error
}

var ErrNoPlacement = errors.New("no free cell to place a worker")

// Strategic plays by delegating placements and turns to its strategies.
type Strategic struct {
	name      string
	id        game.PlayerID
	placement PlacementStrategy
	turns     TurnStrategy
	wins      int
	games     int
}

func NewStrategic(name string, placement PlacementStrategy, turns TurnStrategy) *Strategic {
	return &Strategic{
		name:      name,
		placement: placement,
		turns:     turns,
	}
}

func (p *Strategic) SetIdentity(_ context.Context, id game.PlayerID) error {
	p.id = id
	return nil
}

func (p *Strategic) Name(context.Context) (string, error) {
	return p.name, nil
}

func (p *Strategic) StartOfGame(context.Context) error {
	p.games++
	return nil
}

// PlaceWorker places the next unplaced worker where the placement strategy says.
func (p *Strategic) PlaceWorker(_ context.Context, b game.Board) (any, error) {
	cell, ok := p.placement.Place(b, p.id)
	if !ok {
		return nil, ErrNoPlacement
	}
	next := game.Worker{Player: p.id, Number: len(b.Workers(p.id)) + 1}
	return game.Place(next, cell), nil
}

// PlayTurn gives up when the turn strategy finds nothing worth playing.
func (p *Strategic) PlayTurn(_ context.Context, b game.Board) (any, error) {
	turn, ok := p.turns.FindTurn(b, p.id)
	if !ok {
		return game.GiveUp(), nil
	}
	return turn, nil
}

func (p *Strategic) EndOfGame(_ context.Context, winner string) error {
	if winner == p.name {
		p.wins++
	}
	return nil
}

// Record returns the games started and won since the player was created.
func (p *Strategic) Record() (games, wins int) {
	return p.games, p.wins
}
