// Package observer fans game events out to best-effort watchers.
package observer

import (
	"context"

	"santorini/game"
)

// Observer is told about every externally visible event of a game. Names maps player
// identities to display names; each observer gets its own copy.
type Observer interface {
	OnPlacement(ctx context.Context, b game.Board, placement game.Action, names map[game.PlayerID]string) error
	OnTurn(ctx context.Context, b game.Board, turn game.Action, names map[game.PlayerID]string) error
	OnGiveUp(ctx context.Context, name string) error
	OnGameOver(ctx context.Context, b game.Board, winner string, names map[game.PlayerID]string) error
	OnError(ctx context.Context, message string) error
}
