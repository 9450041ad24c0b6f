// Package rules decides legality of placements and turns and detects the end of a game.
// Every function takes the board it inspects as an argument and never mutates it.
package rules

import "santorini/game"

// CanPlace reports whether w may be placed on c.
func CanPlace(b game.Board, w game.Worker, c game.Cell) bool {
	if !w.Valid() || b.Opponent(w.Player) == "" {
		return false
	}
	if !c.InBounds() || b.Occupied(c) {
		return false
	}
	if b.Placed() >= game.MaxWorkers {
		return false
	}
	_, placed := b.Position(w)
	return !placed
}

// destination returns the cells w leaves and enters when moving in direction d,
// and whether that move is legal on its own.
func destination(b game.Board, w game.Worker, d game.Direction) (game.Cell, game.Cell, bool) {
	if !d.Valid() || d == game.Stay {
		return game.Cell{}, game.Cell{}, false
	}
	from, ok := b.Position(w)
	if !ok {
		return game.Cell{}, game.Cell{}, false
	}
	to := from.Step(d)
	if !to.InBounds() || b.Occupied(to) {
		return game.Cell{}, game.Cell{}, false
	}
	height := b.Height(to)
	if height >= game.MaxHeight || height-b.Height(from) > 1 {
		return game.Cell{}, game.Cell{}, false
	}
	return from, to, true
}

// CanMove reports whether w may move in direction d, ignoring any build.
// Climbing is limited to one floor; stepping down is unrestricted; domes are never entered.
func CanMove(b game.Board, w game.Worker, d game.Direction) bool {
	_, _, ok := destination(b, w, d)
	return ok
}

// IsWinningMove reports whether moving w in direction d is legal and lands on the win height.
func IsWinningMove(b game.Board, w game.Worker, d game.Direction) bool {
	_, to, ok := destination(b, w, d)
	return ok && b.Height(to) == game.WinHeight
}

// CanMoveAndBuild reports whether w may move in direction move and then build in direction build,
// measured from the cell it moved to. Building on the cell just vacated is allowed.
func CanMoveAndBuild(b game.Board, w game.Worker, move, build game.Direction) bool {
	from, to, ok := destination(b, w, move)
	if !ok {
		return false
	}
	if !build.Valid() || build == game.Stay {
		return false
	}
	target := to.Step(build)
	if !target.InBounds() {
		return false
	}
	if target != from && b.Occupied(target) {
		return false
	}
	return b.Height(target) < game.MaxHeight
}

// IsValidTurn reports whether a is a legal turn. A move without a build is only legal
// when it wins. A give up is not a turn and is never valid here.
func IsValidTurn(b game.Board, a game.Action) bool {
	switch a.Kind {
	case game.MoveAction:
		return IsWinningMove(b, a.Worker, a.Move)
	case game.MoveBuildAction:
		return CanMoveAndBuild(b, a.Worker, a.Move, a.Build)
	}
	return false
}

// LegalTurns enumerates every legal turn for p in a fixed order: worker number,
// then move direction, then build direction. A winning move appears once, without a build.
func LegalTurns(b game.Board, p game.PlayerID) []game.Action {
	var turns []game.Action
	eachTurn(b, p, func(a game.Action) bool {
		turns = append(turns, a)
		return true
	})
	return turns
}

// HasLegalTurn reports whether p has at least one legal turn.
func HasLegalTurn(b game.Board, p game.PlayerID) bool {
	found := false
	eachTurn(b, p, func(game.Action) bool {
		found = true
		return false
	})
	return found
}

func eachTurn(b game.Board, p game.PlayerID, yield func(game.Action) bool) {
	for _, w := range b.Workers(p) {
		for _, move := range game.Directions {
			if !CanMove(b, w, move) {
				continue
			}
			if IsWinningMove(b, w, move) {
				if !yield(game.Move(w, move)) {
					return
				}
				continue
			}
			for _, build := range game.Directions {
				if CanMoveAndBuild(b, w, move, build) {
					if !yield(game.MoveBuild(w, move, build)) {
						return
					}
				}
			}
		}
	}
}

// Winner returns the player with a worker standing on the win height, or "" if there is none.
// Being stuck only loses for the player about to move; see WinnerBefore.
func Winner(b game.Board) game.PlayerID {
	for _, p := range b.Players() {
		for _, w := range b.Workers(p) {
			pos, _ := b.Position(w)
			if b.Height(pos) == game.WinHeight {
				return p
			}
		}
	}
	return ""
}

// WinnerBefore returns the winner of b when toMove is about to take a turn, or "" if the
// game goes on. A toMove without any legal turn has lost.
func WinnerBefore(b game.Board, toMove game.PlayerID) game.PlayerID {
	if w := Winner(b); w != "" {
		return w
	}
	if !HasLegalTurn(b, toMove) {
		return b.Opponent(toMove)
	}
	return ""
}

// IsGameOver reports whether the game has ended before p, the player about to move, takes a turn.
func IsGameOver(b game.Board, p game.PlayerID) bool {
	return WinnerBefore(b, p) != ""
}
