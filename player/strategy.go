package player

import (
	"math"

	"santorini/game"
	"santorini/rules"

	"golang.org/x/exp/rand"
)

// PlacementStrategy picks a free cell for the next worker of me.
type PlacementStrategy interface {
	Place(b game.Board, me game.PlayerID) (game.Cell, bool)
}

// TurnStrategy picks a turn for me. It reports false when it has no turn to offer.
// *searcher.Tree satisfies it.
type TurnStrategy interface {
	FindTurn(b game.Board, me game.PlayerID) (game.Action, bool)
}

// Diagonal places on the first free cell of the main diagonal.
type Diagonal struct{}

func (Diagonal) Place(b game.Board, _ game.PlayerID) (game.Cell, bool) {
	for i := 0; i < game.Size; i++ {
		c := game.Cell{Row: i, Col: i}
		if !b.Occupied(c) {
			return c, true
		}
	}
	return game.Cell{}, false
}

// Far places on the free cell whose nearest opposing worker is farthest away.
// Ties go to the first such cell in row-major order.
type Far struct{}

func (Far) Place(b game.Board, me game.PlayerID) (game.Cell, bool) {
	opponents := b.Positions()[b.Opponent(me)]

	best, found := game.Cell{}, false
	bestDistance := -1.0
	for r := 0; r < game.Size; r++ {
		for c := 0; c < game.Size; c++ {
			cell := game.Cell{Row: r, Col: c}
			if b.Occupied(cell) {
				continue
			}
			nearest := float64(2 * game.Size)
			for _, o := range opponents {
				nearest = math.Min(nearest, math.Hypot(float64(r-o.Row), float64(c-o.Col)))
			}
			if nearest > bestDistance {
				best, found, bestDistance = cell, true, nearest
			}
		}
	}
	return best, found
}

// Random plays a uniformly chosen legal turn, preferring an immediate win.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) FindTurn(b game.Board, me game.PlayerID) (game.Action, bool) {
	turns := rules.LegalTurns(b, me)
	if len(turns) == 0 {
		return game.Action{}, false
	}
	for _, turn := range turns {
		if turn.Kind == game.MoveAction {
			return turn, true
		}
	}
	return turns[r.rng.Intn(len(turns))], true
}

// First plays the first legal turn in enumeration order.
type First struct{}

func (First) FindTurn(b game.Board, me game.PlayerID) (game.Action, bool) {
	turns := rules.LegalTurns(b, me)
	if len(turns) == 0 {
		return game.Action{}, false
	}
	return turns[0], true
}
