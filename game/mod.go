package game

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	Size             = 6
	MaxHeight        = 4
	WinHeight        = MaxHeight - 1
	Players          = 2
	WorkersPerPlayer = 2
	MaxWorkers       = Players * WorkersPerPlayer
)

// PlayerID identifies a player for the lifetime of a series. The empty ID means "no player".
type PlayerID string

func NewPlayerID() PlayerID {
	return PlayerID(uuid.NewString())
}

// Worker is a piece, referenced by its owner and its number (1 or 2).
type Worker struct {
	Player PlayerID
	Number int
}

func (w Worker) Valid() bool {
	return w.Player != "" && w.Number >= 1 && w.Number <= WorkersPerPlayer
}

func (w Worker) String() string {
	return fmt.Sprintf("%s#%d", w.Player, w.Number)
}

type Cell struct {
	Row int
	Col int
}

func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < Size && c.Col >= 0 && c.Col < Size
}

func (c Cell) Step(d Direction) Cell {
	dr, dc := d.Vector()
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}
