package game

import (
	"fmt"
	"strings"
)

type slot struct {
	cell   Cell
	placed bool
}

// Board holds building heights and worker positions for one game.
// It is built from fixed-size arrays, so assigning a Board copies it completely;
// a copy handed to another goroutine never aliases the original.
type Board struct {
	heights [Size][Size]int
	players [Players]PlayerID
	workers [Players][WorkersPerPlayer]slot
}

type Option func(b *Board)

// WithHeights sets the initial heights row by row. Missing rows and columns stay at 0.
func WithHeights(rows [][]int) Option {
	return func(b *Board) {
		if len(rows) > Size {
			panic(fmt.Sprintf("too many rows: %d", len(rows)))
		}
		for r, row := range rows {
			if len(row) > Size {
				panic(fmt.Sprintf("too many columns in row %d: %d", r, len(row)))
			}
			for c, h := range row {
				if h < 0 || h > MaxHeight {
					panic(fmt.Sprintf("height %d at (%d,%d) out of range", h, r, c))
				}
				b.heights[r][c] = h
			}
		}
	}
}

// NewBoard returns an empty board for the two given players. The order of the players only fixes
// the order in which Players and Positions report them.
func NewBoard(first, second PlayerID, options ...Option) Board {
	if first == "" || second == "" || first == second {
		panic("board needs two distinct players")
	}
	b := Board{players: [Players]PlayerID{first, second}}
	for _, option := range options {
		option(&b)
	}
	return b
}

func (b *Board) seat(p PlayerID) (int, bool) {
	for i, id := range b.players {
		if id == p {
			return i, true
		}
	}
	return -1, false
}

func (b *Board) slot(w Worker) (*slot, error) {
	if w.Number < 1 || w.Number > WorkersPerPlayer {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorker, w)
	}
	seat, ok := b.seat(w.Player)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, w.Player)
	}
	return &b.workers[seat][w.Number-1], nil
}

func (b Board) Players() [Players]PlayerID {
	return b.players
}

// Opponent returns the other player on the board, or "" if p is not on it.
func (b Board) Opponent(p PlayerID) PlayerID {
	switch p {
	case b.players[0]:
		return b.players[1]
	case b.players[1]:
		return b.players[0]
	}
	return ""
}

// Height returns the building height of c, or -1 if c is off the board.
func (b Board) Height(c Cell) int {
	if !c.InBounds() {
		return -1
	}
	return b.heights[c.Row][c.Col]
}

// Occupant returns the worker standing on c.
func (b Board) Occupant(c Cell) (Worker, bool) {
	if !c.InBounds() {
		return Worker{}, false
	}
	for seat := range b.workers {
		for i, s := range b.workers[seat] {
			if s.placed && s.cell == c {
				return Worker{Player: b.players[seat], Number: i + 1}, true
			}
		}
	}
	return Worker{}, false
}

func (b Board) Occupied(c Cell) bool {
	_, ok := b.Occupant(c)
	return ok
}

func (b Board) Position(w Worker) (Cell, bool) {
	s, err := b.slot(w)
	if err != nil || !s.placed {
		return Cell{}, false
	}
	return s.cell, true
}

// HeightAt returns the height of the cell one step from w in direction d.
func (b Board) HeightAt(w Worker, d Direction) (int, error) {
	pos, ok := b.Position(w)
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNotPlaced, w)
	}
	target := pos.Step(d)
	if !target.InBounds() {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, target)
	}
	return b.Height(target), nil
}

// Workers returns the placed workers of p in number order.
func (b Board) Workers(p PlayerID) []Worker {
	seat, ok := b.seat(p)
	if !ok {
		return nil
	}
	var workers []Worker
	for i, s := range b.workers[seat] {
		if s.placed {
			workers = append(workers, Worker{Player: p, Number: i + 1})
		}
	}
	return workers
}

// Positions returns the cells of all placed workers grouped by owner.
func (b Board) Positions() map[PlayerID][]Cell {
	positions := make(map[PlayerID][]Cell, Players)
	for seat, p := range b.players {
		cells := []Cell{}
		for _, s := range b.workers[seat] {
			if s.placed {
				cells = append(cells, s.cell)
			}
		}
		positions[p] = cells
	}
	return positions
}

// Placed returns the number of workers on the board.
func (b Board) Placed() int {
	n := 0
	for seat := range b.workers {
		for _, s := range b.workers[seat] {
			if s.placed {
				n++
			}
		}
	}
	return n
}

func (b *Board) Place(w Worker, c Cell) error {
	s, err := b.slot(w)
	if err != nil {
		return err
	}
	if s.placed {
		return fmt.Errorf("%w: %v", ErrAlreadyPlaced, w)
	}
	if !c.InBounds() {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if b.Occupied(c) {
		return fmt.Errorf("%w: %v", ErrOccupied, c)
	}
	s.cell = c
	s.placed = true
	return nil
}

// Move steps w one cell in direction d. Only bounds are checked here.
func (b *Board) Move(w Worker, d Direction) error {
	s, err := b.slot(w)
	if err != nil {
		return err
	}
	if !s.placed {
		return fmt.Errorf("%w: %v", ErrNotPlaced, w)
	}
	target := s.cell.Step(d)
	if !target.InBounds() {
		return fmt.Errorf("move %v %v: %w", w, d, ErrOutOfBounds)
	}
	s.cell = target
	return nil
}

// Build adds one floor to the cell one step from w in direction d.
func (b *Board) Build(w Worker, d Direction) error {
	pos, ok := b.Position(w)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNotPlaced, w)
	}
	target := pos.Step(d)
	if !target.InBounds() {
		return fmt.Errorf("build %v %v: %w", w, d, ErrOutOfBounds)
	}
	if b.heights[target.Row][target.Col] >= MaxHeight {
		return fmt.Errorf("build %v %v: %w", w, d, ErrMaxHeight)
	}
	b.heights[target.Row][target.Col]++
	return nil
}

// Apply performs a placement or a turn. A give up leaves the board untouched.
func (b *Board) Apply(a Action) error {
	switch a.Kind {
	case GiveUpAction:
		return nil
	case PlaceAction:
		return b.Place(a.Worker, a.Cell)
	case MoveAction:
		return b.Move(a.Worker, a.Move)
	case MoveBuildAction:
		if err := b.Move(a.Worker, a.Move); err != nil {
			return err
		}
		return b.Build(a.Worker, a.Build)
	}
	return fmt.Errorf("unknown action kind %d", a.Kind)
}

// String renders heights and workers, one row per line. Workers are shown as
// A1/A2 for the first player and B1/B2 for the second.
func (b Board) String() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := Cell{Row: r, Col: c}
			fmt.Fprintf(&sb, "%d", b.heights[r][c])
			if w, ok := b.Occupant(cell); ok {
				seat, _ := b.seat(w.Player)
				fmt.Fprintf(&sb, "%c%d", 'A'+seat, w.Number)
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
