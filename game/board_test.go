package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice PlayerID = "alice"
	bob   PlayerID = "bob"
)

func TestPlaceAndPosition(t *testing.T) {
	b := NewBoard(alice, bob)
	w := Worker{Player: alice, Number: 1}

	require.NoError(t, b.Place(w, Cell{Row: 2, Col: 3}))

	pos, ok := b.Position(w)
	require.True(t, ok)
	assert.Equal(t, Cell{Row: 2, Col: 3}, pos)
	assert.True(t, b.Occupied(Cell{Row: 2, Col: 3}))
	assert.Equal(t, 1, b.Placed())
}

func TestPlaceRejects(t *testing.T) {
	b := NewBoard(alice, bob)
	require.NoError(t, b.Place(Worker{Player: alice, Number: 1}, Cell{Row: 0, Col: 0}))

	assert.ErrorIs(t, b.Place(Worker{Player: bob, Number: 1}, Cell{Row: 0, Col: 0}), ErrOccupied)
	assert.ErrorIs(t, b.Place(Worker{Player: alice, Number: 1}, Cell{Row: 1, Col: 1}), ErrAlreadyPlaced)
	assert.ErrorIs(t, b.Place(Worker{Player: bob, Number: 2}, Cell{Row: -1, Col: 0}), ErrOutOfBounds)
	assert.ErrorIs(t, b.Place(Worker{Player: bob, Number: 2}, Cell{Row: 0, Col: Size}), ErrOutOfBounds)
	assert.ErrorIs(t, b.Place(Worker{Player: "carol", Number: 1}, Cell{Row: 3, Col: 3}), ErrUnknownPlayer)
	assert.ErrorIs(t, b.Place(Worker{Player: bob, Number: 3}, Cell{Row: 3, Col: 3}), ErrInvalidWorker)
}

func TestMoveAndBuild(t *testing.T) {
	b := NewBoard(alice, bob)
	w := Worker{Player: alice, Number: 2}
	require.NoError(t, b.Place(w, Cell{Row: 1, Col: 1}))

	require.NoError(t, b.Move(w, SouthEast))
	pos, _ := b.Position(w)
	assert.Equal(t, Cell{Row: 2, Col: 2}, pos)

	require.NoError(t, b.Build(w, NorthWest))
	assert.Equal(t, 1, b.Height(Cell{Row: 1, Col: 1}))

	h, err := b.HeightAt(w, NorthWest)
	require.NoError(t, err)
	assert.Equal(t, 1, h)
}

func TestMoveOutOfBounds(t *testing.T) {
	b := NewBoard(alice, bob)
	w := Worker{Player: bob, Number: 1}
	require.NoError(t, b.Place(w, Cell{Row: 0, Col: 5}))

	assert.ErrorIs(t, b.Move(w, NorthEast), ErrOutOfBounds)
	assert.ErrorIs(t, b.Build(w, East), ErrOutOfBounds)
	_, err := b.HeightAt(w, North)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestBuildAtMaxHeight(t *testing.T) {
	b := NewBoard(alice, bob, WithHeights([][]int{{0, MaxHeight}}))
	w := Worker{Player: alice, Number: 1}
	require.NoError(t, b.Place(w, Cell{Row: 0, Col: 0}))

	assert.ErrorIs(t, b.Build(w, East), ErrMaxHeight)
	assert.Equal(t, MaxHeight, b.Height(Cell{Row: 0, Col: 1}))
}

func TestCopyDoesNotAlias(t *testing.T) {
	b := NewBoard(alice, bob)
	w := Worker{Player: alice, Number: 1}
	require.NoError(t, b.Place(w, Cell{Row: 3, Col: 3}))

	snapshot := b
	require.NoError(t, snapshot.Move(w, North))
	require.NoError(t, snapshot.Build(w, South))

	pos, _ := b.Position(w)
	assert.Equal(t, Cell{Row: 3, Col: 3}, pos)
	assert.Equal(t, 0, b.Height(Cell{Row: 3, Col: 3}))
}

func TestPositionsGroupedByOwner(t *testing.T) {
	b := NewBoard(alice, bob)
	require.NoError(t, b.Place(Worker{Player: alice, Number: 1}, Cell{Row: 0, Col: 0}))
	require.NoError(t, b.Place(Worker{Player: bob, Number: 1}, Cell{Row: 1, Col: 1}))
	require.NoError(t, b.Place(Worker{Player: alice, Number: 2}, Cell{Row: 2, Col: 2}))

	positions := b.Positions()
	assert.Equal(t, []Cell{{0, 0}, {2, 2}}, positions[alice])
	assert.Equal(t, []Cell{{1, 1}}, positions[bob])
	assert.Equal(t, []Worker{{alice, 1}, {alice, 2}}, b.Workers(alice))
	assert.Equal(t, bob, b.Opponent(alice))
	assert.Equal(t, PlayerID(""), b.Opponent("carol"))
}

func TestApply(t *testing.T) {
	b := NewBoard(alice, bob)
	w := Worker{Player: bob, Number: 1}
	require.NoError(t, b.Apply(Place(w, Cell{Row: 4, Col: 4})))
	require.NoError(t, b.Apply(MoveBuild(w, West, East)))
	require.NoError(t, b.Apply(GiveUp()))

	pos, _ := b.Position(w)
	assert.Equal(t, Cell{Row: 4, Col: 3}, pos)
	assert.Equal(t, 1, b.Height(Cell{Row: 4, Col: 4}))
}

func TestWithHeightsPanicsOnBadHeight(t *testing.T) {
	assert.Panics(t, func() { NewBoard(alice, bob, WithHeights([][]int{{MaxHeight + 1}})) })
	assert.Panics(t, func() { NewBoard(alice, alice) })
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("east")
	require.NoError(t, err)
	assert.Equal(t, East, d)

	d, err = ParseDirection("SW")
	require.NoError(t, err)
	assert.Equal(t, SouthWest, d)

	d, err = ParseDirection("PUT")
	require.NoError(t, err)
	assert.Equal(t, Stay, d)

	_, err = ParseDirection("up")
	assert.Error(t, err)
	assert.False(t, Direction(42).Valid())
}
