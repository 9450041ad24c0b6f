package searcher

import (
	"testing"

	"santorini/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p1 game.PlayerID = "p1"
	p2 game.PlayerID = "p2"
)

var (
	p1w1 = game.Worker{Player: p1, Number: 1}
	p1w2 = game.Worker{Player: p1, Number: 2}
	p2w1 = game.Worker{Player: p2, Number: 1}
	p2w2 = game.Worker{Player: p2, Number: 2}
)

// board places p1w1, p1w2, p2w1, p2w2 on cells in that order.
func board(t *testing.T, heights [][]int, cells ...game.Cell) game.Board {
	t.Helper()
	b := game.NewBoard(p1, p2, game.WithHeights(heights))
	for i, w := range []game.Worker{p1w1, p1w2, p2w1, p2w2} {
		require.NoError(t, b.Place(w, cells[i]))
	}
	return b
}

func after(t *testing.T, b game.Board, a game.Action) game.Board {
	t.Helper()
	require.NoError(t, b.Apply(a))
	return b
}

func TestFindTurnTakesImmediateWin(t *testing.T) {
	b := board(t, [][]int{{2, 3}}, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 2, Col: 2}, game.Cell{Row: 3, Col: 3})

	turn, ok := NewTree(2).FindTurn(b, p1)
	require.True(t, ok)
	assert.Equal(t, game.Move(p1w1, game.East), turn)
}

func TestFindTurnTakesImmediateWinNextToDome(t *testing.T) {
	b := board(t, [][]int{{2, 3}, {4, 0}}, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 2, Col: 2}, game.Cell{Row: 3, Col: 3})

	turn, ok := NewTree(2).FindTurn(b, p1)
	require.True(t, ok)
	assert.Equal(t, game.Move(p1w1, game.East), turn)
}

func TestSurvivesDepthZero(t *testing.T) {
	b := board(t, [][]int{{2, 3}}, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 2, Col: 2}, game.Cell{Row: 3, Col: 3})

	assert.True(t, Survives(after(t, b, game.Move(p1w1, game.East)), p1, 0))
	assert.True(t, Survives(after(t, b, game.MoveBuild(p1w1, game.South, game.North)), p1, 0))
}

func TestSurvivesDepthZeroRejectsImmediateLoss(t *testing.T) {
	// p2 already stands on the win height
	b := board(t, [][]int{{0, 1, 3, 2}, {0, 2, 3}}, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 1}, game.Cell{Row: 0, Col: 2}, game.Cell{Row: 1, Col: 1})

	assert.False(t, Survives(after(t, b, game.MoveBuild(p1w2, game.SouthWest, game.South)), p1, 0))
}

func TestSurvivesDepthOne(t *testing.T) {
	b := board(t, [][]int{{2, 3}, {2, 2, 2, 2}}, game.Cell{Row: 1, Col: 0}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 1, Col: 2}, game.Cell{Row: 1, Col: 3})

	assert.True(t, Survives(after(t, b, game.Move(p1w2, game.North)), p1, 1))
	assert.True(t, Survives(after(t, b, game.MoveBuild(p1w1, game.North, game.East)), p1, 1), "dome blocks the win")
	assert.False(t, Survives(after(t, b, game.MoveBuild(p1w1, game.South, game.East)), p1, 1))
	assert.False(t, Survives(after(t, b, game.MoveBuild(p1w2, game.South, game.East)), p1, 1))
}

func TestSurvivesDepthOneForSecondPlayer(t *testing.T) {
	b := board(t, [][]int{{2, 3}, {2, 2, 2, 2}, {0, 1, 3, 2, 3, 1}, {0, 3, 2, 1, 2, 3}},
		game.Cell{Row: 1, Col: 0}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 1, Col: 2}, game.Cell{Row: 1, Col: 3})

	assert.True(t, Survives(after(t, b, game.Move(p1w2, game.SouthEast)), p1, 1))
	assert.False(t, Survives(after(t, b, game.MoveBuild(p1w1, game.South, game.East)), p1, 1))
	assert.True(t, Survives(after(t, b, game.Move(p2w1, game.South)), p2, 1))
}

func TestSurvivesBoxIn(t *testing.T) {
	heights := [][]int{{0, 0, 1, 0}, {0, 4, 4}, {4, 4}}
	b := board(t, heights, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 1}, game.Cell{Row: 0, Col: 2}, game.Cell{Row: 0, Col: 3})
	next := after(t, b, game.MoveBuild(p1w2, game.SouthWest, game.NorthEast))

	assert.True(t, Survives(next, p1, 0))
	assert.False(t, Survives(next, p1, 1))
	assert.False(t, Survives(next, p1, 2))
}

func TestSurvivesSelfTrapUntilOpponentReplies(t *testing.T) {
	heights := [][]int{{0, 1}, {4}, {}, {}, {0, 0, 0, 0, 4, 4}, {0, 0, 0, 0, 4, 0}}
	b := board(t, heights, game.Cell{Row: 0, Col: 1}, game.Cell{Row: 5, Col: 5}, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 3, Col: 0})
	next := after(t, b, game.MoveBuild(p1w1, game.West, game.East))

	assert.True(t, Survives(next, p1, 0), "p1 is stuck but p2 moves first")
	assert.False(t, Survives(next, p1, 1), "p2 can keep p1 walled in")
	assert.Equal(t, game.PlayerID(""), outcome(next, p2))
	assert.Equal(t, p2, outcome(next, p1))
}

func TestFindTurnAvoidsBoxIn(t *testing.T) {
	heights := [][]int{{0, 0, 1, 0}, {0, 4, 4}, {4, 4}}
	b := board(t, heights, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 1}, game.Cell{Row: 0, Col: 2}, game.Cell{Row: 0, Col: 3})

	turn, ok := NewTree(1).FindTurn(b, p1)
	require.True(t, ok)
	assert.True(t, Survives(after(t, b, turn), p1, 1))
	assert.NotEqual(t, game.MoveBuild(p1w2, game.SouthWest, game.NorthEast), turn)
}

func TestFindTurnParallelMatchesSequential(t *testing.T) {
	heights := [][]int{{0, 0, 1, 0}, {0, 4, 4}, {4, 4}}
	b := board(t, heights, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 1}, game.Cell{Row: 0, Col: 2}, game.Cell{Row: 0, Col: 3})

	want, wantOK := NewTree(2).FindTurn(b, p1)
	got, gotOK := NewTree(2, WithGoroutines(4)).FindTurn(b, p1)
	require.True(t, wantOK)
	assert.Equal(t, wantOK, gotOK)
	assert.Equal(t, want, got)
}

func TestFindTurnNoSafeTurn(t *testing.T) {
	// p1 is too far away to cap the tower p2 stands next to
	heights := [][]int{{}, {}, {}, {}, {}, {2, 3, 2}}
	b := board(t, heights, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 2}, game.Cell{Row: 5, Col: 0}, game.Cell{Row: 5, Col: 2})

	tree := NewTree(1, WithMetrics())
	_, ok := tree.FindTurn(b, p1)
	assert.False(t, ok)
	assert.Positive(t, tree.Metrics().Nodes)
	assert.Equal(t, 1, tree.Metrics().Depth)
}

func TestNewTreePanicsOnNegativeDepth(t *testing.T) {
	assert.Panics(t, func() { NewTree(-1) })
}
