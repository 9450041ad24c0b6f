package searcher

import (
	"math"
	"sync"

	"santorini/game"
	"santorini/rules"
)

// node is a position in the search tree. Rewards are kept from the point of view of
// mover, the player whose turn led here.
type node struct {
	sync.RWMutex
	parent   *node
	mover    game.PlayerID
	toMove   game.PlayerID
	board    game.Board
	winner   game.PlayerID
	turns    []game.Action
	children []*node
	rewards  float64
	visits   int
}

func newNode(parent *node, mover game.PlayerID, b game.Board) *node {
	n := &node{
		parent: parent,
		mover:  mover,
		toMove: b.Opponent(mover),
		board:  b,
	}
	n.winner = outcome(b, n.toMove)
	if n.winner == "" {
		n.turns = rules.LegalTurns(b, n.toMove)
		n.children = make([]*node, 0, len(n.turns))
	}
	return n
}

// selectOrExpand returns the child to descend into and whether it was just added.
// A terminal node returns itself.
func (n *node) selectOrExpand() (*node, bool) {
	n.Lock()
	defer n.Unlock()

	if n.winner != "" { // Terminal node
		return n, false
	}

	if len(n.turns) > len(n.children) { // Expandable node
		turn := n.turns[len(n.children)]
		child := newNode(n, n.toMove, apply(n.board, turn))
		n.children = append(n.children, child)
		child.applyLoss()
		return child, true
	}

	// Fully expanded node
	child := n.children[n.pickChild()]
	child.applyLoss()
	return child, false
}

func (n *node) pickChild() int {
	normalizer := CSquared * math.Log(math.Max(float64(n.visits), 1))

	maxIndex := 0
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := child.score(normalizer)
		if score == math.Inf(1) {
			return i
		}
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

// applyLoss is a virtual loss that steers concurrent searches apart until backup reverses it.
func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += LOSS
	n.visits++
}

func (n *node) score(normalizer float64) float64 {
	n.RLock()
	defer n.RUnlock()

	return uct(n.rewards, n.visits, normalizer)
}

func (n *node) backup(winner game.PlayerID) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil { // Non-root node
		n.rewards -= LOSS
		n.visits--
	}

	n.rewards += reward(winner, n.mover)
	n.visits++

	return n.parent
}

func (n *node) Visits() int {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// best returns the most visited turn, or false if nothing was expanded.
func (n *node) best() (game.Action, bool) {
	n.RLock()
	defer n.RUnlock()

	if len(n.children) == 0 {
		return game.Action{}, false
	}
	bestIndex := 0
	maxVisits := n.children[0].Visits()
	for i, child := range n.children[1:] {
		if v := child.Visits(); v > maxVisits {
			maxVisits = v
			bestIndex = i + 1
		}
	}
	return n.turns[bestIndex], true
}
