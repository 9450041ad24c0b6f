package referee

import (
	"fmt"

	"santorini/game"
)

// Verdict says how a game ended.
type Verdict int

const (
	// Win is a win by the rules: a winning move, a stuck, surrendering or rule-breaking opponent.
	Win Verdict = iota + 1
	// Forfeit is a win because the opponent was disqualified for misconduct.
	Forfeit
	// NoContest means both players were disqualified and nobody won.
	NoContest
)

func (v Verdict) String() string {
	switch v {
	case Win:
		return "win"
	case Forfeit:
		return "forfeit"
	case NoContest:
		return "no contest"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// Outcome is the result of one game.
type Outcome struct {
	Winner       game.PlayerID
	Disqualified []game.PlayerID
	Verdict      Verdict
	Reason       string
}

func (o Outcome) IsDisqualified(id game.PlayerID) bool {
	return contains(o.Disqualified, id)
}

// SeriesResult is the result of a series of games between the same two players.
// Winners holds one entry per decided game, after FilterResults.
type SeriesResult struct {
	Disqualified []game.PlayerID
	Winners      []game.PlayerID
	Outcomes     []Outcome
}

func (s SeriesResult) Wins(id game.PlayerID) int {
	n := 0
	for _, w := range s.Winners {
		if w == id {
			n++
		}
	}
	return n
}

// Leader returns the player with the most wins, or "" on a tie.
func (s SeriesResult) Leader() game.PlayerID {
	counts := map[game.PlayerID]int{}
	var leader game.PlayerID
	best, tied := 0, false
	for _, w := range s.Winners {
		counts[w]++
	}
	for id, n := range counts {
		switch {
		case n > best:
			leader, best, tied = id, n, false
		case n == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return leader
}

// FilterResults corrects game winners once the disqualifications of a series are known.
// A win credited to a disqualified player goes to the opponent, or is dropped if both
// players were disqualified.
func FilterResults(winners []game.PlayerID, players [game.Players]game.PlayerID, disqualified []game.PlayerID) []game.PlayerID {
	filtered := make([]game.PlayerID, 0, len(winners))
	for _, w := range winners {
		if !contains(disqualified, w) {
			filtered = append(filtered, w)
			continue
		}
		opponent := players[0]
		if w == players[0] {
			opponent = players[1]
		}
		if !contains(disqualified, opponent) {
			filtered = append(filtered, opponent)
		}
	}
	return filtered
}

func contains(ids []game.PlayerID, id game.PlayerID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
