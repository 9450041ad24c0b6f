package searcher

import (
	"math"

	"santorini/game"
	"santorini/rules"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const WIN = 1.0   // Reward for winning outcome
const LOSS = -WIN // Reward for loss outcome
const DRAW = 0.0  // Reward when a rollout hits the cutoff

const MaxCutoff = 60

func uct(rewards float64, visits int, c2LnN float64) float64 {
	if visits == 0 { // Prioritize unexplored nodes
		return math.Inf(1)
	}
	return rewards/float64(visits) + math.Sqrt(c2LnN/float64(visits))
}

func reward(winner, player game.PlayerID) float64 {
	switch winner {
	case "":
		return DRAW
	case player:
		return WIN
	}
	return LOSS
}

// outcome returns the winner of b when toMove is about to play, or "" if the game goes on.
func outcome(b game.Board, toMove game.PlayerID) game.PlayerID {
	return rules.WinnerBefore(b, toMove)
}
