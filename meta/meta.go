// meta/meta.go
package meta

import "time"

// GUARD_TIMEOUT bounds every call into a player.
const GUARD_TIMEOUT = 5 * time.Second

// OBSERVER_TIMEOUT bounds every notification to an observer.
const OBSERVER_TIMEOUT = time.Second

// SERIES_GAMES is the number of games two players play against each other.
const SERIES_GAMES = 3

// TREE_DEPTH is the default look-ahead of the tree strategy.
const TREE_DEPTH = 2

// MCTS_EPISODES is the default number of episodes the mcts strategy runs per turn.
const MCTS_EPISODES = 400

// LOG_LEVEL is the default zerolog level name.
const LOG_LEVEL = "info"
