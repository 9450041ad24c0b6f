package observer

import (
	"context"

	"santorini/game"

	"github.com/rs/zerolog"
)

// LogObserver writes one structured log event per notification.
type LogObserver struct {
	logger zerolog.Logger
}

func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (l *LogObserver) OnPlacement(_ context.Context, b game.Board, placement game.Action, names map[game.PlayerID]string) error {
	l.logger.Info().
		Str("player", names[placement.Worker.Player]).
		Int("worker", placement.Worker.Number).
		Str("cell", placement.Cell.String()).
		Msg("placement")
	l.logger.Debug().Msg("\n" + b.String())
	return nil
}

func (l *LogObserver) OnTurn(_ context.Context, b game.Board, turn game.Action, names map[game.PlayerID]string) error {
	event := l.logger.Info().
		Str("player", names[turn.Worker.Player]).
		Int("worker", turn.Worker.Number).
		Str("move", turn.Move.String())
	if turn.Kind == game.MoveBuildAction {
		event = event.Str("build", turn.Build.String())
	}
	event.Msg("turn")
	l.logger.Debug().Msg("\n" + b.String())
	return nil
}

func (l *LogObserver) OnGiveUp(_ context.Context, name string) error {
	l.logger.Info().Str("player", name).Msg("gave up")
	return nil
}

func (l *LogObserver) OnGameOver(_ context.Context, b game.Board, winner string, _ map[game.PlayerID]string) error {
	l.logger.Info().Str("winner", winner).Msg("game over")
	l.logger.Debug().Msg("\n" + b.String())
	return nil
}

func (l *LogObserver) OnError(_ context.Context, message string) error {
	l.logger.Warn().Msg(message)
	return nil
}
