// Package engine wires configured players, guards, observers and the referee into a series.
package engine

import (
	"context"
	"fmt"

	"santorini/config"
	"santorini/game"
	"santorini/guard"
	"santorini/observer"
	"santorini/player"
	"santorini/referee"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithObserver adds an observer next to the log observer.
func WithObserver(o observer.Observer) Option {
	return func(e *Engine) {
		e.extra = append(e.extra, o)
	}
}

type Engine struct {
	cfg     config.Config
	logger  zerolog.Logger
	extra   []observer.Observer
	guards  [game.Players]*guard.Guard
	names   map[game.PlayerID]string
	referee *referee.Referee
}

func New(cfg config.Config, registry *player.Registry, options ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e := &Engine{cfg: cfg, logger: log.Logger}
	for _, option := range options {
		option(e)
	}

	for i, spec := range cfg.Players {
		p, err := registry.New(spec)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		e.guards[i] = guard.New(p,
			guard.WithTimeout(cfg.Guard.Timeout),
			guard.WithLogger(e.logger.With().Str("player", spec.Name).Logger()),
		)
	}

	observers := observer.NewManager(
		observer.WithTimeout(cfg.Observer.Timeout),
		observer.WithLogger(e.logger),
	)
	observers.Add(observer.NewLogObserver(e.logger))
	observers.Add(e.extra...)

	e.referee = referee.New(e.guards[0], e.guards[1],
		referee.WithObservers(observers),
		referee.WithLogger(e.logger),
	)
	seats := e.referee.Players()
	e.names = map[game.PlayerID]string{}
	for i, id := range seats {
		e.names[id] = cfg.Players[i].Name
	}
	return e, nil
}

func (e *Engine) Referee() *referee.Referee {
	return e.referee
}

// Name returns the configured name of the player seated as id.
func (e *Engine) Name(id game.PlayerID) string {
	if name, ok := e.names[id]; ok {
		return name
	}
	return string(id)
}

// Run plays the configured series and logs the standings.
func (e *Engine) Run(ctx context.Context) (referee.SeriesResult, error) {
	e.logger.Info().Msgf("series of %d games: %s vs %s", e.cfg.Series.Games, e.cfg.Players[0].Name, e.cfg.Players[1].Name)

	result, err := e.referee.RunNGames(ctx, e.cfg.Series.Games)
	if err != nil {
		return result, fmt.Errorf("run series: %w", err)
	}

	for _, id := range e.referee.Players() {
		e.logger.Info().Msgf("%s won %d of %d games", e.Name(id), result.Wins(id), len(result.Outcomes))
	}
	for _, id := range result.Disqualified {
		e.logger.Warn().Msgf("%s was disqualified", e.Name(id))
	}
	if leader := result.Leader(); leader != "" {
		e.logger.Info().Msgf("%s leads the series", e.Name(leader))
	} else {
		e.logger.Info().Msg("series tied")
	}
	return result, nil
}
