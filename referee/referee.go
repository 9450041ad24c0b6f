// Package referee runs games between two guarded players and decides who won.
package referee

import (
	"context"
	"fmt"

	"santorini/game"
	"santorini/guard"
	"santorini/observer"
	"santorini/rules"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(r *Referee)

func WithObservers(observers *observer.Manager) Option {
	return func(r *Referee) {
		r.observers = observers
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Referee) {
		r.logger = logger
	}
}

// WithIdentities uses the given identities instead of fresh ones.
func WithIdentities(a, b game.PlayerID) Option {
	return func(r *Referee) {
		if a != "" && b != "" && a != b {
			r.seats = [game.Players]game.PlayerID{a, b}
		}
	}
}

// Referee owns the board of the game being played. Players only ever see copies.
type Referee struct {
	seats     [game.Players]game.PlayerID
	guards    map[game.PlayerID]*guard.Guard
	observers *observer.Manager
	logger    zerolog.Logger
}

func New(a, b *guard.Guard, options ...Option) *Referee {
	if a == nil || b == nil || a == b {
		panic("referee needs two distinct guards")
	}
	r := &Referee{
		seats:  [game.Players]game.PlayerID{game.NewPlayerID(), game.NewPlayerID()},
		logger: log.Logger,
	}
	for _, option := range options {
		option(r)
	}
	r.guards = map[game.PlayerID]*guard.Guard{r.seats[0]: a, r.seats[1]: b}
	return r
}

// Players returns the identities of the two players in seat order.
func (r *Referee) Players() [game.Players]game.PlayerID {
	return r.seats
}

func (r *Referee) opponent(id game.PlayerID) game.PlayerID {
	if id == r.seats[0] {
		return r.seats[1]
	}
	return r.seats[0]
}

// match is the state of one game.
type match struct {
	board        game.Board
	order        [game.Players]game.PlayerID
	names        map[game.PlayerID]string
	identified   map[game.PlayerID]bool
	disqualified []game.PlayerID
}

func (m *match) name(id game.PlayerID) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return string(id)
}

func (m *match) disqualify(id game.PlayerID) {
	if !contains(m.disqualified, id) {
		m.disqualified = append(m.disqualified, id)
	}
}

// RunGame plays one game with first moving first. The error is only set when ctx ends.
func (r *Referee) RunGame(ctx context.Context, first game.PlayerID) (Outcome, error) {
	if _, ok := r.guards[first]; !ok {
		return Outcome{}, fmt.Errorf("unknown first player %s", first)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	order := [game.Players]game.PlayerID{first, r.opponent(first)}
	m := &match{
		board:      game.NewBoard(order[0], order[1]),
		order:      order,
		names:      map[game.PlayerID]string{},
		identified: map[game.PlayerID]bool{},
	}

	r.logger.Info().Msgf("player %s is starting", first)
	outcome, err := r.play(ctx, m)
	if err != nil {
		return Outcome{}, err
	}
	return r.finish(ctx, m, outcome)
}

func (r *Referee) play(ctx context.Context, m *match) (Outcome, error) {
	for _, id := range m.order {
		g := r.guards[id]
		if err := g.SetIdentity(ctx, id); err != nil {
			return r.fault(ctx, m, id, err)
		}
		name, err := g.Name(ctx)
		if err != nil {
			return r.fault(ctx, m, id, err)
		}
		m.names[id] = name
		m.identified[id] = true
	}

	for _, id := range m.order {
		if err := r.guards[id].StartOfGame(ctx); err != nil {
			return r.fault(ctx, m, id, err)
		}
	}

	r.logger.Debug().Msg("placement phase")
	for round := 0; round < game.WorkersPerPlayer; round++ {
		for _, id := range m.order {
			placement, err := r.guards[id].PlaceWorker(ctx, m.board)
			if err != nil {
				return r.fault(ctx, m, id, err)
			}
			r.apply(m, placement)
			r.observers.NotifyPlacement(ctx, m.board, placement, m.names)
		}
	}

	r.logger.Debug().Msg("turn phase")
	for turn := 0; ; turn = 1 - turn {
		id := m.order[turn]
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if winner := rules.WinnerBefore(m.board, id); winner != "" {
			return Outcome{Winner: winner, Verdict: Win, Reason: r.reason(m, winner)}, nil
		}

		action, err := r.guards[id].PlayTurn(ctx, m.board)
		if err != nil {
			return r.fault(ctx, m, id, err)
		}
		if action.Kind == game.GiveUpAction {
			r.observers.NotifyGiveUp(ctx, m.name(id))
			return Outcome{Winner: r.opponent(id), Verdict: Win, Reason: m.name(id) + " gave up"}, nil
		}
		r.apply(m, action)
		r.observers.NotifyTurn(ctx, m.board, action, m.names)

		if winner := rules.Winner(m.board); winner != "" {
			return Outcome{Winner: winner, Verdict: Win, Reason: r.reason(m, winner)}, nil
		}
	}
}

func (r *Referee) reason(m *match, winner game.PlayerID) string {
	for _, w := range m.board.Workers(winner) {
		pos, _ := m.board.Position(w)
		if m.board.Height(pos) == game.WinHeight {
			return m.name(winner) + " reached the top"
		}
	}
	return m.name(r.opponent(winner)) + " cannot move"
}

// apply mutates the board with an action the guard has already validated.
func (r *Referee) apply(m *match, a game.Action) {
	if err := m.board.Apply(a); err != nil {
		panic(fmt.Sprintf("applying validated %v: %v", a, err))
	}
}

// fault ends the game because id failed a call. Misconduct disqualifies; a rejected
// placement or turn only loses.
func (r *Referee) fault(ctx context.Context, m *match, id game.PlayerID, err error) (Outcome, error) {
	if _, ok := guard.KindOf(err); !ok {
		return Outcome{}, err
	}
	opponent := r.opponent(id)
	if guard.IsMisconduct(err) {
		m.disqualify(id)
		r.logger.Warn().Str("player", string(id)).Msgf("disqualified: %v", err)
		r.observers.NotifyError(ctx, fmt.Sprintf("%s is disqualified: %v", m.name(id), err))
		return Outcome{Winner: opponent, Verdict: Forfeit, Reason: err.Error()}, nil
	}
	r.observers.NotifyError(ctx, fmt.Sprintf("%s loses: %v", m.name(id), err))
	return Outcome{Winner: opponent, Verdict: Win, Reason: err.Error()}, nil
}

// finish tells the players who won and settles the outcome. A player failing here is
// disqualified too, which can still move or cancel the win.
func (r *Referee) finish(ctx context.Context, m *match, o Outcome) (Outcome, error) {
	winnerName := m.name(o.Winner)
	for _, id := range m.order {
		if !m.identified[id] || contains(m.disqualified, id) {
			continue
		}
		err := r.guards[id].EndOfGame(ctx, winnerName)
		if err == nil {
			continue
		}
		if _, ok := guard.KindOf(err); !ok {
			return Outcome{}, err
		}
		m.disqualify(id)
		r.observers.NotifyError(ctx, fmt.Sprintf("%s is disqualified: %v", m.name(id), err))
	}

	o.Disqualified = append([]game.PlayerID(nil), m.disqualified...)
	switch {
	case len(o.Disqualified) == game.Players:
		o.Winner, o.Verdict = "", NoContest
	case o.IsDisqualified(o.Winner):
		o.Winner, o.Verdict = r.opponent(o.Winner), Forfeit
	}

	r.observers.NotifyGameOver(ctx, m.board, m.name(o.Winner), m.names)
	r.logger.Info().Str("verdict", o.Verdict.String()).Msgf("game over: winner %q (%s)", m.name(o.Winner), o.Reason)
	return o, nil
}
