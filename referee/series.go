package referee

import (
	"context"

	"santorini/game"
)

// RunNGames plays up to n games, alternating who moves first. It stops after the first
// game in which anybody is disqualified, then corrects earlier results with FilterResults.
func (r *Referee) RunNGames(ctx context.Context, n int) (SeriesResult, error) {
	var (
		result  SeriesResult
		winners []game.PlayerID
	)
	for i := 0; i < n; i++ {
		outcome, err := r.RunGame(ctx, r.seats[i%game.Players])
		if err != nil {
			return result, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Winner != "" {
			winners = append(winners, outcome.Winner)
		}
		for _, id := range outcome.Disqualified {
			if !contains(result.Disqualified, id) {
				result.Disqualified = append(result.Disqualified, id)
			}
		}
		if len(result.Disqualified) > 0 {
			r.logger.Info().Msgf("series stopped after game %d of %d", i+1, n)
			break
		}
	}
	result.Winners = FilterResults(winners, r.seats, result.Disqualified)
	return result, nil
}
