package referee

import (
	"reflect"
	"testing"

	"santorini/game"
)

func TestFilterResults(t *testing.T) {
	players := [game.Players]game.PlayerID{"a", "b"}

	got := FilterResults([]game.PlayerID{"b", "a", "b"}, players, []game.PlayerID{"b"})
	want := []game.PlayerID{"a", "a", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = FilterResults([]game.PlayerID{"a", "b"}, players, []game.PlayerID{"a", "b"})
	if len(got) != 0 {
		t.Errorf("expected no results when both are disqualified, got %v", got)
	}

	got = FilterResults([]game.PlayerID{"a", "b"}, players, nil)
	if !reflect.DeepEqual(got, []game.PlayerID{"a", "b"}) {
		t.Errorf("results without disqualifications must be unchanged, got %v", got)
	}
}

func TestSeriesResultWinsAndLeader(t *testing.T) {
	s := SeriesResult{Winners: []game.PlayerID{"a", "b", "a"}}
	if s.Wins("a") != 2 || s.Wins("b") != 1 {
		t.Errorf("unexpected win counts: a=%d b=%d", s.Wins("a"), s.Wins("b"))
	}
	if s.Leader() != "a" {
		t.Errorf("expected leader a, got %q", s.Leader())
	}

	tie := SeriesResult{Winners: []game.PlayerID{"a", "b"}}
	if tie.Leader() != "" {
		t.Errorf("expected no leader on a tie, got %q", tie.Leader())
	}
}

func TestVerdictString(t *testing.T) {
	if Forfeit.String() != "forfeit" || NoContest.String() != "no contest" {
		t.Errorf("unexpected verdict names %q %q", Forfeit, NoContest)
	}
}
