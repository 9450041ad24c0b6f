package guard

import (
	"errors"
	"fmt"
	"math"

	"santorini/game"
)

// placementFrom converts a player's raw placement into an Action. Accepted shapes are a
// game.Action of kind Place, or a two element []any of worker and cell.
func placementFrom(raw any) (game.Action, error) {
	switch v := raw.(type) {
	case game.Action:
		if v.Kind != game.PlaceAction {
			return game.Action{}, fmt.Errorf("expected a placement, got %v", v.Kind)
		}
		if !v.Worker.Valid() {
			return game.Action{}, fmt.Errorf("invalid worker %v", v.Worker)
		}
		return v, nil
	case *game.Action:
		if v == nil {
			return game.Action{}, errors.New("nil placement")
		}
		return placementFrom(*v)
	case []any:
		if len(v) != 2 {
			return game.Action{}, fmt.Errorf("placement needs worker and cell, got %d values", len(v))
		}
		w, err := workerFrom(v[0])
		if err != nil {
			return game.Action{}, err
		}
		c, err := cellFrom(v[1])
		if err != nil {
			return game.Action{}, err
		}
		return game.Place(w, c), nil
	}
	return game.Action{}, fmt.Errorf("unrecognized placement %T", raw)
}

// turnFrom converts a player's raw turn into an Action. nil and an all-nil []any are a give up;
// otherwise a game.Action turn or a []any of worker, direction and optional build direction.
func turnFrom(raw any) (game.Action, error) {
	switch v := raw.(type) {
	case nil:
		return game.GiveUp(), nil
	case game.Action:
		return checkTurn(v)
	case *game.Action:
		if v == nil {
			return game.GiveUp(), nil
		}
		return checkTurn(*v)
	case []any:
		if allNil(v) && len(v) <= 3 {
			return game.GiveUp(), nil
		}
		if len(v) != 2 && len(v) != 3 {
			return game.Action{}, fmt.Errorf("turn needs 2 or 3 values, got %d", len(v))
		}
		w, err := workerFrom(v[0])
		if err != nil {
			return game.Action{}, err
		}
		move, err := directionFrom(v[1])
		if err != nil {
			return game.Action{}, err
		}
		if len(v) == 2 || v[2] == nil {
			return game.Move(w, move), nil
		}
		build, err := directionFrom(v[2])
		if err != nil {
			return game.Action{}, err
		}
		return game.MoveBuild(w, move, build), nil
	}
	return game.Action{}, fmt.Errorf("unrecognized turn %T", raw)
}

func checkTurn(a game.Action) (game.Action, error) {
	switch a.Kind {
	case game.GiveUpAction:
		if a != game.GiveUp() {
			return game.Action{}, errors.New("give up carries data")
		}
		return a, nil
	case game.MoveAction, game.MoveBuildAction:
		if !a.Worker.Valid() {
			return game.Action{}, fmt.Errorf("invalid worker %v", a.Worker)
		}
		if !a.Move.Valid() {
			return game.Action{}, fmt.Errorf("invalid move direction %v", a.Move)
		}
		if a.Kind == game.MoveBuildAction && !a.Build.Valid() {
			return game.Action{}, fmt.Errorf("invalid build direction %v", a.Build)
		}
		return a, nil
	}
	return game.Action{}, fmt.Errorf("expected a turn, got %v", a.Kind)
}

func allNil(values []any) bool {
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

func workerFrom(raw any) (game.Worker, error) {
	var w game.Worker
	switch v := raw.(type) {
	case game.Worker:
		w = v
	case *game.Worker:
		if v == nil {
			return game.Worker{}, errors.New("nil worker")
		}
		w = *v
	default:
		return game.Worker{}, fmt.Errorf("unrecognized worker %T", raw)
	}
	if !w.Valid() {
		return game.Worker{}, fmt.Errorf("invalid worker %v", w)
	}
	return w, nil
}

func cellFrom(raw any) (game.Cell, error) {
	switch v := raw.(type) {
	case game.Cell:
		return v, nil
	case [2]int:
		return game.Cell{Row: v[0], Col: v[1]}, nil
	case []int:
		if len(v) != 2 {
			return game.Cell{}, fmt.Errorf("cell needs 2 coordinates, got %d", len(v))
		}
		return game.Cell{Row: v[0], Col: v[1]}, nil
	case []any:
		if len(v) != 2 {
			return game.Cell{}, fmt.Errorf("cell needs 2 coordinates, got %d", len(v))
		}
		row, err := intFrom(v[0])
		if err != nil {
			return game.Cell{}, err
		}
		col, err := intFrom(v[1])
		if err != nil {
			return game.Cell{}, err
		}
		return game.Cell{Row: row, Col: col}, nil
	}
	return game.Cell{}, fmt.Errorf("unrecognized cell %T", raw)
}

func intFrom(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64: // decoded JSON numbers
		if v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32 {
			return int(v), nil
		}
	}
	return 0, fmt.Errorf("coordinate %v is not an integer", raw)
}

func directionFrom(raw any) (game.Direction, error) {
	switch v := raw.(type) {
	case game.Direction:
		if !v.Valid() {
			return 0, fmt.Errorf("invalid direction %d", int(v))
		}
		return v, nil
	case string:
		return game.ParseDirection(v)
	}
	return 0, fmt.Errorf("unrecognized direction %T", raw)
}
