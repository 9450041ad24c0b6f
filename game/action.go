package game

import "fmt"

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	GiveUpAction ActionKind = iota
	PlaceAction
	MoveAction
	MoveBuildAction
)

func (k ActionKind) String() string {
	switch k {
	case GiveUpAction:
		return "give-up"
	case PlaceAction:
		return "place"
	case MoveAction:
		return "move"
	case MoveBuildAction:
		return "move-build"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is a placement or a turn. Only the fields of its Kind are meaningful:
// Place uses Worker and Cell, Move uses Worker and Move, MoveBuild adds Build.
type Action struct {
	Kind   ActionKind
	Worker Worker
	Cell   Cell
	Move   Direction
	Build  Direction
}

func GiveUp() Action {
	return Action{Kind: GiveUpAction}
}

func Place(w Worker, c Cell) Action {
	return Action{Kind: PlaceAction, Worker: w, Cell: c}
}

func Move(w Worker, d Direction) Action {
	return Action{Kind: MoveAction, Worker: w, Move: d}
}

func MoveBuild(w Worker, move, build Direction) Action {
	return Action{Kind: MoveBuildAction, Worker: w, Move: move, Build: build}
}

func (a Action) IsTurn() bool {
	return a.Kind == GiveUpAction || a.Kind == MoveAction || a.Kind == MoveBuildAction
}

func (a Action) String() string {
	switch a.Kind {
	case GiveUpAction:
		return "give-up"
	case PlaceAction:
		return fmt.Sprintf("place %v at %v", a.Worker, a.Cell)
	case MoveAction:
		return fmt.Sprintf("move %v %v", a.Worker, a.Move)
	case MoveBuildAction:
		return fmt.Sprintf("move %v %v build %v", a.Worker, a.Move, a.Build)
	}
	return a.Kind.String()
}
