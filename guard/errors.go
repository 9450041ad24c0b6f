package guard

import (
	"errors"
	"fmt"
)

// Kind classifies how a guarded call failed.
type Kind int

const (
	Timeout Kind = iota + 1
	RaisedException
	MalformedData
	UnownedWorker
	InvalidPlacement
	InvalidTurn
)

func (k Kind) String() string {
	switch k {
	case Timeout:
		return "timeout"
	case RaisedException:
		return "raised exception"
	case MalformedData:
		return "malformed data"
	case UnownedWorker:
		return "unowned worker"
	case InvalidPlacement:
		return "invalid placement"
	case InvalidTurn:
		return "invalid turn"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Misconduct reports whether k gets a player disqualified. Rejected placements
// and turns only lose the current game.
func (k Kind) Misconduct() bool {
	return k != InvalidPlacement && k != InvalidTurn
}

// Error is a failure of one guarded call.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

var (
	ErrTimeout          = &Error{Kind: Timeout}
	ErrRaisedException  = &Error{Kind: RaisedException}
	ErrMalformedData    = &Error{Kind: MalformedData}
	ErrUnownedWorker    = &Error{Kind: UnownedWorker}
	ErrInvalidPlacement = &Error{Kind: InvalidPlacement}
	ErrInvalidTurn      = &Error{Kind: InvalidTurn}
)

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same Kind, so errors.Is(err, ErrTimeout) works on wrapped failures.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the failure kind from err.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsMisconduct reports whether err is a guard failure that disqualifies the player.
func IsMisconduct(err error) bool {
	kind, ok := KindOf(err)
	return ok && kind.Misconduct()
}
