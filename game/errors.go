package game

import "errors"

var (
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrOccupied      = errors.New("cell occupied")
	ErrMaxHeight     = errors.New("building at maximum height")
	ErrUnknownPlayer = errors.New("player not on this board")
	ErrInvalidWorker = errors.New("invalid worker")
	ErrNotPlaced     = errors.New("worker not placed")
	ErrAlreadyPlaced = errors.New("worker already placed")
)
