package game

import (
	"fmt"
	"strings"
)

// Direction is one of the eight compass directions or Stay.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
	Stay
)

// Directions lists the eight compass directions in enumeration order. Stay is excluded.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var vectors = [...][2]int{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
	Stay:      {0, 0},
}

var names = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "STAY"}

var aliases = map[string]Direction{
	"NORTH":     North,
	"NORTHEAST": NorthEast,
	"EAST":      East,
	"SOUTHEAST": SouthEast,
	"SOUTH":     South,
	"SOUTHWEST": SouthWest,
	"WEST":      West,
	"NORTHWEST": NorthWest,
	"PUT":       Stay,
}

func (d Direction) Valid() bool {
	return d >= North && d <= Stay
}

// Vector returns the (row, col) offset of d. It panics on an invalid direction.
func (d Direction) Vector() (int, int) {
	if !d.Valid() {
		panic(fmt.Sprintf("invalid direction %d", int(d)))
	}
	v := vectors[d]
	return v[0], v[1]
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return names[d]
}

// ParseDirection accepts short ("NE") and long ("NORTHEAST") names in any case.
func ParseDirection(name string) (Direction, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range names {
		if n == upper {
			return Direction(i), nil
		}
	}
	if d, ok := aliases[upper]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("unknown direction %q", name)
}
