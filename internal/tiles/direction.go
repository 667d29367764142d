// Package tiles is the square-tile side of the engine: the tile catalog with
// its named attachment spots, edge rotation, edge matching and the two
// strategies that decide whether a spot already belongs to a claimed region.
package tiles

import "fmt"

// Direction is a tile side, clockwise from north.
type Direction int

const (
	North Direction = iota
	East
	South
	West

	// NoDirection marks the missing half of a simple edge.
	NoDirection Direction = -1
)

// directionOrder is the canonical N,E,S,W print order.
var directionOrder = [4]Direction{North, East, South, West}

var directionLetters = [4]byte{'N', 'E', 'S', 'W'}

// Rotate turns d clockwise by deg, a multiple of 90.
func (d Direction) Rotate(deg int) Direction {
	if d == NoDirection {
		return d
	}
	return Direction((int(d) + steps(deg)) % 4)
}

// Opposite returns the facing side.
func (d Direction) Opposite() Direction {
	if d == NoDirection {
		return d
	}
	return Direction((int(d) + 2) % 4)
}

// Offset returns the position delta of the neighbour across side d. Y grows
// southward.
func (d Direction) Offset() Position {
	switch d {
	case North:
		return Position{X: 0, Y: -1}
	case East:
		return Position{X: 1, Y: 0}
	case South:
		return Position{X: 0, Y: 1}
	case West:
		return Position{X: -1, Y: 0}
	default:
		return Position{}
	}
}

func (d Direction) String() string {
	if d < North || d > West {
		return "?"
	}
	return string(directionLetters[d])
}

// ParseDirection maps a letter to a side.
func ParseDirection(c byte) (Direction, error) {
	for i, l := range directionLetters {
		if l == c {
			return Direction(i), nil
		}
	}
	return NoDirection, fmt.Errorf("unknown direction %q", c)
}

// ValidRotation reports whether deg is one of 0, 90, 180, 270.
func ValidRotation(deg int) bool {
	return deg == 0 || deg == 90 || deg == 180 || deg == 270
}

// steps converts degrees to quarter turns in [0,3].
func steps(deg int) int {
	return ((deg/90)%4 + 4) % 4
}
