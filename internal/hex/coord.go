package hex

import (
	"fmt"
	"math"
)

// Axial represents axial coordinates (q, r) for a flat-top layout.
type Axial struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Cube represents cube coordinates (x, y, z) with x+y+z=0.
type Cube struct {
	X int
	Y int
	Z int
}

// EdgeDirections maps hex edge i (between vertex i and vertex i+1) to the
// axial offset of the neighbour across that edge. Every adjacency rule in
// this module goes through this table.
var EdgeDirections = [6]Axial{
	{+1, 0}, {0, +1}, {-1, +1}, {-1, 0}, {0, -1}, {+1, -1},
}

// Add returns a+b in axial space.
func (a Axial) Add(b Axial) Axial { return Axial{a.Q + b.Q, a.R + b.R} }

// Neighbor returns the hex across edge i.
func (a Axial) Neighbor(edge int) Axial {
	return a.Add(EdgeDirections[mod6(edge)])
}

// String renders the coordinate as "q,r". The form doubles as the spot key
// for hex claim markers.
func (a Axial) String() string { return fmt.Sprintf("%d,%d", a.Q, a.R) }

// ParseAxial is the inverse of Axial.String.
func ParseAxial(s string) (Axial, error) {
	var a Axial
	if _, err := fmt.Sscanf(s, "%d,%d", &a.Q, &a.R); err != nil {
		return Axial{}, fmt.Errorf("invalid axial coordinate %q: %w", s, err)
	}
	return a, nil
}

// ToCube converts axial to cube.
func (a Axial) ToCube() Cube {
	x := a.Q
	z := a.R
	y := -x - z
	return Cube{X: x, Y: y, Z: z}
}

// ToAxial converts cube to axial.
func (c Cube) ToAxial() Axial { return Axial{Q: c.X, R: c.Z} }

// DistanceAxial returns hex distance between two axial coords.
func DistanceAxial(a, b Axial) int {
	return DistanceCube(a.ToCube(), b.ToCube())
}

// DistanceCube returns hex distance between two cube coords.
func DistanceCube(a, b Cube) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	dz := abs(a.Z - b.Z)
	return max(dx, dy, dz)
}

// CubeRound rounds fractional cube coordinates to the containing hex. Each
// component is rounded on its own, then the one with the largest rounding
// error is recomputed from the other two so that x+y+z stays 0.
func CubeRound(x, y, z float64) Cube {
	rx := math.Round(x)
	ry := math.Round(y)
	rz := math.Round(z)

	dx := math.Abs(rx - x)
	dy := math.Abs(ry - y)
	dz := math.Abs(rz - z)

	switch {
	case dx > dy && dx > dz:
		rx = -ry - rz
	case dy > dz:
		ry = -rx - rz
	default:
		rz = -rx - ry
	}
	return Cube{X: int(rx), Y: int(ry), Z: int(rz)}
}

// HexToPixel returns the centre of hex a in pixels. size is the hex radius
// (centre to corner).
func HexToPixel(a Axial, size float64) (x, y float64) {
	// flat-top: x = size*3/2*q; y = size*sqrt(3)*(r + q/2)
	x = size * 1.5 * float64(a.Q)
	y = size * math.Sqrt(3) * (float64(a.R) + float64(a.Q)/2.0)
	return
}

// PixelToHex returns the hex containing pixel (x, y).
func PixelToHex(x, y, size float64) Axial {
	if size <= 0 {
		return Axial{}
	}
	q := (2.0 / 3.0 * x) / size
	r := (-1.0/3.0*x + math.Sqrt(3)/3.0*y) / size
	return CubeRound(q, -q-r, r).ToAxial()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mod6(v int) int {
	return ((v % 6) + 6) % 6
}
