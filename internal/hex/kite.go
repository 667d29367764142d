package hex

import (
	"fmt"
	"math"
)

// Kite is one sixth of a hex: the wedge around vertex K of hex (Q, R).
// Kites are the unit of ownership on the hex board.
type Kite struct {
	Q int `json:"q"`
	R int `json:"r"`
	K int `json:"k"`
}

// Point is a pixel position relative to whatever origin the caller uses.
type Point struct {
	X float64
	Y float64
}

// Hex returns the hex the kite belongs to.
func (k Kite) Hex() Axial { return Axial{Q: k.Q, R: k.R} }

// Valid reports whether K is a vertex index.
func (k Kite) Valid() bool { return k.K >= 0 && k.K < 6 }

// Translate moves the kite by an axial offset, keeping its vertex index.
func (k Kite) Translate(a Axial) Kite { return Kite{Q: k.Q + a.Q, R: k.R + a.R, K: k.K} }

func (k Kite) String() string { return fmt.Sprintf("%d,%d,%d", k.Q, k.R, k.K) }

// Neighbors returns the four kites sharing an edge with k: the two siblings
// in the same hex, the kite across hex edge K-1 and the kite across hex edge K.
func (k Kite) Neighbors() [4]Kite {
	c := k.Hex()
	prev := c.Neighbor(k.K - 1)
	next := c.Neighbor(k.K)
	return [4]Kite{
		{Q: k.Q, R: k.R, K: mod6(k.K + 1)},
		{Q: k.Q, R: k.R, K: mod6(k.K - 1)},
		{Q: prev.Q, R: prev.R, K: mod6(k.K + 2)},
		{Q: next.Q, R: next.R, K: mod6(k.K + 4)},
	}
}

// Kites returns the six kites of hex a in vertex order.
func Kites(a Axial) [6]Kite {
	var out [6]Kite
	for i := range out {
		out[i] = Kite{Q: a.Q, R: a.R, K: i}
	}
	return out
}

// Vertex returns corner i of a hex centred on the origin. Corner i sits at
// 60°·i, measured clockwise on screen (y grows downward).
func Vertex(i int, size float64) Point {
	angle := math.Pi / 3 * float64(mod6(i))
	return Point{X: size * math.Cos(angle), Y: size * math.Sin(angle)}
}

// EdgeMidpoint returns the midpoint of the edge between vertex i and i+1.
func EdgeMidpoint(i int, size float64) Point {
	a := Vertex(i, size)
	b := Vertex(i+1, size)
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// KitePolygon returns the quadrilateral of kite k relative to its hex centre:
// centre, midpoint of edge k-1, vertex k, midpoint of edge k. The points are
// always in increasing angle order, so the winding is the same for every k.
func KitePolygon(k int, size float64) [4]Point {
	return [4]Point{
		{},
		EdgeMidpoint(k-1, size),
		Vertex(k, size),
		EdgeMidpoint(k, size),
	}
}

// KiteAt returns the kite under pixel (x, y).
func KiteAt(x, y, size float64) Kite {
	a := PixelToHex(x, y, size)
	cx, cy := HexToPixel(a, size)
	deg := math.Atan2(y-cy, x-cx) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	// kite k spans (60k-30°, 60k+30°)
	k := int(math.Floor((deg+30)/60)) % 6
	return Kite{Q: a.Q, R: a.R, K: k}
}
