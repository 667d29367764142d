package tiles

import (
	"fmt"
	"strings"
)

// Edge is the part of a tile side a spot touches. A simple edge (Half ==
// NoDirection) is the whole side. A compound edge is the half of Side that
// lies toward Half; roads split a side into two such halves.
type Edge struct {
	Side Direction
	Half Direction
}

// Simple returns the whole-side edge d.
func Simple(d Direction) Edge { return Edge{Side: d, Half: NoDirection} }

// Compound returns the half of side that lies toward half.
func Compound(side, half Direction) Edge { return Edge{Side: side, Half: half} }

// IsCompound reports whether e covers only half a side.
func (e Edge) IsCompound() bool { return e.Half != NoDirection }

// String renders "N" or "N:E".
func (e Edge) String() string {
	if !e.IsCompound() {
		return e.Side.String()
	}
	return e.Side.String() + ":" + e.Half.String()
}

// MarshalText encodes the edge in its string form.
func (e Edge) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// UnmarshalText parses the string form.
func (e *Edge) UnmarshalText(b []byte) error {
	parsed, err := ParseEdge(string(b))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseEdge parses "N" or "N:E".
func ParseEdge(s string) (Edge, error) {
	side, half, compound := strings.Cut(s, ":")
	if len(side) != 1 {
		return Edge{}, fmt.Errorf("invalid edge %q", s)
	}
	d, err := ParseDirection(side[0])
	if err != nil {
		return Edge{}, fmt.Errorf("invalid edge %q: %w", s, err)
	}
	if !compound {
		return Simple(d), nil
	}
	if len(half) != 1 {
		return Edge{}, fmt.Errorf("invalid edge %q", s)
	}
	h, err := ParseDirection(half[0])
	if err != nil {
		return Edge{}, fmt.Errorf("invalid edge %q: %w", s, err)
	}
	if h == d || h == d.Opposite() {
		return Edge{}, fmt.Errorf("invalid edge %q: half must be perpendicular to side", s)
	}
	return Compound(d, h), nil
}

// RotateEdge turns e clockwise by deg. Compound edges rotate both parts.
func RotateEdge(e Edge, deg int) Edge {
	if e.IsCompound() {
		return RotateCompoundEdge(e, deg)
	}
	return Simple(e.Side.Rotate(deg))
}

// RotateCompoundEdge turns both the side and the half of e.
func RotateCompoundEdge(e Edge, deg int) Edge {
	return Edge{Side: e.Side.Rotate(deg), Half: e.Half.Rotate(deg)}
}

// RotateEdges rotates every edge of es.
func RotateEdges(es []Edge, deg int) []Edge {
	out := make([]Edge, len(es))
	for i, e := range es {
		out[i] = RotateEdge(e, deg)
	}
	return out
}

// OppositeEdge returns the edge seen from the neighbouring tile: the facing
// side, same half.
func OppositeEdge(e Edge) Edge {
	return Edge{Side: e.Side.Opposite(), Half: e.Half}
}

// EdgeRef addresses one edge of the tile at Pos.
type EdgeRef struct {
	Pos  Position `json:"pos"`
	Edge Edge     `json:"edge"`
}
