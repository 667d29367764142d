package tiles

import (
	"fmt"
	"sort"
)

// Position is a tile address on the square board.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p+q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Neighbor returns the position across side d.
func (p Position) Neighbor(d Direction) Position { return p.Add(d.Offset()) }

func (p Position) String() string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// PlacedTile is a committed tile. Features maps each rotated spot name to
// the id of the server region it belongs to.
type PlacedTile struct {
	Type     string            `json:"type"`
	Rotation int               `json:"rotation"`
	Features map[string]string `json:"features,omitempty"`
}

// Region is a server-tracked connected feature. The engine only reads it.
type Region struct {
	ID        string    `json:"id"`
	Kind      SpotKind  `json:"kind"`
	Marked    bool      `json:"marked"`
	OpenEdges []EdgeRef `json:"open_edges,omitempty"`
}

// Board is one server snapshot of the square board.
type Board struct {
	Tiles   map[Position]PlacedTile
	Regions map[string]Region
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{
		Tiles:   make(map[Position]PlacedTile),
		Regions: make(map[string]Region),
	}
}

// TileAt returns the tile committed at p.
func (b *Board) TileAt(p Position) (PlacedTile, bool) {
	if b == nil {
		return PlacedTile{}, false
	}
	t, ok := b.Tiles[p]
	return t, ok
}

// Region returns a region by id.
func (b *Board) Region(id string) (Region, bool) {
	if b == nil {
		return Region{}, false
	}
	r, ok := b.Regions[id]
	return r, ok
}

// markedOpenEdge reports whether any marked region lists ref as open.
func (b *Board) markedOpenEdge(ref EdgeRef) bool {
	for _, r := range b.Regions {
		if !r.Marked {
			continue
		}
		for _, open := range r.OpenEdges {
			if open == ref {
				return true
			}
		}
	}
	return false
}

// Positions returns every occupied position, row by row.
func (b *Board) Positions() []Position {
	if b == nil {
		return nil
	}
	out := make([]Position, 0, len(b.Tiles))
	for p := range b.Tiles {
		out = append(out, p)
	}
	sortPositions(out)
	return out
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
