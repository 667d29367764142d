package tiles

// IsSpotOccupiedByAdjacentFeature reports whether a spot touching edges on a
// tile at pos would join a region that already carries a marker. Each edge
// looks at the tile across it; an empty neighbour contributes nothing, a
// placed one is checked for a marked region whose open edges include the
// facing edge. edges are given in board orientation.
func IsSpotOccupiedByAdjacentFeature(edges []Edge, pos Position, board *Board) bool {
	if board == nil {
		return false
	}
	for _, e := range edges {
		n := pos.Neighbor(e.Side)
		if _, placed := board.TileAt(n); !placed {
			continue
		}
		if board.markedOpenEdge(EdgeRef{Pos: n, Edge: OppositeEdge(e)}) {
			return true
		}
	}
	return false
}

// OccupancyCheck decides whether a spot at pos already belongs to a marked
// region. spot is in board orientation.
type OccupancyCheck interface {
	Occupied(pos Position, spot Spot) bool
}

// CommittedLookup reads the server's spot->region map of a committed tile.
type CommittedLookup struct {
	Board *Board
}

// Occupied implements OccupancyCheck.
func (c CommittedLookup) Occupied(pos Position, spot Spot) bool {
	tile, ok := c.Board.TileAt(pos)
	if !ok {
		return false
	}
	id, ok := tile.Features[spot.Name]
	if !ok {
		return false
	}
	r, ok := c.Board.Region(id)
	return ok && r.Marked
}

// InferredFromNeighbors infers occupancy for a tile the server has not
// committed yet, from the open edges of the regions around it.
type InferredFromNeighbors struct {
	Board *Board
}

// Occupied implements OccupancyCheck.
func (c InferredFromNeighbors) Occupied(pos Position, spot Spot) bool {
	return IsSpotOccupiedByAdjacentFeature(spot.Edges, pos, c.Board)
}

// FreeSpots returns the spots of tile type t turned by deg at pos that check
// does not report as occupied.
func FreeSpots(check OccupancyCheck, t TileType, pos Position, deg int) []Spot {
	var out []Spot
	for _, s := range t.SpotsAt(deg) {
		if !check.Occupied(pos, s) {
			out = append(out, s)
		}
	}
	return out
}
