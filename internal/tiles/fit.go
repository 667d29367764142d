package tiles

// Rotations lists the legal tile rotations in orientation-index order.
var Rotations = [4]int{0, 90, 180, 270}

// Fits reports whether tile type id turned by deg may be placed at pos: the
// position is free, it touches a placed tile, and every touching side
// carries the same feature kind as the side facing it. An empty board only
// accepts the origin.
func Fits(board *Board, id string, pos Position, deg int) bool {
	t, ok := catalog[id]
	if !ok || !ValidRotation(deg) {
		return false
	}
	if board == nil || len(board.Tiles) == 0 {
		return pos == Position{}
	}
	if _, taken := board.Tiles[pos]; taken {
		return false
	}
	touching := false
	for _, d := range directionOrder {
		n, placed := board.Tiles[pos.Neighbor(d)]
		if !placed {
			continue
		}
		nt, ok := catalog[n.Type]
		if !ok {
			return false
		}
		touching = true
		if t.Side(d, deg) != nt.Side(d.Opposite(), n.Rotation) {
			return false
		}
	}
	return touching
}

// ValidRotations returns the orientation indexes (rotation/90) at which id
// fits at pos.
func ValidRotations(board *Board, id string, pos Position) []int {
	var out []int
	for i, deg := range Rotations {
		if Fits(board, id, pos, deg) {
			out = append(out, i)
		}
	}
	return out
}

// ValidPositions returns every position where id fits in some rotation.
func ValidPositions(board *Board, id string) []Position {
	if _, ok := catalog[id]; !ok {
		return nil
	}
	if board == nil || len(board.Tiles) == 0 {
		return []Position{{}}
	}
	candidates := make(map[Position]bool)
	for p := range board.Tiles {
		for _, d := range directionOrder {
			n := p.Neighbor(d)
			if _, taken := board.Tiles[n]; !taken {
				candidates[n] = true
			}
		}
	}
	var out []Position
	for p := range candidates {
		if len(ValidRotations(board, id, p)) > 0 {
			out = append(out, p)
		}
	}
	sortPositions(out)
	return out
}
