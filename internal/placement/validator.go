package placement

import (
	"github.com/gravitas-games/boardpredict/internal/hat"
	"github.com/gravitas-games/boardpredict/internal/hex"
)

// anchorReach bounds how far an anchor can sit from an occupied hex and still
// touch it: the footprint's farthest hex plus one for the neighbouring kite.
var anchorReach = footprintReach() + 1

// footprintReach is the largest anchor-to-hex distance over all orientations.
func footprintReach() int {
	reach := 0
	for o := 0; o < hat.Orientations; o++ {
		for _, h := range hat.Orientation(o).Hexes() {
			reach = max(reach, hex.DistanceAxial(hex.Axial{}, h))
		}
	}
	return reach
}

// IsValidPlacement reports whether orientation at (anchorQ, anchorR) may be
// placed on own. The piece must not overlap any owned kite and, unless the
// board is empty, must share an edge with at least one owned kite.
func IsValidPlacement(own Ownership, orientation, anchorQ, anchorR int) bool {
	kites, ok := hat.PlacedKites(orientation, anchorQ, anchorR)
	if !ok {
		return false
	}
	for _, k := range kites {
		if _, taken := own[k]; taken {
			return false
		}
	}
	if len(own) == 0 {
		return true
	}
	for _, k := range kites {
		for _, n := range k.Neighbors() {
			if _, taken := own[n]; taken {
				return true
			}
		}
	}
	return false
}

// ValidOrientations lists the orientations accepted at anchor, in index order.
func ValidOrientations(own Ownership, anchor hex.Axial) []int {
	var out []int
	for o := 0; o < hat.Orientations; o++ {
		if IsValidPlacement(own, o, anchor.Q, anchor.R) {
			out = append(out, o)
		}
	}
	return out
}

// ValidAnchors lists every anchor with at least one legal orientation. An
// empty board offers only the origin.
func ValidAnchors(own Ownership) []hex.Axial {
	if len(own) == 0 {
		return []hex.Axial{{}}
	}
	candidates := make(map[hex.Axial]bool)
	for _, h := range own.OccupiedHexes() {
		for _, a := range hex.Disk(h, anchorReach) {
			candidates[a] = true
		}
	}
	valid := make(map[hex.Axial]bool)
	for a := range candidates {
		if len(ValidOrientations(own, a)) > 0 {
			valid[a] = true
		}
	}
	return sortedHexes(valid)
}
