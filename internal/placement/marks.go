package placement

import "github.com/gravitas-games/boardpredict/internal/hex"

// ValidMarkHexes returns the hexes that may take a claim marker: hexes on
// the occupied frontier (holding an owned kite, or a kite edge-adjacent to
// one) that are neither Terminal nor already marked.
func ValidMarkHexes(own Ownership, states CellStates, markers Markers) []hex.Axial {
	frontier := make(map[hex.Axial]bool)
	for k := range own {
		frontier[k.Hex()] = true
		for _, n := range k.Neighbors() {
			frontier[n.Hex()] = true
		}
	}
	for h := range frontier {
		if states[h] == Terminal {
			delete(frontier, h)
			continue
		}
		if _, marked := markers[h]; marked {
			delete(frontier, h)
		}
	}
	return sortedHexes(frontier)
}

// ConflictHexes returns the Contested hexes the resolver can act on: hexes
// where the resolver owns at least one kite and has no marker yet.
func ConflictHexes(own Ownership, states CellStates, markers Markers, resolver string) []hex.Axial {
	if resolver == "" {
		return nil
	}
	out := make(map[hex.Axial]bool)
	for h, s := range states {
		if s != Contested {
			continue
		}
		if markers[h] == resolver {
			continue
		}
		for _, k := range hex.Kites(h) {
			if own[k] == resolver {
				out[h] = true
				break
			}
		}
	}
	return sortedHexes(out)
}
