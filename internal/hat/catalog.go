package hat

import (
	"fmt"

	"github.com/gravitas-games/boardpredict/internal/hex"
)

// Chirality distinguishes the hat from its mirror image.
type Chirality int

const (
	A Chirality = iota
	B
)

func (c Chirality) String() string {
	switch c {
	case A:
		return "A"
	case B:
		return "B"
	default:
		return fmt.Sprintf("Chirality(%d)", int(c))
	}
}

const (
	// Rotations is the number of 60° steps in a full turn.
	Rotations = 6
	// Orientations is the size of the catalog: both chiralities at every rotation.
	Orientations = 2 * Rotations
	// Size is the number of kites in a hat.
	Size = 8
)

// baseA covers four kites of the origin hex and two kites in each of the
// hexes across edges 4 and 5.
var baseA = Footprint{
	{Q: 0, R: 0, K: 0}, {Q: 0, R: 0, K: 1}, {Q: 0, R: 0, K: 2}, {Q: 0, R: 0, K: 3},
	{Q: 0, R: -1, K: 1}, {Q: 0, R: -1, K: 2},
	{Q: 1, R: -1, K: 2}, {Q: 1, R: -1, K: 3},
}

// catalog holds every orientation, indexed by orientation index. It is built
// once and never written afterwards.
var catalog = buildCatalog()

func buildCatalog() [Orientations]Footprint {
	var out [Orientations]Footprint
	bases := [2]Footprint{baseA, Mirror(baseA)}
	for c, base := range bases {
		f := base
		for rot := 0; rot < Rotations; rot++ {
			out[c*Rotations+rot] = f
			f = Rotate(f)
		}
	}
	return out
}

// Base returns the rotation-0 footprint of chirality c.
func Base(c Chirality) Footprint {
	if c == B {
		return Orientation(Rotations)
	}
	return Orientation(0)
}

// Orientation returns a copy of the catalog footprint for index i, or nil
// when i is outside [0, 11].
func Orientation(i int) Footprint {
	if i < 0 || i >= Orientations {
		return nil
	}
	return append(Footprint(nil), catalog[i]...)
}

// Index maps (chirality, rotation) to an orientation index.
func Index(c Chirality, rotation int) (int, bool) {
	if (c != A && c != B) || rotation < 0 || rotation >= Rotations {
		return 0, false
	}
	return int(c)*Rotations + rotation, true
}

// Info is the inverse of Index.
func Info(index int) (Chirality, int, bool) {
	if index < 0 || index >= Orientations {
		return A, 0, false
	}
	return Chirality(index / Rotations), index % Rotations, true
}

// PlacedKites returns the absolute kites of orientation i anchored at (q, r).
func PlacedKites(i, anchorQ, anchorR int) ([]hex.Kite, bool) {
	if i < 0 || i >= Orientations {
		return nil, false
	}
	return catalog[i].Translate(anchorQ, anchorR), true
}
