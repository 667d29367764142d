// Package hat holds the orientation algebra of the 8-kite hat piece: its two
// base footprints, the rotate and mirror operations, and the 12-entry
// orientation catalog.
package hat

import (
	"sort"

	"github.com/gravitas-games/boardpredict/internal/hex"
)

// Footprint is the ordered set of kites a piece covers relative to its
// anchor hex (0,0).
type Footprint []hex.Kite

// Rotate turns every kite 60° clockwise about the origin hex.
func Rotate(f Footprint) Footprint {
	out := make(Footprint, len(f))
	for i, k := range f {
		out[i] = hex.Kite{Q: -k.R, R: k.Q + k.R, K: (k.K + 1) % 6}
	}
	return out
}

// Mirror flips the chirality of f. The origin hex stays the origin hex.
func Mirror(f Footprint) Footprint {
	out := make(Footprint, len(f))
	for i, k := range f {
		out[i] = hex.Kite{Q: -k.Q, R: k.Q + k.R, K: ((3-k.K)%6 + 6) % 6}
	}
	return out
}

// Translate returns f moved to anchor (q, r).
func (f Footprint) Translate(q, r int) Footprint {
	out := make(Footprint, len(f))
	off := hex.Axial{Q: q, R: r}
	for i, k := range f {
		out[i] = k.Translate(off)
	}
	return out
}

// Hexes returns the distinct hexes touched by f, in first-seen order.
func (f Footprint) Hexes() []hex.Axial {
	seen := make(map[hex.Axial]bool, 3)
	var out []hex.Axial
	for _, k := range f {
		h := k.Hex()
		if !seen[h] {
			seen[h] = true
			out = append(out, h)
		}
	}
	return out
}

// Equal compares two footprints as sets of kites.
func (f Footprint) Equal(g Footprint) bool {
	if len(f) != len(g) {
		return false
	}
	set := make(map[hex.Kite]int, len(f))
	for _, k := range f {
		set[k]++
	}
	for _, k := range g {
		if set[k] == 0 {
			return false
		}
		set[k]--
	}
	return true
}

// Sorted returns a copy of f in (q, r, k) order.
func (f Footprint) Sorted() Footprint {
	out := append(Footprint(nil), f...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Q != out[j].Q {
			return out[i].Q < out[j].Q
		}
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].K < out[j].K
	})
	return out
}
