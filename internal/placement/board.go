// Package placement checks hat placements and claim markers against a
// snapshot of the hex board. Nothing here mutates the snapshot.
package placement

import (
	"fmt"
	"sort"

	"github.com/gravitas-games/boardpredict/internal/hat"
	"github.com/gravitas-games/boardpredict/internal/hex"
)

// Piece is a committed hat. It never changes after the server confirms it.
type Piece struct {
	Owner       string    `json:"owner"`
	Orientation int       `json:"orientation"`
	Anchor      hex.Axial `json:"anchor"`
}

// Kites returns the absolute kites covered by p.
func (p Piece) Kites() ([]hex.Kite, bool) {
	return hat.PlacedKites(p.Orientation, p.Anchor.Q, p.Anchor.R)
}

// Ownership maps every covered kite to its owner. A kite appears at most once.
type Ownership map[hex.Kite]string

// NewOwnership builds the ownership map of a set of committed pieces.
func NewOwnership(pieces []Piece) (Ownership, error) {
	own := make(Ownership, len(pieces)*hat.Size)
	for i, p := range pieces {
		kites, ok := p.Kites()
		if !ok {
			return nil, fmt.Errorf("piece %d: invalid orientation %d", i, p.Orientation)
		}
		for _, k := range kites {
			if prev, taken := own[k]; taken {
				return nil, fmt.Errorf("piece %d: kite %v already owned by %s", i, k, prev)
			}
			own[k] = p.Owner
		}
	}
	return own, nil
}

// With returns a copy of o that also contains p. The receiver is left as is.
// It reports false when p is malformed or overlaps an owned kite.
func (o Ownership) With(p Piece) (Ownership, bool) {
	kites, ok := p.Kites()
	if !ok {
		return nil, false
	}
	out := make(Ownership, len(o)+len(kites))
	for k, v := range o {
		out[k] = v
	}
	for _, k := range kites {
		if _, taken := out[k]; taken {
			return nil, false
		}
		out[k] = p.Owner
	}
	return out, true
}

// OccupiedHexes returns every hex holding at least one owned kite.
func (o Ownership) OccupiedHexes() []hex.Axial {
	set := make(map[hex.Axial]bool)
	for k := range o {
		set[k.Hex()] = true
	}
	return sortedHexes(set)
}

// CellState is the server-assigned state of a hex. Transitions between
// states are decided by the server.
type CellState int

const (
	Empty CellState = iota
	Terminal
	Contested
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Terminal:
		return "terminal"
	case Contested:
		return "contested"
	default:
		return "unknown"
	}
}

// ParseCellState maps a wire name to a state; unknown names are Empty.
func ParseCellState(s string) CellState {
	switch s {
	case "terminal":
		return Terminal
	case "contested":
		return Contested
	default:
		return Empty
	}
}

// CellStates holds the state of every hex that is not Empty.
type CellStates map[hex.Axial]CellState

// Markers maps a marked hex to the owner of its marker.
type Markers map[hex.Axial]string

func sortedHexes(set map[hex.Axial]bool) []hex.Axial {
	out := make([]hex.Axial, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Q != out[j].Q {
			return out[i].Q < out[j].Q
		}
		return out[i].R < out[j].R
	})
	return out
}
