package models

import "fmt"

// Cell is a board address shared by both games: an axial (q, r) hex anchor
// on the hat board, a tile position (x, y) on the square board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Spot names the target of a secondary action: a tile attachment spot such
// as "field_ES", or a hex key "q,r" on the hat board.
type Spot string

// ActionKind is the kind of a player action.
type ActionKind int

const (
	// ActionPlace puts the current piece or tile on the board.
	ActionPlace ActionKind = iota
	// ActionMark attaches a secondary marker to a spot.
	ActionMark
	// ActionPass declines the secondary action.
	ActionPass
)

// String returns the wire name of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionPlace:
		return "place"
	case ActionMark:
		return "mark"
	case ActionPass:
		return "pass"
	default:
		return "unknown"
	}
}

// ParseActionKind is the inverse of ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "place":
		return ActionPlace, nil
	case "mark":
		return ActionMark, nil
	case "pass":
		return ActionPass, nil
	default:
		return 0, fmt.Errorf("unknown action kind %q", s)
	}
}

// Action is one player action, either offered by the server as legal or
// submitted by this client.
type Action struct {
	ID          string     `json:"id,omitempty"`
	Kind        ActionKind `json:"kind"`
	Cell        Cell       `json:"cell"`
	Orientation int        `json:"orientation"`
	Spot        Spot       `json:"spot,omitempty"`
}

// Place builds a placement action.
func Place(cell Cell, orientation int) Action {
	return Action{Kind: ActionPlace, Cell: cell, Orientation: orientation}
}

// Mark builds a secondary marker action on spot at cell.
func Mark(cell Cell, spot Spot) Action {
	return Action{Kind: ActionMark, Cell: cell, Spot: spot}
}

// Pass builds the "no secondary marker" action.
func Pass() Action {
	return Action{Kind: ActionPass}
}

// SameMove reports whether a and b describe the same move, ignoring IDs.
// Markers are compared by spot only; the server addresses them on the tile
// or piece it just accepted.
func (a Action) SameMove(b Action) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ActionPlace:
		return a.Cell == b.Cell && a.Orientation == b.Orientation
	case ActionMark:
		return a.Spot == b.Spot
	default:
		return true
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlace:
		return fmt.Sprintf("place %v o=%d", a.Cell, a.Orientation)
	case ActionMark:
		return fmt.Sprintf("mark %s", a.Spot)
	default:
		return a.Kind.String()
	}
}

// Phase is the server's turn phase for the acting player.
type Phase int

const (
	// PhaseWaiting covers every phase in which the local player cannot act.
	PhaseWaiting Phase = iota
	// PhasePlace accepts a placement action.
	PhasePlace
	// PhaseSecondary accepts a marker or pass action.
	PhaseSecondary
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhasePlace:
		return "place"
	case PhaseSecondary:
		return "secondary"
	default:
		return "waiting"
	}
}

// ParsePhase maps a wire name to a phase. Unknown names are waiting phases.
func ParsePhase(s string) Phase {
	switch s {
	case "place":
		return PhasePlace
	case "secondary":
		return PhaseSecondary
	default:
		return PhaseWaiting
	}
}
