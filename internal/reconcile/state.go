// Package reconcile runs the per-turn move controller. It merges the local
// legality prediction with the server's list of legal actions: the player
// picks a cell, cycles orientations and previews a secondary choice; the
// placement goes out at once and the secondary choice is held back until the
// server asks for it.
package reconcile

import (
	"errors"

	"github.com/gravitas-games/boardpredict/pkg/models"
)

// State is the controller's position in the current turn.
type State int

const (
	// Idle has no selection.
	Idle State = iota
	// CellSelected has a cell at its first legal orientation.
	CellSelected
	// RotationCycling has a cell whose orientation the player is cycling.
	RotationCycling
	// SecondaryChoicePreviewed has a cell and a previewed secondary spot.
	SecondaryChoicePreviewed
	// Submitted has sent the placement; the secondary choice may be buffered.
	Submitted
	// ServerChoice shows the server's secondary list after the buffered
	// choice was invalidated.
	ServerChoice
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case CellSelected:
		return "CellSelected"
	case RotationCycling:
		return "RotationCycling"
	case SecondaryChoicePreviewed:
		return "SecondaryChoicePreviewed"
	case Submitted:
		return "Submitted"
	case ServerChoice:
		return "ServerChoice"
	default:
		return "Unknown"
	}
}

// selecting reports whether s holds a live cell selection.
func (s State) selecting() bool {
	return s == CellSelected || s == RotationCycling || s == SecondaryChoicePreviewed
}

var (
	// ErrNoSelection is returned when an operation needs a selected cell.
	ErrNoSelection = errors.New("no cell selected")
	// ErrNotAwaitingChoice is returned by Choose outside ServerChoice.
	ErrNotAwaitingChoice = errors.New("not awaiting a server choice")
	// ErrChoiceNotOffered is returned for a choice missing from the offered list.
	ErrChoiceNotOffered = errors.New("choice not offered")
)

// Predictor is the local legality oracle for one board snapshot.
type Predictor interface {
	ValidPlacements() []models.Cell
	ValidOrientationsAt(cell models.Cell) []int
	PreviewSecondary(cell models.Cell, orientation int) []models.Spot
}

// ConflictPredictor is implemented by predictors whose board has contested
// cells the local player can resolve.
type ConflictPredictor interface {
	ConflictSpots() []models.Spot
}

// Submitter hands an action to the transport. It must not block; the
// transport reports rejections back through Controller.Resync.
type Submitter interface {
	Submit(a models.Action)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(a models.Action)

// Submit implements Submitter.
func (f SubmitterFunc) Submit(a models.Action) { f(a) }

// Listener is notified of changes the UI has to redraw.
type Listener interface {
	StateChanged(from, to State)
	ServerChoices(choices []models.Action)
}

type nopListener struct{}

func (nopListener) StateChanged(State, State)     {}
func (nopListener) ServerChoices([]models.Action) {}

// Snapshot is what the controller consumes from each authoritative delta.
type Snapshot struct {
	Turn      string
	Phase     models.Phase
	Active    bool
	Legal     []models.Action
	Predictor Predictor
}

// secondaryActions filters the marker and pass actions out of legal.
func secondaryActions(legal []models.Action) []models.Action {
	var out []models.Action
	for _, a := range legal {
		if a.Kind == models.ActionMark || a.Kind == models.ActionPass {
			out = append(out, a)
		}
	}
	return out
}

func findMove(list []models.Action, a models.Action) (models.Action, bool) {
	for _, b := range list {
		if b.SameMove(a) {
			return b, true
		}
	}
	return models.Action{}, false
}
