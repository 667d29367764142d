package reconcile

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

// Controller is the per-turn move state machine. It is not safe for
// concurrent use: one goroutine owns it and feeds it both UI input and
// server snapshots.
type Controller struct {
	submit   Submitter
	listener Listener
	log      *slog.Logger
	newID    func() string

	state State
	turn  string
	snap  Snapshot

	// selection
	cell         models.Cell
	orientations []int
	orientation  int // index into orientations
	preview      []models.Spot
	previewed    models.Spot

	// buffered secondary choice, held until the server asks for it
	buffered  *models.Action
	primaryID string
	placed    *models.Action

	choices []models.Action
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithListener sets the UI listener.
func WithListener(l Listener) Option {
	return func(c *Controller) { c.listener = l }
}

// WithIDGenerator overrides how submitted actions get their IDs.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// New creates an idle controller that submits through s.
func New(s Submitter, opts ...Option) *Controller {
	c := &Controller{
		submit:   s,
		listener: nopListener{},
		log:      slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Turn returns the turn id of the last snapshot.
func (c *Controller) Turn() string { return c.turn }

// Selection returns the selected cell and orientation index.
func (c *Controller) Selection() (models.Cell, int, bool) {
	if !c.state.selecting() {
		return models.Cell{}, 0, false
	}
	return c.cell, c.orientations[c.orientation], true
}

// Preview returns the locally legal secondary spots for the selection.
func (c *Controller) Preview() []models.Spot {
	if !c.state.selecting() {
		return nil
	}
	return append([]models.Spot(nil), c.preview...)
}

// Previewed returns the spot the player is hovering, if any.
func (c *Controller) Previewed() (models.Spot, bool) {
	if c.state != SecondaryChoicePreviewed {
		return "", false
	}
	return c.previewed, true
}

// Buffered returns the held-back secondary choice.
func (c *Controller) Buffered() (models.Action, bool) {
	if c.buffered == nil {
		return models.Action{}, false
	}
	return *c.buffered, true
}

// PrimaryID returns the ID of the last submitted placement.
func (c *Controller) PrimaryID() string { return c.primaryID }

// CommittedSpots returns the local prediction of the free spots on the
// placement the server accepted this turn. It is empty outside the secondary
// phase.
func (c *Controller) CommittedSpots() []models.Spot {
	if c.placed == nil || c.snap.Predictor == nil || !c.snap.Active || c.snap.Phase != models.PhaseSecondary {
		return nil
	}
	return c.snap.Predictor.PreviewSecondary(c.placed.Cell, c.placed.Orientation)
}

// Conflicts returns the contested spots the local player can resolve, when
// the current game has any.
func (c *Controller) Conflicts() []models.Spot {
	cp, ok := c.snap.Predictor.(ConflictPredictor)
	if !ok || !c.snap.Active {
		return nil
	}
	return cp.ConflictSpots()
}

// ServerChoices returns the server's secondary list while in ServerChoice.
func (c *Controller) ServerChoices() []models.Action {
	if c.state != ServerChoice {
		return nil
	}
	return append([]models.Action(nil), c.choices...)
}

// ValidPlacements returns the cells the UI should highlight.
func (c *Controller) ValidPlacements() []models.Cell {
	if !c.canPlace() {
		return nil
	}
	return c.snap.Predictor.ValidPlacements()
}

// ValidOrientationsAt returns the legal orientations at cell.
func (c *Controller) ValidOrientationsAt(cell models.Cell) []int {
	if !c.canPlace() {
		return nil
	}
	return c.snap.Predictor.ValidOrientationsAt(cell)
}

// Update consumes an authoritative snapshot. A new turn id resets the
// controller; the secondary phase replays the buffered choice.
func (c *Controller) Update(s Snapshot) {
	if s.Turn != c.turn {
		if c.state != Idle {
			c.log.Debug("turn changed, resetting", "from", c.turn, "to", s.Turn, "state", c.state)
		}
		c.reset()
		c.turn = s.Turn
	}
	c.snap = s

	switch {
	case c.state == Submitted && s.Phase == models.PhaseSecondary && s.Active:
		if c.buffered != nil {
			c.replay(s.Legal)
		}
	case c.state == ServerChoice:
		if s.Phase != models.PhaseSecondary || !s.Active {
			c.log.Info("server left the secondary phase", "phase", s.Phase)
			c.reset()
			return
		}
		c.offer(secondaryActions(s.Legal))
	case c.state.selecting():
		c.revalidate()
	case c.state == Idle && s.Phase == models.PhaseSecondary && s.Active:
		// nothing buffered for this phase (reconnect, or the placement
		// came from elsewhere): ask the player
		c.offer(secondaryActions(s.Legal))
	}
}

// Click handles a click on cell. A new legal cell is selected at its first
// legal orientation; clicking the selected cell again cycles to the next
// orientation, wrapping around. It reports whether the click was taken.
func (c *Controller) Click(cell models.Cell) bool {
	if !c.canPlace() || !(c.state == Idle || c.state.selecting()) {
		return false
	}
	if c.state.selecting() && cell == c.cell {
		c.orientation = (c.orientation + 1) % len(c.orientations)
		c.refreshPreview()
		c.setState(RotationCycling)
		return true
	}
	orientations := c.snap.Predictor.ValidOrientationsAt(cell)
	if len(orientations) == 0 {
		return false
	}
	c.cell = cell
	c.orientations = orientations
	c.orientation = 0
	c.refreshPreview()
	c.setState(CellSelected)
	return true
}

// PreviewSpot marks spot as the player's tentative secondary choice.
func (c *Controller) PreviewSpot(spot models.Spot) error {
	if !c.state.selecting() {
		return ErrNoSelection
	}
	if !containsSpot(c.preview, spot) {
		return fmt.Errorf("preview %s: %w", spot, ErrChoiceNotOffered)
	}
	c.previewed = spot
	c.setState(SecondaryChoicePreviewed)
	return nil
}

// Confirm submits the selected placement and buffers the secondary choice;
// an empty spot buffers a pass. The buffered choice is only sent once the
// server enters the secondary phase and still lists it.
func (c *Controller) Confirm(spot models.Spot) error {
	if !c.state.selecting() {
		return ErrNoSelection
	}
	cell, orientation := c.cell, c.orientations[c.orientation]

	var secondary models.Action
	if spot == "" {
		secondary = models.Pass()
	} else {
		if !containsSpot(c.preview, spot) {
			// the server decides; a stale local preview must not block the move
			c.log.Warn("buffering a spot the local preview does not list", "spot", spot)
		}
		secondary = models.Mark(cell, spot)
	}

	primary := models.Place(cell, orientation)
	primary.ID = c.newID()
	c.primaryID = primary.ID
	c.placed = &primary
	c.buffered = &secondary
	c.preview = nil
	c.setState(Submitted)

	c.log.Info("submitting placement", "id", primary.ID, "action", primary, "buffered", secondary)
	c.submit.Submit(primary)
	return nil
}

// Choose submits a from the server's list after a fallback.
func (c *Controller) Choose(a models.Action) error {
	if c.state != ServerChoice {
		return ErrNotAwaitingChoice
	}
	offered, ok := findMove(c.choices, a)
	if !ok {
		return fmt.Errorf("choose %v: %w", a, ErrChoiceNotOffered)
	}
	c.choices = nil
	c.send(offered)
	c.setState(Submitted)
	return nil
}

// Cancel drops the current selection.
func (c *Controller) Cancel() {
	if c.state.selecting() {
		c.reset()
	}
}

// Resync drops every pending local decision. The transport calls it when the
// server rejects an action; the next snapshot rebuilds the predictions.
func (c *Controller) Resync() {
	c.log.Warn("resynchronising after rejection", "state", c.state, "primary", c.primaryID)
	c.reset()
}

// replay sends the buffered choice if the server still offers it, else
// falls back to the server's own list.
func (c *Controller) replay(legal []models.Action) {
	want := *c.buffered
	c.buffered = nil
	offered := secondaryActions(legal)
	if match, ok := findMove(offered, want); ok {
		c.log.Info("replaying buffered choice", "action", want)
		c.send(match)
		return
	}
	c.log.Info("buffered choice no longer legal, asking the player",
		"action", want, "offered", len(offered), "local", c.CommittedSpots())
	c.offer(offered)
}

// offer shows the server's secondary list. An empty list has nothing to
// choose and leaves the controller waiting for the next turn.
func (c *Controller) offer(choices []models.Action) {
	if len(choices) == 0 {
		c.choices = nil
		if c.state == ServerChoice {
			c.setState(Idle)
		}
		return
	}
	c.choices = choices
	c.setState(ServerChoice)
	c.listener.ServerChoices(append([]models.Action(nil), choices...))
}

func (c *Controller) send(a models.Action) {
	if a.ID == "" {
		a.ID = c.newID()
	}
	c.log.Info("submitting secondary action", "id", a.ID, "action", a)
	c.submit.Submit(a)
}

// revalidate checks the selection against a fresh snapshot.
func (c *Controller) revalidate() {
	if !c.canPlace() {
		c.reset()
		return
	}
	current := c.orientations[c.orientation]
	orientations := c.snap.Predictor.ValidOrientationsAt(c.cell)
	if len(orientations) == 0 {
		c.log.Debug("selected cell no longer legal", "cell", c.cell)
		c.reset()
		return
	}
	c.orientations = orientations
	c.orientation = 0
	for i, o := range orientations {
		if o == current {
			c.orientation = i
			break
		}
	}
	previewed := c.previewed
	c.refreshPreview()
	if c.state == SecondaryChoicePreviewed {
		if containsSpot(c.preview, previewed) {
			c.previewed = previewed
		} else {
			c.setState(CellSelected)
		}
	}
}

func (c *Controller) refreshPreview() {
	c.preview = c.snap.Predictor.PreviewSecondary(c.cell, c.orientations[c.orientation])
	c.previewed = ""
}

func (c *Controller) canPlace() bool {
	return c.snap.Active && c.snap.Phase == models.PhasePlace && c.snap.Predictor != nil
}

func (c *Controller) reset() {
	c.cell = models.Cell{}
	c.orientations = nil
	c.orientation = 0
	c.preview = nil
	c.previewed = ""
	c.buffered = nil
	c.placed = nil
	c.choices = nil
	c.setState(Idle)
}

func (c *Controller) setState(s State) {
	if s == c.state {
		return
	}
	from := c.state
	c.state = s
	c.listener.StateChanged(from, s)
}

func containsSpot(spots []models.Spot, s models.Spot) bool {
	for _, x := range spots {
		if x == s {
			return true
		}
	}
	return false
}
