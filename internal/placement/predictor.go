package placement

import (
	"github.com/gravitas-games/boardpredict/internal/hat"
	"github.com/gravitas-games/boardpredict/internal/hex"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

// Board is one server snapshot of the hat board.
type Board struct {
	Pieces  []Piece
	States  CellStates
	Markers Markers
}

// Predictor answers the UI's legality questions for the hat game from a
// board snapshot. Cells are anchors with X=q, Y=r.
type Predictor struct {
	player string
	own    Ownership
	board  Board
}

// NewPredictor builds a predictor for player over board.
func NewPredictor(player string, board Board) (*Predictor, error) {
	own, err := NewOwnership(board.Pieces)
	if err != nil {
		return nil, err
	}
	return &Predictor{player: player, own: own, board: board}, nil
}

// Ownership exposes the kite ownership map of the snapshot.
func (p *Predictor) Ownership() Ownership { return p.own }

// ValidPlacements returns the anchors with at least one legal orientation.
func (p *Predictor) ValidPlacements() []models.Cell {
	anchors := ValidAnchors(p.own)
	out := make([]models.Cell, len(anchors))
	for i, a := range anchors {
		out[i] = cellOf(a)
	}
	return out
}

// ValidOrientationsAt returns the legal orientations at cell in index order.
func (p *Predictor) ValidOrientationsAt(cell models.Cell) []int {
	return ValidOrientations(p.own, axialOf(cell))
}

// PreviewSecondary returns the claim spots that would be legal once the
// previewed piece is on the board. Once the server has committed the
// player's piece there, the snapshot is read as is.
func (p *Predictor) PreviewSecondary(cell models.Cell, orientation int) []models.Spot {
	anchor := axialOf(cell)
	kites, ok := hat.PlacedKites(orientation, anchor.Q, anchor.R)
	if !ok {
		return nil
	}
	if p.ownsAll(kites) {
		return spotsOf(ValidMarkHexes(p.own, p.board.States, p.board.Markers))
	}
	if !IsValidPlacement(p.own, orientation, anchor.Q, anchor.R) {
		return nil
	}
	next, ok := p.own.With(Piece{Owner: p.player, Orientation: orientation, Anchor: anchor})
	if !ok {
		return nil
	}
	return spotsOf(ValidMarkHexes(next, p.board.States, p.board.Markers))
}

// ConflictSpots returns the contested hexes the local player can resolve.
func (p *Predictor) ConflictSpots() []models.Spot {
	return spotsOf(ConflictHexes(p.own, p.board.States, p.board.Markers, p.player))
}

func (p *Predictor) ownsAll(kites []hex.Kite) bool {
	if p.player == "" {
		return false
	}
	for _, k := range kites {
		if p.own[k] != p.player {
			return false
		}
	}
	return true
}

func spotsOf(hexes []hex.Axial) []models.Spot {
	out := make([]models.Spot, len(hexes))
	for i, h := range hexes {
		out[i] = models.Spot(h.String())
	}
	return out
}

func cellOf(a hex.Axial) models.Cell  { return models.Cell{X: a.Q, Y: a.R} }
func axialOf(c models.Cell) hex.Axial { return hex.Axial{Q: c.X, R: c.Y} }
