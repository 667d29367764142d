package tiles

import "github.com/gravitas-games/boardpredict/pkg/models"

// Predictor answers the UI's legality questions for the tile in hand.
// Orientation indexes are quarter turns: 0, 1, 2, 3 for 0°..270°.
type Predictor struct {
	board   *Board
	current string
}

// NewPredictor builds a predictor for placing tile type current on board.
func NewPredictor(board *Board, current string) *Predictor {
	if board == nil {
		board = NewBoard()
	}
	return &Predictor{board: board, current: current}
}

// ValidPlacements returns the positions where the current tile fits.
func (p *Predictor) ValidPlacements() []models.Cell {
	positions := ValidPositions(p.board, p.current)
	out := make([]models.Cell, len(positions))
	for i, pos := range positions {
		out[i] = cellOf(pos)
	}
	return out
}

// ValidOrientationsAt returns the quarter turns at which the tile fits.
func (p *Predictor) ValidOrientationsAt(cell models.Cell) []int {
	return ValidRotations(p.board, p.current, positionOf(cell))
}

// PreviewSecondary returns the spots still free on the previewed tile. A
// tile that does not fit at cell in that orientation has none.
func (p *Predictor) PreviewSecondary(cell models.Cell, orientation int) []models.Spot {
	if orientation < 0 || orientation >= len(Rotations) {
		return nil
	}
	t, ok := Lookup(p.current)
	if !ok {
		return nil
	}
	pos := positionOf(cell)
	check, deg, ok := p.occupancy(pos, Rotations[orientation])
	if !ok {
		return nil
	}
	free := FreeSpots(check, t, pos, deg)
	out := make([]models.Spot, len(free))
	for i, s := range free {
		out[i] = models.Spot(s.Name)
	}
	return out
}

// occupancy picks the strategy for pos: the server's map once the tile is
// committed there (at its committed rotation), inference from neighbours
// before that. It reports false when an uncommitted tile does not fit.
func (p *Predictor) occupancy(pos Position, deg int) (OccupancyCheck, int, bool) {
	if tile, ok := p.board.TileAt(pos); ok && tile.Type == p.current {
		return CommittedLookup{Board: p.board}, tile.Rotation, true
	}
	if !Fits(p.board, p.current, pos, deg) {
		return nil, 0, false
	}
	return InferredFromNeighbors{Board: p.board}, deg, true
}

func cellOf(p Position) models.Cell     { return models.Cell{X: p.X, Y: p.Y} }
func positionOf(c models.Cell) Position { return Position{X: c.X, Y: c.Y} }
