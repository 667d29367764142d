package client

import (
	"fmt"

	"github.com/gravitas-games/boardpredict/internal/hex"
	"github.com/gravitas-games/boardpredict/internal/network"
	"github.com/gravitas-games/boardpredict/internal/placement"
	"github.com/gravitas-games/boardpredict/internal/reconcile"
	"github.com/gravitas-games/boardpredict/internal/tiles"
	"github.com/gravitas-games/boardpredict/pkg/models"
)

// EncodeAction converts an action to its wire form.
func EncodeAction(a models.Action) network.ActionPayload {
	return network.ActionPayload{
		ID:          a.ID,
		Kind:        a.Kind.String(),
		X:           a.Cell.X,
		Y:           a.Cell.Y,
		Orientation: a.Orientation,
		Spot:        string(a.Spot),
	}
}

// DecodeAction converts a wire action.
func DecodeAction(p network.ActionPayload) (models.Action, error) {
	kind, err := models.ParseActionKind(p.Kind)
	if err != nil {
		return models.Action{}, err
	}
	return models.Action{
		ID:          p.ID,
		Kind:        kind,
		Cell:        models.Cell{X: p.X, Y: p.Y},
		Orientation: p.Orientation,
		Spot:        models.Spot(p.Spot),
	}, nil
}

// DecodeSnapshot turns a state message into the controller's snapshot,
// building the predictor for whichever game the message carries.
func DecodeSnapshot(p *network.StatePayload, player string) (reconcile.Snapshot, error) {
	snap := reconcile.Snapshot{
		Turn:   p.Turn,
		Phase:  models.ParsePhase(p.Phase),
		Active: p.ActivePlayer == player,
	}

	for _, ap := range p.Legal {
		a, err := DecodeAction(ap)
		if err != nil {
			return reconcile.Snapshot{}, fmt.Errorf("legal action: %w", err)
		}
		snap.Legal = append(snap.Legal, a)
	}

	switch p.Game {
	case network.GameHats:
		if p.Hats == nil {
			return reconcile.Snapshot{}, fmt.Errorf("hats state without a board")
		}
		pred, err := placement.NewPredictor(player, decodeHatBoard(p.Hats))
		if err != nil {
			return reconcile.Snapshot{}, fmt.Errorf("hat board: %w", err)
		}
		snap.Predictor = pred
	case network.GameTiles:
		if p.Tiles == nil {
			return reconcile.Snapshot{}, fmt.Errorf("tiles state without a board")
		}
		board, err := decodeTileBoard(p.Tiles)
		if err != nil {
			return reconcile.Snapshot{}, err
		}
		snap.Predictor = tiles.NewPredictor(board, p.Tiles.Current)
	default:
		return reconcile.Snapshot{}, fmt.Errorf("unknown game %q", p.Game)
	}

	return snap, nil
}

func decodeHatBoard(p *network.HatBoardPayload) placement.Board {
	board := placement.Board{
		States:  make(placement.CellStates, len(p.Cells)),
		Markers: make(placement.Markers, len(p.Markers)),
	}
	for _, pc := range p.Pieces {
		board.Pieces = append(board.Pieces, placement.Piece{
			Owner:       pc.Owner,
			Orientation: pc.Orientation,
			Anchor:      hex.Axial{Q: pc.Q, R: pc.R},
		})
	}
	for _, c := range p.Cells {
		board.States[hex.Axial{Q: c.Q, R: c.R}] = placement.ParseCellState(c.State)
	}
	for _, m := range p.Markers {
		board.Markers[hex.Axial{Q: m.Q, R: m.R}] = m.Owner
	}
	return board
}

func decodeTileBoard(p *network.TileBoardPayload) (*tiles.Board, error) {
	if p.Current != "" {
		if _, ok := tiles.Lookup(p.Current); !ok {
			return nil, fmt.Errorf("unknown current tile %q", p.Current)
		}
	}

	board := tiles.NewBoard()
	for _, t := range p.Tiles {
		if _, ok := tiles.Lookup(t.Type); !ok {
			return nil, fmt.Errorf("tile at %d,%d: unknown type %q", t.X, t.Y, t.Type)
		}
		if !tiles.ValidRotation(t.Rotation) {
			return nil, fmt.Errorf("tile at %d,%d: invalid rotation %d", t.X, t.Y, t.Rotation)
		}
		pos := tiles.Position{X: t.X, Y: t.Y}
		if _, dup := board.Tiles[pos]; dup {
			return nil, fmt.Errorf("two tiles at %v", pos)
		}
		board.Tiles[pos] = tiles.PlacedTile{Type: t.Type, Rotation: t.Rotation, Features: t.Features}
	}

	for _, r := range p.Regions {
		kind, err := tiles.ParseSpotKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("region %s: %w", r.ID, err)
		}
		region := tiles.Region{ID: r.ID, Kind: kind, Marked: r.Marked}
		for _, e := range r.OpenEdges {
			edge, err := tiles.ParseEdge(e.Edge)
			if err != nil {
				return nil, fmt.Errorf("region %s: %w", r.ID, err)
			}
			region.OpenEdges = append(region.OpenEdges, tiles.EdgeRef{Pos: tiles.Position{X: e.X, Y: e.Y}, Edge: edge})
		}
		board.Regions[r.ID] = region
	}

	return board, nil
}
