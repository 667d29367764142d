package tiles

import (
	"reflect"
	"testing"

	"github.com/gravitas-games/boardpredict/pkg/models"
)

// boardWithMarkedField places U at (0,-1) with its east field claimed. The
// field is still open toward (0,0).
func boardWithMarkedField() *Board {
	b := NewBoard()
	b.Tiles[Position{X: 0, Y: -1}] = PlacedTile{
		Type:     "U",
		Rotation: 0,
		Features: map[string]string{"road_NS": "r1", "field_E": "f1", "field_W": "f2"},
	}
	above := Position{X: 0, Y: -1}
	b.Regions["r1"] = Region{ID: "r1", Kind: Road, OpenEdges: []EdgeRef{{Pos: above, Edge: Simple(North)}, {Pos: above, Edge: Simple(South)}}}
	b.Regions["f1"] = Region{ID: "f1", Kind: Field, Marked: true, OpenEdges: []EdgeRef{
		{Pos: above, Edge: Compound(North, East)},
		{Pos: above, Edge: Simple(East)},
		{Pos: above, Edge: Compound(South, East)},
	}}
	b.Regions["f2"] = Region{ID: "f2", Kind: Field, OpenEdges: []EdgeRef{
		{Pos: above, Edge: Compound(North, West)},
		{Pos: above, Edge: Simple(West)},
		{Pos: above, Edge: Compound(South, West)},
	}}
	return b
}

func TestSpotJoinsMarkedNeighbourField(t *testing.T) {
	u, _ := Lookup("U")
	fieldE, ok := u.SpotAt("field_E", 0)
	if !ok {
		t.Fatalf("expected spot field_E on U")
	}
	pos := Position{}

	empty := NewBoard()
	if IsSpotOccupiedByAdjacentFeature(fieldE.Edges, pos, empty) {
		t.Fatalf("expected spot to be free while the neighbour is not placed")
	}

	b := boardWithMarkedField()
	if !IsSpotOccupiedByAdjacentFeature(fieldE.Edges, pos, b) {
		t.Fatalf("expected spot to join the marked field across N:E")
	}

	fieldW, _ := u.SpotAt("field_W", 0)
	if IsSpotOccupiedByAdjacentFeature(fieldW.Edges, pos, b) {
		t.Fatalf("expected west field to stay free, its neighbour region is unmarked")
	}
	road, _ := u.SpotAt("road_NS", 0)
	if IsSpotOccupiedByAdjacentFeature(road.Edges, pos, b) {
		t.Fatalf("expected road to stay free")
	}
	if IsSpotOccupiedByAdjacentFeature(fieldE.Edges, pos, nil) {
		t.Fatalf("expected nil board to report free")
	}
}

func TestMarkedRegionWithoutMatchingOpenEdge(t *testing.T) {
	b := boardWithMarkedField()
	f1 := b.Regions["f1"]
	f1.OpenEdges = f1.OpenEdges[:2] // closed toward (0,0)
	b.Regions["f1"] = f1
	u, _ := Lookup("U")
	fieldE, _ := u.SpotAt("field_E", 0)
	if IsSpotOccupiedByAdjacentFeature(fieldE.Edges, Position{}, b) {
		t.Fatalf("expected spot to be free when the region no longer lists the facing edge")
	}
}

func TestOccupancyStrategies(t *testing.T) {
	b := boardWithMarkedField()
	u, _ := Lookup("U")

	inferred := InferredFromNeighbors{Board: b}
	free := FreeSpots(inferred, u, Position{}, 0)
	var names []string
	for _, s := range free {
		names = append(names, s.Name)
	}
	if want := []string{"road_NS", "field_W"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("expected free spots %v, got %v", want, names)
	}

	// once the server commits the tile, its own map decides
	b.Tiles[Position{}] = PlacedTile{Type: "U", Rotation: 0, Features: map[string]string{
		"road_NS": "r1", "field_E": "f1", "field_W": "f2",
	}}
	committed := CommittedLookup{Board: b}
	fieldE, _ := u.SpotAt("field_E", 0)
	if !committed.Occupied(Position{}, fieldE) {
		t.Fatalf("expected committed lookup to see the marked region")
	}
	fieldW, _ := u.SpotAt("field_W", 0)
	if committed.Occupied(Position{}, fieldW) {
		t.Fatalf("expected committed lookup to report field_W free")
	}
	if committed.Occupied(Position{X: 9, Y: 9}, fieldE) {
		t.Fatalf("expected uncommitted position to report free")
	}
	if committed.Occupied(Position{}, Spot{Name: "nope"}) {
		t.Fatalf("expected unknown spot to report free")
	}
}

func TestPredictorPreview(t *testing.T) {
	b := boardWithMarkedField()
	p := NewPredictor(b, "U")

	cells := p.ValidPlacements()
	found := false
	for _, c := range cells {
		if c == (models.Cell{X: 0, Y: 0}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected (0,0) among placements, got %v", cells)
	}
	if got := p.ValidOrientationsAt(models.Cell{X: 0, Y: 0}); !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("expected orientations [0 2], got %v", got)
	}

	want := []models.Spot{"road_NS", "field_W"}
	if got := p.PreviewSecondary(models.Cell{X: 0, Y: 0}, 0); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v at 0°, got %v", want, got)
	}
	if got := p.PreviewSecondary(models.Cell{X: 0, Y: 0}, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v at 180°, got %v", want, got)
	}
	if got := p.PreviewSecondary(models.Cell{X: 0, Y: 0}, 7); got != nil {
		t.Fatalf("expected nil for a malformed orientation, got %v", got)
	}
	if got := NewPredictor(b, "Z").PreviewSecondary(models.Cell{}, 0); got != nil {
		t.Fatalf("expected nil for an unknown tile, got %v", got)
	}
}

func TestPredictorUsesCommittedMap(t *testing.T) {
	b := boardWithMarkedField()
	b.Tiles[Position{}] = PlacedTile{Type: "U", Rotation: 180, Features: map[string]string{
		"road_NS": "r1", "field_E": "f2", "field_W": "f1",
	}}
	p := NewPredictor(b, "U")
	got := p.PreviewSecondary(models.Cell{}, 0)
	want := []models.Spot{"road_NS", "field_E"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v from the committed map, got %v", want, got)
	}
}

func TestPredictorPreviewNeedsAFit(t *testing.T) {
	b := NewBoard()
	b.Tiles[Position{}] = PlacedTile{Type: "C"}
	p := NewPredictor(b, "U")

	cell := models.Cell{X: 1, Y: 0}
	if got := p.ValidOrientationsAt(cell); len(got) != 0 {
		t.Fatalf("expected U not to fit beside a city, got %v", got)
	}
	for o := range Rotations {
		if got := p.PreviewSecondary(cell, o); got != nil {
			t.Fatalf("expected no spots for orientation %d of a tile that does not fit, got %v", o, got)
		}
	}

	// a legal cell in an illegal orientation
	if got := NewPredictor(boardWithMarkedField(), "U").PreviewSecondary(models.Cell{}, 1); got != nil {
		t.Fatalf("expected no spots at 90°, got %v", got)
	}
}
