package tiles

import (
	"fmt"
	"sort"
)

// SpotKind is the kind of feature an attachment spot sits on.
type SpotKind int

const (
	Field SpotKind = iota
	Road
	City
	Monastery
)

func (k SpotKind) String() string {
	switch k {
	case Field:
		return "field"
	case Road:
		return "road"
	case City:
		return "city"
	case Monastery:
		return "monastery"
	default:
		return "unknown"
	}
}

// ParseSpotKind maps a wire name to a kind.
func ParseSpotKind(s string) (SpotKind, error) {
	switch s {
	case "field":
		return Field, nil
	case "road":
		return Road, nil
	case "city":
		return City, nil
	case "monastery":
		return Monastery, nil
	default:
		return 0, fmt.Errorf("unknown spot kind %q", s)
	}
}

// Spot is a named attachment spot and the edges it touches.
type Spot struct {
	Name  string
	Kind  SpotKind
	Edges []Edge
}

// Rotate returns s as seen on a tile turned clockwise by deg.
func (s Spot) Rotate(deg int) Spot {
	return Spot{Name: RotateSpotName(s.Name, deg), Kind: s.Kind, Edges: RotateEdges(s.Edges, deg)}
}

// TileType is one catalog entry: its spots at rotation 0 and the feature
// kind of each side derived from them.
type TileType struct {
	ID    string
	Spots []Spot
	sides [4]SpotKind
}

// SpotsAt returns the spots of t on a tile turned clockwise by deg.
func (t TileType) SpotsAt(deg int) []Spot {
	out := make([]Spot, len(t.Spots))
	for i, s := range t.Spots {
		out[i] = s.Rotate(deg)
	}
	return out
}

// SpotAt looks up a spot by its rotated name.
func (t TileType) SpotAt(name string, deg int) (Spot, bool) {
	for _, s := range t.SpotsAt(deg) {
		if s.Name == name {
			return s, true
		}
	}
	return Spot{}, false
}

// Side returns the feature kind along side d when the tile is turned by deg.
func (t TileType) Side(d Direction, deg int) SpotKind {
	return t.sides[d.Rotate(-deg)]
}

// deriveSides assigns each side the strongest feature touching it whole:
// city, then road, else field.
func deriveSides(spots []Spot) [4]SpotKind {
	var sides [4]SpotKind
	for _, s := range spots {
		if s.Kind != City && s.Kind != Road {
			continue
		}
		for _, e := range s.Edges {
			if e.IsCompound() {
				continue
			}
			if s.Kind > sides[e.Side] {
				sides[e.Side] = s.Kind
			}
		}
	}
	return sides
}

type spotDef struct {
	name  string
	kind  SpotKind
	edges []string
}

func sp(name string, kind SpotKind, edges ...string) spotDef {
	return spotDef{name: name, kind: kind, edges: edges}
}

// catalogDefs lists the spots of every tile type at rotation 0. Names carry
// the directions of the sides they face in N,E,S,W order; "S:E" is the east
// half of the south side.
var catalogDefs = map[string][]spotDef{
	"A": {sp("monastery", Monastery), sp("road_S", Road, "S"), sp("field", Field, "N", "E", "S:E", "S:W", "W")},
	"B": {sp("monastery", Monastery), sp("field", Field, "N", "E", "S", "W")},
	"C": {sp("city", City, "N", "E", "S", "W")},
	"D": {sp("city_N", City, "N"), sp("road_EW", Road, "E", "W"), sp("field_N", Field, "E:N", "W:N"), sp("field_S", Field, "E:S", "S", "W:S")},
	"E": {sp("city_N", City, "N"), sp("field", Field, "E", "S", "W")},
	"F": {sp("city_EW", City, "E", "W"), sp("field_N", Field, "N"), sp("field_S", Field, "S")},
	"G": {sp("city_NS", City, "N", "S"), sp("field_E", Field, "E"), sp("field_W", Field, "W")},
	"H": {sp("city_E", City, "E"), sp("city_W", City, "W"), sp("field", Field, "N", "S")},
	"I": {sp("city_N", City, "N"), sp("city_E", City, "E"), sp("field", Field, "S", "W")},
	"J": {sp("city_N", City, "N"), sp("road_ES", Road, "E", "S"), sp("field_ES", Field, "E:S", "S:E"), sp("field", Field, "E:N", "S:W", "W")},
	"K": {sp("city_N", City, "N"), sp("road_SW", Road, "S", "W"), sp("field_SW", Field, "S:W", "W:S"), sp("field", Field, "E", "S:E", "W:N")},
	"L": {sp("city_N", City, "N"), sp("road_E", Road, "E"), sp("road_S", Road, "S"), sp("road_W", Road, "W"), sp("field", Field, "E:N", "W:N"), sp("field_ES", Field, "E:S", "S:E"), sp("field_SW", Field, "S:W", "W:S")},
	"M": {sp("city_NW", City, "N", "W"), sp("field", Field, "E", "S")},
	"N": {sp("city_NW", City, "N", "W"), sp("field", Field, "E", "S")},
	"O": {sp("city_NW", City, "N", "W"), sp("road_ES", Road, "E", "S"), sp("field_ES", Field, "E:S", "S:E"), sp("field", Field, "E:N", "S:W")},
	"P": {sp("city_NW", City, "N", "W"), sp("road_ES", Road, "E", "S"), sp("field_ES", Field, "E:S", "S:E"), sp("field", Field, "E:N", "S:W")},
	"Q": {sp("city_NEW", City, "N", "E", "W"), sp("field_S", Field, "S")},
	"R": {sp("city_NEW", City, "N", "E", "W"), sp("field_S", Field, "S")},
	"S": {sp("city_NEW", City, "N", "E", "W"), sp("road_S", Road, "S"), sp("field_ES", Field, "S:E"), sp("field_SW", Field, "S:W")},
	"T": {sp("city_NEW", City, "N", "E", "W"), sp("road_S", Road, "S"), sp("field_ES", Field, "S:E"), sp("field_SW", Field, "S:W")},
	"U": {sp("road_NS", Road, "N", "S"), sp("field_E", Field, "N:E", "E", "S:E"), sp("field_W", Field, "N:W", "S:W", "W")},
	"V": {sp("road_SW", Road, "S", "W"), sp("field_SW", Field, "S:W", "W:S"), sp("field", Field, "N", "E", "S:E", "W:N")},
	"W": {sp("road_E", Road, "E"), sp("road_S", Road, "S"), sp("road_W", Road, "W"), sp("field", Field, "N", "E:N", "W:N"), sp("field_ES", Field, "E:S", "S:E"), sp("field_SW", Field, "S:W", "W:S")},
	"X": {sp("road_N", Road, "N"), sp("road_E", Road, "E"), sp("road_S", Road, "S"), sp("road_W", Road, "W"), sp("field_NE", Field, "N:E", "E:N"), sp("field_ES", Field, "E:S", "S:E"), sp("field_SW", Field, "S:W", "W:S"), sp("field_NW", Field, "N:W", "W:N")},
}

// catalog is built once from catalogDefs and only read afterwards.
var catalog = mustBuildCatalog(catalogDefs)

func mustBuildCatalog(defs map[string][]spotDef) map[string]TileType {
	out, err := buildCatalog(defs)
	if err != nil {
		panic(err)
	}
	return out
}

func buildCatalog(defs map[string][]spotDef) (map[string]TileType, error) {
	out := make(map[string]TileType, len(defs))
	for id, sds := range defs {
		spots := make([]Spot, 0, len(sds))
		seen := make(map[string]bool, len(sds))
		for _, sd := range sds {
			if seen[sd.name] {
				return nil, fmt.Errorf("tile %s: duplicate spot %s", id, sd.name)
			}
			seen[sd.name] = true
			edges := make([]Edge, 0, len(sd.edges))
			for _, raw := range sd.edges {
				e, err := ParseEdge(raw)
				if err != nil {
					return nil, fmt.Errorf("tile %s spot %s: %w", id, sd.name, err)
				}
				edges = append(edges, e)
			}
			spots = append(spots, Spot{Name: sd.name, Kind: sd.kind, Edges: edges})
		}
		out[id] = TileType{ID: id, Spots: spots, sides: deriveSides(spots)}
	}
	return out, nil
}

// Lookup returns a copy of the catalog entry for id.
func Lookup(id string) (TileType, bool) {
	t, ok := catalog[id]
	if !ok {
		return TileType{}, false
	}
	spots := make([]Spot, len(t.Spots))
	for i, s := range t.Spots {
		spots[i] = Spot{Name: s.Name, Kind: s.Kind, Edges: append([]Edge(nil), s.Edges...)}
	}
	t.Spots = spots
	return t, true
}

// TileIDs returns every catalog letter in order.
func TileIDs() []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
