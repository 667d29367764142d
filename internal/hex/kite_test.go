package hex

import "testing"

func TestKiteNeighborsSymmetric(t *testing.T) {
	for _, a := range Disk(Axial{}, 3) {
		for _, k := range Kites(a) {
			for _, n := range k.Neighbors() {
				found := false
				for _, back := range n.Neighbors() {
					if back == k {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("kite %v lists %v as neighbour but not the reverse", k, n)
				}
			}
		}
	}
}

func TestKiteNeighborsAcrossEdges(t *testing.T) {
	k := Kite{Q: 0, R: 0, K: 1}
	got := k.Neighbors()
	want := [4]Kite{
		{0, 0, 2},
		{0, 0, 0},
		{1, 0, 3}, // through edge 0 into kite 3
		{0, 1, 5}, // through edge 1 into kite 5
	}
	if got != want {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// wrap-around at k=0 goes through edge 5
	got = Kite{Q: 2, R: -1, K: 0}.Neighbors()
	if got[2] != (Kite{Q: 3, R: -2, K: 2}) {
		t.Fatalf("expected kite 3,-2,2 across edge 5, got %v", got[2])
	}
	if got[3] != (Kite{Q: 3, R: -1, K: 4}) {
		t.Fatalf("expected kite 3,-1,4 across edge 0, got %v", got[3])
	}
}

func TestKitePolygonWinding(t *testing.T) {
	for k := 0; k < 6; k++ {
		p := KitePolygon(k, 30)
		area := 0.0
		for i := 0; i < 4; i++ {
			j := (i + 1) % 4
			area += p[i].X*p[j].Y - p[j].X*p[i].Y
		}
		if area <= 0 {
			t.Fatalf("kite %d: expected positive signed area, got %f", k, area)
		}
	}
}

func TestKiteAtCentroid(t *testing.T) {
	const size = 30.0
	for _, a := range Disk(Axial{Q: 1, R: 1}, 2) {
		cx, cy := HexToPixel(a, size)
		for k := 0; k < 6; k++ {
			p := KitePolygon(k, size)
			var mx, my float64
			for _, pt := range p {
				mx += pt.X / 4
				my += pt.Y / 4
			}
			got := KiteAt(cx+mx, cy+my, size)
			want := Kite{Q: a.Q, R: a.R, K: k}
			if got != want {
				t.Fatalf("expected %v at kite centroid, got %v", want, got)
			}
		}
	}
}
