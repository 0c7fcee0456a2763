package ast

import (
	"testing"
)

func TestParseEquinox(t *testing.T) {
	tests := []struct {
		token string
		want  Equinox
		ok    bool
	}{
		{"J2000", "J2000.0", true},
		{"J2000.0", "J2000.0", true},
		{"B1950.", "B1950.0", true},
		{"J2015.5", "J2015.5", true},
		{"2000", "", false},
		{"ICRS", "", false},
		{"J", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseEquinox(tt.token)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseEquinox(%q) = %q, %v, want %q, %v", tt.token, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLookupFrameAliases(t *testing.T) {
	frame, eq, ok := LookupFrame("J2000")
	if !ok || frame != FrameFK5 || eq != "J2000.0" {
		t.Errorf("LookupFrame(J2000) = %q, %q, %v", frame, eq, ok)
	}
	frame, eq, ok = LookupFrame("B1950")
	if !ok || frame != FrameFK4 || eq != "B1950.0" {
		t.Errorf("LookupFrame(B1950) = %q, %q, %v", frame, eq, ok)
	}
	frame, _, ok = LookupFrame("GALACTIC_II")
	if !ok || frame != FrameGalactic {
		t.Errorf("LookupFrame(GALACTIC_II) = %q, %v", frame, ok)
	}
	if _, _, ok := LookupFrame("icrs"); ok {
		t.Error("LookupFrame should be case sensitive")
	}
}

func TestFlavorDim(t *testing.T) {
	want := map[Flavor]int{
		FlavorCartesian1: 1,
		FlavorSpherical2: 2,
		FlavorCartesian2: 2,
		FlavorCartesian3: 3,
		FlavorSpherical3: 3,
		FlavorUnitSphere: 3,
	}
	for f, dim := range want {
		if got := f.Dim(); got != dim {
			t.Errorf("%s.Dim() = %d, want %d", f, got, dim)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := &Tree{
		ID: "r1",
		Space: &Space{
			CoordSys: CoordSys{Frame: FrameICRS, Flavor: FlavorSpherical2},
			Geometry: &Compound{Op: KindUnion, Children: []Geometry{
				&Circle{Center: []float64{10, 20}, Radius: 1},
				&Polygon{Vertices: [][]float64{{1, 2}, {3, 4}, {5, 6}}},
			}},
			Error: []float64{0.1},
		},
	}
	clone := orig.Clone()
	if !Equal(orig, clone, 0) {
		t.Fatal("clone differs from original")
	}

	clone.Space.Geometry.(*Compound).Children[0].(*Circle).Center[0] = 99
	clone.Space.Error[0] = 5
	if orig.Space.Geometry.(*Compound).Children[0].(*Circle).Center[0] != 10 {
		t.Error("mutating the clone changed the original circle")
	}
	if orig.Space.Error[0] != 0.1 {
		t.Error("mutating the clone changed the original error")
	}
}

func TestEqualTolerance(t *testing.T) {
	a := &Tree{Space: &Space{
		CoordSys: CoordSys{Frame: FrameICRS, Flavor: FlavorSpherical2},
		Geometry: &Position{Values: []float64{12, 34}},
	}}
	b := a.Clone()
	b.Space.Geometry.(*Position).Values[1] += 1e-10
	if !Equal(a, b, 1e-9) {
		t.Error("values within tolerance should compare equal")
	}
	b.Space.Frame = FrameGalactic
	if Equal(a, b, 1e-9) {
		t.Error("different frames should not compare equal")
	}
}

func TestPoints(t *testing.T) {
	g := &Compound{Op: KindIntersection, Children: []Geometry{
		&Circle{Center: []float64{1, 2}, Radius: 3},
		&Compound{Op: KindNot, Children: []Geometry{
			&Box{Center: []float64{4, 5}, Size: []float64{1, 1}},
		}},
	}}
	points := Points(g)
	if len(points) != 2 {
		t.Fatalf("len(Points) = %d, want 2", len(points))
	}
	if points[1][0] != 4 {
		t.Errorf("second point = %v, want box center", points[1])
	}
}

func TestCoordSysString(t *testing.T) {
	cs := CoordSys{Frame: FrameFK5, Equinox: "J2000.0", RefPos: RefPosTopocenter, Flavor: FlavorSpherical2}
	if got, want := cs.String(), "FK5 J2000.0 TOPOCENTER"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	cs = CoordSys{Frame: FrameICRS, RefPos: RefPosUnknown, Flavor: FlavorCartesian3}
	if got, want := cs.String(), "ICRS CARTESIAN3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
