package conform

import (
	"errors"
	"math"
	"strings"
	"testing"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/sphermath"
	"mercator-hq/stc/pkg/stc/stcs"
)

func parse(t *testing.T, expr string) *ast.Tree {
	t.Helper()
	tree, err := stcs.Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", expr, err)
	}
	return tree
}

func position(t *testing.T, tree *ast.Tree) (float64, float64) {
	t.Helper()
	p, ok := tree.Space.Geometry.(*ast.Position)
	if !ok || len(p.Values) != 2 {
		t.Fatalf("Geometry = %#v, want a two-value position", tree.Space.Geometry)
	}
	return p.Values[0], p.Values[1]
}

func TestICRSToGalactic(t *testing.T) {
	src := parse(t, "Position ICRS 12.0 34.0")
	dst := parse(t, "Position GALACTIC")

	got, err := Spherical(src, dst)
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	if got.Space.Frame != ast.FrameGalactic {
		t.Errorf("Frame = %q, want GALACTIC", got.Space.Frame)
	}
	l, b := position(t, got)
	if math.Abs(l-122.118) > 0.01 || math.Abs(b-(-28.866)) > 0.01 {
		t.Errorf("(l, b) = (%.4f, %.4f), want (122.118, -28.866)", l, b)
	}
}

func TestGalacticCenterToICRS(t *testing.T) {
	got, err := Spherical(parse(t, "Position GALACTIC 0 0"), parse(t, "Position ICRS"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	ra, dec := position(t, got)
	if math.Abs(ra-266.40499) > 1e-4 || math.Abs(dec-(-28.93617)) > 1e-4 {
		t.Errorf("(ra, dec) = (%.5f, %.5f), want (266.40499, -28.93617)", ra, dec)
	}
}

func TestConformIdentity(t *testing.T) {
	exprs := []string{
		"Position ICRS 12 34",
		"Box FK4 B1900 10 20 2 3",
		"Circle ECLIPTIC J2050 359.9 -45 1",
		"Union GALACTIC ( Circle 1 2 3 Polygon 1 1 2 1 2 2 )",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			tree := parse(t, expr)
			got, err := Spherical(tree, tree)
			if err != nil {
				t.Fatalf("Spherical() error = %v", err)
			}
			if !ast.EqualGeometry(tree.Space.Geometry, got.Space.Geometry, 1e-6) {
				t.Errorf("conform into its own system changed the geometry: %s", stcs.Emit(got))
			}
		})
	}
}

func TestFK5J2000IsICRS(t *testing.T) {
	got, err := Spherical(parse(t, "Position FK5 J2000 12 34"), parse(t, "Position ICRS"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	ra, dec := position(t, got)
	if ra != 12 || dec != 34 {
		t.Errorf("(ra, dec) = (%g, %g), want (12, 34)", ra, dec)
	}
}

func TestConformInverse(t *testing.T) {
	tests := []struct {
		src, via string
	}{
		{"Position ICRS 12 34", "Position GALACTIC"},
		{"Position ICRS 0 89.9", "Position GALACTIC"},
		{"Position FK4 B1900 200 -30", "Position ECLIPTIC J2050"},
		{"Position FK5 J1975 359.99 10", "Position SUPER_GALACTIC"},
		{"Position B1950 45 45", "Position FK5 B1975"},
		{"Position ICRS 3600 7200 unit arcsec", "Position GALACTIC"},
		{"Position ECLIPTIC 0.5 0.25 unit rad", "Position FK4"},
	}
	for _, tt := range tests {
		t.Run(tt.src+" via "+tt.via, func(t *testing.T) {
			a := parse(t, tt.src)
			b := parse(t, tt.via)
			there, err := Spherical(a, b)
			if err != nil {
				t.Fatalf("Spherical(a, b) error = %v", err)
			}
			back, err := Spherical(there, a)
			if err != nil {
				t.Fatalf("Spherical(Spherical(a, b), a) error = %v", err)
			}

			perDegree, _ := ast.DegreesPer(a.Space.Unit)
			lon0, lat0 := position(t, a)
			lon1, lat1 := position(t, back)
			d := sphermath.AngularDistance(lon0*perDegree, lat0*perDegree, lon1*perDegree, lat1*perDegree)
			if d > 1e-6 {
				t.Errorf("round trip moved the point by %g deg: (%g, %g) -> (%g, %g)", d, lon0, lat0, lon1, lat1)
			}
			if back.Space.CoordSys != a.Space.CoordSys {
				t.Errorf("CoordSys = %+v, want %+v", back.Space.CoordSys, a.Space.CoordSys)
			}
		})
	}
}

func TestConformNormalizesRanges(t *testing.T) {
	got, err := Spherical(parse(t, "Position GALACTIC 359.9999 -89.9"), parse(t, "Position ICRS"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	lon, lat := position(t, got)
	if lon < 0 || lon >= 360 || lat < -90 || lat > 90 {
		t.Errorf("(%g, %g) outside [0,360) x [-90,90]", lon, lat)
	}
}

func TestConformNotImplemented(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		dst     string
		feature string
	}{
		{"cartesian source", "Position ICRS CARTESIAN3 1 2 3", "Position GALACTIC", "CARTESIAN3"},
		{"cartesian target", "Position ICRS 1 2", "Position GALACTIC CARTESIAN2", "CARTESIAN2"},
		{"unknown frame", "Position UNKNOWNFrame 1 2", "Position ICRS", "UNKNOWNFrame"},
		{"earth-fixed", "Position ICRS 1 2", "Position GEO_D", "GEO_D"},
		{"no space in target", "Position ICRS 1 2", "Time TT", "spatial"},
		{"non-angular unit", "Position ICRS 1 2 unit pc", "Position GALACTIC", "unit pc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Spherical(parse(t, tt.src), parse(t, tt.dst))
			if got != nil {
				t.Errorf("Spherical() returned a result alongside an error: %s", stcs.Emit(got))
			}
			var nerr *stcErrors.NotImplementedError
			if !errors.As(err, &nerr) {
				t.Fatalf("error = %v, want *NotImplementedError", err)
			}
			if !strings.Contains(nerr.Feature, tt.feature) {
				t.Errorf("Feature = %q, want it to name %q", nerr.Feature, tt.feature)
			}
		})
	}
}

func TestConformDoesNotMutateInputs(t *testing.T) {
	src := parse(t, "Time TT 2000-01-01 Circle ICRS TOPOCENTER 10 20 1 Error 0.5 Spectral 1 unit Hz")
	dst := parse(t, "Position GALACTIC BARYCENTER 5 5")
	srcText, dstText := stcs.Emit(src), stcs.Emit(dst)

	got, err := Spherical(src, dst)
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	if stcs.Emit(src) != srcText || stcs.Emit(dst) != dstText {
		t.Error("Spherical modified its inputs")
	}

	if got.Space.CoordSys != dst.Space.CoordSys {
		t.Errorf("CoordSys = %+v, want the target's %+v", got.Space.CoordSys, dst.Space.CoordSys)
	}
	c := got.Space.Geometry.(*ast.Circle)
	if c.Radius != 1 || got.Space.Error[0] != 0.5 {
		t.Errorf("radius/error changed: %g %v", c.Radius, got.Space.Error)
	}
	if !ast.Equal(&ast.Tree{Time: src.Time, Spectral: src.Spectral}, &ast.Tree{Time: got.Time, Spectral: got.Spectral}, 0) {
		t.Error("time and spectral phrases should pass through unchanged")
	}
}

func TestConformRegions(t *testing.T) {
	got, err := Spherical(parse(t, "Box ICRS 10 20 2 2"), parse(t, "Position GALACTIC"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	poly, ok := got.Space.Geometry.(*ast.Polygon)
	if !ok || len(poly.Vertices) != 4 {
		t.Fatalf("Geometry = %#v, want a 4-vertex polygon", got.Space.Geometry)
	}

	got, err = Spherical(parse(t, "Convex ICRS 0 0 1 0"), parse(t, "Position GALACTIC"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	h := got.Space.Geometry.(*ast.Convex).Halfspaces[0]
	_, lat := sphermath.ToSpherical(sphermath.Vec3(h.Vector))
	if math.Abs(lat-27.12825) > 1e-4 {
		t.Errorf("celestial pole latitude in galactic = %.5f, want 27.12825", lat)
	}

	got, err = Spherical(parse(t, "Union ICRS ( Circle 12 34 1 Not ( Polygon 1 1 2 1 2 2 ) )"), parse(t, "Position GALACTIC"))
	if err != nil {
		t.Fatalf("Spherical() error = %v", err)
	}
	u := got.Space.Geometry.(*ast.Compound)
	center := u.Children[0].(*ast.Circle).Center
	if math.Abs(center[0]-122.118) > 0.01 {
		t.Errorf("circle center l = %g, want 122.118", center[0])
	}
	if u.Children[1].Kind() != ast.KindNot {
		t.Errorf("second child = %s, want Not", u.Children[1].Kind())
	}
}

func TestMatrixComposition(t *testing.T) {
	icrs := ast.CoordSys{Frame: ast.FrameICRS, Flavor: ast.FlavorSpherical2}
	gal := ast.CoordSys{Frame: ast.FrameGalactic, Flavor: ast.FlavorSpherical2}
	ecl := ast.CoordSys{Frame: ast.FrameEcliptic, Equinox: "J2000.0", Flavor: ast.FlavorSpherical2}

	a, err := Matrix(icrs, gal)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Matrix(gal, ecl)
	if err != nil {
		t.Fatal(err)
	}
	direct, err := Matrix(icrs, ecl)
	if err != nil {
		t.Fatal(err)
	}
	composed := b.Mul(a)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(composed[i][j]-direct[i][j]) > 1e-12 {
				t.Fatalf("composed[%d][%d] = %g, direct = %g", i, j, composed[i][j], direct[i][j])
			}
		}
	}
}
