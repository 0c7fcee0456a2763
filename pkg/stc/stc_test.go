package stc

import (
	"errors"
	"math"
	"strings"
	"testing"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

func mustParse(t *testing.T, text string) *ast.Tree {
	t.Helper()
	tree, err := ParseSTCS(text)
	if err != nil {
		t.Fatalf("ParseSTCS(%q) error = %v", text, err)
	}
	return tree
}

func TestSTCSRoundTrip(t *testing.T) {
	for _, text := range []string{
		"Position ICRS 12.0 34.0",
		"Circle FK5 J2000 TOPOCENTER 10 -20 0.5 unit deg Error 0.01",
		"Union GALACTIC ( Box 1 2 3 4 Not ( Circle 5 6 1 ) )",
		"TimeInterval TT 2000-01-01 2000-12-31 Position ICRS Spectral 1e9 unit Hz",
	} {
		tree := mustParse(t, text)
		again := mustParse(t, GetSTCS(tree))
		if !ast.Equal(tree, again, 1e-9) {
			t.Errorf("ParseSTCS(GetSTCS(%q)) = %s", text, GetSTCS(again))
		}
	}
}

func TestArityError(t *testing.T) {
	_, err := ParseSTCS("Position ICRS 12.0")
	var perr *stcErrors.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("ParseSTCS() error = %v, want ParseError", err)
	}
	if perr.Pos != len("Position ICRS 12.0") {
		t.Errorf("Pos = %d, want %d", perr.Pos, len("Position ICRS 12.0"))
	}
	if perr.Expr != "Position ICRS 12.0" {
		t.Errorf("Expr = %q", perr.Expr)
	}
}

func TestConformScenario(t *testing.T) {
	got, err := ConformSpherical(mustParse(t, "Position ICRS 12.0 34.0"), mustParse(t, "Position GALACTIC"))
	if err != nil {
		t.Fatalf("ConformSpherical() error = %v", err)
	}
	p := got.Space.Geometry.(*ast.Position)
	if math.Abs(p.Values[0]-122.118) > 0.1 || math.Abs(p.Values[1]-(-28.866)) > 0.1 {
		t.Errorf("(l, b) = (%.3f, %.3f), want (122.118, -28.866)", p.Values[0], p.Values[1])
	}
	if !strings.HasPrefix(GetSTCS(got), "Position GALACTIC 122.11") {
		t.Errorf("GetSTCS() = %q", GetSTCS(got))
	}
}

func TestConformInverse(t *testing.T) {
	a := mustParse(t, "Polygon FK4 B1950 10 10 20 10 15 25")
	b := mustParse(t, "Position ECLIPTIC J2000")
	there, err := ConformSpherical(a, b)
	if err != nil {
		t.Fatalf("ConformSpherical(a, b) error = %v", err)
	}
	back, err := ConformSpherical(there, a)
	if err != nil {
		t.Fatalf("ConformSpherical(there, a) error = %v", err)
	}
	if !ast.EqualGeometry(a.Space.Geometry, back.Space.Geometry, 1e-6) {
		t.Errorf("round trip through ECLIPTIC = %s, want %s", GetSTCS(back), GetSTCS(a))
	}
}

func TestConformRejectsCartesian(t *testing.T) {
	src := mustParse(t, "Position ICRS CARTESIAN3 1 2 3")
	got, err := ConformSpherical(src, mustParse(t, "Position GALACTIC"))
	if got != nil {
		t.Errorf("ConformSpherical() returned a tree alongside an error")
	}
	var nerr *stcErrors.NotImplementedError
	if !errors.As(err, &nerr) || !strings.Contains(nerr.Feature, "CARTESIAN3") {
		t.Errorf("ConformSpherical() error = %v, want NotImplementedError naming CARTESIAN3", err)
	}
}

func TestProfileHasNoValues(t *testing.T) {
	out, err := GetSTCXProfile(mustParse(t, "Time TT 2001-02-03 Circle ICRS 12.5 34.5 7.25 Spectral 42"))
	if err != nil {
		t.Fatalf("GetSTCXProfile() error = %v", err)
	}
	for _, v := range []string{"12.5", "34.5", "7.25", "42", "2001"} {
		if strings.Contains(out, v) {
			t.Errorf("GetSTCXProfile() contains %q:\n%s", v, out)
		}
	}
}

func TestSTCXRoundTrip(t *testing.T) {
	tree := mustParse(t, "Time UTC MJD 55000 Circle GALACTIC 1 2 3 Redshift 0.1")
	doc, err := GetSTCX(tree)
	if err != nil {
		t.Fatalf("GetSTCX() error = %v", err)
	}
	trees, err := ParseSTCX(doc)
	if err != nil {
		t.Fatalf("ParseSTCX() error = %v", err)
	}
	if len(trees) != 1 || !ast.Equal(tree, trees[0], 1e-9) {
		t.Errorf("ParseSTCX(GetSTCX()) did not reproduce %s", GetSTCS(tree))
	}
}

func TestParseSTCXValidates(t *testing.T) {
	const system = `<AstroCoordSystem id="s"><SpaceFrame><ICRS/><SPHERICAL coord_naxes="2"/></SpaceFrame></AstroCoordSystem>`
	position := func(c1, c2 string) string {
		return `<STCSpec>` + system + `<AstroCoords coord_system_id="s"><Position2D><Value2><C1>` +
			c1 + `</C1><C2>` + c2 + `</C2></Value2></Position2D></AstroCoords></STCSpec>`
	}

	tests := []struct {
		name string
		doc  string
		kind stcErrors.Kind
	}{
		{"latitude beyond pole", position("10", "120"), stcErrors.KindValue},
		{"not a number", position("NaN", "10"), stcErrors.KindXML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trees, err := ParseSTCX(tt.doc)
			if trees != nil {
				t.Errorf("ParseSTCX() = %d trees, want none", len(trees))
			}
			if got := stcErrors.KindOf(err); got != tt.kind {
				t.Errorf("KindOf(%v) = %q, want %q", err, got, tt.kind)
			}
		})
	}
}
