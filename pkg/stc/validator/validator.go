// Package validator checks parsed trees for values that are well-formed but
// impossible: coordinate tuples that disagree with their flavor, latitudes
// beyond the poles, negative radii, inverted intervals.
package validator

import (
	"fmt"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

// Validate runs the structural pass and, if it passes, the range pass.
// It returns nil, a single *errors.ValueError, or an *errors.ErrorList.
func Validate(tree *ast.Tree) error {
	errs := stcErrors.NewErrorList()
	checkStructure(tree, errs)
	if !errs.HasErrors() {
		checkRanges(tree, errs)
	}
	return errs.ToError()
}

// checkStructure verifies arities. Trees built by the STC-S parser always
// pass; trees assembled from STC-X or by hand may not.
func checkStructure(tree *ast.Tree, errs *stcErrors.ErrorList) {
	if sp := tree.Space; sp != nil {
		if sp.Equinox != "" && !sp.Frame.HasEquinox() {
			errs.Add("space.equinox", "frame %s takes no equinox", sp.Frame)
		}
		dim := sp.Flavor.Dim()
		if dim == 0 {
			errs.Add("space.flavor", "unknown flavor %q", sp.Flavor)
			return
		}
		checkGeometryArity(sp.Geometry, dim, "space", errs)
	}
	if tm := tree.Time; tm != nil {
		if n := len(tm.Values); n != 0 && n != tm.Kind.Arity() {
			errs.Add("time.values", "%s takes %d values, found %d", tm.Kind, tm.Kind.Arity(), n)
		}
	}
	if sp := tree.Spectral; sp != nil {
		checkScalarArity("spectral.values", string(sp.Kind), sp.Kind == ast.SpectralKindInterval, sp.Values, errs)
	}
	if rs := tree.Redshift; rs != nil {
		checkScalarArity("redshift.values", string(rs.Kind), rs.Kind == ast.RedshiftKindInterval, rs.Values, errs)
	}
}

func checkScalarArity(field, kind string, interval bool, values []float64, errs *stcErrors.ErrorList) {
	want := 1
	if interval {
		want = 2
	}
	if n := len(values); n != 0 && n != want {
		errs.Add(field, "%s takes %d values, found %d", kind, want, n)
	}
}

func checkGeometryArity(g ast.Geometry, dim int, path string, errs *stcErrors.ErrorList) {
	if g == nil {
		return
	}
	field := fmt.Sprintf("%s.%s", path, g.Kind())
	switch g := g.(type) {
	case *ast.Position:
		if n := len(g.Values); n != 0 && n != dim {
			errs.Add(field, "expected %d values, found %d", dim, n)
		}
	case *ast.Circle:
		if len(g.Center) != dim {
			errs.Add(field+".center", "expected %d values, found %d", dim, len(g.Center))
		}
	case *ast.Box:
		if len(g.Center) != dim || len(g.Size) != dim {
			errs.Add(field, "center and size need %d values each", dim)
		}
	case *ast.Polygon:
		if len(g.Vertices) < 3 {
			errs.Add(field, "needs at least 3 vertices, found %d", len(g.Vertices))
		}
		for i, v := range g.Vertices {
			if len(v) != dim {
				errs.Add(fmt.Sprintf("%s.vertex[%d]", field, i), "expected %d values, found %d", dim, len(v))
			}
		}
	case *ast.Convex:
		if len(g.Halfspaces) == 0 {
			errs.Add(field, "needs at least one halfspace")
		}
	case *ast.Compound:
		switch {
		case g.Op == ast.KindNot && len(g.Children) != 1:
			errs.Add(field, "takes exactly one region, found %d", len(g.Children))
		case g.Op != ast.KindNot && len(g.Children) < 2:
			errs.Add(field, "takes at least two regions, found %d", len(g.Children))
		}
		for _, child := range g.Children {
			checkGeometryArity(child, dim, field, errs)
		}
	}
}
