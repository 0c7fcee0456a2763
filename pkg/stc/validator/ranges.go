package validator

import (
	"fmt"
	"math"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

func checkRanges(tree *ast.Tree, errs *stcErrors.ErrorList) {
	if sp := tree.Space; sp != nil {
		checkSpaceRanges(sp, errs)
	}
	if tm := tree.Time; tm != nil {
		checkNonNegative("time.error", tm.Error, errs)
		checkNonNegative("time.resolution", tm.Resolution, errs)
		checkNonNegative("time.pixsize", tm.PixSize, errs)
		if len(tm.Values) == 2 {
			checkTimeOrder(tm.Values[0], tm.Values[1], errs)
		}
	}
	if sp := tree.Spectral; sp != nil {
		checkFinite("spectral.values", sp.Values, errs)
		checkNonNegative("spectral.error", sp.Error, errs)
		checkNonNegative("spectral.resolution", sp.Resolution, errs)
		if len(sp.Values) == 2 && sp.Values[0] > sp.Values[1] {
			errs.Add("spectral.values", "lower limit %g exceeds upper limit %g", sp.Values[0], sp.Values[1])
		}
	}
	if rs := tree.Redshift; rs != nil {
		checkFinite("redshift.values", rs.Values, errs)
		checkNonNegative("redshift.error", rs.Error, errs)
		checkNonNegative("redshift.resolution", rs.Resolution, errs)
		if len(rs.Values) == 2 && rs.Values[0] > rs.Values[1] {
			errs.Add("redshift.values", "lower limit %g exceeds upper limit %g", rs.Values[0], rs.Values[1])
		}
	}
}

func checkSpaceRanges(sp *ast.Space, errs *stcErrors.ErrorList) {
	checkNonNegative("space.error", sp.Error, errs)
	checkNonNegative("space.resolution", sp.Resolution, errs)
	checkNonNegative("space.size", sp.Size, errs)
	checkNonNegative("space.pixsize", sp.PixSize, errs)

	// Latitude limits only make sense for angles on the sphere.
	spherical := sp.Flavor == ast.FlavorSpherical2 || sp.Flavor == ast.FlavorSpherical3
	perDegree, angular := ast.DegreesPer(sp.Unit)
	limit := math.Inf(1)
	if spherical && angular {
		limit = 90 / perDegree
	}

	ast.Walk(sp.Geometry, func(g ast.Geometry) bool {
		field := "space." + string(g.Kind())
		switch g := g.(type) {
		case *ast.Circle:
			if !finite([]float64{g.Radius}) {
				errs.Add(field+".radius", "must be finite, got %g", g.Radius)
			} else if g.Radius < 0 {
				errs.Add(field+".radius", "must not be negative, got %g", g.Radius)
			}
		case *ast.Box:
			checkNonNegative(field+".size", g.Size, errs)
		case *ast.Convex:
			for i, h := range g.Halfspaces {
				if h.Vector == [3]float64{} {
					errs.Add(fmt.Sprintf("%s.halfspace[%d]", field, i), "normal vector is zero")
				}
			}
		}
		return true
	})

	for _, p := range ast.Points(sp.Geometry) {
		if !finite(p) {
			errs.Add("space.values", "coordinates must be finite, got %v", p)
			continue
		}
		if len(p) >= 2 && math.Abs(p[1]) > limit*(1+1e-12) {
			errs.Add("space.latitude", "%g is beyond the pole", p[1])
		}
	}
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func checkFinite(field string, values []float64, errs *stcErrors.ErrorList) {
	if !finite(values) {
		errs.Add(field, "must be finite, got %v", values)
	}
}

func checkNonNegative(field string, values []float64, errs *stcErrors.ErrorList) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs.Add(field, "must be finite, got %g", v)
			return
		}
		if v < 0 {
			errs.Add(field, "must not be negative, got %g", v)
			return
		}
	}
}

func checkTimeOrder(start, stop ast.TimeValue, errs *stcErrors.ErrorList) {
	if start.Format != stop.Format {
		return
	}
	if start.Format == ast.TimeFormatISO {
		if start.ISO.After(stop.ISO) {
			errs.Add("time.values", "start %s is after stop %s",
				start.ISO.Format("2006-01-02T15:04:05"), stop.ISO.Format("2006-01-02T15:04:05"))
		}
		return
	}
	if start.Number > stop.Number {
		errs.Add("time.values", "start %g is after stop %g", start.Number, stop.Number)
	}
}
