// Package conform re-expresses spatial coordinates in another reference
// system.
//
// Only SPHERICAL2 coordinates with angular units are conformed. Everything
// else fails with a NotImplementedError naming what was asked for; no
// approximate result is ever returned. Reference position changes
// (parallax, aberration) and proper motions are out of scope: the result
// simply adopts the target's reference position.
package conform

import (
	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/sphermath"
)

// Spherical returns a copy of src whose spatial phrase is expressed in the
// spatial system of dst. Only dst's system is used; its geometry is
// ignored. Time, spectral and redshift phrases of src pass through
// unchanged. Neither input is modified.
func Spherical(src, dst *ast.Tree) (*ast.Tree, error) {
	from, err := sphericalSpace(src, "source")
	if err != nil {
		return nil, err
	}
	to, err := sphericalSpace(dst, "target")
	if err != nil {
		return nil, err
	}

	perDegree, ok := ast.DegreesPer(from.Unit)
	if !ok {
		return nil, stcErrors.NotImplemented("conform of spherical coordinates in unit %s", from.Unit)
	}

	m, err := Matrix(from.CoordSys, to.CoordSys)
	if err != nil {
		return nil, err
	}

	out := src.Clone()
	out.Space.CoordSys = to.CoordSys
	if keyFor(from.CoordSys) == keyFor(to.CoordSys) || m.IsIdentity(0) {
		return out, nil
	}

	r := rotator{m: m, perDegree: perDegree}
	out.Space.Geometry = r.geometry(out.Space.Geometry)
	return out, nil
}

func sphericalSpace(tree *ast.Tree, role string) (*ast.Space, error) {
	if tree == nil || tree.Space == nil {
		return nil, stcErrors.NotImplemented("conform without spatial coordinates in the %s", role)
	}
	if f := tree.Space.Flavor; f != ast.FlavorSpherical2 {
		return nil, stcErrors.NotImplemented("conform of %s coordinates", f)
	}
	return tree.Space, nil
}

// rotator applies m to geometries whose angles are in units of
// 1/perDegree degrees.
type rotator struct {
	m         sphermath.Mat3
	perDegree float64
}

func (r rotator) point(p []float64) []float64 {
	lon, lat := sphermath.ToSpherical(r.m.Apply(sphermath.FromSpherical(p[0]*r.perDegree, p[1]*r.perDegree)))
	return []float64{lon / r.perDegree, lat / r.perDegree}
}

func (r rotator) geometry(g ast.Geometry) ast.Geometry {
	switch g := g.(type) {
	case *ast.Position:
		if len(g.Values) == 0 {
			return g
		}
		return &ast.Position{Values: r.point(g.Values)}

	case *ast.Circle:
		return &ast.Circle{Center: r.point(g.Center), Radius: g.Radius}

	case *ast.Box:
		// A box's sides follow coordinate lines that do not survive the
		// rotation; its corners do.
		lon, lat := g.Center[0], g.Center[1]
		hw, hh := g.Size[0]/2, g.Size[1]/2
		corners := [][]float64{
			{lon - hw, lat - hh},
			{lon + hw, lat - hh},
			{lon + hw, lat + hh},
			{lon - hw, lat + hh},
		}
		poly := &ast.Polygon{}
		for _, c := range corners {
			poly.Vertices = append(poly.Vertices, r.point(c))
		}
		return poly

	case *ast.Polygon:
		poly := &ast.Polygon{Vertices: make([][]float64, len(g.Vertices))}
		for i, v := range g.Vertices {
			poly.Vertices[i] = r.point(v)
		}
		return poly

	case *ast.Convex:
		cvx := &ast.Convex{Halfspaces: make([]ast.Halfspace, len(g.Halfspaces))}
		for i, h := range g.Halfspaces {
			cvx.Halfspaces[i] = ast.Halfspace{
				Vector: [3]float64(r.m.Apply(sphermath.Vec3(h.Vector))),
				Offset: h.Offset,
			}
		}
		return cvx

	case *ast.Compound:
		out := &ast.Compound{Op: g.Op, Children: make([]ast.Geometry, len(g.Children))}
		for i, child := range g.Children {
			out.Children[i] = r.geometry(child)
		}
		return out
	}
	return g
}
