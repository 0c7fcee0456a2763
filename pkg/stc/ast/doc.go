// Package ast provides the abstract syntax tree shared by the STC-S and STC-X
// parsers, the conform engine and the serializers.
//
// A Tree is what one parse of one resource description produces. It holds at
// most one phrase per coordinate axis:
//
//	Time      timescale, reference position, instant or interval, error
//	Space     coordinate system plus a Geometry (Position, Circle, Box,
//	          Polygon, Convex, Union, Intersection, Not)
//	Spectral  reference position, value or interval, unit
//	Redshift  reference position, redshift type, Doppler definition, value
//
// # Geometry
//
// Geometry is a closed set of variants. Consumers switch over the concrete
// type; the unexported marker method keeps the set closed to this package:
//
//	switch g := space.Geometry.(type) {
//	case *ast.Position:
//	    ...
//	case *ast.Circle:
//	    ...
//	case *ast.Compound:
//	    for _, child := range g.Children { ... }
//	}
//
// # Immutability
//
// Trees are never modified after a successful parse. Operations that derive a
// new tree (conform) work on a Clone and return it.
package ast
