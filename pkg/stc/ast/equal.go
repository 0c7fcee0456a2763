package ast

import "math"

// Equal reports whether two trees describe the same coordinates: same
// systems, same geometry kinds and all numeric values within tol. Identifiers
// and Meta are annotations and are not compared.
func Equal(a, b *Tree, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalTime(a.Time, b.Time, tol) &&
		equalSpace(a.Space, b.Space, tol) &&
		equalSpectral(a.Spectral, b.Spectral, tol) &&
		equalRedshift(a.Redshift, b.Redshift, tol)
}

// EqualGeometry compares two geometries value by value.
func EqualGeometry(a, b Geometry, tol float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch ga := a.(type) {
	case *Position:
		return floatsEqual(ga.Values, b.(*Position).Values, tol)
	case *Circle:
		gb := b.(*Circle)
		return floatsEqual(ga.Center, gb.Center, tol) && math.Abs(ga.Radius-gb.Radius) <= tol
	case *Box:
		gb := b.(*Box)
		return floatsEqual(ga.Center, gb.Center, tol) && floatsEqual(ga.Size, gb.Size, tol)
	case *Polygon:
		gb := b.(*Polygon)
		if len(ga.Vertices) != len(gb.Vertices) {
			return false
		}
		for i := range ga.Vertices {
			if !floatsEqual(ga.Vertices[i], gb.Vertices[i], tol) {
				return false
			}
		}
		return true
	case *Convex:
		gb := b.(*Convex)
		if len(ga.Halfspaces) != len(gb.Halfspaces) {
			return false
		}
		for i, h := range ga.Halfspaces {
			o := gb.Halfspaces[i]
			if !floatsEqual(h.Vector[:], o.Vector[:], tol) || math.Abs(h.Offset-o.Offset) > tol {
				return false
			}
		}
		return true
	case *Compound:
		gb := b.(*Compound)
		if len(ga.Children) != len(gb.Children) {
			return false
		}
		for i := range ga.Children {
			if !EqualGeometry(ga.Children[i], gb.Children[i], tol) {
				return false
			}
		}
		return true
	}
	return false
}

func equalSpace(a, b *Space, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.CoordSys == b.CoordSys &&
		a.Unit == b.Unit &&
		EqualGeometry(a.Geometry, b.Geometry, tol) &&
		floatsEqual(a.Error, b.Error, tol) &&
		floatsEqual(a.Resolution, b.Resolution, tol) &&
		floatsEqual(a.Size, b.Size, tol) &&
		floatsEqual(a.PixSize, b.PixSize, tol)
}

func equalTime(a, b *Time, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Scale != b.Scale || a.RefPos != b.RefPos || a.Unit != b.Unit {
		return false
	}
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i, v := range a.Values {
		w := b.Values[i]
		if v.Format != w.Format {
			return false
		}
		if v.Format == TimeFormatISO {
			if !v.ISO.Equal(w.ISO) {
				return false
			}
		} else if math.Abs(v.Number-w.Number) > tol {
			return false
		}
	}
	return floatsEqual(a.Error, b.Error, tol) &&
		floatsEqual(a.Resolution, b.Resolution, tol) &&
		floatsEqual(a.PixSize, b.PixSize, tol)
}

func equalSpectral(a, b *Spectral, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.RefPos == b.RefPos && a.Unit == b.Unit &&
		floatsEqual(a.Values, b.Values, tol) &&
		floatsEqual(a.Error, b.Error, tol) &&
		floatsEqual(a.Resolution, b.Resolution, tol)
}

func equalRedshift(a, b *Redshift, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Kind == b.Kind && a.RefPos == b.RefPos && a.Type == b.Type &&
		a.Doppler == b.Doppler && a.Unit == b.Unit &&
		floatsEqual(a.Values, b.Values, tol) &&
		floatsEqual(a.Error, b.Error, tol) &&
		floatsEqual(a.Resolution, b.Resolution, tol)
}

func floatsEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
