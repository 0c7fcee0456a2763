package ast

// Walk traverses g depth-first, calling fn for every geometry including
// compound ones. Children of a compound are skipped when fn returns false.
func Walk(g Geometry, fn func(Geometry) bool) {
	if g == nil || !fn(g) {
		return
	}
	if c, ok := g.(*Compound); ok {
		for _, child := range c.Children {
			Walk(child, fn)
		}
	}
}

// Points returns every coordinate tuple the geometry carries: positions,
// centers and vertices. Convex halfspace normals are not points and are
// left out.
func Points(g Geometry) [][]float64 {
	var points [][]float64
	Walk(g, func(node Geometry) bool {
		switch n := node.(type) {
		case *Position:
			if len(n.Values) > 0 {
				points = append(points, n.Values)
			}
		case *Circle:
			points = append(points, n.Center)
		case *Box:
			points = append(points, n.Center)
		case *Polygon:
			points = append(points, n.Vertices...)
		}
		return true
	})
	return points
}
