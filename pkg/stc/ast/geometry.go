package ast

// GeometryKind names a spatial geometry variant. The values are the STC-S
// keywords that introduce them.
type GeometryKind string

const (
	KindPosition     GeometryKind = "Position"
	KindCircle       GeometryKind = "Circle"
	KindBox          GeometryKind = "Box"
	KindPolygon      GeometryKind = "Polygon"
	KindConvex       GeometryKind = "Convex"
	KindUnion        GeometryKind = "Union"
	KindIntersection GeometryKind = "Intersection"
	KindNot          GeometryKind = "Not"
)

// IsCompound returns true for the kinds that combine other regions.
func (k GeometryKind) IsCompound() bool {
	return k == KindUnion || k == KindIntersection || k == KindNot
}

// Geometry is one of *Position, *Circle, *Box, *Polygon, *Convex or *Compound.
type Geometry interface {
	Kind() GeometryKind
	isGeometry()
}

// Position is a single point. Values is empty when the phrase only names a
// coordinate system.
type Position struct {
	Values []float64
}

// Circle is a cone around Center.
type Circle struct {
	Center []float64
	Radius float64
}

// Box is a region of full widths Size around Center, sides along the
// coordinate lines.
type Box struct {
	Center []float64
	Size   []float64
}

// Polygon is bounded by great circles between consecutive vertices.
type Polygon struct {
	Vertices [][]float64
}

// Halfspace is the set of unit vectors v with v·Vector >= Offset.
type Halfspace struct {
	Vector [3]float64
	Offset float64
}

// Convex is the intersection of its halfspaces.
type Convex struct {
	Halfspaces []Halfspace
}

// Compound combines child regions. Op is KindUnion, KindIntersection or KindNot.
type Compound struct {
	Op       GeometryKind
	Children []Geometry
}

func (*Position) Kind() GeometryKind { return KindPosition }
func (*Circle) Kind() GeometryKind   { return KindCircle }
func (*Box) Kind() GeometryKind      { return KindBox }
func (*Polygon) Kind() GeometryKind  { return KindPolygon }
func (*Convex) Kind() GeometryKind   { return KindConvex }
func (c *Compound) Kind() GeometryKind {
	return c.Op
}

func (*Position) isGeometry() {}
func (*Circle) isGeometry()   {}
func (*Box) isGeometry()      {}
func (*Polygon) isGeometry()  {}
func (*Convex) isGeometry()   {}
func (*Compound) isGeometry() {}

// CloneGeometry returns a deep copy of g.
func CloneGeometry(g Geometry) Geometry {
	switch g := g.(type) {
	case *Position:
		return &Position{Values: cloneFloats(g.Values)}
	case *Circle:
		return &Circle{Center: cloneFloats(g.Center), Radius: g.Radius}
	case *Box:
		return &Box{Center: cloneFloats(g.Center), Size: cloneFloats(g.Size)}
	case *Polygon:
		vertices := make([][]float64, len(g.Vertices))
		for i, v := range g.Vertices {
			vertices[i] = cloneFloats(v)
		}
		return &Polygon{Vertices: vertices}
	case *Convex:
		return &Convex{Halfspaces: append([]Halfspace(nil), g.Halfspaces...)}
	case *Compound:
		children := make([]Geometry, len(g.Children))
		for i, child := range g.Children {
			children[i] = CloneGeometry(child)
		}
		return &Compound{Op: g.Op, Children: children}
	default:
		return nil
	}
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	return append([]float64(nil), v...)
}
