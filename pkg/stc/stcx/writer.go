package stcx

import (
	"encoding/xml"
	"strconv"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/stcs"
)

// systemID is the id the emitters give the single AstroCoordSystem they write.
const systemID = "system"

// Profile renders the reference systems of a tree as an STCResourceProfile
// fragment. Coordinate values, regions and errors are never written, so the
// output only advertises which systems a resource uses.
func Profile(tree *ast.Tree) (string, error) {
	if tree == nil {
		tree = &ast.Tree{}
	}
	root := resourceRoot("STCResourceProfile", tree)
	root.add(coordSystemElement(tree))
	return render(root)
}

// Emit renders a tree as a complete STCSpec document fragment including
// coordinate values and regions. Only SPHERICAL2 spatial coordinates have an
// STC-X rendering.
func Emit(tree *ast.Tree) (string, error) {
	if tree == nil {
		tree = &ast.Tree{}
	}
	if sp := tree.Space; sp != nil && sp.Flavor != "" && sp.Flavor != ast.FlavorSpherical2 {
		return "", stcErrors.NotImplemented("STC-X for %s coordinates", sp.Flavor)
	}

	root := resourceRoot("STCSpec", tree)
	root.add(coordSystemElement(tree))

	coords := element("AstroCoords").withAttr("coord_system_id", systemID)
	area := element("AstroCoordArea").withAttr("coord_system_id", systemID)

	if tm := tree.Time; tm != nil {
		c, a := timeElements(tm)
		coords.add(c)
		area.add(a)
	}
	if sp := tree.Space; sp != nil {
		c, a := spaceElements(sp)
		coords.add(c)
		area.add(a)
	}
	if sp := tree.Spectral; sp != nil {
		c, a := scalarElements("Spectral", sp.Kind == ast.SpectralKindInterval, sp.Values, sp.Unit, sp.Error, sp.Resolution)
		coords.add(c)
		area.add(a)
	}
	if rs := tree.Redshift; rs != nil {
		c, a := scalarElements("Redshift", rs.Kind == ast.RedshiftKindInterval, rs.Values, rs.Unit, rs.Error, rs.Resolution)
		coords.add(c)
		area.add(a)
	}

	if len(coords.Children) > 0 {
		root.add(coords)
	}
	if len(area.Children) > 0 {
		root.add(area)
	}
	return render(root)
}

func resourceRoot(local string, tree *ast.Tree) *Node {
	root := &Node{Name: xml.Name{Space: Namespace, Local: local}}
	if tree.ID != "" {
		root.withAttr("id", tree.ID)
	}
	return root
}

func coordSystemElement(tree *ast.Tree) *Node {
	sys := element("AstroCoordSystem").withAttr("id", systemID)
	if tm := tree.Time; tm != nil {
		frame := element("TimeFrame", textElement("Name", "Time"))
		if tm.Scale != "" && tm.Scale != ast.TimeScaleNil {
			frame.add(textElement("TimeScale", string(tm.Scale)))
		}
		frame.add(refPosElement(tm.RefPos))
		sys.add(frame)
	}
	if sp := tree.Space; sp != nil {
		frame := element("SpaceFrame", textElement("Name", "Space"))
		f := element(frameElement(sp.Frame))
		if sp.Frame.HasEquinox() && sp.Equinox != "" {
			f.add(textElement("Equinox", string(sp.Equinox)))
		}
		frame.add(f, refPosElement(sp.RefPos))
		local, axes := flavorElement(sp.Flavor)
		flavor := element(local)
		if axes > 0 {
			flavor.withAttr("coord_naxes", strconv.Itoa(axes))
		}
		frame.add(flavor)
		sys.add(frame)
	}
	if sp := tree.Spectral; sp != nil {
		sys.add(element("SpectralFrame", textElement("Name", "Spectral"), refPosElement(sp.RefPos)))
	}
	if rs := tree.Redshift; rs != nil {
		frame := element("RedshiftFrame", textElement("Name", "Redshift"))
		if rs.Type != "" {
			frame.withAttr("value_type", string(rs.Type))
		}
		if rs.Doppler != "" {
			frame.add(textElement("DopplerDefinition", string(rs.Doppler)))
		}
		frame.add(refPosElement(rs.RefPos))
		sys.add(frame)
	}
	return sys
}

func refPosElement(rp ast.RefPos) *Node {
	if rp == "" {
		rp = ast.RefPosUnknown
	}
	return element(string(rp))
}

func withUnit(n *Node, unit string) *Node {
	if unit != "" {
		n.withAttr("unit", unit)
	}
	return n
}

func numberElement(local string, v float64) *Node {
	return textElement(local, stcs.FormatFloat(v))
}

// coordElement writes values as C1, C2, ... children.
func coordElement(local string, values []float64) *Node {
	n := element(local)
	for i, v := range values {
		n.add(numberElement("C"+strconv.Itoa(i+1), v))
	}
	return n
}

func timeValueElement(v ast.TimeValue) *Node {
	switch v.Format {
	case ast.TimeFormatMJD, ast.TimeFormatJD:
		return numberElement(string(v.Format)+"Time", v.Number)
	default:
		return textElement("ISOTime", v.ISO.Format("2006-01-02T15:04:05.999999999"))
	}
}

// timeElements returns the AstroCoords and AstroCoordArea parts of a time
// phrase; either may be nil.
func timeElements(tm *ast.Time) (coord, area *Node) {
	trailers := len(tm.Error) > 0 || len(tm.Resolution) > 0 || len(tm.PixSize) > 0
	if tm.Kind == ast.TimeKindInstant || trailers || tm.Unit != "" {
		coord = withUnit(element("Time"), tm.Unit)
		if tm.Kind == ast.TimeKindInstant && len(tm.Values) > 0 {
			coord.add(element("TimeInstant", timeValueElement(tm.Values[0])))
		}
		for _, v := range tm.Error {
			coord.add(numberElement("Error", v))
		}
		for _, v := range tm.Resolution {
			coord.add(numberElement("Resolution", v))
		}
		for _, v := range tm.PixSize {
			coord.add(numberElement("PixSize", v))
		}
	}
	if tm.Kind == ast.TimeKindInstant {
		return coord, nil
	}

	area = withUnit(element("TimeInterval"), tm.Unit)
	limit := func(local string, i int) *Node {
		n := element(local)
		if i < len(tm.Values) {
			n.add(timeValueElement(tm.Values[i]))
		}
		return n
	}
	switch tm.Kind {
	case ast.TimeKindInterval:
		if len(tm.Values) == 2 {
			area.add(limit("StartTime", 0), limit("StopTime", 1))
		}
	case ast.TimeKindStartTime:
		area.add(limit("StartTime", 0))
	case ast.TimeKindStopTime:
		area.add(limit("StopTime", 0))
	}
	return coord, area
}

// trailerElements writes one <name>2 pair for two values and one
// <name>2Radius per value otherwise.
func trailerElements(name string, values []float64) []*Node {
	if len(values) == 2 {
		return []*Node{coordElement(name+"2", values)}
	}
	out := make([]*Node, 0, len(values))
	for _, v := range values {
		out = append(out, numberElement(name+"2Radius", v))
	}
	return out
}

func spaceElements(sp *ast.Space) (coord, area *Node) {
	geom := sp.Geometry
	if geom == nil {
		geom = &ast.Position{}
	}

	pos, isPosition := geom.(*ast.Position)
	trailers := len(sp.Error) > 0 || len(sp.Resolution) > 0 || len(sp.Size) > 0 || len(sp.PixSize) > 0
	if isPosition || trailers {
		coord = withUnit(element("Position2D"), sp.Unit)
		if isPosition && len(pos.Values) > 0 {
			coord.add(coordElement("Value2", pos.Values))
		}
		coord.add(trailerElements("Error", sp.Error)...)
		coord.add(trailerElements("Resolution", sp.Resolution)...)
		coord.add(trailerElements("Size", sp.Size)...)
		coord.add(trailerElements("PixSize", sp.PixSize)...)
	}
	if !isPosition {
		area = withUnit(regionElement(geom), sp.Unit)
	}
	return coord, area
}

func regionElement(g ast.Geometry) *Node {
	switch g := g.(type) {
	case *ast.Circle:
		return element("Circle", coordElement("Center", g.Center), numberElement("Radius", g.Radius))
	case *ast.Box:
		return element("Box", coordElement("Center", g.Center), coordElement("Size", g.Size))
	case *ast.Polygon:
		n := element("Polygon")
		for _, v := range g.Vertices {
			n.add(element("Vertex", coordElement("Position", v)))
		}
		return n
	case *ast.Convex:
		n := element("Convex")
		for _, h := range g.Halfspaces {
			n.add(element("Halfspace", coordElement("Vector", h.Vector[:]), numberElement("Offset", h.Offset)))
		}
		return n
	case *ast.Compound:
		local := string(g.Op)
		if g.Op == ast.KindNot {
			local = "Negation"
		}
		n := element(local)
		for _, child := range g.Children {
			n.add(regionElement(child))
		}
		return n
	}
	return nil
}

// scalarElements renders spectral and redshift phrases, which share a shape.
func scalarElements(local string, interval bool, values []float64, unit string, errs, res []float64) (coord, area *Node) {
	if !interval || len(errs) > 0 || len(res) > 0 {
		coord = withUnit(element(local), unit)
		if !interval && len(values) > 0 {
			coord.add(numberElement("Value", values[0]))
		}
		for _, v := range errs {
			coord.add(numberElement("Error", v))
		}
		for _, v := range res {
			coord.add(numberElement("Resolution", v))
		}
	}
	if interval {
		area = withUnit(element(local+"Interval"), unit)
		if len(values) == 2 {
			area.add(numberElement("LoLimit", values[0]), numberElement("HiLimit", values[1]))
		}
	}
	return coord, area
}
