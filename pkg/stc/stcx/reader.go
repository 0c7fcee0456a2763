package stcx

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/validator"
)

// Parser reads STC-X documents. A Parser holds no state between documents
// and may be shared between goroutines.
type Parser struct {
	validate bool
}

// NewParser creates a parser that validates every tree it returns.
func NewParser() *Parser {
	return &Parser{validate: true}
}

// WithValidation enables or disables the semantic checks run on each tree
// after the document has been walked.
func (p *Parser) WithValidation(enabled bool) *Parser {
	p.validate = enabled
	return p
}

// Parse reads an STC-X document and returns one tree per resource
// description it contains, in document order.
func (p *Parser) Parse(xmlText string) ([]*ast.Tree, error) {
	return p.ParseReader(strings.NewReader(xmlText))
}

// ParseReader is Parse over a stream.
func (p *Parser) ParseReader(r io.Reader) ([]*ast.Tree, error) {
	trees, err := walkDocument(r)
	if err != nil {
		return nil, err
	}
	if p.validate {
		for _, tree := range trees {
			if err := validator.Validate(tree); err != nil {
				return nil, err
			}
		}
	}
	return trees, nil
}

// Parse reads an STC-X document with a default Parser.
func Parse(xmlText string) ([]*ast.Tree, error) {
	return NewParser().Parse(xmlText)
}

// ParseReader reads an STC-X stream with a default Parser.
func ParseReader(r io.Reader) ([]*ast.Tree, error) {
	return NewParser().ParseReader(r)
}

func walkDocument(r io.Reader) ([]*ast.Tree, error) {
	root, err := decode(r)
	if err != nil {
		return nil, err
	}

	resources := findResources(root, nil)
	if len(resources) == 0 {
		return nil, &stcErrors.XMLError{
			Message: "no STCResourceProfile or STCSpec element",
			Element: root.Local(),
			Line:    root.Line,
			Column:  root.Column,
		}
	}

	trees := make([]*ast.Tree, 0, len(resources))
	for _, res := range resources {
		tree, err := parseResource(res)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// findResources collects resource elements depth-first without descending
// into them.
func findResources(n *Node, acc []*Node) []*Node {
	if resourceElements[n.Local()] {
		return append(acc, n)
	}
	for _, c := range n.Children {
		acc = findResources(c, acc)
	}
	return acc
}

// coordSystem is the metadata of one AstroCoordSystem element.
type coordSystem struct {
	id       string
	time     *ast.Time
	space    *ast.CoordSys
	spectral *ast.Spectral
	redshift *ast.Redshift
}

// walker builds one tree from one resource element.
type walker struct {
	tables  *elementTables
	systems map[string]*coordSystem
	order   []*coordSystem
	sys     *coordSystem // system of the element being walked
	tree    *ast.Tree
}

func parseResource(res *Node) (*ast.Tree, error) {
	w := &walker{
		tables:  mapping(),
		systems: make(map[string]*coordSystem),
		tree:    &ast.Tree{},
	}
	if id, ok := res.Attr("id"); ok && id != "" {
		w.tree.ID = id
	}

	for _, n := range res.ChildrenNamed("AstroCoordSystem") {
		if err := w.coordSystem(n); err != nil {
			return nil, err
		}
	}

	var used []*coordSystem
	for _, n := range res.Children {
		var table map[string]handler
		switch n.Local() {
		case "AstroCoords":
			table = w.tables.coords
		case "AstroCoordArea":
			table = w.tables.area
		default:
			continue
		}
		sys, err := w.systemFor(n)
		if err != nil {
			return nil, err
		}
		used = append(used, sys)
		w.sys = sys
		if err := w.dispatch(n, table); err != nil {
			return nil, err
		}
	}

	// A system described without coordinates still yields phrases so that
	// profiles survive a round trip.
	if len(used) == 0 && len(w.order) > 0 {
		used = w.order[:1]
	}
	for _, sys := range used {
		w.sys = sys
		w.systemPhrases()
	}
	if w.tree.Space != nil && w.tree.Space.Geometry == nil {
		w.tree.Space.Geometry = &ast.Position{}
	}
	return w.tree, nil
}

// dispatch applies table handlers to the children of n.
func (w *walker) dispatch(n *Node, table map[string]handler) error {
	for _, c := range n.Children {
		if h, ok := table[c.Local()]; ok {
			if err := h(w, c); err != nil {
				return err
			}
			continue
		}
		if err := w.checkSupported(c); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) checkSupported(n *Node) error {
	if feature, ok := w.tables.unsupported[n.Local()]; ok {
		return stcErrors.NotImplemented("%s", feature)
	}
	return nil
}

func (w *walker) coordSystem(n *Node) error {
	id, err := requireAttr(n, "id")
	if err != nil {
		return err
	}
	if _, dup := w.systems[id]; dup {
		return xmlErrorf(n, "duplicate coordinate system id %q", id)
	}
	sys := &coordSystem{id: id}
	w.systems[id] = sys
	w.order = append(w.order, sys)
	w.sys = sys
	return w.dispatch(n, w.tables.system)
}

func (w *walker) systemFor(n *Node) (*coordSystem, error) {
	id, err := requireAttr(n, "coord_system_id")
	if err != nil {
		return nil, err
	}
	sys, ok := w.systems[id]
	if !ok {
		return nil, xmlErrorf(n, "unknown coordinate system %q", id)
	}
	return sys, nil
}

// systemPhrases adds a metadata-only phrase for every frame of the current
// system that no coordinate element filled in.
func (w *walker) systemPhrases() {
	if w.sys.time != nil && w.tree.Time == nil {
		tm := *w.sys.time
		w.tree.Time = &tm
	}
	if w.sys.space != nil && w.tree.Space == nil {
		w.tree.Space = &ast.Space{CoordSys: *w.sys.space, Geometry: &ast.Position{}}
	}
	if w.sys.spectral != nil && w.tree.Spectral == nil {
		sp := *w.sys.spectral
		w.tree.Spectral = &sp
	}
	if w.sys.redshift != nil && w.tree.Redshift == nil {
		rs := *w.sys.redshift
		w.tree.Redshift = &rs
	}
}

// refPosOf returns the first reference position child of n.
func (w *walker) refPosOf(n *Node) ast.RefPos {
	for _, c := range n.Children {
		if rp, ok := w.tables.refPositions[c.Local()]; ok {
			return rp
		}
	}
	return ast.RefPosUnknown
}

func (w *walker) timeFrame(n *Node) error {
	tm := &ast.Time{Kind: ast.TimeKindInstant, Scale: ast.TimeScaleNil, RefPos: w.refPosOf(n)}
	if c := n.Child("TimeScale"); c != nil {
		scale, ok := ast.LookupTimeScale(c.Content())
		if !ok {
			return xmlErrorf(c, "unknown time scale %q", c.Content())
		}
		tm.Scale = scale
	}
	w.sys.time = tm
	return nil
}

func (w *walker) spaceFrame(n *Node) error {
	cs := &ast.CoordSys{
		Frame:  ast.FrameUnknown,
		RefPos: ast.RefPosUnknown,
		Flavor: ast.FlavorSpherical2,
	}
	for _, c := range n.Children {
		local := c.Local()
		if frame, ok := w.tables.frames[local]; ok {
			cs.Frame = frame
			if !frame.HasEquinox() {
				continue
			}
			cs.Equinox = frame.DefaultEquinox()
			if eqNode := c.Child("Equinox"); eqNode != nil {
				eq, ok := ast.ParseEquinox(eqNode.Content())
				if !ok {
					return xmlErrorf(eqNode, "invalid equinox %q", eqNode.Content())
				}
				cs.Equinox = eq
			}
			continue
		}
		if rp, ok := w.tables.refPositions[local]; ok {
			cs.RefPos = rp
			continue
		}
		if axes, ok := flavorAxes[local]; ok {
			if v, ok := c.Attr("coord_naxes"); ok {
				n, err := strconv.Atoi(strings.TrimSpace(v))
				if err != nil || n < 1 || n > 3 {
					return xmlErrorf(c, "invalid coord_naxes %q", v)
				}
				axes = n
			}
			cs.Flavor = flavorFromElement(local, axes)
			if _, known := ast.LookupFlavor(string(cs.Flavor)); !known {
				return stcErrors.NotImplemented("%s coordinates with %d axes", local, axes)
			}
			continue
		}
		if err := w.checkSupported(c); err != nil {
			return err
		}
	}
	if cs.Flavor != ast.FlavorSpherical2 {
		return stcErrors.NotImplemented("STC-X for %s coordinates", cs.Flavor)
	}
	w.sys.space = cs
	return nil
}

func (w *walker) spectralFrame(n *Node) error {
	w.sys.spectral = &ast.Spectral{Kind: ast.SpectralKindValue, RefPos: w.refPosOf(n)}
	return nil
}

func (w *walker) redshiftFrame(n *Node) error {
	rs := &ast.Redshift{
		Kind:    ast.RedshiftKindValue,
		RefPos:  w.refPosOf(n),
		Type:    ast.RedshiftTypeVelocity,
		Doppler: ast.DopplerOptical,
	}
	if v, ok := n.Attr("value_type"); ok {
		switch t := ast.RedshiftType(strings.TrimSpace(v)); t {
		case ast.RedshiftTypeVelocity, ast.RedshiftTypeRedshift:
			rs.Type = t
		default:
			return xmlErrorf(n, "unknown value_type %q", v)
		}
	}
	if c := n.Child("DopplerDefinition"); c != nil {
		switch d := ast.DopplerDefinition(c.Content()); d {
		case ast.DopplerOptical, ast.DopplerRadio, ast.DopplerRelativistic:
			rs.Doppler = d
		default:
			return xmlErrorf(c, "unknown Doppler definition %q", c.Content())
		}
	}
	w.sys.redshift = rs
	return nil
}

// Phrase accessors create the phrase from the current system on first use.

func (w *walker) timePhrase(n *Node) (*ast.Time, error) {
	if w.tree.Time == nil {
		if w.sys.time == nil {
			return nil, xmlErrorf(n, "coordinate system %q has no TimeFrame", w.sys.id)
		}
		tm := *w.sys.time
		w.tree.Time = &tm
	}
	return w.tree.Time, nil
}

func (w *walker) spacePhrase(n *Node) (*ast.Space, error) {
	if w.tree.Space == nil {
		if w.sys.space == nil {
			return nil, xmlErrorf(n, "coordinate system %q has no SpaceFrame", w.sys.id)
		}
		w.tree.Space = &ast.Space{CoordSys: *w.sys.space}
	}
	return w.tree.Space, nil
}

func (w *walker) spectralPhrase(n *Node) (*ast.Spectral, error) {
	if w.tree.Spectral == nil {
		if w.sys.spectral == nil {
			return nil, xmlErrorf(n, "coordinate system %q has no SpectralFrame", w.sys.id)
		}
		sp := *w.sys.spectral
		w.tree.Spectral = &sp
	}
	return w.tree.Spectral, nil
}

func (w *walker) redshiftPhrase(n *Node) (*ast.Redshift, error) {
	if w.tree.Redshift == nil {
		if w.sys.redshift == nil {
			return nil, xmlErrorf(n, "coordinate system %q has no RedshiftFrame", w.sys.id)
		}
		rs := *w.sys.redshift
		w.tree.Redshift = &rs
	}
	return w.tree.Redshift, nil
}

func setUnit(dst *string, n *Node, valid []string) error {
	v, ok := n.Attr("unit")
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return nil
	}
	if !slices.Contains(valid, v) {
		return xmlErrorf(n, "unknown unit %q, expected one of %s", v, strings.Join(valid, ", "))
	}
	*dst = v
	return nil
}

func (w *walker) timeCoord(n *Node) error {
	tm, err := w.timePhrase(n)
	if err != nil {
		return err
	}
	if err := setUnit(&tm.Unit, n, ast.TimeUnits); err != nil {
		return err
	}
	if inst := n.Child("TimeInstant"); inst != nil {
		if len(tm.Values) > 0 {
			return stcErrors.NotImplemented("more than one time coordinate in a resource")
		}
		v, err := timeValue(inst)
		if err != nil {
			return err
		}
		tm.Kind = ast.TimeKindInstant
		tm.Values = []ast.TimeValue{v}
	}
	if tm.Error, err = appendScalars(tm.Error, n.ChildrenNamed("Error")); err != nil {
		return err
	}
	if tm.Resolution, err = appendScalars(tm.Resolution, n.ChildrenNamed("Resolution")); err != nil {
		return err
	}
	tm.PixSize, err = appendScalars(tm.PixSize, n.ChildrenNamed("PixSize"))
	return err
}

func (w *walker) timeInterval(n *Node) error {
	tm, err := w.timePhrase(n)
	if err != nil {
		return err
	}
	if len(tm.Values) > 0 {
		return stcErrors.NotImplemented("more than one time coordinate in a resource")
	}
	if err := setUnit(&tm.Unit, n, ast.TimeUnits); err != nil {
		return err
	}

	start, stop := n.Child("StartTime"), n.Child("StopTime")
	var values []ast.TimeValue
	for _, limit := range []*Node{start, stop} {
		if limit == nil || !hasTimeValue(limit) {
			continue
		}
		v, err := timeValue(limit)
		if err != nil {
			return err
		}
		values = append(values, v)
	}

	switch {
	case start != nil && stop != nil:
		tm.Kind = ast.TimeKindInterval
		if len(values) == 1 {
			return stcErrors.NotImplemented("time intervals with one open limit")
		}
	case start != nil:
		tm.Kind = ast.TimeKindStartTime
	case stop != nil:
		tm.Kind = ast.TimeKindStopTime
	default:
		tm.Kind = ast.TimeKindInterval
	}
	tm.Values = values
	return nil
}

func hasTimeValue(n *Node) bool {
	return n.Child("ISOTime") != nil || n.Child("MJDTime") != nil || n.Child("JDTime") != nil
}

var isoLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func timeValue(n *Node) (ast.TimeValue, error) {
	if c := n.Child("ISOTime"); c != nil {
		text := strings.TrimSuffix(c.Content(), "Z")
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return ast.TimeValue{Format: ast.TimeFormatISO, ISO: t}, nil
			}
		}
		return ast.TimeValue{}, xmlErrorf(c, "invalid ISO time %q", c.Content())
	}
	for _, format := range []ast.TimeFormat{ast.TimeFormatMJD, ast.TimeFormatJD} {
		if c := n.Child(string(format) + "Time"); c != nil {
			v, err := number(c)
			if err != nil {
				return ast.TimeValue{}, err
			}
			return ast.TimeValue{Format: format, Number: v}, nil
		}
	}
	return ast.TimeValue{}, xmlErrorf(n, "missing ISOTime, MJDTime or JDTime")
}

func (w *walker) position2D(n *Node) error {
	sp, err := w.spacePhrase(n)
	if err != nil {
		return err
	}
	if err := setUnit(&sp.Unit, n, ast.SpaceUnits); err != nil {
		return err
	}
	if v := n.Child("Value2"); v != nil {
		values, err := vector(v, "C1", "C2")
		if err != nil {
			return err
		}
		if err := w.setGeometry(sp, &ast.Position{Values: values}); err != nil {
			return err
		}
	}
	for _, name := range []string{"Error", "Resolution", "Size", "PixSize"} {
		var values []float64
		for _, c := range n.Children {
			switch c.Local() {
			case name + "2Radius":
				r, err := number(c)
				if err != nil {
					return err
				}
				values = append(values, r)
			case name + "2":
				pair, err := vector(c, "C1", "C2")
				if err != nil {
					return err
				}
				values = append(values, pair...)
			}
		}
		switch name {
		case "Error":
			sp.Error = append(sp.Error, values...)
		case "Resolution":
			sp.Resolution = append(sp.Resolution, values...)
		case "Size":
			sp.Size = append(sp.Size, values...)
		case "PixSize":
			sp.PixSize = append(sp.PixSize, values...)
		}
	}
	return nil
}

func (w *walker) setGeometry(sp *ast.Space, g ast.Geometry) error {
	if sp.Geometry != nil {
		return stcErrors.NotImplemented("more than one spatial coordinate in a resource")
	}
	sp.Geometry = g
	return nil
}

func (w *walker) region(n *Node) error {
	sp, err := w.spacePhrase(n)
	if err != nil {
		return err
	}
	g, err := w.buildRegion(n, n.Local())
	if err != nil {
		return err
	}
	if err := setUnit(&sp.Unit, n, ast.SpaceUnits); err != nil {
		return err
	}
	return w.setGeometry(sp, g)
}

func (w *walker) buildRegion(n *Node, name string) (ast.Geometry, error) {
	build, ok := w.tables.regions[name]
	if !ok {
		return nil, stcErrors.NotImplemented("region %s", name)
	}
	return build(w, n, name)
}

func (w *walker) typedRegion(n *Node, _ string) (ast.Geometry, error) {
	xsiType, err := requireAttr(n, "type")
	if err != nil {
		return nil, err
	}
	if i := strings.LastIndexByte(xsiType, ':'); i >= 0 {
		xsiType = xsiType[i+1:]
	}
	name, ok := regionTypes[xsiType]
	if !ok {
		return nil, stcErrors.NotImplemented("region type %s", xsiType)
	}
	return w.buildRegion(n, name)
}

func (w *walker) circle(n *Node, _ string) (ast.Geometry, error) {
	center, err := childVector(n, "Center")
	if err != nil {
		return nil, err
	}
	radius, err := childNumber(n, "Radius")
	if err != nil {
		return nil, err
	}
	return &ast.Circle{Center: center, Radius: radius}, nil
}

func (w *walker) box(n *Node, _ string) (ast.Geometry, error) {
	center, err := childVector(n, "Center")
	if err != nil {
		return nil, err
	}
	size, err := childVector(n, "Size")
	if err != nil {
		return nil, err
	}
	return &ast.Box{Center: center, Size: size}, nil
}

func (w *walker) polygon(n *Node, _ string) (ast.Geometry, error) {
	poly := &ast.Polygon{}
	for _, vertex := range n.ChildrenNamed("Vertex") {
		if vertex.Child("SmallCircle") != nil {
			return nil, stcErrors.NotImplemented("%s", w.tables.unsupported["SmallCircle"])
		}
		v, err := childVector(vertex, "Position")
		if err != nil {
			return nil, err
		}
		poly.Vertices = append(poly.Vertices, v)
	}
	if len(poly.Vertices) < 3 {
		return nil, xmlErrorf(n, "Polygon needs at least 3 vertices, found %d", len(poly.Vertices))
	}
	return poly, nil
}

func (w *walker) convex(n *Node, _ string) (ast.Geometry, error) {
	cvx := &ast.Convex{}
	for _, hs := range n.ChildrenNamed("Halfspace") {
		vec, err := childVector(hs, "Vector", "C1", "C2", "C3")
		if err != nil {
			return nil, err
		}
		offset, err := childNumber(hs, "Offset")
		if err != nil {
			return nil, err
		}
		cvx.Halfspaces = append(cvx.Halfspaces, ast.Halfspace{
			Vector: [3]float64{vec[0], vec[1], vec[2]},
			Offset: offset,
		})
	}
	if len(cvx.Halfspaces) == 0 {
		return nil, xmlErrorf(n, "Convex needs at least one Halfspace")
	}
	return cvx, nil
}

var compoundOps = map[string]ast.GeometryKind{
	"Union":        ast.KindUnion,
	"Intersection": ast.KindIntersection,
	"Negation":     ast.KindNot,
}

func (w *walker) compound(n *Node, name string) (ast.Geometry, error) {
	c := &ast.Compound{Op: compoundOps[name]}
	for _, child := range n.Children {
		if _, ok := w.tables.regions[child.Local()]; !ok {
			if err := w.checkSupported(child); err != nil {
				return nil, err
			}
			continue
		}
		g, err := w.buildRegion(child, child.Local())
		if err != nil {
			return nil, err
		}
		c.Children = append(c.Children, g)
	}
	switch {
	case c.Op == ast.KindNot && len(c.Children) != 1:
		return nil, xmlErrorf(n, "Negation takes exactly one region, found %d", len(c.Children))
	case c.Op != ast.KindNot && len(c.Children) < 2:
		return nil, xmlErrorf(n, "%s takes at least two regions, found %d", name, len(c.Children))
	}
	return c, nil
}

func (w *walker) spectralCoord(n *Node) error {
	sp, err := w.spectralPhrase(n)
	if err != nil {
		return err
	}
	if err := setUnit(&sp.Unit, n, ast.SpectralUnits); err != nil {
		return err
	}
	if v := n.Child("Value"); v != nil {
		if len(sp.Values) > 0 {
			return stcErrors.NotImplemented("more than one spectral coordinate in a resource")
		}
		value, err := number(v)
		if err != nil {
			return err
		}
		sp.Kind = ast.SpectralKindValue
		sp.Values = []float64{value}
	}
	if sp.Error, err = appendScalars(sp.Error, n.ChildrenNamed("Error")); err != nil {
		return err
	}
	sp.Resolution, err = appendScalars(sp.Resolution, n.ChildrenNamed("Resolution"))
	return err
}

func (w *walker) spectralInterval(n *Node) error {
	sp, err := w.spectralPhrase(n)
	if err != nil {
		return err
	}
	if len(sp.Values) > 0 {
		return stcErrors.NotImplemented("more than one spectral coordinate in a resource")
	}
	if err := setUnit(&sp.Unit, n, ast.SpectralUnits); err != nil {
		return err
	}
	values, err := limits(n)
	if err != nil {
		return err
	}
	sp.Kind = ast.SpectralKindInterval
	sp.Values = values
	return nil
}

func (w *walker) redshiftCoord(n *Node) error {
	rs, err := w.redshiftPhrase(n)
	if err != nil {
		return err
	}
	if err := setUnit(&rs.Unit, n, ast.RedshiftUnits); err != nil {
		return err
	}
	if v := n.Child("Value"); v != nil {
		if len(rs.Values) > 0 {
			return stcErrors.NotImplemented("more than one redshift coordinate in a resource")
		}
		value, err := number(v)
		if err != nil {
			return err
		}
		rs.Kind = ast.RedshiftKindValue
		rs.Values = []float64{value}
	}
	if rs.Error, err = appendScalars(rs.Error, n.ChildrenNamed("Error")); err != nil {
		return err
	}
	rs.Resolution, err = appendScalars(rs.Resolution, n.ChildrenNamed("Resolution"))
	return err
}

func (w *walker) redshiftInterval(n *Node) error {
	rs, err := w.redshiftPhrase(n)
	if err != nil {
		return err
	}
	if len(rs.Values) > 0 {
		return stcErrors.NotImplemented("more than one redshift coordinate in a resource")
	}
	if err := setUnit(&rs.Unit, n, ast.RedshiftUnits); err != nil {
		return err
	}
	values, err := limits(n)
	if err != nil {
		return err
	}
	rs.Kind = ast.RedshiftKindInterval
	rs.Values = values
	return nil
}

// limits reads LoLimit and HiLimit. Both or neither must be present.
func limits(n *Node) ([]float64, error) {
	lo, hi := n.Child("LoLimit"), n.Child("HiLimit")
	if lo == nil && hi == nil {
		return nil, nil
	}
	if lo == nil || hi == nil {
		return nil, stcErrors.NotImplemented("%s with one open limit", n.Local())
	}
	l, err := number(lo)
	if err != nil {
		return nil, err
	}
	h, err := number(hi)
	if err != nil {
		return nil, err
	}
	return []float64{l, h}, nil
}

func appendScalars(dst []float64, nodes []*Node) ([]float64, error) {
	for _, n := range nodes {
		v, err := number(n)
		if err != nil {
			return nil, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

func requireChild(n *Node, local string) (*Node, error) {
	if c := n.Child(local); c != nil {
		return c, nil
	}
	return nil, xmlErrorf(n, "missing <%s>", local)
}

// childNumber reads the number held by a required child.
func childNumber(n *Node, local string) (float64, error) {
	c, err := requireChild(n, local)
	if err != nil {
		return 0, err
	}
	return number(c)
}

// childVector reads the coordinates held by a required child.
func childVector(n *Node, local string, names ...string) ([]float64, error) {
	c, err := requireChild(n, local)
	if err != nil {
		return nil, err
	}
	return vector(c, names...)
}

func number(n *Node) (float64, error) {
	text := n.Content()
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, xmlErrorf(n, "invalid number %q", text)
	}
	return v, nil
}

// vector reads the named coordinate children of n, C1 and C2 by default.
func vector(n *Node, names ...string) ([]float64, error) {
	if len(names) == 0 {
		names = []string{"C1", "C2"}
	}
	out := make([]float64, 0, len(names))
	for _, name := range names {
		c := n.Child(name)
		if c == nil {
			return nil, xmlErrorf(n, "missing <%s>", name)
		}
		v, err := number(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func requireAttr(n *Node, local string) (string, error) {
	v, ok := n.Attr(local)
	if !ok || strings.TrimSpace(v) == "" {
		return "", xmlErrorf(n, "missing required attribute %s", local)
	}
	return strings.TrimSpace(v), nil
}

func xmlErrorf(n *Node, format string, args ...any) *stcErrors.XMLError {
	return &stcErrors.XMLError{
		Message: fmt.Sprintf(format, args...),
		Element: n.Local(),
		Line:    n.Line,
		Column:  n.Column,
	}
}
