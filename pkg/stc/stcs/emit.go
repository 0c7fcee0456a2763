package stcs

import (
	"math"
	"strconv"
	"strings"

	"mercator-hq/stc/pkg/stc/ast"
)

// Emit renders a tree as a single-line STC-S expression. The output is
// deterministic and parses back to a tree equal to the input.
func Emit(tree *ast.Tree) string {
	if tree == nil {
		return ""
	}
	var w writer
	if tree.Time != nil {
		w.time(tree.Time)
	}
	if tree.Space != nil {
		w.space(tree.Space)
	}
	if tree.Spectral != nil {
		w.spectral(tree.Spectral)
	}
	if tree.Redshift != nil {
		w.redshift(tree.Redshift)
	}
	return strings.Join(w.words, " ")
}

// FormatFloat writes v in the shortest form that parses back exactly.
// Exponents are only used far from unity.
func FormatFloat(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-6 || a >= 1e15) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatTime writes a time value the way the parser reads it.
func FormatTime(v ast.TimeValue) string {
	switch v.Format {
	case ast.TimeFormatMJD, ast.TimeFormatJD:
		return string(v.Format) + " " + FormatFloat(v.Number)
	default:
		return v.ISO.Format("2006-01-02T15:04:05.999999999")
	}
}

type writer struct {
	words []string
}

func (w *writer) add(words ...string) {
	w.words = append(w.words, words...)
}

func (w *writer) numbers(values []float64) {
	for _, v := range values {
		w.add(FormatFloat(v))
	}
}

func (w *writer) refPos(rp ast.RefPos) {
	if rp != "" && rp != ast.RefPosUnknown {
		w.add(string(rp))
	}
}

func (w *writer) trailer(keyword string, values []float64) {
	if len(values) > 0 {
		w.add(keyword)
		w.numbers(values)
	}
}

func (w *writer) unit(unit string) {
	if unit != "" {
		w.add(kwUnit, unit)
	}
}

func (w *writer) space(sp *ast.Space) {
	geom := sp.Geometry
	if geom == nil {
		geom = &ast.Position{}
	}
	w.add(string(geom.Kind()))

	frame := sp.Frame
	if frame == "" {
		frame = ast.FrameUnknown
	}
	w.add(string(frame))
	if sp.Equinox != "" {
		w.add(string(sp.Equinox))
	}
	w.refPos(sp.RefPos)
	if sp.Flavor != "" && sp.Flavor != ast.FlavorSpherical2 {
		w.add(string(sp.Flavor))
	}

	w.geometry(geom)
	w.unit(sp.Unit)
	w.trailer(kwError, sp.Error)
	w.trailer(kwResolution, sp.Resolution)
	w.trailer(kwSize, sp.Size)
	w.trailer(kwPixSize, sp.PixSize)
}

// geometry writes the values of g; for compounds it writes the
// parenthesised children including their keywords.
func (w *writer) geometry(g ast.Geometry) {
	switch g := g.(type) {
	case *ast.Position:
		w.numbers(g.Values)
	case *ast.Circle:
		w.numbers(g.Center)
		w.numbers([]float64{g.Radius})
	case *ast.Box:
		w.numbers(g.Center)
		w.numbers(g.Size)
	case *ast.Polygon:
		for _, v := range g.Vertices {
			w.numbers(v)
		}
	case *ast.Convex:
		for _, h := range g.Halfspaces {
			w.numbers(h.Vector[:])
			w.numbers([]float64{h.Offset})
		}
	case *ast.Compound:
		w.add("(")
		for _, child := range g.Children {
			w.add(string(child.Kind()))
			w.geometry(child)
		}
		w.add(")")
	}
}

func (w *writer) time(tm *ast.Time) {
	w.add(string(tm.Kind))
	if tm.Scale != "" && tm.Scale != ast.TimeScaleNil {
		w.add(string(tm.Scale))
	}
	w.refPos(tm.RefPos)
	for _, v := range tm.Values {
		w.add(FormatTime(v))
	}
	w.unit(tm.Unit)
	w.trailer(kwError, tm.Error)
	w.trailer(kwResolution, tm.Resolution)
	w.trailer(kwPixSize, tm.PixSize)
}

func (w *writer) spectral(sp *ast.Spectral) {
	w.add(string(sp.Kind))
	w.refPos(sp.RefPos)
	w.numbers(sp.Values)
	w.unit(sp.Unit)
	w.trailer(kwError, sp.Error)
	w.trailer(kwResolution, sp.Resolution)
}

func (w *writer) redshift(rs *ast.Redshift) {
	w.add(string(rs.Kind))
	w.refPos(rs.RefPos)
	if rs.Type != "" {
		w.add(string(rs.Type))
	}
	if rs.Doppler != "" {
		w.add(string(rs.Doppler))
	}
	w.numbers(rs.Values)
	w.unit(rs.Unit)
	w.trailer(kwError, rs.Error)
	w.trailer(kwResolution, rs.Resolution)
}
