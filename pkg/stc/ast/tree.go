package ast

import "maps"

// Tree is the result of parsing one resource description.
type Tree struct {
	// ID identifies the described resource when the source names one.
	ID string

	// Meta holds free-form annotations such as a title or an XML id.
	Meta map[string]string

	Time     *Time
	Space    *Space
	Spectral *Spectral
	Redshift *Redshift
}

// IsEmpty reports whether the tree has no phrase at all.
func (t *Tree) IsEmpty() bool {
	return t.Time == nil && t.Space == nil && t.Spectral == nil && t.Redshift == nil
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{ID: t.ID}
	if t.Meta != nil {
		out.Meta = maps.Clone(t.Meta)
	}
	if t.Time != nil {
		tm := *t.Time
		tm.Values = append([]TimeValue(nil), t.Time.Values...)
		tm.Error = cloneFloats(t.Time.Error)
		tm.Resolution = cloneFloats(t.Time.Resolution)
		tm.PixSize = cloneFloats(t.Time.PixSize)
		out.Time = &tm
	}
	if t.Space != nil {
		sp := *t.Space
		sp.Geometry = CloneGeometry(t.Space.Geometry)
		sp.Error = cloneFloats(t.Space.Error)
		sp.Resolution = cloneFloats(t.Space.Resolution)
		sp.Size = cloneFloats(t.Space.Size)
		sp.PixSize = cloneFloats(t.Space.PixSize)
		out.Space = &sp
	}
	if t.Spectral != nil {
		s := *t.Spectral
		s.Values = cloneFloats(t.Spectral.Values)
		s.Error = cloneFloats(t.Spectral.Error)
		s.Resolution = cloneFloats(t.Spectral.Resolution)
		out.Spectral = &s
	}
	if t.Redshift != nil {
		r := *t.Redshift
		r.Values = cloneFloats(t.Redshift.Values)
		r.Error = cloneFloats(t.Redshift.Error)
		r.Resolution = cloneFloats(t.Redshift.Resolution)
		out.Redshift = &r
	}
	return out
}
