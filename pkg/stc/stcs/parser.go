package stcs

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"time"

	"mercator-hq/stc/pkg/stc/ast"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
	"mercator-hq/stc/pkg/stc/validator"
)

// DefaultMaxLength bounds the expressions a default Parser accepts (64 KiB).
const DefaultMaxLength = 64 * 1024

// Parser parses STC-S expressions into trees. A Parser holds only options
// and may be shared between goroutines.
type Parser struct {
	maxLength int
	validate  bool
}

// NewParser creates a parser with default settings.
func NewParser() *Parser {
	return &Parser{
		maxLength: DefaultMaxLength,
		validate:  true,
	}
}

// WithMaxLength sets the maximum accepted expression length in bytes.
// Zero disables the check.
func (p *Parser) WithMaxLength(n int) *Parser {
	p.maxLength = n
	return p
}

// WithValidation enables or disables the semantic checks run after a
// successful syntactic parse.
func (p *Parser) WithValidation(enabled bool) *Parser {
	p.validate = enabled
	return p
}

// Parse parses one STC-S expression.
func (p *Parser) Parse(expr string) (*ast.Tree, error) {
	if p.maxLength > 0 && len(expr) > p.maxLength {
		return nil, &stcErrors.ParseError{
			Expr:    expr,
			Pos:     p.maxLength,
			Message: fmt.Sprintf("expression exceeds maximum length of %d bytes", p.maxLength),
		}
	}

	st := &state{expr: expr, tokens: Tokenize(expr)}
	tree, err := st.parseTree()
	if err != nil {
		return nil, err
	}

	if p.validate {
		if err := validator.Validate(tree); err != nil {
			return nil, err
		}
	}
	return tree, nil
}

// Parse parses one STC-S expression with a default Parser.
func Parse(expr string) (*ast.Tree, error) {
	return NewParser().Parse(expr)
}

// state is the cursor over one expression's tokens.
type state struct {
	expr   string
	tokens []Token
	i      int
}

func (s *state) current() Token {
	return s.tokens[s.i]
}

func (s *state) advance() Token {
	tok := s.tokens[s.i]
	if tok.Type != TokenEOF {
		s.i++
	}
	return tok
}

// acceptWord consumes the current token if it is the given word.
func (s *state) acceptWord(word string) bool {
	if cur := s.current(); cur.Type == TokenWord && cur.Value == word {
		s.advance()
		return true
	}
	return false
}

func (s *state) errorAt(pos int, format string, args ...any) *stcErrors.ParseError {
	return &stcErrors.ParseError{
		Expr:    s.expr,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func (s *state) unknownWord(tok Token, what string, valid []string) *stcErrors.ParseError {
	err := s.errorAt(tok.Pos, "unknown %s %q", what, tok.Value)
	err.Suggestion = stcErrors.SuggestKeyword(tok.Value, valid)
	return err
}

func (s *state) parseTree() (*ast.Tree, error) {
	tree := &ast.Tree{}
	if s.current().Type == TokenEOF {
		return nil, s.errorAt(0, "empty expression")
	}

	var err error
	if isTimeKeyword(s.current().Value) {
		if tree.Time, err = s.parseTime(); err != nil {
			return nil, err
		}
	}
	if isSpaceKeyword(s.current().Value) {
		if tree.Space, err = s.parseSpace(); err != nil {
			return nil, err
		}
	}
	if isSpectralKeyword(s.current().Value) {
		if tree.Spectral, err = s.parseSpectral(); err != nil {
			return nil, err
		}
	}
	if isRedshiftKeyword(s.current().Value) {
		if tree.Redshift, err = s.parseRedshift(); err != nil {
			return nil, err
		}
	}

	cur := s.current()
	switch {
	case cur.Type == TokenEOF:
		return tree, nil
	case cur.Type == TokenWord && slices.Contains(phraseKeywords, cur.Value):
		return nil, s.errorAt(cur.Pos, "%s phrase is repeated or out of order; phrases go time, space, spectral, redshift", cur.Value)
	case tree.IsEmpty() && cur.Type == TokenWord:
		return nil, s.unknownWord(cur, "keyword", phraseKeywords)
	case cur.Type == TokenWord:
		return nil, s.unknownWord(cur, "token", slices.Concat(trailerKeywords, phraseKeywords))
	default:
		return nil, s.errorAt(cur.Pos, "unexpected %q", cur.Value)
	}
}

// numbers consumes a run of numeric tokens.
func (s *state) numbers() ([]float64, []int, error) {
	var (
		values    []float64
		positions []int
	)
	for s.current().Type == TokenNumber {
		tok := s.advance()
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil || math.IsInf(v, 0) {
			return nil, nil, s.errorAt(tok.Pos, "number %q out of range", tok.Value)
		}
		values = append(values, v)
		positions = append(positions, tok.Pos)
	}
	return values, positions, nil
}

// countError explains why a value list has the wrong length. Extra values
// are reported at the first surplus value, missing ones at the token where
// the next value should have been.
func (s *state) countError(what string, want string, got int, positions []int, surplus int) error {
	if surplus >= 0 && surplus < len(positions) {
		return s.errorAt(positions[surplus], "%s takes %s values, found %d", what, want, got)
	}
	cur := s.current()
	if cur.Type == TokenWord && !isKeyword(cur.Value) {
		return s.errorAt(cur.Pos, "expected a number, found %q", cur.Value)
	}
	return s.errorAt(cur.Pos, "%s takes %s values, found %d", what, want, got)
}

// trailer parses an optional keyword followed by at least one number.
func (s *state) trailer(keyword string) ([]float64, error) {
	kw := s.current()
	if !s.acceptWord(keyword) {
		return nil, nil
	}
	values, _, err := s.numbers()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		if cur := s.current(); cur.Type == TokenWord && !isKeyword(cur.Value) {
			return nil, s.errorAt(cur.Pos, "expected a number, found %q", cur.Value)
		}
		return nil, s.errorAt(kw.Pos, "%s needs at least one value", keyword)
	}
	return values, nil
}

func (s *state) unit(valid []string) (string, error) {
	if !s.acceptWord(kwUnit) {
		return "", nil
	}
	tok := s.current()
	if tok.Type != TokenWord || isKeyword(tok.Value) {
		return "", s.errorAt(tok.Pos, "expected a unit after 'unit'")
	}
	if !slices.Contains(valid, tok.Value) {
		return "", s.unknownWord(tok, "unit", valid)
	}
	s.advance()
	return tok.Value, nil
}

func (s *state) refPos() ast.RefPos {
	if cur := s.current(); cur.Type == TokenWord {
		if rp, ok := ast.LookupRefPos(cur.Value); ok {
			s.advance()
			return rp
		}
	}
	return ast.RefPosUnknown
}

// rejectStray fails on a non-keyword word where only system tokens or
// values may appear.
func (s *state) rejectStray(what string, valid []string) error {
	if cur := s.current(); cur.Type == TokenWord && !isKeyword(cur.Value) {
		return s.unknownWord(cur, what, valid)
	}
	return nil
}

func (s *state) parseSpace() (*ast.Space, error) {
	kw := s.advance()
	space := &ast.Space{}

	cs, err := s.parseCoordSys()
	if err != nil {
		return nil, err
	}
	space.CoordSys = cs

	if space.Geometry, err = s.parseGeometry(ast.GeometryKind(kw.Value), cs.Flavor); err != nil {
		return nil, err
	}
	if space.Unit, err = s.unit(ast.SpaceUnits); err != nil {
		return nil, err
	}
	if space.Error, err = s.trailer(kwError); err != nil {
		return nil, err
	}
	if space.Resolution, err = s.trailer(kwResolution); err != nil {
		return nil, err
	}
	if space.Size, err = s.trailer(kwSize); err != nil {
		return nil, err
	}
	if space.PixSize, err = s.trailer(kwPixSize); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *state) parseCoordSys() (ast.CoordSys, error) {
	cs := ast.CoordSys{
		Frame:  ast.FrameUnknown,
		RefPos: ast.RefPosUnknown,
		Flavor: ast.FlavorSpherical2,
	}

	if cur := s.current(); cur.Type == TokenWord {
		if frame, eq, ok := ast.LookupFrame(cur.Value); ok {
			cs.Frame, cs.Equinox = frame, eq
			s.advance()
		}
	}

	if cur := s.current(); cur.Type == TokenWord {
		if eq, ok := ast.ParseEquinox(cur.Value); ok {
			if !cs.Frame.HasEquinox() {
				return cs, s.errorAt(cur.Pos, "frame %s takes no equinox", cs.Frame)
			}
			if cs.Equinox != "" {
				return cs, s.errorAt(cur.Pos, "equinox given twice")
			}
			cs.Equinox = eq
			s.advance()
		}
	}
	if cs.Equinox == "" {
		cs.Equinox = cs.Frame.DefaultEquinox()
	}

	cs.RefPos = s.refPos()

	if cur := s.current(); cur.Type == TokenWord {
		if flavor, ok := ast.LookupFlavor(cur.Value); ok {
			cs.Flavor = flavor
			s.advance()
		}
	}

	var valid []string
	for _, f := range ast.Frames {
		valid = append(valid, string(f))
	}
	for _, r := range ast.RefPositions {
		valid = append(valid, string(r))
	}
	for _, f := range ast.Flavors {
		valid = append(valid, string(f))
	}
	return cs, s.rejectStray("frame, reference position or flavor", valid)
}

func (s *state) parseGeometry(kind ast.GeometryKind, flavor ast.Flavor) (ast.Geometry, error) {
	if kind.IsCompound() {
		return s.parseCompound(kind, flavor)
	}

	dim := flavor.Dim()
	values, positions, err := s.numbers()
	if err != nil {
		return nil, err
	}
	n := len(values)

	switch kind {
	case ast.KindPosition:
		if n == 0 {
			return &ast.Position{}, nil
		}
		if n != dim {
			return nil, s.countError("Position", strconv.Itoa(dim), n, positions, dim)
		}
		return &ast.Position{Values: values}, nil

	case ast.KindCircle:
		if n != dim+1 {
			return nil, s.countError("Circle", strconv.Itoa(dim+1), n, positions, dim+1)
		}
		return &ast.Circle{Center: values[:dim:dim], Radius: values[dim]}, nil

	case ast.KindBox:
		if n != 2*dim {
			return nil, s.countError("Box", strconv.Itoa(2*dim), n, positions, 2*dim)
		}
		return &ast.Box{Center: values[:dim:dim], Size: values[dim:]}, nil

	case ast.KindPolygon:
		if n%dim != 0 || n < 3*dim {
			return nil, s.countError("Polygon", fmt.Sprintf("at least 3 vertices of %d", dim), n, positions, -1)
		}
		poly := &ast.Polygon{}
		for i := 0; i < n; i += dim {
			poly.Vertices = append(poly.Vertices, values[i:i+dim:i+dim])
		}
		return poly, nil

	case ast.KindConvex:
		if n%4 != 0 || n == 0 {
			return nil, s.countError("Convex", "groups of 4", n, positions, -1)
		}
		cvx := &ast.Convex{}
		for i := 0; i < n; i += 4 {
			cvx.Halfspaces = append(cvx.Halfspaces, ast.Halfspace{
				Vector: [3]float64{values[i], values[i+1], values[i+2]},
				Offset: values[i+3],
			})
		}
		return cvx, nil
	}

	return nil, stcErrors.NotImplemented("geometry %s", kind)
}

func (s *state) parseCompound(op ast.GeometryKind, flavor ast.Flavor) (ast.Geometry, error) {
	open := s.current()
	if open.Type != TokenLeftParen {
		return nil, s.errorAt(open.Pos, "expected '(' after %s", op)
	}
	s.advance()

	compound := &ast.Compound{Op: op}
	for {
		cur := s.current()
		if cur.Type == TokenRightParen {
			break
		}
		if cur.Type == TokenEOF {
			return nil, s.errorAt(cur.Pos, "missing ')' to close %s", op)
		}
		if cur.Type != TokenWord || !isRegionKeyword(cur.Value) {
			return nil, s.unknownWord(cur, "region", regionKeywords)
		}
		s.advance()
		child, err := s.parseGeometry(ast.GeometryKind(cur.Value), flavor)
		if err != nil {
			return nil, err
		}
		compound.Children = append(compound.Children, child)
	}

	closing := s.advance()
	switch {
	case op == ast.KindNot && len(compound.Children) != 1:
		return nil, s.errorAt(closing.Pos, "Not takes exactly one region, found %d", len(compound.Children))
	case op != ast.KindNot && len(compound.Children) < 2:
		return nil, s.errorAt(closing.Pos, "%s takes at least two regions, found %d", op, len(compound.Children))
	}
	return compound, nil
}

var isoPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}(T[0-9]{2}:[0-9]{2}(:[0-9]{2}(\.[0-9]*)?)?)?$`)

var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseISO reads an ISO-8601 timestamp without zone; STC timestamps are
// interpreted in the phrase's time scale, so they are stored as UTC wall time.
func parseISO(value string) (time.Time, bool) {
	if !isoPattern.MatchString(value) {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *state) parseTime() (*ast.Time, error) {
	kw := s.advance()
	tm := &ast.Time{
		Kind:   ast.TimeKind(kw.Value),
		Scale:  ast.TimeScaleNil,
		RefPos: ast.RefPosUnknown,
	}

	if cur := s.current(); cur.Type == TokenWord {
		if scale, ok := ast.LookupTimeScale(cur.Value); ok {
			tm.Scale = scale
			s.advance()
		}
	}
	tm.RefPos = s.refPos()

	var positions []int
	for {
		cur := s.current()
		if cur.Type == TokenNumber {
			return nil, s.errorAt(cur.Pos, "time values are ISO-8601 or prefixed by MJD or JD, found %q", cur.Value)
		}
		if cur.Type != TokenWord {
			break
		}
		if cur.Value == string(ast.TimeFormatMJD) || cur.Value == string(ast.TimeFormatJD) {
			s.advance()
			num := s.current()
			if num.Type != TokenNumber {
				return nil, s.errorAt(num.Pos, "expected a number after %s", cur.Value)
			}
			values, _, err := s.numbers()
			if err != nil {
				return nil, err
			}
			if len(values) > 1 {
				return nil, s.errorAt(num.Pos, "%s takes one number", cur.Value)
			}
			tm.Values = append(tm.Values, ast.TimeValue{Format: ast.TimeFormat(cur.Value), Number: values[0]})
			positions = append(positions, cur.Pos)
			continue
		}
		if isoPattern.MatchString(cur.Value) {
			t, ok := parseISO(cur.Value)
			if !ok {
				return nil, s.errorAt(cur.Pos, "invalid timestamp %q", cur.Value)
			}
			s.advance()
			tm.Values = append(tm.Values, ast.TimeValue{Format: ast.TimeFormatISO, ISO: t})
			positions = append(positions, cur.Pos)
			continue
		}
		break
	}

	var valid []string
	for _, ts := range ast.TimeScales {
		valid = append(valid, string(ts))
	}
	for _, r := range ast.RefPositions {
		valid = append(valid, string(r))
	}
	if len(tm.Values) == 0 {
		if err := s.rejectStray("time scale or reference position", valid); err != nil {
			return nil, err
		}
	}

	if n, want := len(tm.Values), tm.Kind.Arity(); n != 0 && n != want {
		return nil, s.countError(string(tm.Kind), strconv.Itoa(want), n, positions, want)
	}

	var err error
	if tm.Unit, err = s.unit(ast.TimeUnits); err != nil {
		return nil, err
	}
	if tm.Error, err = s.trailer(kwError); err != nil {
		return nil, err
	}
	if tm.Resolution, err = s.trailer(kwResolution); err != nil {
		return nil, err
	}
	if tm.PixSize, err = s.trailer(kwPixSize); err != nil {
		return nil, err
	}
	return tm, nil
}

func (s *state) parseSpectral() (*ast.Spectral, error) {
	kw := s.advance()
	sp := &ast.Spectral{Kind: ast.SpectralKind(kw.Value)}
	sp.RefPos = s.refPos()

	var valid []string
	for _, r := range ast.RefPositions {
		valid = append(valid, string(r))
	}
	if err := s.rejectStray("reference position", valid); err != nil {
		return nil, err
	}

	values, positions, err := s.numbers()
	if err != nil {
		return nil, err
	}
	want := 1
	if sp.Kind == ast.SpectralKindInterval {
		want = 2
	}
	if n := len(values); n != 0 && n != want {
		return nil, s.countError(kw.Value, strconv.Itoa(want), n, positions, want)
	}
	sp.Values = values

	if sp.Unit, err = s.unit(ast.SpectralUnits); err != nil {
		return nil, err
	}
	if sp.Error, err = s.trailer(kwError); err != nil {
		return nil, err
	}
	if sp.Resolution, err = s.trailer(kwResolution); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *state) parseRedshift() (*ast.Redshift, error) {
	kw := s.advance()
	rs := &ast.Redshift{
		Kind:    ast.RedshiftKind(kw.Value),
		Type:    ast.RedshiftTypeVelocity,
		Doppler: ast.DopplerOptical,
	}
	rs.RefPos = s.refPos()

	if cur := s.current(); cur.Type == TokenWord {
		switch ast.RedshiftType(cur.Value) {
		case ast.RedshiftTypeVelocity, ast.RedshiftTypeRedshift:
			rs.Type = ast.RedshiftType(cur.Value)
			s.advance()
		}
	}
	if cur := s.current(); cur.Type == TokenWord {
		switch ast.DopplerDefinition(cur.Value) {
		case ast.DopplerOptical, ast.DopplerRadio, ast.DopplerRelativistic:
			rs.Doppler = ast.DopplerDefinition(cur.Value)
			s.advance()
		}
	}

	valid := []string{
		string(ast.RedshiftTypeVelocity), string(ast.RedshiftTypeRedshift),
		string(ast.DopplerOptical), string(ast.DopplerRadio), string(ast.DopplerRelativistic),
	}
	for _, r := range ast.RefPositions {
		valid = append(valid, string(r))
	}
	if err := s.rejectStray("redshift qualifier", valid); err != nil {
		return nil, err
	}

	values, positions, err := s.numbers()
	if err != nil {
		return nil, err
	}
	want := 1
	if rs.Kind == ast.RedshiftKindInterval {
		want = 2
	}
	if n := len(values); n != 0 && n != want {
		return nil, s.countError(kw.Value, strconv.Itoa(want), n, positions, want)
	}
	rs.Values = values

	if rs.Unit, err = s.unit(ast.RedshiftUnits); err != nil {
		return nil, err
	}
	if rs.Error, err = s.trailer(kwError); err != nil {
		return nil, err
	}
	if rs.Resolution, err = s.trailer(kwResolution); err != nil {
		return nil, err
	}
	return rs, nil
}
